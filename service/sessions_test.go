package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Churn-Demo/frontend/models"
)

func TestSessionsPanel_IssuesIDForUnknownValues(t *testing.T) {
	sessions := NewSessions(&fakePredictor{}, time.Minute)

	for _, raw := range []string{"", "not-a-uuid", "../../etc"} {
		id, panel := sessions.Panel(raw)
		require.NotNil(t, panel)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.NotEqual(t, raw, id)
	}
	assert.Equal(t, 3, sessions.Len())
}

func TestSessionsPanel_ReusesPanelForSameID(t *testing.T) {
	sessions := NewSessions(&fakePredictor{}, time.Minute)

	id, first := sessions.Panel("")
	again, second := sessions.Panel(id)

	assert.Equal(t, id, again)
	assert.Same(t, first, second)
}

func TestSessionsPanel_KeepsValidClientID(t *testing.T) {
	sessions := NewSessions(&fakePredictor{}, time.Minute)
	want := uuid.NewString()

	id, _ := sessions.Panel(want)
	assert.Equal(t, want, id)
}

func TestSessionsSweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	sessions := NewSessions(&fakePredictor{}, 10*time.Minute)
	sessions.now = func() time.Time { return now }

	stale, _ := sessions.Panel("")
	now = now.Add(9 * time.Minute)
	fresh, _ := sessions.Panel("")
	now = now.Add(2 * time.Minute)

	assert.Equal(t, 1, sessions.Sweep())
	assert.Equal(t, 1, sessions.Len())

	_, panel := sessions.Panel(fresh)
	assert.NotNil(t, panel)
	reissued, _ := sessions.Panel(stale)
	assert.Equal(t, stale, reissued)
}

func TestSessionsSweep_SkipsLoadingPanels(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	fake := &fakePredictor{fn: func(context.Context, string) (*models.Prediction, error) {
		close(started)
		<-release
		return nil, &TransportError{Err: context.Canceled}
	}}

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	sessions := NewSessions(fake, time.Minute)
	sessions.now = func() time.Time { return now }

	_, panel := sessions.Panel("")
	done := make(chan struct{})
	go func() {
		panel.Submit(context.Background(), "N001")
		close(done)
	}()
	<-started

	now = now.Add(time.Hour)
	assert.Equal(t, 0, sessions.Sweep())

	close(release)
	<-done
	assert.Equal(t, 1, sessions.Sweep())
}

func TestSessionsRun_StopsOnCancel(t *testing.T) {
	sessions := NewSessions(&fakePredictor{}, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		sessions.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
