package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Churn-Demo/frontend/log_messages"
	"github.com/Churn-Demo/frontend/logger"
)

type session struct {
	panel    *Panel
	lastSeen time.Time
}

// Sessions keeps one in-memory panel per browser session. Panels idle for
// longer than the idle timeout are evicted unless a call is in flight.
type Sessions struct {
	predictor Predictor
	idle      time.Duration
	now       func() time.Time

	mu     sync.Mutex
	panels map[string]*session
}

func NewSessions(predictor Predictor, idle time.Duration) *Sessions {
	return &Sessions{
		predictor: predictor,
		idle:      idle,
		now:       time.Now,
		panels:    make(map[string]*session),
	}
}

// Panel returns the panel for id, creating it when needed. Ids that are not
// UUIDs are replaced by a fresh one; the returned id is the one to keep.
func (s *Sessions) Panel(id string) (string, *Panel) {
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.panels[id]
	if !ok {
		sess = &session{panel: NewPanel(s.predictor)}
		s.panels[id] = sess
	}
	sess.lastSeen = s.now()
	return id, sess.panel
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.panels)
}

// Sweep evicts idle sessions and returns how many were removed.
func (s *Sessions) Sweep() int {
	cutoff := s.now().Add(-s.idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.panels {
		if sess.lastSeen.After(cutoff) || sess.panel.Snapshot().Loading() {
			continue
		}
		delete(s.panels, id)
		removed++
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.CtxDebug(ctx, log_messages.SessionsSwept, map[string]any{"evicted": n})
			}
		}
	}
}
