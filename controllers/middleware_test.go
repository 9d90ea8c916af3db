package controllers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/Churn-Demo/frontend/config"
	"github.com/Churn-Demo/frontend/log_messages"
	"github.com/Churn-Demo/frontend/logger"
	"github.com/Churn-Demo/frontend/service"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.InitWithWriter("info", &buf)
	t.Cleanup(func() { logger.InitWithWriter("info", os.Stderr) })
	return &buf
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &line))
		lines = append(lines, line)
	}
	return lines
}

func TestAccessLog_ServedRequest(t *testing.T) {
	buf := captureLog(t)
	engine := gin.New()
	engine.Use(AttachRequestID(), AccessLog())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-9")
	engine.ServeHTTP(httptest.NewRecorder(), req)

	lines := logLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, log_messages.RequestServed, lines[0]["message"])
	assert.Equal(t, "req-9", lines[0]["request_id"])
	assert.Equal(t, float64(http.StatusNoContent), lines[0]["status"])
}

func TestAccessLog_HandlerErrors(t *testing.T) {
	buf := captureLog(t)
	engine := gin.New()
	engine.Use(AccessLog())
	engine.GET("/", func(c *gin.Context) {
		_ = c.Error(errors.New("bad input"))
		c.Status(http.StatusBadRequest)
	})

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	lines := logLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, log_messages.RequestFailed, lines[0]["message"])
	assert.Equal(t, "error", lines[0]["level"])
	assert.Contains(t, lines[0]["error"], "bad input")
}

func TestPredict_InvalidJSONBodyIsLoggedAsFailed(t *testing.T) {
	buf := captureLog(t)
	sessions := service.NewSessions(service.NewGatewayClient("http://127.0.0.1:1", time.Second), time.Minute)
	pc := NewPanelController(sessions, config.UIConfig{}, noop.NewMeterProvider().Meter("test"))

	engine := gin.New()
	engine.Use(AccessLog())
	engine.POST("/predict", pc.Predict)

	w := postJSON(engine, `{"customer_id":`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	lines := logLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, log_messages.RequestFailed, lines[0]["message"])
	assert.Equal(t, float64(http.StatusBadRequest), lines[0]["status"])
}
