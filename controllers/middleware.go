package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Churn-Demo/frontend/log_messages"
	"github.com/Churn-Demo/frontend/logger"
)

const RequestIDHeader = "X-Request-ID"

// AttachRequestID stores a request id in the request context, reusing the
// caller's X-Request-ID when present.
func AttachRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

// AccessLog writes one line per request once the handler chain is done.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		fields := map[string]any{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			logger.CtxError(ctx, log_messages.RequestFailed, errors.New(c.Errors.String()), fields)
			return
		}
		logger.CtxInfo(ctx, log_messages.RequestServed, fields)
	}
}

// NewMetricMiddleware records request count and latency per route.
func NewMetricMiddleware(meter metric.Meter) gin.HandlerFunc {
	durationHistogram, err := meter.Int64Histogram(
		"http.server.latency",
		metric.WithUnit("ms"),
		metric.WithDescription("The latency of HTTP requests."),
	)
	if err != nil {
		logger.Error(log_messages.MetricInstrumentFailure, err, map[string]any{"instrument": "http.server.latency"})
	}

	requestCounter, err := meter.Int64Counter(
		"http.server.requests_total",
		metric.WithDescription("The total number of HTTP requests."),
	)
	if err != nil {
		logger.Error(log_messages.MetricInstrumentFailure, err, map[string]any{"instrument": "http.server.requests_total"})
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		attrs := metric.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.String("http.status_code", strconv.Itoa(c.Writer.Status())),
		)

		ctx := c.Request.Context()
		if durationHistogram != nil {
			durationHistogram.Record(ctx, time.Since(start).Milliseconds(), attrs)
		}
		if requestCounter != nil {
			requestCounter.Add(ctx, 1, attrs)
		}
	}
}
