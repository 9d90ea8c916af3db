package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// Stdout belongs to command output until Init picks a sink.
var log = zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()

// getRequestID retrieves request_id from context, returns empty string if missing
func getRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v := ctx.Value(requestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// WithRequestID returns a new context with the given request ID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID exposes the request ID stored by WithRequestID.
func RequestID(ctx context.Context) string {
	return getRequestID(ctx)
}

func parseLevel(logLevel string) zerolog.Level {
	switch logLevel {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init sets up the global JSON logger used by the server.
func Init(logLevel string) {
	InitWithWriter(logLevel, os.Stdout)
}

// InitConsole sets up a human readable logger on stderr, used by CLI commands.
func InitConsole(logLevel string) {
	InitWithWriter(logLevel, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

// InitWithWriter sets up the global logger writing to w.
func InitWithWriter(logLevel string, w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339
	log = zerolog.New(w).Level(parseLevel(logLevel)).With().Timestamp().Logger()
}

// CONTEXT-AWARE LOGGING //

func withRequest(ctx context.Context, e *zerolog.Event) *zerolog.Event {
	if reqID := getRequestID(ctx); reqID != "" {
		e = e.Str("request_id", reqID)
	}
	return e
}

func withFields(e *zerolog.Event, fields map[string]any) *zerolog.Event {
	if len(fields) > 0 {
		e = e.Fields(fields)
	}
	return e
}

// CtxInfo logs an info message with request ID
func CtxInfo(ctx context.Context, msg string, fields ...map[string]any) {
	e := withRequest(ctx, log.Info())
	for _, f := range fields {
		e = withFields(e, f)
	}
	e.Msg(msg)
}

// CtxError logs an error with request ID and error detail
func CtxError(ctx context.Context, msg string, err error, fields ...map[string]any) {
	e := withRequest(ctx, log.Error()).Err(err)
	for _, f := range fields {
		e = withFields(e, f)
	}
	e.Msg(msg)
}

// CtxDebug logs debug messages
func CtxDebug(ctx context.Context, msg string, fields ...map[string]any) {
	e := withRequest(ctx, log.Debug())
	for _, f := range fields {
		e = withFields(e, f)
	}
	e.Msg(msg)
}

// CtxWarn logs warnings
func CtxWarn(ctx context.Context, msg string, fields ...map[string]any) {
	e := withRequest(ctx, log.Warn())
	for _, f := range fields {
		e = withFields(e, f)
	}
	e.Msg(msg)
}

// NON-CONTEXT LOGGING //

func Info(msg string, fields ...map[string]any) {
	CtxInfo(context.Background(), msg, fields...)
}

func Debug(msg string, fields ...map[string]any) {
	CtxDebug(context.Background(), msg, fields...)
}

func Warn(msg string, fields ...map[string]any) {
	CtxWarn(context.Background(), msg, fields...)
}

func Error(msg string, err error, fields ...map[string]any) {
	CtxError(context.Background(), msg, err, fields...)
}
