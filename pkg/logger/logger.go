package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

type contextKey string

const (
	identityKey contextKey = "identity"
	loggerKey   contextKey = "logger"
)

// New creates a new structured logger with the given application name and level.
func New(appName, level string) *slog.Logger {
	return NewWithWriter(appName, level, os.Stderr)
}

// NewWithWriter creates a new structured logger writing to the given writer.
func NewWithWriter(appName, level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	})

	return slog.New(handler).With(
		slog.String("app", appName),
	)
}

// WithIdentity returns a new context carrying the current session identity
// for logging purposes.
func WithIdentity(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext extracts the session identity stored by this package.
func IdentityFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(identityKey).(string); ok {
		return id
	}
	return ""
}

// NewContext returns a new context with the given logger stored in it.
func NewContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the scoped logger stored in context.
// Returns slog.Default() if no logger is stored.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// WithContext returns a logger with context-derived fields (identity, trace_id, span_id).
func WithContext(ctx context.Context, l *slog.Logger) *slog.Logger {
	if id := IdentityFromContext(ctx); id != "" {
		l = l.With(slog.String("identity", id))
	}

	// Inject OpenTelemetry trace context if a valid span is present.
	if spanCtx := trace.SpanFromContext(ctx).SpanContext(); spanCtx.IsValid() {
		l = l.With(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
	}

	return l
}
