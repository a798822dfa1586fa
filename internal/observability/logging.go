// Package observability carries run correlation data through a context so
// every log line of one run can be tied together.
package observability

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/htmlpublish/internal/logfields"
)

// LogContext holds structured logging context information.
type LogContext struct {
	RunID string
	Step  string
}

type logContextKeyType string

const logContextKey logContextKeyType = "log-context"

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	lc := extractLogContext(ctx)
	lc.RunID = runID
	return context.WithValue(ctx, logContextKey, lc)
}

// WithStep adds a step name to the context.
func WithStep(ctx context.Context, step string) context.Context {
	lc := extractLogContext(ctx)
	lc.Step = step
	return context.WithValue(ctx, logContextKey, lc)
}

// GetContext returns the structured log context from ctx.
func GetContext(ctx context.Context) LogContext {
	return extractLogContext(ctx)
}

func extractLogContext(ctx context.Context) LogContext {
	if lc, ok := ctx.Value(logContextKey).(LogContext); ok {
		return lc
	}
	return LogContext{}
}

// Attrs returns the slog attributes for the values set on ctx.
func Attrs(ctx context.Context) []slog.Attr {
	lc := extractLogContext(ctx)
	var attrs []slog.Attr
	if lc.RunID != "" {
		attrs = append(attrs, logfields.RunID(lc.RunID))
	}
	if lc.Step != "" {
		attrs = append(attrs, logfields.Step(lc.Step))
	}
	return attrs
}

// Logger returns base annotated with the context values. A nil base uses
// slog.Default().
func Logger(ctx context.Context, base *slog.Logger) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}
	attrs := Attrs(ctx)
	if len(attrs) == 0 {
		return base
	}
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return base.With(args...)
}

// InfoContext logs an info message on base with context information.
func InfoContext(ctx context.Context, base *slog.Logger, msg string, attrs ...slog.Attr) {
	logAttrs(ctx, base, slog.LevelInfo, msg, attrs)
}

// WarnContext logs a warning on base with context information.
func WarnContext(ctx context.Context, base *slog.Logger, msg string, attrs ...slog.Attr) {
	logAttrs(ctx, base, slog.LevelWarn, msg, attrs)
}

// ErrorContext logs an error on base with context information.
func ErrorContext(ctx context.Context, base *slog.Logger, msg string, attrs ...slog.Attr) {
	logAttrs(ctx, base, slog.LevelError, msg, attrs)
}

func logAttrs(ctx context.Context, base *slog.Logger, level slog.Level, msg string, attrs []slog.Attr) {
	if base == nil {
		base = slog.Default()
	}
	all := append(Attrs(ctx), attrs...)
	base.LogAttrs(ctx, level, msg, all...)
}
