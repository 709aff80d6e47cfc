package diorama

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with diorama-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{Logger: slog.New(handler)}
}

// WithField adds a field-path attribute to the logger.
func (l *Logger) WithField(path string) *Logger {
	return &Logger{Logger: l.Logger.With("field", path)}
}

// WithCount adds a count attribute to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{Logger: l.Logger.With("count", count)}
}

// LogReduce logs a dimensionality reduction call.
func (l *Logger) LogReduce(ctx context.Context, method string, rows, dims, components int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "reduction failed",
			"method", method,
			"rows", rows,
			"dims", dims,
			"components", components,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "reduction completed",
			"method", method,
			"rows", rows,
			"dims", dims,
			"components", components,
			"duration", d,
		)
	}
}

// LogFilter logs a filter operation.
func (l *Logger) LogFilter(ctx context.Context, matched, total int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "filter failed",
			"total", total,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "filter completed",
			"matched", matched,
			"total", total,
			"duration", d,
		)
	}
}

// LogPlan logs a render planning pass.
func (l *Logger) LogPlan(ctx context.Context, perspectives, groups int, d time.Duration) {
	l.DebugContext(ctx, "plan completed",
		"perspectives", perspectives,
		"groups", groups,
		"duration", d,
	)
}
