package tabgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with tabgo-specific helpers.
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
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogLoad logs a dataset load.
func (l *Logger) LogLoad(ctx context.Context, rows int, encoding string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "load completed",
			"rows", rows,
			"encoding", encoding,
		)
	}
}

// LogFilter logs a filter evaluation.
func (l *Logger) LogFilter(ctx context.Context, total, matched int) {
	l.DebugContext(ctx, "filter applied",
		"total", total,
		"matched", matched,
	)
}

// LogSimilar logs a similarity lookup.
func (l *Logger) LogSimilar(ctx context.Context, anchor string, k, found int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "similarity lookup failed",
			"anchor", anchor,
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "similarity lookup completed",
			"anchor", anchor,
			"k", k,
			"results", found,
		)
	}
}

// LogExport logs an export.
func (l *Logger) LogExport(ctx context.Context, format string, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "export failed",
			"format", format,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "export completed",
			"format", format,
			"rows", rows,
		)
	}
}
