package txwal

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/hupe1980/txwal/record"
)

// Logger wraps slog.Logger with txwal-specific helpers.
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
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithPath adds the log file path to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// LogAppend logs an append of one or more records.
func (l *Logger) LogAppend(ctx context.Context, records int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "append failed",
			"records", records,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "append completed", "records", records)
}

// LogCheckpoint logs a checkpoint.
func (l *Logger) LogCheckpoint(ctx context.Context, id uuid.UUID, ts record.Ticks, err error) {
	if err != nil {
		l.ErrorContext(ctx, "checkpoint failed", "error", err)
		return
	}
	l.InfoContext(ctx, "checkpoint completed",
		"id", id,
		"timestamp", ts.String(),
	)
}
