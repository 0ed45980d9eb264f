package seqdex

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with seqdex-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithIndex adds the index name to every record.
func (l *Logger) WithIndex(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("index", name),
	}
}

// LogCreate logs an index build.
func (l *Logger) LogCreate(ctx context.Context, name string, length uint64, blockSize int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "create failed",
			"index", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "index created",
			"index", name,
			"length", length,
			"block_size", blockSize,
		)
	}
}

// LogOpen logs an index load.
func (l *Logger) LogOpen(ctx context.Context, name string, length uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open failed",
			"index", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "index opened",
			"index", name,
			"length", length,
		)
	}
}

// LogEnumerate logs a match enumeration. Early stops requested by the sink
// are not failures.
func (l *Logger) LogEnumerate(ctx context.Context, name, kind string, matches uint64, err error) {
	if err != nil && !isStop(err) {
		l.ErrorContext(ctx, "enumeration failed",
			"index", name,
			"kind", kind,
			"matches", matches,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "enumeration completed",
			"index", name,
			"kind", kind,
			"matches", matches,
			"stopped", err != nil,
		)
	}
}
