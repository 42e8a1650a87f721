package ffdb

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with table-specific context.
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
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithTable adds the table path to the logger.
func (l *Logger) WithTable(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("table", path),
	}
}

// LogOpen logs opening or truncating a table.
func (l *Logger) LogOpen(ctx context.Context, truncate bool, records int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open failed",
			"truncate", truncate,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "table opened",
			"truncate", truncate,
			"records", records,
		)
	}
}

// LogFlush logs a buffer flush.
func (l *Logger) LogFlush(ctx context.Context, bytes int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "flush failed",
			"bytes", bytes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "flush completed",
			"bytes", bytes,
			"duration", duration,
		)
	}
}

// LogSearch logs a first-match search.
func (l *Logger) LogSearch(ctx context.Context, chunkRecords int, index int64, found bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"chunk_records", chunkRecords,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"chunk_records", chunkRecords,
			"index", index,
			"found", found,
		)
	}
}

// LogClose logs closing a table.
func (l *Logger) LogClose(ctx context.Context, records int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "close failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "table closed",
			"records", records,
		)
	}
}

// LogDelete logs deleting a table. discarded is the number of staged bytes
// that were dropped.
func (l *Logger) LogDelete(ctx context.Context, discarded int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "delete failed",
			"discarded_bytes", discarded,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "table deleted",
			"discarded_bytes", discarded,
		)
	}
}
