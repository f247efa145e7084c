package main

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with bitvectorctl-specific helpers. It is the
// only logger in the module; the bitvector package itself does not log.
type Logger struct {
	*slog.Logger
}

// NewTextLogger creates a Logger that writes human-readable text lines to
// stderr, gated at level.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON lines to stderr, gated at
// level. Selected by --json-logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler)}
}

// parseLevel maps the --log-level flag's value onto a slog.Level, defaulting
// to Info for anything unrecognised.
func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogBuild logs the outcome of indexing the payload.
func (l *Logger) LogBuild(n uint64, words int, dur int64, err error) {
	if err != nil {
		l.Error("build failed", "bits", n, "words", words, "error", err)
		return
	}
	l.Debug("index built", "bits", n, "words", words, "duration_ns", dur)
}

// LogQueries logs the outcome of running the query batch.
func (l *Logger) LogQueries(count int, dur int64) {
	l.Info("queries completed", "count", count, "duration_ns", dur)
}
