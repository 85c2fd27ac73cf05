package app

import (
	"io"
	"log/slog"
)

// NewLogger builds the process logger. Its level follows level, which the
// settings service and Watch adjust at runtime.
func NewLogger(cfg LoggingConfig, w io.Writer, level *slog.LevelVar) *slog.Logger {
	applyLogLevel(level, cfg.Verbose)
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// applyLogLevel sets debug when verbose, warn otherwise.
func applyLogLevel(level *slog.LevelVar, verbose bool) {
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelWarn)
	}
}
