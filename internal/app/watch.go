package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watch reloads the config at path whenever it changes and passes each valid
// result to onChange. Invalid files are logged and skipped. Watching stops
// when ctx is done.
func Watch(ctx context.Context, path string, onChange func(*Config), logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "config", "path", path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// The directory is watched so editors that replace the file still count.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	go func() {
		defer w.Close()
		var debounce *time.Timer
		for {
			select {
			case <-ctx.Done():
				if debounce != nil {
					debounce.Stop()
				}
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != filepath.Base(path) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(reloadDebounce, func() {
					cfg, err := LoadConfig(path)
					if err != nil {
						logger.Warn("config reload failed", "error", err)
						return
					}
					logger.Info("config reloaded")
					onChange(cfg)
				})
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", "error", err)
			}
		}
	}()
	return nil
}

// LogOverrider takes the verbose request from the config file.
type LogOverrider interface {
	SetLogOverride(on bool)
}

// WatchLogLevel passes logging.verbose from the file at path to target on
// every change. The persisted log toggle is left alone.
func WatchLogLevel(ctx context.Context, path string, target LogOverrider, logger *slog.Logger) error {
	return Watch(ctx, path, func(cfg *Config) {
		target.SetLogOverride(cfg.Logging.Verbose)
	}, logger)
}
