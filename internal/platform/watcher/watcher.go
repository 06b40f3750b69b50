// Package watcher reports changes to a single file with debouncing.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher calls onChange once a burst of writes to path has been quiet for
// the debounce interval. The parent directory is watched so that editors
// replacing the file by rename are noticed too.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(context.Context) error
	logger   *slog.Logger
	fw       *fsnotify.Watcher
}

// New creates a Watcher for path. Call Run to start it.
func New(path string, debounce time.Duration, onChange func(context.Context) error, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving watch path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		fw:       fw,
	}, nil
}

// Run blocks until ctx is done, then releases the underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fw.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.DebugContext(ctx, "source file changed", "path", w.path, "op", event.Op.String())
			timer.Reset(w.debounce)

		case <-timer.C:
			w.logger.InfoContext(ctx, "reloading source file", "path", w.path)
			if err := w.onChange(ctx); err != nil {
				w.logger.WarnContext(ctx, "reload after file change failed", "path", w.path, "error", err)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnContext(ctx, "file watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
