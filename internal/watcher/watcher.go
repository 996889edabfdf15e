// Package watcher invalidates the dataset cache when the CSV data directory changes.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce batches rapid saves of the same export into one reload.
const DefaultDebounce = 500 * time.Millisecond

// Invalidator is cleared whenever a watched file changes.
type Invalidator interface {
	Clear()
}

// Watcher monitors *.csv files in a single directory.
type Watcher struct {
	dir      string
	cache    Invalidator
	debounce time.Duration
	logger   *zap.Logger
}

// New builds a watcher for dir.
func New(dir string, cache Invalidator, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{dir: dir, cache: cache, debounce: DefaultDebounce, logger: logger}
}

// Run blocks until ctx is cancelled, clearing the cache after each burst of
// CSV changes.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fs watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.Info("watching data directory", zap.String("dir", w.dir))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug("data file changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("fs watcher error", zap.Error(err))

		case <-timer.C:
			w.cache.Clear()
			w.logger.Info("dataset cache invalidated", zap.String("dir", w.dir))
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(event.Name), ".csv") {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
