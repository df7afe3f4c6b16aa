package dict

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads a Registry when files under its corpus directory change.
type Watcher struct {
	reg      *Registry
	log      *slog.Logger
	watcher  *fsnotify.Watcher
	debounce time.Duration
	notifier func(error)
}

// NewWatcher watches the registry directory and each corpus sub-directory.
func NewWatcher(reg *Registry, logger *slog.Logger, debounce time.Duration) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		reg:      reg,
		log:      logger,
		watcher:  fw,
		debounce: debounce,
		notifier: func(error) {},
	}
	if err := w.addTree(reg.Dir()); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// SetNotifier registers a callback run after every reload attempt.
func (w *Watcher) SetNotifier(fn func(error)) {
	w.notifier = fn
}

func (w *Watcher) addTree(root string) error {
	if err := w.watcher.Add(root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("read corpus dir %s: %w", root, err)
	}
	for _, e := range entries {
		if !e.IsDir() || ignored(e.Name()) {
			continue
		}
		if err := w.watcher.Add(filepath.Join(root, e.Name())); err != nil {
			return fmt.Errorf("watch %s: %w", e.Name(), err)
		}
	}
	return nil
}

// ignored skips importer scratch directories and hidden files.
func ignored(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}

// Run blocks until ctx is done, reloading the registry after each burst of
// changes.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.log.Error("failed to close watcher", "error", err)
		}
	}()

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			if ignored(filepath.Base(event.Name)) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := w.watcher.Add(event.Name); err != nil {
						w.log.Warn("failed to watch new corpus", "path", event.Name, "error", err)
					}
				}
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			w.log.Warn("watch error", "error", err)
		case <-timer.C:
			err := w.reg.Reload()
			if err != nil {
				w.log.Error("corpus reload failed", "error", err)
			}
			w.notifier(err)
		}
	}
}
