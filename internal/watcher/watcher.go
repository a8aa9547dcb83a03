// Package watcher observes the content root and notifies listeners when
// content files change. Events are debounced so a burst of writes (editor
// saves, git checkouts) triggers one reload.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce batches rapid successive change events.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a content root for markdown/manifest changes.
type Watcher struct {
	root     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	logger   *zap.Logger
}

// New creates a Watcher over root. All existing subdirectories are
// registered; directories created later are added as they appear.
func New(root string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{root: root, debounce: debounce, fsw: fsw, logger: logger.Named("watcher")}
	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run delivers debounced change notifications to onChange until ctx is
// cancelled. onChange runs on the watcher goroutine; it should hand off
// long work (a reindex) to its own goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func()) {
	defer w.fsw.Close()

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(event.Name)
				}
			}
			w.logger.Debug("content change", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				// Drain a pending expiry before resetting, or the stale
				// tick fires onChange early in the next burst.
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		case <-timerC:
			timer = nil
			timerC = nil
			onChange()
		}
	}
}

// relevant filters events down to the files the pipeline reads.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		return event.Op.Has(fsnotify.Create)
	}
	ext := filepath.Ext(name)
	return ext == ".md" || ext == ".mdx" || name == "manifest.yaml" || name == "nav.yaml"
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return fs.SkipDir
		}
		return w.fsw.Add(path)
	})
}
