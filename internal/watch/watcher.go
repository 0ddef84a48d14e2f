// Package watch triggers a callback whenever files below a set of root
// directories change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches directory trees recursively and calls onChange once a
// burst of events has settled.
type Watcher struct {
	watcher  *fsnotify.Watcher
	roots    []string
	debounce time.Duration
	onChange func()
	log      *zap.Logger

	mu    sync.Mutex
	timer *time.Timer

	// running serialises callbacks so rebuilds never overlap.
	running sync.Mutex
}

// New creates a watcher over roots. Roots that do not exist are skipped.
func New(roots []string, debounce time.Duration, onChange func(), logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		watcher:  fw,
		roots:    roots,
		debounce: debounce,
		onChange: onChange,
		log:      logger,
	}, nil
}

// Run adds the roots and processes events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for _, root := range w.roots {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			w.log.Warn("directory not found, not watching", zap.String("path", root))
			continue
		}
		w.log.Info("watching for changes", zap.String("path", root))
		w.addTree(root)
	}

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if hidden(event.Name) {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	w.log.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))

	// New directories are not covered by their parent's watch.
	if event.Has(fsnotify.Create) && isDir(event.Name) {
		w.addTree(event.Name)
	}
	w.schedule()
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.running.Lock()
		defer w.running.Unlock()
		w.onChange()
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) addTree(root string) {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			w.log.Warn("error walking directory", zap.String("path", p), zap.Error(err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && hidden(p) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			w.log.Warn("failed to watch directory", zap.String("path", p), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		w.log.Warn("error during directory walk", zap.String("path", root), zap.Error(err))
	}
}

func hidden(p string) bool {
	return strings.HasPrefix(filepath.Base(p), ".")
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	return info.IsDir()
}
