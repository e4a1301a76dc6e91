// Package watcher watches an indexed directory and triggers full rebuilds on change.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 400 * time.Millisecond

// Watcher watches one directory (non-recursive, matching the scanner) and
// invokes a single callback after changes settle. The callback is expected
// to rebuild the whole index; there is no per-file incremental path.
type Watcher struct {
	dir       string
	extension string
	snapshot  string // snapshot file name, ignored so saves don't retrigger
	onChange  func()
	debounce  time.Duration
	watcher   *fsnotify.Watcher
	mu        sync.Mutex
	timer     *time.Timer
	started   bool
	logger    *zap.Logger // optional; when set, logs file events
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides how long to wait after the last event before
// invoking the callback.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// NewWatcher creates a watcher over dir. Only events for files with the
// given extension count; events for snapshotName are always ignored, since
// the rebuild itself rewrites that file. onChange runs on the watcher
// goroutine after the debounce window closes.
func NewWatcher(dir, extension, snapshotName string, onChange func(), opts ...Option) *Watcher {
	w := &Watcher{
		dir:       dir,
		extension: strings.ToLower(strings.TrimPrefix(extension, ".")),
		snapshot:  snapshotName,
		onChange:  onChange,
		debounce:  defaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. It runs until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return err
	}
	w.watcher = fsw
	w.started = true
	if w.logger != nil {
		w.logger.Debug("watcher starting",
			zap.String("dir", w.dir),
			zap.String("extension", w.extension),
		)
	}
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and cancels any pending rebuild.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	w.started = false
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	_ = w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("watcher error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if name == w.snapshot || strings.HasPrefix(name, w.snapshot+".tmp-") {
		return
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if w.extension != "" && ext != w.extension {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	if w.logger != nil {
		w.logger.Debug("watcher event",
			zap.String("path", event.Name),
			zap.String("op", event.Op.String()),
		)
	}
	w.scheduleRebuild()
}

// scheduleRebuild arms (or re-arms) the debounce timer; a burst of events
// collapses into one rebuild.
func (w *Watcher) scheduleRebuild() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}
