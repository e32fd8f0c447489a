// Package watcher reloads the configuration file when it changes on disk.
//
// The watcher observes the file's directory rather than the file itself so
// that editors which save by renaming a temporary file are still seen.
// Bursts of events are collapsed by a debouncer before the file is reloaded.
package watcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/codeintel/internal/config"
	"github.com/dshills/codeintel/internal/log"
	"github.com/dshills/codeintel/internal/schedule"
)

// DefaultDebounce is the quiet period before a changed file is reloaded.
const DefaultDebounce = 200 * time.Millisecond

// ErrWatcherClosed indicates the watcher has been closed.
var ErrWatcherClosed = errors.New("watcher closed")

// Handler receives each successfully reloaded configuration.
type Handler func(cfg config.Config)

// ErrorHandler receives reload failures. The previous configuration stays
// in effect.
type ErrorHandler func(err error)

// Watcher reloads one configuration file on change.
type Watcher struct {
	mu sync.Mutex

	path     string
	fsw      *fsnotify.Watcher
	debounce time.Duration
	deb      *schedule.Debouncer
	load     func(path string) (config.Config, error)

	onReload Handler
	onError  ErrorHandler
	logger   *log.Logger

	done    chan struct{}
	wg      sync.WaitGroup
	started bool
	closed  bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before reloading.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler sets the reload failure callback.
func WithErrorHandler(h ErrorHandler) Option {
	return func(w *Watcher) {
		w.onError = h
	}
}

// WithLogger sets the watcher logger.
func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) {
		w.logger = l
	}
}

// WithLoader replaces config.Load as the reload function.
func WithLoader(load func(path string) (config.Config, error)) Option {
	return func(w *Watcher) {
		if load != nil {
			w.load = load
		}
	}
}

// New creates a watcher for the configuration file at path. Nothing is
// observed until Start.
func New(path string, onReload Handler, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		load:     config.Load,
		onReload: onReload,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = log.Nop()
	}
	w.logger = w.logger.WithComponent("config-watcher")
	w.deb = schedule.NewDebouncer(w.debounce, w.reload)
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching. The file's directory must exist.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.started {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}

	w.fsw = fsw
	w.started = true
	w.wg.Add(1)
	go w.loop()

	w.logger.Debug("watching %s", w.path)
	return nil
}

// Close stops watching and cancels a pending reload.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	fsw := w.fsw
	w.mu.Unlock()

	close(w.done)
	w.deb.Stop()

	var err error
	if fsw != nil {
		err = fsw.Close()
	}
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				w.deb.Call()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error: %v", err)

		case <-w.done:
			return
		}
	}
}

// relevant reports whether event may have changed the watched file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) reload() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	cfg, err := w.load(w.path)
	if err != nil {
		w.logger.Warn("reloading %s: %v", w.path, err)
		if w.onError != nil {
			w.onError(err)
		}
		return
	}

	w.logger.Info("reloaded %s", w.path)
	if w.onReload != nil {
		w.onReload(cfg)
	}
}
