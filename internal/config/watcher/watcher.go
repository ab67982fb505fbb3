// Package watcher reloads the configuration file when it changes on disk.
//
// The containing directory is watched rather than the file itself so that
// editors which save by writing a temporary file and renaming it over the
// original are still seen.
package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/dragstream/internal/config"
	"github.com/dshills/dragstream/internal/logging"
)

// DefaultDebounce coalesces the burst of events a single save produces.
const DefaultDebounce = 100 * time.Millisecond

// ErrWatcherClosed is returned by Run on a closed watcher.
var ErrWatcherClosed = errors.New("watcher is closed")

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration for rapid changes.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler sets the function called when a reload fails. The
// previous configuration stays in effect.
func WithErrorHandler(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// WithLoader replaces config.Resolve as the reload function.
func WithLoader(fn func(path string) (*config.Config, error)) Option {
	return func(w *Watcher) {
		w.load = fn
	}
}

// WithLogger sets the watcher's logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *Watcher) {
		w.logger = l.WithComponent("config-watcher")
	}
}

// Watcher watches one config file.
type Watcher struct {
	path string
	base string

	fsw      *fsnotify.Watcher
	debounce time.Duration
	load     func(path string) (*config.Config, error)
	onChange func(*config.Config)
	onError  func(error)
	logger   *logging.Logger

	mu     sync.Mutex
	closed bool
}

// New creates a watcher for path. onChange runs on the goroutine calling
// Run; callers that own single-threaded state must hand the config off to
// their own loop.
func New(path string, onChange func(*config.Config), opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		base:     filepath.Base(abs),
		debounce: DefaultDebounce,
		load:     config.Resolve,
		onChange: onChange,
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}
	w.fsw = fsw
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return ErrWatcherClosed
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("config event %s", ev.Op)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.fail(err)

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

// Close stops the watcher. Run returns once its event channel drains.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.fsw.Close()
}

// relevant reports whether ev can change the watched file's contents.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Base(ev.Name) != w.base {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create)
}

func (w *Watcher) reload() {
	cfg, err := w.load(w.path)
	if err != nil {
		w.fail(err)
		return
	}
	w.logger.Info("config reloaded from %s", w.path)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

func (w *Watcher) fail(err error) {
	w.logger.Warn("config reload failed: %v", err)
	if w.onError != nil {
		w.onError(err)
	}
}
