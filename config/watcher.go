package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/randalmurphal/promptkit/format"
)

// DefaultPollInterval is used when fsnotify is unavailable.
const DefaultPollInterval = time.Second

// Watcher keeps a formatter in sync with a configuration file.
//
// Formatter is safe to call from any goroutine while Run is active. A file
// that fails to load or build is logged and the previous formatter stays
// in place.
type Watcher struct {
	path         string
	pollInterval time.Duration
	onReload     func(*format.Formatter)

	current atomic.Pointer[format.Formatter]
	modTime time.Time
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithOnReload registers fn to be called after every successful reload.
func WithOnReload(fn func(*format.Formatter)) WatcherOption {
	return func(w *Watcher) { w.onReload = fn }
}

// WithPollInterval sets the polling interval of the fallback used when
// fsnotify cannot watch the directory.
func WithPollInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.pollInterval = d
		}
	}
}

// NewWatcher loads the file at path. The file must be valid at start-up.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{path: path, pollInterval: DefaultPollInterval}
	for _, opt := range opts {
		opt(w)
	}

	f, err := LoadFormatter(path)
	if err != nil {
		return nil, err
	}
	w.current.Store(f)
	if info, err := os.Stat(path); err == nil {
		w.modTime = info.ModTime()
	}
	return w, nil
}

// Formatter returns the most recently loaded formatter.
func (w *Watcher) Formatter() *format.Formatter {
	return w.current.Load()
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Reload loads the file now. On error the current formatter is kept.
func (w *Watcher) Reload() error {
	f, err := LoadFormatter(w.path)
	if err != nil {
		return err
	}
	w.current.Store(f)
	slog.Info("formatter config reloaded", slog.String("path", w.path))
	if w.onReload != nil {
		w.onReload(f)
	}
	return nil
}

// Run watches the file until ctx is cancelled, reloading on every write.
// The parent directory is watched so editors that replace the file on
// save are picked up. Falls back to polling when fsnotify is unavailable.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("fsnotify unavailable, polling formatter config",
			slog.String("path", w.path), slog.Any("error", err))
		return w.poll(ctx)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		slog.Warn("cannot watch formatter config directory, polling",
			slog.String("path", w.path), slog.Any("error", err))
		return w.poll(ctx)
	}

	baseName := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != baseName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reloadLogged()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("formatter config watch error", slog.String("path", w.path), slog.Any("error", err))
		}
	}
}

func (w *Watcher) poll(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			info, err := os.Stat(w.path)
			if err != nil || !info.ModTime().After(w.modTime) {
				continue
			}
			w.modTime = info.ModTime()
			w.reloadLogged()
		}
	}
}

func (w *Watcher) reloadLogged() {
	if err := w.Reload(); err != nil {
		slog.Warn("formatter config reload failed, keeping previous",
			slog.String("path", w.path), slog.Any("error", err))
	}
}
