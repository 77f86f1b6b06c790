package content

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Live holds the current Site and lets a watcher swap it without blocking readers.
type Live struct {
	current atomic.Pointer[Site]
}

// NewLive wraps an already loaded site.
func NewLive(site *Site) *Live {
	l := &Live{}
	l.current.Store(site)
	return l
}

// Site returns the site currently being served.
func (l *Live) Site() *Site { return l.current.Load() }

// Swap replaces the served site.
func (l *Live) Swap(site *Site) { l.current.Store(site) }

// Watcher reloads a corpus directory from disk whenever a file in it changes.
// A reload that fails validation keeps the previous site.
type Watcher struct {
	dir      string
	live     *Live
	logger   *zap.Logger
	debounce time.Duration
	watcher  *fsnotify.Watcher
	onReload func(*Site, error)
}

// WatcherOption customises a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce coalesces bursts of events (editors write several times per save).
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithReloadHook is called after every reload attempt.
func WithReloadHook(fn func(*Site, error)) WatcherOption {
	return func(w *Watcher) { w.onReload = fn }
}

// NewWatcher watches dir and every directory below it.
func NewWatcher(dir string, live *Live, logger *zap.Logger, opts ...WatcherOption) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		dir:      dir,
		live:     live,
		logger:   logger,
		debounce: 200 * time.Millisecond,
		watcher:  fw,
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.addTree(); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree() error {
	return filepath.WalkDir(w.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

// Run processes events until ctx is cancelled, then closes the underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.watcher.Add(event.Name)
				}
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("content watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	site, err := Load(os.DirFS(w.dir))
	if err != nil {
		w.logger.Error("content reload failed; keeping previous version", zap.Error(err))
	} else {
		w.live.Swap(site)
		w.logger.Info("content reloaded", zap.String("version", site.Version()), zap.Int("pages", len(site.order)))
	}
	if w.onReload != nil {
		w.onReload(site, err)
	}
}
