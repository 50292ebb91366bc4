package config

import (
	"context"
	"fmt"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

const reloadDebounce = 100 * time.Millisecond

// Loader holds the current configuration snapshot and swaps in a new one when
// the file changes. Its getters are safe to poll from any goroutine.
type Loader struct {
	path string
	log  *zap.SugaredLogger

	current atomic.Pointer[Config]

	mu          sync.Mutex
	subscribers []chan struct{}
}

func NewLoader(path string, log *zap.SugaredLogger) *Loader {
	l := &Loader{path: path, log: log}
	l.current.Store(Default())
	return l
}

func (l *Loader) Path() string {
	return l.path
}

func (l *Loader) Load() (*Config, error) {
	cfg, err := Parse(l.path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	l.current.Store(cfg)
	return cfg, nil
}

func (l *Loader) Config() *Config {
	return l.current.Load()
}

// Subscribe returns a channel that receives a value after each successful
// reload. Notifications coalesce when the reader is slow.
func (l *Loader) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.subscribers = append(l.subscribers, ch)

	return ch
}

// Watch reloads the file whenever it changes, until ctx is done. A file that
// fails to parse is logged and the previous snapshot stays in place.
func (l *Loader) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(l.path)); err != nil {
		return fmt.Errorf("watch config dir: %w", err)
	}

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(l.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			debounce = time.After(reloadDebounce)

		case <-debounce:
			debounce = nil
			l.reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.log.Warnw("config watcher error", "error", err)
		}
	}
}

func (l *Loader) reload() {
	if _, err := l.Load(); err != nil {
		l.log.Warnw("keeping previous config", "error", err)
		return
	}
	l.log.Infow("config reloaded", "path", l.path)

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, ch := range l.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (l *Loader) Enabled() bool   { return l.Config().Enabled }
func (l *Loader) Words() bool     { return l.Config().Words }
func (l *Loader) Sentences() bool { return l.Config().Sentences }
func (l *Loader) Selection() bool { return l.Config().Selection }
func (l *Loader) Letters() bool   { return l.Config().Letters }
func (l *Loader) Speed() float32  { return l.Config().Speed }
func (l *Loader) Volume() float32 { return l.Config().Volume }
func (l *Loader) Layout() string  { return l.Config().Layout }

func (l *Loader) AccumulateOnKeyDown() bool {
	return l.Config().AccumulateOn == AccumulateOnKeyDown
}

func (l *Loader) RequireKeyboard() bool {
	return l.Config().RequireKeyboard
}
