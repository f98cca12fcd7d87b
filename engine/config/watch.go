package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a settings file whenever it changes on disk. Reloaded settings arrive on
// Updates; the consumer applies them on its own thread.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	logger   *log.Logger

	Updates chan Settings
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
	done    sync.WaitGroup
}

// WatcherOption is a functional option for configuring a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the file must stay quiet before it is reloaded.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithWatchLogger enables reload logging.
func WithWatchLogger(logger *log.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// NewWatcher watches the directory containing path, so editors that replace the file by
// rename are still seen.
//
// Parameters:
//   - path: the settings file
//   - options: functional options to configure the watcher
//
// Returns:
//   - *Watcher: the running watcher
//   - error: when the directory cannot be watched
func NewWatcher(path string, options ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	w := &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: 100 * time.Millisecond,
		Updates:  make(chan Settings, 1),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
	}
	for _, option := range options {
		option(w)
	}
	w.done.Add(1)
	go w.run()
	return w, nil
}

// Close stops the watcher and closes both channels.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.done.Wait()
		close(w.Updates)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer w.done.Done()
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		case <-timer.C:
			w.reload()
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	s, err := Load(w.path)
	if err != nil {
		w.sendErr(err)
		return
	}
	if w.logger != nil {
		w.logger.Printf("[Config] reloaded %s", w.path)
	}
	// Keep only the newest settings.
	select {
	case <-w.Updates:
	default:
	}
	select {
	case w.Updates <- s:
	case <-w.closeCh:
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.Errors <- err:
	default:
		if w.logger != nil {
			w.logger.Printf("[Config] dropped error: %v", err)
		}
	}
}
