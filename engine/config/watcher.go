package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadDebounce is how long the watcher waits after the last write before reloading.
const ReloadDebounce = 100 * time.Millisecond

// Watcher reloads a settings file when it changes on disk.
type Watcher interface {
	// Path returns the watched settings file.
	Path() string

	// Current returns the last successfully loaded settings.
	Current() Settings

	// Close stops watching. It is safe to call more than once.
	//
	// Returns:
	//   - error: error if the underlying watcher fails to close
	Close() error
}

type watcherImpl struct {
	mu *sync.Mutex

	path     string
	current  Settings
	onChange func(Settings)

	watcher *fsnotify.Watcher
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

var _ Watcher = &watcherImpl{}

// NewWatcher loads path and watches it for changes. onChange runs on the watcher goroutine after
// every successful reload; files that fail to load are logged and the previous settings kept.
//
// The parent directory is watched rather than the file so editors that replace the file on save
// keep triggering reloads.
//
// Parameters:
//   - path: the YAML settings file
//   - onChange: called with the new settings, may be nil
//
// Returns:
//   - Watcher: the running watcher
//   - error: error if the initial load or the watch setup fails
func NewWatcher(path string, onChange func(Settings)) (Watcher, error) {
	initial, err := Load(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create settings watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	w := &watcherImpl{
		mu:       &sync.Mutex{},
		path:     filepath.Clean(path),
		current:  initial,
		onChange: onChange,
		watcher:  fw,
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *watcherImpl) Path() string {
	return w.path
}

func (w *watcherImpl) Current() Settings {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

func (w *watcherImpl) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

// --- internal helpers ---

func (w *watcherImpl) run() {
	defer close(w.done)

	timer := time.NewTimer(ReloadDebounce)
	timer.Stop()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(ReloadDebounce)
		case <-timer.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("settings watcher error", "path", w.path, "error", err)
		case <-w.closeCh:
			timer.Stop()
			return
		}
	}
}

// reload loads the file and publishes it if it is valid.
func (w *watcherImpl) reload() {
	s, err := Load(w.path)
	if err != nil {
		slog.Warn("settings reload failed, keeping previous settings", "path", w.path, "error", err)
		return
	}
	w.mu.Lock()
	w.current = s
	w.mu.Unlock()

	slog.Info("settings reloaded", "path", w.path, "effects", len(s.Effects))
	if w.onChange != nil {
		w.onChange(s)
	}
}
