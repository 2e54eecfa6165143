package config

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file when it changes on disk, so shake
// parameters can be tuned while the game runs. Reloaded configs are
// delivered on Updates and take effect only when the frame loop
// drains them and calls Apply, keeping all config and settings writes
// on the loop's goroutine.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	updates chan *Config
	closeCh chan struct{}
	once    sync.Once
}

// Watch starts watching the given config file. Parse errors are
// logged and the previous config stays in effect.
func Watch(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors often replace the file, which
	// drops a watch on the file itself.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		path:    filepath.Clean(path),
		updates: make(chan *Config, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Updates delivers successfully reloaded configs. Only the newest
// pending reload is kept; drain once per frame.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	var last time.Time
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
			// Debounce: editors fire several events per save.
			now := time.Now()
			if now.Sub(last) < 100*time.Millisecond {
				continue
			}
			last = now

			cfg, err := Load(w.path)
			if err != nil {
				slog.Warn("config reload failed", "path", w.path, "error", err)
				continue
			}
			// Replace any still-pending reload with the newer one.
			select {
			case <-w.updates:
			default:
			}
			select {
			case w.updates <- cfg:
			default:
			}
			slog.Info("config reloaded", "path", w.path)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", "error", err)
		case <-w.closeCh:
			return
		}
	}
}
