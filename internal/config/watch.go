package config

import (
	"os"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
)

// Watcher watches the config files under search for writes and invokes
// onChange at most once per 500ms burst, funnelling into the same
// reload pipeline the RELOAD IPC command uses. Editors frequently emit
// several fsnotify events for a single save (rename-into-place,
// truncate-then-write), hence the debounce.
type Watcher struct {
	fs *fsnotify.Watcher
}

// NewWatcher starts watching every path in search that exists on disk.
// A path that doesn't exist yet is simply skipped; RELOAD still works
// via explicit invocation even with nothing to watch.
func NewWatcher(search []string, onChange func()) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	existing := ExistingPaths(search, func(p string) bool {
		_, err := os.Stat(p)
		return err == nil
	})
	for _, p := range existing {
		if err := fs.Add(p); err != nil {
			fs.Close()
			return nil, err
		}
	}

	debounced := debounce.New(500 * time.Millisecond)
	go func() {
		for {
			select {
			case ev, ok := <-fs.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					debounced(onChange)
				}
			case _, ok := <-fs.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return &Watcher{fs: fs}, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
