package store

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the tasks file for external edits and invokes
// onChange after a short debounce, driving collector recomputation and
// a notification scan.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	onChange func(string)
	mu       sync.RWMutex
	done     chan struct{}
}

func NewWatcher(onChange func(string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		files:    make(map[string]bool),
		onChange: onChange,
		done:     make(chan struct{}),
	}

	go w.watch()
	return w, nil
}

// AddFile starts watching path. Watching the containing directory as
// well keeps atomic-rename writers (like FileStore) visible, since a
// rename replaces the watched inode.
func (w *Watcher) AddFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.files[absPath] {
		return nil
	}

	if err := w.watcher.Add(filepath.Dir(absPath)); err != nil {
		return err
	}

	w.files[absPath] = true
	return nil
}

func (w *Watcher) watch() {
	debounce := make(map[string]*time.Timer)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				if timer, exists := debounce[event.Name]; exists {
					timer.Stop()
				}

				debounce[event.Name] = time.AfterFunc(100*time.Millisecond, func() {
					w.mu.RLock()
					watching := w.files[event.Name]
					w.mu.RUnlock()
					if watching && w.onChange != nil {
						w.onChange(event.Name)
					}
				})
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Keep watching; a transient error on one event is not
			// worth tearing the watcher down for.

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
