package rules

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to rules files in a directory. The directory is watched
// rather than the files so editors that save by rename are still noticed.
type Watcher struct {
	dir      string
	onChange func(string) // called with path that changed
	fw       *fsnotify.Watcher
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewWatcher creates a watcher for the *.yaml files in dir.
func NewWatcher(dir string, onChange func(string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{
		dir:      dir,
		onChange: onChange,
		fw:       fw,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins delivering events in a goroutine.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case ev, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if filepath.Ext(ev.Name) != ".yaml" {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 && w.onChange != nil {
					w.onChange(ev.Name)
				}
			case err, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				slog.Warn("rules watcher error", "dir", w.dir, "error", err)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.fw.Close()
	})
}
