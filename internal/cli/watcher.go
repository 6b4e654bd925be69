package cli

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// fileWatcher reports edits to a single file. Bursts of events within the
// debounce window collapse into one notification.
type fileWatcher struct {
	File    string
	Changes <-chan struct{}

	changes  chan struct{}
	done     chan struct{}
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

func newFileWatcher(file string, debounce time.Duration) (*fileWatcher, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	ch := make(chan struct{}, 1)
	return &fileWatcher{
		File:     abs,
		Changes:  ch,
		changes:  ch,
		done:     make(chan struct{}),
		debounce: debounce,
		watcher:  fw,
	}, nil
}

// Start watches the file's directory, so that editors replacing the file
// by rename are still seen.
func (w *fileWatcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.File)); err != nil {
		return err
	}
	go w.loop()
	return nil
}

func (w *fileWatcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *fileWatcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.File {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case now := <-ticker.C:
			if !pending.IsZero() && now.Sub(pending) >= w.debounce {
				pending = time.Time{}
				w.emit()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// emit never blocks: an unread notification already covers this one.
func (w *fileWatcher) emit() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
