package plan

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind describes the type of plan-file change detected.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota // Plan file written
	ChangeRemoved                    // Plan file deleted
)

// Change represents a detected change to the watched plan file.
type Change struct {
	Kind ChangeKind
	File string // Absolute path
}

// Watcher monitors a single plan file for changes using fsnotify.
// fsnotify watches directories more reliably than files (editors often
// replace the file on save), so the parent directory is watched and
// events are filtered to the plan file's name.
type Watcher struct {
	Path    string
	Changes <-chan Change // Read-only external channel

	changes chan Change // Internal write channel
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for the plan file at path.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}

	ch := make(chan Change, 16)
	w := &Watcher{
		Path:    abs,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}
	return w, nil
}

// Start begins watching the plan file's directory for changes.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and channels.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce: editors emit bursts of events per save.
	const debounce = 100 * time.Millisecond
	var pending time.Time
	var pendingKind ChangeKind
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.changes <- Change{Kind: pendingKind, File: w.Path}
				}
				return
			}

			if filepath.Base(event.Name) != filepath.Base(w.Path) {
				continue
			}

			switch {
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				pending = time.Now()
				pendingKind = ChangeRemoved
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				pending = time.Now()
				pendingKind = ChangeModified
			}

		case _, ok := <-ticker.C:
			if !ok {
				return
			}
			if !pending.IsZero() && time.Since(pending) >= debounce {
				w.changes <- Change{Kind: pendingKind, File: w.Path}
				pending = time.Time{}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}
