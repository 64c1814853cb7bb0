// Package watcher polls source directories for file changes, so resolve runs
// can be re-triggered in watch mode without a platform-specific notification
// dependency.
package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Op classifies a file change.
type Op string

const (
	OpCreate Op = "create"
	OpWrite  Op = "write"
	OpRemove Op = "remove"
)

// Event represents one file change.
type Event struct {
	Path string
	Op   Op
}

// DefaultPollInterval is the default polling interval for change detection.
const DefaultPollInterval = 500 * time.Millisecond

// Watcher watches directories for changes to files with matching extensions.
// Changes within the debounce window are delivered as one batch.
type Watcher struct {
	dirs         []string
	extensions   []string // e.g. [".ts", ".tsx"]
	debounce     time.Duration
	pollInterval time.Duration
	onChange     func(events []Event)

	mu      sync.Mutex
	pending []Event
	timer   *time.Timer
	stopCh  chan struct{}
}

// New creates a watcher over the given directories.
func New(dirs []string, extensions []string, debounce time.Duration, onChange func(events []Event)) *Watcher {
	return &Watcher{
		dirs:         dirs,
		extensions:   extensions,
		debounce:     debounce,
		pollInterval: DefaultPollInterval,
		onChange:     onChange,
		stopCh:       make(chan struct{}),
	}
}

// SetPollInterval overrides the polling interval.
func (w *Watcher) SetPollInterval(d time.Duration) {
	w.pollInterval = d
}

// Watch blocks and polls for changes until Stop is called. Polling keeps the
// implementation identical across platforms.
func (w *Watcher) Watch() error {
	snapshot := w.snapshot()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return nil
		case <-ticker.C:
			current := w.snapshot()
			events := diff(snapshot, current)
			if len(events) > 0 {
				w.enqueue(events)
			}
			snapshot = current
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
}

// enqueue appends events and (re)arms the debounce timer so a burst of edits
// produces one onChange call.
func (w *Watcher) enqueue(events []Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = append(w.pending, events...)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		pending := w.pending
		w.pending = nil
		w.mu.Unlock()
		if len(pending) > 0 {
			w.onChange(pending)
		}
	})
}

type fileState struct {
	modTime time.Time
	size    int64
}

func (w *Watcher) snapshot() map[string]fileState {
	snap := make(map[string]fileState)
	for _, dir := range w.dirs {
		filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			ext := filepath.Ext(path)
			for _, e := range w.extensions {
				if ext == e {
					snap[path] = fileState{modTime: info.ModTime(), size: info.Size()}
					break
				}
			}
			return nil
		})
	}
	return snap
}

func diff(old, current map[string]fileState) []Event {
	var events []Event

	for path, state := range current {
		prev, ok := old[path]
		switch {
		case !ok:
			events = append(events, Event{Path: path, Op: OpCreate})
		case state.modTime != prev.modTime || state.size != prev.size:
			events = append(events, Event{Path: path, Op: OpWrite})
		}
	}
	for path := range old {
		if _, ok := current[path]; !ok {
			events = append(events, Event{Path: path, Op: OpRemove})
		}
	}
	return events
}
