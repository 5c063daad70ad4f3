// Package watcher reports changes to combo files for live reload.
//
// The watcher subscribes to the directory holding each watched file, since
// editors commonly replace files by renaming a temporary copy over them.
// Bursts of events for one file are coalesced and delivered once the file
// has been quiet for the debounce interval.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Event represents a file change event.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the operation that triggered the event.
	Op Operation

	// Time is when the last coalesced change occurred.
	Time time.Time
}

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates a new file was created.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed.
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Handler is called when a file change is detected.
type Handler func(event Event)

// Watcher monitors files for changes.
type Watcher struct {
	mu sync.RWMutex

	// Watched files and the directories subscribed for them
	files map[string]struct{}
	dirs  map[string]struct{}

	handlers []Handler

	fsw  *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup

	running bool

	// Debounce settings
	debounce     time.Duration
	pendingMu    sync.Mutex
	pendingFiles map[string]pendingEvent

	log logrus.FieldLogger
}

// pendingEvent stores a pending event with its operation for debouncing.
type pendingEvent struct {
	Op   Operation
	Time time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration for rapid changes.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger for watch errors.
func WithLogger(log logrus.FieldLogger) Option {
	return func(w *Watcher) {
		if log != nil {
			w.log = log
		}
	}
}

// New creates a new file watcher.
func New(opts ...Option) *Watcher {
	w := &Watcher{
		files:        make(map[string]struct{}),
		dirs:         make(map[string]struct{}),
		debounce:     100 * time.Millisecond,
		pendingFiles: make(map[string]pendingEvent),
		log:          logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.WithField("component", "watcher")

	return w
}

// Watch adds a file to the watch list. The file need not exist yet, but its
// directory must.
func (w *Watcher) Watch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.files[absPath] = struct{}{}
	if w.fsw != nil {
		return w.addDirLocked(filepath.Dir(absPath))
	}
	return nil
}

// OnChange registers a handler for file change events.
func (w *Watcher) OnChange(handler Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Start begins watching files for changes.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	w.fsw = fsw
	w.done = make(chan struct{})

	for path := range w.files {
		if err := w.addDirLocked(filepath.Dir(path)); err != nil {
			_ = fsw.Close()
			w.fsw = nil
			w.dirs = make(map[string]struct{})
			return err
		}
	}
	w.running = true

	w.wg.Add(1)
	go w.eventLoop(fsw)

	if w.debounce > 0 {
		w.wg.Add(1)
		go w.debounceLoop()
	}
	return nil
}

// Stop stops watching files.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.done)
	fsw := w.fsw
	w.fsw = nil
	w.dirs = make(map[string]struct{})
	w.mu.Unlock()

	_ = fsw.Close()
	w.wg.Wait()
}

// isRunning returns whether the watcher is active.
func (w *Watcher) isRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// WatchedFiles returns the sorted list of watched files.
func (w *Watcher) WatchedFiles() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	files := make([]string, 0, len(w.files))
	for path := range w.files {
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

func (w *Watcher) addDirLocked(dir string) error {
	if _, ok := w.dirs[dir]; ok {
		return nil
	}
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	w.dirs[dir] = struct{}{}
	return nil
}

// eventLoop translates fsnotify events for watched files.
func (w *Watcher) eventLoop(fsw *fsnotify.Watcher) {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			event, ok := w.translate(ev)
			if !ok {
				continue
			}
			if w.debounce > 0 {
				w.queueEvent(event)
			} else {
				w.emitEvent(event)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("file watch error")
		}
	}
}

func (w *Watcher) translate(ev fsnotify.Event) (Event, bool) {
	path := filepath.Clean(ev.Name)

	w.mu.RLock()
	_, watched := w.files[path]
	w.mu.RUnlock()
	if !watched {
		return Event{}, false
	}

	var op Operation
	switch {
	case ev.Has(fsnotify.Remove):
		op = OpRemove
	case ev.Has(fsnotify.Rename):
		op = OpRename
	case ev.Has(fsnotify.Create):
		op = OpCreate
	case ev.Has(fsnotify.Write):
		op = OpWrite
	default:
		// Chmod alone does not change content.
		return Event{}, false
	}
	return Event{Path: path, Op: op, Time: time.Now()}, true
}

// queueEvent queues an event for debounced delivery.
// It coalesces events:
// - create + write => create
// - write + write => write (latest time)
// - any + remove => remove
// - remove + create => write (file replaced)
func (w *Watcher) queueEvent(event Event) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	existing, exists := w.pendingFiles[event.Path]
	if !exists {
		w.pendingFiles[event.Path] = pendingEvent{Op: event.Op, Time: event.Time}
		return
	}

	op := event.Op
	switch event.Op {
	case OpRemove:
	case OpCreate:
		if existing.Op == OpRemove || existing.Op == OpRename {
			op = OpWrite
		}
	case OpWrite:
		if existing.Op == OpCreate {
			op = OpCreate
		}
	}
	w.pendingFiles[event.Path] = pendingEvent{Op: op, Time: event.Time}
}

// debounceLoop processes debounced events.
func (w *Watcher) debounceLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.processPendingEvents()
		}
	}
}

// processPendingEvents emits events that have been stable.
func (w *Watcher) processPendingEvents() {
	w.pendingMu.Lock()
	stableThreshold := time.Now().Add(-w.debounce)

	var toEmit []Event
	for path, pending := range w.pendingFiles {
		if pending.Time.Before(stableThreshold) {
			toEmit = append(toEmit, Event{
				Path: path,
				Op:   pending.Op,
				Time: pending.Time,
			})
			delete(w.pendingFiles, path)
		}
	}
	w.pendingMu.Unlock()

	for _, event := range toEmit {
		w.emitEvent(event)
	}
}

// emitEvent calls all handlers with the event.
func (w *Watcher) emitEvent(event Event) {
	w.mu.RLock()
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.RUnlock()

	for _, handler := range handlers {
		w.safeCallHandler(handler, event)
	}
}

// safeCallHandler calls a handler with panic recovery.
func (w *Watcher) safeCallHandler(handler Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			w.log.WithField("panic", r).Error("watch handler panicked")
		}
	}()
	handler(event)
}
