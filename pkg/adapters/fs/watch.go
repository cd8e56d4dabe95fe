package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/silt/pkg/core"
)

const (
	defaultEventBuffer = 100
	debounceWindow     = 50 * time.Millisecond
)

// Watch implements core.Watchable. It observes the store directory and emits
// an event per document change until ctx is cancelled. Events are debounced
// per document ID; pattern is a doublestar glob matched against IDs
// (empty matches everything).
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern: %s", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := r.addWatchDirs(watcher); err != nil {
		watcher.Close()
		return nil, err
	}

	buffer := r.config.EventBuffer
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	events := make(chan core.Event, buffer)

	deb := newDebouncer(debounceWindow)
	r.setWatcherActive(true)

	go func() {
		defer close(events)
		defer deb.stop()
		defer watcher.Close()
		defer r.setWatcherActive(false)

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				r.handleWatchEvent(ctx, ev, pattern, deb, events)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				r.config.Logger.Error("fsnotify error", "error", err)
			}
		}
	}()

	return events, nil
}

// addWatchDirs registers the root and its subdirectories with the watcher,
// skipping the system directory.
func (r *Repository) addWatchDirs(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(r.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == r.config.SystemDir {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (r *Repository) handleWatchEvent(ctx context.Context, ev fsnotify.Event, pattern string, deb *debouncer, events chan<- core.Event) {
	if r.shouldIgnore(ev.Name) {
		return
	}

	eType := mapEventType(ev)
	if eType == "" {
		return
	}

	id, err := r.resolveID(ev.Name)
	if err != nil {
		r.config.Logger.Debug("failed to resolve document ID", "path", ev.Name, "error", err)
		return
	}

	if pattern != "" {
		if ok, _ := doublestar.Match(pattern, id); !ok {
			return
		}
	}

	deb.add(id, func() {
		defer func() {
			// The channel closes on shutdown; a late timer must not panic.
			_ = recover()
		}()
		select {
		case events <- core.Event{Type: eType, ID: id, Timestamp: time.Now().Unix()}:
		case <-ctx.Done():
		}
	})
}

// shouldIgnore filters out temp files, the system directory, and
// unsupported extensions.
func (r *Repository) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, TempFilePrefix) {
		return true
	}

	rel, err := filepath.Rel(r.Path, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return true
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part == r.config.SystemDir {
			return true
		}
	}

	_, supported := r.serializers[filepath.Ext(base)]
	return !supported
}

// resolveID maps an absolute file path back to a document ID.
func (r *Repository) resolveID(path string) (string, error) {
	rel, err := filepath.Rel(r.Path, path)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	return strings.TrimSuffix(rel, filepath.Ext(rel)), nil
}

// mapEventType converts fsnotify operations to domain event types.
// Atomic writes surface as Create on the target (rename over existing file).
func mapEventType(ev fsnotify.Event) core.EventType {
	switch {
	case ev.Has(fsnotify.Create):
		return core.EventCreate
	case ev.Has(fsnotify.Write):
		return core.EventModify
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

// debouncer coalesces rapid events per key into a single callback.
type debouncer struct {
	window time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window: window,
		timers: make(map[string]*time.Timer),
	}
}

// add schedules fire after the window, replacing any pending timer for key.
func (d *debouncer) add(key string, fire func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.timers[key] = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		delete(d.timers, key)
		d.mu.Unlock()
		fire()
	})
}

// stop cancels all pending timers.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
