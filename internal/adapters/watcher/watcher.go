// Package watcher reports new and changed files inside an inbox directory.
package watcher

import (
	"context"
	"errors"
	"iter"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/dupe/internal/core/domain"
	"go.trai.ch/dupe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// ErrorHandler receives errors reported by the underlying notifier.
type ErrorHandler func(error)

// Watcher implements ports.Watcher on top of fsnotify. Only the direct
// children of the watched directory are reported. The notifier is created
// by Start, so an unused Watcher holds no OS resources.
type Watcher struct {
	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	events    chan ports.WatchEvent
	onError   ErrorHandler
	stopped   bool
}

// NewWatcher creates a watcher. onError may be nil.
func NewWatcher(onError ErrorHandler) *Watcher {
	return &Watcher{
		events:  make(chan ports.WatchEvent, eventChannelBuffer),
		onError: onError,
	}
}

// Start begins watching dir. Events stop flowing when ctx is cancelled or
// Stop is called. A Watcher can be started once.
func (w *Watcher) Start(ctx context.Context, dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped || w.fsWatcher != nil {
		return zerr.Wrap(domain.ErrWatchFailed, "watcher already used")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create file watcher")
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return errors.Join(domain.ErrSourceUnavailable, zerr.With(zerr.Wrap(err, "failed to watch directory"), "dir", dir))
	}
	w.fsWatcher = fw
	go w.processEvents(ctx, fw)
	return nil
}

// Stop closes the underlying notifier. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	if w.fsWatcher == nil {
		close(w.events)
		return nil
	}
	return w.fsWatcher.Close()
}

// Events yields changes until the watcher stops.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context, fw *fsnotify.Watcher) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			watchEvent, ok := convertEvent(event)
			if !ok {
				continue
			}
			select {
			case w.events <- watchEvent:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(zerr.Wrap(err, "file watcher error"))
			}
		}
	}
}

// convertEvent maps an fsnotify event onto a WatchEvent. Write takes
// precedence over the other bits of a combined op.
func convertEvent(event fsnotify.Event) (ports.WatchEvent, bool) {
	path := filepath.Clean(event.Name)
	switch {
	case event.Has(fsnotify.Write):
		return ports.WatchEvent{Path: path, Operation: ports.OpWrite}, true
	case event.Has(fsnotify.Create):
		return ports.WatchEvent{Path: path, Operation: ports.OpCreate}, true
	case event.Has(fsnotify.Remove):
		return ports.WatchEvent{Path: path, Operation: ports.OpRemove}, true
	case event.Has(fsnotify.Rename):
		return ports.WatchEvent{Path: path, Operation: ports.OpRename}, true
	default:
		return ports.WatchEvent{}, false
	}
}
