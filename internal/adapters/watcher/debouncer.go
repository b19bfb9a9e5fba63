package watcher

import (
	"sync"
	"time"
	"unique"
)

// Debouncer delays a callback per path until no further event for that
// path arrived within the window. Each path settles independently.
type Debouncer struct {
	mu       sync.Mutex
	timers   map[unique.Handle[string]]pending
	gen      uint64
	window   time.Duration
	callback func(path string)
	stopped  bool
}

// pending is the settle timer of one path. gen identifies the Add that
// armed it, so a timer that fired while being replaced can tell it is stale.
type pending struct {
	timer *time.Timer
	gen   uint64
}

// NewDebouncer creates a new debouncer with the given settle window and callback.
func NewDebouncer(window time.Duration, callback func(path string)) *Debouncer {
	return &Debouncer{
		timers:   make(map[unique.Handle[string]]pending),
		window:   window,
		callback: callback,
	}
}

// Add records an event for path and restarts its settle timer.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	handle := unique.Make(path)
	if p, ok := d.timers[handle]; ok {
		p.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timers[handle] = pending{
		timer: time.AfterFunc(d.window, func() { d.fire(handle, gen) }),
		gen:   gen,
	}
}

// Forget drops a pending path without invoking the callback.
func (d *Debouncer) Forget(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	handle := unique.Make(path)
	if p, ok := d.timers[handle]; ok {
		p.timer.Stop()
		delete(d.timers, handle)
	}
}

// Pending returns the number of paths waiting to settle.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.timers)
}

func (d *Debouncer) fire(handle unique.Handle[string], gen uint64) {
	d.mu.Lock()
	if p, ok := d.timers[handle]; !ok || p.gen != gen || d.stopped {
		d.mu.Unlock()
		return
	}
	delete(d.timers, handle)
	d.mu.Unlock()

	if d.callback != nil {
		d.callback(handle.Value())
	}
}

// Flush invokes the callback synchronously for every pending path.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	paths := make([]string, 0, len(d.timers))
	for handle, p := range d.timers {
		// A timer that already fired keeps its entry and delivers on its own.
		if p.timer.Stop() {
			paths = append(paths, handle.Value())
			delete(d.timers, handle)
		}
	}
	d.mu.Unlock()

	if d.callback == nil {
		return
	}
	for _, path := range paths {
		d.callback(path)
	}
}

// Stop cancels all pending timers. Later calls to Add are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for _, p := range d.timers {
		p.timer.Stop()
	}
	clear(d.timers)
}
