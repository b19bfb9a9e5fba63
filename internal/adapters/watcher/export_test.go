// export_test.go exports private functions for white-box testing.
package watcher

import "unique"

// FireSuperseded delivers the callback of the timer that the latest Add for
// path replaced, as if it had fired just before being stopped.
func FireSuperseded(d *Debouncer, path string) {
	handle := unique.Make(path)
	d.mu.Lock()
	gen := d.timers[handle].gen
	d.mu.Unlock()
	d.fire(handle, gen-1)
}
