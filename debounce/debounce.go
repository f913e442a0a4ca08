// Package debounce collapses rapid-fire calls into one execution after
// a quiet period, for validation-style callers that fire per keystroke.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs the function passed to the most recent Call once the
// quiet period elapses with no further calls. Each Call resets the
// countdown and replaces the pending function.
type Debouncer struct {
	quiet time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func New(quiet time.Duration) *Debouncer {
	return &Debouncer{quiet: quiet}
}

// Call schedules fn, cancelling whatever was pending.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, fn)
}

// Stop cancels the pending call, if any. The debouncer accepts no
// further calls afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
