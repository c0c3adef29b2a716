package search

import (
	"sync"
	"time"
)

// DefaultDebounce is the delay between the last keystroke and the search
// request it triggers.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer coalesces rapid Trigger calls into one callback after the
// delay elapses with no further triggers. Each Trigger carries the value
// to deliver, so callers hand over a snapshot and the callback never
// reads caller state from the timer goroutine. A stopped debouncer never
// fires again, so an owner tearing down cannot leak a late request.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	pending T
	stopped bool
}

func NewDebouncer[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Trigger schedules the callback with v, replacing any pending one.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending = v
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Flush runs a pending callback immediately instead of waiting out the
// delay. No-op when nothing is pending.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	pending := d.timer != nil && d.timer.Stop()
	d.timer = nil
	v := d.pending
	d.mu.Unlock()

	if pending {
		d.fn(v)
	}
}

// Stop cancels any pending callback and disables the debouncer.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	v := d.pending
	d.mu.Unlock()

	d.fn(v)
}
