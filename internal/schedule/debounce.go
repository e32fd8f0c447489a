package schedule

import (
	"context"
	"sync"
	"time"
)

// Debouncer groups rapid successive calls into a single call after a quiet
// period.
//
// Thread-safety: All methods are safe for concurrent use. The callback is
// never called concurrently with itself from the debouncer.
type Debouncer struct {
	mu       sync.Mutex
	sched    *Scheduler
	owned    bool
	delay    time.Duration
	token    *Token
	pending  bool
	seq      uint64 // sequence number to detect stale callbacks
	callback func()
}

// DebouncerOption configures a Debouncer.
type DebouncerOption func(*Debouncer)

// WithScheduler runs the debouncer's timers on s instead of a private
// scheduler.
func WithScheduler(s *Scheduler) DebouncerOption {
	return func(d *Debouncer) {
		d.sched = s
		d.owned = false
	}
}

// NewDebouncer creates a debouncer that invokes callback once no new calls
// have been made for at least delay.
func NewDebouncer(delay time.Duration, callback func(), opts ...DebouncerOption) *Debouncer {
	d := &Debouncer{
		delay:    delay,
		callback: callback,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.sched == nil {
		d.sched = New()
		d.owned = true
	}
	return d
}

// Call schedules the callback to run after the debounce delay. Each call
// restarts the delay.
func (d *Debouncer) Call() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = true
	d.seq++
	current := d.seq

	if d.token != nil {
		d.token.Cancel()
	}
	d.token = d.sched.Schedule(d.delay, func(context.Context) {
		d.mu.Lock()
		// Only execute if this is still the current scheduled callback.
		if d.pending && d.seq == current && d.callback != nil {
			d.pending = false
			d.mu.Unlock()
			d.callback()
			return
		}
		d.mu.Unlock()
	})
}

// CallImmediate runs the callback now if a call is pending, canceling the
// scheduled one.
func (d *Debouncer) CallImmediate() {
	d.mu.Lock()
	if d.token != nil {
		d.token.Cancel()
		d.token = nil
	}
	d.seq++

	if d.pending && d.callback != nil {
		d.pending = false
		d.mu.Unlock()
		d.callback()
		return
	}
	d.mu.Unlock()
}

// Cancel cancels any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.token != nil {
		d.token.Cancel()
		d.token = nil
	}
	d.seq++
	d.pending = false
}

// IsPending reports whether a call is waiting for its quiet period.
func (d *Debouncer) IsPending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop cancels any pending call and, if the debouncer created its own
// scheduler, stops it.
func (d *Debouncer) Stop() {
	d.Cancel()
	if d.owned {
		d.sched.Stop()
	}
}
