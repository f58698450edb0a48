// Package debounce provides a keyed debouncer used to coalesce rapid
// autosave requests into a single trailing write per note.
package debounce

import (
	"sync"
	"time"
)

// Debouncer schedules one pending function per key. Scheduling again for the
// same key cancels the pending call and restarts the delay, so only the last
// call within a burst runs.
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[string]*time.Timer
}

func New(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// Schedule runs fn after the configured delay, replacing any pending call
// for the same key.
func (d *Debouncer) Schedule(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.timers[key] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, key)
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending call for key, if any. It reports whether a call
// was pending.
func (d *Debouncer) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.timers[key]
	if !ok {
		return false
	}
	t.Stop()
	delete(d.timers, key)
	return ok
}

// CancelAll drops every pending call. Used on shutdown so no writes fire
// after dependencies are torn down.
func (d *Debouncer) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}

// Pending reports whether a call is scheduled for key.
func (d *Debouncer) Pending(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, ok := d.timers[key]
	return ok
}
