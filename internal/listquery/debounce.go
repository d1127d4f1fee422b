package listquery

import (
	"sync"
	"time"
)

// Debouncer delays values until they have been stable for a fixed delay.
// A new Trigger cancels any pending one (last write wins), so at most one
// value is committed per stability window.
type Debouncer struct {
	delay time.Duration
	out   chan string

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// NewDebouncer creates a Debouncer with the given delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay: delay,
		out:   make(chan string, 1),
	}
}

// Output delivers committed values. Only the latest uncollected value is
// kept.
func (d *Debouncer) Output() <-chan string {
	return d.out
}

// Trigger schedules v for commit after the delay, replacing any pending value.
func (d *Debouncer) Trigger(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen, v) })
}

// Stop cancels any pending value.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

func (d *Debouncer) fire(gen uint64, v string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// A timer that lost the race with Trigger or Stop must not commit.
	if gen != d.gen {
		return
	}
	d.timer = nil

	select {
	case <-d.out:
	default:
	}
	d.out <- v
}
