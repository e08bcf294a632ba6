package engine

import "sort"

// Deferred is a queue of one-shot actions due at a clock time (seconds).
// Actions run on the tick goroutine from Run; there are no timer callbacks.
type Deferred struct {
	now     float64
	seq     uint64
	pending []deferredAction
}

type deferredAction struct {
	due float64
	seq uint64
	fn  func()
}

// After schedules fn to run delay seconds after the time of the last Run.
func (d *Deferred) After(delay float64, fn func()) {
	if fn == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	d.seq++
	d.pending = append(d.pending, deferredAction{due: d.now + delay, seq: d.seq, fn: fn})
}

// Run executes every action due at or before now, earliest first and in
// scheduling order for equal due times. Actions scheduled while running wait
// for the next Run.
func (d *Deferred) Run(now float64) int {
	d.now = now
	if len(d.pending) == 0 {
		return 0
	}

	var due []deferredAction
	keep := d.pending[:0]
	for _, a := range d.pending {
		if a.due <= now {
			due = append(due, a)
		} else {
			keep = append(keep, a)
		}
	}
	d.pending = keep

	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})
	for _, a := range due {
		a.fn()
	}
	return len(due)
}

// Pending returns the number of scheduled actions.
func (d *Deferred) Pending() int {
	return len(d.pending)
}

// Clear drops every pending action and rewinds the time reference.
func (d *Deferred) Clear() {
	d.pending = nil
	d.now = 0
}
