// Package engine holds the shared real-time substrate every game composes:
// clock, scheduler, lifecycle, wrapping world/camera, visual pool, deferred
// actions, the avatar wrapper and the per-game Session.
package engine

import (
	"sync"
	"time"
)

// DefaultDTCeiling is the largest dt a game ever observes.
const DefaultDTCeiling = 50 * time.Millisecond

// TimeSource provides the current time.
type TimeSource interface {
	Now() time.Time
}

// SystemTime reads the monotonic wall clock.
type SystemTime struct{}

// Now returns time.Now().
func (SystemTime) Now() time.Time { return time.Now() }

// ManualTime is a controllable TimeSource for tests and replays.
type ManualTime struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualTime creates a manual time source starting at start.
func NewManualTime(start time.Time) *ManualTime {
	return &ManualTime{now: start}
}

// Now returns the current manual time.
func (m *ManualTime) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set replaces the current time.
func (m *ManualTime) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves time forward by d.
func (m *ManualTime) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Clock produces clamped per-tick delta time from a TimeSource.
// It is mutated only by the tick that owns it.
type Clock struct {
	src     TimeSource
	start   time.Time
	last    time.Time
	ceiling time.Duration
}

// NewClock creates a clock. A non-positive ceiling selects DefaultDTCeiling.
func NewClock(src TimeSource, ceiling time.Duration) *Clock {
	if src == nil {
		src = SystemTime{}
	}
	if ceiling <= 0 {
		ceiling = DefaultDTCeiling
	}
	c := &Clock{src: src, ceiling: ceiling}
	c.Reset()
	return c
}

// Reset restarts elapsed time and the last-tick reference at now.
func (c *Clock) Reset() {
	now := c.src.Now()
	c.start = now
	c.last = now
}

// Tick returns the seconds since the previous tick, clamped to [0, ceiling],
// and advances the last-tick reference.
func (c *Clock) Tick() float64 {
	now := c.src.Now()
	d := now.Sub(c.last)
	c.last = now
	if d < 0 {
		d = 0
	}
	if d > c.ceiling {
		d = c.ceiling
	}
	return d.Seconds()
}

// Elapsed returns seconds since the last Reset.
func (c *Clock) Elapsed() float64 {
	return c.src.Now().Sub(c.start).Seconds()
}

// Now returns the current time of the underlying source.
func (c *Clock) Now() time.Time {
	return c.src.Now()
}

// Ceiling returns the dt clamp.
func (c *Clock) Ceiling() time.Duration {
	return c.ceiling
}

// TicksToSeconds converts a tick count at the given interval into seconds.
func TicksToSeconds(n int, interval time.Duration) float64 {
	return float64(n) * interval.Seconds()
}

// SecondsToTicks converts seconds into a whole number of ticks, rounding up
// so that a non-zero duration always lasts at least one tick.
func SecondsToTicks(s float64, interval time.Duration) int {
	if s <= 0 || interval <= 0 {
		return 0
	}
	n := s / interval.Seconds()
	ticks := int(n)
	if float64(ticks) < n {
		ticks++
	}
	return ticks
}
