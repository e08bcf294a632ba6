package engine

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTickInterval is the engine cadence (~125 Hz).
const DefaultTickInterval = 8 * time.Millisecond

// TickStats summarises observed tick durations.
type TickStats struct {
	Ticks   uint64
	Average time.Duration
	Max     time.Duration
	Last    time.Duration
}

// Scheduler drives one tick function at a fixed wall-clock cadence on a
// single goroutine. Deadlines accumulate by the interval so that a slow tick
// does not shift every later one; when more than two intervals behind the
// schedule is resynchronised to now instead of bursting.
type Scheduler struct {
	logger *log.Logger

	mu  sync.Mutex
	run *schedulerRun

	statsMu sync.Mutex
	stats   TickStats
	total   time.Duration
	ticks   atomic.Uint64
}

type schedulerRun struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewScheduler creates an idle scheduler.
func NewScheduler(logger *log.Logger) *Scheduler {
	return &Scheduler{logger: orDiscard(logger)}
}

// Start begins invoking fn every interval until fn returns false or Stop is
// called. It returns false if a run is already in progress.
// fn must not call Stop; it ends the run by returning false.
func (s *Scheduler) Start(interval time.Duration, fn func() bool) bool {
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run != nil && !s.run.finished() {
		return false
	}

	r := &schedulerRun{stop: make(chan struct{}), done: make(chan struct{})}
	s.run = r
	s.resetStats()
	s.logger.Debug("scheduler started", "interval", interval)

	go s.loop(r, interval, fn)
	return true
}

// Stop cancels the current run and waits for the loop to exit, so no tick
// fires after it returns. Calling it while idle does nothing.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	r := s.run
	s.run = nil
	s.mu.Unlock()
	if r == nil {
		return
	}
	r.once.Do(func() { close(r.stop) })
	<-r.done
	s.logger.Debug("scheduler stopped", "ticks", s.ticks.Load())
}

// Running reports whether a run is in progress.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run != nil && !s.run.finished()
}

// Stats returns a snapshot of tick timing.
func (s *Scheduler) Stats() TickStats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	st := s.stats
	st.Ticks = s.ticks.Load()
	if st.Ticks > 0 {
		st.Average = s.total / time.Duration(st.Ticks)
	}
	return st
}

func (s *Scheduler) loop(r *schedulerRun, interval time.Duration, fn func() bool) {
	defer close(r.done)

	deadline := time.Now().Add(interval)
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-timer.C:
		}
		// Stop wins over a timer that fired concurrently.
		select {
		case <-r.stop:
			return
		default:
		}

		began := time.Now()
		more := fn()
		s.observe(time.Since(began))
		if !more {
			return
		}

		now := time.Now()
		deadline = nextDeadline(deadline, now, interval)
		wait := deadline.Sub(now)
		if wait < 0 {
			wait = 0
		}
		timer.Reset(wait)
	}
}

// nextDeadline advances prev by one interval, or restarts the schedule from
// now when that is still more than two intervals in the past.
func nextDeadline(prev, now time.Time, interval time.Duration) time.Time {
	next := prev.Add(interval)
	if now.Sub(next) > 2*interval {
		return now.Add(interval)
	}
	return next
}

func (s *Scheduler) observe(d time.Duration) {
	s.ticks.Add(1)
	s.statsMu.Lock()
	s.total += d
	s.stats.Last = d
	if d > s.stats.Max {
		s.stats.Max = d
	}
	s.statsMu.Unlock()
}

func (s *Scheduler) resetStats() {
	s.ticks.Store(0)
	s.statsMu.Lock()
	s.stats = TickStats{}
	s.total = 0
	s.statsMu.Unlock()
}

func (r *schedulerRun) finished() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
