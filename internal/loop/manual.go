package loop

import "time"

// ManualScheduler is a Scheduler advanced explicitly by the caller. Frame
// timestamps start at a fixed instant and grow by a fixed interval, which
// makes runs reproducible in tests and headless simulations.
type ManualScheduler struct {
	now      time.Time
	interval time.Duration
	last     Handle
	pending  Handle
	fn       FrameFunc
}

// NewManualScheduler creates a scheduler whose first frame fires at
// start+interval.
func NewManualScheduler(start time.Time, interval time.Duration) *ManualScheduler {
	return &ManualScheduler{now: start, interval: interval}
}

// RequestFrame implements Scheduler. A new request replaces any pending one.
func (s *ManualScheduler) RequestFrame(fn FrameFunc) Handle {
	s.last++
	s.pending = s.last
	s.fn = fn
	return s.pending
}

// CancelFrame implements Scheduler.
func (s *ManualScheduler) CancelFrame(h Handle) {
	if h == s.pending {
		s.pending = 0
		s.fn = nil
	}
}

// Pending reports whether a frame is waiting to fire.
func (s *ManualScheduler) Pending() bool {
	return s.pending != 0
}

// Now returns the timestamp of the most recent frame.
func (s *ManualScheduler) Now() time.Time {
	return s.now
}

// Step advances the clock by one interval and fires the pending frame.
// It returns false when nothing was pending.
func (s *ManualScheduler) Step() bool {
	if s.pending == 0 {
		return false
	}
	fn := s.fn
	s.pending = 0
	s.fn = nil
	s.now = s.now.Add(s.interval)
	fn(s.now)
	return true
}

// Run fires frames until none is pending or max frames ran, returning the
// number of frames fired.
func (s *ManualScheduler) Run(max int) int {
	n := 0
	for n < max && s.Step() {
		n++
	}
	return n
}
