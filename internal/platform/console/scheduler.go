package console

import (
	"time"

	"github.com/vovakirdan/tui-runner/internal/loop"
)

// Scheduler hands frames to the host's ticker. It is only touched from the
// host goroutine, so it needs no locking.
type Scheduler struct {
	interval time.Duration
	last     loop.Handle
	pending  loop.Handle
	fn       loop.FrameFunc
}

// NewScheduler creates a scheduler for fps frames per second.
func NewScheduler(fps int) *Scheduler {
	if fps <= 0 {
		fps = 60
	}
	return &Scheduler{interval: time.Second / time.Duration(fps)}
}

// Interval returns the ticker period.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// RequestFrame implements loop.Scheduler.
func (s *Scheduler) RequestFrame(fn loop.FrameFunc) loop.Handle {
	s.last++
	s.pending = s.last
	s.fn = fn
	return s.pending
}

// CancelFrame implements loop.Scheduler.
func (s *Scheduler) CancelFrame(h loop.Handle) {
	if h == s.pending {
		s.pending = 0
		s.fn = nil
	}
}

// Pending reports whether a frame is waiting for the next tick.
func (s *Scheduler) Pending() bool {
	return s.pending != 0
}

// Fire runs the pending frame, if any, and reports whether one ran.
func (s *Scheduler) Fire(now time.Time) bool {
	if s.pending == 0 {
		return false
	}
	fn := s.fn
	s.pending = 0
	s.fn = nil
	fn(now)
	return true
}
