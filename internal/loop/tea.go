package loop

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is delivered by Bubble Tea when a requested frame is due.
type FrameMsg struct {
	Handle Handle
	Time   time.Time
}

// TeaScheduler maps frame requests onto tea.Tick commands. Bubble Tea
// serialises Update calls, so the scheduler needs no locking; frames that
// were cancelled or superseded before their message arrived are dropped by
// Dispatch.
type TeaScheduler struct {
	interval time.Duration
	last     Handle
	pending  Handle
	fn       FrameFunc
	cmds     []tea.Cmd
}

// NewTeaScheduler creates a scheduler firing at fps frames per second.
func NewTeaScheduler(fps int) *TeaScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &TeaScheduler{interval: time.Second / time.Duration(fps)}
}

// Interval returns the time between frames.
func (s *TeaScheduler) Interval() time.Duration {
	return s.interval
}

// RequestFrame implements Scheduler. The tick command is queued and must
// be returned to Bubble Tea through Cmd.
func (s *TeaScheduler) RequestFrame(fn FrameFunc) Handle {
	s.last++
	h := s.last
	s.pending = h
	s.fn = fn
	s.cmds = append(s.cmds, tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return FrameMsg{Handle: h, Time: t}
	}))
	return h
}

// CancelFrame implements Scheduler.
func (s *TeaScheduler) CancelFrame(h Handle) {
	if h == s.pending {
		s.pending = 0
		s.fn = nil
	}
}

// Pending reports whether a frame is waiting for its message.
func (s *TeaScheduler) Pending() bool {
	return s.pending != 0
}

// Dispatch runs the frame carried by msg if it is still the pending one.
// It reports whether a frame ran.
func (s *TeaScheduler) Dispatch(msg FrameMsg) bool {
	if msg.Handle == 0 || msg.Handle != s.pending {
		return false
	}
	fn := s.fn
	s.pending = 0
	s.fn = nil
	fn(msg.Time)
	return true
}

// Cmd drains the tick commands queued since the last call.
func (s *TeaScheduler) Cmd() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}
