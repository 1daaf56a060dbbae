package loop

import (
	"testing"
	"time"
)

func TestTeaSchedulerDispatch(t *testing.T) {
	sched := NewTeaScheduler(1000)
	if sched.Interval() != time.Millisecond {
		t.Errorf("Interval() = %v", sched.Interval())
	}
	if sched.Cmd() != nil {
		t.Error("no command should be queued before a request")
	}

	calls := 0
	d := NewDriver(sched, func(time.Time) bool {
		calls++
		return calls < 3
	})
	d.Start()

	h := sched.pending
	if sched.Cmd() == nil {
		t.Fatal("RequestFrame should queue a tick command")
	}
	if sched.Cmd() != nil {
		t.Error("Cmd() should drain the queue")
	}

	if sched.Dispatch(FrameMsg{Handle: h + 100, Time: epoch}) {
		t.Error("a foreign handle must be ignored")
	}
	for i := 0; i < 3; i++ {
		if !sched.Dispatch(FrameMsg{Handle: sched.pending, Time: epoch}) {
			t.Fatalf("frame %d did not run", i)
		}
	}
	if calls != 3 || d.Active() || sched.Pending() {
		t.Errorf("calls=%d active=%v pending=%v", calls, d.Active(), sched.Pending())
	}
}

func TestTeaSchedulerDropsCancelledFrames(t *testing.T) {
	sched := NewTeaScheduler(60)
	ran := false
	d := NewDriver(sched, func(time.Time) bool {
		ran = true
		return true
	})

	d.Start()
	stale := FrameMsg{Handle: sched.pending, Time: epoch}
	d.Stop()

	if sched.Dispatch(stale) {
		t.Error("a cancelled frame must not run")
	}
	if ran {
		t.Error("step ran after Stop")
	}

	// A restarted driver ignores messages from its previous life.
	d.Start()
	if sched.Dispatch(stale) {
		t.Error("stale message ran after restart")
	}
	if !sched.Dispatch(FrameMsg{Handle: sched.pending, Time: epoch}) {
		t.Error("fresh frame should run")
	}
}

func TestTeaSchedulerDefaultRate(t *testing.T) {
	if got := NewTeaScheduler(0).Interval(); got != time.Second/60 {
		t.Errorf("default interval %v", got)
	}
}
