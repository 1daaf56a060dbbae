// Package loop drives the per-frame simulation independently of how the
// host schedules frames.
//
// A Driver owns at most one pending frame handle. Each frame runs the step
// function once; the driver then either requests the next frame or clears
// its handle. Stop cancels the pending frame synchronously, so no step runs
// after it returns.
package loop

import "time"

// Handle identifies a scheduled frame callback. The zero Handle means "none".
type Handle uint64

// FrameFunc is invoked by a Scheduler with the frame timestamp.
type FrameFunc func(now time.Time)

// Scheduler is the host's "call me on the next display frame" primitive.
type Scheduler interface {
	// RequestFrame schedules fn for the next frame and returns its handle.
	RequestFrame(fn FrameFunc) Handle
	// CancelFrame drops a pending callback. Unknown or already fired
	// handles are ignored.
	CancelFrame(h Handle)
}

// StepFunc runs one Update+Render pass and reports whether the loop should
// keep running.
type StepFunc func(now time.Time) bool

// Driver chains frames through a Scheduler until the step function asks to
// stop or Stop is called.
type Driver struct {
	sched   Scheduler
	step    StepFunc
	pending Handle
	active  bool
	frames  uint64
}

// NewDriver creates a stopped driver.
func NewDriver(sched Scheduler, step StepFunc) *Driver {
	return &Driver{sched: sched, step: step}
}

// Start schedules the first frame. Starting an active driver is a no-op.
func (d *Driver) Start() {
	if d.active {
		return
	}
	d.active = true
	d.schedule()
}

// Stop cancels the pending frame, if any.
func (d *Driver) Stop() {
	if d.pending != 0 {
		d.sched.CancelFrame(d.pending)
		d.pending = 0
	}
	d.active = false
}

// Active reports whether a frame is scheduled or currently running.
func (d *Driver) Active() bool {
	return d.active
}

// Frames returns the number of steps executed since creation.
func (d *Driver) Frames() uint64 {
	return d.frames
}

func (d *Driver) schedule() {
	d.pending = d.sched.RequestFrame(d.frame)
}

func (d *Driver) frame(now time.Time) {
	d.pending = 0
	if !d.active {
		return
	}

	d.frames++
	keepGoing := d.step(now)

	// The step may have called Stop (teardown from inside a frame).
	if !d.active {
		return
	}
	if keepGoing {
		d.schedule()
		return
	}
	d.active = false
}
