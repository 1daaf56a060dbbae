// Package session ties one Game to a frame scheduler, a renderer and the
// run history. Hosts (Bubble Tea, tcell, headless) own a Session each and
// only forward input, asset results and draw requests to it.
package session

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/loop"
	"github.com/vovakirdan/tui-runner/internal/runner"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// Recorder persists finished runs. *storage.Store implements it.
type Recorder interface {
	SaveRun(run storage.RunRecord) (storage.RunRecord, error)
}

// Options configures a Session.
type Options struct {
	Player   string                  // name stored with each run
	Recorder Recorder                // optional run history
	Logger   *log.Logger             // defaults to a discarding logger
	OnFrame  func(runner.StepResult) // called after every frame, for hosts that redraw on their own
}

// Session runs one player's game.
type Session struct {
	game     *runner.Game
	renderer *runner.Renderer
	driver   *loop.Driver
	opts     Options
	logger   *log.Logger

	loadErr error
	last    *storage.RunRecord
}

// New creates a session for game driven by sched. The game stays in the
// Loading phase until AssetsLoaded succeeds.
func New(game *runner.Game, sched loop.Scheduler, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		game:     game,
		renderer: runner.NewRenderer(nil),
		opts:     opts,
		logger:   logger,
	}
	s.driver = loop.NewDriver(sched, s.step)
	return s
}

// Game returns the underlying game.
func (s *Session) Game() *runner.Game {
	return s.game
}

// Load fetches the sprite sheet synchronously and binds it.
func (s *Session) Load(ctx context.Context, p assets.Provider) error {
	sheet, err := p.Load(ctx)
	s.AssetsLoaded(sheet, err)
	return err
}

// AssetsLoaded binds the result of an asset load. A failure is fatal: the
// game stays in Loading and the error is shown until the host exits.
func (s *Session) AssetsLoaded(sheet *assets.Sheet, err error) {
	if err != nil {
		s.loadErr = err
		s.renderer.SetLoadError(err)
		s.logger.Error("cannot load sprites", "err", err)
		return
	}
	s.renderer.SetSheet(sheet)
	s.game.MarkReady()
	s.logger.Debug("sprites loaded", "count", len(sheet.Kinds()))
}

// LoadError returns the asset load failure, if any.
func (s *Session) LoadError() error {
	return s.loadErr
}

// Action forwards the single player input and makes sure the frame loop
// runs to consume it.
func (s *Session) Action() {
	if s.game.Phase() == runner.PhaseLoading {
		return
	}
	s.game.Action()
	if s.game.Pending() {
		s.driver.Start()
	}
}

// TogglePause pauses or resumes a running game.
func (s *Session) TogglePause() bool {
	paused := s.game.TogglePause()
	s.logger.Debug("pause toggled", "paused", paused)
	return paused
}

// Running reports whether the frame loop is active.
func (s *Session) Running() bool {
	return s.driver.Active()
}

// Snapshot returns the current game state.
func (s *Session) Snapshot() runner.Snapshot {
	return s.game.Snapshot()
}

// Render paints the current state onto dst.
func (s *Session) Render(dst runner.Surface) {
	s.renderer.Render(dst, s.game.Snapshot())
}

// LastRun returns the record of the most recently finished run.
func (s *Session) LastRun() (storage.RunRecord, bool) {
	if s.last == nil {
		return storage.RunRecord{}, false
	}
	return *s.last, true
}

// Stop cancels the pending frame. No tick runs after Stop returns.
func (s *Session) Stop() {
	s.driver.Stop()
}

func (s *Session) step(now time.Time) bool {
	res := s.game.Tick(now)

	for _, e := range res.Events {
		switch e.Kind {
		case runner.EventStarted:
			s.logger.Info("run started", "run", s.game.Runs(), "seed", s.game.Seed())
		case runner.EventCoin, runner.EventStar:
			s.logger.Debug("item collected", "item", e.Kind, "tick", e.Tick)
		}
	}

	if res.Ended {
		s.finish(res.Outcome)
	}
	if s.opts.OnFrame != nil {
		s.opts.OnFrame(res)
	}

	return res.Phase == runner.PhaseRunning
}

func (s *Session) finish(outcome runner.Outcome) {
	snap := s.game.Snapshot()
	record := storage.RunRecord{
		Player:   s.opts.Player,
		Score:    snap.Score,
		Distance: snap.Distance,
		Outcome:  outcome.String(),
		Ticks:    snap.Tick,
		Seed:     s.game.Seed(),
	}

	s.logger.Info("run finished",
		"outcome", outcome,
		"score", snap.Score,
		"distance", snap.Distance,
		"ticks", snap.Tick,
		"frames", s.driver.Frames())

	if s.opts.Recorder != nil {
		saved, err := s.opts.Recorder.SaveRun(record)
		if err != nil {
			// Best-effort save, the game continues regardless
			s.logger.Warn("cannot save run", "err", err)
		} else {
			record = saved
		}
	}
	s.last = &record
}
