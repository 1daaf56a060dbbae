// Package runner implements Goal Runner: a side-scrolling runner where the
// player jumps over obstacles, collects coins and stars, and wins by
// covering a fixed distance.
//
// Game owns the only mutable World and exposes it to hosts as value
// snapshots. Input is latched and consumed on the next Tick, so key
// handlers never touch the world directly.
package runner

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// Phase is the lifecycle state of a Game.
type Phase int

const (
	PhaseLoading Phase = iota // sprites not ready yet
	PhaseIdle                 // title screen, waiting for the first start
	PhaseRunning
	PhaseEnded // a run finished, see Outcome
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Outcome is how a run ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "none"
	}
}

// ParseOutcome converts a stored outcome name back to an Outcome.
func ParseOutcome(s string) (Outcome, bool) {
	switch s {
	case "victory":
		return OutcomeVictory, true
	case "defeat":
		return OutcomeDefeat, true
	}
	return OutcomeNone, false
}

// EventKind identifies something that happened during a tick.
type EventKind int

const (
	EventStarted EventKind = iota
	EventJumped
	EventLanded
	EventCoin
	EventStar
	EventVictory
	EventDefeat
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventJumped:
		return "jumped"
	case EventLanded:
		return "landed"
	case EventCoin:
		return "coin"
	case EventStar:
		return "star"
	case EventVictory:
		return "victory"
	case EventDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Event is emitted by Tick for hosts that log or react to gameplay.
type Event struct {
	Kind EventKind
	Tick int
}

// StepResult reports what a Tick did.
type StepResult struct {
	Phase   Phase
	Outcome Outcome
	Ended   bool // the run ended on this tick
	Events  []Event
}

type pendingInput int

const (
	inputNone pendingInput = iota
	inputStart
	inputJump
)

// Option configures a Game.
type Option func(*Game)

// WithRandSource makes every run draw from src instead of a source seeded
// from RuntimeConfig.Seed.
func WithRandSource(src rand.Source) Option {
	return func(g *Game) {
		g.source = src
	}
}

// Game is one player's runner instance.
type Game struct {
	cfg        config.RunnerConfig
	runtime    core.RuntimeConfig
	difficulty *config.DifficultyManager
	spawner    *Spawner
	source     rand.Source

	world   World
	phase   Phase
	outcome Outcome
	paused  bool
	pending pendingInput
	runs    int
}

// New creates a game in the Loading phase. Call MarkReady once the sprites
// are available.
func New(cfg config.RunnerConfig, runtime core.RuntimeConfig, opts ...Option) *Game {
	g := &Game{
		cfg:        cfg,
		runtime:    runtime,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		world:      newWorld(cfg),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.spawner = NewSpawner(g.rng(), cfg)
	return g
}

// Config returns the game configuration.
func (g *Game) Config() config.RunnerConfig {
	return g.cfg
}

// Phase returns the current lifecycle phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Outcome returns how the last run ended, or OutcomeNone.
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// Paused reports whether a running game is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// Runs returns the number of runs started.
func (g *Game) Runs() int {
	return g.runs
}

// Seed returns the seed of the current run. It is meaningless when a
// custom rand source was injected.
func (g *Game) Seed() int64 {
	return g.runtime.Seed + int64(max(g.runs-1, 0))
}

// MarkReady leaves the Loading phase. It has no effect later on.
func (g *Game) MarkReady() {
	if g.phase == PhaseLoading {
		g.phase = PhaseIdle
	}
}

// Action latches the single player input: a start request when no run is
// in progress, a jump request while running. It is consumed by the next
// Tick.
func (g *Game) Action() {
	switch g.phase {
	case PhaseIdle, PhaseEnded:
		g.pending = inputStart
	case PhaseRunning:
		if !g.paused {
			g.pending = inputJump
		}
	}
}

// Pending reports whether an input is waiting for the next Tick.
func (g *Game) Pending() bool {
	return g.pending != inputNone
}

// TogglePause pauses or resumes a running game and returns the new state.
func (g *Game) TogglePause() bool {
	if g.phase != PhaseRunning {
		return false
	}
	g.paused = !g.paused
	g.pending = inputNone
	return g.paused
}

// Start begins a new run at frame time now, discarding all state of the
// previous run.
func (g *Game) Start(now time.Time) {
	g.runs++
	g.world = newWorld(g.cfg)
	g.spawner.Reset(g.rng(), now)
	g.phase = PhaseRunning
	g.outcome = OutcomeNone
	g.paused = false
	g.pending = inputNone
}

// Tick consumes the latched input and, while running, advances the world
// by one update step.
func (g *Game) Tick(now time.Time) StepResult {
	input := g.pending
	g.pending = inputNone

	var events []Event
	switch g.phase {
	case PhaseIdle, PhaseEnded:
		if input == inputStart {
			g.Start(now)
			events = append(events, Event{Kind: EventStarted})
		}
	case PhaseRunning:
		if g.paused {
			break
		}
		if input == inputJump && g.world.Player.Jump() {
			events = append(events, Event{Kind: EventJumped, Tick: g.world.Tick})
		}
		events = append(events, g.update(now)...)
	}

	return StepResult{
		Phase:   g.phase,
		Outcome: g.outcome,
		Ended:   g.phase == PhaseEnded && len(events) > 0 && isTerminal(events[len(events)-1]),
		Events:  events,
	}
}

// Snapshot returns a copy of the current state safe to hold across ticks.
func (g *Game) Snapshot() Snapshot {
	return newSnapshot(g)
}

func (g *Game) end(o Outcome) {
	g.phase = PhaseEnded
	g.outcome = o
	g.paused = false
}

func (g *Game) rng() *rand.Rand {
	if g.source != nil {
		return rand.New(g.source)
	}
	return rand.New(rand.NewSource(g.Seed()))
}

func isTerminal(e Event) bool {
	return e.Kind == EventVictory || e.Kind == EventDefeat
}
