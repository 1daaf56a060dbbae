package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/loop"
	"github.com/vovakirdan/tui-runner/internal/runner"
	"github.com/vovakirdan/tui-runner/internal/session"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagFrames int
	flagRecord bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play one headless run with the autopilot",
	Long: `Run the game without a terminal. The autopilot jumps obstacles and
the frame clock is simulated, so the same --seed always produces the same
run.

Examples:
  runner simulate
  runner simulate --seed 42 --difficulty hard
  runner simulate --record --db ./runs.db`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagFrames, "frames", 20000, "Maximum frames to simulate")
	simulateCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the run to the history database")
}

// simulation is the outcome of a headless run.
type simulation struct {
	Snapshot runner.Snapshot
	Frames   int
	Jumps    int
	Pickups  int
	Record   storage.RunRecord
	Recorded bool
}

// simulate plays one run on a manual clock, letting the autopilot press
// the action key.
func simulate(ctx context.Context, cfg config.RunnerConfig, rt core.RuntimeConfig, provider assets.Provider,
	recorder session.Recorder, logger *log.Logger, maxFrames int,
) (simulation, error) {
	if rt.TickRate <= 0 {
		rt.TickRate = 60
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var (
		sim  simulation
		sess *session.Session
	)
	sched := loop.NewManualScheduler(time.Unix(0, 0).UTC(), time.Second/time.Duration(rt.TickRate))
	sess = session.New(runner.New(cfg, rt), sched, session.Options{
		Player:   "autopilot",
		Recorder: recorder,
		Logger:   logger,
		OnFrame: func(res runner.StepResult) {
			for _, e := range res.Events {
				switch e.Kind {
				case runner.EventJumped:
					sim.Jumps++
				case runner.EventCoin, runner.EventStar:
					sim.Pickups++
				}
			}
			if runner.Autopilot(sess.Snapshot()) {
				sess.Action()
			}
		},
	})

	if err := sess.Load(ctx, provider); err != nil {
		return sim, err
	}

	sess.Action()
	sim.Frames = sched.Run(maxFrames)
	sess.Stop()

	sim.Snapshot = sess.Snapshot()
	sim.Record, sim.Recorded = sess.LastRun()
	return sim, nil
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr, "simulate")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rt := runtimeConfig(80, 24)
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	var recorder session.Recorder
	if flagRecord {
		store, openErr := storage.Open(flagDBPath)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", openErr)
			os.Exit(1)
		}
		defer store.Close()
		recorder = store
	}

	sim, err := simulate(context.Background(), cfg, rt, assetProvider(), recorder, logger, flagFrames)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(summaryBox(sim, rt.Seed))
}

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 2)

var (
	victoryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	defeatStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// summaryBox renders the final state of a simulation.
func summaryBox(sim simulation, seed int64) string {
	s := sim.Snapshot

	var headline string
	switch {
	case s.Outcome == runner.OutcomeVictory:
		headline = victoryStyle.Render("REACHED THE GOAL")
	case s.Outcome == runner.OutcomeDefeat:
		headline = defeatStyle.Render("CRASHED")
	default:
		headline = labelStyle.Render(fmt.Sprintf("STOPPED after %d frames", sim.Frames))
	}

	line := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-10s", label)) + value
	}
	lines := []string{
		headline,
		"",
		line("Seed", fmt.Sprintf("%d", seed)),
		line("Score", fmt.Sprintf("%d", s.Score)),
		line("Distance", fmt.Sprintf("%.0f / %.0f (%.0f%%)", s.Distance, s.GoalDistance, s.Progress()*100)),
		line("Ticks", fmt.Sprintf("%d", s.Tick)),
		line("Jumps", fmt.Sprintf("%d", sim.Jumps)),
		line("Pickups", fmt.Sprintf("%d", sim.Pickups)),
	}
	if sim.Recorded && sim.Record.RunID != "" {
		lines = append(lines, line("Run ID", sim.Record.RunID))
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
