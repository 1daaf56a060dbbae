package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagOutcome string
	flagLimit   int
	flagBrowse  bool
	flagClear   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best recorded runs and overall statistics.

Examples:
  runner scores
  runner scores --outcome victory --limit 5
  runner scores --browse
  runner scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagOutcome, "outcome", "", "Only show runs ending in victory or defeat")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the whole run history")
}

func runScores(_ *cobra.Command, _ []string) {
	switch flagOutcome {
	case "", storage.OutcomeVictory, storage.OutcomeDefeat:
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown outcome %q (want victory or defeat)\n", flagOutcome)
		os.Exit(1)
	}

	// Open run history
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing run history: %v\n", err)
			return
		}
		fmt.Println("Run history cleared.")
		return
	}

	if flagBrowse {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	var runs []storage.RunRecord
	if flagOutcome == "" {
		runs, err = store.TopRuns(flagLimit)
	} else {
		runs, err = store.TopRunsByOutcome(flagOutcome, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Println(scoresTitle(store))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play' to set the first high score!")
		return
	}

	fmt.Println(runsTable(runs))

	// Show totals
	stats, err := store.Stats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Victories: %d  Defeats: %d\n", stats.Runs, stats.Victories, stats.Defeats)
		fmt.Printf("Best: %d  Average: %.0f  Longest run: %.0f\n", stats.HighScore, stats.AvgScore, stats.BestDistance)
	}
}

// scoresTitle names the all-time high score next to the heading.
func scoresTitle(store *storage.Store) string {
	high, err := store.HighScore()
	if err != nil || high == 0 {
		return "Goal Runner - Best Runs"
	}
	return fmt.Sprintf("Goal Runner - Best Runs (high score %d)", high)
}
