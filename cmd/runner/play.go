package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/platform/console"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/session"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagBackend string
	flagPlayer  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Goal Runner",
	Long: `Start a game in this terminal.

Controls:
  Space/Up/W/Enter - Start a run, jump
  P                - Pause
  Ctrl+S           - Save a screenshot (tea backend)
  Q/Esc/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, constant speed

Examples:
  runner play
  runner play --difficulty easy
  runner play --backend tcell
  runner play --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBackend, "backend", "tea", "Terminal backend: tea or tcell")
	playCmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Player name stored with each run")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logFile, err := openLogFile()
	var logOut io.Writer = io.Discard
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else {
		defer logFile.Close()
		logOut = logFile
	}
	logger, err := newLogger(logOut, "runner")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open run history
	var recorder session.Recorder
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		// Continue without storage - game still works
	} else {
		recorder = store
	}

	var runErr error
	switch flagBackend {
	case "tea":
		runErr = tui.Run(tui.Options{
			Config:   cfg,
			Runtime:  runtimeConfig(width, height),
			Provider: assetProvider(),
			Recorder: recorder,
			Logger:   logger,
			Player:   flagPlayer,
		})
	case "tcell":
		runErr = playTcell(console.Options{
			Config:   cfg,
			Runtime:  runtimeConfig(width, height),
			Provider: assetProvider(),
			Recorder: recorder,
			Logger:   logger,
			Player:   flagPlayer,
		})
	default:
		runErr = fmt.Errorf("unknown backend %q (want tea or tcell)", flagBackend)
	}

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// playTcell runs the game on a raw tcell screen.
func playTcell(opts console.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("cannot create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("cannot init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts.Logger = opts.Logger.With("backend", "tcell")
	if err := console.New(screen, opts).Run(ctx); err != nil {
		return err
	}
	opts.Logger.Debug("session closed")
	return nil
}
