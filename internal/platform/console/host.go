// Package console hosts the runner directly on a tcell screen, without
// Bubble Tea. It is the lighter of the two local backends.
package console

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/runner"
	"github.com/vovakirdan/tui-runner/internal/session"
)

// Options configures a Host.
type Options struct {
	Config   config.RunnerConfig
	Runtime  core.RuntimeConfig
	Provider assets.Provider
	Recorder session.Recorder
	Logger   *log.Logger
	Player   string
}

// palette maps core colors onto the terminal's 256-color palette.
var palette = map[core.Color]tcell.Color{
	core.ColorDefault:       tcell.ColorDefault,
	core.ColorRed:           tcell.PaletteColor(1),
	core.ColorGreen:         tcell.PaletteColor(2),
	core.ColorYellow:        tcell.PaletteColor(3),
	core.ColorBlue:          tcell.PaletteColor(4),
	core.ColorMagenta:       tcell.PaletteColor(5),
	core.ColorCyan:          tcell.PaletteColor(6),
	core.ColorWhite:         tcell.PaletteColor(7),
	core.ColorBrightRed:     tcell.PaletteColor(9),
	core.ColorBrightGreen:   tcell.PaletteColor(10),
	core.ColorBrightYellow:  tcell.PaletteColor(11),
	core.ColorBrightBlue:    tcell.PaletteColor(12),
	core.ColorBrightMagenta: tcell.PaletteColor(13),
	core.ColorBrightCyan:    tcell.PaletteColor(14),
	core.ColorBrightWhite:   tcell.PaletteColor(15),
	core.ColorOrange:        tcell.PaletteColor(208),
	core.ColorGray:          tcell.PaletteColor(245),
}

type loadResult struct {
	sheet *assets.Sheet
	err   error
}

// Host runs one session on a tcell screen. The screen must already be
// initialised; the caller owns Fini.
type Host struct {
	screen   tcell.Screen
	sess     *session.Session
	sched    *Scheduler
	buf      *core.Screen
	provider assets.Provider
	logger   *log.Logger
}

// New creates a host drawing to screen.
func New(screen tcell.Screen, opts Options) *Host {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Provider == nil {
		opts.Provider = assets.EmbeddedProvider{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	sched := NewScheduler(opts.Runtime.TickRate)
	game := runner.New(opts.Config, opts.Runtime)
	w, h := screen.Size()

	return &Host{
		screen: screen,
		sess: session.New(game, sched, session.Options{
			Player:   opts.Player,
			Recorder: opts.Recorder,
			Logger:   opts.Logger,
		}),
		sched:    sched,
		buf:      core.NewScreen(w, h),
		provider: opts.Provider,
		logger:   opts.Logger,
	}
}

// Session returns the hosted session.
func (h *Host) Session() *session.Session {
	return h.sess
}

// Run pumps input and frames until the player quits or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go h.screen.ChannelEvents(events, quit)

	loaded := make(chan loadResult, 1)
	go func() {
		sheet, err := h.provider.Load(ctx)
		loaded <- loadResult{sheet: sheet, err: err}
	}()

	ticker := time.NewTicker(h.sched.Interval())
	defer ticker.Stop()
	defer h.sess.Stop()

	h.draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if ev == nil {
				return nil
			}
			if !h.handleEvent(ev) {
				return nil
			}
			h.draw()

		case res := <-loaded:
			h.sess.AssetsLoaded(res.sheet, res.err)
			h.draw()

		case now := <-ticker.C:
			if h.sched.Fire(now) {
				h.draw()
			}
		}
	}
}

// handleEvent applies one terminal event. It returns false to quit.
func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch core.KeyAction(keyName(ev)) {
		case core.ActionQuit:
			return false
		case core.ActionPause:
			h.sess.TogglePause()
		case core.ActionPrimary:
			h.sess.Action()
		case core.ActionScreenshot:
			h.logger.Debug("screenshots are only available in the tea backend")
		}

	case *tcell.EventResize:
		w, hgt := ev.Size()
		h.buf.Resize(w, hgt)
		h.screen.Sync()
	}
	return true
}

// keyName converts a tcell key to the names used by core.KeyAction.
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return " "
		}
		return string(ev.Rune())
	case tcell.KeyUp:
		return "up"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyCtrlC:
		return "ctrl+c"
	case tcell.KeyCtrlS:
		return "ctrl+s"
	default:
		return ""
	}
}

// draw renders the session into the buffer and copies it to the terminal.
func (h *Host) draw() {
	cfg := h.sess.Game().Config()
	view := core.FitViewport(0, 0, h.buf.Width(), h.buf.Height(), cfg.World.Width/cfg.World.Height)
	h.sess.Render(core.NewCanvas(h.buf, view, cfg.World.Width, cfg.World.Height))
	h.blit()
}

func (h *Host) blit() {
	base := tcell.StyleDefault
	for y := range h.buf.Height() {
		for x := range h.buf.Width() {
			cell := h.buf.GetCell(x, y)
			color, ok := palette[cell.Color]
			if !ok {
				color = tcell.ColorDefault
			}
			h.screen.SetContent(x, y, cell.Rune, nil, base.Foreground(color))
		}
	}
	h.screen.Show()
}
