package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/loop"
	"github.com/vovakirdan/tui-runner/internal/runner"
	"github.com/vovakirdan/tui-runner/internal/session"
)

// Options configures a Model.
type Options struct {
	Config        config.RunnerConfig
	Runtime       core.RuntimeConfig
	Provider      assets.Provider  // defaults to the embedded sheet
	Recorder      session.Recorder // optional run history
	Logger        *log.Logger
	Player        string
	ScreenshotDir string // defaults to ~/.runner/screenshots
}

// Model is the Bubble Tea model hosting one runner session.
type Model struct {
	sess     *session.Session
	sched    *loop.TeaScheduler
	screen   *core.Screen
	provider assets.Provider
	keys     KeyMap
	help     help.Model
	logger   *log.Logger

	screenshotDir string
	notice        string
	noticeSeq     int
	quitting      bool
}

// NewModel creates a model. The game starts in the loading phase; Init
// loads the sprites in the background.
func NewModel(opts Options) Model {
	// Use time-based seed if not specified
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Provider == nil {
		opts.Provider = assets.EmbeddedProvider{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = filepath.Join(os.Getenv("HOME"), ".runner", "screenshots")
	}

	sched := loop.NewTeaScheduler(opts.Runtime.TickRate)
	game := runner.New(opts.Config, opts.Runtime)
	sess := session.New(game, sched, session.Options{
		Player:   opts.Player,
		Recorder: opts.Recorder,
		Logger:   opts.Logger,
	})

	return Model{
		sess:          sess,
		sched:         sched,
		screen:        core.NewScreen(opts.Runtime.ScreenW, playfieldHeight(opts.Runtime.ScreenH)),
		provider:      opts.Provider,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		logger:        opts.Logger,
		screenshotDir: opts.ScreenshotDir,
	}
}

// Session returns the hosted session.
func (m Model) Session() *session.Session {
	return m.sess
}

// Init starts loading the sprites.
func (m Model) Init() tea.Cmd {
	return loadAssetsCmd(context.Background(), m.provider)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case assetsLoadedMsg:
		m.sess.AssetsLoaded(msg.sheet, msg.err)
		return m, nil

	case loop.FrameMsg:
		m.sched.Dispatch(msg)
		return m, m.sched.Cmd()

	case noticeExpiredMsg:
		if int(msg) == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.sess.Stop()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Screenshot):
		path, err := m.saveScreenshot()
		if err != nil {
			m.logger.Warn("cannot save screenshot", "err", err)
			return m.setNotice("screenshot failed")
		}
		m.logger.Info("screenshot saved", "path", path)
		return m.setNotice("saved " + path)

	case key.Matches(msg, m.keys.Pause):
		m.sess.TogglePause()
		return m, nil

	case key.Matches(msg, m.keys.Action):
		m.sess.Action()
		return m, m.sched.Cmd()
	}

	return m, nil
}

func (m Model) setNotice(text string) (tea.Model, tea.Cmd) {
	m.noticeSeq++
	m.notice = text
	return m, expireNoticeCmd(m.noticeSeq)
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() (string, error) {
	m.draw()

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot dir: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("runner_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// playfieldHeight leaves two terminal lines for the status and help rows.
func playfieldHeight(termH int) int {
	return core.Max(termH-2, 1)
}

// draw renders the session into the screen buffer.
func (m Model) draw() {
	cfg := m.sess.Game().Config()
	view := core.FitViewport(0, 0, m.screen.Width(), m.screen.Height(), cfg.World.Width/cfg.World.Height)
	m.sess.Render(core.NewCanvas(m.screen, view, cfg.World.Width, cfg.World.Height))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	return RenderScreen(m.screen) + "\n" + statusLine(m.sess.Snapshot(), m.notice) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program with a new model.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
