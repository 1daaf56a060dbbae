// Package tui provides the Bubble Tea host for the runner, locally and
// over SSH. Frames are scheduled through loop.TeaScheduler; everything
// else arrives as the messages below.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/assets"
)

// noticeDuration is how long a status notice stays visible.
const noticeDuration = 2 * time.Second

// assetsLoadedMsg carries the result of the background sprite load.
type assetsLoadedMsg struct {
	sheet *assets.Sheet
	err   error
}

// noticeExpiredMsg clears the notice with the matching sequence number.
type noticeExpiredMsg int

// loadAssetsCmd loads the sprite sheet off the update loop.
func loadAssetsCmd(ctx context.Context, p assets.Provider) tea.Cmd {
	return func() tea.Msg {
		sheet, err := p.Load(ctx)
		return assetsLoadedMsg{sheet: sheet, err: err}
	}
}

// expireNoticeCmd fires once the notice seq should disappear.
func expireNoticeCmd(seq int) tea.Cmd {
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg(seq)
	})
}
