package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// KeyMap holds the runner's key bindings. The keys come from core so the
// tcell host and the Bubble Tea host stay in sync; this type adds the help
// text shown under the playfield.
type KeyMap struct {
	Action     key.Binding
	Pause      key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Action: key.NewBinding(
			key.WithKeys(core.Keys(core.ActionPrimary)...),
			key.WithHelp("space", "start/jump"),
		),
		Pause: key.NewBinding(
			key.WithKeys(core.Keys(core.ActionPause)...),
			key.WithHelp("p", "pause"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys(core.Keys(core.ActionScreenshot)...),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys(core.Keys(core.ActionQuit)...),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Action, k.Pause, k.Screenshot, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
