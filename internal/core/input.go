package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionPrimary           // Space, W, Up - start a run when idle, jump while running
	ActionPause             // P - pause/unpause the run
	ActionScreenshot        // Ctrl+S - dump the current frame to a file
	ActionQuit              // Q, Ctrl+C - exit the session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPrimary:
		return "Primary"
	case ActionPause:
		return "Pause"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// actionKeys lists the key names bound to each action, as reported by
// Bubble Tea's KeyMsg.String or built by the tcell host.
var actionKeys = map[Action][]string{
	ActionPrimary:    {" ", "space", "up", "w", "enter"},
	ActionPause:      {"p"},
	ActionScreenshot: {"ctrl+s"},
	ActionQuit:       {"q", "ctrl+c", "esc"},
}

// Keys returns the key names bound to a.
func Keys(a Action) []string {
	return actionKeys[a]
}

// KeyAction maps a key name to an action.
func KeyAction(key string) Action {
	for a, keys := range actionKeys {
		for _, k := range keys {
			if k == key {
				return a
			}
		}
	}
	return ActionNone
}
