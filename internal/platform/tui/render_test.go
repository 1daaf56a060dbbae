package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/runner"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawTextColored(2, 0, "cd", core.ColorGreen)
	s.DrawText(0, 1, "xyz")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestStatusLine(t *testing.T) {
	running := runner.Snapshot{Phase: runner.PhaseRunning, Run: 2, Speed: 5, GoalDistance: 1000, Distance: 250}
	ended := runner.Snapshot{Phase: runner.PhaseEnded, Run: 1, Outcome: runner.OutcomeDefeat, Tick: 42}

	tests := []struct {
		name   string
		snap   runner.Snapshot
		notice string
		want   string
	}{
		{"running", running, "", "run 2  speed 5.0  750 to go"},
		{"ended", ended, "", "run 1 defeat after 42 ticks"},
		{"idle", runner.Snapshot{Phase: runner.PhaseIdle}, "", ""},
		{"notice wins", running, "saved /tmp/x.txt", "saved /tmp/x.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statusLine(tt.snap, tt.notice)
			if tt.want == "" {
				if got != "" {
					t.Errorf("expected empty status, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("statusLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{keyRunes(" "), km.Action},
		{keyRunes("w"), km.Action},
		{tea.KeyMsg{Type: tea.KeyUp}, km.Action},
		{tea.KeyMsg{Type: tea.KeyEnter}, km.Action},
		{keyRunes("p"), km.Pause},
		{tea.KeyMsg{Type: tea.KeyCtrlS}, km.Screenshot},
		{keyRunes("q"), km.Quit},
		{tea.KeyMsg{Type: tea.KeyEsc}, km.Quit},
	}
	for _, tt := range tests {
		if !key.Matches(tt.msg, tt.binding) {
			t.Errorf("%q should match %v", tt.msg.String(), tt.binding.Keys())
		}
	}

	if key.Matches(keyRunes("x"), km.Action, km.Pause, km.Screenshot, km.Quit) {
		t.Error("x should not be bound")
	}
	if len(km.ShortHelp()) != 4 || len(km.FullHelp()) != 1 {
		t.Error("help should list every binding")
	}
}
