package runner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/core"
)

func loadSheet(t *testing.T) *assets.Sheet {
	t.Helper()
	sheet, err := assets.EmbeddedProvider{}.Load(context.Background())
	if err != nil {
		t.Fatalf("embedded sprites: %v", err)
	}
	return sheet
}

func renderToString(r *Renderer, s Snapshot) string {
	screen := core.NewScreen(80, 24)
	canvas := core.NewCanvas(screen, core.Viewport{W: 80, H: 24}, 400, 400)
	r.Render(canvas, s)
	return screen.String()
}

func TestRenderPhases(t *testing.T) {
	sheet := loadSheet(t)
	g := New(testConfig(), core.DefaultConfig())

	tests := []struct {
		name    string
		setup   func()
		sheet   *assets.Sheet
		loadErr error
		want    []string
	}{
		{
			name: "loading",
			want: []string{"Loading sprites"},
		},
		{
			name:    "asset failure",
			sheet:   sheet,
			loadErr: errors.New("assets: missing sprite: bird"),
			want:    []string{"Failed to load sprites", "missing sprite: bird"},
		},
		{
			name:  "idle",
			setup: g.MarkReady,
			sheet: sheet,
			want:  []string{"GOAL RUNNER", "SPACE to start"},
		},
		{
			name:  "running",
			setup: func() { g.Start(epoch) },
			sheet: sheet,
			want:  []string{"SCORE 0", "[--------------------]", "@"},
		},
		{
			name:  "paused",
			setup: func() { g.TogglePause() },
			sheet: sheet,
			want:  []string{"PAUSED"},
		},
		{
			name: "defeat",
			setup: func() {
				g.TogglePause()
				g.world.Obstacles = append(g.world.Obstacles, Obstacle{Kind: ObstacleRock, X: 60, Y: 320, W: 40, H: 30})
				g.Tick(epoch)
			},
			sheet: sheet,
			want:  []string{"GAME OVER", "Score:    5", "SPACE to run again"},
		},
		{
			name: "victory",
			setup: func() {
				g.Start(epoch)
				g.world.Distance = g.cfg.World.GoalDistance - 1
				g.Tick(epoch)
			},
			sheet: sheet,
			want:  []string{"YOU REACHED THE GOAL!", "100%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}
			r := NewRenderer(tt.sheet)
			if tt.loadErr != nil {
				r.SetLoadError(tt.loadErr)
			}
			out := renderToString(r, g.Snapshot())
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("frame does not contain %q:\n%s", w, out)
				}
			}
		})
	}
}

type recordingSurface struct {
	sprites int
	texts   []string
	panels  int
}

func (s *recordingSurface) Clear()                                     {}
func (s *recordingSurface) FillRect(core.Rect, rune, core.Color)       {}
func (s *recordingSurface) DrawSprite(core.Rect, []string, core.Color) { s.sprites++ }
func (s *recordingSurface) DrawText(_, _ float64, text string, _ core.Color) {
	s.texts = append(s.texts, text)
}
func (s *recordingSurface) DrawPanel([]string, core.Color) { s.panels++ }

func TestRenderDrawsEveryEntity(t *testing.T) {
	g := runningGame(t, testConfig())
	g.world.Obstacles = append(g.world.Obstacles,
		Obstacle{Kind: ObstacleCactus, X: 200, Y: 305, W: 25, H: 45},
		Obstacle{Kind: ObstacleBird, X: 300, Y: 260, W: 40, H: 25},
	)
	g.world.Items = append(g.world.Items, Item{Kind: ItemStar, X: 250, Y: 220, W: 25, H: 25})
	g.world.GoalX = 350
	g.world.Invincible, g.world.InvincibleTicks = true, 42

	var surf recordingSurface
	NewRenderer(loadSheet(t)).Render(&surf, g.Snapshot())

	// 2 background copies + goal + 1 item + 2 obstacles + player
	if surf.sprites != 7 {
		t.Errorf("expected 7 sprites, drew %d", surf.sprites)
	}
	if surf.panels != 0 {
		t.Errorf("a running game draws no panel, drew %d", surf.panels)
	}
	if !containsText(surf.texts, "STAR 42") {
		t.Errorf("HUD should show the invincibility timer, got %v", surf.texts)
	}
}

func TestRendererSetSheetClearsError(t *testing.T) {
	r := NewRenderer(nil)
	r.SetLoadError(errors.New("boom"))
	r.SetSheet(loadSheet(t))
	if r.sheet == nil || r.loadErr != nil {
		t.Error("binding a sheet should clear the load error")
	}
}

func containsText(texts []string, want string) bool {
	for _, s := range texts {
		if strings.Contains(s, want) {
			return true
		}
	}
	return false
}
