package runner

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-runner/internal/assets"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// Surface is a drawing target in logical world units. core.Canvas
// implements it for terminal screens.
type Surface interface {
	Clear()
	FillRect(r core.Rect, ch rune, c core.Color)
	DrawSprite(r core.Rect, rows []string, c core.Color)
	DrawText(x, y float64, text string, c core.Color)
	DrawPanel(lines []string, c core.Color)
}

const (
	goalW      = 20.0
	goalH      = 60.0
	hudMargin  = 6.0
	progressW  = 20
	blinkTicks = 4
)

// Renderer paints snapshots with a sprite sheet.
type Renderer struct {
	sheet   *assets.Sheet
	loadErr error
}

// NewRenderer creates a renderer. A nil sheet renders the loading screen.
func NewRenderer(sheet *assets.Sheet) *Renderer {
	return &Renderer{sheet: sheet}
}

// SetSheet binds the loaded sprites.
func (r *Renderer) SetSheet(sheet *assets.Sheet) {
	r.sheet = sheet
	r.loadErr = nil
}

// SetLoadError records a fatal asset error to show instead of the game.
func (r *Renderer) SetLoadError(err error) {
	r.loadErr = err
}

// Render draws one frame of s.
func (r *Renderer) Render(dst Surface, s Snapshot) {
	dst.Clear()

	if r.loadErr != nil {
		dst.DrawPanel([]string{"Failed to load sprites", "", r.loadErr.Error(), "", "Q to quit"}, core.ColorBrightRed)
		return
	}
	if r.sheet == nil || s.Phase == PhaseLoading {
		dst.DrawPanel([]string{"Loading sprites..."}, core.ColorGray)
		return
	}

	r.drawBackground(dst, s)
	r.drawEntities(dst, s)
	r.drawHUD(dst, s)

	switch {
	case s.Phase == PhaseIdle:
		dst.DrawPanel([]string{
			"GOAL RUNNER",
			"",
			fmt.Sprintf("Run %.0f to reach the flag", s.GoalDistance),
			"Jump obstacles, grab coins and stars",
			"",
			"SPACE to start  Q to quit",
		}, core.ColorBrightCyan)
	case s.Phase == PhaseRunning && s.Paused:
		dst.DrawPanel([]string{"PAUSED", "", "P to resume"}, core.ColorBrightYellow)
	case s.Phase == PhaseEnded:
		dst.DrawPanel(summaryLines(s), outcomeColor(s.Outcome))
	}
}

func (r *Renderer) drawBackground(dst Surface, s Snapshot) {
	bg := r.sheet.Sprite(assets.Background)
	band := s.GroundLevel + (s.Height-s.GroundLevel)/3
	if band < s.Height {
		// Two copies make the wrap seamless.
		dst.DrawSprite(core.NewRect(-s.BackgroundX, band, s.Width, s.Height-band), bg.Rows, bg.Color)
		dst.DrawSprite(core.NewRect(s.Width-s.BackgroundX, band, s.Width, s.Height-band), bg.Rows, bg.Color)
	}
	dst.FillRect(core.NewRect(0, s.GroundLevel, s.Width, 1), '▀', core.ColorGreen)
}

func (r *Renderer) drawEntities(dst Surface, s Snapshot) {
	if s.GoalX < s.Width {
		goal := r.sheet.Sprite(assets.Goal)
		dst.DrawSprite(core.NewRect(s.GoalX, s.GroundLevel-goalH, goalW, goalH), goal.Rows, goal.Color)
	}

	for _, it := range s.Items {
		sp := r.sheet.Sprite(it.Kind.Sprite())
		dst.DrawSprite(it.Rect(), sp.Rows, sp.Color)
	}
	for _, o := range s.Obstacles {
		sp := r.sheet.Sprite(o.Kind.Sprite())
		dst.DrawSprite(o.Rect(), sp.Rows, sp.Color)
	}

	player := r.sheet.Sprite(assets.Player)
	color := player.Color
	if s.Invincible && (s.InvincibleTicks/blinkTicks)%2 == 0 {
		color = core.ColorBrightYellow
	}
	dst.DrawSprite(s.Player.Rect(), player.Rows, color)
}

func (r *Renderer) drawHUD(dst Surface, s Snapshot) {
	dst.DrawText(hudMargin, hudMargin, fmt.Sprintf("SCORE %d", s.Score), core.ColorBrightWhite)

	filled := int(s.Progress() * progressW)
	bar := fmt.Sprintf("[%s%s] %3.0f%%",
		strings.Repeat("#", filled),
		strings.Repeat("-", progressW-filled),
		s.Progress()*100)
	dst.DrawText(s.Width*0.4, hudMargin, bar, core.ColorBrightGreen)

	if s.Invincible {
		dst.DrawText(hudMargin, hudMargin*4, fmt.Sprintf("STAR %d", s.InvincibleTicks), core.ColorBrightYellow)
	}
}

func summaryLines(s Snapshot) []string {
	title := "GAME OVER"
	if s.Outcome == OutcomeVictory {
		title = "YOU REACHED THE GOAL!"
	}
	return []string{
		title,
		"",
		fmt.Sprintf("Score:    %d", s.Score),
		fmt.Sprintf("Distance: %.0f / %.0f", s.Distance, s.GoalDistance),
		"",
		"SPACE to run again  Q to quit",
	}
}

func outcomeColor(o Outcome) core.Color {
	if o == OutcomeVictory {
		return core.ColorBrightGreen
	}
	return core.ColorBrightRed
}
