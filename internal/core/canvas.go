package core

import "math"

// Viewport is a rectangular region of a Screen measured in cells.
type Viewport struct {
	X, Y, W, H int
}

// FitViewport returns the largest viewport inside the w x h cell area at
// (x, y) that keeps the logical aspect ratio (width / height). Terminal
// cells are about twice as tall as wide, so one logical row spans two
// columns. The viewport is centered in the area.
func FitViewport(x, y, w, h int, aspect float64) Viewport {
	vw := int(float64(h) * aspect * 2)
	vh := h
	if vw > w {
		vw = w
		vh = int(float64(w) / (aspect * 2))
	}
	vw, vh = Max(vw, 1), Max(vh, 1)
	return Viewport{X: x + (w-vw)/2, Y: y + (h-vh)/2, W: vw, H: vh}
}

// Canvas maps a fixed logical coordinate space (for example 400x400 world
// units) onto a Viewport of a Screen. All drawing is clipped to the viewport
// except DrawPanel, which overlays the whole screen.
type Canvas struct {
	screen   *Screen
	view     Viewport
	logicalW float64
	logicalH float64
}

// NewCanvas creates a canvas drawing into view on s.
func NewCanvas(s *Screen, view Viewport, logicalW, logicalH float64) *Canvas {
	return &Canvas{
		screen:   s,
		view:     view,
		logicalW: logicalW,
		logicalH: logicalH,
	}
}

// Screen returns the underlying cell buffer.
func (c *Canvas) Screen() *Screen {
	return c.screen
}

// Size returns the logical dimensions.
func (c *Canvas) Size() (float64, float64) {
	return c.logicalW, c.logicalH
}

// Clear blanks the whole screen.
func (c *Canvas) Clear() {
	c.screen.Clear()
}

func (c *Canvas) col(x float64) int {
	return c.view.X + int(math.Floor(x*float64(c.view.W)/c.logicalW))
}

func (c *Canvas) row(y float64) int {
	return c.view.Y + int(math.Floor(y*float64(c.view.H)/c.logicalH))
}

// span converts a logical rect to a half-open cell range. Any rect with a
// positive size covers at least one cell.
func (c *Canvas) span(r Rect) (x0, y0, x1, y1 int) {
	x0, y0 = c.col(r.X), c.row(r.Y)
	x1 = c.view.X + int(math.Ceil(r.Right()*float64(c.view.W)/c.logicalW))
	y1 = c.view.Y + int(math.Ceil(r.Bottom()*float64(c.view.H)/c.logicalH))
	if r.W > 0 && x1 <= x0 {
		x1 = x0 + 1
	}
	if r.H > 0 && y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

func (c *Canvas) set(x, y int, r rune, col Color) {
	if x < c.view.X || x >= c.view.X+c.view.W || y < c.view.Y || y >= c.view.Y+c.view.H {
		return
	}
	c.screen.SetColored(x, y, r, col)
}

// FillRect fills the cells covered by r.
func (c *Canvas) FillRect(r Rect, ch rune, col Color) {
	x0, y0, x1, y1 := c.span(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.set(x, y, ch, col)
		}
	}
}

// DrawSprite stretches the rows of an ASCII sprite over the cells covered
// by r. Spaces in the sprite are transparent.
func (c *Canvas) DrawSprite(r Rect, rows []string, col Color) {
	if len(rows) == 0 {
		return
	}
	x0, y0, x1, y1 := c.span(r)
	cw, ch := x1-x0, y1-y0
	if cw <= 0 || ch <= 0 {
		return
	}

	runes := make([][]rune, len(rows))
	for i, row := range rows {
		runes[i] = []rune(row)
	}

	for j := 0; j < ch; j++ {
		src := runes[j*len(runes)/ch]
		if len(src) == 0 {
			continue
		}
		for i := 0; i < cw; i++ {
			ru := src[i*len(src)/cw]
			if ru == ' ' {
				continue
			}
			c.set(x0+i, y0+j, ru, col)
		}
	}
}

// DrawText writes text starting at the cell containing the logical point.
func (c *Canvas) DrawText(x, y float64, text string, col Color) {
	cx, cy := c.col(x), c.row(y)
	i := 0
	for _, r := range text {
		c.set(cx+i, cy, r, col)
		i++
	}
}

// DrawPanel draws a bordered box with centered lines in the middle of the
// screen.
func (c *Canvas) DrawPanel(lines []string, col Color) {
	w, h := c.screen.Width(), c.screen.Height()

	inner := 0
	for _, l := range lines {
		inner = Max(inner, len([]rune(l)))
	}
	boxW := inner + 4
	boxH := len(lines) + 2
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	c.screen.FillArea(boxX, boxY, boxW, boxH, ' ', ColorDefault)
	c.screen.DrawBox(boxX, boxY, boxW, boxH, col)

	for i, l := range lines {
		lx := boxX + (boxW-len([]rune(l)))/2
		c.screen.DrawTextColored(lx, boxY+1+i, l, col)
	}
}
