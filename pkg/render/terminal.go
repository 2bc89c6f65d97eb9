package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/asteroid-belt/pkg/physics"
)

type terminalCell struct {
	r     rune
	style tcell.Style
}

// TerminalSink draws resolved primitives onto a tcell screen. One terminal
// column covers scale world units and one row covers twice that, since
// character cells are roughly twice as tall as they are wide.
type TerminalSink struct {
	screen tcell.Screen
	width  int
	height int
	scale  float64
	buffer [][]terminalCell
	glyphs map[TextureID]rune
}

// NewTerminalSink creates a sink for screen. The screen must already be
// initialised.
func NewTerminalSink(screen tcell.Screen, scale float64) *TerminalSink {
	if scale <= 0 {
		scale = 1
	}
	return &TerminalSink{
		screen: screen,
		scale:  scale,
		glyphs: make(map[TextureID]rune),
	}
}

// SetGlyph chooses the character drawn for a sprite texture.
func (r *TerminalSink) SetGlyph(texture TextureID, glyph rune) {
	r.glyphs[texture] = glyph
}

// Scale returns the world units per column.
func (r *TerminalSink) Scale() float64 {
	return r.scale
}

// Begin implements Sink.
func (r *TerminalSink) Begin() {
	r.width, r.height = r.screen.Size()
	r.buffer = make([][]terminalCell, r.height)
	for y := range r.buffer {
		r.buffer[y] = make([]terminalCell, r.width)
		for x := range r.buffer[y] {
			r.buffer[y][x] = terminalCell{r: ' ', style: tcell.StyleDefault}
		}
	}
}

// worldToScreen converts world coordinates to a cell, flipping y so the
// world's bottom edge is the last row.
func (r *TerminalSink) worldToScreen(pos physics.Vector2D) (int, int) {
	x := int(math.Floor(pos.X / r.scale))
	y := r.height - 1 - int(math.Floor(pos.Y/(r.scale*2)))
	return x, y
}

func (r *TerminalSink) plot(x, y int, ch rune, style tcell.Style) {
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = terminalCell{r: ch, style: style}
	}
}

func (r *TerminalSink) line(a, b physics.Vector2D, ch rune, style tcell.Style) {
	x0, y0 := r.worldToScreen(a)
	x1, y1 := r.worldToScreen(b)
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		r.plot(x0, y0, ch, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func styleFor(c color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// Draw implements Sink.
func (r *TerminalSink) Draw(p Resolved) {
	style := styleFor(p.Color)
	switch p.Kind {
	case Points:
		for _, pt := range p.Points {
			x, y := r.worldToScreen(pt)
			r.plot(x, y, '.', style)
		}
	case Lines:
		for i := 0; i+1 < len(p.Points); i += 2 {
			r.line(p.Points[i], p.Points[i+1], '=', style)
		}
	case Polygon:
		for i := range p.Points {
			r.line(p.Points[i], p.Points[(i+1)%len(p.Points)], '#', style)
		}
	case Sprite:
		if len(p.Points) == 0 {
			return
		}
		glyph, ok := r.glyphs[p.Texture]
		if !ok {
			glyph = '?'
		}
		x, y := r.worldToScreen(p.Points[0])
		r.plot(x, y, glyph, tcell.StyleDefault.Bold(true))
	}
}

// End implements Sink, pushing the frame to the screen.
func (r *TerminalSink) End() {
	r.screen.Clear()
	for y, row := range r.buffer {
		for x, c := range row {
			r.screen.SetContent(x, y, c.r, nil, c.style)
		}
	}
	r.screen.Show()
}

// Cell returns the character drawn at a cell in the last frame.
func (r *TerminalSink) Cell(x, y int) rune {
	if y < 0 || y >= len(r.buffer) || x < 0 || x >= len(r.buffer[y]) {
		return 0
	}
	return r.buffer[y][x].r
}
