package render

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/asteroid-belt/pkg/physics"
)

func newSimulationSink(t *testing.T, w, h int, scale float64) *TerminalSink {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return NewTerminalSink(screen, scale)
}

func TestTerminalSink_PlotsPrimitives(t *testing.T) {
	sink := newSimulationSink(t, 20, 10, 10)
	sink.SetGlyph("water", 'W')

	sink.Begin()
	sink.Draw(Resolved{Kind: Points, Points: []physics.Vector2D{{X: 5, Y: 5}}})
	sink.Draw(Resolved{Kind: Sprite, Points: []physics.Vector2D{{X: 105, Y: 105}}, Texture: "water"})
	sink.Draw(Resolved{Kind: Sprite, Points: []physics.Vector2D{{X: 55, Y: 45}}, Texture: "unknown"})
	sink.Draw(Resolved{
		Kind:   Lines,
		Points: []physics.Vector2D{{X: 0, Y: 185}, {X: 40, Y: 185}},
		Color:  color.RGBA{R: 255, A: 255},
	})
	sink.End()

	if got := sink.Cell(0, 9); got != '.' {
		t.Errorf("Cell(0, 9) = %q, want '.'", got)
	}
	if got := sink.Cell(10, 4); got != 'W' {
		t.Errorf("Cell(10, 4) = %q, want 'W'", got)
	}
	if got := sink.Cell(5, 7); got != '?' {
		t.Errorf("Cell(5, 7) = %q, want '?'", got)
	}
	for x := 0; x <= 4; x++ {
		if got := sink.Cell(x, 0); got != '=' {
			t.Errorf("Cell(%d, 0) = %q, want '='", x, got)
		}
	}
}

func TestTerminalSink_PolygonOutlineAndClipping(t *testing.T) {
	sink := newSimulationSink(t, 10, 5, 1)

	sink.Begin()
	sink.Draw(Resolved{Kind: Polygon, Points: []physics.Vector2D{{X: 1, Y: 1}, {X: 4, Y: 1}, {X: 4, Y: 5}}})
	sink.Draw(Resolved{Kind: Points, Points: []physics.Vector2D{{X: -50, Y: 3}, {X: 500, Y: 3}}})
	sink.End()

	if got := sink.Cell(1, 4); got != '#' {
		t.Errorf("Cell(1, 4) = %q, want '#'", got)
	}
	if got := sink.Cell(4, 2); got != '#' {
		t.Errorf("Cell(4, 2) = %q, want '#'", got)
	}
	if got := sink.Cell(-1, 0); got != 0 {
		t.Errorf("out of range Cell = %q, want 0", got)
	}
}
