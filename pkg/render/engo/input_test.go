package engo

import (
	"testing"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/asteroid-belt/pkg/physics"
	"github.com/opd-ai/asteroid-belt/pkg/render"
)

type recordedControls struct {
	moved   []physics.Vector2D
	pressed []physics.Vector2D
	dragged [][2]float64
}

func (c *recordedControls) MouseMoved(p physics.Vector2D) { c.moved = append(c.moved, p) }
func (c *recordedControls) MousePressed(p physics.Vector2D) bool {
	c.pressed = append(c.pressed, p)
	return true
}
func (c *recordedControls) MouseDragged(dx, dy float64) {
	c.dragged = append(c.dragged, [2]float64{dx, dy})
}
func (c *recordedControls) KeyPressed(rune) bool      { return true }
func (c *recordedControls) ClearTool()                {}
func (c *recordedControls) StartPan(render.Direction) {}
func (c *recordedControls) StopPan(render.Direction)  {}

func TestInputSystem_HandleMouse(t *testing.T) {
	controls := &recordedControls{}
	is := NewInputSystem(controls, 600)

	is.HandleMouse(MouseState{X: 100, Y: 100})
	if len(controls.moved) != 1 || controls.moved[0] != (physics.Vector2D{X: 100, Y: 500}) {
		t.Fatalf("first sighting moved = %v", controls.moved)
	}

	is.HandleMouse(MouseState{X: 100, Y: 100, Pressed: true})
	if len(controls.pressed) != 1 || controls.pressed[0] != (physics.Vector2D{X: 100, Y: 500}) {
		t.Errorf("pressed = %v", controls.pressed)
	}

	is.HandleMouse(MouseState{X: 100, Y: 100, Pressed: true, Right: true})
	is.HandleMouse(MouseState{X: 110, Y: 95})
	if len(controls.dragged) != 1 || controls.dragged[0] != [2]float64{10, 5} {
		t.Errorf("dragged = %v", controls.dragged)
	}
	if len(controls.moved) != 1 {
		t.Error("dragging should not steer the player")
	}

	is.HandleMouse(MouseState{X: 110, Y: 95, Released: true, Right: true})
	is.HandleMouse(MouseState{X: 120, Y: 95})
	if len(controls.moved) != 2 || controls.moved[1] != (physics.Vector2D{X: 120, Y: 505}) {
		t.Errorf("moved after release = %v", controls.moved)
	}
	if len(controls.pressed) != 1 {
		t.Error("a right press is not a tool click")
	}
}

func TestToolbarSlot(t *testing.T) {
	tests := []struct {
		i    int
		want engo.Point
	}{
		{0, engo.Point{X: 8, Y: 8}},
		{1, engo.Point{X: 60, Y: 8}},
		{4, engo.Point{X: 216, Y: 8}},
	}
	for _, tt := range tests {
		if got := ToolbarSlot(tt.i, 48); got != tt.want {
			t.Errorf("ToolbarSlot(%d) = %v, want %v", tt.i, got, tt.want)
		}
	}
}
