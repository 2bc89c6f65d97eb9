// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/asteroid-belt/pkg/physics"
	"github.com/opd-ai/asteroid-belt/pkg/render"
)

// Controls is the part of the game the input system drives.
type Controls interface {
	MouseMoved(screen physics.Vector2D)
	MousePressed(screen physics.Vector2D) bool
	MouseDragged(dx, dy float64)
	KeyPressed(key rune) bool
	ClearTool()
	StartPan(d render.Direction)
	StopPan(d render.Direction)
}

// Button names registered by SetupInputBindings.
const (
	buttonCancel = "cancel"
	buttonTool   = "tool"
)

var panButtons = map[string]render.Direction{
	"panUp":    render.Up,
	"panDown":  render.Down,
	"panLeft":  render.Left,
	"panRight": render.Right,
}

// MouseState is one frame of mouse input in y-down screen pixels.
type MouseState struct {
	X, Y     float32
	Pressed  bool
	Released bool
	Right    bool
}

// InputSystem turns engo input into game calls. Coordinates are flipped so
// the game sees y growing upwards.
type InputSystem struct {
	controls Controls
	height   float32

	last      engo.Point
	dragging  bool
	hasCursor bool
}

// NewInputSystem creates an input system for a screen height pixels tall.
func NewInputSystem(controls Controls, height float32) *InputSystem {
	return &InputSystem{controls: controls, height: height}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update reads this frame's input.
func (is *InputSystem) Update(dt float32) {
	m := engo.Input.Mouse
	is.HandleMouse(MouseState{
		X:        m.X,
		Y:        m.Y,
		Pressed:  m.Action == engo.Press,
		Released: m.Action == engo.Release,
		Right:    m.Button == engo.MouseButtonRight,
	})

	for i := 0; i < 9; i++ {
		key := rune('1' + i)
		if b := engo.Input.Button(buttonTool + string(key)); b.JustPressed() {
			is.controls.KeyPressed(key)
		}
	}
	if engo.Input.Button(buttonCancel).JustPressed() {
		is.controls.ClearTool()
	}
	for name, d := range panButtons {
		b := engo.Input.Button(name)
		if b.JustPressed() {
			is.controls.StartPan(d)
		}
		if b.JustReleased() {
			is.controls.StopPan(d)
		}
	}
}

// HandleMouse applies one frame of mouse input. Motion points the player,
// a left press goes to the active tool and a right drag pans the camera.
func (is *InputSystem) HandleMouse(m MouseState) {
	pos := engo.Point{X: m.X, Y: m.Y}
	screen := physics.Vector2D{X: float64(m.X), Y: float64(is.height - m.Y)}

	if is.hasCursor && pos != is.last {
		if is.dragging {
			is.controls.MouseDragged(float64(pos.X-is.last.X), float64(is.last.Y-pos.Y))
		} else {
			is.controls.MouseMoved(screen)
		}
	}
	if !is.hasCursor {
		is.controls.MouseMoved(screen)
		is.hasCursor = true
	}

	switch {
	case m.Pressed && m.Right:
		is.dragging = true
	case m.Pressed:
		is.controls.MousePressed(screen)
	case m.Released && m.Right:
		is.dragging = false
	}
	is.last = pos
}

// SetupInputBindings registers the keys the game uses.
func SetupInputBindings() {
	digits := []engo.Key{
		engo.KeyOne, engo.KeyTwo, engo.KeyThree, engo.KeyFour, engo.KeyFive,
		engo.KeySix, engo.KeySeven, engo.KeyEight, engo.KeyNine,
	}
	for i, k := range digits {
		engo.Input.RegisterButton(buttonTool+string(rune('1'+i)), k)
	}
	engo.Input.RegisterButton(buttonCancel, engo.KeyEscape)

	engo.Input.RegisterButton("panUp", engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton("panDown", engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton("panLeft", engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton("panRight", engo.KeyD, engo.KeyArrowRight)
}
