// pkg/render/camera.go
package render

import "github.com/opd-ai/asteroid-belt/pkg/physics"

// Direction is a camera pan direction driven by keys.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Camera is the bottom left corner of the view in world coordinates. It is
// clamped so the view never leaves the world.
type Camera struct {
	viewport physics.Vector2D
	world    physics.Vector2D

	x, y float64

	movement  physics.Vector2D
	dragged   physics.Vector2D
	speed     float64
	dragSpeed float64
}

// NewCamera creates a camera for a viewport looking at a world, both given as
// width/height vectors. speed is the key pan rate in units per second and
// dragSpeed multiplies mouse drag deltas.
func NewCamera(viewport, world physics.Vector2D, speed, dragSpeed float64) *Camera {
	return &Camera{
		viewport:  viewport,
		world:     world,
		speed:     speed,
		dragSpeed: dragSpeed,
	}
}

// X is the left edge of the view.
func (c *Camera) X() float64 { return c.x }

// Y is the bottom edge of the view.
func (c *Camera) Y() float64 { return c.y }

// Viewport returns the view size.
func (c *Camera) Viewport() physics.Vector2D { return c.viewport }

// SetPosition moves the view, clamping to the world.
func (c *Camera) SetPosition(x, y float64) {
	c.x = clampAxis(x, c.world.X-c.viewport.X)
	c.y = clampAxis(y, c.world.Y-c.viewport.Y)
}

// clampAxis raises v to zero and then lowers it to limit, in that order, so
// a world smaller than the viewport pins the view at limit.
func clampAxis(v, limit float64) float64 {
	v = max(v, 0)
	return min(v, limit)
}

// Move shifts the view by delta.
func (c *Camera) Move(delta physics.Vector2D) {
	c.SetPosition(c.x+delta.X, c.y+delta.Y)
}

// Follow centres the view on target.
func (c *Camera) Follow(target physics.Vector2D) {
	c.SetPosition(target.X-c.viewport.X/2, target.Y-c.viewport.Y/2)
}

// Translate converts a screen point to world coordinates.
func (c *Camera) Translate(screen physics.Vector2D) physics.Vector2D {
	return physics.Vector2D{X: c.x + screen.X, Y: c.y + screen.Y}
}

// Drag records a mouse drag to apply on the next Update.
func (c *Camera) Drag(dx, dy float64) {
	c.dragged = physics.Vector2D{X: dx * c.dragSpeed, Y: dy * c.dragSpeed}
}

// StartPan begins panning in a direction until StopPan is called.
func (c *Camera) StartPan(d Direction) {
	c.movement = c.movement.Add(panVector(d).Scale(c.speed))
}

// StopPan ends a pan started by StartPan.
func (c *Camera) StopPan(d Direction) {
	c.movement = c.movement.Sub(panVector(d).Scale(c.speed))
}

func panVector(d Direction) physics.Vector2D {
	switch d {
	case Up:
		return physics.Vector2D{Y: 1}
	case Down:
		return physics.Vector2D{Y: -1}
	case Left:
		return physics.Vector2D{X: -1}
	case Right:
		return physics.Vector2D{X: 1}
	}
	return physics.Vector2D{}
}

// Update applies key panning and any pending drag.
func (c *Camera) Update(dt float64) {
	c.Move(c.movement.Scale(dt))
	c.Move(c.dragged)
	c.dragged = physics.Vector2D{}
}
