// pkg/render/group.go
package render

import "github.com/opd-ai/asteroid-belt/pkg/physics"

// Group sets up transform state for every vertex list drawn through it.
// Parents are applied before children and unwound after them.
type Group interface {
	Parent() Group
	SetState(stack *TransformStack)
	UnsetState(stack *TransformStack)
}

// Ordered is implemented by groups that fix a draw layer.
type Ordered interface {
	Order() int
}

func setState(g Group, stack *TransformStack) {
	if g == nil {
		return
	}
	setState(g.Parent(), stack)
	g.SetState(stack)
}

func unsetState(g Group, stack *TransformStack) {
	if g == nil {
		return
	}
	g.UnsetState(stack)
	unsetState(g.Parent(), stack)
}

// groupOrder is the layer of the nearest ordered ancestor, or zero.
func groupOrder(g Group) int {
	for ; g != nil; g = g.Parent() {
		if o, ok := g.(Ordered); ok {
			return o.Order()
		}
	}
	return 0
}

// OrderedGroup draws its children on a fixed layer; lower layers draw first.
type OrderedGroup struct {
	order int
}

// NewOrderedGroup returns a root group for the given layer.
func NewOrderedGroup(order int) *OrderedGroup {
	return &OrderedGroup{order: order}
}

func (g *OrderedGroup) Parent() Group                    { return nil }
func (g *OrderedGroup) Order() int                       { return g.order }
func (g *OrderedGroup) SetState(stack *TransformStack)   {}
func (g *OrderedGroup) UnsetState(stack *TransformStack) {}

// Transformable is anything with a world position and rotation, such as a
// physics.Body.
type Transformable interface {
	Position() physics.Vector2D
	Angle() float64
}

// BodyGroup draws its children in the local frame of a physics body. The
// transform is read from the body every frame and never stored.
type BodyGroup struct {
	parent Group
	body   Transformable
}

// NewBodyGroup returns a group that follows body.
func NewBodyGroup(parent Group, body Transformable) *BodyGroup {
	return &BodyGroup{parent: parent, body: body}
}

func (g *BodyGroup) Parent() Group { return g.parent }

// SetState pushes, then translates by the body position and rotates by the
// body angle.
func (g *BodyGroup) SetState(stack *TransformStack) {
	stack.Push()
	pos := g.body.Position()
	stack.Translate(pos.X, pos.Y)
	stack.Rotate(g.body.Angle())
}

// UnsetState restores the transform saved by SetState.
func (g *BodyGroup) UnsetState(stack *TransformStack) {
	stack.Pop()
}

// CameraGroup shifts world coordinates into the camera's view.
type CameraGroup struct {
	parent Group
	camera *Camera
}

// NewCameraGroup returns a group that follows camera.
func NewCameraGroup(parent Group, camera *Camera) *CameraGroup {
	return &CameraGroup{parent: parent, camera: camera}
}

func (g *CameraGroup) Parent() Group { return g.parent }

func (g *CameraGroup) SetState(stack *TransformStack) {
	stack.Push()
	stack.Translate(-g.camera.X(), -g.camera.Y())
}

func (g *CameraGroup) UnsetState(stack *TransformStack) {
	stack.Pop()
}
