// Package chipmunk implements physics.Space on top of the Chipmunk2D port
// github.com/jakecoffman/cp.
package chipmunk

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/opd-ai/asteroid-belt/pkg/physics"
)

// Space adapts a *cp.Space to physics.Space.
type Space struct {
	space  *cp.Space
	static *Body
}

// NewSpace creates an empty space with the given solver iteration count.
// Zero keeps the Chipmunk default.
func NewSpace(iterations uint) *Space {
	space := cp.NewSpace()
	if iterations > 0 {
		space.Iterations = iterations
	}
	return &Space{
		space:  space,
		static: &Body{body: space.StaticBody},
	}
}

// Raw exposes the underlying Chipmunk space.
func (s *Space) Raw() *cp.Space {
	return s.space
}

// StaticBody implements physics.Space.
func (s *Space) StaticBody() physics.Body {
	return s.static
}

// SetGravity implements physics.Space.
func (s *Space) SetGravity(gravity physics.Vector2D) {
	s.space.SetGravity(toCP(gravity))
}

// AddBody implements physics.Space.
func (s *Space) AddBody(mass, moment float64) physics.Body {
	return &Body{body: s.space.AddBody(cp.NewBody(mass, moment))}
}

// AddCircle implements physics.Space.
func (s *Space) AddCircle(body physics.Body, radius float64, material physics.Material) physics.Shape {
	b := unwrapBody(body)
	shape := s.space.AddShape(cp.NewCircle(b.body, radius, cp.Vector{}))
	shape.SetElasticity(material.Elasticity)
	shape.SetFriction(material.Friction)
	return &Shape{shape: shape, body: b, radius: radius}
}

// AddSegment implements physics.Space.
func (s *Space) AddSegment(body physics.Body, a, b physics.Vector2D, radius float64, material physics.Material) physics.Shape {
	owner := unwrapBody(body)
	shape := s.space.AddShape(cp.NewSegment(owner.body, toCP(a), toCP(b), radius))
	shape.SetElasticity(material.Elasticity)
	shape.SetFriction(material.Friction)
	return &Shape{shape: shape, body: owner, radius: radius}
}

// AddPinJoint implements physics.Space.
func (s *Space) AddPinJoint(a, b physics.Body, anchorA, anchorB physics.Vector2D) physics.Constraint {
	ba, bb := unwrapBody(a), unwrapBody(b)
	c := s.space.AddConstraint(cp.NewPinJoint(ba.body, bb.body, toCP(anchorA), toCP(anchorB)))
	return &Constraint{constraint: c, a: ba, b: bb, anchorA: anchorA, anchorB: anchorB}
}

// AddDampedSpring implements physics.Space.
func (s *Space) AddDampedSpring(a, b physics.Body, anchorA, anchorB physics.Vector2D, spring physics.Spring) physics.Constraint {
	ba, bb := unwrapBody(a), unwrapBody(b)
	c := s.space.AddConstraint(cp.NewDampedSpring(ba.body, bb.body, toCP(anchorA), toCP(anchorB),
		spring.RestLength, spring.Stiffness, spring.Damping))
	return &Constraint{constraint: c, a: ba, b: bb, anchorA: anchorA, anchorB: anchorB}
}

// RemoveBody implements physics.Space.
func (s *Space) RemoveBody(body physics.Body) {
	s.space.RemoveBody(unwrapBody(body).body)
}

// RemoveShape implements physics.Space.
func (s *Space) RemoveShape(shape physics.Shape) {
	s.space.RemoveShape(shape.(*Shape).shape)
}

// RemoveConstraint implements physics.Space.
func (s *Space) RemoveConstraint(constraint physics.Constraint) {
	s.space.RemoveConstraint(constraint.(*Constraint).constraint)
}

// Step implements physics.Space.
func (s *Space) Step(dt float64) {
	s.space.Step(dt)
}

// Body adapts a *cp.Body.
type Body struct {
	body *cp.Body
}

func unwrapBody(body physics.Body) *Body {
	return body.(*Body)
}

func (b *Body) Position() physics.Vector2D     { return fromCP(b.body.Position()) }
func (b *Body) SetPosition(p physics.Vector2D) { b.body.SetPosition(toCP(p)) }
func (b *Body) Angle() float64                 { return b.body.Angle() }
func (b *Body) SetAngle(angle float64)         { b.body.SetAngle(angle) }
func (b *Body) Mass() float64                  { return b.body.Mass() }
func (b *Body) Moment() float64                { return b.body.Moment() }
func (b *Body) LocalToWorld(p physics.Vector2D) physics.Vector2D {
	return fromCP(b.body.LocalToWorld(toCP(p)))
}
func (b *Body) WorldToLocal(p physics.Vector2D) physics.Vector2D {
	return fromCP(b.body.WorldToLocal(toCP(p)))
}

// ApplyImpulse implements physics.Body. The offset is relative to the centre
// of gravity but expressed in world orientation, matching the classic
// Chipmunk apply_impulse(j, r) call.
func (b *Body) ApplyImpulse(impulse, offset physics.Vector2D) {
	point := b.body.Position().Add(toCP(offset))
	b.body.ApplyImpulseAtWorldPoint(toCP(impulse), point)
}

// Shape adapts a *cp.Shape.
type Shape struct {
	shape  *cp.Shape
	body   *Body
	radius float64
}

func (s *Shape) Body() physics.Body  { return s.body }
func (s *Shape) Radius() float64     { return s.radius }
func (s *Shape) Elasticity() float64 { return s.shape.Elasticity() }
func (s *Shape) Friction() float64   { return s.shape.Friction() }

// Constraint adapts a *cp.Constraint.
type Constraint struct {
	constraint       *cp.Constraint
	a, b             *Body
	anchorA, anchorB physics.Vector2D
}

func (c *Constraint) BodyA() physics.Body       { return c.a }
func (c *Constraint) BodyB() physics.Body       { return c.b }
func (c *Constraint) AnchorA() physics.Vector2D { return c.anchorA }
func (c *Constraint) AnchorB() physics.Vector2D { return c.anchorB }

// Impulse implements physics.Constraint. Springs report a signed impulse
// that is negative under tension, so the magnitude is returned.
func (c *Constraint) Impulse() float64 {
	return math.Abs(c.constraint.Class.GetImpulse())
}

func toCP(v physics.Vector2D) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromCP(v cp.Vector) physics.Vector2D {
	return physics.Vector2D{X: v.X, Y: v.Y}
}
