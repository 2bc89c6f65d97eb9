// Package physicstest provides an in-memory physics.Space for tests. It does
// not integrate anything: positions only change when set, impulses only
// accumulate on the body, and constraint impulses are whatever the test says.
package physicstest

import (
	"github.com/opd-ai/asteroid-belt/pkg/physics"
)

// Space records everything added to it.
type Space struct {
	Bodies      map[*Body]bool
	Shapes      map[*Shape]bool
	Constraints map[*Constraint]bool
	Gravity     physics.Vector2D
	Steps       int
	Elapsed     float64

	// OnStep, when set, runs on every Step call.
	OnStep func(dt float64)

	static *Body
}

// NewSpace returns an empty fake space.
func NewSpace() *Space {
	return &Space{
		Bodies:      make(map[*Body]bool),
		Shapes:      make(map[*Shape]bool),
		Constraints: make(map[*Constraint]bool),
		static:      &Body{Static: true},
	}
}

func (s *Space) StaticBody() physics.Body            { return s.static }
func (s *Space) SetGravity(gravity physics.Vector2D) { s.Gravity = gravity }

func (s *Space) AddBody(mass, moment float64) physics.Body {
	b := &Body{mass: mass, moment: moment}
	s.Bodies[b] = true
	return b
}

func (s *Space) AddCircle(body physics.Body, radius float64, material physics.Material) physics.Shape {
	shape := &Shape{body: body, radius: radius, material: material}
	s.Shapes[shape] = true
	return shape
}

func (s *Space) AddSegment(body physics.Body, a, b physics.Vector2D, radius float64, material physics.Material) physics.Shape {
	shape := &Shape{body: body, radius: radius, material: material, Segment: true, A: a, B: b}
	s.Shapes[shape] = true
	return shape
}

func (s *Space) AddPinJoint(a, b physics.Body, anchorA, anchorB physics.Vector2D) physics.Constraint {
	c := &Constraint{a: a, b: b, anchorA: anchorA, anchorB: anchorB, Pin: true}
	s.Constraints[c] = true
	return c
}

func (s *Space) AddDampedSpring(a, b physics.Body, anchorA, anchorB physics.Vector2D, spring physics.Spring) physics.Constraint {
	c := &Constraint{a: a, b: b, anchorA: anchorA, anchorB: anchorB, Spring: spring}
	s.Constraints[c] = true
	return c
}

func (s *Space) RemoveBody(body physics.Body)    { delete(s.Bodies, body.(*Body)) }
func (s *Space) RemoveShape(shape physics.Shape) { delete(s.Shapes, shape.(*Shape)) }
func (s *Space) RemoveConstraint(c physics.Constraint) {
	fc := c.(*Constraint)
	fc.Removals++
	delete(s.Constraints, fc)
}

func (s *Space) Step(dt float64) {
	s.Steps++
	s.Elapsed += dt
	if s.OnStep != nil {
		s.OnStep(dt)
	}
}

// Body is a fake rigid body.
type Body struct {
	Static   bool
	position physics.Vector2D
	angle    float64
	mass     float64
	moment   float64

	// Impulses lists every impulse applied, in order.
	Impulses []physics.Vector2D
}

func (b *Body) Position() physics.Vector2D     { return b.position }
func (b *Body) SetPosition(p physics.Vector2D) { b.position = p }
func (b *Body) Angle() float64                 { return b.angle }
func (b *Body) SetAngle(angle float64)         { b.angle = angle }
func (b *Body) Mass() float64                  { return b.mass }
func (b *Body) Moment() float64                { return b.moment }

func (b *Body) ApplyImpulse(impulse, offset physics.Vector2D) {
	b.Impulses = append(b.Impulses, impulse)
}

func (b *Body) LocalToWorld(p physics.Vector2D) physics.Vector2D {
	return p.Rotate(b.angle).Add(b.position)
}

func (b *Body) WorldToLocal(p physics.Vector2D) physics.Vector2D {
	return p.Sub(b.position).Rotate(-b.angle)
}

// Shape is a fake collision shape.
type Shape struct {
	body     physics.Body
	radius   float64
	material physics.Material
	Segment  bool
	A, B     physics.Vector2D
}

func (s *Shape) Body() physics.Body  { return s.body }
func (s *Shape) Radius() float64     { return s.radius }
func (s *Shape) Elasticity() float64 { return s.material.Elasticity }
func (s *Shape) Friction() float64   { return s.material.Friction }

// Constraint is a fake joint whose impulse is set directly by tests.
type Constraint struct {
	a, b             physics.Body
	anchorA, anchorB physics.Vector2D
	Pin              bool
	Spring           physics.Spring
	LastImpulse      float64
	Removals         int
}

func (c *Constraint) BodyA() physics.Body       { return c.a }
func (c *Constraint) BodyB() physics.Body       { return c.b }
func (c *Constraint) AnchorA() physics.Vector2D { return c.anchorA }
func (c *Constraint) AnchorB() physics.Vector2D { return c.anchorB }
func (c *Constraint) Impulse() float64          { return c.LastImpulse }
