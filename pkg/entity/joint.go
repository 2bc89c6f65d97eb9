// pkg/entity/joint.go
package entity

import (
	"image/color"

	"github.com/opd-ai/asteroid-belt/pkg/physics"
	"github.com/opd-ai/asteroid-belt/pkg/render"
)

// BreakingImpulse is the constraint impulse at which any joint snaps.
const BreakingImpulse = 1000.0

// Umbilical spring parameters. The rest length is the anchor distance when
// the joint is made.
const (
	UmbilicalStiffness = 20.0
	UmbilicalDamping   = 5.0
)

// JointKind distinguishes rigid struts from elastic umbilicals.
type JointKind int

const (
	StrutJoint JointKind = iota
	UmbilicalJoint
)

func (k JointKind) String() string {
	switch k {
	case StrutJoint:
		return "strut"
	case UmbilicalJoint:
		return "umbilical"
	default:
		return "unknown"
	}
}

// JointState is Active until the joint snaps. Snapped is terminal.
type JointState int

const (
	Active JointState = iota
	Snapped
)

func (s JointState) String() string {
	if s == Snapped {
		return "snapped"
	}
	return "active"
}

var jointColors = map[JointKind]color.RGBA{
	StrutJoint:     {R: 200, G: 200, B: 200, A: 255},
	UmbilicalJoint: {R: 90, G: 200, B: 90, A: 255},
}

// Joint ties two asteroids together through a physics constraint. It only
// remembers the asteroids' IDs; the scene owns the asteroids themselves.
type Joint struct {
	id         ID
	kind       JointKind
	state      JointState
	space      physics.Space
	constraint physics.Constraint
	asteroids  [2]ID
	threshold  float64
	line       *render.VertexList
}

// NewStrut pins a and b together at the given local anchors.
func NewStrut(space physics.Space, a, b *Asteroid, anchorA, anchorB physics.Vector2D) *Joint {
	c := space.AddPinJoint(a.Body(), b.Body(), anchorA, anchorB)
	return newJoint(StrutJoint, space, c, a, b)
}

// NewUmbilical links a and b with a damped spring at the given local anchors.
func NewUmbilical(space physics.Space, a, b *Asteroid, anchorA, anchorB physics.Vector2D) *Joint {
	rest := a.Body().LocalToWorld(anchorA).Distance(b.Body().LocalToWorld(anchorB))
	c := space.AddDampedSpring(a.Body(), b.Body(), anchorA, anchorB, physics.Spring{
		RestLength: rest,
		Stiffness:  UmbilicalStiffness,
		Damping:    UmbilicalDamping,
	})
	return newJoint(UmbilicalJoint, space, c, a, b)
}

func newJoint(kind JointKind, space physics.Space, c physics.Constraint, a, b *Asteroid) *Joint {
	return &Joint{
		id:         GenerateID(),
		kind:       kind,
		space:      space,
		constraint: c,
		asteroids:  [2]ID{a.GetID(), b.GetID()},
		threshold:  BreakingImpulse,
	}
}

// SetBreakingImpulse overrides the snapping threshold for this joint.
func (j *Joint) SetBreakingImpulse(threshold float64) {
	j.threshold = threshold
}

func (j *Joint) GetID() ID                      { return j.id }
func (j *Joint) Kind() JointKind                { return j.kind }
func (j *Joint) State() JointState              { return j.state }
func (j *Joint) AsteroidIDs() [2]ID             { return j.asteroids }
func (j *Joint) Constraint() physics.Constraint { return j.constraint }

// Endpoints returns both anchors in world coordinates.
func (j *Joint) Endpoints() (physics.Vector2D, physics.Vector2D) {
	a := j.constraint.BodyA().LocalToWorld(j.constraint.AnchorA())
	b := j.constraint.BodyB().LocalToWorld(j.constraint.AnchorB())
	return a, b
}

// Update runs once per tick. It snaps the joint when the last constraint
// impulse reaches the breaking threshold and reports whether the joint is
// dead. A live joint replaces last tick's line with one between its anchors.
func (j *Joint) Update(batch *render.Batch, group render.Group) bool {
	if j.state == Snapped {
		return true
	}
	if j.constraint.Impulse() >= j.threshold {
		j.Snap()
		return true
	}
	if j.line != nil {
		j.line.Delete()
	}
	a, b := j.Endpoints()
	j.line = batch.Add(group, render.Primitive{
		Kind:   render.Lines,
		Points: []physics.Vector2D{a, b},
		Color:  jointColors[j.kind],
	})
	return false
}

// Snap releases the joint's line and removes its constraint from the space.
// Only the first call has any effect.
func (j *Joint) Snap() {
	if j.state == Snapped {
		return
	}
	j.state = Snapped
	if j.line != nil {
		j.line.Delete()
		j.line = nil
	}
	j.space.RemoveConstraint(j.constraint)
}
