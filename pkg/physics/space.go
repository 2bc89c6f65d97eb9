// pkg/physics/space.go
package physics

// Space is the narrow view of a rigid-body simulation the game depends on.
// Contact resolution and integration belong to the backend; callers only
// create bodies, shapes and constraints and read positions back.
type Space interface {
	// StaticBody returns the immovable body static shapes are attached to.
	StaticBody() Body
	SetGravity(gravity Vector2D)

	AddBody(mass, moment float64) Body
	AddCircle(body Body, radius float64, material Material) Shape
	AddSegment(body Body, a, b Vector2D, radius float64, material Material) Shape
	AddPinJoint(a, b Body, anchorA, anchorB Vector2D) Constraint
	AddDampedSpring(a, b Body, anchorA, anchorB Vector2D, spring Spring) Constraint

	RemoveBody(body Body)
	RemoveShape(shape Shape)
	RemoveConstraint(constraint Constraint)

	// Step advances the simulation by dt seconds.
	Step(dt float64)
}

// Body is a rigid body registered with a Space.
type Body interface {
	Position() Vector2D
	SetPosition(position Vector2D)
	// Angle is the body rotation in radians, counter-clockwise.
	Angle() float64
	SetAngle(angle float64)
	Mass() float64
	Moment() float64
	// ApplyImpulse applies impulse (world frame) at a point offset from the
	// body's centre of gravity (body frame).
	ApplyImpulse(impulse, offset Vector2D)
	LocalToWorld(point Vector2D) Vector2D
	WorldToLocal(point Vector2D) Vector2D
}

// Shape is a collision shape attached to a Body.
type Shape interface {
	Body() Body
	// Radius is the circle radius, or the segment thickness.
	Radius() float64
	Elasticity() float64
	Friction() float64
}

// Constraint links two bodies.
type Constraint interface {
	BodyA() Body
	BodyB() Body
	// AnchorA and AnchorB are the anchor points in each body's local frame.
	AnchorA() Vector2D
	AnchorB() Vector2D
	// Impulse is the magnitude of the impulse applied during the last step.
	Impulse() float64
}

// Material holds the surface properties of a shape.
type Material struct {
	Elasticity float64
	Friction   float64
}

// Spring configures a damped spring constraint.
type Spring struct {
	RestLength float64
	Stiffness  float64
	Damping    float64
}

// MomentForCircle returns the moment of inertia of a hollow circle with
// inner radius r1 and outer radius r2. A solid circle has r1 of zero.
func MomentForCircle(mass, r1, r2 float64) float64 {
	return mass * (r1*r1 + r2*r2) / 2
}
