// pkg/entity/person.go
package entity

import (
	"github.com/opd-ai/asteroid-belt/pkg/physics"
	"github.com/opd-ai/asteroid-belt/pkg/render"
)

// Player body constants.
const (
	PersonMass       = 2.0
	PersonRadius     = 15.0
	PersonElasticity = 0.0
	PersonFriction   = 0.5
	// PersonImpulse is applied every tick toward the target.
	PersonImpulse = 20.0
)

// Person is the player's avatar. Each Update it turns to face its target and
// pushes itself toward it.
type Person struct {
	id      ID
	body    physics.Body
	shape   physics.Shape
	target  physics.Vector2D
	impulse float64
	sprite  *render.VertexList
}

// NewPerson places the player at pos, initially targeting its own position.
func NewPerson(scene Scene, pos physics.Vector2D) *Person {
	p := &Person{
		id:      GenerateID(),
		target:  pos,
		impulse: PersonImpulse,
	}
	p.body = scene.Space.AddBody(PersonMass, physics.MomentForCircle(PersonMass, 5, 14))
	p.body.SetPosition(pos)
	p.shape = scene.Space.AddCircle(p.body, PersonRadius, physics.Material{
		Elasticity: PersonElasticity,
		Friction:   PersonFriction,
	})
	p.sprite = scene.Batch.Add(render.NewBodyGroup(scene.Group, p.body), render.Primitive{
		Kind:    render.Sprite,
		Points:  []physics.Vector2D{{}},
		Texture: PersonTexture,
	})
	return p
}

// SetImpulse changes the per-tick steering impulse.
func (p *Person) SetImpulse(impulse float64) {
	p.impulse = impulse
}

func (p *Person) GetID() ID                  { return p.id }
func (p *Person) Position() physics.Vector2D { return p.body.Position() }
func (p *Person) Angle() float64             { return p.body.Angle() }
func (p *Person) Body() physics.Body         { return p.body }
func (p *Person) Target() physics.Vector2D   { return p.target }

// SetTarget sets the world point the player steers toward.
func (p *Person) SetTarget(target physics.Vector2D) {
	p.target = target
}

// Update faces the target and applies one steering impulse. Nothing happens
// while the player sits exactly on its target.
func (p *Person) Update() {
	heading := p.target.Sub(p.body.Position())
	if heading.LengthSquared() == 0 {
		return
	}
	angle := heading.Angle()
	p.body.SetAngle(angle)
	p.body.ApplyImpulse(physics.FromAngle(angle, p.impulse), physics.Vector2D{})
}
