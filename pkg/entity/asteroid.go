// pkg/entity/asteroid.go
package entity

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/opd-ai/asteroid-belt/pkg/physics"
	"github.com/opd-ai/asteroid-belt/pkg/render"
)

// Asteroid construction constants.
const (
	AsteroidElasticity = 0.35
	AsteroidFriction   = 0.1

	// CollisionFactor scales the asteroid size to its collision radius.
	CollisionFactor = 1.1

	MinOutlinePoints = 15
	MaxOutlinePoints = 20

	// OutlineJitter is the largest outline radius as a multiple of size.
	OutlineJitter = 1.3

	minShade = 75
	maxShade = 190
)

// Scene is what every entity is built against: the physics space it lives
// in, the batch it is drawn through and the shared tables.
type Scene struct {
	Space     physics.Space
	Batch     *render.Batch
	Group     render.Group
	Resources *ResourceTable
	Textures  *TextureTable
}

// Asteroid is a rigid body with a jagged outline and a resource. Its
// position and angle always come from the physics body.
type Asteroid struct {
	id       ID
	size     float64
	body     physics.Body
	shape    physics.Shape
	points   []physics.Vector2D
	shade    color.RGBA
	resource ResourceType

	populated bool
	visible   bool

	textures *TextureTable
	group    *render.BodyGroup
	outline  *render.VertexList
	sprite   *render.VertexList
}

// NewAsteroid builds an asteroid of the given size centred on center and
// registers its body and shape with the scene's space.
func NewAsteroid(scene Scene, rng *rand.Rand, center physics.Vector2D, size float64) *Asteroid {
	a := &Asteroid{
		id:       GenerateID(),
		size:     size,
		resource: scene.Resources.Pick(rng),
		textures: scene.Textures,
	}

	a.body = scene.Space.AddBody(size, physics.MomentForCircle(size, 0, size))
	a.body.SetPosition(center)
	a.body.SetAngle(rng.Float64() * 2 * math.Pi)
	a.shape = scene.Space.AddCircle(a.body, CollisionFactor*size, physics.Material{
		Elasticity: AsteroidElasticity,
		Friction:   AsteroidFriction,
	})

	n := MinOutlinePoints + rng.IntN(MaxOutlinePoints-MinOutlinePoints+1)
	a.points = outline(rng, n, size)
	grey := uint8(minShade + rng.IntN(maxShade-minShade+1))
	a.shade = color.RGBA{R: grey, G: grey, B: grey, A: 255}

	a.group = render.NewBodyGroup(scene.Group, a.body)
	a.outline = scene.Batch.Add(a.group, render.Primitive{
		Kind:   render.Polygon,
		Points: a.points,
		Color:  a.shade,
	})
	a.sprite = scene.Batch.Add(a.group, render.Primitive{
		Kind:    render.Sprite,
		Points:  []physics.Vector2D{{}},
		Texture: a.textures.Lookup(a.TextureKey()),
		Hidden:  true,
	})
	return a
}

// outline returns n points evenly spaced by angle, each at a random radius
// between size and OutlineJitter*size.
func outline(rng *rand.Rand, n int, size float64) []physics.Vector2D {
	step := 2 * math.Pi / float64(n)
	points := make([]physics.Vector2D, n)
	for i := range points {
		r := (1 + rng.Float64()*(OutlineJitter-1)) * size
		points[i] = physics.FromAngle(step*float64(i), r)
	}
	return points
}

func (a *Asteroid) GetID() ID                  { return a.id }
func (a *Asteroid) Position() physics.Vector2D { return a.body.Position() }
func (a *Asteroid) Angle() float64             { return a.body.Angle() }
func (a *Asteroid) Size() float64              { return a.size }
func (a *Asteroid) Body() physics.Body         { return a.body }
func (a *Asteroid) Shape() physics.Shape       { return a.shape }
func (a *Asteroid) Resource() ResourceType     { return a.resource }
func (a *Asteroid) Shade() color.RGBA          { return a.shade }
func (a *Asteroid) Populated() bool            { return a.populated }
func (a *Asteroid) Visible() bool              { return a.visible }

// Radius is the collision radius.
func (a *Asteroid) Radius() float64 {
	return a.shape.Radius()
}

// Points returns the outline in the body's local frame.
func (a *Asteroid) Points() []physics.Vector2D {
	return append([]physics.Vector2D(nil), a.points...)
}

// TextureKey is the sprite currently selected for the asteroid.
func (a *Asteroid) TextureKey() TextureKey {
	return TextureKey{Resource: a.resource, Refined: a.populated}
}

// MarkHome turns the asteroid into the player's home. Its sprite stays
// hidden until it is populated.
func (a *Asteroid) MarkHome() {
	a.resource = Home
	a.refresh()
}

// SetPopulated switches between the raw and refined sprite. Setting the
// current value does nothing. Populating reveals the sprite, and it stays
// visible if the asteroid is later reverted.
func (a *Asteroid) SetPopulated(populated bool) {
	if populated == a.populated {
		return
	}
	a.populated = populated
	if populated {
		a.visible = true
	}
	a.refresh()
}

func (a *Asteroid) refresh() {
	a.sprite.SetTexture(a.textures.Lookup(a.TextureKey()))
	a.sprite.SetHidden(!a.visible)
}

// PointOver reports whether p lies strictly inside the collision circle.
func (a *Asteroid) PointOver(p physics.Vector2D) bool {
	return physics.Circle{Center: a.Position(), Radius: a.Radius()}.Contains(p)
}

// LocalOffset converts a world point into the body's local frame, as used for
// joint anchors.
func (a *Asteroid) LocalOffset(world physics.Vector2D) physics.Vector2D {
	return a.body.WorldToLocal(world)
}

// ApplyImpulse pushes the asteroid; offset is relative to its centre.
func (a *Asteroid) ApplyImpulse(impulse, offset physics.Vector2D) {
	a.body.ApplyImpulse(impulse, offset)
}

// Remove takes the asteroid out of the physics space. Callers must do this
// in addition to Destroy when an asteroid leaves the world.
func (a *Asteroid) Remove(space physics.Space) {
	space.RemoveShape(a.shape)
	space.RemoveBody(a.body)
}

// Destroy deletes the asteroid's vertex lists from the batch.
func (a *Asteroid) Destroy() {
	a.outline.Delete()
	a.sprite.Delete()
}

// Destroyed reports whether Destroy has been called.
func (a *Asteroid) Destroyed() bool {
	return a.outline.Deleted()
}
