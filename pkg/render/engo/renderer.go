// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/asteroid-belt/pkg/physics"
	"github.com/opd-ai/asteroid-belt/pkg/render"
)

// Pixel sizes of primitives without a texture.
const (
	lineWidth = 2
	pointSize = 2
)

type drawable struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// EntityStore is where the sink keeps its entities. *common.RenderSystem
// implements it.
type EntityStore interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// EngoSink implements render.Sink on an engo RenderSystem. Each vertex list
// keeps one ECS entity for as long as it is drawn; lists missing from a
// frame have their entity removed when the frame ends.
type EngoSink struct {
	renderSystem EntityStore
	assets       *AssetManager
	height       float32

	entities map[uint64]*drawable
	seen     map[uint64]bool
}

// NewEngoSink creates a sink drawing into renderSystem on a screen height
// pixels tall.
func NewEngoSink(renderSystem EntityStore, assets *AssetManager, height float32) *EngoSink {
	return &EngoSink{
		renderSystem: renderSystem,
		assets:       assets,
		height:       height,
		entities:     make(map[uint64]*drawable),
		seen:         make(map[uint64]bool),
	}
}

// Begin implements render.Sink.
func (r *EngoSink) Begin() {
	clear(r.seen)
}

// Draw implements render.Sink.
func (r *EngoSink) Draw(p render.Resolved) {
	if len(p.Points) == 0 {
		return
	}
	points := make([]engo.Point, len(p.Points))
	for i, v := range p.Points {
		points[i] = toScreen(v, r.height)
	}

	d, exists := r.entities[p.ID]
	if !exists {
		d = &drawable{BasicEntity: ecs.NewBasic()}
	}
	var ok bool
	switch p.Kind {
	case render.Sprite:
		ok = r.sprite(d, p, points[0])
	case render.Polygon:
		ok = shape(d, fan(points), p.Color)
	case render.Lines:
		ok = shape(d, quads(points, lineWidth), p.Color)
	case render.Points:
		ok = shape(d, dots(points, pointSize), p.Color)
	}
	if !ok {
		return
	}
	d.RenderComponent.SetZIndex(float32(p.Layer))
	r.seen[p.ID] = true
	if !exists {
		// the render system picks a shader from the drawable when it is
		// added
		r.entities[p.ID] = d
		r.renderSystem.Add(&d.BasicEntity, &d.RenderComponent, &d.SpaceComponent)
	}
}

// End implements render.Sink, removing entities for lists that were not drawn.
func (r *EngoSink) End() {
	for id, d := range r.entities {
		if !r.seen[id] {
			r.renderSystem.Remove(d.BasicEntity)
			delete(r.entities, id)
		}
	}
}

// Entities is the number of live ECS entities.
func (r *EngoSink) Entities() int {
	return len(r.entities)
}

func (r *EngoSink) sprite(d *drawable, p render.Resolved, centre engo.Point) bool {
	texture, w, h, ok := r.assets.Sprite(p.Texture)
	if !ok {
		return false
	}
	d.Drawable = texture
	d.Color = color.White
	// SetCenter allows for rotation, so rotate first
	d.SpaceComponent = common.SpaceComponent{
		Width:    w,
		Height:   h,
		Rotation: float32(-p.Rotation * 180 / math.Pi),
	}
	d.SpaceComponent.SetCenter(centre)
	return true
}

// shape sizes the entity to the triangles' bounding box and stores them
// relative to it, as ComplexTriangles expects.
func shape(d *drawable, triangles []engo.Point, c color.RGBA) bool {
	if len(triangles) < 3 {
		return false
	}
	lo, hi := bounds(triangles)
	w, h := hi.X-lo.X, hi.Y-lo.Y
	relative := make([]engo.Point, len(triangles))
	for i, t := range triangles {
		relative[i] = engo.Point{X: ratio(t.X-lo.X, w), Y: ratio(t.Y-lo.Y, h)}
	}
	d.Drawable = common.ComplexTriangles{Points: relative}
	d.Color = c
	d.SpaceComponent = common.SpaceComponent{Position: lo, Width: w, Height: h}
	return true
}

func ratio(v, size float32) float32 {
	if size == 0 {
		return 0
	}
	return v / size
}

// toScreen flips a y-up point onto a y-down screen of the given height.
func toScreen(v physics.Vector2D, height float32) engo.Point {
	return engo.Point{X: float32(v.X), Y: height - float32(v.Y)}
}

func bounds(points []engo.Point) (engo.Point, engo.Point) {
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	}
	return lo, hi
}

// fan triangulates a polygon around its centroid. Asteroid outlines are
// star-shaped about their centre, so the fan never leaves the outline.
func fan(points []engo.Point) []engo.Point {
	if len(points) < 3 {
		return nil
	}
	var c engo.Point
	for _, p := range points {
		c.X += p.X
		c.Y += p.Y
	}
	n := float32(len(points))
	c.X, c.Y = c.X/n, c.Y/n

	triangles := make([]engo.Point, 0, len(points)*3)
	for i, p := range points {
		triangles = append(triangles, c, p, points[(i+1)%len(points)])
	}
	return triangles
}

// quads turns each pair of points into a rectangle width pixels thick.
func quads(points []engo.Point, width float32) []engo.Point {
	var triangles []engo.Point
	for i := 0; i+1 < len(points); i += 2 {
		a, b := points[i], points[i+1]
		dx, dy := b.X-a.X, b.Y-a.Y
		length := float32(math.Hypot(float64(dx), float64(dy)))
		if length == 0 {
			continue
		}
		nx, ny := -dy/length*width/2, dx/length*width/2
		a1, a2 := engo.Point{X: a.X + nx, Y: a.Y + ny}, engo.Point{X: a.X - nx, Y: a.Y - ny}
		b1, b2 := engo.Point{X: b.X + nx, Y: b.Y + ny}, engo.Point{X: b.X - nx, Y: b.Y - ny}
		triangles = append(triangles, a1, b1, b2, a1, b2, a2)
	}
	return triangles
}

// dots draws each point as a small square.
func dots(points []engo.Point, size float32) []engo.Point {
	triangles := make([]engo.Point, 0, len(points)*6)
	for _, p := range points {
		tl := p
		tr := engo.Point{X: p.X + size, Y: p.Y}
		bl := engo.Point{X: p.X, Y: p.Y + size}
		br := engo.Point{X: p.X + size, Y: p.Y + size}
		triangles = append(triangles, tl, tr, br, tl, br, bl)
	}
	return triangles
}
