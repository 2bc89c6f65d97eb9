// pkg/render/batch.go
package render

import (
	"image/color"
	"sort"

	"github.com/opd-ai/asteroid-belt/pkg/physics"
)

// Kind identifies the primitive a vertex list draws.
type Kind int

const (
	// Points draws one dot per vertex.
	Points Kind = iota
	// Lines draws one segment per pair of vertices.
	Lines
	// Polygon draws a filled outline through all vertices.
	Polygon
	// Sprite draws a texture centred on the first vertex.
	Sprite
)

func (k Kind) String() string {
	switch k {
	case Points:
		return "points"
	case Lines:
		return "lines"
	case Polygon:
		return "polygon"
	case Sprite:
		return "sprite"
	default:
		return "unknown"
	}
}

// TextureID names a texture known to the active Sink.
type TextureID string

// Primitive is a shape in its group's local coordinates.
type Primitive struct {
	Kind    Kind
	Points  []physics.Vector2D
	Color   color.RGBA
	Texture TextureID
	Hidden  bool
}

// Resolved is a primitive after its group transforms have been applied.
type Resolved struct {
	// ID identifies the vertex list the primitive came from and is stable
	// for the lifetime of the list.
	ID       uint64
	Kind     Kind
	Layer    int
	Points   []physics.Vector2D
	Color    color.RGBA
	Texture  TextureID
	Rotation float64
}

// Sink consumes resolved primitives once per frame.
type Sink interface {
	Begin()
	Draw(r Resolved)
	End()
}

// VertexList is a primitive submitted to a Batch.
type VertexList struct {
	id        uint64
	batch     *Batch
	group     Group
	primitive Primitive
	deleted   bool
}

// ID returns the list's identifier.
func (l *VertexList) ID() uint64 { return l.id }

// Primitive returns a copy of the list's primitive.
func (l *VertexList) Primitive() Primitive {
	p := l.primitive
	p.Points = append([]physics.Vector2D(nil), p.Points...)
	return p
}

// SetTexture swaps the texture of a sprite list.
func (l *VertexList) SetTexture(texture TextureID) {
	l.primitive.Texture = texture
}

// SetHidden hides or shows the list.
func (l *VertexList) SetHidden(hidden bool) {
	l.primitive.Hidden = hidden
}

// Deleted reports whether Delete has been called.
func (l *VertexList) Deleted() bool { return l.deleted }

// Delete removes the list from its batch. Deleting twice is a no-op.
func (l *VertexList) Delete() {
	if l.deleted {
		return
	}
	l.deleted = true
	l.batch.remove(l)
}

// Batch holds every vertex list submitted for drawing. Lists are drawn by
// layer and then in submission order.
type Batch struct {
	lists  []*VertexList
	nextID uint64
	stack  *TransformStack
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{stack: NewTransformStack()}
}

// Add submits a primitive under group and returns its handle.
func (b *Batch) Add(group Group, primitive Primitive) *VertexList {
	b.nextID++
	primitive.Points = append([]physics.Vector2D(nil), primitive.Points...)
	list := &VertexList{id: b.nextID, batch: b, group: group, primitive: primitive}
	b.lists = append(b.lists, list)
	return list
}

func (b *Batch) remove(list *VertexList) {
	for i, l := range b.lists {
		if l == list {
			b.lists = append(b.lists[:i], b.lists[i+1:]...)
			return
		}
	}
}

// Len is the number of live vertex lists.
func (b *Batch) Len() int {
	return len(b.lists)
}

// Draw resolves every visible list through its group chain and hands the
// result to sink.
func (b *Batch) Draw(sink Sink) {
	ordered := make([]*VertexList, len(b.lists))
	copy(ordered, b.lists)
	sort.SliceStable(ordered, func(i, j int) bool {
		return groupOrder(ordered[i].group) < groupOrder(ordered[j].group)
	})

	sink.Begin()
	for _, l := range ordered {
		if l.primitive.Hidden {
			continue
		}
		b.stack.Reset()
		setState(l.group, b.stack)
		points := make([]physics.Vector2D, len(l.primitive.Points))
		for i, p := range l.primitive.Points {
			points[i] = b.stack.Apply(p)
		}
		sink.Draw(Resolved{
			ID:       l.id,
			Kind:     l.primitive.Kind,
			Layer:    groupOrder(l.group),
			Points:   points,
			Color:    l.primitive.Color,
			Texture:  l.primitive.Texture,
			Rotation: b.stack.Rotation(),
		})
		unsetState(l.group, b.stack)
	}
	sink.End()
}
