// pkg/world/segment.go
package world

import (
	"fmt"
	"iter"
	"math/rand/v2"

	"github.com/opd-ai/asteroid-belt/pkg/physics"
)

// Raggedness bounds how far from the middle a split may fall, as a fraction
// of half the axis. 0.5 puts every cut between 25% and 75%.
const Raggedness = 0.5

// Bounds is the size of the world. The origin is the bottom left corner.
type Bounds struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Validate rejects non-positive dimensions.
func (b Bounds) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: world is %gx%g", ErrDegenerateWorld, b.Width, b.Height)
	}
	return nil
}

// Vector returns the bounds as a width/height vector.
func (b Bounds) Vector() physics.Vector2D {
	return physics.Vector2D{X: b.Width, Y: b.Height}
}

// Segment is an axis aligned rectangle produced by recursive subdivision.
type Segment struct {
	X, Y          float64
	Width, Height float64
}

// NewSegment returns the segment covering the whole world.
func NewSegment(b Bounds) Segment {
	return Segment{Width: b.Width, Height: b.Height}
}

// Split cuts the longer side in two at a ragged midpoint; a square is cut
// across its width. When the smaller part would fall below minimum, ok is
// false and the segment should be kept whole.
func (s Segment) Split(rng *rand.Rand, minimum float64) (first, second Segment, ok bool) {
	ragged := rng.Float64() * Raggedness
	if s.Width >= s.Height {
		half := s.Width / 2
		r := ragged * half
		if half-r < minimum {
			return s, Segment{}, false
		}
		first = Segment{X: s.X, Y: s.Y, Width: half + r, Height: s.Height}
		second = Segment{X: s.X + half + r, Y: s.Y, Width: half - r, Height: s.Height}
		return first, second, true
	}
	half := s.Height / 2
	r := ragged * half
	if half-r < minimum {
		return s, Segment{}, false
	}
	first = Segment{X: s.X, Y: s.Y, Width: s.Width, Height: half + r}
	second = Segment{X: s.X, Y: s.Y + half + r, Width: s.Width, Height: half - r}
	return first, second, true
}

// RecursiveSplit lazily yields the leaves of repeated splitting, depth
// first, the left or lower half before the other. Random numbers are drawn
// only as the sequence is consumed.
func (s Segment) RecursiveSplit(rng *rand.Rand, minimum float64) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		s.walk(rng, minimum, yield)
	}
}

func (s Segment) walk(rng *rand.Rand, minimum float64, yield func(Segment) bool) bool {
	first, second, ok := s.Split(rng, minimum)
	if !ok {
		return yield(s)
	}
	return first.walk(rng, minimum, yield) && second.walk(rng, minimum, yield)
}

// Centre is the middle of the segment.
func (s Segment) Centre() physics.Vector2D {
	return physics.Vector2D{X: s.X + s.Width/2, Y: s.Y + s.Height/2}
}

// Area is width times height.
func (s Segment) Area() float64 {
	return s.Width * s.Height
}

// Overlaps reports whether the interiors of two segments intersect. Shared
// edges do not count.
func (s Segment) Overlaps(o Segment) bool {
	return s.X < o.X+o.Width && o.X < s.X+s.Width &&
		s.Y < o.Y+o.Height && o.Y < s.Y+s.Height
}
