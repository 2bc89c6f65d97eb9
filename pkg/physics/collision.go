// pkg/physics/collision.go
package physics

// Circle represents a circular area in world space
type Circle struct {
	Center Vector2D
	Radius float64
}

// Contains reports whether point lies strictly inside the circle.
func (c Circle) Contains(point Vector2D) bool {
	return point.Sub(c.Center).LengthSquared() < c.Radius*c.Radius
}

// Collides checks if two circles overlap
func (c Circle) Collides(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}

// Rect represents an axis aligned rectangular area
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// NewRectFromExtents builds a Rect centred on c extending hw and hh each way.
func NewRectFromExtents(c Vector2D, hw, hh float64) Rect {
	return Rect{Center: c, Width: hw * 2, Height: hh * 2}
}

// Contains reports whether point lies inside the rectangle. The lower edges
// are inclusive and the upper edges exclusive.
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.Center.X-r.Width/2 &&
		point.X < r.Center.X+r.Width/2 &&
		point.Y >= r.Center.Y-r.Height/2 &&
		point.Y < r.Center.Y+r.Height/2
}
