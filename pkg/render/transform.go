// pkg/render/transform.go
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/asteroid-belt/pkg/physics"
)

// TransformStack is a push/pop stack of 2D homogeneous transforms. Groups
// push before changing the current transform and pop to restore it, so
// nested drawing always composes and always unwinds.
type TransformStack struct {
	current mgl64.Mat3
	saved   []mgl64.Mat3
}

// NewTransformStack returns a stack holding the identity transform.
func NewTransformStack() *TransformStack {
	return &TransformStack{current: mgl64.Ident3()}
}

// Push saves the current transform.
func (s *TransformStack) Push() {
	s.saved = append(s.saved, s.current)
}

// Pop restores the most recently pushed transform. It reports false when
// there is nothing to pop.
func (s *TransformStack) Pop() bool {
	if len(s.saved) == 0 {
		return false
	}
	s.current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	return true
}

// Depth is the number of saved transforms.
func (s *TransformStack) Depth() int {
	return len(s.saved)
}

// Reset drops all saved transforms and restores the identity.
func (s *TransformStack) Reset() {
	s.current = mgl64.Ident3()
	s.saved = s.saved[:0]
}

// Translate appends a translation to the current transform.
func (s *TransformStack) Translate(x, y float64) {
	s.current = s.current.Mul3(mgl64.Translate2D(x, y))
}

// Rotate appends a counter-clockwise rotation in radians.
func (s *TransformStack) Rotate(angle float64) {
	s.current = s.current.Mul3(mgl64.HomogRotate2D(angle))
}

// Apply maps a point through the current transform.
func (s *TransformStack) Apply(p physics.Vector2D) physics.Vector2D {
	v := s.current.Mul3x1(mgl64.Vec3{p.X, p.Y, 1})
	return physics.Vector2D{X: v[0], Y: v[1]}
}

// Rotation is the total rotation of the current transform in radians.
func (s *TransformStack) Rotation() float64 {
	return math.Atan2(s.current.At(1, 0), s.current.At(0, 0))
}
