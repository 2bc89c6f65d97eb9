// pkg/world/errors.go
package world

import "errors"

var (
	// ErrDegenerateWorld means the world or size limits cannot produce a
	// field at all. Retrying will not help.
	ErrDegenerateWorld = errors.New("degenerate world configuration")
	// ErrEmptyField means subdivision produced no asteroids.
	ErrEmptyField = errors.New("no asteroids generated")
	// ErrMissingResource means some resource type has no asteroid.
	ErrMissingResource = errors.New("resource type missing from field")
	// ErrNoHomeCandidate means no asteroid lies in the home band.
	ErrNoHomeCandidate = errors.New("no asteroid in the home band")
)

// IsRecoverable reports whether regenerating the field may fix err.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrEmptyField) ||
		errors.Is(err, ErrMissingResource) ||
		errors.Is(err, ErrNoHomeCandidate)
}
