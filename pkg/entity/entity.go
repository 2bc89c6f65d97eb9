// pkg/entity/entity.go
package entity

import (
	"sync/atomic"

	"github.com/opd-ai/asteroid-belt/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

var nextID atomic.Uint64

// GenerateID returns a process-wide unique entity ID. IDs start at 1 so the
// zero value can mean "no entity".
func GenerateID() ID {
	return ID(nextID.Add(1))
}

// Entity is the base interface for all game objects backed by a physics body
type Entity interface {
	GetID() ID
	Position() physics.Vector2D
	Angle() float64
}
