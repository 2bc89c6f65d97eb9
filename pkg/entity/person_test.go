package entity

import (
	"math"
	"testing"

	"github.com/opd-ai/asteroid-belt/pkg/physics"
	"github.com/opd-ai/asteroid-belt/pkg/physics/physicstest"
)

func TestNewPerson(t *testing.T) {
	scene, _ := newTestScene()
	p := NewPerson(scene, physics.Vector2D{X: 150, Y: 150})

	if p.Body().Mass() != PersonMass {
		t.Errorf("mass = %v", p.Body().Mass())
	}
	if p.Body().Moment() != 221 {
		t.Errorf("moment = %v, want 221", p.Body().Moment())
	}
	if p.Target() != p.Position() {
		t.Error("a new person should target its own position")
	}
	if p.shape.Radius() != PersonRadius || p.shape.Friction() != PersonFriction {
		t.Error("unexpected player shape")
	}
}

func TestPerson_UpdateSteersTowardTarget(t *testing.T) {
	tests := []struct {
		name      string
		target    physics.Vector2D
		wantAngle float64
		want      physics.Vector2D
	}{
		{"east", physics.Vector2D{X: 100}, 0, physics.Vector2D{X: PersonImpulse}},
		{"north", physics.Vector2D{Y: 5}, math.Pi / 2, physics.Vector2D{Y: PersonImpulse}},
		{"south_west", physics.Vector2D{X: -3, Y: -3}, -3 * math.Pi / 4,
			physics.Vector2D{X: -PersonImpulse / math.Sqrt2, Y: -PersonImpulse / math.Sqrt2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, _ := newTestScene()
			p := NewPerson(scene, physics.Vector2D{})
			p.SetTarget(tt.target)
			p.Update()

			if math.Abs(p.Angle()-tt.wantAngle) > 1e-9 {
				t.Errorf("angle = %v, want %v", p.Angle(), tt.wantAngle)
			}
			impulses := p.Body().(*physicstest.Body).Impulses
			if len(impulses) != 1 {
				t.Fatalf("applied %d impulses, want 1", len(impulses))
			}
			if got := impulses[0]; math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("impulse = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPerson_UpdateAtTarget(t *testing.T) {
	scene, _ := newTestScene()
	p := NewPerson(scene, physics.Vector2D{X: 7, Y: 7})
	p.Update()
	if n := len(p.Body().(*physicstest.Body).Impulses); n != 0 {
		t.Errorf("applied %d impulses while on target", n)
	}
}
