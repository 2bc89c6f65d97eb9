package entity

import (
	"math"
	"testing"

	"github.com/opd-ai/asteroid-belt/pkg/physics"
	"github.com/opd-ai/asteroid-belt/pkg/physics/chipmunk"
	"github.com/opd-ai/asteroid-belt/pkg/physics/physicstest"
	"github.com/opd-ai/asteroid-belt/pkg/render"
)

func newJointFixture(t *testing.T) (Scene, *physicstest.Space, *Asteroid, *Asteroid) {
	t.Helper()
	scene, space := newTestScene()
	rng := testRNG()
	a := NewAsteroid(scene, rng, physics.Vector2D{X: 0, Y: 0}, 50)
	b := NewAsteroid(scene, rng, physics.Vector2D{X: 100, Y: 0}, 50)
	a.Body().SetAngle(0)
	b.Body().SetAngle(0)
	return scene, space, a, b
}

func TestNewStrut(t *testing.T) {
	_, space, a, b := newJointFixture(t)
	j := NewStrut(space, a, b, physics.Vector2D{X: 10}, physics.Vector2D{X: -10})

	c := j.Constraint().(*physicstest.Constraint)
	if !c.Pin || !space.Constraints[c] {
		t.Fatal("strut should register a pin joint")
	}
	if j.Kind() != StrutJoint || j.State() != Active {
		t.Errorf("Kind %s State %s", j.Kind(), j.State())
	}
	if ids := j.AsteroidIDs(); ids[0] != a.GetID() || ids[1] != b.GetID() {
		t.Errorf("AsteroidIDs() = %v", ids)
	}
	pa, pb := j.Endpoints()
	if pa != (physics.Vector2D{X: 10}) || pb != (physics.Vector2D{X: 90}) {
		t.Errorf("Endpoints() = %v, %v", pa, pb)
	}
}

func TestNewUmbilical(t *testing.T) {
	_, space, a, b := newJointFixture(t)
	j := NewUmbilical(space, a, b, physics.Vector2D{}, physics.Vector2D{})

	c := j.Constraint().(*physicstest.Constraint)
	if c.Pin {
		t.Fatal("umbilical should be a spring")
	}
	want := physics.Spring{RestLength: 100, Stiffness: UmbilicalStiffness, Damping: UmbilicalDamping}
	if c.Spring != want {
		t.Errorf("spring = %+v, want %+v", c.Spring, want)
	}
}

func TestJoint_UpdateBelowThreshold(t *testing.T) {
	scene, space, a, b := newJointFixture(t)
	group := render.NewOrderedGroup(2)
	before := scene.Batch.Len()

	for _, kind := range []JointKind{StrutJoint, UmbilicalJoint} {
		t.Run(kind.String(), func(t *testing.T) {
			var j *Joint
			if kind == StrutJoint {
				j = NewStrut(space, a, b, physics.Vector2D{}, physics.Vector2D{})
			} else {
				j = NewUmbilical(space, a, b, physics.Vector2D{}, physics.Vector2D{})
			}
			c := j.Constraint().(*physicstest.Constraint)
			for _, impulse := range []float64{0, 500, 999.999} {
				c.LastImpulse = impulse
				if j.Update(scene.Batch, group) {
					t.Fatalf("impulse %v snapped the joint", impulse)
				}
			}
			if j.State() != Active || c.Removals != 0 {
				t.Error("joint should still be active")
			}
			if scene.Batch.Len() != before+1 {
				t.Errorf("batch holds %d lists, want %d: lines must be replaced, not added", scene.Batch.Len(), before+1)
			}
			j.Snap()
		})
	}
}

func TestJoint_SnapsExactlyOnce(t *testing.T) {
	for _, impulse := range []float64{1000, 1000.5, math.Inf(1)} {
		scene, space, a, b := newJointFixture(t)
		group := render.NewOrderedGroup(2)
		before := scene.Batch.Len()

		j := NewStrut(space, a, b, physics.Vector2D{}, physics.Vector2D{})
		c := j.Constraint().(*physicstest.Constraint)
		j.Update(scene.Batch, group)

		c.LastImpulse = impulse
		for i := range 3 {
			if !j.Update(scene.Batch, group) {
				t.Fatalf("impulse %v: Update #%d reported alive", impulse, i)
			}
		}
		if j.State() != Snapped {
			t.Errorf("impulse %v: state %s", impulse, j.State())
		}
		if c.Removals != 1 {
			t.Errorf("impulse %v: constraint removed %d times, want 1", impulse, c.Removals)
		}
		if scene.Batch.Len() != before {
			t.Errorf("impulse %v: snapped joint left its line in the batch", impulse)
		}
		if space.Constraints[c] {
			t.Error("constraint still registered")
		}
	}
}

func TestJoint_SnapIsIdempotent(t *testing.T) {
	_, space, a, b := newJointFixture(t)
	j := NewUmbilical(space, a, b, physics.Vector2D{}, physics.Vector2D{})
	j.Snap()
	j.Snap()
	if c := j.Constraint().(*physicstest.Constraint); c.Removals != 1 {
		t.Errorf("constraint removed %d times, want 1", c.Removals)
	}
}

func TestJoint_CustomThreshold(t *testing.T) {
	scene, space, a, b := newJointFixture(t)
	j := NewStrut(space, a, b, physics.Vector2D{}, physics.Vector2D{})
	j.SetBreakingImpulse(50)
	j.Constraint().(*physicstest.Constraint).LastImpulse = 50
	if !j.Update(scene.Batch, render.NewOrderedGroup(2)) {
		t.Error("joint should snap at its own threshold")
	}
}

func TestJoint_UmbilicalSnapsUnderTension(t *testing.T) {
	space := chipmunk.NewSpace(10)
	scene := Scene{
		Space:     space,
		Batch:     render.NewBatch(),
		Group:     render.NewOrderedGroup(1),
		Resources: DefaultResourceTable(),
		Textures:  NewTextureTable(),
	}
	group := render.NewOrderedGroup(2)
	rng := testRNG()
	a := NewAsteroid(scene, rng, physics.Vector2D{X: 0}, 50)
	b := NewAsteroid(scene, rng, physics.Vector2D{X: 300}, 50)
	j := NewUmbilical(space, a, b, physics.Vector2D{}, physics.Vector2D{})

	for step := 0; step < 600; step++ {
		a.ApplyImpulse(physics.Vector2D{X: -200000}, physics.Vector2D{})
		b.ApplyImpulse(physics.Vector2D{X: 200000}, physics.Vector2D{})
		space.Step(1.0 / 60.0)
		if j.Update(scene.Batch, group) {
			break
		}
	}
	if j.State() != Snapped {
		pa, pb := a.Position(), b.Position()
		t.Fatalf("umbilical survived being pulled %v apart", pa.Distance(pb))
	}
}
