// pkg/tool/tools.go
package tool

import (
	"github.com/opd-ai/asteroid-belt/pkg/entity"
	"github.com/opd-ai/asteroid-belt/pkg/event"
	"github.com/opd-ai/asteroid-belt/pkg/physics"
)

// Drill populates the first asteroid clicked.
type Drill struct{}

func (*Drill) Kind() Kind          { return DrillKind }
func (*Drill) Name() string        { return "Drill" }
func (*Drill) Order() int          { return 0 }
func (*Drill) Description() string { return "A drill allows you to mine an asteroid for resources." }

func (d *Drill) Selection(ctx Context, selection []Selection) Tool {
	if len(selection) == 0 {
		return d
	}
	a := selection[0].Asteroid
	a.SetPopulated(true)
	ctx.logger().Info(ctx.ctx(), "Asteroid drilled", "asteroid_id", a.GetID(), "resource", a.Resource().String())
	ctx.Bus.Publish(event.NewAsteroidEvent(event.AsteroidDrilled, d, uint64(a.GetID()), a.Resource().String()))
	return nil
}

type jointBuilder func(space physics.Space, a, b *entity.Asteroid, anchorA, anchorB physics.Vector2D) *entity.Joint

// connect joins the two selected asteroids when the clicks are strictly
// closer than reach. Clicking the same asteroid twice makes nothing.
func connect(ctx Context, source any, selection []Selection, reach, breaking float64, build jointBuilder) {
	first, second := selection[0], selection[1]
	distance := first.Point.Distance(second.Point)
	if distance >= reach || first.Asteroid == second.Asteroid {
		ctx.logger().Debug(ctx.ctx(), "Joint not made", "distance", distance, "reach", reach)
		return
	}
	j := build(ctx.Space, first.Asteroid, second.Asteroid,
		first.Asteroid.LocalOffset(first.Point), second.Asteroid.LocalOffset(second.Point))
	if breaking > 0 {
		j.SetBreakingImpulse(breaking)
	}
	if ctx.AddJoint != nil {
		ctx.AddJoint(j)
	}
	ids := j.AsteroidIDs()
	ctx.logger().Info(ctx.ctx(), "Joint created",
		"joint_id", j.GetID(), "kind", j.Kind().String(), "distance", distance)
	ctx.Bus.Publish(event.NewJointEvent(event.JointCreated, source, uint64(j.GetID()),
		j.Kind().String(), uint64(ids[0]), uint64(ids[1])))
}

// Umbilical links two asteroids with an elastic cord.
type Umbilical struct {
	Range           float64
	BreakingImpulse float64
}

func (*Umbilical) Kind() Kind   { return UmbilicalKind }
func (*Umbilical) Name() string { return "Umbilical" }
func (*Umbilical) Order() int   { return 1 }
func (*Umbilical) Description() string {
	return "An umbilical cord allows you to transport large items to other asteroids."
}

func (u *Umbilical) Selection(ctx Context, selection []Selection) Tool {
	if len(selection) < 2 {
		return u
	}
	connect(ctx, u, selection, u.Range, u.BreakingImpulse, entity.NewUmbilical)
	return nil
}

// Strut braces two asteroids with a rigid pin.
type Strut struct {
	Range           float64
	BreakingImpulse float64
}

func (*Strut) Kind() Kind          { return StrutKind }
func (*Strut) Name() string        { return "Strut" }
func (*Strut) Order() int          { return 2 }
func (*Strut) Description() string { return "A support strut stabilises two asteroids." }

func (s *Strut) Selection(ctx Context, selection []Selection) Tool {
	if len(selection) < 2 {
		return s
	}
	connect(ctx, s, selection, s.Range, s.BreakingImpulse, entity.NewStrut)
	return nil
}

// Rocket pushes the clicked asteroid away from the click.
type Rocket struct {
	Impulse float64
}

func (*Rocket) Kind() Kind          { return RocketKind }
func (*Rocket) Name() string        { return "Rocket" }
func (*Rocket) Order() int          { return 3 }
func (*Rocket) Description() string { return "A rocket will move an asteroid." }

func (r *Rocket) Selection(ctx Context, selection []Selection) Tool {
	if len(selection) == 0 {
		return r
	}
	sel := selection[0]
	away := sel.Asteroid.Position().Sub(sel.Point)
	if away.LengthSquared() == 0 {
		return nil
	}
	sel.Asteroid.ApplyImpulse(away.Normalize().Scale(r.Impulse), physics.Vector2D{})
	ctx.Bus.Publish(event.NewAsteroidEvent(event.AsteroidPushed, r,
		uint64(sel.Asteroid.GetID()), sel.Asteroid.Resource().String()))
	return nil
}

// Nuke is reserved for destroying asteroids and currently does nothing.
type Nuke struct{}

func (*Nuke) Kind() Kind          { return NukeKind }
func (*Nuke) Name() string        { return "Nuke" }
func (*Nuke) Order() int          { return 4 }
func (*Nuke) Description() string { return "A nuclear bomb will destroy an asteroid." }

func (*Nuke) Selection(Context, []Selection) Tool {
	return nil
}
