package engine

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/opd-ai/asteroid-belt/pkg/config"
	"github.com/opd-ai/asteroid-belt/pkg/entity"
	"github.com/opd-ai/asteroid-belt/pkg/event"
	"github.com/opd-ai/asteroid-belt/pkg/logging"
	"github.com/opd-ai/asteroid-belt/pkg/physics"
	"github.com/opd-ai/asteroid-belt/pkg/physics/physicstest"
	"github.com/opd-ai/asteroid-belt/pkg/render"
	"github.com/opd-ai/asteroid-belt/pkg/tool"
	"github.com/opd-ai/asteroid-belt/pkg/world"
)

func testConfig() *config.GameConfig {
	cfg := config.DefaultConfig()
	cfg.World.Width, cfg.World.Height = 1200, 1200
	cfg.World.PlanetSize = 100
	cfg.Asteroids.MinSize, cfg.Asteroids.MaxSize = 20, 40
	cfg.Window.Width, cfg.Window.Height = 400, 300
	return cfg
}

func newTestGame(t *testing.T) (*Game, *physicstest.Space) {
	t.Helper()
	space := physicstest.NewSpace()
	logger := logging.NewLoggerWithWriter(&bytes.Buffer{}, slog.LevelDebug)
	game, err := NewGame(context.Background(), testConfig(), space, rand.New(rand.NewPCG(5, 6)), logger)
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	return game, space
}

// screenOf converts a world point to the screen position that maps to it.
func screenOf(g *Game, p physics.Vector2D) physics.Vector2D {
	return physics.Vector2D{X: p.X - g.Camera.X(), Y: p.Y - g.Camera.Y()}
}

func TestNewGame_BuildsWorld(t *testing.T) {
	game, space := newTestGame(t)

	if len(game.Asteroids) == 0 || game.Home == nil {
		t.Fatal("no field generated")
	}
	if game.Home.Resource() != entity.Home || !game.Home.Populated() {
		t.Error("home should be typed home and populated")
	}
	want := game.Home.Position().Add(physics.Vector2D{X: 150, Y: 150})
	if game.Player.Position() != want {
		t.Errorf("player at %v, want %v", game.Player.Position(), want)
	}
	if game.Planet != (physics.Vector2D{X: 600, Y: 50}) {
		t.Errorf("planet at %v, want (600, 50)", game.Planet)
	}
	if game.WinBox.Width != 400 || game.WinBox.Height != 400 {
		t.Errorf("win box = %+v", game.WinBox)
	}

	// asteroids, the player and four border walls
	if want := len(game.Asteroids) + 1 + 4; len(space.Shapes) != want {
		t.Errorf("space holds %d shapes, want %d", len(space.Shapes), want)
	}
	if game.Status != GameStatusPlaying || game.ActiveTool() != nil {
		t.Error("a new game should be playing with no tool")
	}
	if len(game.Tools()) != 5 {
		t.Errorf("%d tools", len(game.Tools()))
	}
}

func TestNewGame_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.World.Width = 0
	_, err := NewGame(context.Background(), cfg, physicstest.NewSpace(), rand.New(rand.NewPCG(1, 1)), nil)
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("NewGame() error = %v, want ErrInvalidConfig", err)
	}
}

func TestNewGame_GenerationFailure(t *testing.T) {
	cfg := testConfig()
	cfg.World.HomeBand = 0.99
	cfg.Asteroids.MaxAttempts = 2
	logger := logging.NewLoggerWithWriter(&bytes.Buffer{}, slog.LevelDebug)
	_, err := NewGame(context.Background(), cfg, physicstest.NewSpace(), rand.New(rand.NewPCG(1, 1)), logger)
	if !errors.Is(err, world.ErrNoHomeCandidate) {
		t.Fatalf("NewGame() error = %v, want ErrNoHomeCandidate", err)
	}
	if !strings.HasPrefix(err.Error(), "generating 1200x1200 asteroid field: world generation failed after 2 attempts") {
		t.Errorf("error lacks generation context: %v", err)
	}
}

func TestGame_UpdateOrder(t *testing.T) {
	game, space := newTestGame(t)
	a, b := placePair(game)
	j := entity.NewStrut(space, a, b, physics.Vector2D{}, physics.Vector2D{})
	game.Joints = append(game.Joints, j)
	c := j.Constraint().(*physicstest.Constraint)

	target := game.Player.Position().Add(physics.Vector2D{X: 100})
	game.MouseMoved(screenOf(game, target))

	space.OnStep = func(dt float64) {
		if dt != game.Config.Physics.TimeStep {
			t.Errorf("step dt = %v, want fixed %v", dt, game.Config.Physics.TimeStep)
		}
		if n := len(game.Player.Body().(*physicstest.Body).Impulses); n != 1 {
			t.Errorf("player steered %d times before the step", n)
		}
		if len(game.Joints) != 0 {
			t.Error("snapped joint should be evicted before the step")
		}
	}
	c.LastImpulse = entity.BreakingImpulse
	game.Update(0.5)

	if space.Steps != 1 || game.CurrentTick != 1 {
		t.Errorf("steps %d ticks %d", space.Steps, game.CurrentTick)
	}
	if math.Abs(game.Player.Angle()) > 1e-9 {
		t.Errorf("player should face the mouse, angle %v", game.Player.Angle())
	}
}

func TestGame_CameraFollowsPlayer(t *testing.T) {
	game, _ := newTestGame(t)
	game.Player.Body().SetPosition(physics.Vector2D{X: 600, Y: 600})
	game.Update(1.0 / 60)
	if game.Camera.X() != 400 || game.Camera.Y() != 450 {
		t.Errorf("camera at (%v, %v), want (400, 450)", game.Camera.X(), game.Camera.Y())
	}

	game.MouseDragged(2, -1)
	game.Update(1.0 / 60)
	if game.Camera.X() != 420 || game.Camera.Y() != 440 {
		t.Errorf("dragged camera at (%v, %v), want (420, 440)", game.Camera.X(), game.Camera.Y())
	}
}

func TestGame_JointLifecycleThroughTools(t *testing.T) {
	game, _ := newTestGame(t)
	var created, snapped int
	game.EventBus.Subscribe(event.JointCreated, func(event.Event) { created++ })
	game.EventBus.Subscribe(event.JointSnapped, func(event.Event) { snapped++ })

	a, b := placePair(game)
	if !game.KeyPressed('3') {
		t.Fatal("key 3 should select a tool")
	}
	if game.ActiveTool().Kind() != tool.StrutKind {
		t.Fatalf("active tool = %s, want Strut", game.ActiveTool().Name())
	}

	clickA := a.Position().Add(physics.Vector2D{X: a.Radius() - 1})
	clickB := b.Position().Sub(physics.Vector2D{X: b.Radius() - 1})
	game.MousePressed(screenOf(game, clickA))
	if game.ActiveTool() == nil || len(game.Joints) != 0 {
		t.Fatal("one click should leave the strut armed")
	}
	game.MousePressed(screenOf(game, clickB))
	if game.ActiveTool() != nil {
		t.Error("the tool should be put away after two clicks")
	}
	if len(game.Joints) != 1 || created != 1 {
		t.Fatalf("joints %d created events %d", len(game.Joints), created)
	}

	j := game.Joints[0]
	game.Update(1.0 / 60)
	if len(game.Joints) != 1 {
		t.Fatal("unloaded joint should survive")
	}
	j.Constraint().(*physicstest.Constraint).LastImpulse = 2500
	game.Update(1.0 / 60)
	if len(game.Joints) != 0 || snapped != 1 || j.State() != entity.Snapped {
		t.Errorf("joints %d snapped events %d state %s", len(game.Joints), snapped, j.State())
	}
}

// placePair moves two asteroids to an empty corner outside the field, 50
// units apart at their rims.
func placePair(g *Game) (*entity.Asteroid, *entity.Asteroid) {
	a, b := g.Asteroids[0], g.Asteroids[1]
	if a == g.Home {
		a = g.Asteroids[2]
	}
	if b == g.Home {
		b = g.Asteroids[2]
	}
	a.Body().SetAngle(0)
	b.Body().SetAngle(0)
	a.Body().SetPosition(physics.Vector2D{X: -1000, Y: -1000})
	b.Body().SetPosition(physics.Vector2D{X: -1000 + a.Radius() + b.Radius() + 50, Y: -1000})
	return a, b
}

func TestGame_ClickingSpaceClearsTool(t *testing.T) {
	game, _ := newTestGame(t)
	if game.MousePressed(physics.Vector2D{}) {
		t.Error("a click with no tool should not be handled")
	}
	game.SetTool(tool.DrillKind)
	if !game.MousePressed(screenOf(game, physics.Vector2D{X: -5000, Y: -5000})) {
		t.Error("a click with a tool should be handled")
	}
	if game.ActiveTool() != nil {
		t.Error("clicking empty space should put the tool away")
	}
}

func TestGame_Drill(t *testing.T) {
	game, _ := newTestGame(t)
	var target *entity.Asteroid
	for _, a := range game.Asteroids {
		if a != game.Home {
			target = a
			break
		}
	}
	target.Body().SetPosition(physics.Vector2D{X: -1000, Y: -1000})
	game.SetTool(tool.DrillKind)
	game.MousePressed(screenOf(game, target.Position()))
	if !target.Populated() {
		t.Error("drilled asteroid should be populated")
	}
}

func TestGame_KeyPressed(t *testing.T) {
	game, _ := newTestGame(t)
	tests := []struct {
		key  rune
		ok   bool
		want tool.Kind
	}{
		{'1', true, tool.DrillKind},
		{'2', true, tool.UmbilicalKind},
		{'5', true, tool.NukeKind},
		{'6', false, 0},
		{'0', false, 0},
		{'q', false, 0},
	}
	for _, tt := range tests {
		if got := game.KeyPressed(tt.key); got != tt.ok {
			t.Errorf("KeyPressed(%q) = %v", tt.key, got)
			continue
		}
		if tt.ok && game.ActiveTool().Kind() != tt.want {
			t.Errorf("KeyPressed(%q) selected %s", tt.key, game.ActiveTool().Name())
		}
	}
	game.ClearTool()
	if game.ActiveTool() != nil {
		t.Error("ClearTool should leave no tool")
	}
}

func TestGame_Draw(t *testing.T) {
	game, _ := newTestGame(t)
	sink := render.NewNullSink(logging.NewLoggerWithWriter(&bytes.Buffer{}, slog.LevelError))
	game.Draw(sink)
	// stars, planet and player plus an outline per asteroid; only the home
	// sprite is visible
	if want := 3 + len(game.Asteroids) + 1; sink.Drawn() != want {
		t.Errorf("drew %d primitives, want %d", sink.Drawn(), want)
	}
}

func TestGame_ResourceCountsAndLookup(t *testing.T) {
	game, _ := newTestGame(t)
	counts := game.ResourceCounts()
	total := 0
	for _, n := range counts {
		total += n
	}
	if total != len(game.Asteroids) || counts[entity.Home] != 1 {
		t.Errorf("counts = %v", counts)
	}
	if a, ok := game.Asteroid(game.Home.GetID()); !ok || a != game.Home {
		t.Error("Asteroid() should find home")
	}
	if _, ok := game.Asteroid(0); ok {
		t.Error("ID 0 is never assigned")
	}
}
