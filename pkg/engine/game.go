// pkg/engine/game.go
package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/opd-ai/asteroid-belt/pkg/config"
	"github.com/opd-ai/asteroid-belt/pkg/entity"
	"github.com/opd-ai/asteroid-belt/pkg/event"
	"github.com/opd-ai/asteroid-belt/pkg/logging"
	"github.com/opd-ai/asteroid-belt/pkg/physics"
	"github.com/opd-ai/asteroid-belt/pkg/render"
	"github.com/opd-ai/asteroid-belt/pkg/tool"
	"github.com/opd-ai/asteroid-belt/pkg/world"
)

// GameStatus is Playing until the player reaches the planet.
type GameStatus int

const (
	GameStatusPlaying GameStatus = iota
	GameStatusWon
)

func (s GameStatus) String() string {
	if s == GameStatusWon {
		return "won"
	}
	return "playing"
}

// Draw layers, lowest first.
const (
	LayerBackground = iota
	LayerForeground
	LayerPlayer
	LayerWorldUI
)

// PlanetTexture is the sprite drawn at the goal.
const PlanetTexture render.TextureID = "planet"

// maxFrameTime caps the frame delta handed to the camera.
const maxFrameTime = 0.1

// WinCondition defines an interface for custom win condition logic
type WinCondition interface {
	CheckWinner(game *Game) bool
}

// Game represents the core game state and logic
type Game struct {
	Config    *config.GameConfig
	Space     physics.Space
	Batch     *render.Batch
	Camera    *render.Camera
	EventBus  *event.Bus
	Asteroids []*entity.Asteroid
	Joints    []*entity.Joint
	Player    *entity.Person
	Home      *entity.Asteroid
	Planet    physics.Vector2D
	WinBox    physics.Rect
	Status    GameStatus

	CurrentTick uint64
	ElapsedTime float64 // simulated seconds

	CustomWinCondition WinCondition // Optional custom win condition

	// EntityLock guards everything above against front ends that deliver
	// input on a different goroutine from Update.
	EntityLock sync.RWMutex

	ctx        context.Context
	logger     *logging.Logger
	rng        *rand.Rand
	groups     [LayerWorldUI + 1]render.Group
	tools      []tool.Tool
	activeTool tool.Tool
	selection  []tool.Selection
	mouse      physics.Vector2D
}

// NewGame builds a world from cfg inside space: borders, stars, a
// generated asteroid field, the player beside the home asteroid and the
// goal planet.
func NewGame(ctx context.Context, cfg *config.GameConfig, space physics.Space, rng *rand.Rand, logger *logging.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewLogger()
	}
	if logging.GetCorrelationID(ctx) == "" {
		ctx = logging.WithCorrelationID(ctx, "")
	}

	game := &Game{
		Config:   cfg,
		Space:    space,
		Batch:    render.NewBatch(),
		EventBus: event.NewEventBus(),
		ctx:      ctx,
		logger:   logger,
		rng:      rng,
	}
	game.initCamera()
	game.initGroups()
	game.initBorders()

	if err := game.initField(); err != nil {
		return nil, err
	}
	game.initPlayer()
	game.initPlanet()
	game.tools = tool.All(cfg.ToolSettings())

	logger.Info(ctx, "Game ready",
		"asteroids", len(game.Asteroids),
		"home_id", game.Home.GetID(),
		"player_x", game.Player.Position().X,
		"player_y", game.Player.Position().Y,
	)
	return game, nil
}

// initCamera creates the camera for the configured window.
func (g *Game) initCamera() {
	viewport := physics.Vector2D{X: float64(g.Config.Window.Width), Y: float64(g.Config.Window.Height)}
	g.Camera = render.NewCamera(viewport, g.Config.Bounds().Vector(), g.Config.Camera.Speed, g.Config.Camera.DragSpeed)
}

// initGroups creates one camera-relative group per draw layer.
func (g *Game) initGroups() {
	for layer := range g.groups {
		g.groups[layer] = render.NewCameraGroup(render.NewOrderedGroup(layer), g.Camera)
	}
}

// initBorders walls in the world and sets gravity.
func (g *Game) initBorders() {
	g.Space.SetGravity(physics.Vector2D{X: g.Config.Physics.GravityX, Y: g.Config.Physics.GravityY})
	world.Borders(g.Space, g.Config.Bounds(), g.Config.World.BorderBuffer)
}

// initField scatters stars and generates the asteroid field.
func (g *Game) initField() error {
	world.Stars(g.Batch, g.groups[LayerBackground], g.rng, g.Config.Bounds())

	table, err := g.Config.ResourceTable()
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	populator := world.NewPopulator(g.scene(LayerForeground, table), g.rng, g.Config.WorldOptions(), g.logger, g.EventBus)
	field, err := populator.Generate(g.ctx)
	if err != nil {
		bounds := g.Config.Bounds()
		return logging.WrapError(err, "generating %gx%g asteroid field", bounds.Width, bounds.Height)
	}
	g.Asteroids = field.Asteroids
	g.Home = field.Home
	g.Camera.Follow(g.Home.Position())
	return nil
}

func (g *Game) scene(layer int, table *entity.ResourceTable) entity.Scene {
	return entity.Scene{
		Space:     g.Space,
		Batch:     g.Batch,
		Group:     g.groups[layer],
		Resources: table,
		Textures:  entity.NewTextureTable(),
	}
}

// initPlayer spawns the player diagonally above and right of home.
func (g *Game) initPlayer() {
	offset := g.Config.Player.SpawnOffset
	spawn := g.Home.Position().Add(physics.Vector2D{X: offset, Y: offset})
	g.Player = entity.NewPerson(g.scene(LayerPlayer, nil), spawn)
	g.Player.SetImpulse(g.Config.Player.Impulse)
	g.mouse = spawn
}

// initPlanet places the goal at the bottom centre of the world.
func (g *Game) initPlanet() {
	g.Planet = physics.Vector2D{X: g.Config.World.Width / 2, Y: g.Config.World.PlanetSize / 2}
	g.Batch.Add(g.groups[LayerWorldUI], render.Primitive{
		Kind:    render.Sprite,
		Points:  []physics.Vector2D{g.Planet},
		Texture: PlanetTexture,
	})
	g.WinBox = physics.Rect{Center: g.Planet, Width: g.Config.World.WinBox, Height: g.Config.World.WinBox}
}

// Update advances the game by one tick: joints, player, camera, one fixed
// physics step, then the win check. dt is the real frame time and only
// drives the camera.
func (g *Game) Update(dt float64) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	if g.Status != GameStatusPlaying {
		return
	}
	dt = min(dt, maxFrameTime)

	g.updateJoints()
	g.updatePlayer()
	g.updateCamera(dt)
	g.Space.Step(g.Config.Physics.TimeStep)
	g.CurrentTick++
	g.ElapsedTime += g.Config.Physics.TimeStep
	g.checkWinConditions()
}

// updateJoints updates every joint and keeps the ones still standing.
func (g *Game) updateJoints() {
	alive := make([]*entity.Joint, 0, len(g.Joints))
	for _, j := range g.Joints {
		if !j.Update(g.Batch, g.groups[LayerForeground]) {
			alive = append(alive, j)
			continue
		}
		ids := j.AsteroidIDs()
		g.logger.Info(g.ctx, "Joint snapped", "joint_id", j.GetID(), "kind", j.Kind().String(), "tick", g.CurrentTick)
		g.EventBus.Publish(event.NewJointEvent(event.JointSnapped, g, uint64(j.GetID()),
			j.Kind().String(), uint64(ids[0]), uint64(ids[1])))
	}
	g.Joints = alive
}

// updatePlayer steers the player toward the mouse.
func (g *Game) updatePlayer() {
	g.Player.SetTarget(g.mouse)
	g.Player.Update()
}

// updateCamera keeps the player centred, then applies any drag.
func (g *Game) updateCamera(dt float64) {
	g.Camera.Follow(g.Player.Position())
	g.Camera.Update(dt)
}

// checkWinConditions ends the game once the player reaches the planet, or
// when a custom win condition says so.
func (g *Game) checkWinConditions() {
	won := g.WinBox.Contains(g.Player.Position())
	if g.CustomWinCondition != nil {
		won = g.CustomWinCondition.CheckWinner(g)
	}
	if !won {
		return
	}
	g.Status = GameStatusWon
	g.logger.Info(g.ctx, "Player reached the planet", "tick", g.CurrentTick, "elapsed", g.ElapsedTime)
	g.EventBus.Publish(&event.BaseEvent{EventType: event.PlayerWon, Source: g})
}

// Draw submits the frame to sink.
func (g *Game) Draw(sink render.Sink) {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	g.Batch.Draw(sink)
}

// Tools returns the toolbar in order.
func (g *Game) Tools() []tool.Tool {
	return g.tools
}

// ActiveTool returns the selected tool, or nil.
func (g *Game) ActiveTool() tool.Tool {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.activeTool
}

// SetTool arms the tool of kind k, discarding any partial selection.
func (g *Game) SetTool(k tool.Kind) bool {
	t, ok := tool.ByKind(g.tools, k)
	if !ok {
		return false
	}
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()
	g.setTool(t)
	return true
}

// ClearTool puts the active tool away.
func (g *Game) ClearTool() {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()
	g.setTool(nil)
}

func (g *Game) setTool(t tool.Tool) {
	if t == g.activeTool && len(g.selection) == 0 {
		return
	}
	g.activeTool = t
	g.selection = nil
	name := ""
	if t != nil {
		name = t.Name()
	}
	g.logger.Debug(g.ctx, "Tool selected", "tool", name)
	g.EventBus.Publish(event.NewToolEvent(g, name))
}

// KeyPressed selects a tool with the number keys, 1 being the first tool.
// It reports whether the key was used.
func (g *Game) KeyPressed(key rune) bool {
	index := int(key - '1')
	if index < 0 || index >= len(g.tools) {
		return false
	}
	return g.SetTool(g.tools[index].Kind())
}

// MousePressed feeds a click at a screen position to the active tool.
// Clicking empty space puts the tool away. It reports whether a tool was
// armed.
func (g *Game) MousePressed(screen physics.Vector2D) bool {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	if g.activeTool == nil {
		return false
	}
	clicked := g.Camera.Translate(screen)
	target := g.asteroidAt(clicked)
	if target == nil {
		g.setTool(nil)
		return true
	}

	g.selection = append(g.selection, tool.Selection{Asteroid: target, Point: clicked})
	next := g.activeTool.Selection(g.toolContext(), g.selection)
	if next == nil {
		g.setTool(nil)
	} else {
		g.activeTool = next
	}
	return true
}

// asteroidAt returns the first asteroid under p.
func (g *Game) asteroidAt(p physics.Vector2D) *entity.Asteroid {
	for _, a := range g.Asteroids {
		if a.PointOver(p) {
			return a
		}
	}
	return nil
}

func (g *Game) toolContext() tool.Context {
	return tool.Context{
		Ctx:    g.ctx,
		Space:  g.Space,
		Logger: g.logger,
		Bus:    g.EventBus,
		AddJoint: func(j *entity.Joint) {
			g.Joints = append(g.Joints, j)
		},
	}
}

// MouseMoved points the player at a screen position.
func (g *Game) MouseMoved(screen physics.Vector2D) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()
	g.mouse = g.Camera.Translate(screen)
}

// MouseDragged pans the camera on the next update.
func (g *Game) MouseDragged(dx, dy float64) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()
	g.Camera.Drag(dx, dy)
}

// StartPan scrolls the camera in d until StopPan.
func (g *Game) StartPan(d render.Direction) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()
	g.Camera.StartPan(d)
}

// StopPan ends a StartPan.
func (g *Game) StopPan(d render.Direction) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()
	g.Camera.StopPan(d)
}

// Asteroid finds an asteroid by ID.
func (g *Game) Asteroid(id entity.ID) (*entity.Asteroid, bool) {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	for _, a := range g.Asteroids {
		if a.GetID() == id {
			return a, true
		}
	}
	return nil, false
}

// ResourceCounts tallies the asteroids per resource type.
func (g *Game) ResourceCounts() map[entity.ResourceType]int {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	counts := make(map[entity.ResourceType]int)
	for _, a := range g.Asteroids {
		counts[a.Resource()]++
	}
	return counts
}

// Context returns the context carrying the game's correlation ID.
func (g *Game) Context() context.Context {
	return g.ctx
}
