// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/asteroid-belt/pkg/engine"
	"github.com/opd-ai/asteroid-belt/pkg/event"
	"github.com/opd-ai/asteroid-belt/pkg/logging"
	"github.com/opd-ai/asteroid-belt/pkg/tool"
)

// Toolbar layout in pixels from the top left corner.
const (
	toolbarMargin  = 8
	toolbarSpacing = 4
	// inactive tools are drawn faded
	inactiveAlpha = 110
)

// GameScene runs an engine.Game inside an engo window.
type GameScene struct {
	game   *engine.Game
	logger *logging.Logger

	world        *ecs.World
	renderSystem *common.RenderSystem
	assets       *AssetManager
	sink         *EngoSink
	input        *InputSystem
	toolbar      *ToolbarSystem

	subscriptions []*event.Subscription
}

// NewGameScene creates a new game scene
func NewGameScene(game *engine.Game, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &GameScene{
		game:   game,
		logger: logger,
		assets: NewAssetManager(int(game.Config.World.PlanetSize)),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "AsteroidBelt"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	scene.world, _ = u.(*ecs.World)
	common.SetBackground(color.Black)

	scene.renderSystem = &common.RenderSystem{}
	scene.world.AddSystem(scene.renderSystem)

	if err := scene.assets.LoadAssets(); err != nil {
		scene.logger.Error(scene.game.Context(), "Failed to load assets", err)
		engo.Exit()
		return
	}

	height := float32(scene.game.Config.Window.Height)
	scene.sink = NewEngoSink(scene.renderSystem, scene.assets, height)

	SetupInputBindings()
	scene.input = NewInputSystem(scene.game, height)
	scene.world.AddSystem(scene.input)

	scene.toolbar = NewToolbarSystem(scene.renderSystem, scene.assets, scene.game.Tools())
	scene.world.AddSystem(scene.toolbar)
	scene.world.AddSystem(&gameSystem{scene: scene})

	scene.subscribeToEvents()
}

// subscribeToEvents keeps the toolbar in step with tool changes and shows
// the banner on a win.
func (scene *GameScene) subscribeToEvents() {
	bus := scene.game.EventBus
	scene.subscriptions = append(scene.subscriptions,
		bus.Subscribe(event.ToolSelected, func(e event.Event) {
			if te, ok := e.(*event.ToolEvent); ok {
				scene.toolbar.Highlight(te.Tool)
			}
		}),
		bus.Subscribe(event.PlayerWon, func(event.Event) {
			scene.showBanner()
		}),
	)
}

// showBanner centres the win banner on screen, above everything else.
func (scene *GameScene) showBanner() {
	texture, w, h, ok := scene.assets.Sprite(WinTexture)
	if !ok {
		return
	}
	banner := &drawable{BasicEntity: ecs.NewBasic()}
	banner.Drawable = texture
	banner.Color = color.White
	banner.SpaceComponent = common.SpaceComponent{Width: w, Height: h}
	banner.SetCenter(engo.Point{
		X: float32(scene.game.Config.Window.Width) / 2,
		Y: float32(scene.game.Config.Window.Height) / 2,
	})
	banner.SetShader(common.HUDShader)
	banner.SetZIndex(float32(engine.LayerWorldUI + 2))
	scene.renderSystem.Add(&banner.BasicEntity, &banner.RenderComponent, &banner.SpaceComponent)
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
	for _, s := range scene.subscriptions {
		s.Cancel()
	}
	scene.logger.Info(context.Background(), "Scene closed", "status", scene.game.Status.String())
}

// gameSystem steps the game and draws it once per frame.
type gameSystem struct {
	scene *GameScene
}

func (s *gameSystem) Remove(ecs.BasicEntity) {}

func (s *gameSystem) Update(dt float32) {
	game := s.scene.game
	if game.Status == engine.GameStatusWon {
		if engo.Input.Mouse.Action == engo.Press {
			engo.Exit()
		}
		return
	}
	game.Update(float64(dt))
	game.Draw(s.scene.sink)
}

// ToolbarSystem draws one icon per tool along the top of the screen,
// highlighting the active tool.
type ToolbarSystem struct {
	icons map[string]*drawable
}

// NewToolbarSystem adds the tool icons to renderSystem.
func NewToolbarSystem(renderSystem *common.RenderSystem, assets *AssetManager, tools []tool.Tool) *ToolbarSystem {
	ts := &ToolbarSystem{icons: make(map[string]*drawable)}
	for i, t := range tools {
		texture, w, h, ok := assets.Sprite(tool.Texture(t))
		if !ok {
			continue
		}
		icon := &drawable{BasicEntity: ecs.NewBasic()}
		icon.Drawable = texture
		icon.SpaceComponent = common.SpaceComponent{Position: ToolbarSlot(i, w), Width: w, Height: h}
		icon.SetShader(common.HUDShader)
		icon.SetZIndex(float32(engine.LayerWorldUI + 1))
		ts.icons[t.Name()] = icon
		renderSystem.Add(&icon.BasicEntity, &icon.RenderComponent, &icon.SpaceComponent)
	}
	ts.Highlight("")
	return ts
}

// ToolbarSlot is the top left corner of the i'th icon.
func ToolbarSlot(i int, size float32) engo.Point {
	return engo.Point{X: toolbarMargin + float32(i)*(size+toolbarSpacing), Y: toolbarMargin}
}

// Highlight brightens the icon of the named tool and fades the rest. An
// empty name fades them all.
func (ts *ToolbarSystem) Highlight(name string) {
	for n, icon := range ts.icons {
		if n == name {
			icon.Color = color.White
		} else {
			icon.Color = color.NRGBA{R: 255, G: 255, B: 255, A: inactiveAlpha}
		}
	}
}

// Remove satisfies the ecs.System interface
func (ts *ToolbarSystem) Remove(ecs.BasicEntity) {}

// Update satisfies the ecs.System interface
func (ts *ToolbarSystem) Update(dt float32) {}
