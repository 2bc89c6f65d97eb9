// cmd/asteroids/preview.go
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/opd-ai/asteroid-belt/pkg/config"
	"github.com/opd-ai/asteroid-belt/pkg/engine"
	"github.com/opd-ai/asteroid-belt/pkg/entity"
	"github.com/opd-ai/asteroid-belt/pkg/logging"
	"github.com/opd-ai/asteroid-belt/pkg/physics"
	"github.com/opd-ai/asteroid-belt/pkg/render"
)

func newPreviewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Watch a generated field in the terminal",
		Long: "Shows the whole field in the terminal and steps the physics. Number keys pick " +
			"tools, clicks use them, q or Esc quits. Editing the config file regenerates the field.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logPath, _ := cmd.Flags().GetString("log-file")
			f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			defer f.Close()

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("creating screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initialising screen: %w", err)
			}
			defer screen.Fini()
			screen.EnableMouse(tcell.MouseMotionEvents)

			p := &preview{app: a, screen: screen, logger: a.logger(f)}
			return p.run(cmd.Context())
		},
	}
	cmd.Flags().String("log-file", "asteroids-preview.log", "where preview logs go while the screen is in use")
	return cmd
}

// preview runs a game on a tcell screen sized to show the whole world.
type preview struct {
	app    *app
	screen tcell.Screen
	logger *logging.Logger

	ctx     context.Context
	game    *engine.Game
	sink    *render.TerminalSink
	buttons tcell.ButtonMask
}

func (p *preview) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := p.start(ctx); err != nil {
		return err
	}

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	reload := make(chan struct{}, 1)
	if p.app.v.ConfigFileUsed() != "" {
		p.app.v.OnConfigChange(func(e fsnotify.Event) {
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				return
			}
			select {
			case reload <- struct{}{}:
			default:
			}
		})
		p.app.v.WatchConfig()
	}

	step := time.Duration(p.game.Config.Physics.TimeStep * float64(time.Second))
	ticker := time.NewTicker(step)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if quit := p.handle(ev); quit {
				return nil
			}
		case <-reload:
			p.logger.Info(p.ctx, "Config changed, regenerating", "path", p.app.v.ConfigFileUsed())
			if err := p.start(ctx); err != nil {
				p.logger.Error(p.ctx, "Regeneration failed, keeping the current field", err)
			}
		case now := <-ticker.C:
			p.game.Update(now.Sub(last).Seconds())
			last = now
			p.game.Draw(p.sink)
		}
	}
}

// start loads the configuration and generates a new game. The current game
// is kept if anything fails.
func (p *preview) start(ctx context.Context) error {
	cfg, err := p.app.loadConfig()
	if err != nil {
		return err
	}
	cols, rows := p.screen.Size()
	fitWindow(cfg)

	gameCtx := logging.WithCorrelationID(ctx, "")
	game, err := newGame(gameCtx, cfg, p.logger)
	if err != nil {
		return err
	}
	sink := render.NewTerminalSink(p.screen, fitScale(cfg.World.Width, cfg.World.Height, cols, rows))
	for id, glyph := range glyphs() {
		sink.SetGlyph(id, glyph)
	}

	p.ctx, p.game, p.sink = gameCtx, game, sink
	return nil
}

// handle applies one terminal event, reporting whether to quit.
func (p *preview) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return true
		}
		if ev.Key() == tcell.KeyRune {
			r := ev.Rune()
			if r == 'q' {
				return true
			}
			p.game.KeyPressed(r)
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		_, rows := p.screen.Size()
		pos := cellToWorld(col, row, rows, p.sink.Scale())
		pressed := ev.Buttons()&tcell.Button1 != 0 && p.buttons&tcell.Button1 == 0
		p.buttons = ev.Buttons()
		if pressed {
			p.game.MousePressed(pos)
		} else {
			p.game.MouseMoved(pos)
		}
	case *tcell.EventResize:
		p.screen.Sync()
		cols, rows := p.screen.Size()
		cfg := p.game.Config
		p.sink = render.NewTerminalSink(p.screen, fitScale(cfg.World.Width, cfg.World.Height, cols, rows))
		for id, glyph := range glyphs() {
			p.sink.SetGlyph(id, glyph)
		}
	}
	return false
}

// fitWindow makes the camera view the whole world.
func fitWindow(cfg *config.GameConfig) {
	cfg.Window.Width = int(cfg.World.Width)
	cfg.Window.Height = int(cfg.World.Height)
}

// fitScale is the world units per column that fit a world into cols x rows
// cells, where a row is twice as tall as a column is wide.
func fitScale(width, height float64, cols, rows int) float64 {
	if cols <= 0 || rows <= 0 {
		return 1
	}
	return max(width/float64(cols), height/float64(2*rows))
}

// cellToWorld returns the world point at the centre of a cell.
func cellToWorld(col, row, rows int, scale float64) physics.Vector2D {
	return physics.Vector2D{
		X: (float64(col) + 0.5) * scale,
		Y: (float64(rows-1-row) + 0.5) * scale * 2,
	}
}

// glyphs picks a character per sprite: the resource initial, upper case
// once drilled.
func glyphs() map[render.TextureID]rune {
	g := map[render.TextureID]rune{
		entity.PersonTexture: '@',
		engine.PlanetTexture: '*',
	}
	textures := entity.NewTextureTable()
	for _, key := range textures.Keys() {
		initial := []rune(strings.ToLower(key.Resource.String()))[0]
		if key.Refined {
			initial = unicode.ToUpper(initial)
		}
		g[textures.Lookup(key)] = initial
	}
	return g
}
