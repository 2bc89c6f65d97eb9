// cmd/asteroids/play.go
package main

import (
	"context"
	"fmt"

	"github.com/EngoEngine/engo"
	"github.com/spf13/cobra"

	"github.com/opd-ai/asteroid-belt/pkg/logging"
	engorender "github.com/opd-ai/asteroid-belt/pkg/render/engo"
)

func newPlayCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			logger := a.logger(stderr)
			ctx := logging.WithCorrelationID(context.Background(), "")

			game, err := newGame(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("starting game: %w", err)
			}

			scene := engorender.NewGameScene(game, logger)
			engo.Run(engo.RunOptions{
				Title:      cfg.Window.Title,
				Width:      cfg.Window.Width,
				Height:     cfg.Window.Height,
				Fullscreen: cfg.Window.Fullscreen,
				VSync:      true,
			}, scene)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Int("width", 1024, "window width")
	flags.Int("height", 768, "window height")
	flags.Bool("fullscreen", false, "run fullscreen")
	_ = a.v.BindPFlag("window.width", flags.Lookup("width"))
	_ = a.v.BindPFlag("window.height", flags.Lookup("height"))
	_ = a.v.BindPFlag("window.fullscreen", flags.Lookup("fullscreen"))
	return cmd
}
