// cmd/asteroids/generate.go
package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/opd-ai/asteroid-belt/pkg/config"
	"github.com/opd-ai/asteroid-belt/pkg/entity"
	"github.com/opd-ai/asteroid-belt/pkg/logging"
)

func newGenerateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate one field and summarise its resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			logger := a.logger(cmd.ErrOrStderr())
			ctx := logging.WithCorrelationID(context.Background(), "")

			game, err := newGame(ctx, cfg, logger)
			if err != nil {
				return err
			}

			counts := game.ResourceCounts()
			fields := []any{"asteroids", len(game.Asteroids)}
			for _, r := range entity.ResourceTypes() {
				fields = append(fields, r.String(), counts[r])
			}
			logger.Info(ctx, "Field summary", fields...)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RESOURCE\tCOUNT\tSHARE")
			for _, r := range entity.ResourceTypes() {
				fmt.Fprintf(w, "%s\t%d\t%.1f%%\n", r, counts[r], share(counts[r], len(game.Asteroids)))
			}
			fmt.Fprintf(w, "total\t%d\t\n", len(game.Asteroids))
			return w.Flush()
		},
	}
}

func share(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in presets",
		// presets need no configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, key := range config.ListPresets() {
				p, _ := config.DescribePreset(key)
				fmt.Fprintf(w, "%s\t%s\t%s\n", key, p.Name, p.Description)
			}
			return w.Flush()
		},
	}
}

func newDumpConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump-config PATH",
		Short: "Write the effective configuration to a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if err := config.SaveConfig(cfg, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
}
