// cmd/asteroids/root.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/opd-ai/asteroid-belt/pkg/config"
	"github.com/opd-ai/asteroid-belt/pkg/engine"
	"github.com/opd-ai/asteroid-belt/pkg/logging"
	"github.com/opd-ai/asteroid-belt/pkg/physics/chipmunk"
)

// app carries the settings shared by every subcommand.
type app struct {
	v *viper.Viper
}

// overrides maps viper keys onto configuration fields. Only keys that were
// set by a flag, the environment or the viper config file are applied.
var overrides = []struct {
	key   string
	apply func(v *viper.Viper, key string, c *config.GameConfig)
}{
	{"seed", func(v *viper.Viper, k string, c *config.GameConfig) { c.Seed = v.GetUint64(k) }},
	{"world.width", func(v *viper.Viper, k string, c *config.GameConfig) { c.World.Width = v.GetFloat64(k) }},
	{"world.height", func(v *viper.Viper, k string, c *config.GameConfig) { c.World.Height = v.GetFloat64(k) }},
	{"asteroids.min_size", func(v *viper.Viper, k string, c *config.GameConfig) { c.Asteroids.MinSize = v.GetFloat64(k) }},
	{"asteroids.max_size", func(v *viper.Viper, k string, c *config.GameConfig) { c.Asteroids.MaxSize = v.GetFloat64(k) }},
	{"asteroids.require_coverage", func(v *viper.Viper, k string, c *config.GameConfig) {
		c.Asteroids.RequireCoverage = v.GetBool(k)
	}},
	{"window.width", func(v *viper.Viper, k string, c *config.GameConfig) { c.Window.Width = v.GetInt(k) }},
	{"window.height", func(v *viper.Viper, k string, c *config.GameConfig) { c.Window.Height = v.GetInt(k) }},
	{"window.fullscreen", func(v *viper.Viper, k string, c *config.GameConfig) { c.Window.Fullscreen = v.GetBool(k) }},
}

func newApp() *app {
	return &app{v: viper.New()}
}

func newRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "asteroids",
		Short:         "Asteroid belt physics game",
		Long:          "Steer across a generated asteroid belt to the planet, drilling, bracing and pushing asteroids on the way.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "TOML configuration file")
	flags.String("preset", "", "start from a named preset (see 'asteroids presets')")
	flags.Uint64("seed", 0, "random seed, 0 for a fresh one")
	flags.String("log-level", "INFO", "DEBUG, INFO, WARN or ERROR")
	_ = a.v.BindPFlag("config", flags.Lookup("config"))
	_ = a.v.BindPFlag("preset", flags.Lookup("preset"))
	_ = a.v.BindPFlag("seed", flags.Lookup("seed"))
	_ = a.v.BindPFlag("log_level", flags.Lookup("log-level"))

	rootCmd.AddCommand(
		newPlayCmd(a),
		newPreviewCmd(a),
		newGenerateCmd(a),
		newPresetsCmd(),
		newDumpConfigCmd(a),
	)
	return rootCmd
}

func (a *app) initConfig() error {
	a.v.SetEnvPrefix("ASTEROIDS")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		a.v.SetConfigType("toml")
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
	}
	return nil
}

// loadConfig builds the effective configuration: the preset or defaults,
// then the config file, then flag and environment overrides.
func (a *app) loadConfig() (*config.GameConfig, error) {
	cfg := config.DefaultConfig()
	if name := a.v.GetString("preset"); name != "" {
		if cfg = config.GetPreset(name); cfg == nil {
			return nil, fmt.Errorf("%w: unknown preset %q", config.ErrInvalidConfig, name)
		}
	}
	if path := a.v.GetString("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	for _, o := range overrides {
		if a.v.IsSet(o.key) {
			o.apply(a.v, o.key, cfg)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *app) logger(w io.Writer) *logging.Logger {
	return logging.NewLoggerWithWriter(w, logging.ParseLevel(a.v.GetString("log_level")))
}

// newRand seeds a PCG generator from the configured seed, or from the clock
// when the seed is zero.
func newRand(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), seed
}

// newGame builds a game in a fresh chipmunk space.
func newGame(ctx context.Context, cfg *config.GameConfig, logger *logging.Logger) (*engine.Game, error) {
	rng, seed := newRand(cfg.Seed)
	logger.Info(ctx, "Generating world", "seed", seed, "width", cfg.World.Width, "height", cfg.World.Height)
	return engine.NewGame(ctx, cfg, chipmunk.NewSpace(cfg.Physics.Iterations), rng, logger)
}

// exitCode maps errors to process exit codes: 2 for configuration errors.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, config.ErrInvalidConfig):
		return 2
	default:
		return 1
	}
}

var stderr io.Writer = os.Stderr
