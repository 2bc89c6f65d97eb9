// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/opd-ai/asteroid-belt/pkg/entity"
	"github.com/opd-ai/asteroid-belt/pkg/tool"
	"github.com/opd-ai/asteroid-belt/pkg/world"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// GameConfig contains configuration for an asteroid belt game
type GameConfig struct {
	// Seed fixes the random generator; zero picks a fresh seed each run.
	Seed      uint64                    `toml:"seed"`
	World     WorldConfig               `toml:"world"`
	Asteroids AsteroidConfig            `toml:"asteroids"`
	Resources []entity.WeightedResource `toml:"resources"`
	Physics   PhysicsConfig             `toml:"physics"`
	Tools     ToolConfig                `toml:"tools"`
	Player    PlayerConfig              `toml:"player"`
	Camera    CameraConfig              `toml:"camera"`
	Window    WindowConfig              `toml:"window"`
}

// WorldConfig describes the playing area
type WorldConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	// BorderBuffer is how far outside the world the walls sit, and how
	// thick they are.
	BorderBuffer float64 `toml:"border_buffer"`
	// HomeBand is the fraction of the height above which home is placed.
	HomeBand float64 `toml:"home_band"`
	// WinBox is the side of the square around the planet the player must
	// reach.
	WinBox float64 `toml:"win_box"`
	// PlanetSize is the planet sprite size; it sits half this above the
	// bottom edge.
	PlanetSize float64 `toml:"planet_size"`
}

// AsteroidConfig controls field generation
type AsteroidConfig struct {
	MinSize         float64 `toml:"min_size"`
	MaxSize         float64 `toml:"max_size"`
	SplitFactor     float64 `toml:"split_factor"`
	KickImpulse     float64 `toml:"kick_impulse"`
	RequireCoverage bool    `toml:"require_coverage"`
	MaxAttempts     int     `toml:"max_attempts"`
}

// PhysicsConfig contains physics-related configuration
type PhysicsConfig struct {
	TimeStep   float64 `toml:"time_step"`
	Iterations uint    `toml:"iterations"`
	GravityX   float64 `toml:"gravity_x"`
	GravityY   float64 `toml:"gravity_y"`
}

// ToolConfig contains tool tuning
type ToolConfig struct {
	StrutRange      float64 `toml:"strut_range"`
	UmbilicalRange  float64 `toml:"umbilical_range"`
	RocketImpulse   float64 `toml:"rocket_impulse"`
	BreakingImpulse float64 `toml:"breaking_impulse"`
}

// PlayerConfig contains player tuning
type PlayerConfig struct {
	Impulse float64 `toml:"impulse"`
	// SpawnOffset is added to both coordinates of the home asteroid.
	SpawnOffset float64 `toml:"spawn_offset"`
}

// CameraConfig contains camera tuning
type CameraConfig struct {
	Speed     float64 `toml:"speed"`
	DragSpeed float64 `toml:"drag_speed"`
}

// WindowConfig contains window settings for the engo front end
type WindowConfig struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
}

// LoadConfig loads a configuration from a TOML file. Keys missing from the
// file keep their default values.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	// A resource list in the file replaces the default one outright.
	config.Resources = nil
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Resources == nil {
		config.Resources = entity.DefaultResourceWeights()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig saves a configuration to a TOML file
func SaveConfig(config *GameConfig, path string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		World: WorldConfig{
			Width:        3000,
			Height:       3000,
			BorderBuffer: 100,
			HomeBand:     0.75,
			WinBox:       400,
			PlanetSize:   256,
		},
		Asteroids: AsteroidConfig{
			MinSize:         50,
			MaxSize:         100,
			SplitFactor:     1.75,
			KickImpulse:     20000,
			RequireCoverage: true,
			MaxAttempts:     10,
		},
		Resources: entity.DefaultResourceWeights(),
		Physics: PhysicsConfig{
			TimeStep:   1.0 / 60.0,
			Iterations: 10,
		},
		Tools: ToolConfig{
			StrutRange:      200,
			UmbilicalRange:  300,
			RocketImpulse:   1000,
			BreakingImpulse: entity.BreakingImpulse,
		},
		Player: PlayerConfig{
			Impulse:     entity.PersonImpulse,
			SpawnOffset: 150,
		},
		Camera: CameraConfig{
			Speed:     1000,
			DragSpeed: 10,
		},
		Window: WindowConfig{
			Title:  "Asteroid Belt",
			Width:  1024,
			Height: 768,
		},
	}
}

// Validate reports every problem with the configuration, each wrapping
// ErrInvalidConfig.
func (c *GameConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.World.Width > 0 && c.World.Height > 0, "world size %gx%g", c.World.Width, c.World.Height)
	check(c.World.BorderBuffer >= 0, "border buffer %g", c.World.BorderBuffer)
	check(c.World.HomeBand >= 0 && c.World.HomeBand < 1, "home band %g outside [0, 1)", c.World.HomeBand)
	check(c.World.WinBox > 0, "win box %g", c.World.WinBox)
	check(c.Asteroids.MinSize > 0, "asteroid min size %g", c.Asteroids.MinSize)
	check(c.Asteroids.MaxSize >= c.Asteroids.MinSize, "asteroid max size %g below min %g",
		c.Asteroids.MaxSize, c.Asteroids.MinSize)
	check(c.Asteroids.SplitFactor > 0, "split factor %g", c.Asteroids.SplitFactor)
	segment := c.Asteroids.MaxSize * c.Asteroids.SplitFactor
	check(segment < min(c.World.Width, c.World.Height),
		"segment size %g does not fit in a %gx%g world", segment, c.World.Width, c.World.Height)
	check(c.Asteroids.MaxAttempts >= 1, "max attempts %d", c.Asteroids.MaxAttempts)
	check(c.Physics.TimeStep > 0, "time step %g", c.Physics.TimeStep)
	check(c.Tools.StrutRange > 0 && c.Tools.UmbilicalRange > 0, "tool ranges must be positive")
	check(c.Tools.BreakingImpulse > 0, "breaking impulse %g", c.Tools.BreakingImpulse)
	check(c.Camera.DragSpeed >= 0 && c.Camera.Speed >= 0, "camera speeds must not be negative")
	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	if _, err := entity.NewResourceTable(c.Resources); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}

	return errors.Join(errs...)
}

// ResourceTable builds the weighted resource table.
func (c *GameConfig) ResourceTable() (*entity.ResourceTable, error) {
	return entity.NewResourceTable(c.Resources)
}

// Bounds returns the world size.
func (c *GameConfig) Bounds() world.Bounds {
	return world.Bounds{Width: c.World.Width, Height: c.World.Height}
}

// WorldOptions converts the configuration to field generation options.
func (c *GameConfig) WorldOptions() world.Options {
	return world.Options{
		Bounds:          c.Bounds(),
		MinSize:         c.Asteroids.MinSize,
		MaxSize:         c.Asteroids.MaxSize,
		SplitFactor:     c.Asteroids.SplitFactor,
		HomeBand:        c.World.HomeBand,
		KickImpulse:     c.Asteroids.KickImpulse,
		RequireCoverage: c.Asteroids.RequireCoverage,
		MaxAttempts:     c.Asteroids.MaxAttempts,
	}
}

// ToolSettings converts the configuration to tool parameters.
func (c *GameConfig) ToolSettings() tool.Settings {
	return tool.Settings{
		StrutRange:      c.Tools.StrutRange,
		UmbilicalRange:  c.Tools.UmbilicalRange,
		RocketImpulse:   c.Tools.RocketImpulse,
		BreakingImpulse: c.Tools.BreakingImpulse,
	}
}
