package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opd-ai/asteroid-belt/pkg/entity"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if err := config.Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
	if config.World.Width != 3000 || config.World.Height != 3000 {
		t.Errorf("world = %gx%g, want 3000x3000", config.World.Width, config.World.Height)
	}
	if config.Asteroids.MinSize != 50 || config.Asteroids.MaxSize != 100 || config.Asteroids.SplitFactor != 1.75 {
		t.Errorf("asteroid settings = %+v", config.Asteroids)
	}
	if config.Tools.StrutRange != 200 || config.Tools.UmbilicalRange != 300 || config.Tools.BreakingImpulse != 1000 {
		t.Errorf("tool settings = %+v", config.Tools)
	}
	if config.Physics.TimeStep != 1.0/60.0 {
		t.Errorf("time step = %v", config.Physics.TimeStep)
	}

	table, err := config.ResourceTable()
	if err != nil {
		t.Fatal(err)
	}
	if table.Total() != 29 {
		t.Errorf("resource total = %d, want 29", table.Total())
	}

	opts := config.WorldOptions()
	if opts.Bounds.Width != 3000 || opts.MaxAttempts != 10 || opts.HomeBand != 0.75 || opts.KickImpulse != 20000 {
		t.Errorf("WorldOptions() = %+v", opts)
	}
	if s := config.ToolSettings(); s.RocketImpulse != 1000 || s.StrutRange != 200 {
		t.Errorf("ToolSettings() = %+v", s)
	}
}

func TestSaveLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asteroids.toml")

	original := DefaultConfig()
	original.Seed = 1234
	original.World.Width = 2000
	original.Resources = []entity.WeightedResource{
		{Type: entity.Titanium, Weight: 2},
		{Type: entity.Water, Weight: 7},
	}
	if err := SaveConfig(original, path); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "titanium") {
		t.Errorf("resource types should be written by name:\n%s", data)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.Seed != 1234 || loaded.World.Width != 2000 {
		t.Errorf("loaded seed %d width %g", loaded.Seed, loaded.World.Width)
	}
	if len(loaded.Resources) != 2 || loaded.Resources[0].Type != entity.Titanium || loaded.Resources[1].Weight != 7 {
		t.Errorf("loaded resources = %+v", loaded.Resources)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	content := `
seed = 99

[asteroids]
min_size = 40
max_size = 80
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if config.Asteroids.MinSize != 40 || config.Asteroids.MaxSize != 80 {
		t.Errorf("asteroids = %+v", config.Asteroids)
	}
	if config.World.Width != 3000 || config.Tools.StrutRange != 200 || len(config.Resources) != 5 {
		t.Error("unset keys should keep default values")
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name      string
		content   string
		wantInval bool
	}{
		{"syntax", "[world\nwidth = ", false},
		{"unknown_resource", "[[resources]]\ntype = \"gold\"\nweight = 1\n", false},
		{"degenerate_world", "[world]\nwidth = 100\nheight = 100\n", true},
		{"zero_weight", "[[resources]]\ntype = \"oil\"\nweight = 0\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("LoadConfig() should fail")
			}
			if got := errors.Is(err, ErrInvalidConfig); got != tt.wantInval {
				t.Errorf("errors.Is(ErrInvalidConfig) = %v, want %v (%v)", got, tt.wantInval, err)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadConfig() of a missing file should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
	}{
		{"zero_width", func(c *GameConfig) { c.World.Width = 0 }},
		{"home_band", func(c *GameConfig) { c.World.HomeBand = 1 }},
		{"inverted_sizes", func(c *GameConfig) { c.Asteroids.MaxSize = 10 }},
		{"segment_too_big", func(c *GameConfig) { c.Asteroids.SplitFactor = 40 }},
		{"no_attempts", func(c *GameConfig) { c.Asteroids.MaxAttempts = 0 }},
		{"zero_time_step", func(c *GameConfig) { c.Physics.TimeStep = 0 }},
		{"no_breaking", func(c *GameConfig) { c.Tools.BreakingImpulse = 0 }},
		{"no_resources", func(c *GameConfig) { c.Resources = nil }},
		{"home_resource", func(c *GameConfig) {
			c.Resources = append(c.Resources, entity.WeightedResource{Type: entity.Home, Weight: 1})
		}},
		{"window", func(c *GameConfig) { c.Window.Width = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	keys := ListPresets()
	if len(keys) != 4 || keys[0] != "calm" {
		t.Fatalf("ListPresets() = %v", keys)
	}
	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			c := GetPreset(key)
			if c == nil {
				t.Fatal("GetPreset() returned nil")
			}
			if err := c.Validate(); err != nil {
				t.Errorf("preset is invalid: %v", err)
			}
			if p, ok := DescribePreset(key); !ok || p.Name == "" || p.Description == "" {
				t.Errorf("DescribePreset() = %+v, %v", p, ok)
			}
		})
	}
	if small := GetPreset("small"); small.World.Width != 1500 {
		t.Errorf("small preset width = %g", small.World.Width)
	}
	if GetPreset("nonexistent") != nil {
		t.Error("unknown preset should be nil")
	}
	if GetPreset("classic").World.Width != DefaultConfig().World.Width {
		t.Error("classic should match the defaults")
	}
}
