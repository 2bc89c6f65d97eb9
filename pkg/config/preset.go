// pkg/config/preset.go
package config

import "sort"

// Preset is a named variation on the default field.
type Preset struct {
	Name        string
	Description string
	apply       func(*GameConfig)
}

var presets = map[string]Preset{
	"classic": {
		Name:        "Classic",
		Description: "The standard 3000x3000 belt",
		apply:       func(*GameConfig) {},
	},
	"small": {
		Name:        "Small",
		Description: "A 1500x1500 belt of smaller rocks",
		apply: func(c *GameConfig) {
			c.World.Width, c.World.Height = 1500, 1500
			c.Asteroids.MinSize, c.Asteroids.MaxSize = 30, 60
		},
	},
	"dense": {
		Name:        "Dense",
		Description: "Tightly packed small asteroids",
		apply: func(c *GameConfig) {
			c.Asteroids.MinSize, c.Asteroids.MaxSize = 30, 50
			c.Asteroids.SplitFactor = 1.5
		},
	},
	"calm": {
		Name:        "Calm",
		Description: "No initial drift and sturdier joints",
		apply: func(c *GameConfig) {
			c.Asteroids.KickImpulse = 0
			c.Tools.BreakingImpulse = 5000
		},
	},
}

// GetPreset returns a fresh default configuration with the named preset
// applied, or nil for an unknown name.
func GetPreset(key string) *GameConfig {
	p, ok := presets[key]
	if !ok {
		return nil
	}
	c := DefaultConfig()
	p.apply(c)
	return c
}

// ListPresets returns the preset keys, sorted.
func ListPresets() []string {
	keys := make([]string, 0, len(presets))
	for k := range presets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DescribePreset returns the display name and description of a preset.
func DescribePreset(key string) (Preset, bool) {
	p, ok := presets[key]
	return p, ok
}
