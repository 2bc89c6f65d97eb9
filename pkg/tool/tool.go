// Package tool implements the player's tools. A tool collects asteroid
// clicks until it has enough to act, then reports what the active tool
// should be next.
package tool

import (
	"context"
	"sort"
	"strings"

	"github.com/opd-ai/asteroid-belt/pkg/entity"
	"github.com/opd-ai/asteroid-belt/pkg/event"
	"github.com/opd-ai/asteroid-belt/pkg/logging"
	"github.com/opd-ai/asteroid-belt/pkg/physics"
	"github.com/opd-ai/asteroid-belt/pkg/render"
)

// Kind identifies a tool.
type Kind int

const (
	DrillKind Kind = iota
	UmbilicalKind
	StrutKind
	RocketKind
	NukeKind
)

// Selection is one click on an asteroid, in world coordinates.
type Selection struct {
	Asteroid *entity.Asteroid
	Point    physics.Vector2D
}

// Context is what a tool may act on.
type Context struct {
	Ctx    context.Context
	Space  physics.Space
	Logger *logging.Logger
	Bus    *event.Bus
	// AddJoint hands a new joint to the scene, which owns it from then on.
	AddJoint func(*entity.Joint)
}

func (c Context) ctx() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c Context) logger() *logging.Logger {
	if c.Logger == nil {
		return logging.NewLogger()
	}
	return c.Logger
}

// Tool is a selectable action.
type Tool interface {
	Kind() Kind
	Name() string
	Description() string
	// Order is the tool's position in the toolbar.
	Order() int
	// Selection is called with every click so far. It returns the tool
	// that stays active: itself while it wants more clicks, nil when done.
	Selection(ctx Context, selection []Selection) Tool
}

// Texture is the toolbar icon for t.
func Texture(t Tool) render.TextureID {
	return render.TextureID(strings.ToLower(t.Name()))
}

// Settings holds tunable tool parameters.
type Settings struct {
	StrutRange      float64
	UmbilicalRange  float64
	RocketImpulse   float64
	BreakingImpulse float64
}

// DefaultSettings returns the shipped tool parameters.
func DefaultSettings() Settings {
	return Settings{
		StrutRange:      200,
		UmbilicalRange:  300,
		RocketImpulse:   1000,
		BreakingImpulse: entity.BreakingImpulse,
	}
}

// All returns one of each tool in toolbar order.
func All(s Settings) []Tool {
	tools := []Tool{
		&Nuke{},
		&Rocket{Impulse: s.RocketImpulse},
		&Strut{Range: s.StrutRange, BreakingImpulse: s.BreakingImpulse},
		&Umbilical{Range: s.UmbilicalRange, BreakingImpulse: s.BreakingImpulse},
		&Drill{},
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Order() < tools[j].Order() })
	return tools
}

// ByKind finds the tool of kind k in tools.
func ByKind(tools []Tool, k Kind) (Tool, bool) {
	for _, t := range tools {
		if t.Kind() == k {
			return t, true
		}
	}
	return nil, false
}
