// pkg/world/populate.go
package world

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/opd-ai/asteroid-belt/pkg/entity"
	"github.com/opd-ai/asteroid-belt/pkg/event"
	"github.com/opd-ai/asteroid-belt/pkg/logging"
	"github.com/opd-ai/asteroid-belt/pkg/physics"
	"github.com/opd-ai/asteroid-belt/pkg/render"
)

// Options controls field generation.
type Options struct {
	Bounds  Bounds
	MinSize float64
	MaxSize float64
	// SplitFactor times MaxSize is the smallest segment subdivision keeps.
	SplitFactor float64
	// HomeBand is the fraction of the world height above which the home
	// asteroid is chosen.
	HomeBand float64
	// KickImpulse bounds the random push given to every other asteroid.
	KickImpulse float64
	// RequireCoverage regenerates fields missing a resource type.
	RequireCoverage bool
	MaxAttempts     int
}

// DefaultOptions returns the settings the game ships with.
func DefaultOptions() Options {
	return Options{
		Bounds:          Bounds{Width: 3000, Height: 3000},
		MinSize:         50,
		MaxSize:         100,
		SplitFactor:     1.75,
		HomeBand:        0.75,
		KickImpulse:     20000,
		RequireCoverage: true,
		MaxAttempts:     10,
	}
}

// Field is a generated asteroid belt.
type Field struct {
	Asteroids []*entity.Asteroid
	Home      *entity.Asteroid
	// Attempt is the generation attempt that produced the field, from 1.
	Attempt int
}

// Populator fills a world with asteroids.
type Populator struct {
	scene  entity.Scene
	rng    *rand.Rand
	opts   Options
	logger *logging.Logger
	bus    *event.Bus
}

// NewPopulator creates a populator. bus may be nil.
func NewPopulator(scene entity.Scene, rng *rand.Rand, opts Options, logger *logging.Logger, bus *event.Bus) *Populator {
	if logger == nil {
		logger = logging.NewLogger()
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	return &Populator{scene: scene, rng: rng, opts: opts, logger: logger, bus: bus}
}

// Options returns the populator's settings.
func (p *Populator) Options() Options {
	return p.opts
}

// Populate places one asteroid at the centre of every leaf segment of
// bounds, with a size drawn uniformly from [minSize, maxSize].
func (p *Populator) Populate(ctx context.Context, minSize, maxSize float64, bounds Bounds) ([]*entity.Asteroid, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	if minSize <= 0 || maxSize < minSize {
		return nil, fmt.Errorf("%w: asteroid size range [%g, %g]", ErrDegenerateWorld, minSize, maxSize)
	}
	leaf := maxSize * p.opts.SplitFactor
	if leaf <= 0 || leaf >= min(bounds.Width, bounds.Height) {
		return nil, fmt.Errorf("%w: segment size %g does not fit in %gx%g",
			ErrDegenerateWorld, leaf, bounds.Width, bounds.Height)
	}

	var asteroids []*entity.Asteroid
	for seg := range NewSegment(bounds).RecursiveSplit(p.rng, leaf) {
		if err := ctx.Err(); err != nil {
			p.discard(asteroids)
			return nil, err
		}
		size := minSize + p.rng.Float64()*(maxSize-minSize)
		asteroids = append(asteroids, entity.NewAsteroid(p.scene, p.rng, seg.Centre(), size))
	}
	if len(asteroids) == 0 {
		return nil, ErrEmptyField
	}
	p.logger.Debug(ctx, "Field populated", "asteroids", len(asteroids), "segment_size", leaf)
	return asteroids, nil
}

// VerifyCoverage checks that every type in table has at least one asteroid.
func VerifyCoverage(asteroids []*entity.Asteroid, table *entity.ResourceTable) error {
	counts := make(map[entity.ResourceType]int)
	for _, a := range asteroids {
		counts[a.Resource()]++
	}
	var missing []string
	for _, t := range table.Types() {
		if counts[t] == 0 {
			missing = append(missing, t.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingResource, strings.Join(missing, ", "))
	}
	return nil
}

// ChooseHome picks a random asteroid above the home band, marks it home and
// populates it.
func (p *Populator) ChooseHome(asteroids []*entity.Asteroid, bounds Bounds) (*entity.Asteroid, error) {
	band := bounds.Height * p.opts.HomeBand
	var candidates []*entity.Asteroid
	for _, a := range asteroids {
		if a.Position().Y > band {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: nothing above y=%g", ErrNoHomeCandidate, band)
	}
	home := candidates[p.rng.IntN(len(candidates))]
	home.MarkHome()
	home.SetPopulated(true)
	return home, nil
}

// Kick gives every asteroid except home a random push with each component
// drawn from a triangular distribution over [-impulse, impulse] peaking at 0.
func (p *Populator) Kick(asteroids []*entity.Asteroid, impulse float64) {
	for _, a := range asteroids {
		if a.Resource() == entity.Home {
			continue
		}
		push := physics.Vector2D{
			X: triangular(p.rng, -impulse, impulse, 0),
			Y: triangular(p.rng, -impulse, impulse, 0),
		}
		a.ApplyImpulse(push, physics.Vector2D{})
	}
}

// triangular samples a triangular distribution by inverting its CDF.
func triangular(rng *rand.Rand, low, high, mode float64) float64 {
	if high <= low {
		return low
	}
	u := rng.Float64()
	c := (mode - low) / (high - low)
	if u < c {
		return low + math.Sqrt(u*(high-low)*(mode-low))
	}
	return high - math.Sqrt((1-u)*(high-low)*(high-mode))
}

// Generate builds a complete field, regenerating after recoverable failures
// up to MaxAttempts times. Each attempt logs under its own correlation ID.
func (p *Populator) Generate(ctx context.Context) (*Field, error) {
	var lastErr error
	for attempt := 1; attempt <= p.opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		actx := logging.WithCorrelationID(ctx, logging.GenerateCorrelationID())

		field, err := p.attempt(actx)
		if err == nil {
			field.Attempt = attempt
			p.Kick(field.Asteroids, p.opts.KickImpulse)
			p.logger.Info(actx, "World generated",
				"attempt", attempt,
				"asteroids", len(field.Asteroids),
				"home_x", field.Home.Position().X,
				"home_y", field.Home.Position().Y,
			)
			p.bus.Publish(event.NewWorldEvent(event.WorldGenerated, p, attempt,
				len(field.Asteroids), uint64(field.Home.GetID()), ""))
			return field, nil
		}
		if !IsRecoverable(err) {
			return nil, err
		}
		lastErr = err
		p.logger.Warn(actx, "Regenerating world", "attempt", attempt, "reason", err.Error())
		p.bus.Publish(event.NewWorldEvent(event.GenerationRetried, p, attempt, 0, 0, err.Error()))
	}
	return nil, logging.WrapError(lastErr, "world generation failed after %d attempts", p.opts.MaxAttempts)
}

func (p *Populator) attempt(ctx context.Context) (*Field, error) {
	asteroids, err := p.Populate(ctx, p.opts.MinSize, p.opts.MaxSize, p.opts.Bounds)
	if err != nil {
		return nil, err
	}
	home, err := p.ChooseHome(asteroids, p.opts.Bounds)
	if err != nil {
		p.discard(asteroids)
		return nil, err
	}
	// Home stops counting as its old type, so coverage is checked after.
	if p.opts.RequireCoverage {
		if err := VerifyCoverage(asteroids, p.scene.Resources); err != nil {
			p.discard(asteroids)
			return nil, err
		}
	}
	return &Field{Asteroids: asteroids, Home: home}, nil
}

// discard tears down a rejected field.
func (p *Populator) discard(asteroids []*entity.Asteroid) {
	for _, a := range asteroids {
		a.Destroy()
		a.Remove(p.scene.Space)
	}
}

// StarDensity is the world area per background star.
const StarDensity = 1000

// Stars scatters one background point per StarDensity square units.
func Stars(batch *render.Batch, group render.Group, rng *rand.Rand, bounds Bounds) *render.VertexList {
	n := int(bounds.Width * bounds.Height / StarDensity)
	points := make([]physics.Vector2D, n)
	for i := range points {
		points[i] = physics.Vector2D{
			X: float64(rng.IntN(int(bounds.Width) + 1)),
			Y: float64(rng.IntN(int(bounds.Height) + 1)),
		}
	}
	return batch.Add(group, render.Primitive{
		Kind:   render.Points,
		Points: points,
		Color:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
	})
}

// Borders walls the world in with four thick static segments lying buffer
// units outside each edge.
func Borders(space physics.Space, bounds Bounds, buffer float64) []physics.Shape {
	static := space.StaticBody()
	lo := physics.Vector2D{X: -buffer, Y: -buffer}
	hi := physics.Vector2D{X: bounds.Width + buffer, Y: bounds.Height + buffer}
	topLeft := physics.Vector2D{X: lo.X, Y: hi.Y}
	bottomRight := physics.Vector2D{X: hi.X, Y: lo.Y}
	return []physics.Shape{
		space.AddSegment(static, lo, topLeft, buffer, physics.Material{}),
		space.AddSegment(static, lo, bottomRight, buffer, physics.Material{}),
		space.AddSegment(static, hi, bottomRight, buffer, physics.Material{}),
		space.AddSegment(static, hi, topLeft, buffer, physics.Material{}),
	}
}
