// pkg/render/engo/assets.go
package engo

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/asteroid-belt/pkg/engine"
	"github.com/opd-ai/asteroid-belt/pkg/entity"
	"github.com/opd-ai/asteroid-belt/pkg/render"
	"github.com/opd-ai/asteroid-belt/pkg/tool"
)

// Sprite sizes in pixels.
const (
	ResourceIconSize = 24
	PersonSize       = entity.PersonRadius * 2
	ToolIconSize     = 48
	BannerWidth      = 320
	BannerHeight     = 96
)

// WinTexture is the banner shown once the planet is reached.
const WinTexture render.TextureID = "win"

var resourceColors = map[entity.ResourceType]color.RGBA{
	entity.Water:     {R: 60, G: 120, B: 230, A: 255},
	entity.Oil:       {R: 60, G: 45, B: 30, A: 255},
	entity.Uranium:   {R: 90, G: 220, B: 60, A: 255},
	entity.Aluminium: {R: 200, G: 200, B: 210, A: 255},
	entity.Titanium:  {R: 120, G: 140, B: 170, A: 255},
	entity.Home:      {R: 240, G: 150, B: 40, A: 255},
}

var toolColors = map[tool.Kind]color.RGBA{
	tool.DrillKind:     {R: 220, G: 180, B: 60, A: 255},
	tool.UmbilicalKind: {R: 90, G: 200, B: 90, A: 255},
	tool.StrutKind:     {R: 200, G: 200, B: 200, A: 255},
	tool.RocketKind:    {R: 230, G: 90, B: 50, A: 255},
	tool.NukeKind:      {R: 200, G: 40, B: 200, A: 255},
}

// Pattern is a procedurally drawn texture: its size and how to fill it.
type Pattern struct {
	Width, Height int
	Shape         func(x, y, w, h int) bool
	Color         color.RGBA
}

// disc fills a circle touching the image edges.
func disc(x, y, w, h int) bool {
	dx := float64(2*x+1-w) / float64(w)
	dy := float64(2*y+1-h) / float64(h)
	return dx*dx+dy*dy <= 1
}

// ring is a disc with a hollow centre.
func ring(x, y, w, h int) bool {
	dx := float64(2*x+1-w) / float64(w)
	dy := float64(2*y+1-h) / float64(h)
	d := dx*dx + dy*dy
	return d <= 1 && d >= 0.45
}

// arrow points along +x, the direction a zero angle faces.
func arrow(x, y, w, h int) bool {
	half := float64(h) / 2
	reach := float64(w-x) / float64(w) * half
	return float64(y)+0.5 >= half-reach && float64(y)+0.5 <= half+reach
}

// frame draws a border two pixels thick.
func frame(x, y, w, h int) bool {
	return x < 2 || y < 2 || x >= w-2 || y >= h-2
}

func dim(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}
}

// Patterns lists every texture the game can ask for. planetSize is the
// planet sprite's diameter.
func Patterns(planetSize int) map[render.TextureID]Pattern {
	patterns := make(map[render.TextureID]Pattern)
	textures := entity.NewTextureTable()
	for _, key := range textures.Keys() {
		c := resourceColors[key.Resource]
		shape := disc
		if !key.Refined {
			c = dim(c)
			shape = ring
		}
		patterns[textures.Lookup(key)] = Pattern{Width: ResourceIconSize, Height: ResourceIconSize, Shape: shape, Color: c}
	}
	for _, t := range tool.All(tool.DefaultSettings()) {
		patterns[tool.Texture(t)] = Pattern{Width: ToolIconSize, Height: ToolIconSize, Shape: disc, Color: toolColors[t.Kind()]}
	}
	patterns[entity.PersonTexture] = Pattern{Width: PersonSize, Height: PersonSize, Shape: arrow, Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
	patterns[engine.PlanetTexture] = Pattern{Width: planetSize, Height: planetSize, Shape: disc, Color: color.RGBA{R: 70, G: 160, B: 110, A: 255}}
	patterns[WinTexture] = Pattern{Width: BannerWidth, Height: BannerHeight, Shape: frame, Color: color.RGBA{R: 240, G: 200, B: 60, A: 255}}
	return patterns
}

// Image renders a pattern onto a transparent image.
func (p Pattern) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.Transparent}, image.Point{}, draw.Src)
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			if p.Shape(x, y, p.Width, p.Height) {
				img.Set(x, y, p.Color)
			}
		}
	}
	return img
}

// AssetManager holds one GPU texture per TextureID.
type AssetManager struct {
	patterns map[render.TextureID]Pattern
	sprites  map[render.TextureID]common.Drawable
}

// NewAssetManager creates a new asset manager
func NewAssetManager(planetSize int) *AssetManager {
	return &AssetManager{
		patterns: Patterns(planetSize),
		sprites:  make(map[render.TextureID]common.Drawable),
	}
}

// LoadAssets uploads every pattern. It needs a live GL context, so call it
// from a scene's Setup.
func (am *AssetManager) LoadAssets() error {
	for id, p := range am.patterns {
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("texture %q has no area", id)
		}
		am.sprites[id] = common.NewTextureSingle(common.NewImageObject(p.Image()))
	}
	return nil
}

// Sprite returns the texture for id and its size in pixels.
func (am *AssetManager) Sprite(id render.TextureID) (common.Drawable, float32, float32, bool) {
	sprite, ok := am.sprites[id]
	if !ok {
		return nil, 0, 0, false
	}
	p := am.patterns[id]
	return sprite, float32(p.Width), float32(p.Height), true
}

// Has reports whether id names a known texture.
func (am *AssetManager) Has(id render.TextureID) bool {
	_, ok := am.patterns[id]
	return ok
}
