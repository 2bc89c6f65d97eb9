// pkg/entity/appearance.go
package entity

import (
	"github.com/opd-ai/asteroid-belt/pkg/render"
)

// PersonTexture is the sprite drawn for the player.
const PersonTexture render.TextureID = "pushing"

// TextureKey selects an asteroid sprite: its resource and whether it has
// been drilled.
type TextureKey struct {
	Resource ResourceType
	Refined  bool
}

// TextureTable maps every TextureKey to a texture name. It is built once
// and only read afterwards.
type TextureTable struct {
	names map[TextureKey]render.TextureID
}

// NewTextureTable builds the table for every resource type. Undrilled
// asteroids use "raw_<resource>", drilled ones "<resource>".
func NewTextureTable() *TextureTable {
	t := &TextureTable{names: make(map[TextureKey]render.TextureID)}
	for _, r := range ResourceTypes() {
		t.names[TextureKey{Resource: r}] = render.TextureID("raw_" + r.String())
		t.names[TextureKey{Resource: r, Refined: true}] = render.TextureID(r.String())
	}
	return t
}

// Lookup returns the texture for key, or the empty ID if the key is unknown.
func (t *TextureTable) Lookup(key TextureKey) render.TextureID {
	return t.names[key]
}

// Keys lists every key in resource order, raw before refined.
func (t *TextureTable) Keys() []TextureKey {
	keys := make([]TextureKey, 0, len(t.names))
	for _, r := range ResourceTypes() {
		keys = append(keys, TextureKey{Resource: r}, TextureKey{Resource: r, Refined: true})
	}
	return keys
}
