package entity

import (
	"testing"

	"github.com/opd-ai/asteroid-belt/pkg/render"
)

func TestTextureTable(t *testing.T) {
	table := NewTextureTable()
	tests := []struct {
		key  TextureKey
		want render.TextureID
	}{
		{TextureKey{Resource: Water}, "raw_water"},
		{TextureKey{Resource: Water, Refined: true}, "water"},
		{TextureKey{Resource: Titanium}, "raw_titanium"},
		{TextureKey{Resource: Home, Refined: true}, "home"},
		{TextureKey{Resource: ResourceType(99)}, ""},
	}
	for _, tt := range tests {
		if got := table.Lookup(tt.key); got != tt.want {
			t.Errorf("Lookup(%+v) = %q, want %q", tt.key, got, tt.want)
		}
	}
	if n := len(table.Keys()); n != 2*len(ResourceTypes()) {
		t.Errorf("Keys() has %d entries", n)
	}
}
