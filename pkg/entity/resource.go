// pkg/entity/resource.go
package entity

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ResourceType is the resource an asteroid carries
type ResourceType int

const (
	Water ResourceType = iota
	Oil
	Uranium
	Aluminium
	Titanium
	// Home marks the player's home asteroid. It is never drawn from a
	// ResourceTable; exactly one asteroid per world is assigned it.
	Home
)

var resourceNames = [...]string{
	Water:     "water",
	Oil:       "oil",
	Uranium:   "uranium",
	Aluminium: "aluminium",
	Titanium:  "titanium",
	Home:      "home",
}

// ResourceTypes lists every resource type in declaration order, Home last.
func ResourceTypes() []ResourceType {
	return []ResourceType{Water, Oil, Uranium, Aluminium, Titanium, Home}
}

func (r ResourceType) String() string {
	if r < 0 || int(r) >= len(resourceNames) {
		return fmt.Sprintf("resource(%d)", int(r))
	}
	return resourceNames[r]
}

// ParseResourceType converts a resource name back to its type.
func ParseResourceType(name string) (ResourceType, error) {
	for i, n := range resourceNames {
		if n == name {
			return ResourceType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown resource type %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (r ResourceType) MarshalText() ([]byte, error) {
	if r < 0 || int(r) >= len(resourceNames) {
		return nil, fmt.Errorf("unknown resource type %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *ResourceType) UnmarshalText(text []byte) error {
	parsed, err := ParseResourceType(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

var (
	// ErrEmptyResourceTable is returned when a table has no entries.
	ErrEmptyResourceTable = errors.New("resource table is empty")
	// ErrInvalidWeight is returned for non-positive or duplicate entries.
	ErrInvalidWeight = errors.New("invalid resource weight")
)

// WeightedResource pairs a resource type with its selection weight.
type WeightedResource struct {
	Type   ResourceType `toml:"type"`
	Weight int          `toml:"weight"`
}

// ResourceTable draws resource types with probability weight/total. Entries
// are kept in the order given so a seeded generator always produces the same
// sequence. A ResourceTable is immutable once built.
type ResourceTable struct {
	entries []WeightedResource
	total   int
}

// NewResourceTable validates entries and builds a table from them.
func NewResourceTable(entries []WeightedResource) (*ResourceTable, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyResourceTable
	}
	seen := make(map[ResourceType]bool, len(entries))
	total := 0
	for _, e := range entries {
		if e.Weight <= 0 {
			return nil, fmt.Errorf("%w: %s has weight %d", ErrInvalidWeight, e.Type, e.Weight)
		}
		if e.Type == Home {
			return nil, fmt.Errorf("%w: home cannot be drawn at random", ErrInvalidWeight)
		}
		if seen[e.Type] {
			return nil, fmt.Errorf("%w: %s listed twice", ErrInvalidWeight, e.Type)
		}
		seen[e.Type] = true
		total += e.Weight
	}
	return &ResourceTable{
		entries: append([]WeightedResource(nil), entries...),
		total:   total,
	}, nil
}

// DefaultResourceWeights are the weights the game ships with.
func DefaultResourceWeights() []WeightedResource {
	return []WeightedResource{
		{Type: Water, Weight: 5},
		{Type: Oil, Weight: 3},
		{Type: Uranium, Weight: 1},
		{Type: Aluminium, Weight: 10},
		{Type: Titanium, Weight: 10},
	}
}

// DefaultResourceTable returns a table built from DefaultResourceWeights.
func DefaultResourceTable() *ResourceTable {
	t, err := NewResourceTable(DefaultResourceWeights())
	if err != nil {
		panic(err)
	}
	return t
}

// Pick draws one resource type.
func (t *ResourceTable) Pick(rng *rand.Rand) ResourceType {
	pick := rng.Float64() * float64(t.total)
	current := 0
	for _, e := range t.entries {
		current += e.Weight
		if float64(current) > pick {
			return e.Type
		}
	}
	// Unreachable with pick in [0, total), kept for float edge cases.
	return t.entries[len(t.entries)-1].Type
}

// Types returns the drawable resource types in table order.
func (t *ResourceTable) Types() []ResourceType {
	types := make([]ResourceType, len(t.entries))
	for i, e := range t.entries {
		types[i] = e.Type
	}
	return types
}

// Entries returns a copy of the table entries.
func (t *ResourceTable) Entries() []WeightedResource {
	return append([]WeightedResource(nil), t.entries...)
}

// Total is the sum of all weights.
func (t *ResourceTable) Total() int {
	return t.total
}

// Probability returns the chance Pick returns r.
func (t *ResourceTable) Probability(r ResourceType) float64 {
	for _, e := range t.entries {
		if e.Type == r {
			return float64(e.Weight) / float64(t.total)
		}
	}
	return 0
}
