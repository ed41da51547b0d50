// Package registry defines the static catalog of instantiable component
// types that drives the builder's palette.
//
// A Registry is populated once at process start and read everywhere else.
// Descriptors carry display metadata for the palette plus the default field
// data a fresh instance of that type starts with. Default data is deep
// copied on every request: two instances created from the same type never
// share nested maps or slices.
package registry

import (
	"errors"
	"fmt"
)

// Common registry errors.
var (
	ErrUnknownType  = errors.New("unknown component type")
	ErrTypeDisabled = errors.New("component type is disabled")
	ErrDuplicateTag = errors.New("type tag already registered")
)

// Descriptor describes one instantiable component type.
type Descriptor struct {
	// TypeTag is the unique key for this type (e.g. "hero", "spacer").
	TypeTag string

	// DisplayName is the human-readable palette label.
	DisplayName string

	// Category groups related types in the palette.
	Category string

	// Enabled controls whether the type can be instantiated. Disabled
	// types remain visible in the palette but Add rejects them.
	Enabled bool

	// Icon and ColorToken are palette display hints.
	Icon       string
	ColorToken string

	// DefaultData is the field data a fresh instance starts with.
	// Consumers never see this map directly; DefaultDataFor returns a
	// deep copy per call.
	DefaultData map[string]any
}

// Category is an ordered group of descriptors sharing a palette category.
type Category struct {
	Name  string
	Types []Descriptor
}

// Registry is the catalog of component types. Registration order is
// preserved and drives palette iteration order.
type Registry struct {
	order []string
	byTag map[string]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{byTag: make(map[string]Descriptor)}
}

// Register adds a descriptor to the catalog. Registering the same tag
// twice is an error, never a silent overwrite.
func (r *Registry) Register(d Descriptor) error {
	if d.TypeTag == "" {
		return fmt.Errorf("registry: %w: empty tag", ErrUnknownType)
	}
	if _, exists := r.byTag[d.TypeTag]; exists {
		return fmt.Errorf("registry: %w: %q", ErrDuplicateTag, d.TypeTag)
	}
	r.byTag[d.TypeTag] = d
	r.order = append(r.order, d.TypeTag)
	return nil
}

// MustRegister is Register for static catalogs assembled at startup.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Describe returns the descriptor for a type tag.
func (r *Registry) Describe(tag string) (Descriptor, error) {
	d, ok := r.byTag[tag]
	if !ok {
		return Descriptor{}, fmt.Errorf("registry: %w: %q", ErrUnknownType, tag)
	}
	return d, nil
}

// Has reports whether a tag is registered, enabled or not.
func (r *Registry) Has(tag string) bool {
	_, ok := r.byTag[tag]
	return ok
}

// DefaultDataFor returns a fresh copy of the type's default field data.
// Each call returns an independent value: mutating one instance's data
// never affects another instance created from the same type.
func (r *Registry) DefaultDataFor(tag string) (map[string]any, error) {
	d, ok := r.byTag[tag]
	if !ok {
		return nil, fmt.Errorf("registry: %w: %q", ErrUnknownType, tag)
	}
	return CloneData(d.DefaultData), nil
}

// List returns all descriptors in registration order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, tag := range r.order {
		out = append(out, r.byTag[tag])
	}
	return out
}

// ListByCategory groups descriptors by category. Category order is the
// order in which categories first appear during registration; within a
// category, types keep registration order. Stable across calls.
func (r *Registry) ListByCategory() []Category {
	var cats []Category
	index := make(map[string]int)
	for _, tag := range r.order {
		d := r.byTag[tag]
		i, ok := index[d.Category]
		if !ok {
			i = len(cats)
			index[d.Category] = i
			cats = append(cats, Category{Name: d.Category})
		}
		cats[i].Types = append(cats[i].Types, d)
	}
	return cats
}

// CloneData deep-copies a field data map. Values are limited to the shapes
// JSON round-trips produce: scalars, []any, and map[string]any.
func CloneData(data map[string]any) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return CloneData(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}
