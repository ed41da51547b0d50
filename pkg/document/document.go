// Package document holds the ordered list of typed components that makes up
// one landing page, and the edit operations over it.
//
// The central invariant is dense ordering: after every committed mutation,
// Order values form a contiguous 0..N-1 permutation matching slice position.
// Renormalize restores it and every structural operation calls it as its
// final step; callers never see a sparse document.
//
// Operations are synchronous and total: a failed operation leaves the
// document exactly as it was.
package document

import (
	"errors"
	"sort"

	"github.com/pagecraft/pagecraft/pkg/registry"
)

// Common document errors.
var (
	ErrNotFound     = errors.New("component not found")
	ErrDuplicateID  = errors.New("component id already in use")
	ErrIDGeneration = errors.New("could not generate a unique component id")
)

// Component is one placed content block on a page.
type Component struct {
	// ID is unique within a document. User-editable after creation via
	// Rename, which rejects collisions.
	ID string `json:"id" msgpack:"id"`

	// TypeTag is the foreign key into the registry. Unknown tags render
	// as an explicit placeholder, never as a failure.
	TypeTag string `json:"type" msgpack:"type"`

	// DisplayName is the human label shown in the builder's layer list.
	DisplayName string `json:"displayName" msgpack:"displayName"`

	// Order is the dense zero-based position within the document.
	Order int `json:"order" msgpack:"order"`

	// Visible components render; hidden ones stay editable but are
	// skipped by the interpreter.
	Visible bool `json:"visible" msgpack:"visible"`

	// Data holds the type-specific fields. Shape is defined by the
	// type's default data but not statically enforced against it.
	Data map[string]any `json:"data" msgpack:"data"`
}

// Clone returns a deep copy of the component.
func (c Component) Clone() Component {
	out := c
	out.Data = registry.CloneData(c.Data)
	return out
}

// Document is a full page: metadata plus the ordered component list.
// This is also the persisted shape; Components serializes as "content"
// in its current order.
type Document struct {
	ID         string      `json:"id" msgpack:"id"`
	Title      string      `json:"title" msgpack:"title"`
	Slug       string      `json:"slug" msgpack:"slug"`
	Active     bool        `json:"isActive" msgpack:"isActive"`
	Components []Component `json:"content" msgpack:"content"`
}

// New creates an empty document.
func New(id, title, slug string) *Document {
	return &Document{ID: id, Title: title, Slug: slug, Active: true}
}

// Find returns the component with the given id, or nil.
func (d *Document) Find(id string) *Component {
	for i := range d.Components {
		if d.Components[i].ID == id {
			return &d.Components[i]
		}
	}
	return nil
}

// IndexOf returns the slice position of the component with the given id,
// or -1 when absent.
func (d *Document) IndexOf(id string) int {
	for i := range d.Components {
		if d.Components[i].ID == id {
			return i
		}
	}
	return -1
}

// Len returns the number of components.
func (d *Document) Len() int {
	return len(d.Components)
}

// Renormalize restores the dense-order invariant: a stable sort by the
// current Order values (ties keep prior list position) followed by
// reassignment to 0..N-1. Idempotent.
func (d *Document) Renormalize() {
	sort.SliceStable(d.Components, func(i, j int) bool {
		return d.Components[i].Order < d.Components[j].Order
	})
	for i := range d.Components {
		d.Components[i].Order = i
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := *d
	out.Components = make([]Component, len(d.Components))
	for i, c := range d.Components {
		out.Components[i] = c.Clone()
	}
	return &out
}

// CountType returns how many components carry the given type tag.
func (d *Document) CountType(tag string) int {
	n := 0
	for i := range d.Components {
		if d.Components[i].TypeTag == tag {
			n++
		}
	}
	return n
}
