package document

import (
	"fmt"
	"strconv"

	"github.com/pagecraft/pagecraft/pkg/idgen"
	"github.com/pagecraft/pagecraft/pkg/registry"
)

// maxIDAttempts bounds the collision-retry loop in Add. The generator's
// collision probability is non-zero, so exhausting the budget is an error
// rather than an infinite loop.
const maxIDAttempts = 8

// Editor applies edit operations to one document. Operations either commit
// fully (and renormalize order) or fail and leave the document untouched.
type Editor struct {
	doc      *Document
	registry *registry.Registry
	nextID   idgen.Generator
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithIDGenerator overrides the component id strategy.
func WithIDGenerator(gen idgen.Generator) EditorOption {
	return func(e *Editor) {
		e.nextID = gen
	}
}

// NewEditor creates an editor over doc backed by the given registry.
func NewEditor(doc *Document, reg *registry.Registry, opts ...EditorOption) *Editor {
	e := &Editor{doc: doc, registry: reg, nextID: idgen.Default}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Document returns the document this editor mutates.
func (e *Editor) Document() *Document {
	return e.doc
}

// Add instantiates a component of the given type at the end of the
// document and returns it. The returned pointer stays valid only until the
// next structural mutation.
func (e *Editor) Add(tag string) (*Component, error) {
	desc, err := e.registry.Describe(tag)
	if err != nil {
		return nil, err
	}
	if !desc.Enabled {
		return nil, fmt.Errorf("document: %w: %q", registry.ErrTypeDisabled, tag)
	}

	id, err := e.freshID()
	if err != nil {
		return nil, err
	}

	data, err := e.registry.DefaultDataFor(tag)
	if err != nil {
		return nil, err
	}

	c := Component{
		ID:          id,
		TypeTag:     tag,
		DisplayName: desc.DisplayName + " " + strconv.Itoa(e.doc.CountType(tag)+1),
		Order:       len(e.doc.Components),
		Visible:     true,
		Data:        data,
	}
	e.doc.Components = append(e.doc.Components, c)
	e.doc.Renormalize()
	return e.doc.Find(id), nil
}

// UpdateFields shallow-merges partial into the component's data. Keys
// absent from partial are untouched; nested slices and maps inside a single
// field are replaced wholesale, never deep-merged, so callers editing a
// list field always supply the full replacement list.
func (e *Editor) UpdateFields(id string, partial map[string]any) error {
	c := e.doc.Find(id)
	if c == nil {
		return fmt.Errorf("document: %w: %q", ErrNotFound, id)
	}
	if c.Data == nil {
		c.Data = make(map[string]any, len(partial))
	}
	for k, v := range registry.CloneData(partial) {
		c.Data[k] = v
	}
	return nil
}

// Rename changes a component's id. Renaming to the current id is a no-op;
// renaming onto a different live component fails with ErrDuplicateID and
// changes nothing.
func (e *Editor) Rename(id, newID string) error {
	c := e.doc.Find(id)
	if c == nil {
		return fmt.Errorf("document: %w: %q", ErrNotFound, id)
	}
	if newID == id {
		return nil
	}
	if e.doc.Find(newID) != nil {
		return fmt.Errorf("document: %w: %q", ErrDuplicateID, newID)
	}
	c.ID = newID
	return nil
}

// SetDisplayName changes the human label shown in the layer list.
func (e *Editor) SetDisplayName(id, name string) error {
	c := e.doc.Find(id)
	if c == nil {
		return fmt.Errorf("document: %w: %q", ErrNotFound, id)
	}
	c.DisplayName = name
	return nil
}

// Remove deletes a component and renormalizes order.
func (e *Editor) Remove(id string) error {
	i := e.doc.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("document: %w: %q", ErrNotFound, id)
	}
	e.doc.Components = append(e.doc.Components[:i], e.doc.Components[i+1:]...)
	e.doc.Renormalize()
	return nil
}

// SetVisible toggles the render flag. Order is untouched.
func (e *Editor) SetVisible(id string, visible bool) error {
	c := e.doc.Find(id)
	if c == nil {
		return fmt.Errorf("document: %w: %q", ErrNotFound, id)
	}
	c.Visible = visible
	return nil
}

// MoveUp swaps the component with its predecessor. Already-first is a
// no-op, not an error.
func (e *Editor) MoveUp(id string) error {
	return e.swapAdjacent(id, -1)
}

// MoveDown swaps the component with its successor. Already-last is a
// no-op, not an error.
func (e *Editor) MoveDown(id string) error {
	return e.swapAdjacent(id, +1)
}

func (e *Editor) swapAdjacent(id string, delta int) error {
	i := e.doc.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("document: %w: %q", ErrNotFound, id)
	}
	j := i + delta
	if j < 0 || j >= len(e.doc.Components) {
		return nil
	}
	e.doc.Components[i].Order, e.doc.Components[j].Order = e.doc.Components[j].Order, e.doc.Components[i].Order
	e.doc.Renormalize()
	return nil
}

// MoveTo removes the component from its current position and reinserts it
// at targetIndex, clamped to [0, len-1]. This is the general reorder used
// by drag-and-drop; for adjacent targets it is equivalent to one MoveUp or
// MoveDown.
func (e *Editor) MoveTo(id string, targetIndex int) error {
	i := e.doc.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("document: %w: %q", ErrNotFound, id)
	}
	if targetIndex < 0 {
		targetIndex = 0
	}
	if max := len(e.doc.Components) - 1; targetIndex > max {
		targetIndex = max
	}
	if targetIndex == i {
		return nil
	}

	c := e.doc.Components[i]
	rest := append(e.doc.Components[:i:i], e.doc.Components[i+1:]...)
	e.doc.Components = append(rest[:targetIndex:targetIndex], append([]Component{c}, rest[targetIndex:]...)...)
	for k := range e.doc.Components {
		e.doc.Components[k].Order = k
	}
	e.doc.Renormalize()
	return nil
}

func (e *Editor) freshID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := e.nextID()
		if e.doc.Find(id) == nil {
			return id, nil
		}
	}
	return "", ErrIDGeneration
}
