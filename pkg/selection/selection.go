// Package selection keeps the "currently open for editing" reference
// consistent with mutations to the content document.
//
// State is never patched imperatively after individual operations.
// Instead, the owning session recomputes it as a pure derivation of
// (document, previous state) after every committed mutation, which makes
// the invariant — a selected id always resolves to a live component, or
// the panel is closed — a property of Derive rather than a convention
// every call site must remember.
package selection

import (
	"reflect"

	"github.com/pagecraft/pagecraft/pkg/document"
)

// State is the editing panel's view of the selection.
type State struct {
	// SelectedID is the component open for editing, or empty.
	SelectedID string

	// EditingOpen reports whether the panel is showing.
	EditingOpen bool

	// Snapshot is a deep copy of the selected component as the panel
	// last rendered it. Derive refreshes it when the live component
	// drifts, so batched concurrent edits surface instead of going stale.
	Snapshot *document.Component
}

// Select opens the panel on id. Selecting an id that does not resolve in
// the document clears the state instead.
func Select(doc *document.Document, id string) State {
	c := doc.Find(id)
	if c == nil {
		return State{}
	}
	snap := c.Clone()
	return State{SelectedID: id, EditingOpen: true, Snapshot: &snap}
}

// Derive recomputes the state against the current document. If the
// previously selected component is gone, everything clears and the panel
// closes. If it survives but its content changed since the last snapshot,
// the snapshot refreshes. Idempotent: deriving twice without an
// intervening mutation returns an identical state.
func Derive(doc *document.Document, prev State) State {
	if prev.SelectedID == "" {
		return State{}
	}
	c := doc.Find(prev.SelectedID)
	if c == nil {
		return State{}
	}
	if prev.Snapshot != nil && reflect.DeepEqual(*prev.Snapshot, *c) {
		return prev
	}
	snap := c.Clone()
	return State{SelectedID: prev.SelectedID, EditingOpen: prev.EditingOpen, Snapshot: &snap}
}

// Clear closes the panel.
func Clear() State {
	return State{}
}

// Stale reports whether the live component differs from the panel's last
// rendered snapshot.
func Stale(doc *document.Document, s State) bool {
	if s.SelectedID == "" || s.Snapshot == nil {
		return false
	}
	c := doc.Find(s.SelectedID)
	if c == nil {
		return true
	}
	return !reflect.DeepEqual(*s.Snapshot, *c)
}
