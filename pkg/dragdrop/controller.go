// Package dragdrop implements the drag interaction state machine for the
// builder canvas.
//
// The controller is deliberately decoupled from any pointer-event library:
// adapters translate raw interaction events into Start/Over/End/Cancel
// calls, and the controller is the only party allowed to turn a completed
// drag into a document mutation. Exactly zero or one structural mutation
// results from each Start/End pair.
//
// Two provenance paths share the machine. A picked id that resolves in the
// registry is a palette drag (drop creates a new component); one that
// resolves in the document is a canvas drag (drop reorders the existing
// component). An id resolving in neither is treated as an immediately
// cancelled drag, never an error — drag libraries emit stale ids.
package dragdrop

import (
	"errors"

	"github.com/pagecraft/pagecraft/pkg/document"
	"github.com/pagecraft/pagecraft/pkg/registry"
)

// ErrNotDragging is returned by End when no drag session is live.
var ErrNotDragging = errors.New("no drag session in progress")

// Origin identifies where a drag started.
type Origin int

const (
	// OriginNone means no drag is live.
	OriginNone Origin = iota
	// OriginPalette means the drag carries a new component type.
	OriginPalette
	// OriginCanvas means the drag reorders an existing component.
	OriginCanvas
)

func (o Origin) String() string {
	switch o {
	case OriginPalette:
		return "palette"
	case OriginCanvas:
		return "canvas"
	default:
		return "none"
	}
}

// Preview is the display metadata snapshotted at drag start for the drag
// overlay. It is independent of the live document so the overlay never
// flickers while the underlying data changes mid-drag.
type Preview struct {
	TypeTag     string
	DisplayName string
	Icon        string
	ColorToken  string
}

// Outcome describes what a completed drag did to the document.
type Outcome int

const (
	// OutcomeNone means the drag was cancelled; nothing changed.
	OutcomeNone Outcome = iota
	// OutcomeAdded means a new component was created from the palette.
	OutcomeAdded
	// OutcomeMoved means an existing component was reordered.
	OutcomeMoved
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAdded:
		return "added"
	case OutcomeMoved:
		return "moved"
	default:
		return "none"
	}
}

// Result is what End reports back to the interaction layer.
type Result struct {
	Outcome Outcome

	// ComponentID is the affected component: the freshly created id for
	// OutcomeAdded, the moved id for OutcomeMoved, empty otherwise.
	ComponentID string
}

// Controller runs at most one drag session at a time over one document.
type Controller struct {
	registry *registry.Registry
	editor   *document.Editor

	dragging bool
	origin   Origin
	activeID string
	hoverID  string
	preview  *Preview
}

// NewController creates a controller issuing mutations through the editor.
func NewController(reg *registry.Registry, ed *document.Editor) *Controller {
	return &Controller{registry: reg, editor: ed}
}

// Start begins a drag session for pickedID and reports whether one
// actually started. Unresolvable ids are a defensive no-op: the session is
// treated as cancelled immediately and Start returns false.
func (c *Controller) Start(pickedID string) bool {
	if c.dragging {
		// At most one session is live; the interaction library already
		// guarantees it never starts a second drag mid-flight.
		return false
	}

	switch {
	case c.registry.Has(pickedID):
		desc, _ := c.registry.Describe(pickedID)
		c.origin = OriginPalette
		c.preview = &Preview{
			TypeTag:     desc.TypeTag,
			DisplayName: desc.DisplayName,
			Icon:        desc.Icon,
			ColorToken:  desc.ColorToken,
		}
	case c.editor.Document().Find(pickedID) != nil:
		comp := c.editor.Document().Find(pickedID)
		c.origin = OriginCanvas
		prev := &Preview{TypeTag: comp.TypeTag, DisplayName: comp.DisplayName}
		if desc, err := c.registry.Describe(comp.TypeTag); err == nil {
			prev.Icon = desc.Icon
			prev.ColorToken = desc.ColorToken
		}
		c.preview = prev
	default:
		// Stale id from the interaction layer.
		return false
	}

	c.dragging = true
	c.activeID = pickedID
	return true
}

// Over records the current hover target. Informational only: it drives
// hover feedback and never mutates the document.
func (c *Controller) Over(targetID string) {
	if !c.dragging {
		return
	}
	c.hoverID = targetID
}

// End commits the drag onto targetID and resets to idle. An empty targetID
// means the drop landed inside the canvas but not on a specific component;
// drops outside the canvas entirely must be routed to Cancel instead.
//
// The internal reset happens before any result is handed back, so the
// interaction layer never observes a dangling overlay while scheduling
// drop animations.
func (c *Controller) End(targetID string) (Result, error) {
	if !c.dragging {
		return Result{}, ErrNotDragging
	}

	origin, pickedID := c.origin, c.activeID
	c.reset()

	switch origin {
	case OriginPalette:
		// A palette drag dropped anywhere inside the canvas creates the
		// component, target or no target.
		comp, err := c.editor.Add(pickedID)
		if err != nil {
			return Result{}, err
		}
		return Result{Outcome: OutcomeAdded, ComponentID: comp.ID}, nil

	case OriginCanvas:
		if targetID == "" || targetID == pickedID {
			return Result{}, nil
		}
		targetIndex := c.editor.Document().IndexOf(targetID)
		if targetIndex < 0 {
			// Target vanished mid-drag; cancel rather than guess.
			return Result{}, nil
		}
		if err := c.editor.MoveTo(pickedID, targetIndex); err != nil {
			return Result{}, err
		}
		return Result{Outcome: OutcomeMoved, ComponentID: pickedID}, nil
	}

	return Result{}, nil
}

// Cancel abandons the live session, if any. Never mutates the document.
func (c *Controller) Cancel() {
	c.reset()
}

// Dragging reports whether a session is live.
func (c *Controller) Dragging() bool {
	return c.dragging
}

// Preview returns the overlay snapshot taken at Start.
func (c *Controller) Preview() (Preview, bool) {
	if c.preview == nil {
		return Preview{}, false
	}
	return *c.preview, true
}

// Hover returns the last target reported via Over.
func (c *Controller) Hover() string {
	return c.hoverID
}

func (c *Controller) reset() {
	c.dragging = false
	c.origin = OriginNone
	c.activeID = ""
	c.hoverID = ""
	c.preview = nil
}
