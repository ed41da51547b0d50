// Package protocol defines the wire messages between the builder UI and
// the editing session.
//
// This is the adapter boundary that keeps interaction libraries out of the
// core: pointer and keyboard events arrive here as abstract drag lifecycle
// and edit messages, and the session replies with results and preview
// patches. The drag controller and edit operations never see a raw browser
// event.
package protocol

import "github.com/pagecraft/pagecraft/pkg/render"

// MessageType identifies the type of protocol message.
type MessageType uint8

const (
	// MsgAdd creates a component from a palette type without a drag.
	MsgAdd MessageType = iota
	// MsgUpdateFields shallow-merges field edits into a component.
	MsgUpdateFields
	// MsgRename changes a component's id.
	MsgRename
	// MsgSetDisplayName changes a component's layer-list label.
	MsgSetDisplayName
	// MsgRemove deletes a component.
	MsgRemove
	// MsgSetVisible toggles a component's visibility.
	MsgSetVisible
	// MsgMoveUp moves a component one position earlier.
	MsgMoveUp
	// MsgMoveDown moves a component one position later.
	MsgMoveDown
	// MsgMoveTo moves a component to an explicit index.
	MsgMoveTo
	// MsgSelect opens the editing panel on a component.
	MsgSelect
	// MsgDeselect closes the editing panel.
	MsgDeselect
	// MsgDragStart begins a drag for a palette type or canvas component.
	MsgDragStart
	// MsgDragOver reports the current hover target mid-drag.
	MsgDragOver
	// MsgDragEnd commits a drag onto a target inside the canvas.
	MsgDragEnd
	// MsgDragCancel abandons a drag (escape key, drop outside canvas).
	MsgDragCancel
	// MsgSave persists the whole document.
	MsgSave
	// MsgReply is the session's response to a request.
	MsgReply
	// MsgPatch carries preview patch operations after a mutation.
	MsgPatch
	// MsgError reports a non-fatal operation failure.
	MsgError
)

// String returns the wire name of the message type.
func (mt MessageType) String() string {
	switch mt {
	case MsgAdd:
		return "add"
	case MsgUpdateFields:
		return "update_fields"
	case MsgRename:
		return "rename"
	case MsgSetDisplayName:
		return "set_display_name"
	case MsgRemove:
		return "remove"
	case MsgSetVisible:
		return "set_visible"
	case MsgMoveUp:
		return "move_up"
	case MsgMoveDown:
		return "move_down"
	case MsgMoveTo:
		return "move_to"
	case MsgSelect:
		return "select"
	case MsgDeselect:
		return "deselect"
	case MsgDragStart:
		return "drag_start"
	case MsgDragOver:
		return "drag_over"
	case MsgDragEnd:
		return "drag_end"
	case MsgDragCancel:
		return "drag_cancel"
	case MsgSave:
		return "save"
	case MsgReply:
		return "reply"
	case MsgPatch:
		return "patch"
	case MsgError:
		return "error"
	default:
		return "unknown"
	}
}

// Message is one protocol message in either direction. Field usage depends
// on Type; unused fields are omitted on the wire.
type Message struct {
	// Type identifies what kind of message this is.
	Type MessageType `json:"t" msgpack:"t"`

	// Ref correlates a reply with its request.
	Ref string `json:"ref,omitempty" msgpack:"ref,omitempty"`

	// ComponentID targets an existing component, or names the one a
	// reply created or affected.
	ComponentID string `json:"cid,omitempty" msgpack:"cid,omitempty"`

	// TypeTag names a palette type for MsgAdd and palette MsgDragStart.
	TypeTag string `json:"tag,omitempty" msgpack:"tag,omitempty"`

	// TargetID is the drop or hover target for drag messages.
	TargetID string `json:"target,omitempty" msgpack:"target,omitempty"`

	// Index is the destination position for MsgMoveTo.
	Index int `json:"index,omitempty" msgpack:"index,omitempty"`

	// Visible is the flag value for MsgSetVisible.
	Visible *bool `json:"visible,omitempty" msgpack:"visible,omitempty"`

	// NewID is the replacement id for MsgRename.
	NewID string `json:"newId,omitempty" msgpack:"newId,omitempty"`

	// Name is the new label for MsgSetDisplayName.
	Name string `json:"name,omitempty" msgpack:"name,omitempty"`

	// Fields is the partial data for MsgUpdateFields.
	Fields map[string]any `json:"fields,omitempty" msgpack:"fields,omitempty"`

	// Outcome summarizes what a reply's operation did ("added",
	// "moved", "none", ...).
	Outcome string `json:"outcome,omitempty" msgpack:"outcome,omitempty"`

	// Error carries a non-fatal failure description in replies.
	Error string `json:"error,omitempty" msgpack:"error,omitempty"`

	// Patch carries preview list operations for MsgPatch.
	Patch []render.PatchOp `json:"patch,omitempty" msgpack:"patch,omitempty"`
}
