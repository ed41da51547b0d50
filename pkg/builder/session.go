// Package builder runs one page-editing session.
//
// A Session owns the in-memory document plus the stateful pieces around
// it: the edit operations, the drag controller, and the selection state.
// Protocol messages are applied one at a time under a single lock — the
// editing model is single-writer, and the lock only serializes transport
// goroutines delivering events.
//
// Operation failures are local and non-fatal: the document is left
// untouched and the failure travels back as an error reply for the UI to
// surface as a notification. Nothing here ever tears down the session.
package builder

import (
	"context"
	"fmt"
	"sync"

	"github.com/pagecraft/pagecraft/pkg/document"
	"github.com/pagecraft/pagecraft/pkg/dragdrop"
	"github.com/pagecraft/pagecraft/pkg/idgen"
	"github.com/pagecraft/pagecraft/pkg/logging"
	"github.com/pagecraft/pagecraft/pkg/protocol"
	"github.com/pagecraft/pagecraft/pkg/registry"
	"github.com/pagecraft/pagecraft/pkg/render"
	"github.com/pagecraft/pagecraft/pkg/selection"
	"github.com/pagecraft/pagecraft/pkg/store"
)

// Session is one live editing session over one page document.
type Session struct {
	mu sync.Mutex

	log      logging.Logger
	store    store.Store
	registry *registry.Registry
	resolver render.Resolver

	doc    *document.Document
	editor *document.Editor
	drag   *dragdrop.Controller
	sel    selection.State
	dirty  bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger.
func WithLogger(log logging.Logger) SessionOption {
	return func(s *Session) {
		s.log = log
	}
}

// WithResolver sets the reference resolver used for preview rendering.
func WithResolver(r render.Resolver) SessionOption {
	return func(s *Session) {
		s.resolver = r
	}
}

// WithIDGenerator overrides the component id strategy.
func WithIDGenerator(gen idgen.Generator) SessionOption {
	return func(s *Session) {
		s.editor = document.NewEditor(s.doc, s.registry, document.WithIDGenerator(gen))
		s.drag = dragdrop.NewController(s.registry, s.editor)
	}
}

// New starts a session over an existing document.
func New(st store.Store, reg *registry.Registry, doc *document.Document, opts ...SessionOption) *Session {
	s := &Session{
		log:      logging.NopLogger{},
		store:    st,
		registry: reg,
		resolver: render.NopResolver{},
		doc:      doc,
	}
	s.editor = document.NewEditor(doc, reg)
	s.drag = dragdrop.NewController(reg, s.editor)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the page with the given id from the store and starts a
// session over it.
func Open(ctx context.Context, st store.Store, reg *registry.Registry, id string, opts ...SessionOption) (*Session, error) {
	doc, err := st.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("builder: open page %s: %w", id, err)
	}
	return New(st, reg, doc, opts...), nil
}

// Apply processes one protocol message and returns the reply. Mutating
// messages that succeed include the preview patch ops needed to update the
// canvas; failed operations return an error reply and change nothing.
func (s *Session) Apply(ctx context.Context, msg *protocol.Message) *protocol.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := render.Fragments(ctx, s.doc, s.resolver)

	reply, mutated, err := s.dispatch(ctx, msg)
	if err != nil {
		s.log.Warn("operation failed",
			logging.String("type", msg.Type.String()),
			logging.Err(err),
		)
		return &protocol.Message{Type: protocol.MsgError, Ref: msg.Ref, Error: err.Error()}
	}

	// Selection is a pure derivation of the document; recompute after
	// every committed mutation so a deleted target closes the panel and
	// a changed one refreshes the snapshot.
	if mutated {
		s.sel = selection.Derive(s.doc, s.sel)
		s.dirty = true
		reply.Patch = render.ComputePatch(before, render.Fragments(ctx, s.doc, s.resolver))
	}

	reply.Ref = msg.Ref
	return reply
}

// dispatch runs the operation for one message. The bool reports whether
// the document may have changed.
func (s *Session) dispatch(ctx context.Context, msg *protocol.Message) (*protocol.Message, bool, error) {
	reply := &protocol.Message{Type: protocol.MsgReply}

	switch msg.Type {
	case protocol.MsgAdd:
		comp, err := s.editor.Add(msg.TypeTag)
		if err != nil {
			return nil, false, err
		}
		// A freshly added component opens for editing immediately.
		s.sel = selection.Select(s.doc, comp.ID)
		reply.ComponentID = comp.ID
		reply.Outcome = dragdrop.OutcomeAdded.String()
		return reply, true, nil

	case protocol.MsgUpdateFields:
		if err := s.editor.UpdateFields(msg.ComponentID, msg.Fields); err != nil {
			return nil, false, err
		}
		reply.ComponentID = msg.ComponentID
		return reply, true, nil

	case protocol.MsgRename:
		if err := s.editor.Rename(msg.ComponentID, msg.NewID); err != nil {
			return nil, false, err
		}
		if s.sel.SelectedID == msg.ComponentID {
			s.sel = selection.Select(s.doc, msg.NewID)
		}
		reply.ComponentID = msg.NewID
		return reply, true, nil

	case protocol.MsgSetDisplayName:
		if err := s.editor.SetDisplayName(msg.ComponentID, msg.Name); err != nil {
			return nil, false, err
		}
		reply.ComponentID = msg.ComponentID
		return reply, true, nil

	case protocol.MsgRemove:
		if err := s.editor.Remove(msg.ComponentID); err != nil {
			return nil, false, err
		}
		reply.ComponentID = msg.ComponentID
		return reply, true, nil

	case protocol.MsgSetVisible:
		visible := true
		if msg.Visible != nil {
			visible = *msg.Visible
		}
		if err := s.editor.SetVisible(msg.ComponentID, visible); err != nil {
			return nil, false, err
		}
		reply.ComponentID = msg.ComponentID
		return reply, true, nil

	case protocol.MsgMoveUp:
		if err := s.editor.MoveUp(msg.ComponentID); err != nil {
			return nil, false, err
		}
		return reply, true, nil

	case protocol.MsgMoveDown:
		if err := s.editor.MoveDown(msg.ComponentID); err != nil {
			return nil, false, err
		}
		return reply, true, nil

	case protocol.MsgMoveTo:
		if err := s.editor.MoveTo(msg.ComponentID, msg.Index); err != nil {
			return nil, false, err
		}
		return reply, true, nil

	case protocol.MsgSelect:
		s.sel = selection.Select(s.doc, msg.ComponentID)
		reply.ComponentID = s.sel.SelectedID
		return reply, false, nil

	case protocol.MsgDeselect:
		s.sel = selection.Clear()
		return reply, false, nil

	case protocol.MsgDragStart:
		picked := msg.ComponentID
		if picked == "" {
			picked = msg.TypeTag
		}
		if !s.drag.Start(picked) {
			// Stale id or a session already live: quietly cancelled.
			reply.Outcome = dragdrop.OutcomeNone.String()
		}
		return reply, false, nil

	case protocol.MsgDragOver:
		s.drag.Over(msg.TargetID)
		return reply, false, nil

	case protocol.MsgDragEnd:
		res, err := s.drag.End(msg.TargetID)
		if err != nil {
			return nil, false, err
		}
		reply.Outcome = res.Outcome.String()
		reply.ComponentID = res.ComponentID
		if res.Outcome == dragdrop.OutcomeAdded {
			s.sel = selection.Select(s.doc, res.ComponentID)
		}
		return reply, res.Outcome != dragdrop.OutcomeNone, nil

	case protocol.MsgDragCancel:
		s.drag.Cancel()
		return reply, false, nil

	case protocol.MsgSave:
		if err := s.store.Save(ctx, s.doc); err != nil {
			// The unsaved document stays intact for retry.
			return nil, false, fmt.Errorf("save failed: %w", err)
		}
		s.dirty = false
		s.log.Info("page saved",
			logging.String("page", s.doc.ID),
			logging.Int("components", s.doc.Len()),
		)
		return reply, false, nil

	default:
		return nil, false, fmt.Errorf("%w: %s", protocol.ErrInvalidMessage, msg.Type)
	}
}

// Save persists the document outside the message path.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, s.doc); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Preview renders the current document through the same interpreter the
// public page uses.
func (s *Session) Preview(ctx context.Context) *render.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return render.RenderDocument(ctx, s.doc, s.resolver)
}

// Document returns a deep copy of the current document.
func (s *Session) Document() *document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Selection returns the current selection state.
func (s *Session) Selection() selection.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// Dirty reports whether there are unsaved changes.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Dragging reports whether a drag session is live.
func (s *Session) Dragging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drag.Dragging()
}
