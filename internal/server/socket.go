package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"

	"github.com/pagecraft/pagecraft/pkg/builder"
	"github.com/pagecraft/pagecraft/pkg/logging"
	"github.com/pagecraft/pagecraft/pkg/protocol"
	"github.com/pagecraft/pagecraft/pkg/store"
)

// maxMessageSize bounds one edit message. Field payloads are small; rich
// text is the largest thing that travels.
const maxMessageSize = 1 << 20

// handleEditSocket upgrades to a websocket and runs one editing session
// over it. One connection owns one session; the document lives in memory
// until a save message persists it.
func (s *Server) handleEditSocket(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	doc, err := s.store.LoadBySlug(r.Context(), slug)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.log.Error("load page", logging.String("slug", slug), logging.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.allowedOrigins,
	})
	if err != nil {
		s.log.Warn("websocket accept", logging.String("slug", slug), logging.Err(err))
		return
	}
	conn.SetReadLimit(maxMessageSize)

	sess := builder.New(s.store, s.registry, doc,
		builder.WithLogger(s.log.With(logging.String("page", doc.ID))),
		builder.WithResolver(s.resolver),
	)

	s.metrics.SessionsTotal.Inc()
	s.metrics.SessionsActive.Inc()
	defer s.metrics.SessionsActive.Dec()

	s.log.Info("edit session opened", logging.String("page", doc.ID))
	s.serveSession(r.Context(), conn, sess)
	s.log.Info("edit session closed",
		logging.String("page", doc.ID),
		logging.Bool("dirty", sess.Dirty()),
	)
}

// serveSession pumps messages until the client goes away. Decode failures
// get an error reply and the connection stays up; only transport errors
// end the loop.
func (s *Server) serveSession(ctx context.Context, conn *websocket.Conn, sess *builder.Session) {
	defer conn.Close(websocket.StatusNormalClosure, "session over")

	msgType := websocket.MessageText
	if s.codec.Name() == "msgpack" {
		msgType = websocket.MessageBinary
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			if ctx.Err() != nil {
				return
			}
			s.log.Debug("websocket read", logging.Err(err))
			return
		}

		msg, err := s.codec.Decode(data)
		if err != nil {
			s.writeReply(ctx, conn, msgType, &protocol.Message{
				Type:  protocol.MsgError,
				Error: protocol.ErrInvalidMessage.Error(),
			})
			continue
		}

		start := time.Now()
		reply := sess.Apply(ctx, msg)
		s.metrics.MessagesReceived.Inc(msg.Type.String())
		s.metrics.ApplyDuration.ObserveDuration(time.Since(start))
		if reply.Type == protocol.MsgError {
			s.metrics.OperationErrors.Inc(msg.Type.String())
		}
		if len(reply.Patch) > 0 {
			s.metrics.PatchOps.Observe(float64(len(reply.Patch)))
		}
		if msg.Type == protocol.MsgSave && reply.Type == protocol.MsgReply {
			s.metrics.PagesSaved.Inc()
		}
		if !s.writeReply(ctx, conn, msgType, reply) {
			return
		}
	}
}

func (s *Server) writeReply(ctx context.Context, conn *websocket.Conn, msgType websocket.MessageType, reply *protocol.Message) bool {
	data, err := s.codec.Encode(reply)
	if err != nil {
		s.log.Error("encode reply", logging.Err(err))
		return true
	}
	if err := conn.Write(ctx, msgType, data); err != nil {
		s.log.Debug("websocket write", logging.Err(err))
		return false
	}
	return true
}
