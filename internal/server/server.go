// Package server exposes the builder over HTTP: the public page renderer,
// the editor preview, the palette API, and the websocket endpoint that
// carries edit messages into a builder session.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pagecraft/pagecraft/internal/config"
	"github.com/pagecraft/pagecraft/pkg/document"
	"github.com/pagecraft/pagecraft/pkg/logging"
	"github.com/pagecraft/pagecraft/pkg/metrics"
	"github.com/pagecraft/pagecraft/pkg/protocol"
	"github.com/pagecraft/pagecraft/pkg/registry"
	"github.com/pagecraft/pagecraft/pkg/render"
	"github.com/pagecraft/pagecraft/pkg/store"
)

const shutdownTimeout = 10 * time.Second

// Server serves pages and editing sessions.
type Server struct {
	log      logging.Logger
	store    store.Store
	registry *registry.Registry
	resolver render.Resolver
	codec    protocol.Codec
	metrics  *metrics.Metrics

	allowedOrigins []string
	httpServer     *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(log logging.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithResolver sets the entity resolver used for rendering.
func WithResolver(r render.Resolver) Option {
	return func(s *Server) {
		s.resolver = r
	}
}

// WithCodec sets the websocket wire format.
func WithCodec(c protocol.Codec) Option {
	return func(s *Server) {
		s.codec = c
	}
}

// WithAllowedOrigins permits cross-origin websocket connections from the
// given hosts.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

// New builds a server listening on cfg.Addr.
func New(cfg *config.Config, st store.Store, reg *registry.Registry, opts ...Option) *Server {
	s := &Server{
		log:      logging.NopLogger{},
		store:    st,
		registry: reg,
		resolver: render.NopResolver{},
		codec:    &protocol.JSONCodec{},
		metrics:  metrics.New("pagecraft"),
	}
	if c, err := protocol.ForName(cfg.Codec); err == nil {
		s.codec = c
	}
	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(logging.RequestLogger(s.log))

	r.Get("/p/{slug}", s.handlePublicPage)
	r.Get("/edit/{slug}", s.handleEditPreview)
	r.Get("/ws/edit/{slug}", s.handleEditSocket)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/palette", s.handlePalette)
		r.Get("/pages", s.handleListPages)
		r.Post("/pages", s.handleCreatePage)
		r.Delete("/pages/{id}", s.handleDeletePage)
	})

	return r
}

// Start runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", logging.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// handlePublicPage renders the published page for visitors. Inactive and
// missing pages are both a 404; visitors cannot tell them apart.
func (s *Server) handlePublicPage(w http.ResponseWriter, r *http.Request) {
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
	if !doc.Active {
		http.NotFound(w, r)
		return
	}
	s.writePage(r.Context(), w, doc)
}

// handleEditPreview renders the same markup the public page gets, for the
// builder canvas. Inactive pages stay editable.
func (s *Server) handleEditPreview(w http.ResponseWriter, r *http.Request) {
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
	s.writePage(r.Context(), w, doc)
}

func (s *Server) writePage(ctx context.Context, w http.ResponseWriter, doc *document.Document) {
	node := render.RenderDocument(ctx, doc, s.resolver)
	s.metrics.RendersTotal.Inc()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageShell, html.EscapeString(doc.Title), node.HTML())
}

type paletteType struct {
	TypeTag     string `json:"type"`
	DisplayName string `json:"displayName"`
	Enabled     bool   `json:"enabled"`
	Icon        string `json:"icon,omitempty"`
	ColorToken  string `json:"colorToken,omitempty"`
}

type paletteCategory struct {
	Name  string        `json:"name"`
	Types []paletteType `json:"types"`
}

// handlePalette returns the component palette grouped by category, in
// registration order.
func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	cats := s.registry.ListByCategory()
	out := make([]paletteCategory, 0, len(cats))
	for _, cat := range cats {
		pc := paletteCategory{Name: cat.Name, Types: make([]paletteType, 0, len(cat.Types))}
		for _, d := range cat.Types {
			pc.Types = append(pc.Types, paletteType{
				TypeTag:     d.TypeTag,
				DisplayName: d.DisplayName,
				Enabled:     d.Enabled,
				Icon:        d.Icon,
				ColorToken:  d.ColorToken,
			})
		}
		out = append(out, pc)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := s.store.List(r.Context())
	if err != nil {
		s.log.Error("list pages", logging.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if pages == nil {
		pages = []store.PageInfo{}
	}
	writeJSON(w, http.StatusOK, pages)
}

type createPageRequest struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

func (s *Server) handleCreatePage(w http.ResponseWriter, r *http.Request) {
	var req createPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID == "" || req.Slug == "" {
		http.Error(w, "id and slug are required", http.StatusBadRequest)
		return
	}

	doc := document.New(req.ID, req.Title, req.Slug)
	if err := s.store.Save(r.Context(), doc); err != nil {
		s.log.Error("create page", logging.String("page", req.ID), logging.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": doc.ID, "slug": doc.Slug})
}

func (s *Server) handleDeletePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.log.Error("delete page", logging.String("page", id), logging.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

const pageShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
</head>
<body>
%s
</body>
</html>
`
