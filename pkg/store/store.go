// Package store persists page documents. The document is the unit of
// persistence: Save writes the whole ordered component list last-write-wins,
// and Load returns a fresh copy. There is no partial or incremental write
// path, so a failed save can never leave a half-written page behind.
//
// Backends: in-memory (single node, tests) and SQLite.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/pagecraft/pagecraft/pkg/document"
)

// Common store errors.
var (
	ErrNotFound    = errors.New("page not found")
	ErrStoreClosed = errors.New("store is closed")
	ErrInvalidData = errors.New("invalid page data")
)

// PageInfo is the listing row for one stored page.
type PageInfo struct {
	ID         string
	Title      string
	Slug       string
	Active     bool
	Components int
	UpdatedAt  time.Time
}

// Store is the persistence interface for page documents.
type Store interface {
	// Save persists the whole document, replacing any prior version.
	// The in-memory document is never mutated, so a failed save leaves
	// it intact for retry.
	Save(ctx context.Context, doc *document.Document) error

	// Load returns the page with the given id.
	Load(ctx context.Context, id string) (*document.Document, error)

	// LoadBySlug returns the page with the given slug, the public
	// renderer's lookup path.
	LoadBySlug(ctx context.Context, slug string) (*document.Document, error)

	// Delete removes a page.
	Delete(ctx context.Context, id string) error

	// List returns summaries of all stored pages.
	List(ctx context.Context) ([]PageInfo, error)

	// Close releases backend resources.
	Close() error
}

// normalizeLoaded restores invariants on a freshly deserialized document.
// Stored order values are advisory: when they disagree with array position
// the loader renormalizes rather than trusting them.
func normalizeLoaded(doc *document.Document) *document.Document {
	doc.Renormalize()
	return doc
}
