package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pagecraft/pagecraft/pkg/document"
)

// MemoryStore keeps serialized pages in process memory. Suitable for tests
// and single-node development. Pages are stored as serialized bytes, so a
// caller mutating a document after Save never changes the stored copy.
type MemoryStore struct {
	serializer Serializer

	mu     sync.RWMutex
	pages  map[string]memoryPage // by page id
	bySlug map[string]string     // slug -> id
	closed bool
}

type memoryPage struct {
	data      []byte
	slug      string
	title     string
	active    bool
	count     int
	updatedAt time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMemorySerializer overrides the storage format.
func WithMemorySerializer(s Serializer) MemoryOption {
	return func(ms *MemoryStore) {
		ms.serializer = s
	}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	ms := &MemoryStore{
		serializer: NewMsgPackSerializer(),
		pages:      make(map[string]memoryPage),
		bySlug:     make(map[string]string),
	}
	for _, opt := range opts {
		opt(ms)
	}
	return ms
}

// Save persists the whole document last-write-wins.
func (ms *MemoryStore) Save(ctx context.Context, doc *document.Document) error {
	data, err := ms.serializer.Marshal(doc)
	if err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.closed {
		return ErrStoreClosed
	}

	if old, ok := ms.pages[doc.ID]; ok && old.slug != doc.Slug {
		delete(ms.bySlug, old.slug)
	}
	ms.pages[doc.ID] = memoryPage{
		data:      data,
		slug:      doc.Slug,
		title:     doc.Title,
		active:    doc.Active,
		count:     len(doc.Components),
		updatedAt: time.Now(),
	}
	ms.bySlug[doc.Slug] = doc.ID
	return nil
}

// Load returns the page with the given id.
func (ms *MemoryStore) Load(ctx context.Context, id string) (*document.Document, error) {
	ms.mu.RLock()
	page, ok := ms.pages[id]
	closed := ms.closed
	ms.mu.RUnlock()

	if closed {
		return nil, ErrStoreClosed
	}
	if !ok {
		return nil, ErrNotFound
	}

	doc, err := ms.serializer.Unmarshal(page.data)
	if err != nil {
		return nil, err
	}
	return normalizeLoaded(doc), nil
}

// LoadBySlug returns the page with the given slug.
func (ms *MemoryStore) LoadBySlug(ctx context.Context, slug string) (*document.Document, error) {
	ms.mu.RLock()
	id, ok := ms.bySlug[slug]
	ms.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return ms.Load(ctx, id)
}

// Delete removes a page.
func (ms *MemoryStore) Delete(ctx context.Context, id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.closed {
		return ErrStoreClosed
	}
	page, ok := ms.pages[id]
	if !ok {
		return ErrNotFound
	}
	delete(ms.pages, id)
	delete(ms.bySlug, page.slug)
	return nil
}

// List returns summaries sorted by id for stable output.
func (ms *MemoryStore) List(ctx context.Context) ([]PageInfo, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	if ms.closed {
		return nil, ErrStoreClosed
	}

	out := make([]PageInfo, 0, len(ms.pages))
	for id, page := range ms.pages {
		out = append(out, PageInfo{
			ID:         id,
			Title:      page.title,
			Slug:       page.slug,
			Active:     page.active,
			Components: page.count,
			UpdatedAt:  page.updatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Close marks the store closed; further operations fail.
func (ms *MemoryStore) Close() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.closed = true
	return nil
}
