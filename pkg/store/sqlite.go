package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/pagecraft/pagecraft/pkg/document"
)

const pagesSchema = `
CREATE TABLE IF NOT EXISTS pages (
	id         TEXT PRIMARY KEY,
	slug       TEXT NOT NULL UNIQUE,
	title      TEXT NOT NULL DEFAULT '',
	active     INTEGER NOT NULL DEFAULT 1,
	content    BLOB NOT NULL,
	components INTEGER NOT NULL DEFAULT 0,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pages_slug ON pages(slug);
`

// SQLiteStore persists pages in a SQLite database. The component list is
// stored as one serialized blob per page; metadata columns exist for
// listing without deserializing.
type SQLiteStore struct {
	db         *sql.DB
	serializer Serializer
}

// SQLiteOption configures a SQLiteStore.
type SQLiteOption func(*SQLiteStore)

// WithSQLiteSerializer overrides the blob format.
func WithSQLiteSerializer(s Serializer) SQLiteOption {
	return func(st *SQLiteStore) {
		st.serializer = s
	}
}

// NewSQLiteStore opens (and if necessary initializes) the database at path.
func NewSQLiteStore(path string, opts ...SQLiteOption) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: connect %s: %w", path, err)
	}
	if _, err := db.Exec(pagesSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}

	st := &SQLiteStore{db: db, serializer: NewMsgPackSerializer()}
	for _, opt := range opts {
		opt(st)
	}
	return st, nil
}

// Save upserts the whole page.
func (st *SQLiteStore) Save(ctx context.Context, doc *document.Document) error {
	data, err := st.serializer.Marshal(doc)
	if err != nil {
		return err
	}

	_, err = st.db.ExecContext(ctx, `
		INSERT INTO pages (id, slug, title, active, content, components, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			slug = excluded.slug,
			title = excluded.title,
			active = excluded.active,
			content = excluded.content,
			components = excluded.components,
			updated_at = excluded.updated_at`,
		doc.ID, doc.Slug, doc.Title, boolToInt(doc.Active), data,
		len(doc.Components), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("store: save page %s: %w", doc.ID, err)
	}
	return nil
}

// Load returns the page with the given id.
func (st *SQLiteStore) Load(ctx context.Context, id string) (*document.Document, error) {
	return st.loadWhere(ctx, "id = ?", id)
}

// LoadBySlug returns the page with the given slug.
func (st *SQLiteStore) LoadBySlug(ctx context.Context, slug string) (*document.Document, error) {
	return st.loadWhere(ctx, "slug = ?", slug)
}

func (st *SQLiteStore) loadWhere(ctx context.Context, cond string, arg any) (*document.Document, error) {
	var data []byte
	err := st.db.QueryRowContext(ctx,
		"SELECT content FROM pages WHERE "+cond, arg).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load page: %w", err)
	}

	doc, err := st.serializer.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return normalizeLoaded(doc), nil
}

// Delete removes a page.
func (st *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := st.db.ExecContext(ctx, "DELETE FROM pages WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("store: delete page %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns summaries of all stored pages, newest first.
func (st *SQLiteStore) List(ctx context.Context) ([]PageInfo, error) {
	rows, err := st.db.QueryContext(ctx, `
		SELECT id, slug, title, active, components, updated_at
		FROM pages ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list pages: %w", err)
	}
	defer rows.Close()

	var out []PageInfo
	for rows.Next() {
		var info PageInfo
		var active int
		var updated string
		if err := rows.Scan(&info.ID, &info.Slug, &info.Title, &active, &info.Components, &updated); err != nil {
			return nil, err
		}
		info.Active = active != 0
		if ts, err := time.Parse(time.RFC3339, updated); err == nil {
			info.UpdatedAt = ts
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// Close closes the database.
func (st *SQLiteStore) Close() error {
	return st.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
