// Package resolver looks up referenced entities in SQLite for render-time
// resolution of reference-bearing blocks.
package resolver

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/pagecraft/pagecraft/pkg/render"
)

const entitiesSchema = `
CREATE TABLE IF NOT EXISTS entities (
	id        TEXT NOT NULL,
	kind      TEXT NOT NULL,
	title     TEXT NOT NULL DEFAULT '',
	summary   TEXT NOT NULL DEFAULT '',
	image_url TEXT NOT NULL DEFAULT '',
	link_url  TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (kind, id)
);
`

// SQLiteResolver implements render.Resolver over an entities table. Ids
// that do not exist are simply absent from the result; the interpreter
// drops them.
type SQLiteResolver struct {
	db    *sql.DB
	owned bool
}

// New opens (and if necessary initializes) the entity database at path.
func New(path string) (*SQLiteResolver, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("resolver: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("resolver: connect %s: %w", path, err)
	}
	if _, err := db.Exec(entitiesSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("resolver: init schema: %w", err)
	}
	return &SQLiteResolver{db: db, owned: true}, nil
}

// FromDB wraps an existing database handle. The caller keeps ownership;
// Close is a no-op for wrapped handles.
func FromDB(db *sql.DB) (*SQLiteResolver, error) {
	if _, err := db.Exec(entitiesSchema); err != nil {
		return nil, fmt.Errorf("resolver: init schema: %w", err)
	}
	return &SQLiteResolver{db: db}, nil
}

// Resolve returns the entities of the given kind matching ids, in database
// order. Missing ids are omitted.
func (r *SQLiteResolver) Resolve(ctx context.Context, kind string, ids []string) ([]render.Entity, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	args := make([]any, 0, len(ids)+1)
	args = append(args, kind)
	for _, id := range ids {
		args = append(args, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, title, summary, image_url, link_url
		FROM entities WHERE kind = ? AND id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("resolver: query %s: %w", kind, err)
	}
	defer rows.Close()

	var out []render.Entity
	for rows.Next() {
		var e render.Entity
		if err := rows.Scan(&e.ID, &e.Kind, &e.Title, &e.Summary, &e.ImageURL, &e.LinkURL); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Put upserts one entity.
func (r *SQLiteResolver) Put(ctx context.Context, e render.Entity) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO entities (id, kind, title, summary, image_url, link_url)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(kind, id) DO UPDATE SET
			title = excluded.title,
			summary = excluded.summary,
			image_url = excluded.image_url,
			link_url = excluded.link_url`,
		e.ID, e.Kind, e.Title, e.Summary, e.ImageURL, e.LinkURL,
	)
	if err != nil {
		return fmt.Errorf("resolver: put %s/%s: %w", e.Kind, e.ID, err)
	}
	return nil
}

// Delete removes one entity. Deleting an id that is still referenced is
// allowed; affected blocks render without it.
func (r *SQLiteResolver) Delete(ctx context.Context, kind, id string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM entities WHERE kind = ? AND id = ?", kind, id)
	if err != nil {
		return fmt.Errorf("resolver: delete %s/%s: %w", kind, id, err)
	}
	return nil
}

// Close closes the database if this resolver opened it. Handles wrapped
// via FromDB stay open for their owner.
func (r *SQLiteResolver) Close() error {
	if !r.owned {
		return nil
	}
	return r.db.Close()
}
