package resolver

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagecraft/pagecraft/pkg/render"
)

func newResolver(t *testing.T) *SQLiteResolver {
	t.Helper()
	r, err := New(filepath.Join(t.TempDir(), "entities.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestResolveOmitsMissing(t *testing.T) {
	r := newResolver(t)
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, render.Entity{ID: "p1", Kind: "project", Title: "First"}))
	require.NoError(t, r.Put(ctx, render.Entity{ID: "p2", Kind: "project", Title: "Second"}))

	got, err := r.Resolve(ctx, "project", []string{"p2", "ghost", "p1"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	titles := map[string]string{}
	for _, e := range got {
		titles[e.ID] = e.Title
	}
	assert.Equal(t, map[string]string{"p1": "First", "p2": "Second"}, titles)
}

func TestResolveIsKindScoped(t *testing.T) {
	r := newResolver(t)
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, render.Entity{ID: "x", Kind: "project", Title: "Project X"}))
	require.NoError(t, r.Put(ctx, render.Entity{ID: "x", Kind: "service", Title: "Service X"}))

	got, err := r.Resolve(ctx, "service", []string{"x"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Service X", got[0].Title)
}

func TestResolveEmptyIDs(t *testing.T) {
	r := newResolver(t)
	got, err := r.Resolve(context.Background(), "project", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPutUpsertsAndDelete(t *testing.T) {
	r := newResolver(t)
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, render.Entity{ID: "p1", Kind: "project", Title: "Old"}))
	require.NoError(t, r.Put(ctx, render.Entity{ID: "p1", Kind: "project", Title: "New", ImageURL: "/img.png"}))

	got, err := r.Resolve(ctx, "project", []string{"p1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "New", got[0].Title)
	assert.Equal(t, "/img.png", got[0].ImageURL)

	require.NoError(t, r.Delete(ctx, "project", "p1"))
	got, err = r.Resolve(ctx, "project", []string{"p1"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFromDBLeavesHandleOpen(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "shared.db"))
	require.NoError(t, err)
	defer db.Close()

	r, err := FromDB(db)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	// The owner's handle must survive the resolver's Close.
	require.NoError(t, db.Ping())

	r2, err := FromDB(db)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, r2.Put(ctx, render.Entity{ID: "p1", Kind: "project", Title: "Still open"}))

	got, err := r2.Resolve(ctx, "project", []string{"p1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Still open", got[0].Title)
}

func TestInterpreterOrdersResolved(t *testing.T) {
	r := newResolver(t)
	ctx := context.Background()
	for _, e := range []render.Entity{
		{ID: "a", Kind: "project", Title: "A"},
		{ID: "b", Kind: "project", Title: "B"},
		{ID: "c", Kind: "project", Title: "C"},
	} {
		require.NoError(t, r.Put(ctx, e))
	}

	var _ render.Resolver = r
	got, err := r.Resolve(ctx, "project", []string{"c", "a"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
