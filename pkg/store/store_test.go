package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagecraft/pagecraft/pkg/document"
)

func samplePage() *document.Document {
	doc := document.New("p1", "Launch page", "launch")
	doc.Components = []document.Component{
		{ID: "h", TypeTag: "hero", Order: 0, Visible: true, Data: map[string]any{
			"title": "Hello", "gradientStops": []any{"#000", "#fff"},
		}},
		{ID: "t", TypeTag: "text", Order: 1, Visible: false, Data: map[string]any{
			"content": "<p>Body</p>",
		}},
	}
	return doc
}

// openStores returns every backend under test, sharing one test surface.
func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "pages.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	mem := NewMemoryStore()
	t.Cleanup(func() { mem.Close() })

	return map[string]Store{"memory": mem, "sqlite": sqlite}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			doc := samplePage()
			require.NoError(t, st.Save(ctx, doc))

			byID, err := st.Load(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, doc, byID)

			bySlug, err := st.LoadBySlug(ctx, "launch")
			require.NoError(t, err)
			assert.Equal(t, doc, bySlug)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, err := st.Load(ctx, "ghost")
			assert.ErrorIs(t, err, ErrNotFound)
			_, err = st.LoadBySlug(ctx, "ghost")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestSaveIsLastWriteWins(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			doc := samplePage()
			require.NoError(t, st.Save(ctx, doc))

			doc.Title = "Renamed"
			doc.Components = doc.Components[:1]
			require.NoError(t, st.Save(ctx, doc))

			got, err := st.Load(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, "Renamed", got.Title)
			assert.Len(t, got.Components, 1)
		})
	}
}

func TestSavedCopyDetachedFromLiveDocument(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			doc := samplePage()
			require.NoError(t, st.Save(ctx, doc))

			// Mutating after save must not leak into the stored copy.
			doc.Components[0].Data["title"] = "Mutated"

			got, err := st.Load(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, "Hello", got.Components[0].Data["title"])
		})
	}
}

func TestLoaderRenormalizesBrokenOrder(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			doc := samplePage()
			// Simulate a corrupted persisted copy: sparse, shuffled orders.
			doc.Components[0].Order = 9
			doc.Components[1].Order = 3
			require.NoError(t, st.Save(ctx, doc))

			got, err := st.Load(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, "t", got.Components[0].ID)
			assert.Equal(t, 0, got.Components[0].Order)
			assert.Equal(t, 1, got.Components[1].Order)
		})
	}
}

func TestDelete(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, st.Save(ctx, samplePage()))
			require.NoError(t, st.Delete(ctx, "p1"))

			_, err := st.Load(ctx, "p1")
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, st.Delete(ctx, "p1"), ErrNotFound)
		})
	}
}

func TestList(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, st.Save(ctx, samplePage()))

			other := document.New("p2", "Second", "second")
			other.Active = false
			require.NoError(t, st.Save(ctx, other))

			infos, err := st.List(ctx)
			require.NoError(t, err)
			require.Len(t, infos, 2)

			byID := make(map[string]PageInfo)
			for _, info := range infos {
				byID[info.ID] = info
			}
			assert.Equal(t, "launch", byID["p1"].Slug)
			assert.Equal(t, 2, byID["p1"].Components)
			assert.True(t, byID["p1"].Active)
			assert.False(t, byID["p2"].Active)
		})
	}
}

func TestSlugReassignment(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			doc := samplePage()
			require.NoError(t, st.Save(ctx, doc))

			doc.Slug = "relaunch"
			require.NoError(t, st.Save(ctx, doc))

			_, err := st.LoadBySlug(ctx, "launch")
			assert.ErrorIs(t, err, ErrNotFound)
			got, err := st.LoadBySlug(ctx, "relaunch")
			require.NoError(t, err)
			assert.Equal(t, "p1", got.ID)
		})
	}
}

func TestMemoryStoreClosed(t *testing.T) {
	ms := NewMemoryStore()
	require.NoError(t, ms.Close())

	ctx := context.Background()
	assert.ErrorIs(t, ms.Save(ctx, samplePage()), ErrStoreClosed)
	_, err := ms.Load(ctx, "p1")
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestMsgPackSerializerCompression(t *testing.T) {
	s := &MsgPackSerializer{CompressionThreshold: 8}
	doc := samplePage()
	doc.Components[1].Data["content"] = "<p>" + strings.Repeat("long ", 500) + "</p>"

	data, err := s.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, byte(1), data[0], "large payloads carry the compression marker")

	got, err := s.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, doc.Components[1].Data["content"], got.Components[1].Data["content"])
}

func TestMsgPackSerializerNoCompression(t *testing.T) {
	s := &MsgPackSerializer{CompressionThreshold: 0}
	data, err := s.Marshal(samplePage())
	require.NoError(t, err)
	assert.Equal(t, byte(0), data[0])

	_, err = s.Unmarshal(nil)
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestJSONSerializerRoundTrip(t *testing.T) {
	s := NewJSONSerializer()
	doc := samplePage()

	data, err := s.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"isActive"`)
	assert.Contains(t, string(data), `"content"`)

	got, err := s.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
	assert.Len(t, got.Components, 2)
}
