package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagecraft/pagecraft/pkg/document"
)

func doc(t *testing.T) *document.Document {
	t.Helper()
	d := document.New("p1", "Test", "test")
	d.Components = []document.Component{
		{ID: "a", TypeTag: "text", Order: 0, Visible: true, Data: map[string]any{"content": "<p>a</p>"}},
		{ID: "b", TypeTag: "hero", Order: 1, Visible: true, Data: map[string]any{"title": "Hi"}},
	}
	return d
}

func TestSelect(t *testing.T) {
	d := doc(t)

	s := Select(d, "a")
	assert.Equal(t, "a", s.SelectedID)
	assert.True(t, s.EditingOpen)
	require.NotNil(t, s.Snapshot)
	assert.Equal(t, "<p>a</p>", s.Snapshot.Data["content"])

	assert.Equal(t, State{}, Select(d, "ghost"))
}

func TestSnapshotIsDetached(t *testing.T) {
	d := doc(t)
	s := Select(d, "a")

	d.Find("a").Data["content"] = "<p>edited</p>"
	assert.Equal(t, "<p>a</p>", s.Snapshot.Data["content"])
}

func TestDeriveClearsWhenSelectedRemoved(t *testing.T) {
	d := doc(t)
	s := Select(d, "a")

	d.Components = d.Components[1:]
	d.Renormalize()

	next := Derive(d, s)
	assert.Equal(t, State{}, next)
	assert.Empty(t, next.SelectedID)
	assert.False(t, next.EditingOpen)
}

func TestDeriveRefreshesStaleSnapshot(t *testing.T) {
	d := doc(t)
	s := Select(d, "b")

	d.Find("b").Data["title"] = "Updated"
	require.True(t, Stale(d, s))

	next := Derive(d, s)
	assert.Equal(t, "b", next.SelectedID)
	assert.True(t, next.EditingOpen)
	assert.Equal(t, "Updated", next.Snapshot.Data["title"])
	assert.False(t, Stale(d, next))
}

func TestDeriveIdempotent(t *testing.T) {
	d := doc(t)
	s := Select(d, "a")

	once := Derive(d, s)
	twice := Derive(d, once)
	assert.Equal(t, once, twice)

	// And stable when nothing is selected.
	assert.Equal(t, State{}, Derive(d, State{}))
}

func TestDeriveSurvivesReorder(t *testing.T) {
	d := doc(t)
	s := Select(d, "a")

	d.Components[0].Order, d.Components[1].Order = 1, 0
	d.Renormalize()

	next := Derive(d, s)
	assert.Equal(t, "a", next.SelectedID)
	assert.True(t, next.EditingOpen)
	// Order changed, so the snapshot refreshed to match.
	assert.Equal(t, 1, next.Snapshot.Order)
}

func TestStaleOnRemovedComponent(t *testing.T) {
	d := doc(t)
	s := Select(d, "a")
	d.Components = d.Components[1:]

	assert.True(t, Stale(d, s))
	assert.False(t, Stale(d, State{}))
}
