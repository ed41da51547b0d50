package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc(ids ...string) *Document {
	d := New("p1", "Test page", "test-page")
	for i, id := range ids {
		d.Components = append(d.Components, Component{
			ID: id, TypeTag: "text", Order: i, Visible: true,
			Data: map[string]any{"content": "<p>" + id + "</p>"},
		})
	}
	return d
}

func orderOf(d *Document) []int {
	out := make([]int, len(d.Components))
	for i, c := range d.Components {
		out[i] = c.Order
	}
	return out
}

func idsOf(d *Document) []string {
	out := make([]string, len(d.Components))
	for i, c := range d.Components {
		out[i] = c.ID
	}
	return out
}

func TestRenormalizeDense(t *testing.T) {
	d := sampleDoc("a", "b", "c")
	// Sparse and shuffled, as a broken persisted copy might look.
	d.Components[0].Order = 7
	d.Components[1].Order = 2
	d.Components[2].Order = 11

	d.Renormalize()

	assert.Equal(t, []string{"b", "a", "c"}, idsOf(d))
	assert.Equal(t, []int{0, 1, 2}, orderOf(d))
}

func TestRenormalizeStableOnTies(t *testing.T) {
	d := sampleDoc("a", "b", "c")
	for i := range d.Components {
		d.Components[i].Order = 0
	}

	d.Renormalize()

	// Equal orders keep prior list position.
	assert.Equal(t, []string{"a", "b", "c"}, idsOf(d))
	assert.Equal(t, []int{0, 1, 2}, orderOf(d))
}

func TestRenormalizeIdempotent(t *testing.T) {
	d := sampleDoc("a", "b", "c")
	d.Components[1].Order = 5

	d.Renormalize()
	once := d.Clone()
	d.Renormalize()

	assert.Equal(t, once, d.Clone())
}

func TestFindAndIndexOf(t *testing.T) {
	d := sampleDoc("a", "b")

	require.NotNil(t, d.Find("b"))
	assert.Equal(t, 1, d.IndexOf("b"))
	assert.Nil(t, d.Find("zzz"))
	assert.Equal(t, -1, d.IndexOf("zzz"))
}

func TestCloneIsDeep(t *testing.T) {
	d := sampleDoc("a")
	c := d.Clone()
	c.Components[0].Data["content"] = "<p>changed</p>"
	c.Components[0].ID = "renamed"

	assert.Equal(t, "<p>a</p>", d.Components[0].Data["content"])
	assert.Equal(t, "a", d.Components[0].ID)
}

func TestCountType(t *testing.T) {
	d := sampleDoc("a", "b")
	d.Components = append(d.Components, Component{ID: "h", TypeTag: "hero", Order: 2})

	assert.Equal(t, 2, d.CountType("text"))
	assert.Equal(t, 1, d.CountType("hero"))
	assert.Equal(t, 0, d.CountType("gallery"))
}
