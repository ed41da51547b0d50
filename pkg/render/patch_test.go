package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frags(pairs ...string) []Fragment {
	out := make([]Fragment, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Fragment{ID: pairs[i], HTML: pairs[i+1]})
	}
	return out
}

func TestComputePatchNoChanges(t *testing.T) {
	prev := frags("a", "<p>a</p>", "b", "<p>b</p>")
	assert.Empty(t, ComputePatch(prev, prev))
}

func TestComputePatchInsert(t *testing.T) {
	prev := frags("a", "<p>a</p>")
	next := frags("a", "<p>a</p>", "b", "<p>b</p>")

	ops := ComputePatch(prev, next)
	require.Len(t, ops, 1)
	assert.Equal(t, PatchInsert, ops[0].Type)
	assert.Equal(t, "b", ops[0].Key)
	assert.Equal(t, 1, ops[0].Index)
	assert.Equal(t, "<p>b</p>", ops[0].HTML)
}

func TestComputePatchDelete(t *testing.T) {
	prev := frags("a", "<p>a</p>", "b", "<p>b</p>")
	next := frags("b", "<p>b</p>")

	ops := ComputePatch(prev, next)
	require.Len(t, ops, 1)
	assert.Equal(t, PatchDelete, ops[0].Type)
	assert.Equal(t, "a", ops[0].Key)
}

func TestComputePatchUpdate(t *testing.T) {
	prev := frags("a", "<p>old</p>")
	next := frags("a", "<p>new</p>")

	ops := ComputePatch(prev, next)
	require.Len(t, ops, 1)
	assert.Equal(t, PatchUpdate, ops[0].Type)
	assert.Equal(t, "<p>new</p>", ops[0].HTML)
}

func TestComputePatchPureReorder(t *testing.T) {
	prev := frags("a", "<p>a</p>", "b", "<p>b</p>", "c", "<p>c</p>")
	next := frags("c", "<p>c</p>", "a", "<p>a</p>", "b", "<p>b</p>")

	ops := ComputePatch(prev, next)
	require.NotEmpty(t, ops)
	for _, op := range ops {
		assert.Equal(t, PatchMove, op.Type)
	}
}

func TestComputePatchOpTypeStrings(t *testing.T) {
	assert.Equal(t, "insert", PatchInsert.String())
	assert.Equal(t, "delete", PatchDelete.String())
	assert.Equal(t, "move", PatchMove.String())
	assert.Equal(t, "update", PatchUpdate.String())
}
