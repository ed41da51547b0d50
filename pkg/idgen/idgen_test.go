package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterUnique(t *testing.T) {
	gen := Counter("c", 6)
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := gen()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestCounterFormat(t *testing.T) {
	gen := Counter("blk", 4)
	id := gen()
	assert.True(t, strings.HasPrefix(id, "blk1-"))
	assert.Len(t, id, len("blk1-")+4)
}

func TestCounterZeroSuffix(t *testing.T) {
	gen := Counter("c", 0)
	assert.Equal(t, "c1-", gen())
	assert.Equal(t, "c2-", gen())
}

func TestUUIDv7Unique(t *testing.T) {
	gen := UUIDv7()
	a, b := gen(), gen()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}

func TestPrefixed(t *testing.T) {
	gen := Prefixed("page_", UUIDv7())
	assert.True(t, strings.HasPrefix(gen(), "page_"))
}
