package shortid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNanoGenerator_NewID(t *testing.T) {
	gen := New(0)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		id, err := gen.NewID()
		require.NoError(t, err)
		assert.Len(t, id, DefaultLength)
		for _, r := range id {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q in %s", r, id)
		}
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNanoGenerator_CustomLength(t *testing.T) {
	id, err := New(16).NewID()
	require.NoError(t, err)
	assert.Len(t, id, 16)
}
