package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessera-io/tessera/internal/node"
)

func TestHashRecordKnownValue(t *testing.T) {
	// SHA-256 of `{"id":"","x":5}` truncated to 32 hex characters.
	// Pins the canonical encoding and the truncation together: if either
	// changes, every stored record id changes with it.
	rec := node.NewMap()
	rec.Set(FieldID, node.String(""))
	rec.Set("x", node.Int(5))

	id, err := HashRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, "7cd73979a1c1c10c4c45531edc6e118b", id)
}

func TestHashRecordDeterminism(t *testing.T) {
	build := func() *node.Map {
		rec := node.NewMap()
		rec.Set(FieldID, node.String(""))
		rec.Set("name", node.String("beam"))
		rec.Set("length", node.Int(12))
		return rec
	}

	a, err := HashRecord(build())
	require.NoError(t, err)
	b, err := HashRecord(build())
	require.NoError(t, err)

	assert.Equal(t, a, b, "identical content must hash identically")
	assert.Len(t, a, HashLength)
}

func TestHashRecordSensitiveToContentAndOrder(t *testing.T) {
	base := node.NewMap()
	base.Set(FieldID, node.String(""))
	base.Set("a", node.Int(1))
	base.Set("b", node.Int(2))

	reordered := node.NewMap()
	reordered.Set(FieldID, node.String(""))
	reordered.Set("b", node.Int(2))
	reordered.Set("a", node.Int(1))

	changed := node.NewMap()
	changed.Set(FieldID, node.String(""))
	changed.Set("a", node.Int(1))
	changed.Set("b", node.Int(3))

	h1, err := HashRecord(base)
	require.NoError(t, err)
	h2, err := HashRecord(reordered)
	require.NoError(t, err)
	h3, err := HashRecord(changed)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "property order is part of identity")
	assert.NotEqual(t, h1, h3, "property values are part of identity")
}

func TestHashBytes(t *testing.T) {
	h := HashBytes([]byte(`{"id":"","a":1}`))
	assert.Equal(t, "2527df6c7fe73f979c2a864d19805dd6", h)
}
