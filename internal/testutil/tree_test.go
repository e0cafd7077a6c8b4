package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessera-io/tessera/internal/node"
)

func TestObjectOfOrderAndResolution(t *testing.T) {
	obj := ObjectOf(
		P("name", "beam"),
		P("length", 12),
		P("tags", []any{"a", "b"}),
	)
	assert.Equal(t, []string{"name", "length", "tags"}, obj.MemberNames())

	v, ok := obj.Get("tags")
	require.True(t, ok)
	_, isList := v.(node.List)
	assert.True(t, isList)
}

func TestMapOfOrder(t *testing.T) {
	m := MapOf(P("z", 1), P("a", 2))
	assert.Equal(t, []string{"z", "a"}, m.Keys())
}
