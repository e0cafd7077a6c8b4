package record

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessera-io/tessera/internal/node"
)

func mustEncode(t *testing.T, v node.Value) string {
	t.Helper()
	data, err := Encode(v)
	require.NoError(t, err)
	return string(data)
}

func TestEncodePrimitives(t *testing.T) {
	assert.Equal(t, `"hello"`, mustEncode(t, node.String("hello")))
	assert.Equal(t, `42`, mustEncode(t, node.Int(42)))
	assert.Equal(t, `-7`, mustEncode(t, node.Int(-7)))
	assert.Equal(t, `true`, mustEncode(t, node.Bool(true)))
	assert.Equal(t, `false`, mustEncode(t, node.Bool(false)))
	assert.Equal(t, `null`, mustEncode(t, nil))
	assert.Equal(t, `2.5`, mustEncode(t, node.Float(2.5)))
}

func TestEncodePreservesInsertionOrder(t *testing.T) {
	m := node.NewMap()
	m.Set("zebra", node.Int(1))
	m.Set("apple", node.Int(2))
	assert.Equal(t, `{"zebra":1,"apple":2}`, mustEncode(t, m))
}

func TestEncodeNoHTMLEscaping(t *testing.T) {
	// HTML characters must be written verbatim - escaping them would
	// change content hashes between encoders.
	assert.Equal(t, `"<a href=\"x\">&</a>"`, mustEncode(t, node.String(`<a href="x">&</a>`)))
}

func TestEncodeEscapesControlCharacters(t *testing.T) {
	assert.Equal(t, `"a\nb\tc"`, mustEncode(t, node.String("a\nb\tc")))
	assert.Equal(t, "\"\\u0000\"", mustEncode(t, node.String("\x00")))
}

func TestEncodeNFCNormalizesStrings(t *testing.T) {
	// Decomposed "e" + combining acute vs precomposed U+00E9 must
	// encode identically; otherwise equal-looking content hashes apart.
	composed := node.String("café")
	decomposed := node.String("café")
	assert.Equal(t, mustEncode(t, composed), mustEncode(t, decomposed))
}

func TestEncodeNestedCollections(t *testing.T) {
	inner := node.NewMap()
	inner.Set("k", node.String("v"))
	list := node.List{node.Int(1), inner, nil}
	assert.Equal(t, `[1,{"k":"v"},null]`, mustEncode(t, list))
}

func TestEncodeRejectsRawObjects(t *testing.T) {
	_, err := Encode(node.NewObject())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decompose")
}

func TestEncodeRejectsOpaqueValues(t *testing.T) {
	_, err := Encode(node.Opaque{Raw: make(chan int)})
	assert.Error(t, err)
}

func TestEncodeRejectsNonFiniteFloats(t *testing.T) {
	for _, f := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		_, err := Encode(node.Float(f))
		assert.Error(t, err, "float %v should be rejected", f)
	}
}

func TestDecodePreservesKeyOrder(t *testing.T) {
	v, err := Decode([]byte(`{"z":1,"a":{"y":2,"b":3},"m":[1,2]}`))
	require.NoError(t, err)
	m, ok := v.(*node.Map)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "m"}, m.Keys())

	nested, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, []string{"y", "b"}, nested.(*node.Map).Keys())
}

func TestDecodeNumberKinds(t *testing.T) {
	v, err := Decode([]byte(`[1,1.5,1e3,-4]`))
	require.NoError(t, err)
	list := v.(node.List)
	assert.Equal(t, node.Int(1), list[0])
	assert.Equal(t, node.Float(1.5), list[1])
	assert.Equal(t, node.Float(1000), list[2])
	assert.Equal(t, node.Int(-4), list[3])
}

func TestDecodeNull(t *testing.T) {
	v, err := Decode([]byte(`{"a":null}`))
	require.NoError(t, err)
	m := v.(*node.Map)
	got, ok := m.Get("a")
	require.True(t, ok, "null key should be present")
	assert.Nil(t, got)
}

func TestDecodeRejectsTrailingData(t *testing.T) {
	_, err := Decode([]byte(`{"a":1} {"b":2}`))
	assert.Error(t, err)
}

func TestDecodeRecordRejectsNonObjects(t *testing.T) {
	_, err := DecodeRecord([]byte(`[1,2,3]`))
	assert.Error(t, err)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := node.NewMap()
	m.Set("id", node.String(""))
	m.Set("name", node.String("beam"))
	m.Set("parts", node.List{node.Int(1), node.String("two"), node.Bool(true)})

	encoded, err := Encode(m)
	require.NoError(t, err)

	decoded, err := DecodeRecord(encoded)
	require.NoError(t, err)

	reencoded, err := Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(encoded), string(reencoded), "encode/decode must be stable")
}
