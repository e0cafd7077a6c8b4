package record

import (
	"fmt"
	"sort"

	"github.com/tessera-io/tessera/internal/node"
)

// Reserved record keys.
const (
	// FieldID holds the record's content hash. It is always the first
	// key of a record.
	FieldID = "id"

	// FieldClosure holds the closure manifest. Present only on records
	// with detached descendants, appended after the hash is computed.
	FieldClosure = "closure"

	// FieldReferencedID holds the content hash a reference marker
	// points at.
	FieldReferencedID = "referencedId"

	// FieldType is the type discriminator carried by record-shaped
	// mappings. On reference markers its value is TypeReference.
	FieldType = "type"

	// TypeReference is the FieldType value of a reference marker.
	TypeReference = "reference"
)

// NewReference builds the marker substituted in a parent record in
// place of a detached child: {"referencedId": id, "type": "reference"}.
func NewReference(id string) *node.Map {
	m := node.NewMap()
	m.Set(FieldReferencedID, node.String(id))
	m.Set(FieldType, node.String(TypeReference))
	return m
}

// ReferenceID returns the referenced content hash if m is shaped like a
// reference marker (carries a string referencedId).
func ReferenceID(m *node.Map) (string, bool) {
	v, ok := m.Get(FieldReferencedID)
	if !ok {
		return "", false
	}
	id, ok := v.(node.String)
	return string(id), ok
}

// IsRecordShaped reports whether a mapping carries the type
// discriminator, identifying it as a serialized record rather than a
// plain data mapping.
func IsRecordShaped(m *node.Map) bool {
	_, ok := m.Get(FieldType)
	return ok
}

// Closure is a closure manifest: detached descendant hash -> minimum
// relative depth. Depth counts detach boundaries crossed, not raw tree
// levels, and is always >= 1.
type Closure map[string]int

// ToMap converts the manifest to its wire form. Hashes are emitted in
// sorted order so the encoding is deterministic.
func (c Closure) ToMap() *node.Map {
	hashes := make([]string, 0, len(c))
	for h := range c {
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)

	m := node.NewMap()
	for _, h := range hashes {
		m.Set(h, node.Int(c[h]))
	}
	return m
}

// ClosureFromMap parses a wire-form closure manifest.
func ClosureFromMap(m *node.Map) (Closure, error) {
	c := make(Closure, m.Len())
	for _, h := range m.Keys() {
		v, _ := m.Get(h)
		depth, ok := v.(node.Int)
		if !ok {
			return nil, fmt.Errorf("closure entry %q: depth is %T, want integer", h, v)
		}
		if depth < 1 {
			return nil, fmt.Errorf("closure entry %q: depth %d, want >= 1", h, depth)
		}
		c[h] = int(depth)
	}
	return c, nil
}
