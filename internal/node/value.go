package node

import (
	"sort"
	"strings"
)

// Property name prefixes recognized by the decomposition engine.
const (
	// DetachPrefix marks a property whose subtree should be stored as an
	// independent, separately addressed record instead of being inlined
	// in its parent.
	DetachPrefix = "@"

	// InternalPrefix marks a property that is never serialized.
	InternalPrefix = "__"
)

// WantsDetach reports whether a property name requests detachment.
func WantsDetach(name string) bool {
	return strings.HasPrefix(name, DetachPrefix)
}

// IsInternal reports whether a property name is reserved-internal and
// must be skipped during decomposition.
func IsInternal(name string) bool {
	return strings.HasPrefix(name, InternalPrefix)
}

// Value is a sealed interface representing the closed set of tree value
// kinds. Only String, Int, Float, Bool, List, *Map, *Object, and Opaque
// implement it. A nil Value represents an absent/null value.
type Value interface {
	value() // Sealed - only these types implement it
}

// String represents a string value.
type String string

func (String) value() {}

// Int represents an integer value. Always int64.
type Int int64

func (Int) value() {}

// Float represents a floating-point value.
type Float float64

func (Float) value() {}

// Bool represents a boolean value.
type Bool bool

func (Bool) value() {}

// List represents an ordered sequence of values.
type List []Value

func (List) value() {}

// Opaque wraps a value the model has no first-class kind for. If Raw
// implements Flattener the decomposition engine flattens it to a Map;
// otherwise the engine substitutes a best-effort textual fallback.
type Opaque struct {
	Raw any
}

func (Opaque) value() {}

// Flattener is the optional capability an opaque value may expose to
// participate in decomposition as a plain mapping.
type Flattener interface {
	Flatten() (*Map, error)
}

// Map is an insertion-ordered, string-keyed mapping of values.
//
// Key order is significant: it is the order properties are serialized
// in, and therefore feeds the content hash. Setting an existing key
// replaces the value in place without changing its position.
type Map struct {
	keys    []string
	entries map[string]Value
}

func (*Map) value() {}

// NewMap creates an empty ordered map.
func NewMap() *Map {
	return &Map{entries: make(map[string]Value)}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice is owned
// by the map and must not be mutated.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Get returns the value for key and whether the key is present.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.entries[key]
	return v, ok
}

// Set stores value under key, appending the key if it is new.
func (m *Map) Set(key string, value Value) {
	if _, ok := m.entries[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = value
}

// Delete removes key and its value. A no-op for absent keys.
func (m *Map) Delete(key string) {
	if _, ok := m.entries[key]; !ok {
		return
	}
	delete(m.entries, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// IsFalsy reports whether a value is null/empty-equivalent: nil, zero
// numbers, empty strings, false, and empty collections. Objects and
// opaque values are never falsy. The decomposition engine skips falsy
// property values entirely.
func IsFalsy(v Value) bool {
	switch val := v.(type) {
	case nil:
		return true
	case String:
		return val == ""
	case Int:
		return val == 0
	case Float:
		return val == 0
	case Bool:
		return !bool(val)
	case List:
		return len(val) == 0
	case *Map:
		return val.Len() == 0
	default:
		return false
	}
}

// FromGo resolves an arbitrary Go value into the closed union. This is
// the single boundary where dynamic values enter the model:
//
//   - nil maps to a nil Value (absent)
//   - Go integers map to Int, floats to Float
//   - []any and []Value map to List
//   - map[string]any maps to *Map with keys in sorted order (Go map
//     iteration order is unspecified, so a stable order is imposed here)
//   - Value and *Object pass through unchanged
//   - anything else becomes Opaque
func FromGo(v any) Value {
	switch val := v.(type) {
	case nil:
		return nil
	case Value:
		return val
	case string:
		return String(val)
	case bool:
		return Bool(val)
	case int:
		return Int(val)
	case int8:
		return Int(val)
	case int16:
		return Int(val)
	case int32:
		return Int(val)
	case int64:
		return Int(val)
	case uint:
		return Int(val)
	case uint8:
		return Int(val)
	case uint16:
		return Int(val)
	case uint32:
		return Int(val)
	case float32:
		return Float(val)
	case float64:
		return Float(val)
	case []Value:
		return List(val)
	case []any:
		list := make(List, len(val))
		for i, elem := range val {
			list[i] = FromGo(elem)
		}
		return list
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMap()
		for _, k := range keys {
			m.Set(k, FromGo(val[k]))
		}
		return m
	default:
		return Opaque{Raw: v}
	}
}
