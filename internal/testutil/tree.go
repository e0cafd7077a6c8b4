// Package testutil provides shared fixture builders for tests.
package testutil

import (
	"github.com/tessera-io/tessera/internal/node"
)

// Prop is an ordered name/value pair for object construction.
type Prop struct {
	Name  string
	Value any
}

// P is a shorthand constructor for Prop.
// Example: ObjectOf(P("name", "beam"), P("length", 12))
func P(name string, value any) Prop {
	return Prop{Name: name, Value: value}
}

// ObjectOf builds an object with properties in the given order. Values
// are resolved through the node boundary, so plain Go values, nested
// *node.Object, and node.Value all work.
func ObjectOf(props ...Prop) *node.Object {
	obj := node.NewObject()
	for _, p := range props {
		obj.Set(p.Name, p.Value)
	}
	return obj
}

// MapOf builds an ordered mapping from name/value pairs.
func MapOf(props ...Prop) *node.Map {
	m := node.NewMap()
	for _, p := range props {
		m.Set(p.Name, node.FromGo(p.Value))
	}
	return m
}
