// Package node provides the value model for tessera object trees.
//
// This package contains type definitions only. All other internal packages
// import node; node imports nothing internal. This keeps the value model
// the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Value is a closed tagged union: String, Int, Float, Bool, List,
//     Map, *Object, Opaque. Nothing else crosses into the engines.
//   - Dynamic Go values are resolved into the union exactly once, at the
//     boundary (FromGo). The engines never inspect raw Go types.
//   - Map and Object preserve insertion order of their keys. Order is
//     significant: content hashes are computed over the ordered form.
//   - The "@" and "__" property name prefixes are part of the object
//     model: "@" requests detachment of the property's subtree, "__"
//     marks a property as internal and excluded from decomposition.
package node
