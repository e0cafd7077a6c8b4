// Package transport defines where decomposed records go and where they
// come back from.
//
// The decomposition engine fans every detached record out to a set of
// WriteSinks; the recomposition engine resolves reference markers
// through a single ReadSource. Both sides address records exclusively
// by content hash.
//
// Saves must be idempotent: records are content-addressed, so re-saving
// an id can only ever carry identical bytes, and duplicates are
// harmless. Both bundled implementations (Memory, SQLite) satisfy the
// two interfaces simultaneously, so a sink used during decomposition
// can serve as the source for recomposition.
package transport
