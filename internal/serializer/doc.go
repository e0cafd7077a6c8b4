// Package serializer implements the decompose/recompose engines.
//
// Decomposition walks an object tree depth-first and turns it into
// nested serializable records. Ordinary values are inlined; a property
// whose name carries the "@" detach prefix is promoted to an
// independently addressed record: the child is fully decomposed first,
// written to every configured write-sink under its content hash, and
// replaced in the parent by a reference marker. Writes are strictly
// bottom-up - a child's record (and everything beneath it) is persisted
// before its parent's.
//
// Every record whose descendants were detached gains a closure
// manifest: for each detached descendant, the minimum number of detach
// boundaries between this record and that descendant. Downstream
// systems use the manifest for incremental fetch planning without ever
// materializing the full descendant set.
//
// Recomposition is the mirror image: primitives copy directly,
// reference markers trigger a fetch from the read-source and a
// recursive rebuild, and inline nested values recurse without fetching.
//
// All traversal state lives in a per-call scope threaded through the
// recursion. Engines hold configuration only, so concurrent calls on
// one engine are safe.
package serializer
