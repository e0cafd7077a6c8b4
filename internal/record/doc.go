// Package record defines the wire model for decomposed objects.
//
// A record is an insertion-ordered, string-keyed mapping (node.Map)
// encoded as JSON. Reserved keys:
//
//   - "id": the record's content hash (32 hex characters)
//   - "closure": manifest of detached descendants (hash -> min depth)
//   - "referencedId" + "type": the fixed shape of a reference marker
//
// Content identity is computed by HashRecord: the canonical JSON encoding of
// the record (with "id" still empty) digested with SHA-256 and
// truncated to 32 hex characters. The digest family and truncation
// length are fixed design parameters; shortening trades a negligible
// collision risk for shorter identifiers.
//
// The canonical encoding preserves key insertion order, never escapes
// HTML characters, and NFC-normalizes strings. Identical record content
// always produces identical bytes, and therefore an identical id.
package record
