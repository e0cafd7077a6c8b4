package record

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/tessera-io/tessera/internal/node"
)

// HashLength is the length of a content hash in hex characters: a
// SHA-256 digest truncated to its first 16 bytes.
const HashLength = 32

// HashRecord computes the content hash of a record: SHA-256 of the
// canonical encoding, truncated to HashLength hex characters.
//
// The record's "id" field must still hold its empty placeholder when
// this is called; the hash covers everything else. The closure manifest
// is attached after hashing and is never part of the hash.
func HashRecord(rec *node.Map) (string, error) {
	canonical, err := Encode(rec)
	if err != nil {
		return "", fmt.Errorf("hash record: %w", err)
	}
	return HashBytes(canonical), nil
}

// HashBytes computes the content hash of an already-encoded canonical
// form.
func HashBytes(canonical []byte) string {
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])[:HashLength]
}
