package transport

import "context"

// WriteSink accepts finished records keyed by content hash.
//
// Save must be idempotent: saving an already-present id is a no-op or a
// harmless overwrite, never an error. Records arrive fully assembled
// and hashed; the engine never writes partial records.
type WriteSink interface {
	Save(ctx context.Context, id string, encoded []byte) error
}

// ReadSource looks up previously stored records by content hash.
//
// Get returns (nil, nil) when no record exists for id - absence is a
// signal, not an error. The caller decides whether a missing record is
// fatal. Name identifies the source in diagnostics and error messages.
type ReadSource interface {
	Get(ctx context.Context, id string) ([]byte, error)
	Name() string
}
