package serializer

import (
	"context"
	"fmt"

	"github.com/tessera-io/tessera/internal/node"
	"github.com/tessera-io/tessera/internal/record"
	"github.com/tessera-io/tessera/internal/transport"
)

// Recomposer rebuilds object trees from records, resolving reference
// markers through a read-source.
//
// A Recomposer holds configuration only and is safe for concurrent
// calls.
type Recomposer struct {
	source transport.ReadSource
}

// NewRecomposer creates a recomposer backed by source. A nil source is
// permitted for records without detached descendants; recomposing a
// record that carries a closure manifest then fails with a
// configuration error.
func NewRecomposer(source transport.ReadSource) *Recomposer {
	return &Recomposer{source: source}
}

// Recompose decodes an encoded record and rebuilds the object tree it
// describes. Empty input produces a nil object.
func (r *Recomposer) Recompose(ctx context.Context, encoded []byte) (*node.Object, error) {
	if len(encoded) == 0 {
		return nil, nil
	}
	rec, err := record.DecodeRecord(encoded)
	if err != nil {
		return nil, fmt.Errorf("recompose: %w", err)
	}
	return r.RecomposeRecord(ctx, rec)
}

// RecomposeRecord rebuilds the object tree described by an
// already-decoded record. Empty records produce a nil object.
func (r *Recomposer) RecomposeRecord(ctx context.Context, rec *node.Map) (*node.Object, error) {
	if rec.Len() == 0 {
		return nil, nil
	}

	obj := node.NewObject()

	// A closure manifest means detached descendants exist somewhere
	// below, which is unresolvable without a read-source. Its entry
	// count becomes the total-children hint; the manifest itself is not
	// a property and is dropped.
	if manifest, ok := rec.Get(record.FieldClosure); ok {
		if r.source == nil {
			return nil, newNoReadSourceError()
		}
		closureMap, ok := manifest.(*node.Map)
		if !ok {
			return nil, fmt.Errorf("recompose: closure manifest is %T, want mapping", manifest)
		}
		obj.SetTotalChildren(closureMap.Len())
	}

	for _, name := range rec.Keys() {
		if name == record.FieldClosure {
			continue
		}
		value, _ := rec.Get(name)

		if marker, ok := value.(*node.Map); ok {
			if id, isRef := record.ReferenceID(marker); isRef {
				child, err := r.resolve(ctx, id)
				if err != nil {
					return nil, err
				}
				obj.SetValue(name, child)
				continue
			}
		}

		handled, err := r.handleValue(ctx, value)
		if err != nil {
			return nil, err
		}
		obj.SetValue(name, handled)
	}

	return obj, nil
}

// resolve fetches a referenced record by content hash and recursively
// recomposes it.
func (r *Recomposer) resolve(ctx context.Context, id string) (*node.Object, error) {
	if r.source == nil {
		return nil, newNoReadSourceError()
	}

	encoded, err := r.source.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch referenced record %s from %s: %w", id, r.source.Name(), err)
	}
	if len(encoded) == 0 {
		return nil, newResolutionError(id, r.source.Name())
	}

	rec, err := record.DecodeRecord(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode referenced record %s: %w", id, err)
	}
	return r.RecomposeRecord(ctx, rec)
}

// handleValue rebuilds one record value: primitives pass through,
// sequences recurse element-wise, mappings value-wise. Mappings
// carrying the type discriminator are serialized records and rebuild
// into objects; reference markers resolve through the read-source.
func (r *Recomposer) handleValue(ctx context.Context, value node.Value) (node.Value, error) {
	switch val := value.(type) {
	case node.List:
		out := make(node.List, len(val))
		for i, elem := range val {
			handled, err := r.handleValue(ctx, elem)
			if err != nil {
				return nil, err
			}
			out[i] = handled
		}
		return out, nil

	case *node.Map:
		if id, isRef := record.ReferenceID(val); isRef {
			return r.resolve(ctx, id)
		}
		if record.IsRecordShaped(val) {
			return r.RecomposeRecord(ctx, val)
		}
		out := node.NewMap()
		for _, key := range val.Keys() {
			entry, _ := val.Get(key)
			handled, err := r.handleValue(ctx, entry)
			if err != nil {
				return nil, err
			}
			out.Set(key, handled)
		}
		return out, nil

	default:
		return val, nil
	}
}
