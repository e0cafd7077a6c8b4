package serializer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/tessera-io/tessera/internal/node"
	"github.com/tessera-io/tessera/internal/record"
	"github.com/tessera-io/tessera/internal/transport"
)

// Decomposer turns object trees into content-addressed records.
//
// A Decomposer holds configuration only; each Decompose call owns a
// fresh traversal scope, so a single Decomposer is safe for concurrent
// calls.
type Decomposer struct {
	sinks  []transport.WriteSink
	logger *slog.Logger
}

// NewDecomposer creates a decomposer that fans detached records out to
// the given sinks. A nil logger suppresses diagnostics.
func NewDecomposer(sinks []transport.WriteSink, logger *slog.Logger) *Decomposer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Decomposer{sinks: sinks, logger: logger}
}

// Result is the outcome of one decomposition call.
type Result struct {
	// ID is the root record's content hash.
	ID string

	// Record is the root record. Immutable once returned.
	Record *node.Map

	// Encoded is the root record's canonical encoding - the same bytes
	// the sinks received for the root.
	Encoded []byte

	// Closures indexes every closure manifest built during the call by
	// the id of the record it is attached to.
	Closures map[string]record.Closure

	// Failures lists values that could not be flattened and were
	// replaced by a textual fallback. Recoverable by definition; the
	// records were still produced.
	Failures []FlattenFailure
}

// FlattenFailure describes one opaque value that had no usable
// flattening capability.
type FlattenFailure struct {
	// Call identifies the decomposition call the failure occurred in.
	Call string

	// Property is the name of the property the value sat under.
	Property string

	// TypeName is the Go type of the offending value.
	TypeName string

	// Err is the flattening error, if the value's Flatten call failed
	// rather than being absent.
	Err error
}

// Decompose decomposes root into records. The root and every detached
// descendant are written to all configured sinks, children strictly
// before parents. Returns the root record's hash and serialized form.
func (d *Decomposer) Decompose(ctx context.Context, root *node.Object) (*Result, error) {
	if root == nil {
		return nil, fmt.Errorf("decompose: root object is nil")
	}

	s := newScope()
	// The top-level call target is always written to the sinks.
	s.pushFlag(true)

	id, rec, err := d.decomposeObject(ctx, s, root)
	if err != nil {
		return nil, err
	}

	encoded, err := record.Encode(rec)
	if err != nil {
		return nil, fmt.Errorf("encode root record: %w", err)
	}

	return &Result{
		ID:       id,
		Record:   rec,
		Encoded:  encoded,
		Closures: s.closures,
		Failures: s.failures,
	}, nil
}

// decomposeObject builds the record for one object. On entry the
// object's detach flag is already on the stack; on exit both the flag
// and the object's bookkeeping level are popped.
func (d *Decomposer) decomposeObject(ctx context.Context, s *scope, obj *node.Object) (string, *node.Map, error) {
	s.pushLevel()

	rec := node.NewMap()
	// The id placeholder participates in hashing and keeps the id field
	// first in the serialized record.
	rec.Set(record.FieldID, node.String(""))

	for _, name := range obj.MemberNames() {
		value, _ := obj.Get(name)

		// Null/empty-equivalent values and internal properties are
		// dropped entirely. Zero and false are indistinguishable from
		// absent on the wire; changing that would invalidate every
		// stored record id.
		if node.IsFalsy(value) || node.IsInternal(name) {
			continue
		}

		wantsDetach := node.WantsDetach(name)

		switch val := value.(type) {
		case node.String, node.Int, node.Float, node.Bool:
			rec.Set(name, val)

		case *node.Object:
			s.pushFlag(wantsDetach)
			childID, childRec, err := d.decomposeObject(ctx, s, val)
			if err != nil {
				return "", nil, err
			}
			if wantsDetach {
				s.noteDetached(childID)
				rec.Set(name, record.NewReference(childID))
			} else {
				rec.Set(name, childRec)
			}

		default:
			// Sequences, mappings, and opaque values flatten
			// element-wise. Objects nested inside them are inlined,
			// never detached.
			flattened, err := d.decomposeValue(ctx, s, name, val)
			if err != nil {
				return "", nil, err
			}
			rec.Set(name, flattened)
		}
	}

	hash, err := record.HashRecord(rec)
	if err != nil {
		return "", nil, fmt.Errorf("hash record: %w", err)
	}
	rec.Set(record.FieldID, node.String(hash))

	// The flag popped here is this object's own fate as seen from its
	// parent. It must come off before the closure is built so relative
	// depths are measured from this record's boundary.
	detached := s.popFlag()

	if closure := s.closeLevel(); closure != nil {
		rec.Set(record.FieldClosure, closure.ToMap())
		s.closures[hash] = closure
	}

	if detached {
		encoded, err := record.Encode(rec)
		if err != nil {
			return "", nil, fmt.Errorf("encode record %s: %w", hash, err)
		}
		for _, sink := range d.sinks {
			if err := sink.Save(ctx, hash, encoded); err != nil {
				return "", nil, fmt.Errorf("save record %s: %w", hash, err)
			}
		}
	}

	s.popLevel()

	return hash, rec, nil
}

// decomposeValue flattens a non-object property value into its
// serializable form. prop names the property the value sits under, for
// diagnostics.
func (d *Decomposer) decomposeValue(ctx context.Context, s *scope, prop string, value node.Value) (node.Value, error) {
	switch val := value.(type) {
	case nil, node.String, node.Int, node.Float, node.Bool:
		return val, nil

	case node.List:
		out := make(node.List, len(val))
		for i, elem := range val {
			flattened, err := d.decomposeValue(ctx, s, prop, elem)
			if err != nil {
				return nil, err
			}
			out[i] = flattened
		}
		return out, nil

	case *node.Map:
		out := node.NewMap()
		for _, key := range val.Keys() {
			entry, _ := val.Get(key)
			flattened, err := d.decomposeValue(ctx, s, prop, entry)
			if err != nil {
				return nil, err
			}
			out.Set(key, flattened)
		}
		return out, nil

	case *node.Object:
		s.pushFlag(false)
		_, childRec, err := d.decomposeObject(ctx, s, val)
		if err != nil {
			return nil, err
		}
		return childRec, nil

	case node.Opaque:
		return d.flattenOpaque(ctx, s, prop, val)

	default:
		return nil, fmt.Errorf("property %q: unsupported value type %T", prop, value)
	}
}

// flattenOpaque delegates to the value's flattening capability, or
// substitutes a best-effort textual fallback. A failed or absent
// capability never aborts the traversal.
func (d *Decomposer) flattenOpaque(ctx context.Context, s *scope, prop string, op node.Opaque) (node.Value, error) {
	typeName := fmt.Sprintf("%T", op.Raw)

	if flattener, ok := op.Raw.(node.Flattener); ok {
		flat, err := flattener.Flatten()
		if err == nil {
			return d.decomposeValue(ctx, s, prop, flat)
		}
		d.logger.Warn("flattening opaque value failed, substituting textual fallback",
			"call", s.callID,
			"property", prop,
			"type", typeName,
			"error", err,
		)
		s.failures = append(s.failures, FlattenFailure{
			Call:     s.callID,
			Property: prop,
			TypeName: typeName,
			Err:      err,
		})
		return node.String(fmt.Sprintf("%v", op.Raw)), nil
	}

	d.logger.Warn("opaque value has no flattening capability, substituting textual fallback",
		"call", s.callID,
		"property", prop,
		"type", typeName,
	)
	s.failures = append(s.failures, FlattenFailure{
		Call:     s.callID,
		Property: prop,
		TypeName: typeName,
	})
	return node.String(fmt.Sprintf("%v", op.Raw)), nil
}
