package harness

import (
	"fmt"

	"github.com/tessera-io/tessera/internal/node"
)

// Equivalent checks that a rebuilt tree carries the same content as the
// original, property for property. Two model-level asymmetries are
// expected and tolerated:
//
//   - falsy and internal properties of the original are dropped on the
//     wire, so they are skipped here;
//   - rebuilt trees materialize records as objects only where a type
//     discriminator identifies them, so an original nested object may
//     come back as a plain mapping with the same entries (plus its id).
//
// Returns nil on match, or an error naming the first diverging path.
func Equivalent(want, got *node.Object) error {
	return equivalentObject("$", want, got)
}

func equivalentObject(path string, want *node.Object, got node.Value) error {
	lookup, err := memberLookup(path, got)
	if err != nil {
		return err
	}

	for _, name := range want.MemberNames() {
		value, _ := want.Get(name)
		if node.IsFalsy(value) || node.IsInternal(name) {
			continue
		}
		memberPath := path + "." + name
		gotValue, ok := lookup(name)
		if !ok {
			return fmt.Errorf("%s: missing in rebuilt tree", memberPath)
		}
		if err := equivalentValue(memberPath, value, gotValue); err != nil {
			return err
		}
	}
	return nil
}

// memberLookup adapts either container shape a rebuilt object may take.
func memberLookup(path string, got node.Value) (func(string) (node.Value, bool), error) {
	switch g := got.(type) {
	case *node.Object:
		return g.Get, nil
	case *node.Map:
		return g.Get, nil
	default:
		return nil, fmt.Errorf("%s: rebuilt value is %T, want an object or mapping", path, got)
	}
}

func equivalentValue(path string, want, got node.Value) error {
	switch w := want.(type) {
	case node.String, node.Bool:
		if got != want {
			return fmt.Errorf("%s: got %#v, want %#v", path, got, want)
		}
		return nil

	case node.Int, node.Float:
		// Whole-value floats lose their decimal point on the wire and
		// come back as integers; compare numerically.
		wantNum, _ := numeric(want)
		gotNum, ok := numeric(got)
		if !ok || wantNum != gotNum {
			return fmt.Errorf("%s: got %#v, want %#v", path, got, want)
		}
		return nil

	case node.List:
		gotList, ok := got.(node.List)
		if !ok {
			return fmt.Errorf("%s: got %T, want sequence", path, got)
		}
		if len(gotList) != len(w) {
			return fmt.Errorf("%s: sequence length %d, want %d", path, len(gotList), len(w))
		}
		for i, elem := range w {
			if err := equivalentValue(fmt.Sprintf("%s[%d]", path, i), elem, gotList[i]); err != nil {
				return err
			}
		}
		return nil

	case *node.Map:
		gotMap, ok := got.(*node.Map)
		if !ok {
			return fmt.Errorf("%s: got %T, want mapping", path, got)
		}
		wantKeys := w.Keys()
		gotKeys := gotMap.Keys()
		if len(wantKeys) != len(gotKeys) {
			return fmt.Errorf("%s: mapping has %d keys, want %d", path, len(gotKeys), len(wantKeys))
		}
		for i, key := range wantKeys {
			if gotKeys[i] != key {
				return fmt.Errorf("%s: key %d is %q, want %q (mapping order is significant)", path, i, gotKeys[i], key)
			}
			wantEntry, _ := w.Get(key)
			gotEntry, _ := gotMap.Get(key)
			if err := equivalentValue(path+"."+key, wantEntry, gotEntry); err != nil {
				return err
			}
		}
		return nil

	case *node.Object:
		return equivalentObject(path, w, got)

	default:
		return fmt.Errorf("%s: cannot compare %T", path, want)
	}
}

func numeric(v node.Value) (float64, bool) {
	switch n := v.(type) {
	case node.Int:
		return float64(n), true
	case node.Float:
		return float64(n), true
	default:
		return 0, false
	}
}
