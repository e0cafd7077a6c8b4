package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tessera-io/tessera/internal/node"
)

// Decode parses a JSON document into the value union, preserving object
// key order. Numbers without a fraction or exponent become node.Int;
// all others become node.Float.
//
// encoding/json's map decoding discards key order, so this walks the
// token stream instead.
func Decode(data []byte) (node.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	// Anything after the first document is malformed input.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after JSON document")
	}
	return v, nil
}

// DecodeRecord parses a JSON document that must be a record (an
// object), not a bare scalar or array.
func DecodeRecord(data []byte) (*node.Map, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	rec, ok := v.(*node.Map)
	if !ok {
		return nil, fmt.Errorf("decoded document is %T, want an object", v)
	}
	return rec, nil
}

func decodeValue(dec *json.Decoder) (node.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeMap(dec)
		case '[':
			return decodeList(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return node.String(t), nil
	case bool:
		return node.Bool(t), nil
	case json.Number:
		return decodeNumber(t)
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected token %v (%T)", tok, tok)
	}
}

func decodeMap(dec *json.Decoder) (*node.Map, error) {
	m := node.NewMap()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode object key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, want string", keyTok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		m.Set(key, v)
	}
	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode object end: %w", err)
	}
	return m, nil
}

func decodeList(dec *json.Decoder) (node.List, error) {
	list := node.List{}
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("list[%d]: %w", len(list), err)
		}
		list = append(list, v)
	}
	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode list end: %w", err)
	}
	return list, nil
}

func decodeNumber(n json.Number) (node.Value, error) {
	s := string(n)
	if !strings.ContainsAny(s, ".eE") {
		i, err := n.Int64()
		if err != nil {
			return nil, fmt.Errorf("integer out of int64 range: %s", s)
		}
		return node.Int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid number %s: %w", s, err)
	}
	return node.Float(f), nil
}
