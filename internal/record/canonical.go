package record

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/unicode/norm"

	"github.com/tessera-io/tessera/internal/node"
)

// Encode produces the canonical JSON encoding of a value. This is the
// ONLY serialization used for content-addressed identity computation,
// and it is also the wire form sent to transports.
//
// Properties of the encoding:
//   - object keys appear in insertion order (never re-sorted)
//   - no HTML escaping (< > & are written verbatim)
//   - strings are NFC normalized
//   - no insignificant whitespace
//
// Raw objects (*node.Object) and opaque values cannot be encoded; the
// decomposition engine must resolve them into records first.
func Encode(v node.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v node.Value) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case node.String:
		encodeString(buf, string(val))
		return nil
	case node.Int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
		return nil
	case node.Float:
		return encodeFloat(buf, float64(val))
	case node.Bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case node.List:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, elem); err != nil {
				return fmt.Errorf("list[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
		return nil
	case *node.Map:
		buf.WriteByte('{')
		for i, k := range val.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			encodeString(buf, k)
			buf.WriteByte(':')
			entry, _ := val.Get(k)
			if err := encodeValue(buf, entry); err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}
		}
		buf.WriteByte('}')
		return nil
	case *node.Object:
		return fmt.Errorf("raw object cannot be encoded: decompose it into a record first")
	case node.Opaque:
		return fmt.Errorf("opaque value %T cannot be encoded: flatten it first", val.Raw)
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
}

// encodeFloat writes a JSON number for a float. NaN and infinities have
// no JSON representation and are rejected.
func encodeFloat(buf *bytes.Buffer, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("float %v has no JSON representation", f)
	}
	buf.Write(strconv.AppendFloat(nil, f, 'g', -1, 64))
	return nil
}

// encodeString writes a canonical JSON string: NFC normalized, with
// only the structurally required escapes. HTML characters and U+2028 /
// U+2029 are written verbatim.
func encodeString(buf *bytes.Buffer, s string) {
	s = norm.NFC.String(s)
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			buf.WriteString(`\"`)
		case c == '\\':
			buf.WriteString(`\\`)
		case c >= 0x20:
			// Multi-byte UTF-8 sequences are all >= 0x80 and pass
			// through here byte-by-byte unchanged.
			buf.WriteByte(c)
		case c == '\b':
			buf.WriteString(`\b`)
		case c == '\f':
			buf.WriteString(`\f`)
		case c == '\n':
			buf.WriteString(`\n`)
		case c == '\r':
			buf.WriteString(`\r`)
		case c == '\t':
			buf.WriteString(`\t`)
		default:
			const hexDigits = "0123456789abcdef"
			buf.WriteString(`\u00`)
			buf.WriteByte(hexDigits[c>>4])
			buf.WriteByte(hexDigits[c&0xf])
		}
	}
	buf.WriteByte('"')
}
