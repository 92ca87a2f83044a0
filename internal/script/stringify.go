package script

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Stringify renders any value as display text. It never fails:
//   - text scalars render as themselves
//   - sequences render as a ", "-joined list of their stringified items
//   - mappings render as two-space indented JSON in document key order
//   - null renders as ""
//   - other scalars render in their source form
func Stringify(v Value) string {
	switch v.kind {
	case KindScalar:
		return v.text
	case KindSequence:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ", ")
	case KindMapping:
		return Dump(v)
	default:
		return ""
	}
}

// Dump renders the value as indented JSON, keeping key order and leaving
// non-ASCII text unescaped.
func Dump(v Value) string {
	var compact bytes.Buffer
	writeJSON(&compact, v)
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return compact.String()
	}
	return out.String()
}

// MarshalJSON implements json.Marshaler with document key order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	writeJSON(&buf, v)
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v Value) {
	switch v.kind {
	case KindScalar:
		if !v.quoted && json.Valid([]byte(v.text)) {
			buf.WriteString(v.text)
			return
		}
		writeJSONString(buf, v.text)
	case KindSequence:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSON(buf, item)
		}
		buf.WriteByte(']')
	case KindMapping:
		buf.WriteByte('{')
		for i, e := range v.entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, e.Key)
			buf.WriteByte(':')
			writeJSON(buf, e.Value)
		}
		buf.WriteByte('}')
	default:
		buf.WriteString("null")
	}
}

func writeJSONString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	// Encode terminates with a newline.
	buf.Truncate(buf.Len() - 1)
}
