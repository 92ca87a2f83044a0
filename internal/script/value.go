// Package script models the loosely-typed script document tree. Every node is
// resolved once at decode time into one of a closed set of shapes (null,
// scalar, sequence, mapping) so renderers can switch on Kind instead of
// probing Go types.
package script

import "strings"

// Kind enumerates the shapes a Value can take.
type Kind int

const (
	KindNull Kind = iota
	KindScalar
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "null"
	}
}

// Entry is one key/value pair of a mapping, kept in document order.
type Entry struct {
	Key   string
	Value Value
}

// Value is a node of the document tree. The zero Value is null.
type Value struct {
	kind    Kind
	text    string
	quoted  bool
	items   []Value
	entries []Entry
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Str builds a text scalar.
func Str(s string) Value {
	return Value{kind: KindScalar, text: s, quoted: true}
}

// Raw builds a non-text scalar (number, boolean) from its source form.
func Raw(text string) Value {
	return Value{kind: KindScalar, text: text}
}

// Seq builds a sequence.
func Seq(items ...Value) Value {
	return Value{kind: KindSequence, items: append([]Value{}, items...)}
}

// Map builds a mapping. Duplicate keys keep their first position and take the
// last value.
func Map(entries ...Entry) Value {
	v := Value{kind: KindMapping, entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		v.set(e.Key, e.Value)
	}
	return v
}

// Pair is shorthand for an Entry literal.
func Pair(key string, value Value) Entry {
	return Entry{Key: key, Value: value}
}

func (v *Value) set(key string, value Value) {
	for i := range v.entries {
		if v.entries[i].Key == key {
			v.entries[i].Value = value
			return
		}
	}
	v.entries = append(v.entries, Entry{Key: key, Value: value})
}

// Kind reports the shape of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null or absent.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// IsText reports whether the value is a text scalar.
func (v Value) IsText() bool {
	return v.kind == KindScalar && v.quoted
}

// Text returns the scalar source text, or "" for non-scalars.
func (v Value) Text() string {
	if v.kind != KindScalar {
		return ""
	}
	return v.text
}

// Len returns the number of sequence items or mapping entries.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindMapping:
		return len(v.entries)
	default:
		return 0
	}
}

// Present reports whether the value carries content: not null, not blank
// text, not an empty container.
func (v Value) Present() bool {
	switch v.kind {
	case KindScalar:
		return v.text != ""
	case KindSequence, KindMapping:
		return v.Len() > 0
	default:
		return false
	}
}

// Entries returns the mapping entries in document order.
func (v Value) Entries() []Entry {
	if v.kind != KindMapping {
		return nil
	}
	return append([]Entry{}, v.entries...)
}

// Items returns the elements of a sequence. Any other present value is
// treated as a single-element list so callers can always iterate.
func (v Value) Items() []Value {
	switch v.kind {
	case KindSequence:
		return append([]Value{}, v.items...)
	case KindNull:
		return nil
	default:
		return []Value{v}
	}
}

// Has reports whether a mapping declares key with a non-null value.
func (v Value) Has(key string) bool {
	return !v.Get(key).IsNull()
}

// Get returns the value stored under key, or null.
func (v Value) Get(key string) Value {
	if v.kind != KindMapping {
		return Value{}
	}
	for _, e := range v.entries {
		if e.Key == key {
			return e.Value
		}
	}
	return Value{}
}

// First returns the value of the first key that is declared with a non-null
// value. Used for fields whose name varies between document revisions.
func (v Value) First(keys ...string) Value {
	for _, key := range keys {
		if got := v.Get(key); !got.IsNull() {
			return got
		}
	}
	return Value{}
}

// TextOr stringifies the value, or returns fallback when it is null.
func (v Value) TextOr(fallback string) string {
	if v.IsNull() {
		return fallback
	}
	return Stringify(v)
}

// String implements fmt.Stringer.
func (v Value) String() string {
	return Stringify(v)
}

// Lookup walks a dotted path of mapping keys.
func (v Value) Lookup(path string) Value {
	cur := v
	for _, key := range strings.Split(path, ".") {
		cur = cur.Get(key)
		if cur.IsNull() {
			return cur
		}
	}
	return cur
}
