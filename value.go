package jsonschema

import (
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// Kind identifies the JSON type of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is an immutable, order-preserving JSON value: the in-memory shape
// every Source document, schema, and instance is decoded into. Object key
// order is preserved (see Object below) so that C4's walk order invariant in
// spec.md §4.4/§8 ("object keys in insertion order") holds.
type Value struct {
	kind    Kind
	b       bool
	numKey  NumberKey
	numText string
	str     string
	arr     []Value
	obj     *Object
}

// Object is an insertion-ordered JSON object.
type Object struct {
	keys []string
	vals []Value
}

// NewObject builds an Object from parallel key/value slices, in the given
// order. Callers own the slices; Object does not copy them.
func NewObject(keys []string, vals []Value) *Object {
	return &Object{keys: keys, vals: vals}
}

// Len reports the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the member names in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// Get returns the value for key and whether it was present. Lookup is
// linear: schema objects are small, and linear scan keeps insertion order
// the single source of truth instead of maintaining a second index that
// could drift from it.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	for i, k := range o.keys {
		if k == key {
			return o.vals[i], true
		}
	}
	return Value{}, false
}

// Each calls fn for every member in insertion order, stopping early if fn
// returns false.
func (o *Object) Each(fn func(key string, v Value) bool) {
	if o == nil {
		return
	}
	for i, k := range o.keys {
		if !fn(k, o.vals[i]) {
			return
		}
	}
}

// At returns the i-th member in insertion order.
func (o *Object) At(i int) (string, Value) {
	return o.keys[i], o.vals[i]
}

func Null() Value                  { return Value{kind: KindNull} }
func Bool(b bool) Value            { return Value{kind: KindBool, b: b} }
func String(s string) Value        { return Value{kind: KindString, str: s} }
func Array(items []Value) Value    { return Value{kind: KindArray, arr: items} }
func FromObject(o *Object) Value   { return Value{kind: KindObject, obj: o} }
func Number(key NumberKey, text string) Value {
	return Value{kind: KindNumber, numKey: key, numText: text}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

func (v Value) AsObject() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

func (v Value) AsNumber() (NumberKey, string, bool) {
	if v.kind != KindNumber {
		return 0, "", false
	}
	return v.numKey, v.numText, true
}

// TypeName returns the JSON Schema vocabulary type name for v ("integer" is
// reported for any number whose value is integral, including 1.0 and 1e2).
func (v Value) TypeName(numbers *NumberCache) string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindNumber:
		if numbers != nil && numbers.IsInt(v.numKey) {
			return "integer"
		}
		return "number"
	default:
		return "unknown"
	}
}

// Equal implements the structural equality JSON Schema needs for `const`,
// `enum`, and `uniqueItems`: numbers compare by value (not text), objects
// compare members regardless of key order, and arrays compare element-wise.
func (v Value) Equal(o Value, numbers *NumberCache) bool {
	if v.kind != o.kind {
		// Numbers written as 1 and 1.0 both land in KindNumber, so
		// this branch only rejects genuinely different kinds.
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.str == o.str
	case KindNumber:
		if numbers == nil {
			return v.numText == o.numText
		}
		return numbers.Rat(v.numKey).Cmp(numbers.Rat(o.numKey)) == 0
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i], numbers) {
				return false
			}
		}
		return true
	case KindObject:
		if v.obj.Len() != o.obj.Len() {
			return false
		}
		match := true
		v.obj.Each(func(k string, vv Value) bool {
			ov, ok := o.obj.Get(k)
			if !ok || !vv.Equal(ov, numbers) {
				match = false
				return false
			}
			return true
		})
		return match
	default:
		return false
	}
}

// Native converts v into a plain Go value (nil / bool / string / float64 /
// []any / map[string]any), for consumption by pluggable format validators
// (formats.go) that predate this Value type and operate on interface{}.
func (v Value) Native(numbers *NumberCache) any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindString:
		return v.str
	case KindNumber:
		return numbers.Float64(v.numKey)
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Native(numbers)
		}
		return out
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		v.obj.Each(func(k string, vv Value) bool {
			out[k] = vv.Native(numbers)
			return true
		})
		return out
	default:
		return nil
	}
}

// escapePointerToken escapes a JSON Pointer reference token per RFC 6901:
// "~" becomes "~0", "/" becomes "~1". Delegates to the teacher's own
// jsonpointer library (ref.go, schema.go) rather than hand-rolling the
// replacer: jsonpointer.Format(tok) produces "/"+escape(tok), so the leading
// slash is trimmed back off.
func escapePointerToken(tok string) string {
	if !strings.ContainsAny(tok, "~/") {
		return tok
	}
	return strings.TrimPrefix(jsonpointer.Format(tok), "/")
}

func joinPointer(base string, token string) string {
	return base + "/" + escapePointerToken(token)
}
