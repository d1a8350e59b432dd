package taml

import "strings"

// Kind identifies which variant of a Value is active.
type Kind int

const (
	Null Kind = iota
	Bool
	Int
	Float
	String
	Object
	Array
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Object:
		return "object"
	case Array:
		return "array"
	}
	return "invalid"
}

// Value is a node in a TAML document tree: either a scalar
// (Null, Bool, Int, Float, String) or a container (Object, Array).
// Exactly one variant is active. Containers own their children;
// sharing a Value between two trees is not supported.
//
// A Value is not safe for concurrent mutation. Concurrent reads are
// fine; guard writes externally.
type Value struct {
	kind Kind

	b bool
	i int64
	f float64
	s string

	// Object state: insertion-ordered keys plus a lookup map.
	keys  []string
	pairs map[string]*Value

	// Array state.
	items []*Value
}

// NewNull returns a new null Value.
func NewNull() *Value { return &Value{kind: Null} }

// NewBool returns a new boolean Value.
func NewBool(b bool) *Value { return &Value{kind: Bool, b: b} }

// NewInt returns a new integer Value.
func NewInt(i int64) *Value { return &Value{kind: Int, i: i} }

// NewFloat returns a new float Value.
func NewFloat(f float64) *Value { return &Value{kind: Float, f: f} }

// NewString returns a new string Value.
func NewString(s string) *Value { return &Value{kind: String, s: s} }

// NewObject returns a new empty object Value.
func NewObject() *Value {
	return &Value{kind: Object, pairs: make(map[string]*Value)}
}

// NewArray returns a new empty array Value.
func NewArray() *Value { return &Value{kind: Array} }

// Kind returns the active variant of v.
func (v *Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v *Value) IsNull() bool { return v.kind == Null }

// Bool returns the boolean payload. The second result is false when
// v is not a Bool.
func (v *Value) Bool() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.b, true
}

// Int returns the integer payload. The second result is false when
// v is not an Int.
func (v *Value) Int() (int64, bool) {
	if v.kind != Int {
		return 0, false
	}
	return v.i, true
}

// Float returns the float payload. The second result is false when
// v is not a Float.
func (v *Value) Float() (float64, bool) {
	if v.kind != Float {
		return 0, false
	}
	return v.f, true
}

// Str returns the string payload. The second result is false when
// v is not a String.
func (v *Value) Str() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.s, true
}

// Len returns the number of keys of an Object, the number of elements
// of an Array, and 0 for scalars.
func (v *Value) Len() int {
	switch v.kind {
	case Object:
		return len(v.keys)
	case Array:
		return len(v.items)
	}
	return 0
}

// Get returns the value stored under key. The second result is false
// when v is not an Object or the key is absent.
func (v *Value) Get(key string) (*Value, bool) {
	if v.kind != Object {
		return nil, false
	}
	val, ok := v.pairs[key]
	return val, ok
}

// Set stores val under key, replacing any previous value. A key set
// for the first time is appended in insertion order; replacing an
// existing key keeps its position. A nil val stores a null Value.
// Set is a no-op when v is not an Object.
func (v *Value) Set(key string, val *Value) {
	if v.kind != Object {
		return
	}
	if val == nil {
		val = NewNull()
	}
	if _, exists := v.pairs[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.pairs[key] = val
}

// Keys returns the object's keys in insertion order. The result is a
// copy; mutating it does not affect v. Keys returns nil when v is not
// an Object.
func (v *Value) Keys() []string {
	if v.kind != Object || len(v.keys) == 0 {
		return nil
	}
	keys := make([]string, len(v.keys))
	copy(keys, v.keys)
	return keys
}

// At returns the element at index i. The second result is false when
// v is not an Array or i is out of range.
func (v *Value) At(i int) (*Value, bool) {
	if v.kind != Array || i < 0 || i >= len(v.items) {
		return nil, false
	}
	return v.items[i], true
}

// Append adds val to the end of the array. A nil val appends a null
// Value. Append is a no-op when v is not an Array.
func (v *Value) Append(val *Value) {
	if v.kind != Array {
		return
	}
	if val == nil {
		val = NewNull()
	}
	v.items = append(v.items, val)
}

// Equal reports whether v and other are structurally equal: same
// variant, same scalar payload, same child order within containers.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case Null:
		return true
	case Bool:
		return v.b == other.b
	case Int:
		return v.i == other.i
	case Float:
		return v.f == other.f
	case String:
		return v.s == other.s
	case Object:
		if len(v.keys) != len(other.keys) {
			return false
		}
		for i, key := range v.keys {
			if other.keys[i] != key {
				return false
			}
			if !v.pairs[key].Equal(other.pairs[key]) {
				return false
			}
		}
		return true
	case Array:
		if len(v.items) != len(other.items) {
			return false
		}
		for i, item := range v.items {
			if !item.Equal(other.items[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// String returns the TAML text representation of v at depth 0.
func (v *Value) String() string {
	var sb strings.Builder
	writeValue(&sb, v, 0)
	return sb.String()
}
