package taml

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
)

// Marshaler is the interface implemented by types that can marshal
// themselves into valid TAML.
type Marshaler interface {
	MarshalTAML() ([]byte, error)
}

// Marshal returns the TAML encoding of v.
//
// Struct fields are encoded in declaration order under their field
// name, or the name given in a `taml` tag. Fields tagged "-" are
// dropped; the "omitempty" tag option drops zero-valued fields. Map
// keys are sorted so output is deterministic.
func Marshal(v any, opts ...Option) ([]byte, error) {
	val, err := valueOf(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}
	return Serialize(val, opts...)
}

// marshalCustom parses the output of a MarshalTAML call back into a
// Value so it can be grafted into the tree being built. A bare scalar
// comes back from the parser as a one-element array band and is
// unwrapped; empty output is treated as null.
func marshalCustom(v reflect.Value, m Marshaler) (*Value, error) {
	b, err := m.MarshalTAML()
	if err != nil {
		return nil, &MarshalerError{Type: v.Type(), Err: err}
	}
	doc, err := Parse(b)
	if err != nil {
		return nil, &MarshalerError{Type: v.Type(), Err: err}
	}
	root := doc.Root()
	if root == nil {
		return NewNull(), nil
	}
	if root.Kind() == Array && root.Len() == 1 {
		if item, ok := root.At(0); ok && item.Kind() != Object && item.Kind() != Array {
			return item, nil
		}
	}
	return root, nil
}

// parseTag splits a taml struct tag into its name and options.
func parseTag(tag string) (string, map[string]bool) {
	parts := strings.Split(tag, ",")
	name := parts[0]
	options := make(map[string]bool)
	for _, part := range parts[1:] {
		options[strings.TrimSpace(part)] = true
	}
	return name, options
}

// isEmptyValue reports whether the value v is empty.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}

func valueOf(v reflect.Value) (*Value, error) { //nolint:gocyclo
	// Handle nil interfaces explicitly to avoid panics.
	if !v.IsValid() || (v.Kind() == reflect.Interface && v.IsNil()) {
		return NewNull(), nil
	}

	// Check for a custom Marshaler on the value and on a pointer to
	// it, to handle both receiver forms.
	if v.Type().NumMethod() > 0 && v.CanInterface() {
		if m, ok := v.Interface().(Marshaler); ok {
			return marshalCustom(v, m)
		}
	}
	if v.Kind() != reflect.Pointer {
		var pv reflect.Value
		if v.CanAddr() {
			pv = v.Addr()
		} else {
			pv = reflect.New(v.Type())
			pv.Elem().Set(v)
		}
		if pv.Type().NumMethod() > 0 && pv.CanInterface() {
			if m, ok := pv.Interface().(Marshaler); ok {
				return marshalCustom(pv, m)
			}
		}
	}

	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return NewNull(), nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		return NewString(v.String()), nil
	case reflect.Bool:
		return NewBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewInt(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("taml: cannot marshal uint64 %d (overflows int64)", u)
		}
		return NewInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return NewFloat(v.Float()), nil
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return NewNull(), nil
		}
		arr := NewArray()
		for i := 0; i < v.Len(); i++ {
			elem, err := valueOf(v.Index(i))
			if err != nil {
				return nil, err
			}
			arr.Append(elem)
		}
		return arr, nil
	case reflect.Map:
		if v.IsNil() {
			return NewNull(), nil
		}
		if v.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("taml: map key type must be a string, got %s", v.Type().Key())
		}
		keys := make([]string, 0, v.Len())
		for _, k := range v.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			if strings.ContainsAny(k, "\t\n") {
				return nil, fmt.Errorf("taml: map key %q contains tab or newline", k)
			}
			elem, err := valueOf(v.MapIndex(reflect.ValueOf(k)))
			if err != nil {
				return nil, err
			}
			obj.Set(k, elem)
		}
		return obj, nil
	case reflect.Struct:
		obj := NewObject()
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			if f.Anonymous && f.Type.Kind() == reflect.Struct && f.Tag.Get("taml") == "" {
				continue
			}
			name, tagOpts := parseTag(f.Tag.Get("taml"))
			if name == "-" {
				continue
			}
			fv := v.Field(i)
			if tagOpts["omitempty"] && isEmptyValue(fv) {
				continue
			}
			if name == "" {
				name = f.Name
			}
			elem, err := valueOf(fv)
			if err != nil {
				return nil, err
			}
			obj.Set(name, elem)
		}
		// Promote the fields of untagged embedded structs; direct
		// fields win on name collisions.
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() || !f.Anonymous || f.Tag.Get("taml") != "" {
				continue
			}
			if f.Type.Kind() != reflect.Struct {
				continue
			}
			embedded, err := valueOf(v.Field(i))
			if err != nil {
				return nil, err
			}
			if embedded.Kind() != Object {
				continue
			}
			for _, key := range embedded.Keys() {
				if _, exists := obj.Get(key); exists {
					continue
				}
				child, _ := embedded.Get(key)
				obj.Set(key, child)
			}
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("taml: unsupported type for marshaling: %s", v.Type())
	}
}
