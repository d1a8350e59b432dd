package taml

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/iancoleman/strcase"
)

// Unmarshaler is the interface implemented by types that can
// unmarshal a TAML fragment of themselves.
type Unmarshaler interface {
	UnmarshalTAML([]byte) error
}

const defaultMaxDepth = 1000

// Unmarshal parses TAML-encoded data and stores the result in the
// value pointed to by v.
//
// Object keys are matched against struct fields by `taml` tag, then
// exact field name, then case-insensitive name, then the field name's
// snake_case form, so a key like server_name finds a ServerName
// field without a tag. The MaxDepth option bounds recursion.
func Unmarshal(data []byte, v any, opts ...Option) error {
	if data == nil {
		return ErrNilInput
	}
	o, err := newOptions(opts)
	if err != nil {
		return err
	}

	doc, err := Parse(data, opts...)
	if err != nil {
		return err
	}
	if doc.Err() != nil {
		return doc.Err()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("taml: Unmarshal(non-pointer %T or nil)", v)
	}
	if doc.root == nil {
		return nil
	}
	ds := &decodeState{depth: o.maxDepth}
	return ds.assign(doc.root, rv.Elem())
}

type decodeState struct {
	depth int
}

func (ds *decodeState) assign(val *Value, rv reflect.Value) error { //nolint:gocyclo
	ds.depth--
	if ds.depth <= 0 {
		return fmt.Errorf("taml: reached max recursion depth")
	}
	defer func() { ds.depth++ }()

	if val.IsNull() {
		switch rv.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
	}

	handled, err := ds.tryCustomUnmarshal(val, rv)
	if err != nil {
		return err
	}
	if handled {
		return nil
	}

	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	if rv.Kind() == reflect.Interface {
		return ds.assignInterface(val, rv)
	}
	if !rv.CanSet() {
		return fmt.Errorf("taml: cannot set value of type %s", rv.Type())
	}

	switch val.Kind() {
	case Null:
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	case Bool:
		if rv.Kind() != reflect.Bool {
			return fmt.Errorf("taml: cannot unmarshal boolean into Go value of type %s", rv.Type())
		}
		b, _ := val.Bool()
		rv.SetBool(b)
		return nil
	case Int:
		return ds.assignInt(val, rv)
	case Float:
		return ds.assignFloat(val, rv)
	case String:
		if rv.Kind() != reflect.String {
			return fmt.Errorf("taml: cannot unmarshal string into Go value of type %s", rv.Type())
		}
		s, _ := val.Str()
		rv.SetString(s)
		return nil
	case Array:
		switch rv.Kind() {
		case reflect.Slice:
			return ds.assignSlice(val, rv)
		case reflect.Array:
			return ds.assignArray(val, rv)
		default:
			return fmt.Errorf("taml: cannot unmarshal array into Go value of type %s", rv.Type())
		}
	case Object:
		switch rv.Kind() {
		case reflect.Struct:
			return ds.assignStruct(val, rv)
		case reflect.Map:
			return ds.assignMap(val, rv)
		default:
			return fmt.Errorf("taml: cannot unmarshal object into Go value of type %s", rv.Type())
		}
	}
	return fmt.Errorf("taml: unsupported value kind %s", val.Kind())
}

// tryCustomUnmarshal attempts a custom unmarshaler (taml.Unmarshaler
// or encoding.TextUnmarshaler) on rv. It returns true if one was
// found and used.
func (ds *decodeState) tryCustomUnmarshal(val *Value, rv reflect.Value) (bool, error) {
	if !rv.CanAddr() {
		return false, nil
	}
	pv := rv.Addr()
	if !pv.CanInterface() {
		return false, nil
	}

	if u, ok := pv.Interface().(Unmarshaler); ok {
		b, err := Serialize(val)
		if err != nil {
			return true, fmt.Errorf("taml: failed to re-serialize value for custom unmarshaler: %w", err)
		}
		if err := u.UnmarshalTAML(b); err != nil {
			return true, &UnmarshalerError{Type: pv.Type(), Err: err}
		}
		return true, nil
	}

	if u, ok := pv.Interface().(encoding.TextUnmarshaler); ok {
		s, isString := val.Str()
		if !isString {
			// TextUnmarshaler applies to string values only.
			return false, nil
		}
		if err := u.UnmarshalText([]byte(s)); err != nil {
			return true, &UnmarshalerError{Type: pv.Type(), Err: err}
		}
		return true, nil
	}

	return false, nil
}

func (ds *decodeState) assignInt(val *Value, rv reflect.Value) error {
	i, _ := val.Int()
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.OverflowInt(i) {
			return fmt.Errorf("taml: integer value %d overflows Go value of type %s", i, rv.Type())
		}
		rv.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if i < 0 || rv.OverflowUint(uint64(i)) {
			return fmt.Errorf("taml: integer value %d overflows Go value of type %s", i, rv.Type())
		}
		rv.SetUint(uint64(i))
	case reflect.Float32, reflect.Float64:
		rv.SetFloat(float64(i))
	default:
		return fmt.Errorf("taml: cannot unmarshal integer into Go value of type %s", rv.Type())
	}
	return nil
}

func (ds *decodeState) assignFloat(val *Value, rv reflect.Value) error {
	f, _ := val.Float()
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		if rv.OverflowFloat(f) {
			return fmt.Errorf("taml: float value %f overflows Go value of type %s", f, rv.Type())
		}
		rv.SetFloat(f)
		return nil
	default:
		return fmt.Errorf("taml: cannot unmarshal float into Go value of type %s", rv.Type())
	}
}

func (ds *decodeState) assignSlice(val *Value, rv reflect.Value) error {
	n := val.Len()
	newSlice := reflect.MakeSlice(rv.Type(), n, n)
	for i := 0; i < n; i++ {
		item, _ := val.At(i)
		if err := ds.assign(item, newSlice.Index(i)); err != nil {
			return err
		}
	}
	rv.Set(newSlice)
	return nil
}

func (ds *decodeState) assignArray(val *Value, rv reflect.Value) error {
	if rv.Len() != val.Len() {
		return fmt.Errorf("taml: cannot unmarshal array of length %d into Go array of length %d",
			val.Len(), rv.Len())
	}
	for i := 0; i < val.Len(); i++ {
		item, _ := val.At(i)
		if err := ds.assign(item, rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (ds *decodeState) assignMap(val *Value, rv reflect.Value) error {
	mapType := rv.Type()
	if mapType.Key().Kind() != reflect.String {
		return fmt.Errorf("taml: cannot unmarshal object into map with non-string key type %s", mapType.Key())
	}
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(mapType))
	} else {
		for _, k := range rv.MapKeys() {
			rv.SetMapIndex(k, reflect.Value{}) // the zero Value deletes the key
		}
	}
	elemType := mapType.Elem()
	for _, key := range val.Keys() {
		child, _ := val.Get(key)
		newVal := reflect.New(elemType).Elem()
		if err := ds.assign(child, newVal); err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(key), newVal)
	}
	return nil
}

func (ds *decodeState) assignStruct(val *Value, rv reflect.Value) error {
	fields := cachedFields(rv.Type())
	for _, key := range val.Keys() {
		child, _ := val.Get(key)
		f := findField(fields, key)
		if f == nil {
			continue
		}
		fieldVal := rv.FieldByIndex(f.idx)
		if fieldVal.IsValid() && fieldVal.CanSet() {
			if err := ds.assign(child, fieldVal); err != nil {
				return err
			}
		}
	}
	return nil
}

func (ds *decodeState) assignInterface(val *Value, rv reflect.Value) error {
	if rv.NumMethod() != 0 {
		return fmt.Errorf("taml: cannot unmarshal into non-empty interface %s", rv.Type())
	}
	var concrete reflect.Value
	switch val.Kind() {
	case Null:
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	case Bool:
		var b bool
		concrete = reflect.ValueOf(&b).Elem()
	case Int:
		var i int64
		concrete = reflect.ValueOf(&i).Elem()
	case Float:
		var f float64
		concrete = reflect.ValueOf(&f).Elem()
	case String:
		var s string
		concrete = reflect.ValueOf(&s).Elem()
	case Array:
		var a []any
		concrete = reflect.ValueOf(&a).Elem()
	case Object:
		var o map[string]any
		concrete = reflect.ValueOf(&o).Elem()
	default:
		return fmt.Errorf("taml: cannot determine concrete type for %s", val.Kind())
	}
	if err := ds.assign(val, concrete); err != nil {
		return err
	}
	rv.Set(concrete)
	return nil
}

// A field represents a single addressable field in a struct.
type field struct {
	idx []int
}

// fieldCache caches the key-to-field lookup tables per struct type.
var fieldCache sync.Map // map[reflect.Type]map[string]field

// findField resolves a TAML key to a struct field: exact match first,
// then case-insensitive. Snake-case aliases are part of the cached
// table, so server_name resolves to ServerName without a tag.
func findField(fields map[string]field, key string) *field {
	if f, ok := fields[key]; ok {
		return &f
	}
	if f, ok := fields[strings.ToLower(key)]; ok {
		return &f
	}
	return nil
}

// cachedFields builds (or fetches) the lookup table for a struct
// type. A tagged field is reachable through its tag name only; an
// untagged field through its name, lowercase name, and snake_case
// name. Earlier fields win on alias collisions.
func cachedFields(t reflect.Type) map[string]field {
	if f, ok := fieldCache.Load(t); ok {
		if fields, ok := f.(map[string]field); ok {
			return fields
		}
	}

	fields := make(map[string]field)
	add := func(name string, f field) {
		if _, exists := fields[name]; !exists {
			fields[name] = f
		}
	}

	// Direct fields first so they shadow promoted ones.
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && sf.Tag.Get("taml") == "" {
			continue
		}
		f := field{idx: sf.Index}
		name, _ := parseTag(sf.Tag.Get("taml"))
		if name == "-" {
			continue
		}
		if name != "" {
			add(name, f)
			continue
		}
		add(sf.Name, f)
		add(strings.ToLower(sf.Name), f)
		add(strcase.ToSnake(sf.Name), f)
	}

	// Promote the fields of untagged embedded structs.
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || !sf.Anonymous || sf.Tag.Get("taml") != "" {
			continue
		}
		if sf.Type.Kind() != reflect.Struct {
			continue
		}
		for name, sub := range cachedFields(sf.Type) {
			idx := make([]int, 0, len(sf.Index)+len(sub.idx))
			idx = append(append(idx, sf.Index...), sub.idx...)
			add(name, field{idx: idx})
		}
	}

	fieldCache.Store(t, fields)
	return fields
}
