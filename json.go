package taml

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToJSON returns the JSON encoding of v. Object keys keep their
// insertion order. Non-finite floats cannot be represented in JSON
// and return an error.
func ToJSON(v *Value) ([]byte, error) {
	if v == nil {
		return nil, ErrNilInput
	}
	var sb strings.Builder
	if err := writeJSON(&sb, v); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// ToJSON returns the JSON encoding of the document root.
func (d *Document) ToJSON() ([]byte, error) {
	if d == nil || d.root == nil {
		return nil, ErrNilInput
	}
	if d.err != nil {
		return nil, fmt.Errorf("taml: cannot convert document with parse error: %w", d.err)
	}
	return ToJSON(d.root)
}

func writeJSON(sb *strings.Builder, v *Value) error {
	switch v.kind {
	case Null:
		sb.WriteString("null")
	case Bool:
		sb.WriteString(strconv.FormatBool(v.b))
	case Int:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case Float:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return fmt.Errorf("taml: cannot encode %v as JSON", v.f)
		}
		sb.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case String:
		return writeJSONString(sb, v.s)
	case Object:
		sb.WriteByte('{')
		for i, key := range v.keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := writeJSONString(sb, key); err != nil {
				return err
			}
			sb.WriteByte(':')
			if err := writeJSON(sb, v.pairs[key]); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
	case Array:
		sb.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := writeJSON(sb, item); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
	}
	return nil
}

// writeJSONString delegates escaping to encoding/json so the output
// is always valid JSON, control characters included.
func writeJSONString(sb *strings.Builder, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	sb.Write(b)
	return nil
}

// FromJSON parses JSON text into a Document. Object key order in the
// input is preserved in the resulting Value tree. Numbers without a
// fractional part that fit in an int64 become Int, all others Float.
func FromJSON(data []byte) (*Document, error) {
	if data == nil {
		return nil, ErrNilInput
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("taml: invalid JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("taml: unexpected data after JSON value")
	}
	return &Document{root: root}, nil
}

func decodeJSONValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		case '[':
			arr := NewArray()
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Append(val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return NewString(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return NewInt(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return NewFloat(f), nil
	case bool:
		return NewBool(t), nil
	case nil:
		return NewNull(), nil
	}
	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}
