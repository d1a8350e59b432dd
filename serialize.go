package taml

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	nullLiteral        = "~"
	emptyStringLiteral = `""`
)

// Serialize returns the canonical TAML encoding of v. The Indent
// option sets the starting depth; the default is 0.
//
// Serializing a container that holds another container inside an
// Array is permitted, but the TAML grammar cannot distinguish such a
// tree from nested objects on re-parse.
func Serialize(v *Value, opts ...Option) ([]byte, error) {
	if v == nil {
		return nil, ErrNilInput
	}
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	writeValue(&sb, v, o.indent)
	return []byte(sb.String()), nil
}

// writeValue emits v at the given tab depth. Scalars are written bare;
// containers emit one line per member with their own indentation and
// trailing newline.
func writeValue(sb *strings.Builder, v *Value, depth int) {
	switch v.kind {
	case Null:
		sb.WriteString(nullLiteral)
	case Bool:
		sb.WriteString(strconv.FormatBool(v.b))
	case Int:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case Float:
		sb.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case String:
		if v.s == "" {
			sb.WriteString(emptyStringLiteral)
		} else {
			sb.WriteString(v.s)
		}
	case Object:
		for _, key := range v.keys {
			child := v.pairs[key]
			writeTabs(sb, depth)
			sb.WriteString(key)
			if child.kind == Object || child.kind == Array {
				sb.WriteByte('\n')
				writeValue(sb, child, depth+1)
			} else {
				sb.WriteByte('\t')
				writeValue(sb, child, depth)
				sb.WriteByte('\n')
			}
		}
	case Array:
		for _, item := range v.items {
			if item.kind == Object || item.kind == Array {
				// The nested call emits its own leading tabs and a
				// newline per member.
				writeValue(sb, item, depth+1)
			} else {
				writeTabs(sb, depth)
				writeValue(sb, item, depth)
				sb.WriteByte('\n')
			}
		}
	}
}

func writeTabs(sb *strings.Builder, n int) {
	for i := 0; i < n; i++ {
		sb.WriteByte('\t')
	}
}

// Serialize returns the canonical TAML encoding of the document root.
// A document holding a diagnostic from a strict parse cannot be
// serialized.
func (d *Document) Serialize(opts ...Option) ([]byte, error) {
	if d == nil || d.root == nil {
		return nil, ErrNilInput
	}
	if d.err != nil {
		return nil, fmt.Errorf("taml: cannot serialize document with parse error: %w", d.err)
	}
	return Serialize(d.root, opts...)
}
