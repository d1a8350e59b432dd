package taml

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/taml-dev/go-taml/internal/scanner"
)

// Document is the result of a parse: exactly one root Value plus the
// diagnostic recorded by a strict parse, if any. A document carrying
// a diagnostic holds a best-effort tree that must not be trusted or
// re-serialized.
type Document struct {
	root *Value
	err  *SyntaxError
}

// Root returns the document's root Value. It is nil for empty input.
func (d *Document) Root() *Value { return d.root }

// Err returns the first grammar violation recorded by a strict parse,
// or nil.
func (d *Document) Err() error {
	if d.err == nil {
		return nil
	}
	return d.err
}

// Parse builds a Document from TAML text.
//
// In the default permissive mode, lines violating the grammar are
// skipped and never fail the parse. With the Strict option the first
// violation is recorded in the Document's Err; the tree is still
// built on a best-effort basis and callers must check Err before
// trusting it. Scalar coercion follows the ConvertTypes rule unless
// NoTypeConversion is given.
func Parse(data []byte, opts ...Option) (*Document, error) {
	if data == nil {
		return nil, ErrNilInput
	}
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	if o.strict {
		// Strict mode enforces exactly the validator's rules, so the
		// two surfaces can never disagree on what is well-formed.
		var serr *SyntaxError
		if verr := Validate(data); errors.As(verr, &serr) {
			doc.err = serr
		}
	}

	kept := scanner.Kept(string(data))
	doc.root = buildNode(kept, 0, len(kept), -1, o)
	return doc, nil
}

// buildNode parses the contiguous run of lines in [start, end) whose
// depth is parentDepth+1, together with their nested bands, into a
// single Object or Array. It returns nil for an empty band.
func buildNode(lines []scanner.Line, start, end, parentDepth int, o *options) *Value {
	if start >= end {
		return nil
	}
	if bandIsObject(lines, start, end, parentDepth) {
		return buildObject(lines, start, end, parentDepth, o)
	}
	return buildArray(lines, start, end, parentDepth, o)
}

// bandIsObject decides the container type for the immediate child
// band. The first structural evidence wins, scanning in source order:
// a tab separator or a nested child band both mean named fields, so
// Object. A band of bare leaf lines is an Array.
func bandIsObject(lines []scanner.Line, start, end, parentDepth int) bool {
	for i := start; i < end; i++ {
		ln := lines[i]
		if ln.Depth <= parentDepth {
			break
		}
		if ln.Depth != parentDepth+1 {
			continue
		}
		if strings.IndexByte(ln.Content, '\t') >= 0 {
			return true
		}
		if hasChildBand(lines, i, end) {
			return true
		}
	}
	return false
}

// hasChildBand reports whether the line at index i is followed by at
// least one line exactly one level deeper, before its band ends.
func hasChildBand(lines []scanner.Line, i, end int) bool {
	depth := lines[i].Depth
	for j := i + 1; j < end; j++ {
		if lines[j].Depth <= depth {
			return false
		}
		if lines[j].Depth == depth+1 {
			return true
		}
	}
	return false
}

// bandEnd returns the index just past the last line belonging to the
// nested band under line i.
func bandEnd(lines []scanner.Line, i, end int) int {
	depth := lines[i].Depth
	j := i + 1
	for j < end && lines[j].Depth > depth {
		j++
	}
	return j
}

func buildObject(lines []scanner.Line, start, end, parentDepth int, o *options) *Value {
	obj := NewObject()
	i := start
	for i < end {
		ln := lines[i]
		if ln.Depth <= parentDepth {
			break
		}
		if ln.Depth != parentDepth+1 {
			i++
			continue
		}

		content := ln.Content
		if idx := strings.IndexByte(content, '\t'); idx >= 0 {
			key := trimTrailing(content[:idx])
			if key == "" {
				i++
				continue
			}
			raw := trimTrailing(strings.TrimLeft(content[idx+1:], "\t"))
			obj.Set(key, coerceScalar(raw, o))
			i++
			continue
		}

		key := trimTrailing(content)
		if key == "" {
			i++
			continue
		}
		ce := bandEnd(lines, i, end)
		if child := buildNode(lines, i+1, ce, ln.Depth, o); child != nil {
			obj.Set(key, child)
		}
		i = ce
	}
	return obj
}

func buildArray(lines []scanner.Line, start, end, parentDepth int, o *options) *Value {
	arr := NewArray()
	i := start
	for i < end {
		ln := lines[i]
		if ln.Depth <= parentDepth {
			break
		}
		if ln.Depth != parentDepth+1 {
			i++
			continue
		}

		if hasChildBand(lines, i, end) {
			ce := bandEnd(lines, i, end)
			if child := buildNode(lines, i+1, ce, ln.Depth, o); child != nil {
				arr.Append(child)
			}
			i = ce
			continue
		}

		arr.Append(coerceScalar(trimTrailing(ln.Content), o))
		i++
	}
	return arr
}

// coerceScalar maps raw leaf text to a typed Value. The sentinels are
// always honored; boolean and number coercion apply only when type
// conversion is enabled. Everything else is a String, verbatim.
func coerceScalar(s string, o *options) *Value {
	if s == nullLiteral {
		return NewNull()
	}
	if s == emptyStringLiteral {
		return NewString("")
	}
	if !o.noConversion {
		switch s {
		case "true":
			return NewBool(true)
		case "false":
			return NewBool(false)
		}
		if isFloat, ok := scanNumber(s); ok {
			if isFloat {
				if f, err := strconv.ParseFloat(s, 64); err == nil {
					return NewFloat(f)
				}
			} else if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return NewInt(n)
			}
			// Out-of-range numbers stay strings.
		}
	}
	return NewString(s)
}

// scanNumber reports whether s is an optional sign, one or more
// digits, and optionally a single decimal point followed by one or
// more digits. No exponent, no surrounding junk. The first result is
// true when a decimal point is present.
func scanNumber(s string) (isFloat, ok bool) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digitStart := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digitStart {
		return false, false
	}
	if i == len(s) {
		return false, true
	}
	if s[i] != '.' {
		return false, false
	}
	i++
	fracStart := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == fracStart || i != len(s) {
		return false, false
	}
	return true, true
}

func trimTrailing(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
