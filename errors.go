package taml

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNilInput is returned when a nil input is given where TAML text
// or a Value is required.
var ErrNilInput = errors.New("taml: nil input")

// ErrorKind classifies a grammar violation.
type ErrorKind string

const (
	// InvalidIndentation marks a line indented with spaces.
	InvalidIndentation ErrorKind = "invalid indentation"
	// MixedIndent marks a line whose leading whitespace mixes tabs and spaces.
	MixedIndent ErrorKind = "mixed indentation"
	// InconsistentIndent marks a line that skips one or more indentation levels.
	InconsistentIndent ErrorKind = "inconsistent indentation"
	// OrphanedLine marks an indented line whose preceding line already
	// carried a same-line value and so cannot be its parent.
	OrphanedLine ErrorKind = "orphaned line"
	// EmptyKey marks a line with no key before the separator.
	EmptyKey ErrorKind = "empty key"
	// TabInKey marks a key containing a literal tab character.
	TabInKey ErrorKind = "tab in key"
	// TabInValue marks a value containing a literal tab character.
	TabInValue ErrorKind = "tab in value"
	// ParentWithValue marks a parent key that also carries a same-line
	// value. Reserved: the line grammar cannot currently produce it.
	ParentWithValue ErrorKind = "parent with value"
	// ParseFailed is the catch-all for failures outside the grammar,
	// such as an unreadable file.
	ParseFailed ErrorKind = "parse failed"
)

// SyntaxError describes a single grammar violation with its 1-based
// source line number.
type SyntaxError struct {
	Kind    ErrorKind
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("taml: line %d: %s", e.Line, e.Message)
}

// Is reports whether target is a *SyntaxError of the same kind,
// so callers can match on kind alone with errors.Is.
func (e *SyntaxError) Is(target error) bool {
	t, ok := target.(*SyntaxError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Line == 0 || t.Line == e.Line)
}

// A MarshalerError represents an error from calling a MarshalTAML method.
type MarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *MarshalerError) Error() string {
	return "taml: error calling MarshalTAML for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *MarshalerError) Unwrap() error { return e.Err }

// An UnmarshalerError represents an error from calling an UnmarshalTAML method.
type UnmarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *UnmarshalerError) Error() string {
	return "taml: error calling UnmarshalTAML for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *UnmarshalerError) Unwrap() error { return e.Err }
