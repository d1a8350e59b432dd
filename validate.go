package taml

import (
	"fmt"
	"strings"

	"github.com/taml-dev/go-taml/internal/scanner"
)

// lineState carries the validator's memory between structural lines:
// the depth of the last accepted line and whether that line carried a
// same-line value (a key/value pair cannot be a parent).
type lineState struct {
	depth    int
	hadValue bool
}

// Validate checks text against the TAML grammar without building a
// tree. It returns nil when the text is valid, and the first
// violation as a *SyntaxError otherwise. Validate accepts exactly the
// inputs a strict Parse accepts.
func Validate(data []byte) error {
	if data == nil {
		return ErrNilInput
	}
	state := lineState{depth: -1}
	for _, ln := range scanner.Split(string(data)) {
		if ln.Skip {
			continue
		}
		if err := checkLine(ln, state); err != nil {
			return err
		}
		state = nextState(ln)
	}
	return nil
}

// ValidateAll checks the whole input and returns every violation, at
// most one per line, in source order. After reporting a line it
// carries on as if the line had been accepted, so later diagnostics
// keep their context.
func ValidateAll(data []byte) []error {
	if data == nil {
		return []error{ErrNilInput}
	}
	var errs []error
	state := lineState{depth: -1}
	for _, ln := range scanner.Split(string(data)) {
		if ln.Skip {
			continue
		}
		if err := checkLine(ln, state); err != nil {
			errs = append(errs, err)
		}
		state = nextState(ln)
	}
	return errs
}

// nextState derives the inter-line state from an accepted line.
func nextState(ln scanner.Line) lineState {
	content := strings.TrimSuffix(ln.Content, "\r")
	return lineState{
		depth:    ln.Depth,
		hadValue: strings.IndexByte(content, '\t') >= 0,
	}
}

// checkLine classifies a single structural line against the grammar.
// The checks run in a fixed priority order; the first hit wins.
func checkLine(ln scanner.Line, prev lineState) *SyntaxError {
	content := strings.TrimSuffix(ln.Content, "\r")

	// Spaces can never indent. A space before any tab means the line
	// starts with one; a space after the leading tabs but before the
	// first non-whitespace character is mixed indentation.
	if ln.Depth == 0 && content != "" && content[0] == ' ' {
		return &SyntaxError{
			Kind:    InvalidIndentation,
			Line:    ln.Num,
			Message: "indentation must use tabs, not spaces",
		}
	}
	if ln.Depth > 0 && content != "" && content[0] == ' ' {
		return &SyntaxError{
			Kind:    MixedIndent,
			Line:    ln.Num,
			Message: "mixed spaces and tabs in indentation",
		}
	}

	if ln.Depth > prev.depth+1 {
		return &SyntaxError{
			Kind: InconsistentIndent,
			Line: ln.Num,
			Message: fmt.Sprintf("invalid indentation level (expected at most %d tabs, found %d)",
				prev.depth+1, ln.Depth),
		}
	}
	if ln.Depth > prev.depth && prev.hadValue {
		return &SyntaxError{
			Kind:    OrphanedLine,
			Line:    ln.Num,
			Message: "indented line has no parent (previous line was a key/value pair)",
		}
	}

	if content == "" {
		return &SyntaxError{Kind: EmptyKey, Line: ln.Num, Message: "line has no key"}
	}

	idx := strings.IndexByte(content, '\t')
	if idx < 0 {
		return nil
	}

	key := content[:idx]
	if trimTrailing(key) == "" {
		return &SyntaxError{Kind: EmptyKey, Line: ln.Num, Message: "empty key"}
	}
	if strings.IndexByte(key, '\t') >= 0 {
		return &SyntaxError{
			Kind:    TabInKey,
			Line:    ln.Num,
			Message: fmt.Sprintf("key %q contains invalid tab character", key),
		}
	}

	value := strings.TrimLeft(content[idx+1:], "\t")
	if strings.IndexByte(value, '\t') >= 0 {
		return &SyntaxError{
			Kind:    TabInValue,
			Line:    ln.Num,
			Message: "value contains invalid tab character",
		}
	}
	return nil
}
