// Package scanner splits raw TAML text into logical lines.
//
// The scanner is shared by the parser and the validator so that both
// agree on what a line is, how deep it is indented, and which lines
// are skippable. It performs no grammar checking of its own.
package scanner

import "strings"

// Line is a single logical line of TAML source.
type Line struct {
	// Num is the 1-based source line number. Skippable lines keep
	// their number so diagnostics can point at the original text.
	Num int

	// Raw is the text between newlines, including any trailing '\r'.
	Raw string

	// Depth is the count of leading tab characters.
	Depth int

	// Content is Raw with the leading tabs removed.
	Content string

	// Skip reports whether the line is blank or a comment and must be
	// ignored by the parser.
	Skip bool
}

// Split breaks text into lines on '\n'. Every source line is returned,
// including skippable ones; callers filter with Kept if they only want
// structural lines.
func Split(text string) []Line {
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	// A trailing newline produces a final empty element that does not
	// correspond to a source line.
	if raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}

	lines := make([]Line, len(raw))
	for i, r := range raw {
		depth := leadingTabs(r)
		content := r[depth:]
		lines[i] = Line{
			Num:     i + 1,
			Raw:     r,
			Depth:   depth,
			Content: content,
			Skip:    isSkippable(content),
		}
	}
	return lines
}

// Kept returns the structural lines of text: blank lines and comments
// removed, source line numbers preserved.
func Kept(text string) []Line {
	all := Split(text)
	kept := all[:0:0]
	for _, ln := range all {
		if !ln.Skip {
			kept = append(kept, ln)
		}
	}
	return kept
}

func leadingTabs(s string) int {
	n := 0
	for n < len(s) && s[n] == '\t' {
		n++
	}
	return n
}

// isSkippable reports whether content (already stripped of leading
// tabs) is empty or a '#' comment. A lone trailing '\r' from CRLF
// input does not make a blank line structural.
func isSkippable(content string) bool {
	c := strings.TrimSuffix(content, "\r")
	return c == "" || c[0] == '#'
}
