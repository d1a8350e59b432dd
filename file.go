package taml

import (
	"fmt"
	"os"
)

// ParseFile reads the named file and parses it with Parse.
func ParseFile(path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("taml: reading %s: %w", path, err)
	}
	return Parse(data, opts...)
}

// ValidateFile reads the named file and validates it with Validate.
// An unreadable file is reported as a ParseFailed syntax error.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &SyntaxError{Kind: ParseFailed, Message: fmt.Sprintf("cannot read file: %v", err)}
	}
	return Validate(data)
}

// WriteFile serializes v and writes the result to the named file,
// creating it with mode 0o644 if needed.
func WriteFile(path string, v *Value, opts ...Option) error {
	data, err := Serialize(v, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("taml: writing %s: %w", path, err)
	}
	return nil
}
