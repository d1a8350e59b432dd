package taml

import "fmt"

// options collects the configuration shared by Parse, Serialize,
// Marshal and Unmarshal. Fields are set through functional options.
type options struct {
	strict       bool
	noConversion bool
	indent       int
	maxDepth     int
}

func newOptions(opts []Option) (*options, error) {
	o := &options{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Option configures parsing, serialization or decoding.
type Option func(*options) error

// Strict returns an Option that makes Parse record the first grammar
// violation in the Document's Err instead of silently skipping the
// offending line. The tree is still built on a best-effort basis.
func Strict() Option {
	return func(o *options) error {
		o.strict = true
		return nil
	}
}

// NoTypeConversion returns an Option that disables scalar coercion:
// every non-sentinel leaf is kept as a String. The sentinels "~" and
// `""` are always honored.
func NoTypeConversion() Option {
	return func(o *options) error {
		o.noConversion = true
		return nil
	}
}

// Indent returns an Option that sets the starting indentation depth
// for Serialize. The depth n must not be negative.
func Indent(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("taml: indent depth cannot be negative")
		}
		o.indent = n
		return nil
	}
}

// MaxDepth returns an Option that sets the maximum recursion depth
// for Unmarshal. This helps prevent stack overflows when decoding
// highly nested documents.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("taml: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}
