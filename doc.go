/*
Package taml parses, serializes and validates TAML, a minimal
hierarchical data format that expresses structure with tabs and
newlines alone: a key and its value are separated by a single tab,
and nesting is expressed by indentation depth. There is no explicit
container syntax; whether a block of lines is an object or an array
is inferred from line shape.

The package offers two workflows.

1. Document-oriented parsing

Parse builds a Document holding a tree of Value nodes, which can be
inspected and mutated through the Object and Array accessors and
written back with Serialize:

	doc, err := taml.Parse([]byte("server\n\thost\tlocalhost\n\tport\t8080\n"))
	if err != nil {
		// handle error
	}
	server, _ := doc.Root().Get("server")
	host, _ := server.Get("host")

By default the parser is permissive: lines that violate the grammar
are skipped. With the Strict option the first violation is recorded
in the Document and can be read with its Err method. Validate checks
text against the grammar without building a tree and agrees exactly
with strict parsing.

2. Data-oriented decoding and encoding

For converting TAML into Go structs and back, Marshal and Unmarshal
provide an API in the style of the standard encoding/json package:

	type Config struct {
		Host string `taml:"host"`
		Port int    `taml:"port"`
	}

	var cfg Config
	if err := taml.Unmarshal(data, &cfg); err != nil {
		// handle error
	}

Customization is available via struct field tags (e.g.
`taml:"key,omitempty"`) and by implementing the taml.Marshaler and
taml.Unmarshaler interfaces.

Scalars are coerced by shape: "~" is null, `""` is the empty string,
"true" and "false" are booleans, and signed decimal numbers become
64-bit integers or floats. Everything else is a verbatim string.
ToJSON and FromJSON bridge a Value tree to and from JSON.
*/
package taml
