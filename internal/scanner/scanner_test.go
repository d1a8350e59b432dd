package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Line
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "single line without trailing newline",
			input: "key\tvalue",
			want: []Line{
				{Num: 1, Raw: "key\tvalue", Depth: 0, Content: "key\tvalue"},
			},
		},
		{
			name:  "trailing newline adds no line",
			input: "key\tvalue\n",
			want: []Line{
				{Num: 1, Raw: "key\tvalue", Depth: 0, Content: "key\tvalue"},
			},
		},
		{
			name:  "depth counts leading tabs",
			input: "server\n\thost\tlocalhost\n\t\tdeep\n",
			want: []Line{
				{Num: 1, Raw: "server", Depth: 0, Content: "server"},
				{Num: 2, Raw: "\thost\tlocalhost", Depth: 1, Content: "host\tlocalhost"},
				{Num: 3, Raw: "\t\tdeep", Depth: 2, Content: "deep"},
			},
		},
		{
			name:  "blank and comment lines are skippable but numbered",
			input: "# header\n\nkey\tvalue\n\t# indented comment\n\t\t\n",
			want: []Line{
				{Num: 1, Raw: "# header", Depth: 0, Content: "# header", Skip: true},
				{Num: 2, Raw: "", Depth: 0, Content: "", Skip: true},
				{Num: 3, Raw: "key\tvalue", Depth: 0, Content: "key\tvalue"},
				{Num: 4, Raw: "\t# indented comment", Depth: 1, Content: "# indented comment", Skip: true},
				{Num: 5, Raw: "\t\t", Depth: 2, Content: "", Skip: true},
			},
		},
		{
			name:  "CRLF blank line is skippable, content keeps the CR",
			input: "key\tvalue\r\n\r\n",
			want: []Line{
				{Num: 1, Raw: "key\tvalue\r", Depth: 0, Content: "key\tvalue\r"},
				{Num: 2, Raw: "\r", Depth: 0, Content: "\r", Skip: true},
			},
		},
		{
			name:  "space-indented line is structural",
			input: "  key\tvalue\n",
			want: []Line{
				{Num: 1, Raw: "  key\tvalue", Depth: 0, Content: "  key\tvalue"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Split(tt.input))
		})
	}
}

func TestKept(t *testing.T) {
	kept := Kept("# c\n\na\tb\n\nnested\n\tx\n")
	require.Len(t, kept, 3)
	require.Equal(t, 3, kept[0].Num)
	require.Equal(t, 5, kept[1].Num)
	require.Equal(t, 6, kept[2].Num)
	require.Equal(t, "x", kept[2].Content)
	require.Equal(t, 1, kept[2].Depth)
}
