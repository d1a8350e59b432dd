package taml_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	taml "github.com/taml-dev/go-taml"
)

func TestToJSON(t *testing.T) {
	tests := []struct {
		name string
		v    *taml.Value
		want string
	}{
		{"null", taml.NewNull(), "null"},
		{"bool", taml.NewBool(true), "true"},
		{"int", taml.NewInt(42), "42"},
		{"float", taml.NewFloat(3.14), "3.14"},
		{"string", taml.NewString("hello"), `"hello"`},
		{"empty string", taml.NewString(""), `""`},
		{"string needing escapes", taml.NewString("a\"b\nc"), `"a\"b\nc"`},
		{"empty object", taml.NewObject(), "{}"},
		{"empty array", taml.NewArray(), "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := taml.ToJSON(tt.v)
			require.NoError(t, err)
			require.Equal(t, tt.want, string(out))
		})
	}
}

func TestToJSONPreservesKeyOrder(t *testing.T) {
	obj := taml.NewObject()
	obj.Set("zebra", taml.NewInt(1))
	obj.Set("alpha", taml.NewInt(2))

	out, err := taml.ToJSON(obj)
	require.NoError(t, err)
	require.Equal(t, `{"zebra":1,"alpha":2}`, string(out))
}

func TestToJSONNested(t *testing.T) {
	server := taml.NewObject()
	server.Set("host", taml.NewString("localhost"))
	server.Set("ports", func() *taml.Value {
		a := taml.NewArray()
		a.Append(taml.NewInt(80))
		a.Append(taml.NewInt(443))
		return a
	}())
	root := taml.NewObject()
	root.Set("server", server)

	out, err := taml.ToJSON(root)
	require.NoError(t, err)
	require.Equal(t, `{"server":{"host":"localhost","ports":[80,443]}}`, string(out))
}

func TestToJSONNonFiniteFloat(t *testing.T) {
	_, err := taml.ToJSON(taml.NewFloat(math.NaN()))
	require.Error(t, err)
	_, err = taml.ToJSON(taml.NewFloat(math.Inf(1)))
	require.Error(t, err)
}

func TestFromJSON(t *testing.T) {
	doc, err := taml.FromJSON([]byte(`{"name":"John","age":30,"score":1.5,"ok":true,"nothing":null,"tags":["a","b"]}`))
	require.NoError(t, err)
	root := doc.Root()

	require.Equal(t, []string{"name", "age", "score", "ok", "nothing", "tags"}, root.Keys())

	age, ok := getKey(t, root, "age").Int()
	require.True(t, ok)
	require.Equal(t, int64(30), age)

	score, ok := getKey(t, root, "score").Float()
	require.True(t, ok)
	require.InDelta(t, 1.5, score, 1e-12)

	require.True(t, getKey(t, root, "nothing").IsNull())
	require.Equal(t, 2, getKey(t, root, "tags").Len())
}

func TestFromJSONErrors(t *testing.T) {
	t.Run("nil input", func(t *testing.T) {
		_, err := taml.FromJSON(nil)
		require.ErrorIs(t, err, taml.ErrNilInput)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := taml.FromJSON([]byte(`{"unterminated`))
		require.Error(t, err)
	})

	t.Run("trailing data", func(t *testing.T) {
		_, err := taml.FromJSON([]byte(`{} {}`))
		require.Error(t, err)
	})
}

func TestJSONRoundTripThroughTAML(t *testing.T) {
	jsonIn := `{"app":"demo","limits":{"timeout":30.5,"retries":3},"features":["auth","cache"]}`
	doc, err := taml.FromJSON([]byte(jsonIn))
	require.NoError(t, err)

	text, err := doc.Serialize()
	require.NoError(t, err)

	reparsed, err := taml.Parse(text)
	require.NoError(t, err)

	jsonOut, err := reparsed.ToJSON()
	require.NoError(t, err)
	require.Equal(t, jsonIn, string(jsonOut))
}
