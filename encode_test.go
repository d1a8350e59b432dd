package taml_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	taml "github.com/taml-dev/go-taml"
)

type version struct {
	Major int
	Minor int
}

func (v version) MarshalTAML() ([]byte, error) {
	return []byte(fmt.Sprintf("%d.%d.0", v.Major, v.Minor)), nil
}

type failingMarshaler struct{}

func (failingMarshaler) MarshalTAML() ([]byte, error) {
	return nil, fmt.Errorf("boom")
}

func TestMarshalScalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "hello", "hello"},
		{"empty string", "", `""`},
		{"bool", true, "true"},
		{"int", 42, "42"},
		{"float", 3.14, "3.14"},
		{"nil", nil, "~"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := taml.Marshal(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, string(out))
		})
	}
}

func TestMarshalStruct(t *testing.T) {
	type server struct {
		Host string `taml:"host"`
		Port int    `taml:"port"`
	}
	type config struct {
		Name   string `taml:"name"`
		Server server `taml:"server"`
		Debug  bool   `taml:"debug,omitempty"`
		Secret string `taml:"-"`
	}

	in := config{Name: "app", Server: server{Host: "localhost", Port: 8080}, Secret: "hidden"}
	out, err := taml.Marshal(in)
	require.NoError(t, err)
	require.Equal(t, "name\tapp\nserver\n\thost\tlocalhost\n\tport\t8080\n", string(out))
}

func TestMarshalUntaggedFieldUsesName(t *testing.T) {
	type point struct {
		X int
		Y int
	}
	out, err := taml.Marshal(point{X: 1, Y: 2})
	require.NoError(t, err)
	require.Equal(t, "X\t1\nY\t2\n", string(out))
}

func TestMarshalOmitEmpty(t *testing.T) {
	type opts struct {
		Name  string   `taml:"name,omitempty"`
		Count int      `taml:"count,omitempty"`
		Tags  []string `taml:"tags,omitempty"`
	}
	out, err := taml.Marshal(opts{})
	require.NoError(t, err)
	require.Equal(t, "", string(out))
}

func TestMarshalSlices(t *testing.T) {
	type doc struct {
		Items []string `taml:"items"`
	}
	out, err := taml.Marshal(doc{Items: []string{"item1", "item2"}})
	require.NoError(t, err)
	require.Equal(t, "items\n\titem1\n\titem2\n", string(out))
}

func TestMarshalNilSliceAndPointer(t *testing.T) {
	type doc struct {
		Items []string `taml:"items"`
		Ref   *int     `taml:"ref"`
	}
	out, err := taml.Marshal(doc{})
	require.NoError(t, err)
	require.Equal(t, "items\t~\nref\t~\n", string(out))
}

func TestMarshalMapSortsKeys(t *testing.T) {
	out, err := taml.Marshal(map[string]int{"zebra": 1, "alpha": 2})
	require.NoError(t, err)
	require.Equal(t, "alpha\t2\nzebra\t1\n", string(out))
}

func TestMarshalMapKeyErrors(t *testing.T) {
	_, err := taml.Marshal(map[string]int{"bad\tkey": 1})
	require.Error(t, err)

	_, err = taml.Marshal(map[int]string{1: "x"})
	require.Error(t, err)
}

func TestMarshalUintOverflow(t *testing.T) {
	_, err := taml.Marshal(uint64(math.MaxUint64))
	require.Error(t, err)

	out, err := taml.Marshal(uint64(7))
	require.NoError(t, err)
	require.Equal(t, "7", string(out))
}

func TestMarshalCustomMarshaler(t *testing.T) {
	type release struct {
		Version version `taml:"version"`
	}
	out, err := taml.Marshal(release{Version: version{Major: 1, Minor: 2}})
	require.NoError(t, err)
	require.Equal(t, "version\t1.2.0\n", string(out))
}

func TestMarshalCustomMarshalerError(t *testing.T) {
	_, err := taml.Marshal(failingMarshaler{})
	require.Error(t, err)
	var merr *taml.MarshalerError
	require.ErrorAs(t, err, &merr)
}

func TestMarshalEmbeddedStruct(t *testing.T) {
	type base struct {
		ID   int    `taml:"id"`
		Name string `taml:"name"`
	}
	type wrapper struct {
		base
		Name string `taml:"name"`
	}

	out, err := taml.Marshal(wrapper{base: base{ID: 7, Name: "inner"}, Name: "outer"})
	require.NoError(t, err)
	require.Equal(t, "name\touter\nid\t7\n", string(out))
}

func TestMarshalUnsupportedType(t *testing.T) {
	_, err := taml.Marshal(make(chan int))
	require.Error(t, err)
}
