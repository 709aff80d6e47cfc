package document

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAny(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{name: "nil", in: nil, want: Null()},
		{name: "bool", in: true, want: Bool(true)},
		{name: "string", in: "x", want: String("x")},
		{name: "int", in: 42, want: Int(42)},
		{name: "int64", in: int64(-1), want: Int(-1)},
		{name: "uint32", in: uint32(7), want: Int(7)},
		{name: "float64", in: 1.5, want: Float(1.5)},
		{name: "json number int", in: json.Number("42"), want: Int(42)},
		{name: "json number float", in: json.Number("42.0"), want: Float(42)},
		{name: "json number exponent", in: json.Number("1e3"), want: Float(1000)},
		{name: "string slice", in: []string{"a", "b"}, want: Array([]Value{String("a"), String("b")})},
		{name: "any slice", in: []any{1, "x"}, want: Array([]Value{Int(1), String("x")})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromAny(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromAnyNested(t *testing.T) {
	got, err := FromAny(map[string]any{
		"a": 1,
		"b": map[string]any{"c": "deep"},
	})
	require.NoError(t, err)
	require.Equal(t, KindObject, got.Kind)
	assert.Equal(t, Int(1), got.O["a"])
	assert.Equal(t, String("deep"), Resolve(got.O, "b.c"))
}

func TestFromAnyUnsupported(t *testing.T) {
	_, err := FromAny(make(chan int))
	require.Error(t, err)

	_, err = FromAny(uint64(math.MaxInt64) + 1)
	require.Error(t, err)
}

func TestFromAnyLargeUint64(t *testing.T) {
	got, err := FromAny(uint64(math.MaxInt64))
	require.NoError(t, err)
	assert.Equal(t, Int(math.MaxInt64), got)
}

func TestFromMapsReportsDocumentIndex(t *testing.T) {
	_, err := FromMaps([]map[string]any{
		{"ok": 1},
		{"bad": struct{}{}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document 1")
}

func TestToAnyRoundTrip(t *testing.T) {
	in := map[string]any{
		"s": "x",
		"i": int64(3),
		"f": 2.5,
		"b": true,
		"n": nil,
		"o": map[string]any{"k": int64(1)},
		"a": []any{int64(1), "y"},
	}
	v, err := FromAny(in)
	require.NoError(t, err)
	assert.Equal(t, in, ToAny(v))
}
