package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalNaturalForm(t *testing.T) {
	doc := Document{
		"s":   String("x"),
		"i":   Int(3),
		"f":   Float(2.5),
		"b":   Bool(true),
		"n":   Null(),
		"abs": Absent(),
		"o":   Object(Document{"k": Int(1)}),
		"a":   Array([]Value{Int(1), String("y")}),
	}

	b, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"s": "x", "i": 3, "f": 2.5, "b": true,
		"n": null, "abs": null,
		"o": {"k": 1}, "a": [1, "y"]
	}`, string(b))
}

func TestUnmarshalPreservesNumberKinds(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(`{"i": 3, "f": 3.0, "big": 9007199254740993}`), &doc))

	assert.Equal(t, Int(3), doc["i"])
	assert.Equal(t, Float(3), doc["f"])
	// Integers beyond float64 precision survive as exact ints.
	assert.Equal(t, Int(9007199254740993), doc["big"])
}

func TestJSONRoundTrip(t *testing.T) {
	doc := Document{
		"title": String("hello"),
		"meta":  Object(Document{"rank": Int(2), "tags": Array([]Value{String("a")})}),
		"gone":  Null(),
	}

	b, err := json.Marshal(doc)
	require.NoError(t, err)

	var got Document
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, doc, got)
}
