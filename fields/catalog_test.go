package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/diorama/document"
)

func mustDocs(t *testing.T, ms []map[string]any) []document.Document {
	t.Helper()
	docs, err := document.FromMaps(ms)
	require.NoError(t, err)
	return docs
}

func TestPaths(t *testing.T) {
	docs := mustDocs(t, []map[string]any{
		{"a": 1, "b": map[string]any{"c": "x"}},
		{"a": 2, "d": []any{1, 2}},
		{"b": map[string]any{"c": "y", "e": map[string]any{"f": true}}},
		{"empty": map[string]any{}},
		{"n": nil},
	})

	// Non-empty objects expand; scalars, nulls, arrays and empty
	// objects are leaves. Output is sorted.
	assert.Equal(t, []string{"a", "b.c", "b.e.f", "d", "empty", "n"}, Paths(docs))
}

func TestPathsEmptyCollection(t *testing.T) {
	assert.Empty(t, Paths(nil))
	assert.Empty(t, Paths([]document.Document{{}}))
}

func TestCoverage(t *testing.T) {
	docs := mustDocs(t, []map[string]any{
		{"a": 1},
		{"a": nil},
		{"b": 2},
		{},
	})

	// Present null counts as covered; missing does not.
	assert.Equal(t, 0.5, Coverage(docs, "a"))
	assert.Equal(t, 0.25, Coverage(docs, "b"))
	assert.Equal(t, 0.0, Coverage(docs, "z"))
	assert.Equal(t, 0.0, Coverage(nil, "a"))
}

func TestTopPaths(t *testing.T) {
	docs := mustDocs(t, []map[string]any{
		{"rare": 1, "common": 1, "tie1": 1, "tie2": 1},
		{"common": 2, "tie1": 2, "tie2": 2},
		{"common": 3},
	})

	got := TopPaths(docs, 3)
	// common covers 3/3; tie1 and tie2 cover 2/3 and break the tie
	// lexicographically.
	assert.Equal(t, []string{"common", "tie1", "tie2"}, got)

	assert.Len(t, TopPaths(docs, 100), 4)
	assert.Empty(t, TopPaths(docs, 0))
}

func TestValues(t *testing.T) {
	docs := mustDocs(t, []map[string]any{
		{"a": 1},
		{"a": nil},
		{"b": 2},
	})

	got := Values(docs, "a")
	require.Len(t, got, len(docs))
	assert.Equal(t, document.Int(1), got[0])
	assert.True(t, got[1].IsNull())
	// Missing maps to null, never to the absent sentinel.
	assert.True(t, got[2].IsNull())
	assert.False(t, got[2].IsAbsent())
}
