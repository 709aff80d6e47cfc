package diorama

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/diorama/document"
	"github.com/hupe1980/diorama/query"
	"github.com/hupe1980/diorama/reduce"
)

func testCollection(t *testing.T, n int) ([][]float32, []document.Document) {
	t.Helper()
	points := make([][]float32, n)
	ms := make([]map[string]any, n)
	for i := 0; i < n; i++ {
		points[i] = []float32{float32(i), float32(-i)}
		ms[i] = map[string]any{
			"id":       i,
			"category": fmt.Sprintf("cat%d", i%4),
			"score":    float64(i),
			"meta":     map[string]any{"even": i%2 == 0},
		}
	}
	docs, err := document.FromMaps(ms)
	require.NoError(t, err)
	return points, docs
}

func TestExploreEndToEnd(t *testing.T) {
	points, docs := testCollection(t, 100)

	res, err := Explore(context.Background(), points, docs,
		WithQuery(map[string]any{"score": map[string]any{"$gte": 50.0}}),
		WithColorBy("category", "score"),
	)
	require.NoError(t, err)

	require.Len(t, res.Documents, 50)
	require.Len(t, res.Points, 50)
	require.Len(t, res.Hover, 50)

	// Mask spans the original collection.
	require.NotNil(t, res.Mask)
	assert.Equal(t, 100, res.Mask.Len())
	assert.Equal(t, 50, res.Mask.Count())

	// Points stay aligned with their documents through filtering.
	assert.Equal(t, document.Int(50), res.Documents[0]["id"])
	assert.Equal(t, float32(50), res.Points[0][0])

	require.Len(t, res.Perspectives, 2)
	assert.Equal(t, "category", res.Perspectives[0].Name)
	assert.Equal(t, "score", res.Perspectives[1].Name)

	// 4 category groups plus 1 numeric group.
	require.Len(t, res.Plan.Groups, 5)
	require.Len(t, res.Plan.Toggles, 2)
	assert.Equal(t, "category", res.Plan.Toggles[0].Label)
	assert.Equal(t, 0, res.Plan.Toggles[0].Start)
	assert.Equal(t, 4, res.Plan.Toggles[0].End)
}

func TestExploreShapeMismatch(t *testing.T) {
	points, docs := testCollection(t, 10)

	_, err := Explore(context.Background(), points[:9], docs)
	require.Error(t, err)

	var shapeErr *ErrShapeMismatch
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, 9, shapeErr.Points)
	assert.Equal(t, 10, shapeErr.Documents)
}

func TestExploreRaggedPoints(t *testing.T) {
	_, docs := testCollection(t, 2)
	points := [][]float32{{1, 2}, {1}}

	_, err := Explore(context.Background(), points, docs)
	var raggedErr *ErrRaggedMatrix
	require.ErrorAs(t, err, &raggedErr)
}

func TestExploreOneDimensionalPoints(t *testing.T) {
	_, docs := testCollection(t, 2)

	_, err := Explore(context.Background(), [][]float32{{1}, {2}}, docs)
	var dimErr *ErrInvalidDimension
	require.ErrorAs(t, err, &dimErr)
}

func TestExploreBadQuery(t *testing.T) {
	points, docs := testCollection(t, 10)

	_, err := Explore(context.Background(), points, docs,
		WithQuery(map[string]any{"f": map[string]any{"$type": "string"}}),
	)
	require.ErrorIs(t, err, query.ErrBadQuery)
}

func TestExploreEmptyCollection(t *testing.T) {
	res, err := Explore(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Documents)
	assert.NotNil(t, res.Plan)
	assert.Empty(t, res.Plan.Groups)
}

func TestExploreNoMatches(t *testing.T) {
	points, docs := testCollection(t, 20)

	res, err := Explore(context.Background(), points, docs,
		WithQuery(map[string]any{"category": "nope"}),
	)
	require.NoError(t, err)

	// A selection of zero documents is a terminal state, not an error.
	assert.Empty(t, res.Documents)
	assert.Empty(t, res.Points)
	assert.Equal(t, 0, res.Mask.Count())
	assert.Empty(t, res.Plan.Groups)
	assert.Empty(t, res.Perspectives)
}

func TestExploreAutoDiscoversFields(t *testing.T) {
	points, docs := testCollection(t, 20)

	res, err := Explore(context.Background(), points, docs)
	require.NoError(t, err)

	require.NotEmpty(t, res.Perspectives)
	names := make([]string, 0, len(res.Perspectives))
	for _, p := range res.Perspectives {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "category")
	assert.Contains(t, names, "meta.even")
}

func TestExploreReducesHighDimensionalPoints(t *testing.T) {
	_, docs := testCollection(t, 10)
	points := make([][]float32, 10)
	for i := range points {
		points[i] = []float32{float32(i), 0, 0, 0, 0}
	}

	reducer := reduce.Func{
		MethodName: "trunc",
		ReduceFunc: func(_ context.Context, pts [][]float32, components int) ([][]float32, error) {
			out := make([][]float32, len(pts))
			for i, row := range pts {
				out[i] = row[:components]
			}
			return out, nil
		},
	}

	res, err := Explore(context.Background(), points, docs,
		WithReducer(reducer),
		WithColorBy("category"),
	)
	require.NoError(t, err)

	assert.Equal(t, "trunc", res.Method)
	require.Len(t, res.Points, 10)
	assert.Len(t, res.Points[0], 2)
}

func TestExploreHighDimensionalWithoutReducer(t *testing.T) {
	_, docs := testCollection(t, 3)
	points := [][]float32{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
	}

	_, err := Explore(context.Background(), points, docs)
	require.ErrorIs(t, err, reduce.ErrNoReducer)
}

func TestExploreReduceBeforeFilterKeepsPositionsStable(t *testing.T) {
	_, docs := testCollection(t, 10)
	points := make([][]float32, 10)
	for i := range points {
		points[i] = []float32{float32(i), 1, 2, 3}
	}

	calls := 0
	reducer := reduce.Func{
		MethodName: "spy",
		ReduceFunc: func(_ context.Context, pts [][]float32, components int) ([][]float32, error) {
			calls++
			// The reducer must always see the FULL collection, never a
			// filtered subset.
			require.Len(t, pts, 10)
			out := make([][]float32, len(pts))
			for i, row := range pts {
				out[i] = row[:components]
			}
			return out, nil
		},
	}

	res, err := Explore(context.Background(), points, docs,
		WithReducer(reducer),
		WithQuery(map[string]any{"id": map[string]any{"$lt": 3}}),
		WithColorBy("category"),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	require.Len(t, res.Points, 3)
	// Row 2 keeps the position it had in the full reduction.
	assert.Equal(t, float32(2), res.Points[2][0])
}

func TestExploreCompiledQueryReuse(t *testing.T) {
	points, docs := testCollection(t, 10)
	q := query.MustCompile(map[string]any{"meta.even": true})

	res, err := Explore(context.Background(), points, docs, WithCompiledQuery(q))
	require.NoError(t, err)
	assert.Len(t, res.Documents, 5)
}

func TestExploreBadColorKindOverride(t *testing.T) {
	points, docs := testCollection(t, 10)

	_, err := Explore(context.Background(), points, docs,
		WithColorBy("score"),
		WithColorKindOverrides(map[string]string{"score": "rainbow"}),
	)
	require.Error(t, err)
}

func TestExploreColorKindOverride(t *testing.T) {
	points, docs := testCollection(t, 10)

	res, err := Explore(context.Background(), points, docs,
		WithColorBy("id"),
		WithColorKindOverrides(map[string]string{"id": "numeric"}),
	)
	require.NoError(t, err)
	require.Len(t, res.Perspectives, 1)
	require.Len(t, res.Plan.Groups, 1)
	assert.Equal(t, 0.0, res.Plan.Groups[0].Min)
	assert.Equal(t, 9.0, res.Plan.Groups[0].Max)
}

func TestExploreMetrics(t *testing.T) {
	points, docs := testCollection(t, 50)
	mc := &BasicMetricsCollector{}

	_, err := Explore(context.Background(), points, docs,
		WithQuery(map[string]any{"meta.even": true}),
		WithColorBy("category"),
		WithMetricsCollector(mc),
	)
	require.NoError(t, err)

	assert.Equal(t, int64(1), mc.FilterCount.Load())
	assert.Equal(t, int64(25), mc.FilterMatched.Load())
	assert.Equal(t, int64(1), mc.PlanCount.Load())
	assert.Equal(t, int64(0), mc.ReduceCount.Load())
}
