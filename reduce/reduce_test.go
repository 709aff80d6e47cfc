package reduce

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// truncReducer keeps the first components columns of every row.
var truncReducer = Func{
	MethodName: "trunc",
	ReduceFunc: func(_ context.Context, points [][]float32, components int) ([][]float32, error) {
		out := make([][]float32, len(points))
		for i, row := range points {
			out[i] = row[:components]
		}
		return out, nil
	},
}

func TestApplyPassthrough(t *testing.T) {
	points := [][]float32{{1, 2}, {3, 4}}

	// Already at target dimensionality: no reducer needed.
	got, err := Apply(context.Background(), nil, points, 2)
	require.NoError(t, err)
	assert.Equal(t, points, got)

	got, err = Apply(context.Background(), nil, nil, 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestApplyReduces(t *testing.T) {
	points := [][]float32{
		{1, 2, 3, 4, 5},
		{6, 7, 8, 9, 10},
	}

	got, err := Apply(context.Background(), truncReducer, points, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []float32{1, 2}, got[0])
	assert.Equal(t, []float32{6, 7}, got[1])
}

func TestApplyInvalidComponents(t *testing.T) {
	points := [][]float32{{1, 2, 3, 4}}

	for _, c := range []int{0, 1, 4, -1} {
		_, err := Apply(context.Background(), truncReducer, points, c)
		require.Error(t, err, "components=%d", c)
	}
}

func TestApplyTooFewDimensions(t *testing.T) {
	_, err := Apply(context.Background(), truncReducer, [][]float32{{1, 2}}, 3)
	require.Error(t, err)
}

func TestApplyMissingReducer(t *testing.T) {
	_, err := Apply(context.Background(), nil, [][]float32{{1, 2, 3, 4}}, 2)
	require.ErrorIs(t, err, ErrNoReducer)
}

func TestApplyReducerErrorWrapped(t *testing.T) {
	boom := errors.New("solver diverged")
	r := Func{
		MethodName: "bad",
		ReduceFunc: func(context.Context, [][]float32, int) ([][]float32, error) {
			return nil, boom
		},
	}

	_, err := Apply(context.Background(), r, [][]float32{{1, 2, 3, 4}}, 2)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "bad")
}

func TestApplyRowCountMismatch(t *testing.T) {
	r := Func{
		MethodName: "short",
		ReduceFunc: func(context.Context, [][]float32, int) ([][]float32, error) {
			return [][]float32{{1, 2}}, nil
		},
	}

	_, err := Apply(context.Background(), r, [][]float32{{1, 2, 3}, {4, 5, 6}}, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned 1 rows for 2 points")
}
