// Package reduce defines the boundary to the external dimensionality
// reduction routine.
//
// The core pipeline treats reduction as an opaque synchronous call: a
// Reducer receives the full (N, D) point matrix and returns an (N, c)
// matrix with the same row count. This package only validates shapes
// and handles the degenerate cases (points already at the target
// dimensionality pass through unchanged); it implements no numeric
// reduction itself.
package reduce

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoReducer is returned when a reduction is required but no Reducer
// was configured.
var ErrNoReducer = errors.New("no reducer configured")

// Reducer projects high-dimensional points down to components
// dimensions. Implementations may be long-running; they receive the
// caller's context and must return one output row per input row.
type Reducer interface {
	// Reduce returns an (N, components) matrix for an (N, D) input.
	Reduce(ctx context.Context, points [][]float32, components int) ([][]float32, error)
	// Name identifies the reduction method (e.g. "umap", "tsne"),
	// used for axis labels.
	Name() string
}

// Func adapts a plain function to the Reducer interface.
type Func struct {
	// ReduceFunc is the reduction routine.
	ReduceFunc func(ctx context.Context, points [][]float32, components int) ([][]float32, error)
	// MethodName is returned by Name.
	MethodName string
}

// Reduce implements Reducer.
func (f Func) Reduce(ctx context.Context, points [][]float32, components int) ([][]float32, error) {
	return f.ReduceFunc(ctx, points, components)
}

// Name implements Reducer.
func (f Func) Name() string { return f.MethodName }

// Apply validates shapes and invokes the reducer.
//
// components must be 2 or 3. Points already at the target
// dimensionality are returned unchanged without consulting the
// reducer. Fewer input dimensions than components is an error, as is a
// reducer returning the wrong row count; r may be nil only in the
// passthrough case.
func Apply(ctx context.Context, r Reducer, points [][]float32, components int) ([][]float32, error) {
	if components != 2 && components != 3 {
		return nil, fmt.Errorf("components must be 2 or 3, got %d", components)
	}
	if len(points) == 0 {
		return points, nil
	}

	d := len(points[0])
	if d == components {
		return points, nil
	}
	if d < components {
		return nil, fmt.Errorf("cannot reduce %d-dimensional points to %d dimensions", d, components)
	}
	if r == nil {
		return nil, ErrNoReducer
	}

	reduced, err := r.Reduce(ctx, points, components)
	if err != nil {
		return nil, fmt.Errorf("reducer %s: %w", r.Name(), err)
	}
	if len(reduced) != len(points) {
		return nil, fmt.Errorf("reducer %s returned %d rows for %d points", r.Name(), len(reduced), len(points))
	}
	return reduced, nil
}
