package diorama

import "fmt"

// ErrShapeMismatch indicates that the point array and the document
// collection disagree in length. It fails fast, before any processing.
type ErrShapeMismatch struct {
	Points    int
	Documents int
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("shape mismatch: %d points, %d documents", e.Points, e.Documents)
}

// ErrInvalidDimension indicates a point array with too few columns.
// The pipeline requires at least 2 dimensions per point.
type ErrInvalidDimension struct {
	Dim int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("points must have at least 2 dimensions, got %d", e.Dim)
}

// ErrRaggedMatrix indicates a point array whose rows differ in length.
type ErrRaggedMatrix struct {
	Row  int
	Want int
	Got  int
}

func (e *ErrRaggedMatrix) Error() string {
	return fmt.Sprintf("ragged point matrix: row %d has %d columns, want %d", e.Row, e.Got, e.Want)
}

// validateShape enforces the pipeline entry contract: equal point and
// document counts, rectangular rows, and at least 2 dimensions.
func validateShape(points [][]float32, docs int) error {
	if len(points) != docs {
		return &ErrShapeMismatch{Points: len(points), Documents: docs}
	}
	if len(points) == 0 {
		return nil
	}
	dim := len(points[0])
	if dim < 2 {
		return &ErrInvalidDimension{Dim: dim}
	}
	for i, row := range points {
		if len(row) != dim {
			return &ErrRaggedMatrix{Row: i, Want: dim, Got: len(row)}
		}
	}
	return nil
}
