package query

import (
	"errors"
	"fmt"
)

// ErrBadQuery is returned when a query tree is structurally malformed
// (wrong combinator shape, excessive nesting, bad operand type).
//
// Implementations wrap it, so use errors.Is to test for it.
var ErrBadQuery = errors.New("malformed query")

// OperatorError indicates an unrecognized operator anywhere in a query
// tree. It is a hard failure: filtering aborts with no partial result,
// since an unknown operator signals a malformed request rather than a
// legitimate non-match.
type OperatorError struct {
	Op string
}

func (e *OperatorError) Error() string {
	return fmt.Sprintf("unsupported query operator: %s", e.Op)
}

// Unwrap lets errors.Is(err, ErrBadQuery) match operator errors too.
func (e *OperatorError) Unwrap() error { return ErrBadQuery }
