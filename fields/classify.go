package fields

import (
	"fmt"

	"github.com/hupe1980/diorama/document"
)

// ColorKind decides how a field's values are rendered: as discrete
// categories or on a numeric scale.
type ColorKind uint8

const (
	// Discrete renders one colored group per category value.
	Discrete ColorKind = iota
	// Numeric renders a single group on a continuous color scale.
	Numeric
)

// String returns the color-kind literal ("discrete" or "numeric").
func (k ColorKind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	default:
		return "discrete"
	}
}

// ParseColorKind parses a color-kind literal. Anything other than
// "discrete" or "numeric" is a caller error, never silently ignored.
func ParseColorKind(s string) (ColorKind, error) {
	switch s {
	case "discrete":
		return Discrete, nil
	case "numeric":
		return Numeric, nil
	default:
		return Discrete, fmt.Errorf("invalid color kind %q (want \"discrete\" or \"numeric\")", s)
	}
}

// DefaultDiscreteThreshold is the default cardinality threshold below
// which an all-numeric field is still treated as discrete.
const DefaultDiscreteThreshold = 20

// Classify decides discrete-vs-numeric treatment for a field's
// extracted values (absent already mapped to null).
//
// Rules, in order, over the non-null values only:
//  1. no non-null values at all: discrete
//  2. all booleans: discrete
//  3. all strings: discrete
//  4. all numbers: discrete iff the distinct count is strictly below
//     threshold, numeric otherwise (a count equal to the threshold is
//     NOT below it, and classifies as numeric)
//  5. anything else (mixed kinds): discrete
//
// The boolean check must run before the numeric-cardinality check so
// booleans never classify as numeric.
func Classify(values []document.Value, threshold int) ColorKind {
	nonNull := 0
	allBool, allString, allNumber := true, true, true
	distinct := make(map[float64]struct{})

	for _, v := range values {
		if v.IsNull() || v.IsAbsent() {
			continue
		}
		nonNull++
		if v.Kind != document.KindBool {
			allBool = false
		}
		if v.Kind != document.KindString {
			allString = false
		}
		if f, ok := v.AsFloat64(); ok {
			distinct[f] = struct{}{}
		} else {
			allNumber = false
		}
	}

	if nonNull == 0 || allBool || allString {
		return Discrete
	}
	if allNumber {
		if len(distinct) < threshold {
			return Discrete
		}
		return Numeric
	}
	return Discrete
}
