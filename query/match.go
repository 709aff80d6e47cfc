package query

import "github.com/hupe1980/diorama/document"

// compareFunc tests a resolved value against an operand.
//
// Operator dispatch goes through a fixed table so that an unrecognized
// operator is a compile-time OperatorError instead of an open-ended
// string branch.
type compareFunc func(v, operand document.Value) bool

var compareFuncs = map[Operator]compareFunc{
	OpEq:  compareEqual,
	OpNe:  compareNotEqual,
	OpGt:  compareGreater,
	OpGte: compareGreaterEqual,
	OpLt:  compareLess,
	OpLte: compareLessEqual,
	OpIn:  compareIn,
	OpNin: compareNotIn,
}

// compareEqual compares two values for equality. The absent sentinel
// equals nothing, including null: equality is only defined over
// genuinely resolved values. Present null equals an explicit null
// operand. Ints and floats compare numerically across kinds.
func compareEqual(a, b document.Value) bool {
	if a.IsAbsent() || b.IsAbsent() {
		return false
	}
	if a.IsNull() && b.IsNull() {
		return true
	}
	if a.IsNull() || b.IsNull() {
		return false
	}

	if a.IsNumber() && b.IsNumber() {
		// Prefer exact int compare when possible.
		if a.Kind == document.KindInt && b.Kind == document.KindInt {
			return a.I64 == b.I64
		}
		af, _ := a.AsFloat64()
		bf, _ := b.AsFloat64()
		return af == bf
	}

	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case document.KindString:
		as, _ := a.AsString()
		bs, _ := b.AsString()
		return as == bs
	case document.KindBool:
		return a.B == b.B
	case document.KindArray:
		if len(a.A) != len(b.A) {
			return false
		}
		for i := range a.A {
			if !compareEqual(a.A[i], b.A[i]) {
				return false
			}
		}
		return true
	case document.KindObject:
		if len(a.O) != len(b.O) {
			return false
		}
		for k, av := range a.O {
			bv, ok := b.O[k]
			if !ok || !compareEqual(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func compareNotEqual(a, b document.Value) bool {
	return !compareEqual(a, b)
}

// compareGreater implements strict ordering. Ordering is undefined for
// absent and null values: missing data never passes a range test.
// Numbers order numerically across kinds, strings lexicographically;
// anything else has no ordering.
func compareGreater(a, b document.Value) bool {
	if a.IsNumber() && b.IsNumber() {
		af, _ := a.AsFloat64()
		bf, _ := b.AsFloat64()
		return af > bf
	}
	if as, ok := a.AsString(); ok {
		if bs, ok := b.AsString(); ok {
			return as > bs
		}
	}
	return false
}

func compareLess(a, b document.Value) bool {
	if a.IsNumber() && b.IsNumber() {
		af, _ := a.AsFloat64()
		bf, _ := b.AsFloat64()
		return af < bf
	}
	if as, ok := a.AsString(); ok {
		if bs, ok := b.AsString(); ok {
			return as < bs
		}
	}
	return false
}

func compareGreaterEqual(a, b document.Value) bool {
	return compareGreater(a, b) || orderedEqual(a, b)
}

func compareLessEqual(a, b document.Value) bool {
	return compareLess(a, b) || orderedEqual(a, b)
}

// orderedEqual is equality restricted to the kinds that have an
// ordering, so $gte/$lte never pass for null, bool or composites.
func orderedEqual(a, b document.Value) bool {
	if a.IsNumber() && b.IsNumber() {
		return compareEqual(a, b)
	}
	if _, ok := a.AsString(); ok {
		return compareEqual(a, b)
	}
	return false
}

// compareIn passes iff the value is present and a member of the
// operand array. Compile guarantees the operand is an array.
func compareIn(a, b document.Value) bool {
	if a.IsAbsent() {
		return false
	}
	for _, item := range b.A {
		if a.IsNull() && item.IsNull() {
			return true
		}
		if compareEqual(a, item) {
			return true
		}
	}
	return false
}

// compareNotIn passes iff the value is absent, or present and not a
// member of the operand array.
func compareNotIn(a, b document.Value) bool {
	if a.IsAbsent() {
		return true
	}
	return !compareIn(a, b)
}
