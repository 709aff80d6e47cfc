package document

import (
	"math"
	"strconv"
	"strings"
	"unique"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindAbsent marks a field path that could not be resolved.
	// It is distinct from KindNull: "present with null" and "absent"
	// must never be conflated.
	KindAbsent
	// KindNull represents a present null value.
	KindNull
	// KindBool represents a boolean value.
	KindBool
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
	// KindString represents a string value.
	KindString
	// KindArray represents an array value. Arrays are opaque leaves:
	// path resolution never traverses into them.
	KindArray
	// KindObject represents a nested mapping.
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a small typed value used for documents and query operands.
//
// The representation is designed to make matching fast and predictable:
// no reflection and no fmt-based stringification.
type Value struct {
	Kind Kind
	I64  int64
	F64  float64
	s    unique.Handle[string] // interned string
	B    bool
	A    []Value
	O    Document
}

// Absent returns the sentinel for an unresolvable field path.
func Absent() Value { return Value{Kind: KindAbsent} }

// Null returns a present null Value.
func Null() Value { return Value{Kind: KindNull} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{Kind: KindBool, B: v} }

// Int returns an int64 Value.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// Float returns a float64 Value.
func Float(v float64) Value { return Value{Kind: KindFloat, F64: v} }

// String returns a string Value.
func String(v string) Value { return Value{Kind: KindString, s: unique.Make(v)} }

// Array returns an array Value.
func Array(v []Value) Value { return Value{Kind: KindArray, A: v} }

// Object returns a nested mapping Value.
func Object(v Document) Value { return Value{Kind: KindObject, O: v} }

// IsAbsent reports whether the value is the absent sentinel.
func (v Value) IsAbsent() bool { return v.Kind == KindAbsent }

// IsNull reports whether the value is a present null.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// IsNumber reports whether the value is an int or float.
// Booleans are never numbers.
func (v Value) IsNumber() bool { return v.Kind == KindInt || v.Kind == KindFloat }

// AsInt64 returns the int64 value if Kind is KindInt.
func (v Value) AsInt64() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return v.I64, true
}

// AsFloat64 returns the numeric value widened to float64 if the value
// is an int or a float.
func (v Value) AsFloat64() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.I64), true
	case KindFloat:
		return v.F64, true
	default:
		return 0, false
	}
}

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.s.Value(), true
}

// AsBool returns the boolean value if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.B, true
}

// AsArray returns the array value if Kind is KindArray.
func (v Value) AsArray() ([]Value, bool) {
	if v.Kind != KindArray {
		return nil, false
	}
	return v.A, true
}

// AsObject returns the nested mapping if Kind is KindObject.
func (v Value) AsObject() (Document, bool) {
	if v.Kind != KindObject {
		return nil, false
	}
	return v.O, true
}

// StringValue returns the string value if Kind is KindString, otherwise
// the empty string.
func (v Value) StringValue() string {
	if v.Kind == KindString {
		return v.s.Value()
	}
	return ""
}

// Text returns the display form of the value, used as a discrete
// category label. Null and absent values have no display form here;
// callers substitute their own placeholder.
func (v Value) Text() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.B)
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	case KindString:
		return v.s.Value()
	case KindArray:
		parts := make([]string, len(v.A))
		for i := range v.A {
			parts[i] = v.A[i].Text()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindObject:
		b, err := v.MarshalJSON()
		if err != nil {
			return "{}"
		}
		return string(b)
	default:
		return ""
	}
}

// Key returns a stable string representation for use as a map key.
// Numerically equal ints and floats share a key.
func (v Value) Key() string {
	switch v.Kind {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindBool:
		if v.B {
			return "b:1"
		}
		return "b:0"
	case KindInt:
		return "f:" + strconv.FormatUint(math.Float64bits(float64(v.I64)), 16)
	case KindFloat:
		return "f:" + strconv.FormatUint(math.Float64bits(v.F64), 16)
	case KindString:
		return "s:" + v.s.Value()
	case KindArray:
		if len(v.A) == 0 {
			return "a:"
		}
		parts := make([]string, len(v.A))
		for i := range v.A {
			parts[i] = v.A[i].Key()
		}
		return "a:" + strings.Join(parts, "\x1f")
	case KindObject:
		return "o:" + string(mustJSON(v))
	default:
		return "invalid"
	}
}

// Document is an arbitrarily nested mapping from string keys to values.
// Documents are immutable inputs: nothing in this module mutates them.
type Document map[string]Value

// Clone creates a deep copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	clone := make(Document, len(d))
	for k, v := range d {
		clone[k] = v.clone()
	}
	return clone
}

func (v Value) clone() Value {
	switch v.Kind {
	case KindArray:
		if len(v.A) == 0 {
			return v
		}
		a := make([]Value, len(v.A))
		for i := range v.A {
			a[i] = v.A[i].clone()
		}
		v.A = a
		return v
	case KindObject:
		v.O = v.O.Clone()
		return v
	default:
		return v
	}
}
