package document

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// FromAny converts a Go value into a typed Value.
//
// This exists as an adapter layer for user input and decoded JSON.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case float64:
		return Float(x), nil
	case float32:
		return Float(float64(x)), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Int(int64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		if x > math.MaxInt64 {
			// Avoid silently truncating large values.
			return Value{}, fmt.Errorf("document uint64 out of range: %d", x)
		}
		return Int(int64(x)), nil
	case json.Number:
		if !strings.ContainsAny(x.String(), ".eE") {
			if i, err := x.Int64(); err == nil {
				return Int(i), nil
			}
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("document number %q: %w", x.String(), err)
		}
		return Float(f), nil
	case Document:
		return Object(x), nil
	case map[string]any:
		o, err := FromMap(x)
		if err != nil {
			return Value{}, err
		}
		return Object(o), nil
	case []Value:
		return Array(x), nil
	case []any:
		arr := make([]Value, len(x))
		for i := range x {
			vv, err := FromAny(x[i])
			if err != nil {
				return Value{}, err
			}
			arr[i] = vv
		}
		return Array(arr), nil
	case []string:
		arr := make([]Value, len(x))
		for i := range x {
			arr[i] = String(x[i])
		}
		return Array(arr), nil
	case []int:
		arr := make([]Value, len(x))
		for i := range x {
			arr[i] = Int(int64(x[i]))
		}
		return Array(arr), nil
	case []float64:
		arr := make([]Value, len(x))
		for i := range x {
			arr[i] = Float(x[i])
		}
		return Array(arr), nil
	default:
		return Value{}, fmt.Errorf("unsupported document value type %T", v)
	}
}

// FromMap converts a map[string]any document to a typed Document.
func FromMap(m map[string]any) (Document, error) {
	d := make(Document, len(m))
	for k, v := range m {
		vv, err := FromAny(v)
		if err != nil {
			return nil, err
		}
		d[k] = vv
	}
	return d, nil
}

// FromMaps converts a slice of map[string]any documents.
func FromMaps(ms []map[string]any) ([]Document, error) {
	docs := make([]Document, len(ms))
	for i := range ms {
		d, err := FromMap(ms[i])
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		docs[i] = d
	}
	return docs, nil
}

// ToAny converts a Value back to plain Go data. Absent maps to nil.
func ToAny(v Value) any {
	switch v.Kind {
	case KindBool:
		return v.B
	case KindInt:
		return v.I64
	case KindFloat:
		return v.F64
	case KindString:
		return v.s.Value()
	case KindArray:
		a := make([]any, len(v.A))
		for i := range v.A {
			a[i] = ToAny(v.A[i])
		}
		return a
	case KindObject:
		m := make(map[string]any, len(v.O))
		for k, vv := range v.O {
			m[k] = ToAny(vv)
		}
		return m
	default:
		return nil
	}
}
