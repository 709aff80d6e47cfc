package document

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON encodes the value in its natural JSON form. Absent values
// encode as null; the distinction only matters in memory, never on the
// wire.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindBool:
		return json.Marshal(v.B)
	case KindInt:
		return json.Marshal(v.I64)
	case KindFloat:
		return json.Marshal(v.F64)
	case KindString:
		return json.Marshal(v.s.Value())
	case KindArray:
		if v.A == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.A)
	case KindObject:
		if v.O == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(map[string]Value(v.O))
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes natural JSON into a typed Value. JSON numbers
// become ints when they have no fractional part, floats otherwise.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	vv, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = vv
	return nil
}

func mustJSON(v Value) []byte {
	b, err := v.MarshalJSON()
	if err != nil {
		return []byte("null")
	}
	return b
}
