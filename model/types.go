package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindNull represents an absent value.
	KindNull Kind = iota
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
	// KindString represents a string value.
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// Value is a small typed cell value used for dataset rows.
//
// The representation is designed to make cleaning and aggregation predictable:
// no reflection and no fmt-based stringification. Absent cells are KindNull
// and propagate as null through aggregation instead of raising.
//
// NOTE: This is also used for snapshots; keep it stable.
type Value struct {
	Kind Kind    `json:"k"`
	I64  int64   `json:"i,omitempty"`
	F64  float64 `json:"f,omitempty"`
	S    string  `json:"s,omitempty"`
}

// Null returns a null Value.
func Null() Value { return Value{Kind: KindNull} }

// Int returns an integer Value.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// Float returns a float Value.
func Float(v float64) Value { return Value{Kind: KindFloat, F64: v} }

// String returns a string Value.
func String(s string) Value { return Value{Kind: KindString, S: s} }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// AsInt64 returns the value as an int64. Floats are truncated.
func (v Value) AsInt64() (int64, bool) {
	switch v.Kind {
	case KindInt:
		return v.I64, true
	case KindFloat:
		return int64(v.F64), true
	default:
		return 0, false
	}
}

// AsFloat64 returns the value as a float64.
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

// StringValue returns the string value if Kind is KindString, otherwise "".
func (v Value) StringValue() string {
	if v.Kind == KindString {
		return v.S
	}
	return ""
}

// Text renders the cell back to CSV text. Null renders as the empty string so
// that cleaning an exported table is idempotent.
func (v Value) Text() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	case KindString:
		return v.S
	default:
		return ""
	}
}

// MarshalJSON implements json.Marshaler. Values marshal to their natural JSON
// type (null, number, or string) for export consumers.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindInt:
		return json.Marshal(v.I64)
	case KindFloat:
		return json.Marshal(v.F64)
	case KindString:
		return json.Marshal(v.S)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Null()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = String(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*v = Int(i)
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return err
	}
	*v = Float(f)
	return nil
}
