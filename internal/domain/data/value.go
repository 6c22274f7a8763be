package data

import (
	"strconv"

	"github.com/oscardepp/SimpleSQL/internal/domain/schema"
)

// Value is a single typed cell. Exactly one of Int, Real or Str is
// meaningful, selected by Type.
type Value struct {
	Type schema.ColumnType
	Int  int64
	Real float64
	Str  string
}

// IntValue creates an INTEGER value
func IntValue(v int64) Value {
	return Value{Type: schema.ColumnTypeInteger, Int: v}
}

// RealValue creates a REAL value
func RealValue(v float64) Value {
	return Value{Type: schema.ColumnTypeReal, Real: v}
}

// StringValue creates a STRING value
func StringValue(v string) Value {
	return Value{Type: schema.ColumnTypeString, Str: v}
}

// zeroValue returns the empty value of a column type
func zeroValue(typ schema.ColumnType) Value {
	return Value{Type: typ}
}

// Interface returns the Go value held by v (int64, float64 or string)
func (v Value) Interface() interface{} {
	switch v.Type {
	case schema.ColumnTypeInteger:
		return v.Int
	case schema.ColumnTypeReal:
		return v.Real
	default:
		return v.Str
	}
}

// String formats the value for display
func (v Value) String() string {
	switch v.Type {
	case schema.ColumnTypeInteger:
		return strconv.FormatInt(v.Int, 10)
	case schema.ColumnTypeReal:
		return strconv.FormatFloat(v.Real, 'f', -1, 64)
	default:
		return v.Str
	}
}
