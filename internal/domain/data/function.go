package data

import (
	"fmt"
	"math"
	"strings"

	"github.com/oscardepp/SimpleSQL/internal/domain/schema"
)

// Function is a scalar or aggregate function tagged on a result column
type Function int

const (
	NoFunction Function = iota
	FunctionMin
	FunctionMax
	FunctionSum
	FunctionAvg
	FunctionCount
	FunctionUpper
	FunctionLower
	FunctionAbs
)

var functionNames = map[Function]string{
	NoFunction:    "",
	FunctionMin:   "MIN",
	FunctionMax:   "MAX",
	FunctionSum:   "SUM",
	FunctionAvg:   "AVG",
	FunctionCount: "COUNT",
	FunctionUpper: "UPPER",
	FunctionLower: "LOWER",
	FunctionAbs:   "ABS",
}

func (f Function) String() string {
	if name, ok := functionNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Function(%d)", int(f))
}

// IsAggregate reports whether f collapses a column into one value
func (f Function) IsAggregate() bool {
	switch f {
	case FunctionMin, FunctionMax, FunctionSum, FunctionAvg, FunctionCount:
		return true
	}
	return false
}

// ParseFunction maps a function name (any case) onto a Function.
// An empty name or "none" means NoFunction.
func ParseFunction(name string) (Function, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if upper == "" || upper == "NONE" {
		return NoFunction, nil
	}
	for f, n := range functionNames {
		if f != NoFunction && n == upper {
			return f, nil
		}
	}
	return NoFunction, fmt.Errorf("unknown function %q", name)
}

// ResultType returns the type of a column of type typ once f is applied,
// or an ErrTypeMismatch error when f does not accept typ
func ResultType(f Function, typ schema.ColumnType) (schema.ColumnType, error) {
	if f == NoFunction {
		return typ, nil
	}
	return resultType(f, typ)
}

// resultType returns the column type produced by applying f to a column of type typ
func resultType(f Function, typ schema.ColumnType) (schema.ColumnType, error) {
	switch f {
	case FunctionCount:
		return schema.ColumnTypeInteger, nil
	case FunctionMin, FunctionMax:
		return typ, nil
	case FunctionSum, FunctionAbs:
		if typ == schema.ColumnTypeString {
			return "", fmt.Errorf("%w: %s requires a numeric column", ErrTypeMismatch, f)
		}
		return typ, nil
	case FunctionAvg:
		if typ == schema.ColumnTypeString {
			return "", fmt.Errorf("%w: %s requires a numeric column", ErrTypeMismatch, f)
		}
		return schema.ColumnTypeReal, nil
	case FunctionUpper, FunctionLower:
		if typ != schema.ColumnTypeString {
			return "", fmt.Errorf("%w: %s requires a STRING column", ErrTypeMismatch, f)
		}
		return typ, nil
	default:
		return "", fmt.Errorf("unsupported function %s", f)
	}
}

// aggregate folds values into a single value of type typ
func aggregate(f Function, typ schema.ColumnType, values []Value) Value {
	switch f {
	case FunctionCount:
		return IntValue(int64(len(values)))

	case FunctionMin, FunctionMax:
		best := values[0]
		for _, v := range values[1:] {
			c := compareValues(v, best)
			if (f == FunctionMin && c < 0) || (f == FunctionMax && c > 0) {
				best = v
			}
		}
		return best

	case FunctionSum:
		if typ == schema.ColumnTypeInteger {
			var sum int64
			for _, v := range values {
				sum += v.Int
			}
			return IntValue(sum)
		}
		var sum float64
		for _, v := range values {
			sum += v.Real
		}
		return RealValue(sum)

	default: // FunctionAvg
		var sum float64
		for _, v := range values {
			if v.Type == schema.ColumnTypeInteger {
				sum += float64(v.Int)
			} else {
				sum += v.Real
			}
		}
		return RealValue(sum / float64(len(values)))
	}
}

// scalar transforms one value
func scalar(f Function, v Value) Value {
	switch f {
	case FunctionUpper:
		return StringValue(strings.ToUpper(v.Str))
	case FunctionLower:
		return StringValue(strings.ToLower(v.Str))
	default: // FunctionAbs
		if v.Type == schema.ColumnTypeInteger {
			if v.Int < 0 {
				return IntValue(-v.Int)
			}
			return v
		}
		return RealValue(math.Abs(v.Real))
	}
}

// compareValues orders two values of the same type
func compareValues(a, b Value) int {
	switch a.Type {
	case schema.ColumnTypeInteger:
		switch {
		case a.Int < b.Int:
			return -1
		case a.Int > b.Int:
			return 1
		}
		return 0
	case schema.ColumnTypeReal:
		switch {
		case a.Real < b.Real:
			return -1
		case a.Real > b.Real:
			return 1
		}
		return 0
	default:
		return strings.Compare(a.Str, b.Str)
	}
}
