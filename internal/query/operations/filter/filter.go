// Package filter applies a WHERE predicate to a result set in place.
//
// The literal's kind and the column's declared type together decide how
// a row value is compared:
//
//	literal INTEGER, column INTEGER  -> integer comparison
//	literal REAL, or INTEGER vs REAL -> float comparison (integers widened)
//	literal STRING                   -> case-sensitive byte-wise comparison
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oscardepp/SimpleSQL/internal/domain/data"
	"github.com/oscardepp/SimpleSQL/internal/domain/schema"
	"github.com/oscardepp/SimpleSQL/internal/plan"
)

// Apply deletes every row of rs for which "value op literal" is false and
// returns the number of rows removed. table qualifies the predicate column.
// Rows are visited from the last ordinal to the first, so a deletion never
// moves a row that has not been visited yet.
func Apply(rs *data.ResultSet, table string, pred *plan.Predicate) (int, error) {
	if pred == nil {
		return 0, nil
	}

	pos := rs.FindColumn(table, pred.Column)
	if pos < 0 {
		return 0, fmt.Errorf("where column %s not found in result", pred.Column)
	}
	colType := rs.Columns()[pos-1].Type

	kind, err := coerce(pred.Kind, colType)
	if err != nil {
		return 0, fmt.Errorf("where column %s: %w", pred.Column, err)
	}
	literal, err := parseLiteral(pred.Value, kind)
	if err != nil {
		return 0, fmt.Errorf("where column %s: %w", pred.Column, err)
	}

	removed := 0
	for row := rs.NumRows(); row >= 1; row-- {
		v, err := rs.Get(row, pos)
		if err != nil {
			return removed, err
		}
		if Evaluate(pred.Operator, compare(toOperand(v, kind), literal)) {
			continue
		}
		if err := rs.DeleteRow(row); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// CheckLiteral reports whether pred's literal can be compared with a
// column of type colType and parses under the resulting representation
func CheckLiteral(pred *plan.Predicate, colType schema.ColumnType) error {
	kind, err := coerce(pred.Kind, colType)
	if err != nil {
		return err
	}
	_, err = parseLiteral(pred.Value, kind)
	return err
}

// Evaluate applies op to the result of a three-way comparison
func Evaluate(op plan.Operator, cmp int) bool {
	switch op {
	case plan.OpLess:
		return cmp < 0
	case plan.OpLessEqual:
		return cmp <= 0
	case plan.OpGreater:
		return cmp > 0
	case plan.OpGreaterEqual:
		return cmp >= 0
	case plan.OpEqual:
		return cmp == 0
	case plan.OpNotEqual:
		return cmp != 0
	default:
		return false
	}
}

type operandKind int

const (
	operandInteger operandKind = iota
	operandReal
	operandText
)

// operand is a value in the representation both sides are compared in
type operand struct {
	kind operandKind
	i    int64
	f    float64
	s    string
}

// coerce picks the common representation for a literal kind and a column type
func coerce(kind plan.LiteralKind, colType schema.ColumnType) (operandKind, error) {
	switch {
	case kind == plan.LiteralInteger && colType == schema.ColumnTypeInteger:
		return operandInteger, nil
	case kind == plan.LiteralReal && colType != schema.ColumnTypeString,
		kind == plan.LiteralInteger && colType == schema.ColumnTypeReal:
		return operandReal, nil
	case kind == plan.LiteralString && colType == schema.ColumnTypeString:
		return operandText, nil
	default:
		return 0, fmt.Errorf("cannot compare %s literal with %s column", kind, colType)
	}
}

func parseLiteral(text string, kind operandKind) (operand, error) {
	switch kind {
	case operandInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return operand{}, fmt.Errorf("invalid INTEGER literal %q", text)
		}
		return operand{kind: kind, i: n}, nil
	case operandReal:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return operand{}, fmt.Errorf("invalid REAL literal %q", text)
		}
		return operand{kind: kind, f: f}, nil
	default:
		return operand{kind: kind, s: text}, nil
	}
}

func toOperand(v data.Value, kind operandKind) operand {
	switch kind {
	case operandInteger:
		return operand{kind: kind, i: v.Int}
	case operandReal:
		if v.Type == schema.ColumnTypeInteger {
			return operand{kind: kind, f: float64(v.Int)}
		}
		return operand{kind: kind, f: v.Real}
	default:
		return operand{kind: kind, s: v.Str}
	}
}

// compare orders two operands of the same kind: -1, 0 or +1
func compare(a, b operand) int {
	switch a.kind {
	case operandInteger:
		switch {
		case a.i < b.i:
			return -1
		case a.i > b.i:
			return 1
		}
		return 0
	case operandReal:
		switch {
		case a.f < b.f:
			return -1
		case a.f > b.f:
			return 1
		}
		return 0
	default:
		return strings.Compare(a.s, b.s)
	}
}
