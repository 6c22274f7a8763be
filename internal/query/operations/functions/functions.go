// Package functions applies the scalar and aggregate functions tagged on
// the requested columns of a query.
package functions

import (
	"fmt"

	"github.com/oscardepp/SimpleSQL/internal/domain/data"
	"github.com/oscardepp/SimpleSQL/internal/plan"
)

// Apply applies the function of every tagged entry of columns to the column
// at the same position of rs, left to right. columns must already match the
// column order of rs.
//
// An aggregate leaves its result in every row of its column. Once every
// function is applied, a result that saw at least one aggregate is cut down
// to its first row. Returns the number of functions applied.
func Apply(rs *data.ResultSet, columns []plan.ColumnRef) (int, error) {
	if len(columns) > rs.NumColumns() {
		return 0, fmt.Errorf("functions: %d requested columns but %d in result", len(columns), rs.NumColumns())
	}

	applied := 0
	aggregated := false
	for i, ref := range columns {
		if ref.Function == data.NoFunction {
			continue
		}
		if err := rs.ApplyFunction(ref.Function, i+1); err != nil {
			return applied, fmt.Errorf("%s(%s): %w", ref.Function, ref.Name, err)
		}
		applied++
		if ref.Function.IsAggregate() {
			aggregated = true
		}
	}

	if aggregated {
		if err := collapse(rs); err != nil {
			return applied, err
		}
	}
	return applied, nil
}

// collapse deletes every row after the first, last row first
func collapse(rs *data.ResultSet) error {
	for row := rs.NumRows(); row > 1; row-- {
		if err := rs.DeleteRow(row); err != nil {
			return err
		}
	}
	return nil
}
