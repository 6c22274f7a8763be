// Package validation checks a query plan against the catalog before it
// reaches the executor, which trusts the plan and never re-validates.
package validation

import (
	"fmt"

	"github.com/oscardepp/SimpleSQL/internal/domain/data"
	"github.com/oscardepp/SimpleSQL/internal/domain/errors"
	"github.com/oscardepp/SimpleSQL/internal/domain/schema"
	"github.com/oscardepp/SimpleSQL/internal/plan"
	"github.com/oscardepp/SimpleSQL/internal/query/operations/filter"
)

// ValidatePlan checks that a SELECT plan fits db:
// - the table exists
// - every requested column exists and accepts its function
// - the WHERE column exists and its literal is comparable with it
// - the limit is positive
//
// Plans other than SELECT are left to the executor, which rejects them.
// Returns a *errors.ValidationError for the first problem found.
func ValidatePlan(db *schema.Database, q *plan.Query) error {
	if q == nil || q.Type != plan.QuerySelect || q.Select == nil {
		return nil
	}
	sel := q.Select

	table, ok := db.FindTable(sel.TableName)
	if !ok {
		return &errors.ValidationError{
			Table:      sel.TableName,
			Constraint: "table_exists",
			Reason:     fmt.Sprintf("no such table in database %s", db.Name),
		}
	}

	for _, ref := range sel.Columns {
		col, ok := table.FindColumn(ref.Name)
		if !ok {
			return columnMissing(table.Name, ref.Name)
		}
		if _, err := data.ResultType(ref.Function, col.Type); err != nil {
			return &errors.ValidationError{
				Table:      table.Name,
				Column:     col.Name,
				Value:      ref.Function.String(),
				Constraint: "function_type",
				Reason:     err.Error(),
			}
		}
	}

	if sel.Where != nil {
		col, ok := table.FindColumn(sel.Where.Column)
		if !ok {
			return columnMissing(table.Name, sel.Where.Column)
		}
		if err := filter.CheckLiteral(sel.Where, col.Type); err != nil {
			return &errors.ValidationError{
				Table:      table.Name,
				Column:     col.Name,
				Value:      sel.Where.Value,
				Constraint: "literal_type",
				Reason:     err.Error(),
			}
		}
	}

	if sel.Limit != nil && sel.Limit.N < 1 {
		return &errors.ValidationError{
			Table:      table.Name,
			Value:      sel.Limit.N,
			Constraint: "limit",
			Reason:     "limit must be positive",
		}
	}

	return nil
}

// columnMissing creates a missing column error
func columnMissing(table, column string) *errors.ValidationError {
	return &errors.ValidationError{
		Table:      table,
		Column:     column,
		Constraint: "column_exists",
		Reason:     "no such column",
	}
}
