package testutil

import (
	"testing"

	"github.com/oscardepp/SimpleSQL/internal/domain/data"
)

// AssertRowCount checks if the result has the expected number of rows
func AssertRowCount(t *testing.T, actual, expected int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, actual)
	}
}

// AssertColumnCount checks if the result has the expected number of columns
func AssertColumnCount(t *testing.T, actual, expected int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected %d columns, got %d", context, expected, actual)
	}
}

// AssertColumnOrder checks the live column names, in position order
func AssertColumnOrder(t *testing.T, rs *data.ResultSet, expected []string, context string) {
	t.Helper()
	cols := rs.Columns()
	if len(cols) != len(expected) {
		t.Errorf("%s: expected columns %v, got %v", context, expected, ColumnNames(rs))
		return
	}
	for i, col := range cols {
		if col.Name != expected[i] {
			t.Errorf("%s: expected columns %v, got %v", context, expected, ColumnNames(rs))
			return
		}
	}
}

// AssertColumnExists checks if a column is live in the result
func AssertColumnExists(t *testing.T, rs *data.ResultSet, column, context string) {
	t.Helper()
	if rs.FindColumn(EmployeesTable, column) < 0 {
		t.Errorf("%s: expected column '%s' to exist", context, column)
	}
}

// AssertColumnNotExists checks if a column is absent from the result
func AssertColumnNotExists(t *testing.T, rs *data.ResultSet, column, context string) {
	t.Helper()
	if rs.FindColumn(EmployeesTable, column) >= 0 {
		t.Errorf("%s: did not expect column '%s' to exist", context, column)
	}
}

// AssertColumnValues checks every value of one column, top to bottom
func AssertColumnValues(t *testing.T, rs *data.ResultSet, col int, expected []data.Value, context string) {
	t.Helper()
	if rs.NumRows() != len(expected) {
		t.Errorf("%s: expected %d rows, got %d", context, len(expected), rs.NumRows())
		return
	}
	for row := 1; row <= rs.NumRows(); row++ {
		v, err := rs.Get(row, col)
		if err != nil {
			t.Errorf("%s: row %d: %v", context, row, err)
			return
		}
		if v != expected[row-1] {
			t.Errorf("%s: row %d column %d: expected %v, got %v", context, row, col, expected[row-1], v)
		}
	}
}

// AssertNoError checks that an error is nil
func AssertNoError(t *testing.T, err error, context string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: expected no error, got: %v", context, err)
	}
}

// AssertError checks that an error is not nil
func AssertError(t *testing.T, err error, context string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected an error, got nil", context)
	}
}

// ColumnNames returns the live column names of rs
func ColumnNames(rs *data.ResultSet) []string {
	var names []string
	for _, col := range rs.Columns() {
		names = append(names, col.Name)
	}
	return names
}
