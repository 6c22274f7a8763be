package testutil

import (
	"testing"

	"github.com/oscardepp/SimpleSQL/internal/domain/data"
	"github.com/oscardepp/SimpleSQL/internal/domain/schema"
)

// EmployeesTable is the name of the fixture table
const EmployeesTable = "Employees"

// CreateEmployeesTable returns the catalog entry Employees(id INTEGER, name STRING, salary REAL)
func CreateEmployeesTable() *schema.Table {
	return &schema.Table{
		Name: EmployeesTable,
		Columns: []schema.Column{
			{Name: "id", Type: schema.ColumnTypeInteger, Position: 1},
			{Name: "name", Type: schema.ColumnTypeString, Position: 2},
			{Name: "salary", Type: schema.ColumnTypeReal, Position: 3},
		},
		RecordSize: 40,
	}
}

// Employee is one fixture row
type Employee struct {
	ID     int64
	Name   string
	Salary float64
}

// SampleEmployees are the rows used across the operation tests
var SampleEmployees = []Employee{
	{1, "Alice", 50000.0},
	{2, "Bob", 42000.5},
	{3, "Carol", 61000.25},
	{4, "Dave", 38000.0},
	{5, "alice", 45000.0},
}

// CreateEmployeesResultSet builds a working table holding every column of
// the Employees table and the given rows, as the decoder would.
func CreateEmployeesResultSet(t *testing.T, rows []Employee) *data.ResultSet {
	t.Helper()
	table := CreateEmployeesTable()
	rs := data.NewResultSet()

	for i, col := range table.Columns {
		if _, err := rs.InsertColumn(i+1, table.Name, col.Name, data.NoFunction, col.Type); err != nil {
			t.Fatalf("insert column %s: %v", col.Name, err)
		}
	}

	for _, e := range rows {
		row := rs.AddRow()
		if err := rs.PutInt(row, 1, e.ID); err != nil {
			t.Fatalf("put id: %v", err)
		}
		if err := rs.PutString(row, 2, e.Name); err != nil {
			t.Fatalf("put name: %v", err)
		}
		if err := rs.PutReal(row, 3, e.Salary); err != nil {
			t.Fatalf("put salary: %v", err)
		}
	}
	return rs
}

// IDs returns the id column of an Employees result, top to bottom
func IDs(t *testing.T, rs *data.ResultSet) []int64 {
	t.Helper()
	pos := rs.FindColumn(EmployeesTable, "id")
	if pos < 0 {
		t.Fatal("id column not in result")
	}
	var ids []int64
	for row := 1; row <= rs.NumRows(); row++ {
		id, err := rs.GetInt(row, pos)
		if err != nil {
			t.Fatalf("row %d: %v", row, err)
		}
		ids = append(ids, id)
	}
	return ids
}
