package validation_test

import (
	stderrors "errors"
	"testing"

	"github.com/oscardepp/SimpleSQL/internal/domain/data"
	"github.com/oscardepp/SimpleSQL/internal/domain/errors"
	"github.com/oscardepp/SimpleSQL/internal/domain/schema"
	"github.com/oscardepp/SimpleSQL/internal/plan"
	"github.com/oscardepp/SimpleSQL/internal/query/operations/testutil"
	"github.com/oscardepp/SimpleSQL/internal/query/validation"
)

func database() *schema.Database {
	return &schema.Database{Name: "company", Tables: []*schema.Table{testutil.CreateEmployeesTable()}}
}

func TestValidatePlan(t *testing.T) {
	tests := []struct {
		name           string
		sel            plan.SelectNode
		wantConstraint string
	}{
		{
			name: "valid plan",
			sel: plan.SelectNode{
				TableName: "EMPLOYEES",
				Columns:   []plan.ColumnRef{{Name: "Name"}, {Name: "salary", Function: data.FunctionAvg}},
				Where:     &plan.Predicate{Column: "salary", Operator: plan.OpGreaterEqual, Value: "42000", Kind: plan.LiteralInteger},
				Limit:     &plan.Limit{N: 1},
			},
		},
		{
			name:           "unknown table",
			sel:            plan.SelectNode{TableName: "Departments", Columns: []plan.ColumnRef{{Name: "id"}}},
			wantConstraint: "table_exists",
		},
		{
			name:           "unknown column",
			sel:            plan.SelectNode{TableName: "Employees", Columns: []plan.ColumnRef{{Name: "email"}}},
			wantConstraint: "column_exists",
		},
		{
			name:           "function on wrong type",
			sel:            plan.SelectNode{TableName: "Employees", Columns: []plan.ColumnRef{{Name: "name", Function: data.FunctionSum}}},
			wantConstraint: "function_type",
		},
		{
			name: "unknown where column",
			sel: plan.SelectNode{
				TableName: "Employees",
				Columns:   []plan.ColumnRef{{Name: "id"}},
				Where:     &plan.Predicate{Column: "age", Operator: plan.OpEqual, Value: "1", Kind: plan.LiteralInteger},
			},
			wantConstraint: "column_exists",
		},
		{
			name: "string literal against integer column",
			sel: plan.SelectNode{
				TableName: "Employees",
				Columns:   []plan.ColumnRef{{Name: "id"}},
				Where:     &plan.Predicate{Column: "id", Operator: plan.OpEqual, Value: "x", Kind: plan.LiteralString},
			},
			wantConstraint: "literal_type",
		},
		{
			name: "unparsable literal",
			sel: plan.SelectNode{
				TableName: "Employees",
				Columns:   []plan.ColumnRef{{Name: "id"}},
				Where:     &plan.Predicate{Column: "id", Operator: plan.OpEqual, Value: "two", Kind: plan.LiteralInteger},
			},
			wantConstraint: "literal_type",
		},
		{
			name: "zero limit",
			sel: plan.SelectNode{
				TableName: "Employees",
				Columns:   []plan.ColumnRef{{Name: "id"}},
				Limit:     &plan.Limit{N: 0},
			},
			wantConstraint: "limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := tt.sel
			err := validation.ValidatePlan(database(), &plan.Query{Type: plan.QuerySelect, Select: &sel})

			if tt.wantConstraint == "" {
				testutil.AssertNoError(t, err, tt.name)
				return
			}

			var ve *errors.ValidationError
			if !stderrors.As(err, &ve) {
				t.Fatalf("expected *errors.ValidationError, got %T: %v", err, err)
			}
			if ve.Constraint != tt.wantConstraint {
				t.Errorf("expected constraint %q, got %q", tt.wantConstraint, ve.Constraint)
			}
		})
	}
}

func TestValidatePlan_SkipsOtherQueries(t *testing.T) {
	if err := validation.ValidatePlan(database(), &plan.Query{Type: plan.QueryUpdate}); err != nil {
		t.Errorf("expected non-SELECT plans to pass through, got %v", err)
	}
	if err := validation.ValidatePlan(database(), nil); err != nil {
		t.Errorf("expected nil plan to pass through, got %v", err)
	}
}
