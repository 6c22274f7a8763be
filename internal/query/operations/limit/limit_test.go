package limit_test

import (
	"reflect"
	"testing"

	"github.com/oscardepp/SimpleSQL/internal/plan"
	"github.com/oscardepp/SimpleSQL/internal/query/operations/limit"
	"github.com/oscardepp/SimpleSQL/internal/query/operations/testutil"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name        string
		lim         *plan.Limit
		wantIDs     []int64
		wantRemoved int
	}{
		{"no limit", nil, []int64{1, 2, 3, 4, 5}, 0},
		{"limit 1", &plan.Limit{N: 1}, []int64{1}, 4},
		{"limit 3", &plan.Limit{N: 3}, []int64{1, 2, 3}, 2},
		{"limit equals rows", &plan.Limit{N: 5}, []int64{1, 2, 3, 4, 5}, 0},
		{"limit above rows", &plan.Limit{N: 100}, []int64{1, 2, 3, 4, 5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := testutil.CreateEmployeesResultSet(t, testutil.SampleEmployees)

			removed, err := limit.Apply(rs, tt.lim)
			testutil.AssertNoError(t, err, tt.name)

			if removed != tt.wantRemoved {
				t.Errorf("%s: expected %d removed, got %d", tt.name, tt.wantRemoved, removed)
			}
			if got := testutil.IDs(t, rs); !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("%s: expected ids %v, got %v", tt.name, tt.wantIDs, got)
			}
		})
	}
}

func TestApply_EmptyTable(t *testing.T) {
	rs := testutil.CreateEmployeesResultSet(t, nil)

	removed, err := limit.Apply(rs, &plan.Limit{N: 2})
	testutil.AssertNoError(t, err, "empty")
	if removed != 0 {
		t.Errorf("expected 0 removed, got %d", removed)
	}
}
