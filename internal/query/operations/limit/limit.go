// Package limit enforces the row limit of a query.
package limit

import (
	"github.com/oscardepp/SimpleSQL/internal/domain/data"
	"github.com/oscardepp/SimpleSQL/internal/plan"
)

// Apply deletes every row whose ordinal exceeds lim.N, from the last row
// down to row N+1, and returns the number of rows removed.
// A nil limit removes nothing.
func Apply(rs *data.ResultSet, lim *plan.Limit) (int, error) {
	if lim == nil {
		return 0, nil
	}

	removed := 0
	for row := rs.NumRows(); row > lim.N; row-- {
		if err := rs.DeleteRow(row); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
