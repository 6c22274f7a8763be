// Package projection narrows and reorders the columns of a result set so
// they match the column list of a query.
package projection

import (
	"fmt"

	"github.com/oscardepp/SimpleSQL/internal/domain/data"
	"github.com/oscardepp/SimpleSQL/internal/domain/schema"
	"github.com/oscardepp/SimpleSQL/internal/plan"
	"github.com/oscardepp/SimpleSQL/internal/util/ident"
)

// Project deletes every column of table whose name does not appear in
// columns, and returns the names of the columns it removed.
// Catalog columns that are already absent from rs are skipped, so a
// second call with the same arguments removes nothing.
func Project(rs *data.ResultSet, table *schema.Table, columns []plan.ColumnRef) ([]string, error) {
	requested := make([]string, len(columns))
	for i, ref := range columns {
		requested[i] = ref.Name
	}

	var removed []string
	for _, col := range table.Columns {
		if ident.Contains(requested, col.Name) {
			continue
		}

		pos := rs.FindColumn(table.Name, col.Name)
		if pos < 0 {
			continue
		}
		if err := rs.DeleteColumn(pos); err != nil {
			return removed, fmt.Errorf("project %s.%s: %w", table.Name, col.Name, err)
		}
		removed = append(removed, col.Name)
	}
	return removed, nil
}

// Reorder moves the columns of rs into the order of columns. Each entry is
// moved to the next output slot; a name seen earlier in the list does not
// take a slot again.
func Reorder(rs *data.ResultSet, table string, columns []plan.ColumnRef) error {
	var placed []string
	for _, ref := range columns {
		if ident.Contains(placed, ref.Name) {
			continue
		}

		pos := rs.FindColumn(table, ref.Name)
		if pos < 0 {
			return fmt.Errorf("reorder: column %s.%s not found in result", table, ref.Name)
		}
		placed = append(placed, ref.Name)

		if err := rs.MoveColumn(pos, len(placed)); err != nil {
			return fmt.Errorf("reorder %s.%s: %w", table, ref.Name, err)
		}
	}
	return nil
}
