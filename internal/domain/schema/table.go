package schema

import "github.com/oscardepp/SimpleSQL/internal/util/ident"

// Table is the catalog entry for one table (from meta.json)
type Table struct {
	Name       string
	Columns    []Column
	RecordSize int // fixed record length in bytes, excluding the end-of-record marker
}

// FindColumn returns the column with the given name, ignoring case
func (t *Table) FindColumn(name string) (*Column, bool) {
	for i := range t.Columns {
		if ident.Equal(t.Columns[i].Name, name) {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// ColumnNames returns the column names in record order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}
