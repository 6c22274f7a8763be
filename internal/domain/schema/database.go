package schema

import "github.com/oscardepp/SimpleSQL/internal/util/ident"

// Database represents a single database on disk:
// a directory holding meta.json and one <table>.data file per table.
type Database struct {
	Name   string
	Path   string // filesystem path to the database directory
	Tables []*Table
}

// FindTable looks a table up by name. The scan is linear and
// case-insensitive, in catalog order.
func (db *Database) FindTable(name string) (*Table, bool) {
	for _, t := range db.Tables {
		if ident.Equal(t.Name, name) {
			return t, true
		}
	}
	return nil, false
}
