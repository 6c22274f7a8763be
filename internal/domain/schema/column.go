package schema

import (
	"fmt"
	"strings"
)

// ColumnType is the declared type of a catalog column
type ColumnType string

const (
	ColumnTypeInteger ColumnType = "INTEGER"
	ColumnTypeReal    ColumnType = "REAL"
	ColumnTypeString  ColumnType = "STRING"
)

// ParseColumnType maps a catalog type name onto a ColumnType.
// INT, FLOAT, DOUBLE, TEXT and VARCHAR are accepted as aliases.
func ParseColumnType(name string) (ColumnType, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "INTEGER", "INT":
		return ColumnTypeInteger, nil
	case "REAL", "FLOAT", "DOUBLE":
		return ColumnTypeReal, nil
	case "STRING", "TEXT", "VARCHAR":
		return ColumnTypeString, nil
	default:
		return "", fmt.Errorf("unknown column type %q", name)
	}
}

// Valid reports whether t is one of the three supported types
func (t ColumnType) Valid() bool {
	switch t {
	case ColumnTypeInteger, ColumnTypeReal, ColumnTypeString:
		return true
	}
	return false
}

// Column describes one column of a table.
// Position is 1-based and follows the record layout.
type Column struct {
	Name     string
	Type     ColumnType
	Position int
}
