// Package output renders a finished result set.
//
// Supported formats:
//   - table: an aligned text table with a row count footer
//   - csv: comma-separated values with a header row
//   - jsonl: one JSON object per row, keys in column order
//   - parquet: a single row group parquet file
//
// Example usage:
//
//	formatter, err := output.New("csv", os.Stdout)
//	if err != nil {
//	    return err
//	}
//	if err := formatter.Format(rs); err != nil {
//	    return err
//	}
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/oscardepp/SimpleSQL/internal/domain/data"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// Format writes every row of rs in the formatter's format
	Format(rs *data.ResultSet) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// Formats lists the names accepted by New
var Formats = []string{"table", "csv", "jsonl", "parquet"}

// New returns the formatter registered under format (any case), writing to w
func New(format string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "table":
		return NewTableFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "json", "jsonl":
		return NewJSONFormatter(w), nil
	case "parquet":
		return NewParquetFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// headers returns the display names of the columns of rs
func headers(rs *data.ResultSet) []string {
	cols := rs.Columns()
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.DisplayName()
	}
	return names
}

// record returns one row of rs as strings
func record(rs *data.ResultSet, row int) ([]string, error) {
	values, err := rs.Row(row)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out, nil
}
