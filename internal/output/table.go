package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/oscardepp/SimpleSQL/internal/domain/data"
)

// TableFormatter prints rows as an aligned text table
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (f *TableFormatter) SetOutput(w io.Writer) {
	f.writer = w
}

// Format renders a header of "name (TYPE)" cells, the rows, then the row count
func (f *TableFormatter) Format(rs *data.ResultSet) error {
	cols := rs.Columns()
	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = fmt.Sprintf("%s (%s)", col.DisplayName(), col.Type)
	}

	table := tablewriter.NewWriter(f.writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(header)

	for row := 1; row <= rs.NumRows(); row++ {
		rec, err := record(rs, row)
		if err != nil {
			return err
		}
		table.Append(rec)
	}
	table.Render()

	_, err := fmt.Fprintf(f.writer, "Returned %d rows\n", rs.NumRows())
	return err
}
