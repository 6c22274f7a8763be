package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/oscardepp/SimpleSQL/internal/domain/data"
)

// CSVFormatter outputs rows as CSV format
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes a header row followed by one record per row.
// The header is written even when there are no rows.
func (c *CSVFormatter) Format(rs *data.ResultSet) error {
	csvWriter := csv.NewWriter(c.writer)

	if err := csvWriter.Write(headers(rs)); err != nil {
		return err
	}

	for row := 1; row <= rs.NumRows(); row++ {
		rec, err := record(rs, row)
		if err != nil {
			return err
		}
		if err := csvWriter.Write(rec); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}
