package output

import (
	"fmt"
	"io"

	"github.com/segmentio/parquet-go"

	"github.com/oscardepp/SimpleSQL/internal/domain/data"
	"github.com/oscardepp/SimpleSQL/internal/domain/schema"
)

// ParquetFormatter writes rows as a parquet file. Every column is a
// required leaf: INTEGER as int64, REAL as double, STRING as UTF-8.
type ParquetFormatter struct {
	writer io.Writer
}

// NewParquetFormatter creates a new parquet formatter
func NewParquetFormatter(w io.Writer) *ParquetFormatter {
	return &ParquetFormatter{writer: w}
}

// SetOutput sets the output writer
func (p *ParquetFormatter) SetOutput(w io.Writer) {
	p.writer = w
}

// Format writes rs as one parquet file
func (p *ParquetFormatter) Format(rs *data.ResultSet) error {
	cols := rs.Columns()
	names := headers(rs)

	group := make(parquet.Group, len(cols))
	for i, col := range cols {
		group[names[i]] = parquetNode(col.Type)
	}
	sch := parquet.NewSchema("result", group)

	// the group orders its leaves by name, not by result column
	leaf := make([]int, len(cols))
	for i, name := range names {
		lc, ok := sch.Lookup(name)
		if !ok {
			return fmt.Errorf("parquet: column %s missing from schema", name)
		}
		leaf[i] = lc.ColumnIndex
	}

	writer := parquet.NewWriter(p.writer, sch)
	rows := make([]parquet.Row, 0, rs.NumRows())
	for r := 1; r <= rs.NumRows(); r++ {
		values, err := rs.Row(r)
		if err != nil {
			return err
		}
		row := make(parquet.Row, len(values))
		for i, v := range values {
			row[leaf[i]] = parquetValue(v).Level(0, 0, leaf[i])
		}
		rows = append(rows, row)
	}

	if _, err := writer.WriteRows(rows); err != nil {
		return fmt.Errorf("parquet: write rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("parquet: close: %w", err)
	}
	return nil
}

func parquetNode(typ schema.ColumnType) parquet.Node {
	switch typ {
	case schema.ColumnTypeInteger:
		return parquet.Int(64)
	case schema.ColumnTypeReal:
		return parquet.Leaf(parquet.DoubleType)
	default:
		return parquet.String()
	}
}

func parquetValue(v data.Value) parquet.Value {
	switch v.Type {
	case schema.ColumnTypeInteger:
		return parquet.Int64Value(v.Int)
	case schema.ColumnTypeReal:
		return parquet.DoubleValue(v.Real)
	default:
		return parquet.ByteArrayValue([]byte(v.Str))
	}
}
