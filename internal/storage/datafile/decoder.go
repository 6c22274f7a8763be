package datafile

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/oscardepp/SimpleSQL/internal/domain/data"
	"github.com/oscardepp/SimpleSQL/internal/domain/schema"
)

// Decode converts one record into one value per column. Fields are read
// strictly in column order and the record is consumed exactly once; any
// byte left over, missing field or bad number is ErrMalformedRecord.
func Decode(record []byte, columns []schema.Column) ([]data.Value, error) {
	values := make([]data.Value, len(columns))
	pos := 0

	for i, col := range columns {
		if pos >= len(record) {
			return nil, fmt.Errorf("%w: missing field for column %s", ErrMalformedRecord, col.Name)
		}

		switch col.Type {
		case schema.ColumnTypeInteger:
			field, next := numericField(record, pos)
			n, err := strconv.ParseInt(string(field), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: column %s: invalid INTEGER %q", ErrMalformedRecord, col.Name, field)
			}
			values[i] = data.IntValue(n)
			pos = next

		case schema.ColumnTypeReal:
			field, next := numericField(record, pos)
			f, err := strconv.ParseFloat(string(field), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: column %s: invalid REAL %q", ErrMalformedRecord, col.Name, field)
			}
			values[i] = data.RealValue(f)
			pos = next

		case schema.ColumnTypeString:
			quote := record[pos]
			if quote != '"' && quote != '\'' {
				return nil, fmt.Errorf("%w: column %s: expected a quote, got %q", ErrMalformedRecord, col.Name, quote)
			}
			end := bytes.IndexByte(record[pos+1:], quote)
			if end < 0 {
				return nil, fmt.Errorf("%w: column %s: unterminated string", ErrMalformedRecord, col.Name)
			}
			values[i] = data.StringValue(string(record[pos+1 : pos+1+end]))
			pos += end + 2 // opening quote, text, closing quote
			if pos < len(record) && record[pos] == ' ' {
				pos++
			}

		default:
			return nil, fmt.Errorf("%w: column %s has unknown type %q", ErrMalformedRecord, col.Name, col.Type)
		}
	}

	if pos < len(record) {
		return nil, fmt.Errorf("%w: unexpected trailing data %q", ErrMalformedRecord, record[pos:])
	}
	return values, nil
}

// numericField returns the field starting at pos and the offset just past
// its delimiter. The field ends at the next space or at the end of the record.
func numericField(record []byte, pos int) ([]byte, int) {
	end := bytes.IndexByte(record[pos:], ' ')
	if end < 0 {
		return record[pos:], len(record)
	}
	return record[pos : pos+end], pos + end + 1
}
