package output

import (
	"bufio"
	"io"

	"github.com/segmentio/encoding/json"

	"github.com/oscardepp/SimpleSQL/internal/domain/data"
)

// JSONFormatter outputs rows as JSON Lines format
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes one JSON object per row. Keys follow column order,
// which a map based encoding would lose.
func (j *JSONFormatter) Format(rs *data.ResultSet) error {
	names := headers(rs)
	keys := make([][]byte, len(names))
	for i, name := range names {
		k, err := json.Marshal(name)
		if err != nil {
			return err
		}
		keys[i] = k
	}

	bw := bufio.NewWriter(j.writer)
	for row := 1; row <= rs.NumRows(); row++ {
		values, err := rs.Row(row)
		if err != nil {
			return err
		}

		bw.WriteByte('{')
		for i, v := range values {
			if i > 0 {
				bw.WriteByte(',')
			}
			val, err := json.Marshal(v.Interface())
			if err != nil {
				return err
			}
			bw.Write(keys[i])
			bw.WriteByte(':')
			bw.Write(val)
		}
		bw.WriteString("}\n")
	}
	return bw.Flush()
}
