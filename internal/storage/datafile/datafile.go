// Package datafile reads the flat-file records of a table.
//
// A table lives in <database dir>/<table>.data, one record per line.
// Fields follow the catalog's column order: INTEGER and REAL fields end
// at a single space (or at the end of the record), STRING fields are
// wrapped in a matching pair of " or ' quotes followed by one space.
// A record may be padded with spaces up to the table's record size and
// may carry a trailing $ end-of-record marker.
package datafile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/oscardepp/SimpleSQL/internal/domain/schema"
)

// Extension is the file extension of table data files
const Extension = ".data"

// DefaultBufferSize is used when the catalog does not give a record size
const DefaultBufferSize = 64 * 1024

// recordOverhead covers the "$\n" terminator plus one spare byte
const recordOverhead = 3

// ErrMalformedRecord is returned for a record that does not match the catalog
var ErrMalformedRecord = errors.New("malformed record")

// Path returns the location of a table's data file
func Path(db *schema.Database, table *schema.Table) string {
	return filepath.Join(db.Path, table.Name+Extension)
}

// Open opens a table's data file for reading
func Open(db *schema.Database, table *schema.Table) (*os.File, error) {
	path := Path(db, table)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("table's data file '%s' not found: %w", path, err)
	}
	return f, nil
}

// Scanner streams records from a data file. The buffer is sized from the
// table's record size; a line that does not fit is a malformed record.
type Scanner struct {
	r      *bufio.Reader
	maxLen int
	record []byte
	line   int
	err    error
	done   bool
}

// NewScanner creates a Scanner for records of at most recordSize bytes.
// A recordSize of 0 means unknown and falls back to DefaultBufferSize.
func NewScanner(r io.Reader, recordSize int) *Scanner {
	size := DefaultBufferSize
	if recordSize > 0 {
		size = recordSize + recordOverhead
	}
	return &Scanner{
		r:      bufio.NewReaderSize(r, size),
		maxLen: size,
	}
}

// Scan advances to the next record. It returns false at end of file or
// on error; Err tells the two apart. Empty lines are skipped.
func (s *Scanner) Scan() bool {
	for !s.done {
		line, err := s.r.ReadSlice('\n')
		switch {
		case err == nil:
		case errors.Is(err, bufio.ErrBufferFull):
			s.err = fmt.Errorf("%w: line %d exceeds %d bytes", ErrMalformedRecord, s.line+1, s.maxLen)
			s.done = true
			return false
		case errors.Is(err, io.EOF):
			// last line without a newline still counts
			s.done = true
			if len(line) == 0 {
				return false
			}
		default:
			s.err = err
			s.done = true
			return false
		}

		s.line++
		record := trimRecord(line)
		if len(record) == 0 {
			continue
		}
		s.record = record
		return true
	}
	return false
}

// Record returns the current record without its terminator.
// The slice is only valid until the next call to Scan.
func (s *Scanner) Record() []byte {
	return s.record
}

// Line returns the 1-based line number of the current record
func (s *Scanner) Line() int {
	return s.line
}

// Err returns the first non-EOF error met by Scan
func (s *Scanner) Err() error {
	return s.err
}

// trimRecord strips the line ending, padding and the $ marker
func trimRecord(line []byte) []byte {
	line = bytes.TrimRight(line, "\r\n")
	line = bytes.TrimRight(line, " ")
	line = bytes.TrimSuffix(line, []byte("$"))
	return bytes.TrimRight(line, " ")
}
