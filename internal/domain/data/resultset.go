package data

import (
	"errors"
	"fmt"

	"github.com/oscardepp/SimpleSQL/internal/domain/schema"
	"github.com/oscardepp/SimpleSQL/internal/util/ident"
)

var (
	// ErrOutOfRange is returned for a row or column ordinal that is not live
	ErrOutOfRange = errors.New("position out of range")
	// ErrTypeMismatch is returned when a value's type does not match its column
	ErrTypeMismatch = errors.New("type mismatch")
)

// Column is the identity of a result column
type Column struct {
	Table    string
	Name     string
	Type     schema.ColumnType
	Function Function
}

// DisplayName is the header used when the column is printed
func (c Column) DisplayName() string {
	if c.Function == NoFunction {
		return c.Name
	}
	return fmt.Sprintf("%s(%s)", c.Function, c.Name)
}

type column struct {
	Column
	values []Value // one per live row
}

// ResultSet is the working table of a query: an ordered set of typed
// columns and an ordered set of rows. Rows and columns are addressed by
// 1-based ordinals that stay dense after every deletion or move.
//
// A ResultSet is not safe for concurrent use.
type ResultSet struct {
	columns []*column
	numRows int
}

// NewResultSet creates an empty result set (no columns, no rows)
func NewResultSet() *ResultSet {
	return &ResultSet{}
}

// NumRows returns the number of live rows
func (rs *ResultSet) NumRows() int {
	return rs.numRows
}

// NumColumns returns the number of live columns
func (rs *ResultSet) NumColumns() int {
	return len(rs.columns)
}

// InsertColumn inserts a column at pos (1..NumColumns()+1), shifting the
// columns at pos and after one slot right. Existing rows get the zero
// value of typ. Returns the new column's position.
func (rs *ResultSet) InsertColumn(pos int, table, name string, fn Function, typ schema.ColumnType) (int, error) {
	if pos < 1 || pos > len(rs.columns)+1 {
		return 0, fmt.Errorf("insert column %s at %d: %w", name, pos, ErrOutOfRange)
	}
	if !typ.Valid() {
		return 0, fmt.Errorf("insert column %s: %w: unknown type %q", name, ErrTypeMismatch, typ)
	}

	col := &column{
		Column: Column{Table: table, Name: name, Type: typ, Function: fn},
		values: make([]Value, rs.numRows),
	}
	for i := range col.values {
		col.values[i] = zeroValue(typ)
	}

	idx := pos - 1
	rs.columns = append(rs.columns, nil)
	copy(rs.columns[idx+1:], rs.columns[idx:])
	rs.columns[idx] = col

	return pos, nil
}

// AddRow appends a row holding zero values and returns its ordinal
func (rs *ResultSet) AddRow() int {
	for _, col := range rs.columns {
		col.values = append(col.values, zeroValue(col.Type))
	}
	rs.numRows++
	return rs.numRows
}

// Put stores v at (row, col). The value's type must match the column's.
func (rs *ResultSet) Put(row, col int, v Value) error {
	c, err := rs.cell(row, col)
	if err != nil {
		return err
	}
	if v.Type != c.Type {
		return fmt.Errorf("put %s into %s column %s: %w", v.Type, c.Type, c.Name, ErrTypeMismatch)
	}
	c.values[row-1] = v
	return nil
}

// PutInt stores an INTEGER at (row, col)
func (rs *ResultSet) PutInt(row, col int, v int64) error {
	return rs.Put(row, col, IntValue(v))
}

// PutReal stores a REAL at (row, col)
func (rs *ResultSet) PutReal(row, col int, v float64) error {
	return rs.Put(row, col, RealValue(v))
}

// PutString stores a STRING at (row, col)
func (rs *ResultSet) PutString(row, col int, v string) error {
	return rs.Put(row, col, StringValue(v))
}

// Get returns the value at (row, col)
func (rs *ResultSet) Get(row, col int) (Value, error) {
	c, err := rs.cell(row, col)
	if err != nil {
		return Value{}, err
	}
	return c.values[row-1], nil
}

// GetInt returns the INTEGER at (row, col)
func (rs *ResultSet) GetInt(row, col int) (int64, error) {
	v, err := rs.typed(row, col, schema.ColumnTypeInteger)
	return v.Int, err
}

// GetReal returns the REAL at (row, col)
func (rs *ResultSet) GetReal(row, col int) (float64, error) {
	v, err := rs.typed(row, col, schema.ColumnTypeReal)
	return v.Real, err
}

// GetString returns the STRING at (row, col)
func (rs *ResultSet) GetString(row, col int) (string, error) {
	v, err := rs.typed(row, col, schema.ColumnTypeString)
	return v.Str, err
}

// FindColumn returns the position of the column named name belonging to
// table, or -1. Both names are matched case-insensitively.
func (rs *ResultSet) FindColumn(table, name string) int {
	for i, col := range rs.columns {
		if ident.Equal(col.Table, table) && ident.Equal(col.Name, name) {
			return i + 1
		}
	}
	return -1
}

// DeleteRow removes the row at ordinal row. Rows after it move up by one.
func (rs *ResultSet) DeleteRow(row int) error {
	if row < 1 || row > rs.numRows {
		return fmt.Errorf("delete row %d of %d: %w", row, rs.numRows, ErrOutOfRange)
	}
	idx := row - 1
	for _, col := range rs.columns {
		col.values = append(col.values[:idx], col.values[idx+1:]...)
	}
	rs.numRows--
	return nil
}

// DeleteColumn removes the column at position col together with its values.
// Columns after it move left by one.
func (rs *ResultSet) DeleteColumn(col int) error {
	if col < 1 || col > len(rs.columns) {
		return fmt.Errorf("delete column %d of %d: %w", col, len(rs.columns), ErrOutOfRange)
	}
	idx := col - 1
	rs.columns = append(rs.columns[:idx], rs.columns[idx+1:]...)
	return nil
}

// MoveColumn moves the column at from to position to. The columns in
// between shift by one slot to fill the gap.
func (rs *ResultSet) MoveColumn(from, to int) error {
	n := len(rs.columns)
	if from < 1 || from > n || to < 1 || to > n {
		return fmt.Errorf("move column %d to %d of %d: %w", from, to, n, ErrOutOfRange)
	}
	if from == to {
		return nil
	}

	col := rs.columns[from-1]
	if from < to {
		copy(rs.columns[from-1:to-1], rs.columns[from:to])
	} else {
		copy(rs.columns[to:from], rs.columns[to-1:from-1])
	}
	rs.columns[to-1] = col
	return nil
}

// ApplyFunction applies fn to the column at position col and tags the
// column with it.
//
// A scalar function rewrites every value. An aggregate is computed over
// all live rows and the result replaces every value of the column; the
// caller decides when to drop the now redundant rows. The column's type
// follows the function (AVG yields REAL, COUNT yields INTEGER).
func (rs *ResultSet) ApplyFunction(fn Function, col int) error {
	if col < 1 || col > len(rs.columns) {
		return fmt.Errorf("apply %s to column %d of %d: %w", fn, col, len(rs.columns), ErrOutOfRange)
	}
	if fn == NoFunction {
		return nil
	}

	c := rs.columns[col-1]
	typ, err := resultType(fn, c.Type)
	if err != nil {
		return fmt.Errorf("apply to %s: %w", c.Name, err)
	}

	if len(c.values) > 0 {
		if fn.IsAggregate() {
			agg := aggregate(fn, c.Type, c.values)
			for i := range c.values {
				c.values[i] = agg
			}
		} else {
			for i, v := range c.values {
				c.values[i] = scalar(fn, v)
			}
		}
	}

	c.Type = typ
	c.Function = fn
	return nil
}

// Columns returns a copy of the live column identities in position order
func (rs *ResultSet) Columns() []Column {
	cols := make([]Column, len(rs.columns))
	for i, col := range rs.columns {
		cols[i] = col.Column
	}
	return cols
}

// Row returns a copy of the values of one row in column order
func (rs *ResultSet) Row(row int) ([]Value, error) {
	if row < 1 || row > rs.numRows {
		return nil, fmt.Errorf("row %d of %d: %w", row, rs.numRows, ErrOutOfRange)
	}
	values := make([]Value, len(rs.columns))
	for i, col := range rs.columns {
		values[i] = col.values[row-1]
	}
	return values, nil
}

// Close drops every column and row. The result set is empty afterwards.
func (rs *ResultSet) Close() {
	rs.columns = nil
	rs.numRows = 0
}

func (rs *ResultSet) cell(row, col int) (*column, error) {
	if col < 1 || col > len(rs.columns) {
		return nil, fmt.Errorf("column %d of %d: %w", col, len(rs.columns), ErrOutOfRange)
	}
	if row < 1 || row > rs.numRows {
		return nil, fmt.Errorf("row %d of %d: %w", row, rs.numRows, ErrOutOfRange)
	}
	return rs.columns[col-1], nil
}

func (rs *ResultSet) typed(row, col int, typ schema.ColumnType) (Value, error) {
	c, err := rs.cell(row, col)
	if err != nil {
		return Value{}, err
	}
	if c.Type != typ {
		return Value{}, fmt.Errorf("get %s from %s column %s: %w", typ, c.Type, c.Name, ErrTypeMismatch)
	}
	return c.values[row-1], nil
}
