package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrUnsupportedQuery is returned when a query other than SELECT reaches the executor.
// It is reported to the user; it never stops the process.
var ErrUnsupportedQuery = stderrors.New("execute() only supports SELECT queries")

// InternalError represents a broken internal-consistency contract:
// a nil handle, a table missing after validation, an unreadable data file
// or a record that does not match the catalog. Callers treat it as fatal.
type InternalError struct {
	Op     string // pipeline stage or operation ("resolve", "decode", ...)
	Table  string // table name (empty if not table related)
	Column string // column name (empty if not column related)
	Row    int    // 1-based record/row number (0 if unknown)
	Reason string // human-readable explanation
	Err    error  // underlying cause (may be nil)
}

func (e *InternalError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("internal error (%s)", e.Op))

	if e.Table != "" {
		target := e.Table
		if e.Column != "" {
			target = fmt.Sprintf("%s.%s", e.Table, e.Column)
		}
		parts = append(parts, target)
	}

	if e.Row > 0 {
		parts = append(parts, fmt.Sprintf("at row %d", e.Row))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, " - ")
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// ValidationError is a plan that does not fit the catalog. It is raised
// before execution; the executor itself never re-validates.
type ValidationError struct {
	Table      string      // table name
	Column     string      // column name (empty if table-level)
	Value      interface{} // offending value (may be nil)
	Constraint string      // "table_exists", "column_exists", "literal_type", ...
	Reason     string      // human-readable explanation (optional)
}

func (e *ValidationError) Error() string {
	var parts []string

	target := e.Table
	if e.Column != "" {
		target = fmt.Sprintf("%s.%s", e.Table, e.Column)
	}
	parts = append(parts, fmt.Sprintf("invalid plan for %s", target))

	if e.Constraint != "" {
		parts = append(parts, fmt.Sprintf("(%s)", e.Constraint))
	}

	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	return strings.Join(parts, " ")
}

// NewInternal creates an InternalError for the given stage
func NewInternal(op, reason string) *InternalError {
	return &InternalError{Op: op, Reason: reason}
}

// WrapInternal turns err into an InternalError for the given stage.
// An error that already is an InternalError is returned unchanged.
func WrapInternal(op, table string, err error) error {
	if err == nil {
		return nil
	}
	var ie *InternalError
	if stderrors.As(err, &ie) {
		return err
	}
	return &InternalError{Op: op, Table: table, Err: err}
}

// IsInternal reports whether err is (or wraps) an InternalError
func IsInternal(err error) bool {
	var ie *InternalError
	return stderrors.As(err, &ie)
}
