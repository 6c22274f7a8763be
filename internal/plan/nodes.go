package plan

import (
	"fmt"
	"strings"

	"github.com/oscardepp/SimpleSQL/internal/domain/data"
	"github.com/oscardepp/SimpleSQL/internal/util/ident"
)

// Node is implemented by every statement node of a validated plan
type Node interface {
	// NodeType returns the type identifier (for debugging/logging)
	NodeType() string
}

// QueryType identifies the kind of statement in a plan
type QueryType int

const (
	QuerySelect QueryType = iota
	QueryInsert
	QueryUpdate
	QueryDelete
)

func (t QueryType) String() string {
	switch t {
	case QuerySelect:
		return "SELECT"
	case QueryInsert:
		return "INSERT"
	case QueryUpdate:
		return "UPDATE"
	case QueryDelete:
		return "DELETE"
	default:
		return fmt.Sprintf("QueryType(%d)", int(t))
	}
}

// Query is a validated query plan. Table and column existence and type
// compatibility have been checked upstream; the executor trusts it.
type Query struct {
	Type   QueryType
	Select *SelectNode // set when Type is QuerySelect
}

// Node returns the statement node of the query (nil for non-SELECT plans)
func (q *Query) Node() Node {
	if q.Select == nil {
		return nil
	}
	return q.Select
}

// ColumnRef is one entry of the SELECT column list
type ColumnRef struct {
	Name     string
	Function data.Function
}

// Operator is a WHERE comparison operator.
// The numeric values are the canonical six-way encoding.
type Operator int

const (
	OpLess Operator = iota
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpEqual
	OpNotEqual
)

var operatorSymbols = [...]string{"<", "<=", ">", ">=", "=", "!="}

func (op Operator) String() string {
	if op >= 0 && int(op) < len(operatorSymbols) {
		return operatorSymbols[op]
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// ParseOperator maps a comparison symbol onto an Operator
func ParseOperator(s string) (Operator, error) {
	switch strings.TrimSpace(s) {
	case "<":
		return OpLess, nil
	case "<=":
		return OpLessEqual, nil
	case ">":
		return OpGreater, nil
	case ">=":
		return OpGreaterEqual, nil
	case "=", "==":
		return OpEqual, nil
	case "!=", "<>":
		return OpNotEqual, nil
	default:
		return 0, fmt.Errorf("unknown operator %q", s)
	}
}

// LiteralKind is the lexical type of a WHERE literal
type LiteralKind int

const (
	LiteralInteger LiteralKind = iota
	LiteralReal
	LiteralString
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralInteger:
		return "INTEGER"
	case LiteralReal:
		return "REAL"
	case LiteralString:
		return "STRING"
	default:
		return fmt.Sprintf("LiteralKind(%d)", int(k))
	}
}

// ParseLiteralKind maps a kind name (any case) onto a LiteralKind
func ParseLiteralKind(s string) (LiteralKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INTEGER", "INT":
		return LiteralInteger, nil
	case "REAL", "FLOAT":
		return LiteralReal, nil
	case "STRING", "TEXT":
		return LiteralString, nil
	default:
		return 0, fmt.Errorf("unknown literal kind %q", s)
	}
}

// Predicate is the WHERE clause: column <operator> literal
type Predicate struct {
	Column   string
	Operator Operator
	Value    string // literal text, without quotes for strings
	Kind     LiteralKind
}

// Limit caps the number of result rows
type Limit struct {
	N int
}

// SelectNode represents a SELECT against a single table
type SelectNode struct {
	TableName string
	Columns   []ColumnRef
	// Where filters rows. If nil, all rows are selected.
	Where *Predicate
	// Limit truncates the result. If nil, every row is returned.
	Limit *Limit
}

func (n *SelectNode) NodeType() string {
	return "SELECT"
}

// Dedup returns the column list with repeated names removed. The first
// occurrence of a name wins; later ones are returned as dropped.
func (n *SelectNode) Dedup() (columns, dropped []ColumnRef) {
	for _, ref := range n.Columns {
		seen := false
		for _, kept := range columns {
			if ident.Equal(kept.Name, ref.Name) {
				seen = true
				break
			}
		}
		if seen {
			dropped = append(dropped, ref)
			continue
		}
		columns = append(columns, ref)
	}
	return columns, dropped
}

// ColumnNames returns the requested column names in query order
func (n *SelectNode) ColumnNames() []string {
	names := make([]string, len(n.Columns))
	for i, ref := range n.Columns {
		names[i] = ref.Name
	}
	return names
}
