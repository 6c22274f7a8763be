package plan

import (
	"fmt"
	"os"

	"github.com/oscardepp/SimpleSQL/internal/domain/data"
	"gopkg.in/yaml.v3"
)

// planFile is the on-disk (YAML) form of a validated plan
type planFile struct {
	Type    string       `yaml:"type"`
	Table   string       `yaml:"table"`
	Columns []columnFile `yaml:"columns"`
	Where   *whereFile   `yaml:"where,omitempty"`
	Limit   *int         `yaml:"limit,omitempty"`
}

type columnFile struct {
	Name     string `yaml:"name"`
	Function string `yaml:"function,omitempty"`
}

type whereFile struct {
	Column   string `yaml:"column"`
	Operator string `yaml:"operator"`
	Value    string `yaml:"value"`
	Kind     string `yaml:"kind"`
}

// Load reads a YAML plan file
func Load(path string) (*Query, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	q, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	return q, nil
}

// Parse decodes a YAML plan. Only the shape of the plan is checked here;
// table and column existence are the validator's business.
func Parse(raw []byte) (*Query, error) {
	var pf planFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}

	qt, err := parseQueryType(pf.Type)
	if err != nil {
		return nil, err
	}
	q := &Query{Type: qt}
	if qt != QuerySelect {
		return q, nil
	}

	node := &SelectNode{TableName: pf.Table}
	if node.TableName == "" {
		return nil, fmt.Errorf("plan has no table")
	}
	if len(pf.Columns) == 0 {
		return nil, fmt.Errorf("plan has no columns")
	}

	for i, c := range pf.Columns {
		if c.Name == "" {
			return nil, fmt.Errorf("column %d has no name", i+1)
		}
		fn, err := data.ParseFunction(c.Function)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.Name, err)
		}
		node.Columns = append(node.Columns, ColumnRef{Name: c.Name, Function: fn})
	}

	if pf.Where != nil {
		op, err := ParseOperator(pf.Where.Operator)
		if err != nil {
			return nil, fmt.Errorf("where: %w", err)
		}
		kind, err := ParseLiteralKind(pf.Where.Kind)
		if err != nil {
			return nil, fmt.Errorf("where: %w", err)
		}
		node.Where = &Predicate{
			Column:   pf.Where.Column,
			Operator: op,
			Value:    pf.Where.Value,
			Kind:     kind,
		}
	}

	if pf.Limit != nil {
		if *pf.Limit < 1 {
			return nil, fmt.Errorf("limit must be positive, got %d", *pf.Limit)
		}
		node.Limit = &Limit{N: *pf.Limit}
	}

	q.Select = node
	return q, nil
}

func parseQueryType(s string) (QueryType, error) {
	switch s {
	case "", "select", "SELECT":
		return QuerySelect, nil
	case "insert", "INSERT":
		return QueryInsert, nil
	case "update", "UPDATE":
		return QueryUpdate, nil
	case "delete", "DELETE":
		return QueryDelete, nil
	default:
		return 0, fmt.Errorf("unknown query type %q", s)
	}
}
