package plan

import (
	"fmt"
	"strings"

	"github.com/oscardepp/SimpleSQL/internal/domain/data"
)

// Explain describes the steps a query runs through, one per line and
// indented under the statement. Steps the plan does not need are left out.
func Explain(q *Query) string {
	if q == nil {
		return ""
	}
	if q.Select == nil {
		return fmt.Sprintf("%s (not executable)\n", q.Type)
	}

	sel := q.Select
	columns, dropped := sel.Dedup()

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", sel.NodeType(), sel.TableName)
	step := func(format string, args ...interface{}) {
		b.WriteString("  ")
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	step("scan: %s", sel.TableName)
	if sel.Where != nil {
		w := sel.Where
		step("filter: %s %s %s (%s)", w.Column, w.Operator, w.Value, w.Kind)
	}

	names := make([]string, len(columns))
	var fns []string
	for i, ref := range columns {
		names[i] = ref.Name
		if ref.Function != data.NoFunction {
			fns = append(fns, fmt.Sprintf("%s(%s)", ref.Function, ref.Name))
		}
	}
	step("project: %s", strings.Join(names, ", "))
	for _, ref := range dropped {
		step("  ignored duplicate: %s", ref.Name)
	}
	if len(fns) > 0 {
		step("functions: %s", strings.Join(fns, ", "))
	}
	if sel.Limit != nil {
		step("limit: %d", sel.Limit.N)
	}

	return b.String()
}
