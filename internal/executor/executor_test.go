package executor

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/oscardepp/SimpleSQL/internal/domain/data"
	"github.com/oscardepp/SimpleSQL/internal/domain/errors"
	"github.com/oscardepp/SimpleSQL/internal/domain/schema"
	"github.com/oscardepp/SimpleSQL/internal/output"
	"github.com/oscardepp/SimpleSQL/internal/plan"
	"github.com/oscardepp/SimpleSQL/internal/query/operations/testutil"
)

var employeeRecords = []string{
	`1 "Alice" 50000.0`,
	`2 "Bob" 42000.5`,
}

// MockObserver is a test observer that records events
type MockObserver struct {
	Events []Event
}

func (m *MockObserver) OnEvent(event Event) {
	m.Events = append(m.Events, event)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createDatabase writes an Employees data file holding records into a temp dir
func createDatabase(t *testing.T, records []string) *schema.Database {
	t.Helper()
	dir := t.TempDir()

	var content strings.Builder
	for _, r := range records {
		content.WriteString(r + "\n")
	}
	path := filepath.Join(dir, testutil.EmployeesTable+".data")
	if err := os.WriteFile(path, []byte(content.String()), 0644); err != nil {
		t.Fatalf("write data file: %v", err)
	}

	return &schema.Database{
		Name:   "company",
		Path:   dir,
		Tables: []*schema.Table{testutil.CreateEmployeesTable()},
	}
}

func selectQuery(table string, columns ...string) *plan.Query {
	node := &plan.SelectNode{TableName: table}
	for _, c := range columns {
		node.Columns = append(node.Columns, plan.ColumnRef{Name: c})
	}
	return &plan.Query{Type: plan.QuerySelect, Select: node}
}

func runCSV(t *testing.T, db *schema.Database, q *plan.Query) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := New(db, discardLogger()).Execute(context.Background(), q, output.NewCSVFormatter(&buf))
	return buf.String(), err
}

func TestExecute_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		records []string
		query   func() *plan.Query
		want    string
	}{
		{
			name:    "where salary > 45000 with integer literal",
			records: employeeRecords,
			query: func() *plan.Query {
				q := selectQuery("employees", "name")
				q.Select.Where = &plan.Predicate{Column: "salary", Operator: plan.OpGreater, Value: "45000", Kind: plan.LiteralInteger}
				return q
			},
			want: "name\nAlice\n",
		},
		{
			name:    "limit 1 without where",
			records: employeeRecords,
			query: func() *plan.Query {
				q := selectQuery("Employees", "id", "name")
				q.Select.Limit = &plan.Limit{N: 1}
				return q
			},
			want: "id,name\n1,Alice\n",
		},
		{
			name:    "integer equality",
			records: employeeRecords,
			query: func() *plan.Query {
				q := selectQuery("Employees", "id", "name", "salary")
				q.Select.Where = &plan.Predicate{Column: "id", Operator: plan.OpEqual, Value: "2", Kind: plan.LiteralInteger}
				return q
			},
			want: "id,name,salary\n2,Bob,42000.5\n",
		},
		{
			name:    "integer literal widened against real column",
			records: employeeRecords,
			query: func() *plan.Query {
				q := selectQuery("Employees", "name")
				q.Select.Where = &plan.Predicate{Column: "salary", Operator: plan.OpGreaterEqual, Value: "42000", Kind: plan.LiteralInteger}
				return q
			},
			want: "name\nAlice\nBob\n",
		},
		{
			name:    "empty data file",
			records: nil,
			query:   func() *plan.Query { return selectQuery("Employees", "id", "name") },
			want:    "id,name\n",
		},
		{
			name:    "reorder against catalog order",
			records: employeeRecords,
			query:   func() *plan.Query { return selectQuery("EMPLOYEES", "salary", "ID") },
			want:    "salary,id\n50000,1\n42000.5,2\n",
		},
		{
			name:    "duplicate column kept once",
			records: employeeRecords,
			query:   func() *plan.Query { return selectQuery("Employees", "name", "id", "NAME") },
			want:    "name,id\nAlice,1\nBob,2\n",
		},
		{
			name:    "aggregates collapse to one row",
			records: employeeRecords,
			query: func() *plan.Query {
				q := selectQuery("Employees")
				q.Select.Columns = []plan.ColumnRef{
					{Name: "id", Function: data.FunctionCount},
					{Name: "salary", Function: data.FunctionMax},
				}
				return q
			},
			want: "COUNT(id),MAX(salary)\n2,50000\n",
		},
		{
			name:    "scalar function keeps rows",
			records: employeeRecords,
			query: func() *plan.Query {
				q := selectQuery("Employees")
				q.Select.Columns = []plan.ColumnRef{{Name: "name", Function: data.FunctionLower}}
				return q
			},
			want: "LOWER(name)\nalice\nbob\n",
		},
		{
			name:    "padded records with end marker",
			records: []string{`1 "Alice" 50000.0      $`, `2 'Bob' 42000.5$`},
			query:   func() *plan.Query { return selectQuery("Employees", "name", "salary") },
			want:    "name,salary\nAlice,50000\nBob,42000.5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := createDatabase(t, tt.records)

			got, err := runCSV(t, db, tt.query())
			testutil.AssertNoError(t, err, tt.name)
			if got != tt.want {
				t.Errorf("%s: expected:\n%s\ngot:\n%s", tt.name, tt.want, got)
			}
		})
	}
}

// TestExecute_FromPlanFile runs a plan decoded from YAML
func TestExecute_FromPlanFile(t *testing.T) {
	db := createDatabase(t, employeeRecords)
	q, err := plan.Parse([]byte(`
type: select
table: Employees
columns:
  - name: name
  - name: id
where: {column: name, operator: "!=", value: Bob, kind: string}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got, err := runCSV(t, db, q)
	testutil.AssertNoError(t, err, "plan file")
	if got != "name,id\nAlice,1\n" {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestExecute_InternalErrors(t *testing.T) {
	tests := []struct {
		name    string
		db      func(t *testing.T) *schema.Database
		query   *plan.Query
		wantOp  string
		wantRow int
	}{
		{
			name:   "nil database",
			db:     func(t *testing.T) *schema.Database { return nil },
			query:  selectQuery("Employees", "id"),
			wantOp: "execute",
		},
		{
			name:   "nil query",
			db:     func(t *testing.T) *schema.Database { return createDatabase(t, employeeRecords) },
			query:  nil,
			wantOp: "execute",
		},
		{
			name:   "table missing from catalog",
			db:     func(t *testing.T) *schema.Database { return createDatabase(t, employeeRecords) },
			query:  selectQuery("Departments", "id"),
			wantOp: "resolve",
		},
		{
			name: "data file missing",
			db: func(t *testing.T) *schema.Database {
				db := createDatabase(t, nil)
				db.Path = filepath.Join(db.Path, "missing")
				return db
			},
			query:  selectQuery("Employees", "id"),
			wantOp: "decode",
		},
		{
			name:    "malformed record",
			db:      func(t *testing.T) *schema.Database { return createDatabase(t, []string{`1 "Alice" 50000.0`, `2 "Bob 42000.5`}) },
			query:   selectQuery("Employees", "id"),
			wantOp:  "decode",
			wantRow: 2,
		},
		{
			name: "literal kind incompatible with column",
			db:   func(t *testing.T) *schema.Database { return createDatabase(t, employeeRecords) },
			query: func() *plan.Query {
				q := selectQuery("Employees", "name")
				q.Select.Where = &plan.Predicate{Column: "name", Operator: plan.OpEqual, Value: "1", Kind: plan.LiteralInteger}
				return q
			}(),
			wantOp: "filter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCSV(t, tt.db(t), tt.query)
			if err == nil {
				t.Fatal("expected an error")
			}

			var ie *errors.InternalError
			if !stderrors.As(err, &ie) {
				t.Fatalf("expected *errors.InternalError, got %T: %v", err, err)
			}
			if ie.Op != tt.wantOp {
				t.Errorf("expected op %q, got %q", tt.wantOp, ie.Op)
			}
			if ie.Row != tt.wantRow {
				t.Errorf("expected row %d, got %d", tt.wantRow, ie.Row)
			}
		})
	}
}

func TestExecute_UnsupportedQuery(t *testing.T) {
	db := createDatabase(t, employeeRecords)
	exec := New(db, discardLogger())
	observer := &MockObserver{}
	exec.AddObserver(observer)

	var buf bytes.Buffer
	err := exec.Execute(context.Background(), &plan.Query{Type: plan.QueryDelete}, output.NewCSVFormatter(&buf))

	if !stderrors.Is(err, errors.ErrUnsupportedQuery) {
		t.Fatalf("expected ErrUnsupportedQuery, got %v", err)
	}
	if errors.IsInternal(err) {
		t.Error("unsupported query must not be an internal error")
	}
	if len(observer.Events) != 0 || buf.Len() != 0 {
		t.Error("expected nothing to run for an unsupported query")
	}
}

func TestExecute_ObserverEvents(t *testing.T) {
	db := createDatabase(t, employeeRecords)
	exec := New(db, discardLogger())
	observer := &MockObserver{}
	exec.AddObserver(observer)

	q := selectQuery("Employees", "name")
	q.Select.Limit = &plan.Limit{N: 1}
	if err := exec.Execute(context.Background(), q, output.NewCSVFormatter(io.Discard)); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// exec_start, a start/end pair per stage, exec_end
	want := 2 + 2*len(Stages)
	if len(observer.Events) != want {
		t.Fatalf("expected %d events, got %d", want, len(observer.Events))
	}
	if observer.Events[0].Type != EventExecStart || observer.Events[want-1].Type != EventExecEnd {
		t.Errorf("expected exec_start first and exec_end last")
	}

	execID := observer.Events[0].ExecID
	if execID == "" {
		t.Error("expected an execution ID")
	}
	for i, stage := range Stages {
		start, end := observer.Events[1+2*i], observer.Events[2+2*i]
		if start.Type != EventStageStart || end.Type != EventStageEnd || start.Stage != stage || end.Stage != stage {
			t.Errorf("stage %s: unexpected events %s/%s %s/%s", stage, start.Type, start.Stage, end.Type, end.Stage)
		}
		if end.ExecID != execID || end.Timestamp.IsZero() {
			t.Errorf("stage %s: missing exec ID or timestamp", stage)
		}
	}

	decoded := observer.Events[4].Data.(StageStats)
	if decoded.Rows != 2 || decoded.Columns != 3 {
		t.Errorf("after decode: expected 2 rows x 3 columns, got %d x %d", decoded.Rows, decoded.Columns)
	}
	limited := observer.Events[14].Data.(StageStats)
	if limited.Rows != 1 || limited.Columns != 1 {
		t.Errorf("after limit: expected 1 row x 1 column, got %d x %d", limited.Rows, limited.Columns)
	}
}

func TestExecute_StageSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	db := createDatabase(t, employeeRecords)
	exec := New(db, discardLogger(), WithTracerProvider(tp))
	if err := exec.Execute(context.Background(), selectQuery("Employees", "id"), output.NewCSVFormatter(io.Discard)); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	spans := sr.Ended()
	if len(spans) != len(Stages)+1 {
		t.Fatalf("expected %d spans, got %d", len(Stages)+1, len(spans))
	}
	root := spans[len(spans)-1]
	if root.Name() != "simplesql.execute" {
		t.Errorf("expected root span last, got %s", root.Name())
	}
	for i, stage := range Stages {
		if spans[i].Name() != "simplesql."+string(stage) {
			t.Errorf("span %d: expected %s, got %s", i, stage, spans[i].Name())
		}
		if spans[i].Parent().SpanID() != root.SpanContext().SpanID() {
			t.Errorf("span %s is not a child of the execute span", spans[i].Name())
		}
	}
}

func TestExecute_FailedStageSpanStatus(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	exec := New(createDatabase(t, employeeRecords), discardLogger(), WithTracerProvider(tp))
	err := exec.Execute(context.Background(), selectQuery("Nope", "id"), output.NewCSVFormatter(io.Discard))
	if !errors.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected resolve and execute spans, got %d", len(spans))
	}
	for _, s := range spans {
		if s.Status().Code.String() != "Error" {
			t.Errorf("span %s: expected Error status, got %s", s.Name(), s.Status().Code)
		}
	}
}

func TestAddRemoveObserver(t *testing.T) {
	exec := New(nil, nil)
	observer := &MockObserver{}

	exec.AddObserver(observer)
	if len(exec.observers) != 1 {
		t.Errorf("Expected 1 observer, got %d", len(exec.observers))
	}

	exec.RemoveObserver(observer)
	if len(exec.observers) != 0 {
		t.Errorf("Expected 0 observers, got %d", len(exec.observers))
	}
}

func TestNotifyWithMultipleObservers(t *testing.T) {
	exec := New(nil, nil)
	observer1 := &MockObserver{}
	observer2 := &MockObserver{}
	exec.AddObserver(observer1)
	exec.AddObserver(observer2)

	exec.notify(Event{Type: EventStageStart, ExecID: "test", Stage: StageFilter})

	for i, o := range []*MockObserver{observer1, observer2} {
		if len(o.Events) != 1 || o.Events[0].Stage != StageFilter {
			t.Errorf("observer %d: expected one filter event, got %v", i+1, o.Events)
		}
		if o.Events[0].Timestamp.IsZero() {
			t.Errorf("observer %d: expected timestamp to be set", i+1)
		}
	}
}

func TestLoggingObserver(t *testing.T) {
	var buf bytes.Buffer
	lo := &LoggingObserver{logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	lo.OnEvent(Event{Type: EventStageEnd, ExecID: "abc", Stage: StageLimit, Data: StageStats{Rows: 1}})

	out := buf.String()
	for _, want := range []string{"query_lifecycle", "event=stage_end", "exec_id=abc", "stage=limit"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}
