// Package executor runs a validated SELECT plan against a flat-file
// database: resolve, decode, filter, project, reorder, functions, limit,
// then emit through an output.Formatter.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"

	"github.com/oscardepp/SimpleSQL/internal/domain/data"
	"github.com/oscardepp/SimpleSQL/internal/domain/errors"
	"github.com/oscardepp/SimpleSQL/internal/domain/schema"
	"github.com/oscardepp/SimpleSQL/internal/output"
	"github.com/oscardepp/SimpleSQL/internal/plan"
)

// Executor is the entry point for running queries against one database
type Executor struct {
	db        *schema.Database
	logger    *slog.Logger
	observers []Observer // Observers for lifecycle events
	tracer    trace.Tracer
	meter     metric.Meter
	ins       instruments
}

// New creates a new Executor. A nil logger means slog.Default().
func New(db *schema.Database, logger *slog.Logger, opts ...Option) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Executor{
		db:        db,
		logger:    logger,
		observers: make([]Observer, 0),
		tracer:    defaultTracer(),
		meter:     defaultMeter(),
	}
	for _, opt := range opts {
		opt(e)
	}

	ins, err := newInstruments(e.meter)
	if err != nil {
		logger.Warn("metric instruments unavailable", "error", err)
	}
	e.ins = ins
	return e
}

// execution holds the state of one Execute call
type execution struct {
	*Executor
	id      string
	logger  *slog.Logger
	query   *plan.SelectNode
	columns []plan.ColumnRef // requested columns, duplicates removed
	table   *schema.Table
	file    *os.File
	rs      *data.ResultSet
}

// Execute runs q and hands the result to f.
//
// A nil database, query or formatter and every failure inside the
// pipeline is an *errors.InternalError. A query other than SELECT
// returns errors.ErrUnsupportedQuery before anything is opened.
func (e *Executor) Execute(ctx context.Context, q *plan.Query, f output.Formatter) (err error) {
	if e.db == nil {
		return errors.NewInternal("execute", "database handle is nil")
	}
	if q == nil {
		return errors.NewInternal("execute", "query plan is nil")
	}
	if q.Type != plan.QuerySelect {
		e.logger.Warn("unsupported query", "type", q.Type)
		return errors.ErrUnsupportedQuery
	}
	if q.Select == nil {
		return errors.NewInternal("execute", "SELECT plan has no select node")
	}
	if f == nil {
		return errors.NewInternal("execute", "formatter is nil")
	}

	x := &execution{
		Executor: e,
		id:       uuid.NewString(),
		query:    q.Select,
	}
	x.logger = e.logger.With("exec_id", x.id, "table", q.Select.TableName)

	ctx, span := e.tracer.Start(ctx, "simplesql.execute", trace.WithAttributes(
		attribute.String("simplesql.exec_id", x.id),
		attribute.String("simplesql.table", q.Select.TableName),
	))
	start := time.Now()
	e.notify(Event{Type: EventExecStart, ExecID: x.id, Data: q.Select.TableName})

	defer func() {
		err = multierr.Append(err, x.release())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		e.notify(Event{Type: EventExecEnd, ExecID: x.id, Data: err})
	}()

	var dropped []plan.ColumnRef
	x.columns, dropped = q.Select.Dedup()
	for _, ref := range dropped {
		x.logger.Warn("duplicate column ignored", "column", ref.Name, "function", ref.Function.String())
	}

	for _, step := range []struct {
		stage Stage
		run   func(context.Context) error
	}{
		{StageResolve, x.resolve},
		{StageDecode, x.decode},
		{StageFilter, x.filter},
		{StageProject, x.project},
		{StageReorder, x.reorder},
		{StageFunctions, x.functions},
		{StageLimit, x.limit},
	} {
		if err := x.stage(ctx, step.stage, step.run); err != nil {
			return errors.WrapInternal(string(step.stage), x.tableName(), err)
		}
	}

	rows, cols := x.rs.NumRows(), x.rs.NumColumns()
	if err := x.stage(ctx, StageEmit, func(context.Context) error { return f.Format(x.rs) }); err != nil {
		return fmt.Errorf("emit result: %w", err)
	}

	x.logger.Info("query executed",
		"rows", rows,
		"columns", cols,
		"duration", time.Since(start),
	)
	return nil
}

// stage runs one pipeline step inside its own span and reports it to observers
func (x *execution) stage(ctx context.Context, name Stage, run func(context.Context) error) error {
	ctx, span := x.tracer.Start(ctx, "simplesql."+string(name))
	defer span.End()

	x.notify(Event{Type: EventStageStart, ExecID: x.id, Stage: name, Data: x.stats(nil)})

	err := run(ctx)

	stats := x.stats(err)
	span.SetAttributes(
		attribute.Int("simplesql.rows", stats.Rows),
		attribute.Int("simplesql.columns", stats.Columns),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	x.notify(Event{Type: EventStageEnd, ExecID: x.id, Stage: name, Data: stats})
	return err
}

func (x *execution) stats(err error) StageStats {
	s := StageStats{Err: err}
	if x.rs != nil {
		s.Rows = x.rs.NumRows()
		s.Columns = x.rs.NumColumns()
	}
	return s
}

func (x *execution) tableName() string {
	if x.table != nil {
		return x.table.Name
	}
	return x.query.TableName
}

// release drops the working table and closes the data file
func (x *execution) release() error {
	if x.rs != nil {
		x.rs.Close()
		x.rs = nil
	}
	if x.file == nil {
		return nil
	}
	err := x.file.Close()
	x.file = nil
	if err != nil {
		return fmt.Errorf("close data file: %w", err)
	}
	return nil
}

// AddObserver registers an observer to receive lifecycle events
func (e *Executor) AddObserver(observer Observer) {
	e.observers = append(e.observers, observer)
}

// RemoveObserver unregisters an observer
func (e *Executor) RemoveObserver(observer Observer) {
	for i, o := range e.observers {
		if o == observer {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (e *Executor) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range e.observers {
		observer.OnEvent(event)
	}
}
