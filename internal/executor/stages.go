package executor

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/oscardepp/SimpleSQL/internal/domain/data"
	"github.com/oscardepp/SimpleSQL/internal/domain/errors"
	"github.com/oscardepp/SimpleSQL/internal/query/operations/filter"
	"github.com/oscardepp/SimpleSQL/internal/query/operations/functions"
	"github.com/oscardepp/SimpleSQL/internal/query/operations/limit"
	"github.com/oscardepp/SimpleSQL/internal/query/operations/projection"
	"github.com/oscardepp/SimpleSQL/internal/storage/datafile"
)

func (x *execution) resolve(context.Context) error {
	table, ok := x.db.FindTable(x.query.TableName)
	if !ok {
		return &errors.InternalError{
			Op:     string(StageResolve),
			Table:  x.query.TableName,
			Reason: fmt.Sprintf("table not found in database %s", x.db.Name),
		}
	}
	x.table = table
	return nil
}

// decode builds the working table from the catalog, then appends one row
// per record of the table's data file
func (x *execution) decode(ctx context.Context) error {
	f, err := datafile.Open(x.db, x.table)
	if err != nil {
		return &errors.InternalError{Op: string(StageDecode), Table: x.table.Name, Err: err}
	}
	x.file = f

	rs := data.NewResultSet()
	x.rs = rs
	for i, col := range x.table.Columns {
		if _, err := rs.InsertColumn(i+1, x.table.Name, col.Name, data.NoFunction, col.Type); err != nil {
			return &errors.InternalError{Op: string(StageDecode), Table: x.table.Name, Column: col.Name, Err: err}
		}
	}

	scanner := datafile.NewScanner(f, x.table.RecordSize)
	for scanner.Scan() {
		values, err := datafile.Decode(scanner.Record(), x.table.Columns)
		if err != nil {
			return &errors.InternalError{Op: string(StageDecode), Table: x.table.Name, Row: scanner.Line(), Err: err}
		}

		row := rs.AddRow()
		for i, v := range values {
			if err := rs.Put(row, i+1, v); err != nil {
				return &errors.InternalError{
					Op: string(StageDecode), Table: x.table.Name, Column: x.table.Columns[i].Name,
					Row: scanner.Line(), Err: err,
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return &errors.InternalError{Op: string(StageDecode), Table: x.table.Name, Row: scanner.Line(), Err: err}
	}

	x.countRows(ctx, x.ins.rowsDecoded, StageDecode, rs.NumRows())
	x.logger.Debug("table decoded", "rows", rs.NumRows(), "path", f.Name())
	return nil
}

func (x *execution) filter(ctx context.Context) error {
	removed, err := filter.Apply(x.rs, x.table.Name, x.query.Where)
	if err != nil {
		return err
	}
	x.countRows(ctx, x.ins.rowsRemoved, StageFilter, removed)
	return nil
}

func (x *execution) project(context.Context) error {
	removed, err := projection.Project(x.rs, x.table, x.columns)
	if err != nil {
		return err
	}
	if len(removed) > 0 {
		x.logger.Debug("columns projected out", "columns", removed)
	}
	return nil
}

func (x *execution) reorder(context.Context) error {
	return projection.Reorder(x.rs, x.table.Name, x.columns)
}

func (x *execution) functions(ctx context.Context) error {
	before := x.rs.NumRows()
	applied, err := functions.Apply(x.rs, x.columns)
	if err != nil {
		return err
	}
	if applied > 0 {
		x.logger.Debug("functions applied", "count", applied)
	}
	x.countRows(ctx, x.ins.rowsRemoved, StageFunctions, before-x.rs.NumRows())
	return nil
}

func (x *execution) limit(ctx context.Context) error {
	removed, err := limit.Apply(x.rs, x.query.Limit)
	if err != nil {
		return err
	}
	x.countRows(ctx, x.ins.rowsRemoved, StageLimit, removed)
	return nil
}

func (x *execution) countRows(ctx context.Context, c metric.Int64Counter, stage Stage, n int) {
	if c == nil || n == 0 {
		return
	}
	c.Add(ctx, int64(n), metric.WithAttributes(
		attribute.String("simplesql.stage", string(stage)),
		attribute.String("simplesql.table", x.table.Name),
	))
}
