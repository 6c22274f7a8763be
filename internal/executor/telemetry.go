package executor

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/oscardepp/SimpleSQL/internal/executor"

// Option configures an Executor
type Option func(*Executor)

// WithTracerProvider sets the provider stage spans are created from.
// The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Executor) {
		e.tracer = tp.Tracer(instrumentationName)
	}
}

// WithMeterProvider sets the provider row counters are created from.
// The global provider is used otherwise.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(e *Executor) {
		e.meter = mp.Meter(instrumentationName)
	}
}

type instruments struct {
	rowsDecoded metric.Int64Counter
	rowsRemoved metric.Int64Counter
}

func newInstruments(m metric.Meter) (instruments, error) {
	var ins instruments
	var err error

	ins.rowsDecoded, err = m.Int64Counter("simplesql.rows.decoded",
		metric.WithDescription("Records decoded from table data files"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return ins, err
	}

	ins.rowsRemoved, err = m.Int64Counter("simplesql.rows.removed",
		metric.WithDescription("Rows removed by the filter, function and limit stages"),
		metric.WithUnit("{row}"),
	)
	return ins, err
}

func defaultTracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

func defaultMeter() metric.Meter {
	return otel.Meter(instrumentationName)
}
