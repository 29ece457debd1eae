package pool

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/utkarsh5026/pinpool"

// durationBuckets covers sub-millisecond tasks up to ten seconds.
var durationBuckets = []float64{
	0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10,
}

// poolMetrics holds the OpenTelemetry instruments of one pool.
// A nil *poolMetrics records nothing, which is the state of a pool created
// without WithMeterProvider.
type poolMetrics struct {
	pushed   metric.Int64Counter
	rejected metric.Int64Counter
	executed metric.Int64Counter
	duration metric.Float64Histogram
	wait     metric.Float64Histogram
	active   metric.Registration

	attrs   metric.MeasurementOption
	okAttrs metric.MeasurementOption
	errAttr metric.MeasurementOption
}

func newPoolMetrics(mp metric.MeterProvider, name string, active func() int) (*poolMetrics, error) {
	if mp == nil {
		return nil, nil
	}

	meter := mp.Meter(meterName)

	var base []attribute.KeyValue
	if name != "" {
		base = append(base, attribute.String("pool", name))
	}
	withOutcome := func(outcome string) metric.MeasurementOption {
		kv := append(append([]attribute.KeyValue(nil), base...), attribute.String("outcome", outcome))
		return metric.WithAttributeSet(attribute.NewSet(kv...))
	}

	m := &poolMetrics{
		attrs:   metric.WithAttributeSet(attribute.NewSet(base...)),
		okAttrs: withOutcome("ok"),
		errAttr: withOutcome("error"),
	}

	var errs []error
	var err error

	m.pushed, err = meter.Int64Counter("pinpool.task.pushed",
		metric.WithDescription("Tasks accepted by a push method"),
		metric.WithUnit("{task}"))
	errs = append(errs, err)

	m.rejected, err = meter.Int64Counter("pinpool.task.rejected",
		metric.WithDescription("Pushes rejected because the pool was stopped or the task was nil"),
		metric.WithUnit("{task}"))
	errs = append(errs, err)

	m.executed, err = meter.Int64Counter("pinpool.task.executed",
		metric.WithDescription("Tasks executed by workers, by outcome"),
		metric.WithUnit("{task}"))
	errs = append(errs, err)

	m.duration, err = meter.Float64Histogram("pinpool.task.duration",
		metric.WithDescription("Time spent running a task"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...))
	errs = append(errs, err)

	m.wait, err = meter.Float64Histogram("pinpool.task.queue_wait",
		metric.WithDescription("Time a task spent queued before a worker picked it up"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...))
	errs = append(errs, err)

	gauge, err := meter.Int64ObservableGauge("pinpool.workers.active",
		metric.WithDescription("Workers currently running"),
		metric.WithUnit("{worker}"))
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	m.active, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(gauge, int64(active()), m.attrs)
		return nil
	}, gauge)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *poolMetrics) recordPushed() {
	if m == nil {
		return
	}
	m.pushed.Add(context.Background(), 1, m.attrs)
}

func (m *poolMetrics) recordRejected() {
	if m == nil {
		return
	}
	m.rejected.Add(context.Background(), 1, m.attrs)
}

func (m *poolMetrics) recordExecuted(err error, wait, elapsed time.Duration) {
	if m == nil {
		return
	}
	ctx := context.Background()
	outcome := m.okAttrs
	if err != nil {
		outcome = m.errAttr
	}
	m.executed.Add(ctx, 1, outcome)
	m.duration.Record(ctx, elapsed.Seconds(), m.attrs)
	m.wait.Record(ctx, wait.Seconds(), m.attrs)
}
