package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xraph/enqueue/job"
)

// meterName is the instrumentation scope name for enqueue metrics.
const meterName = "github.com/xraph/enqueue"

// Metrics returns middleware that records per-insert metrics using the
// global OTel MeterProvider. If no MeterProvider is configured, noop
// instruments are used and this middleware becomes a pass-through.
//
// Instruments:
//   - enqueue.job.insert.duration (Float64Histogram): insert time in seconds,
//     with attributes: kind, queue, status ("ok" or "error")
//   - enqueue.job.inserts (Int64Counter): total inserts,
//     with attributes: kind, queue, status ("ok" or "error")
func Metrics() Middleware {
	meter := otel.Meter(meterName)
	return MetricsWithMeter(meter)
}

// MetricsWithMeter returns metrics middleware using the provided meter.
func MetricsWithMeter(meter metric.Meter) Middleware {
	// OTel returns noop instruments alongside any error.
	duration, dErr := meter.Float64Histogram(
		"enqueue.job.insert.duration",
		metric.WithDescription("Duration of job inserts in seconds"),
		metric.WithUnit("s"),
	)
	_ = dErr

	inserts, iErr := meter.Int64Counter(
		"enqueue.job.inserts",
		metric.WithDescription("Total number of job inserts"),
		metric.WithUnit("{insert}"),
	)
	_ = iErr

	return func(ctx context.Context, d *job.InsertDraft, next Handler) (*job.Record, error) {
		start := time.Now()
		rec, err := next(ctx)
		elapsed := time.Since(start).Seconds()

		status := "ok"
		if err != nil {
			status = "error"
		}

		attrs := metric.WithAttributes(
			attribute.String("kind", d.Kind),
			attribute.String("queue", d.Queue),
			attribute.String("status", status),
		)

		duration.Record(ctx, elapsed, attrs)
		inserts.Add(ctx, 1, attrs)

		return rec, err
	}
}
