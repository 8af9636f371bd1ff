package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/enqueue/job"
)

// tracerName is the instrumentation scope name for enqueue tracing.
const tracerName = "github.com/xraph/enqueue"

// Tracing returns middleware that wraps each insert in an OpenTelemetry span.
// If no TracerProvider is configured globally, the default noop tracer is used
// and this middleware becomes a pass-through.
//
// Span attributes include: enqueue.job.kind, enqueue.queue, enqueue.priority,
// enqueue.state, enqueue.client.id, and enqueue.job.id once stored.
// On error, the span status is set to codes.Error with the error message.
func Tracing() Middleware {
	tracer := otel.Tracer(tracerName)
	return TracingWithTracer(tracer)
}

// TracingWithTracer returns tracing middleware using the provided tracer.
func TracingWithTracer(tracer trace.Tracer) Middleware {
	return func(ctx context.Context, d *job.InsertDraft, next Handler) (*job.Record, error) {
		ctx, span := tracer.Start(ctx, "enqueue.job.insert",
			trace.WithAttributes(
				attribute.String("enqueue.job.kind", d.Kind),
				attribute.String("enqueue.queue", d.Queue),
				attribute.Int("enqueue.priority", d.Priority),
				attribute.String("enqueue.state", string(d.State)),
				attribute.String("enqueue.client.id", ClientIDFromContext(ctx)),
			),
			trace.WithSpanKind(trace.SpanKindClient),
		)
		defer span.End()

		rec, err := next(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return rec, err
		}

		span.SetAttributes(attribute.Int64("enqueue.job.id", rec.ID))
		span.SetStatus(codes.Ok, "")
		return rec, nil
	}
}
