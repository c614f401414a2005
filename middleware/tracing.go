package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope name for notify tracing.
const tracerName = "github.com/raquelt/notify"

// Tracing returns middleware that wraps handler invocation in an
// OpenTelemetry span. If no TracerProvider is configured globally, the
// default noop tracer is used and this middleware becomes a pass-through
// with zero overhead.
//
// Span attributes include: notify.delivery.id, notify.incidence.id,
// notify.external_system, notify.event.kind, notify.event.ticket_id.
// On error, the span status is set to codes.Error with the error message.
func Tracing() Middleware {
	tracer := otel.Tracer(tracerName)
	return TracingWithTracer(tracer)
}

// TracingWithTracer returns tracing middleware using the provided tracer.
// This variant allows injecting a specific TracerProvider for testing or
// when multiple providers are in use.
func TracingWithTracer(tracer trace.Tracer) Middleware {
	return func(ctx context.Context, d *Delivery, next Handler) error {
		ctx, span := tracer.Start(ctx, "notify.dispatch",
			trace.WithAttributes(
				attribute.String("notify.delivery.id", d.ID.String()),
				attribute.String("notify.incidence.id", d.IncidenceID),
				attribute.String("notify.external_system", d.SystemCode),
				attribute.String("notify.event.kind", string(d.Event.Kind())),
				attribute.String("notify.event.ticket_id", d.Event.TicketID()),
			),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		err := next(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return err
	}
}
