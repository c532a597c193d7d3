package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	usecaseTracer   = otel.Tracer("scorecast/internal/usecase")
	usecaseNoopSpan = trace.SpanFromContext(context.Background())
)

// startUsecaseSpan only opens a span under an existing request span; calls
// from cmd/probe and tests stay untraced.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// markSourceDegraded records a degraded source on the current span.
func markSourceDegraded(ctx context.Context, name, kind string) {
	trace.SpanFromContext(ctx).AddEvent("source.degraded", trace.WithAttributes(
		attribute.String("source.name", name),
		attribute.String("source.error_kind", kind),
	))
}
