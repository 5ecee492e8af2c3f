package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "news-portal"

// tracer is replaced by InitProvider once the SDK provider is installed.
var tracer = otel.Tracer(instrumentationName)

// GetTracer returns the package tracer.
func GetTracer() trace.Tracer {
	return tracer
}

// StartSpan starts an internal span under ctx.
//
//	ctx, span := tracing.StartSpan(ctx, "article.approve", attribute.Int64("article.id", id))
//	defer func() { tracing.EndSpan(span, err) }()
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err (if any) on span and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
