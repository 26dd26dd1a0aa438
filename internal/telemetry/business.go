package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// EngineTracer traces analytics engine calls made on behalf of a request.
type EngineTracer struct {
	tracer trace.Tracer
}

// NewEngineTracer creates a new instance of EngineTracer using the global provider.
func NewEngineTracer() *EngineTracer {
	return &EngineTracer{tracer: GetEngineTracer()}
}

// ComputationResult summarizes what an engine call produced.
type ComputationResult struct {
	Rows     int
	Symbols  int
	Duration time.Duration
	Err      error
}

// TraceComputation starts a span for an engine operation such as "volatility" or "simulate".
// symbol may be empty for cross-sectional operations.
func (et *EngineTracer) TraceComputation(ctx context.Context, operation string, symbol string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{attribute.String("engine.operation", operation)}
	if symbol != "" {
		attrs = append(attrs, attribute.String("engine.symbol", symbol))
	}
	return et.tracer.Start(ctx, "engine."+operation, trace.WithAttributes(attrs...))
}

// RecordComputation adds the outcome to span and ends it.
func (et *EngineTracer) RecordComputation(span trace.Span, result ComputationResult) {
	defer span.End()

	span.SetAttributes(
		attribute.Int("engine.rows", result.Rows),
		attribute.Int("engine.symbols", result.Symbols),
		attribute.Int64("engine.duration_ms", result.Duration.Milliseconds()),
	)
	if result.Err != nil {
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, result.Err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}

// TraceDatasetLoad starts a span for loading the price table from source.
func (et *EngineTracer) TraceDatasetLoad(ctx context.Context, source string) (context.Context, trace.Span) {
	return et.tracer.Start(ctx, "dataset.load", trace.WithAttributes(attribute.String("dataset.source", source)))
}
