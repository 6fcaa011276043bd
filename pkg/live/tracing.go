package live

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for the bridge.
const defaultTracerName = "statebind"

// TracingConfig configures the OpenTelemetry tracing of flush
// deliveries.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "statebind").
	TracerName string

	// AttributeExtractor extracts custom attributes per flush frame.
	AttributeExtractor func(frame FlushFrame) []attribute.KeyValue

	tracer trace.Tracer
}

// TracingOption configures the tracing setup.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(frame FlushFrame) []attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.AttributeExtractor = extractor
	}
}

// Tracing traces flush deliveries.
type Tracing struct {
	cfg TracingConfig
}

// NewTracing creates the tracing setup for the bridge.
func NewTracing(opts ...TracingOption) *Tracing {
	cfg := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.tracer = otel.Tracer(cfg.TracerName)
	return &Tracing{cfg: cfg}
}

// startFlush opens a span for one flush delivery.
func (t *Tracing) startFlush(ctx context.Context, frame FlushFrame) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.Int64("statebind.flush.seq", int64(frame.Seq)),
		attribute.Int("statebind.flush.changes", len(frame.Changes)),
	}
	if t.cfg.AttributeExtractor != nil {
		attrs = append(attrs, t.cfg.AttributeExtractor(frame)...)
	}
	return t.cfg.tracer.Start(ctx, "statebind.flush",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(attrs...))
}
