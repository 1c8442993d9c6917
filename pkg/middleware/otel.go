package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pagekit-go/pagekit/pkg/messenger"
)

// Default tracer name for pagekit applications.
const defaultTracerName = "pagekit"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "pagekit").
	TracerName string

	// IncludeUserID includes the triggering user's ID in traces.
	// May contain sensitive information - disabled by default.
	IncludeUserID bool

	// Filter determines which interactions to trace. Return true to
	// trace the interaction, false to skip. If nil, all are traced.
	Filter func(ic messenger.InteractionCtx) bool

	// AttributeExtractor extracts custom attributes per interaction.
	AttributeExtractor func(ic messenger.InteractionCtx) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeUserID enables including the user ID in traces.
func WithIncludeUserID(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeUserID = include
	}
}

// WithFilter sets a filter function for interactions.
func WithFilter(filter func(ic messenger.InteractionCtx) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ic messenger.InteractionCtx) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry wraps an interaction handler with a span per event.
//
// The span is named "pagekit.interaction.{role}" and carries the custom
// ID, role, and (optionally) the triggering user's ID. Handler errors
// are recorded on the span and set its status.
func OpenTelemetry(next messenger.Handler, opts ...OTelOption) messenger.Handler {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return func(ctx context.Context, ic messenger.InteractionCtx) error {
		if config.Filter != nil && !config.Filter(ic) {
			return next(ctx, ic)
		}

		role := roleOf(ic)
		attrs := []attribute.KeyValue{
			attribute.String("pagekit.custom_id", ic.CustomID()),
			attribute.String("pagekit.role", role),
		}
		if config.IncludeUserID {
			attrs = append(attrs, attribute.String("pagekit.user_id", ic.Author().ID))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(ic)...)
		}

		spanCtx, span := config.tracer.Start(ctx,
			"pagekit.interaction."+role,
			trace.WithAttributes(attrs...),
			trace.WithSpanKind(trace.SpanKindServer),
		)
		defer span.End()

		err := next(spanCtx, ic)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	}
}
