package middleware

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/weft-ui/weft/pkg/server"
)

// Default tracer name for weft applications.
const defaultTracerName = "weft"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "weft").
	TracerName string

	// Filter determines which events to trace. Return true to trace the
	// event. If nil, all events are traced.
	Filter func(ctx *server.EventCtx) bool

	// AttributeExtractor extracts custom attributes from the context,
	// called for each traced event.
	AttributeExtractor func(ctx *server.EventCtx) []attribute.KeyValue

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

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(ctx *server.EventCtx) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ctx *server.EventCtx) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry returns middleware that traces every dispatched event.
//
// Each event gets a span named "weft.event <type>" carrying the event type,
// target hydration ID, and session ID. Handler errors set the span status.
// The span's context is threaded through EventCtx for downstream calls.
//
// The tracer comes from the global tracer provider; configure it in main()
// before starting the server.
func OpenTelemetry(opts ...OTelOption) server.EventMiddleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return func(next server.EventHandler) server.EventHandler {
		return func(ctx *server.EventCtx) error {
			if config.Filter != nil && !config.Filter(ctx) {
				return next(ctx)
			}

			attrs := []attribute.KeyValue{
				attribute.String("weft.event.type", ctx.Event().Type),
				attribute.String("weft.event.hid", ctx.HID()),
			}
			if sess := ctx.Session(); sess != nil {
				attrs = append(attrs, attribute.String("weft.session.id", sess.ID()))
			}

			spanCtx, span := config.tracer.Start(ctx.StdContext(),
				"weft.event "+ctx.Event().Type,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			if config.AttributeExtractor != nil {
				span.SetAttributes(config.AttributeExtractor(ctx)...)
			}

			ctx.SetStdContext(spanCtx)
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
}
