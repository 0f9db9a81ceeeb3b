package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/adamwoolhether/reqkit/client"

// startSpan opens a client span for req and injects the propagation
// headers. The returned request carries the span context.
func (c *Client) startSpan(req *http.Request, name string) (*http.Request, trace.Span) {
	ctx, span := c.tracer.Start(req.Context(), name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", req.URL.String()),
		),
	)

	req = req.WithContext(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return req, span
}

// endSpan records the outcome on span; code is 0 when no response arrived.
func endSpan(span trace.Span, code int, err error) {
	if code != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", code))
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}

// requestID is an http.RoundTripper, stamping a request ID header.
type requestID struct {
	header string
	base   http.RoundTripper
}

func (rid requestID) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.Header.Get(rid.header) != "" {
		return rid.base.RoundTrip(r)
	}

	cpy := r.Clone(r.Context())
	cpy.Header.Set(rid.header, newRequestID(r.Context()))
	return rid.base.RoundTrip(cpy)
}

// newRequestID prefers the active trace ID so logs and traces correlate.
func newRequestID(ctx context.Context) string {
	traceID := trace.SpanContextFromContext(ctx).TraceID()
	if !traceID.IsValid() {
		return uuid.New().String()
	}

	return traceID.String()
}
