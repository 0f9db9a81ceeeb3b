package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/adamwoolhether/reqkit/client/throttle"
	"github.com/adamwoolhether/reqkit/endpoint"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Client wraps the std-lib *http.Client.
// It starts from a copy of http.DefaultClient and http.DefaultTransport,
// which can be customized via optional funcs. A Client holds no per-request
// state and is safe for concurrent use.
type Client struct {
	c       *http.Client
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *metrics
}

// Build creates a Client from the given options.
func Build(optFns ...Option) (*Client, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	hc := *http.DefaultClient
	if opts.client != nil {
		hc = *opts.client
	}

	client := &Client{
		c:      &hc,
		logger: slog.Default(),
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	tp := opts.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	client.tracer = tp.Tracer(tracerName)

	if opts.registerer != nil {
		m, err := newMetrics(opts.registerer)
		if err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}
		client.metrics = m
	}

	if opts.timeout != nil {
		client.c.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		client.c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = http.DefaultTransport
	}
	if opts.userAgent != "" {
		transport = userAgent{value: opts.userAgent, base: transport}
	}
	if opts.requestIDHeader != "" {
		transport = requestID{header: opts.requestIDHeader, base: transport}
	}
	if opts.throttle != nil {
		rt, err := throttle.NewRoundTripper(*opts.throttle, func() *slog.Logger { return client.logger }, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}
	client.c.Transport = transport

	return client, nil
}

// Fetch issues the request described by b and opts and returns the
// response body of a 2xx response.
//
// A builder that does not resolve fails with [ErrInvalidURL] before any
// I/O, and download-only options such as [WithChunkSize] fail with
// [ErrGeneric]. Transport failures are [ErrGeneric]; non-2xx responses are
// classified into [ErrRedirection], [ErrClient], [ErrServer],
// [ErrInvalidResponse] or [ErrGeneric], each carrying the status code.
func (c *Client) Fetch(ctx context.Context, b *endpoint.Builder, opts ...RequestOption) ([]byte, error) {
	settings, err := newRequestOpts(opts)
	if err != nil {
		return nil, err
	}
	if err := settings.forFetch(); err != nil {
		return nil, err
	}

	return c.fetch(ctx, b, settings)
}

// FetchJSON is [Client.Fetch] followed by decoding the body as JSON into T.
// Decoding failures, including trailing data after the value, are
// [ErrDecoding].
func FetchJSON[T any](ctx context.Context, c *Client, b *endpoint.Builder, opts ...RequestOption) (T, error) {
	var zero T

	settings, err := newRequestOpts(opts)
	if err != nil {
		return zero, err
	}
	if err := settings.forFetch(); err != nil {
		return zero, err
	}

	data, err := c.fetch(ctx, b, settings)
	if err != nil {
		return zero, err
	}

	d := json.NewDecoder(bytes.NewReader(data))
	if settings.useJSONNumber {
		d.UseNumber()
	}

	var v T
	if err := d.Decode(&v); err != nil {
		return zero, &Error{Err: ErrDecoding, Detail: err.Error(), Cause: err}
	}

	if _, err := d.Token(); !errors.Is(err, io.EOF) {
		detail := "unexpected data after top-level value"
		if err != nil {
			detail = err.Error()
		}
		return zero, &Error{Err: ErrDecoding, Detail: detail, Cause: err}
	}

	return v, nil
}

func (c *Client) fetch(ctx context.Context, b *endpoint.Builder, settings requestOpts) ([]byte, error) {
	req, err := newRequest(ctx, b, settings)
	if err != nil {
		return nil, err
	}

	req, span := c.startSpan(req, "client.fetch")

	resp, err := c.roundTrip(req)
	if err != nil {
		endSpan(span, statusCode(err), err)
		return nil, err
	}
	defer c.closeBody(resp.Body, true)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err = &Error{Err: ErrGeneric, Detail: fmt.Sprintf("reading body: %v", err), StatusCode: resp.StatusCode, Cause: err}
		endSpan(span, resp.StatusCode, err)
		return nil, err
	}

	endSpan(span, resp.StatusCode, nil)

	return data, nil
}

// roundTrip executes req and classifies the response. On success the
// caller owns resp.Body; otherwise the body is drained and closed.
func (c *Client) roundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := c.c.Do(req)
	if err != nil {
		c.metrics.observe(req.Method, 0, time.Since(start))
		return nil, &Error{Err: ErrGeneric, Detail: err.Error(), Cause: err}
	}

	elapsed := time.Since(start)
	c.metrics.observe(req.Method, resp.StatusCode, elapsed)
	c.logger.Debug("request complete", "method", req.Method, "url", req.URL.String(), "status", resp.StatusCode, "duration", elapsed)

	if statusErr := classify(resp.StatusCode); statusErr != nil {
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
		if err != nil {
			b = []byte("unable to read body")
		}
		statusErr.Body = string(b)
		if len(b) > 0 {
			statusErr.Detail = fmt.Sprintf("%s, body: %s", statusErr.Detail, b)
		}

		c.closeBody(resp.Body, true)

		return nil, statusErr
	}

	return resp, nil
}

// closeBody optionally drains body so the connection can be reused, then
// closes it.
func (c *Client) closeBody(body io.ReadCloser, drain bool) {
	if drain {
		if _, err := io.Copy(io.Discard, body); err != nil {
			c.logger.Error("failed to discard unused body", "error", err)
		}
	}
	if err := body.Close(); err != nil {
		c.logger.Error("failed to close response body", "error", err)
	}
}

// newRequest resolves b and instantiates an *http.Request from settings.
func newRequest(ctx context.Context, b *endpoint.Builder, settings requestOpts) (*http.Request, error) {
	u, err := b.Resolve()
	if err != nil {
		return nil, &Error{Err: ErrInvalidURL, Cause: err}
	}

	var body io.Reader
	if settings.body != nil {
		body = bytes.NewReader(settings.body)
	}

	req, err := http.NewRequestWithContext(ctx, string(settings.method), u.String(), body)
	if err != nil {
		return nil, &Error{Err: ErrGeneric, Detail: fmt.Sprintf("instantiating request: %v", err), Cause: err}
	}

	if settings.jsonBody && !hasHeader(settings.headers, "Content-Type") {
		req.Header.Set("Content-Type", "application/json")
	}
	applyHeaders(req.Header, settings.headers)

	for _, cookie := range settings.cookies {
		req.AddCookie(cookie)
	}

	return req, nil
}

func statusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}

	return 0
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}
