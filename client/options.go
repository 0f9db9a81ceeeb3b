package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/adamwoolhether/reqkit/client/download"
	"github.com/adamwoolhether/reqkit/client/throttle"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// Option is a functional option for configuring a [Client] via [Build].
type Option func(*options) error
type options struct {
	client            *http.Client
	rt                http.RoundTripper
	timeout           *time.Duration
	userAgent         string
	throttle          *throttle.Config
	noFollowRedirects bool
	logger            *slog.Logger
	tracerProvider    trace.TracerProvider
	registerer        prometheus.Registerer
	requestIDHeader   string
}

// WithClient replaces the default [http.Client] used by the [Client].
// The given client is copied; later changes to it have no effect.
func WithClient(hc *http.Client) Option {
	return func(c *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		c.client = hc
		return nil
	}
}

// WithTransport sets a custom [http.RoundTripper] as the base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		c.rt = rt
		return nil
	}
}

// WithTimeout sets the overall request timeout on the underlying [http.Client].
// For downloads the timeout covers reading the whole body.
func WithTimeout(d time.Duration) Option {
	return func(c *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		c.timeout = &d
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) Option {
	return func(c *options) error {
		c.userAgent = header
		return nil
	}
}

// WithThrottle enables token-bucket rate limiting with the given requests per second and burst capacity.
func WithThrottle(rps, burst int) Option {
	return func(c *options) error {
		cfg := throttle.Config{RPS: rps, Burst: burst}
		if err := cfg.Validate(); err != nil {
			return err
		}
		c.throttle = &cfg
		return nil
	}
}

// WithNoFollowRedirects prevents the [Client] from following HTTP redirects,
// so 3xx responses surface as [ErrRedirection].
func WithNoFollowRedirects() Option {
	return func(c *options) error {
		c.noFollowRedirects = true
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(c *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithTracerProvider sets the provider for request spans. The global
// provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *options) error {
		if tp == nil {
			return errors.New("tracer provider must not be nil")
		}
		c.tracerProvider = tp
		return nil
	}
}

// WithMetrics registers request and download collectors with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *options) error {
		if reg == nil {
			return errors.New("registerer must not be nil")
		}
		c.registerer = reg
		return nil
	}
}

// WithRequestID stamps every outgoing request with the given header,
// carrying the active trace ID or a random UUID.
func WithRequestID(header string) Option {
	return func(c *options) error {
		if header == "" {
			return errors.New("request id header must not be empty")
		}
		c.requestIDHeader = http.CanonicalHeaderKey(header)
		return nil
	}
}

// /////////////////////////////////////////////////////////////////

// RequestOption is a functional option for [Client.Fetch], [FetchJSON]
// and [Client.Download].
type RequestOption func(options *requestOpts) error

type requestOpts struct {
	method        Method
	headers       []Header
	body          []byte
	jsonBody      bool
	cookies       []*http.Cookie
	useJSONNumber bool
	download      []download.Option
}

func newRequestOpts(opts []RequestOption) (requestOpts, error) {
	settings := requestOpts{method: MethodGet}
	for _, opt := range opts {
		if err := opt(&settings); err != nil {
			return requestOpts{}, &Error{
				Err:    ErrGeneric,
				Detail: fmt.Sprintf("applying request option: %v", err),
				Cause:  err,
			}
		}
	}

	return settings, nil
}

// forFetch rejects options that only [Client.Download] reads.
func (o requestOpts) forFetch() error {
	if len(o.download) > 0 {
		return &Error{Err: ErrGeneric, Detail: "download options are not accepted by fetch"}
	}

	return nil
}

// WithMethod sets the HTTP method. Requests default to GET.
func WithMethod(m Method) RequestOption {
	return func(opts *requestOpts) error {
		if !m.valid() {
			return fmt.Errorf("unsupported method %q", string(m))
		}

		opts.method = m

		return nil
	}
}

// WithHeaders appends headers, applied in declaration order.
func WithHeaders(headers ...Header) RequestOption {
	return func(opts *requestOpts) error {
		for _, h := range headers {
			if h == nil {
				return errors.New("header must not be nil")
			}
		}

		opts.headers = append(opts.headers, headers...)

		return nil
	}
}

// WithBody sets the raw request body.
func WithBody(body []byte) RequestOption {
	return func(opts *requestOpts) error {
		opts.body = body
		opts.jsonBody = false

		return nil
	}
}

// WithJSONBody JSON-encodes v as the request body. Content-Type defaults to
// "application/json" unless a [ContentType] header is given.
func WithJSONBody(v any) RequestOption {
	return func(opts *requestOpts) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding request payload: %w", err)
		}

		opts.body = data
		opts.jsonBody = true

		return nil
	}
}

// WithCookies attaches the given cookies to the outgoing request.
func WithCookies(cookies ...*http.Cookie) RequestOption {
	return func(opts *requestOpts) error {
		opts.cookies = append(opts.cookies, cookies...)

		return nil
	}
}

// WithJSONNumber tells [FetchJSON] to use [json.Decoder.UseNumber],
// preserving number precision as [json.Number] instead of float64.
// Operations that do not decode JSON ignore it.
func WithJSONNumber() RequestOption {
	return func(opts *requestOpts) error {
		opts.useJSONNumber = true

		return nil
	}
}
