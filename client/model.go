package client

import (
	"errors"
	"fmt"
	"net/http"
)

// maxErrBodySize caps the amount of response body read when
// building an error for a non-2xx status code. This prevents
// unbounded memory usage when a large response arrives with a
// failing status.
const maxErrBodySize = 4 << 10 // 4KB

// Sentinel errors identifying each failure kind. Every error returned by
// [Client] matches exactly one of them with [errors.Is].
var (
	ErrInvalidURL      = errors.New("invalid url")
	ErrInvalidResponse = errors.New("invalid response")
	ErrRedirection     = errors.New("redirection")
	ErrClient          = errors.New("client error")
	ErrServer          = errors.New("server error")
	ErrDecoding        = errors.New("decoding error")
	ErrGeneric         = errors.New("request failed")
)

// Error is the failure type returned by [Client] operations.
type Error struct {
	// Err is one of the package sentinels.
	Err error
	// Detail is a human-readable description. Empty for ErrInvalidURL.
	Detail string
	// StatusCode is set for failures classified from a response.
	StatusCode int
	// Body holds up to 4KB of the response body for status failures.
	Body string
	// Cause is the underlying error, if any.
	Cause error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}

	return []error{e.Err, e.Cause}
}

// ErrorKind enumerates the failure kinds for exhaustive switches.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidURL
	KindInvalidResponse
	KindRedirection
	KindClient
	KindServer
	KindDecoding
	KindGeneric
)

var kinds = []struct {
	kind ErrorKind
	err  error
	name string
}{
	{KindInvalidURL, ErrInvalidURL, "invalid_url"},
	{KindInvalidResponse, ErrInvalidResponse, "invalid_response"},
	{KindRedirection, ErrRedirection, "redirection"},
	{KindClient, ErrClient, "client"},
	{KindServer, ErrServer, "server"},
	{KindDecoding, ErrDecoding, "decoding"},
	{KindGeneric, ErrGeneric, "generic"},
}

// Kind returns the kind of the first *Error found in err's chain, or
// KindUnknown when there is none.
func Kind(err error) ErrorKind {
	var e *Error
	if !errors.As(err, &e) {
		return KindUnknown
	}

	for _, k := range kinds {
		if e.Err == k.err {
			return k.kind
		}
	}

	return KindUnknown
}

func (k ErrorKind) String() string {
	for _, v := range kinds {
		if v.kind == k {
			return v.name
		}
	}

	return "unknown"
}

// classify maps a status code onto the error taxonomy. It returns nil for
// [200, 300).
func classify(code int) *Error {
	var sentinel error
	switch {
	case code >= 200 && code < 300:
		return nil
	case code >= 300 && code < 400:
		sentinel = ErrRedirection
	case code >= 400 && code < 500:
		sentinel = ErrClient
	case code >= 500 && code < 600:
		sentinel = ErrServer
	case code < 100:
		sentinel = ErrInvalidResponse
	default:
		sentinel = ErrGeneric
	}

	detail := fmt.Sprintf("status code %d", code)
	if text := http.StatusText(code); text != "" {
		detail += " " + text
	}

	return &Error{
		Err:        sentinel,
		Detail:     detail,
		StatusCode: code,
	}
}

// statusClass labels a status code for metrics.
func statusClass(code int) string {
	switch {
	case code >= 100 && code < 600:
		return fmt.Sprintf("%dxx", code/100)
	default:
		return "other"
	}
}
