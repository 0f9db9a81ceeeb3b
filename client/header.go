package client

import (
	"net/http"
	"slices"
)

// Method is an HTTP method supported by [Client].
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodDelete Method = http.MethodDelete
)

var methods = []Method{MethodGet, MethodPost, MethodPut, MethodDelete}

func (m Method) valid() bool {
	return slices.Contains(methods, m)
}

// Header is a request header field. The set is closed: values are created
// only with [Authorization], [ContentType] and [Custom].
type Header interface {
	// Field returns the rendered field name and value.
	Field() (name, value string)
	header()
}

// Authorization renders as "Authorization: Bearer <token>".
func Authorization(token string) Header { return authorization(token) }

// ContentType renders as "Content-Type: <value>".
func ContentType(value string) Header { return contentType(value) }

// Custom renders name and value verbatim.
func Custom(name, value string) Header { return custom{name: name, value: value} }

type authorization string

func (a authorization) Field() (string, string) { return "Authorization", "Bearer " + string(a) }
func (authorization) header()                   {}

type contentType string

func (c contentType) Field() (string, string) { return "Content-Type", string(c) }
func (contentType) header()                   {}

type custom struct {
	name  string
	value string
}

func (c custom) Field() (string, string) { return c.name, c.value }
func (custom) header()                   {}

// applyHeaders sets headers in order; a later field with the same
// canonical name replaces an earlier one.
func applyHeaders(dst http.Header, headers []Header) {
	for _, h := range headers {
		name, value := h.Field()
		dst.Set(name, value)
	}
}

func hasHeader(headers []Header, name string) bool {
	canonical := http.CanonicalHeaderKey(name)
	return slices.ContainsFunc(headers, func(h Header) bool {
		n, _ := h.Field()
		return http.CanonicalHeaderKey(n) == canonical
	})
}
