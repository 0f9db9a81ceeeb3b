package endpoint

import "fmt"

// Component is a single piece of a URL. The set of components is closed:
// values are created only with [Scheme], [Host], [Path] and [QueryItem].
type Component interface {
	fmt.Stringer
	apply(p *parts)
}

// Scheme sets the URL scheme. A later Scheme replaces an earlier one.
func Scheme(value string) Component { return scheme(value) }

// Host sets the URL host, optionally with a port. A later Host replaces an
// earlier one.
func Host(value string) Component { return host(value) }

// Path appends "/" + segment to the URL path.
func Path(segment string) Component { return path(segment) }

// QueryItem appends a name=value pair to the query string. Duplicate names
// are kept in declaration order.
func QueryItem(name, value string) Component { return queryItem{name: name, value: value} }

type scheme string

func (s scheme) apply(p *parts)  { p.Scheme = string(s) }
func (s scheme) String() string { return "scheme(" + string(s) + ")" }

type host string

func (h host) apply(p *parts)  { p.Host = string(h) }
func (h host) String() string { return "host(" + string(h) + ")" }

type path string

func (s path) apply(p *parts)  { p.Path += "/" + string(s) }
func (s path) String() string { return "path(" + string(s) + ")" }

type queryItem struct {
	name  string
	value string
}

func (q queryItem) apply(p *parts)  { p.Query = append(p.Query, q) }
func (q queryItem) String() string { return "query(" + q.name + "=" + q.value + ")" }
