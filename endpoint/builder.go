package endpoint

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ErrNilBuilder is returned when resolving a nil *Builder.
var ErrNilBuilder = errors.New("nil builder")

// Builder accumulates URL components in declaration order. It is not safe
// for concurrent mutation; resolving is read-only and may be repeated.
type Builder struct {
	components []Component
}

// parts is the resolved form of a component sequence.
type parts struct {
	Scheme string `validate:"required,scheme"`
	Host   string `validate:"required,host"`
	Path   string
	Query  []queryItem
}

// New returns a Builder holding components in the given order.
func New(components ...Component) *Builder {
	b := &Builder{}
	return b.Append(components...)
}

// Append adds components to the end of the sequence. A nil receiver
// starts a new Builder, so callers must use the returned value.
func (b *Builder) Append(components ...Component) *Builder {
	if b == nil {
		b = &Builder{}
	}

	for _, c := range components {
		if c != nil {
			b.components = append(b.components, c)
		}
	}

	return b
}

// Scheme appends a [Scheme] component.
func (b *Builder) Scheme(value string) *Builder { return b.Append(Scheme(value)) }

// Host appends a [Host] component.
func (b *Builder) Host(value string) *Builder { return b.Append(Host(value)) }

// Path appends a [Path] component.
func (b *Builder) Path(segment string) *Builder { return b.Append(Path(segment)) }

// QueryItem appends a [QueryItem] component.
func (b *Builder) QueryItem(name, value string) *Builder { return b.Append(QueryItem(name, value)) }

// Components returns a copy of the declared sequence.
func (b *Builder) Components() []Component {
	if b == nil {
		return nil
	}

	return slices.Clone(b.components)
}

// Clone returns an independent Builder with the same components, so a shared
// base can be extended without affecting other users.
func (b *Builder) Clone() *Builder {
	return &Builder{components: b.Components()}
}

// Build resolves the components into an absolute URL.
// It returns nil when the components don't form a valid URL.
func (b *Builder) Build() *url.URL {
	u, err := b.Resolve()
	if err != nil {
		return nil
	}

	return u
}

// Resolve is Build, reporting why resolution failed.
func (b *Builder) Resolve() (*url.URL, error) {
	if b == nil {
		return nil, ErrNilBuilder
	}

	var p parts
	for _, c := range b.components {
		c.apply(&p)
	}

	if err := validateParts(p); err != nil {
		return nil, err
	}

	endpoint := url.URL{
		Scheme:   p.Scheme,
		Host:     p.Host,
		Path:     p.Path,
		RawQuery: encodeQuery(p.Query),
	}

	// Reject anything net/url itself would not read back.
	if _, err := url.Parse(endpoint.String()); err != nil {
		return nil, fmt.Errorf("composing url: %w", err)
	}

	return &endpoint, nil
}

// String renders the resolved URL, or the raw components when they don't
// resolve.
func (b *Builder) String() string {
	if u := b.Build(); u != nil {
		return u.String()
	}

	names := make([]string, 0, len(b.Components()))
	for _, c := range b.Components() {
		names = append(names, c.String())
	}

	return "unresolved[" + strings.Join(names, " ") + "]"
}

// encodeQuery keeps declaration order, which url.Values.Encode does not.
func encodeQuery(items []queryItem) string {
	if len(items) == 0 {
		return ""
	}

	pairs := make([]string, len(items))
	for i, q := range items {
		pairs[i] = url.QueryEscape(q.name) + "=" + url.QueryEscape(q.value)
	}

	return strings.Join(pairs, "&")
}
