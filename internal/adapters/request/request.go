// Package request carries the parameters of the triggering request through
// context.Context so content generators can read them.
package request

import (
	"context"
	"maps"
	"net/url"

	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/lessen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RequestContext = (*Context)(nil)

// Context is a parsed request.
type Context struct {
	params  url.Values
	session map[string]string
}

// Parse parses a raw query string such as "theme=dark&x=1". A leading "?"
// is accepted.
func Parse(rawQuery string) (*Context, error) {
	if len(rawQuery) > 0 && rawQuery[0] == '?' {
		rawQuery = rawQuery[1:]
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidQuery.Error()), "query", rawQuery)
	}
	return &Context{params: values, session: map[string]string{}}, nil
}

// New creates a Context from already parsed values.
func New(params map[string][]string, session map[string]string) *Context {
	if session == nil {
		session = map[string]string{}
	}
	return &Context{params: url.Values(maps.Clone(params)), session: maps.Clone(session)}
}

// Param returns the first value of the named parameter or "".
func (c *Context) Param(name string) string {
	return c.params.Get(name)
}

// Params returns a copy of all parameters.
func (c *Context) Params() map[string][]string {
	return maps.Clone(c.params)
}

// Session returns a copy of the session values.
func (c *Context) Session() map[string]string {
	return maps.Clone(c.session)
}

type ctxKey struct{}

// WithContext returns a copy of ctx carrying rc.
func WithContext(ctx context.Context, rc ports.RequestContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

// FromContext returns the RequestContext carried by ctx, or an empty one.
func FromContext(ctx context.Context) ports.RequestContext {
	if rc, ok := ctx.Value(ctxKey{}).(ports.RequestContext); ok && rc != nil {
		return rc
	}
	return New(nil, nil)
}
