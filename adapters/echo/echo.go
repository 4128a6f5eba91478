// Package hxuiecho mounts hxui components on the Echo framework.
//
//	e := echo.New()
//	reg := hxuiecho.Mount(e, hxuiecho.WithKey(key))
//	reg.Add(pager.New(catalog))
//
// Mount on a group to share its middleware:
//
//	g := e.Group("/app", authMiddleware)
//	reg := hxuiecho.MountGroup(g)
//
// Components build their URLs under /_c/. When mounting anywhere else,
// route those URLs to the mount point in front of Echo.
package hxuiecho

import (
	"crypto/rand"
	"fmt"
	"log/slog"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/hxui"
)

// DefaultPath is where component routes are mounted.
const DefaultPath = "/_c/"

// Option configures Mount and MountGroup.
type Option func(*options)

type options struct {
	key     []byte
	path    string
	logger  *slog.Logger
	metrics *hxui.Metrics
}

// WithKey sets the props key. Use at least 32 bytes of random data. Without
// it a random key is generated, which invalidates every rendered URL on
// restart.
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithPath sets the mount path for component routes. Defaults to "/_c/".
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithLogger sets the registry's error logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics records per-component request metrics.
func WithMetrics(m *hxui.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// Mount creates a registry and serves it from e.
func Mount(e *echo.Echo, opts ...Option) *hxui.Registry {
	reg, path := newRegistry(opts)
	e.Any(path+"*", handler(reg))
	return reg
}

// MountGroup creates a registry and serves it from g, behind g's
// middleware.
func MountGroup(g *echo.Group, opts ...Option) *hxui.Registry {
	reg, path := newRegistry(opts)
	g.Any(path+"*", handler(reg))
	return reg
}

// handler maps the wildcard remainder back onto the registry's /_c/ routes,
// so the registry matches whatever the mount point is.
func handler(reg *hxui.Registry) echo.HandlerFunc {
	h := reg.Handler()
	return func(c echo.Context) error {
		r := c.Request()
		r.URL.Path = DefaultPath + c.Param("*")
		r.URL.RawPath = ""
		h.ServeHTTP(c.Response(), r)
		return nil
	}
}

func newRegistry(opts []Option) (*hxui.Registry, string) {
	o := &options{path: DefaultPath}
	for _, opt := range opts {
		opt(o)
	}

	key := o.key
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("hxuiecho: failed to generate random key: %v", err))
		}
	}

	regOpts := []hxui.RegistryOption{hxui.WithLogger(o.logger)}
	if o.metrics != nil {
		regOpts = append(regOpts, hxui.WithMetrics(o.metrics))
	}
	return hxui.NewRegistry(key, regOpts...), o.path
}

// Render writes a templ component to the Echo response.
//
//	func catalogPage(c echo.Context) error {
//	    return hxuiecho.Render(c, layout(body))
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return component.Render(c.Request().Context(), c.Response())
}
