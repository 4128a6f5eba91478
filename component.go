package hxui

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/a-h/templ"
)

// Handler is an action handler. It receives hydrated props and the request
// and returns a Result describing what to render.
type Handler[P any] func(ctx context.Context, props P, r *http.Request) Result[P]

type actionDef[P any] struct {
	name    string
	method  string
	handler Handler[P]
}

// Component is the base type embedded by concrete components. P is the
// props type; it must round-trip through msgpack (or implement Encodable
// and Decodable) because props travel in the URL.
//
//	type Pager struct {
//	    *hxui.Component[Props]
//	    source Source
//	}
//
//	func NewPager(src Source) *Pager {
//	    c := &Pager{Component: hxui.New[Props]("pager"), source: src}
//	    c.Action("next", c.handleNext)
//	    return c
//	}
//
//	func (c *Pager) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    c.Serve(w, r, c)
//	}
type Component[P any] struct {
	name      string
	prefix    string
	sensitive bool
	actions   map[string]*actionDef[P]
	encoder   *Encoder
	logger    *slog.Logger
	onError   func(http.ResponseWriter, *http.Request, error)
}

// New creates a component named name. The URL prefix combines the name with
// a hash of the calling file and line, so two instances of the same
// component type registered from different places get distinct routes.
func New[P any](name string) *Component[P] {
	return &Component[P]{
		name:    name,
		prefix:  "/_c/" + name + "-" + componentHash(name, 1),
		actions: make(map[string]*actionDef[P]),
		logger:  slog.Default(),
		onError: DefaultErrorHandler,
	}
}

// Sensitive switches props from signed to encrypted.
func (c *Component[P]) Sensitive() *Component[P] {
	c.sensitive = true
	return c
}

// Name returns the component's name.
func (c *Component[P]) Name() string { return c.name }

// Prefix returns the URL prefix all of the component's routes live under.
func (c *Component[P]) Prefix() string { return c.prefix }

// HXPrefix implements HXComponent.
func (c *Component[P]) HXPrefix() string { return c.prefix }

// IsSensitive reports whether props are encrypted.
func (c *Component[P]) IsSensitive() bool { return c.sensitive }

// Action registers handler under name. Actions default to POST; change it
// with the returned builder:
//
//	c.Action("goto", c.handleGoTo)
//	c.Action("export", c.handleExport).Method(http.MethodGet)
func (c *Component[P]) Action(name string, handler Handler[P]) *ActionBuilder {
	def := &actionDef[P]{name: name, method: http.MethodPost, handler: handler}
	c.actions[name] = def
	return &ActionBuilder{method: &def.method}
}

// HasAction reports whether an action named name is registered.
func (c *Component[P]) HasAction(name string) bool {
	_, ok := c.actions[name]
	return ok
}

// SetEncoder sets the props encoder. The registry calls this on Add.
func (c *Component[P]) SetEncoder(enc *Encoder) { c.encoder = enc }

// Encoder returns the props encoder, nil before registration.
func (c *Component[P]) Encoder() *Encoder { return c.encoder }

// SetLogger sets the logger used for encoding failures. The registry calls
// this on Add.
func (c *Component[P]) SetLogger(l *slog.Logger) {
	if l != nil {
		c.logger = l
	}
}

// SetErrorHandler sets the function that writes error responses. The
// registry calls this on Add with its OnError.
func (c *Component[P]) SetErrorHandler(fn func(http.ResponseWriter, *http.Request, error)) {
	if fn != nil {
		c.onError = fn
	}
}

// Refresh returns a GET action that re-renders the component with props.
func (c *Component[P]) Refresh(props P) *Action {
	return NewAction(c.withProps(c.prefix+"/", props), http.MethodGet)
}

// Call returns an action that invokes the registered action name with
// props. GET actions carry props in the query string and everything else
// carries them in hx-vals. Calling an unregistered action panics, since it
// can only be a programming error.
func (c *Component[P]) Call(name string, props P) *Action {
	def, ok := c.actions[name]
	if !ok {
		panic(fmt.Sprintf("hxui: %s has no action %q", c.name, name))
	}
	path := c.prefix + "/" + name
	if def.method == http.MethodGet {
		return NewAction(c.withProps(path, props), http.MethodGet)
	}
	a := NewAction(path, def.method)
	if encoded := c.encode(props); encoded != "" {
		a.Vals(map[string]any{"p": encoded})
	}
	return a
}

// Lazy renders placeholder and swaps the component in once it scrolls into
// view.
func (c *Component[P]) Lazy(props P, placeholder templ.Component) templ.Component {
	return lazyComponent(c.withProps(c.prefix+"/", props), placeholder, "intersect once")
}

// Defer renders placeholder and swaps the component in right after page
// load.
func (c *Component[P]) Defer(props P, placeholder templ.Component) templ.Component {
	return lazyComponent(c.withProps(c.prefix+"/", props), placeholder, "load")
}

func (c *Component[P]) withProps(path string, props P) string {
	if encoded := c.encode(props); encoded != "" {
		return path + "?p=" + encoded
	}
	return path
}

// encode returns the encoded props, or "" when the component is not
// registered or encoding fails. The request then carries no props and the
// handler sees zero values.
func (c *Component[P]) encode(props P) string {
	if c.encoder == nil {
		return ""
	}
	encoded, err := c.encoder.Encode(props, modeFor(c.sensitive))
	if err != nil {
		c.logger.Error("hxui: encode props", "component", c.name, "error", err)
		return ""
	}
	return encoded
}

func (c *Component[P]) decode(encoded string) (P, error) {
	var props P
	if encoded == "" || c.encoder == nil {
		return props, nil
	}
	if err := c.encoder.Decode(encoded, modeFor(c.sensitive), &props); err != nil {
		return props, WrapDecodeError(err)
	}
	return props, nil
}

// ActionBuilder adjusts an action after registration.
type ActionBuilder struct {
	method *string
}

// Method overrides the default POST.
func (ab *ActionBuilder) Method(m string) *ActionBuilder {
	*ab.method = m
	return ab
}

// componentHash returns 8 hex chars derived from the caller's file:line and
// the component name.
func componentHash(name string, skip int) string {
	input := name
	if _, file, line, ok := runtime.Caller(skip + 1); ok {
		input = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:4])
}

func lazyComponent(url string, placeholder templ.Component, trigger string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div hx-get="%s" hx-trigger="%s" hx-swap="outerHTML">`,
			html.EscapeString(url), trigger)
		if err != nil {
			return err
		}
		if placeholder != nil {
			if err := placeholder.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err = io.WriteString(w, `</div>`)
		return err
	})
}
