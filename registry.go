package hxui

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
)

// Registry mounts components and routes requests to them.
type Registry struct {
	mu         sync.RWMutex
	mux        *http.ServeMux
	encoder    *Encoder
	components map[string]HXComponent
	logger     *slog.Logger
	metrics    *Metrics

	// OnError writes the response for a failed request. Replace it before
	// serving; components look it up per request.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger for request errors. Defaults to slog.Default().
func WithLogger(l *slog.Logger) RegistryOption {
	return func(reg *Registry) {
		if l != nil {
			reg.logger = l
		}
	}
}

// WithMetrics instruments every component route with m.
func WithMetrics(m *Metrics) RegistryOption {
	return func(reg *Registry) {
		reg.metrics = m
	}
}

// NewRegistry creates a registry whose components sign or encrypt props
// with key. It panics if the encoder cannot be built.
func NewRegistry(key []byte, opts ...RegistryOption) *Registry {
	enc, err := NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("hxui: failed to create encoder: %v", err))
	}

	reg := &Registry{
		mux:        http.NewServeMux(),
		encoder:    enc,
		components: make(map[string]HXComponent),
		logger:     slog.Default(),
		OnError:    DefaultErrorHandler,
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg
}

// DefaultErrorHandler maps sentinel errors onto status codes: not found is
// 404, undecodable props are 400 and everything else is 500. Error details
// never reach the client.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	http.Error(w, http.StatusText(errorStatus(err)), errorStatus(err))
}

func errorStatus(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case IsDecryptionError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Encoder returns the props encoder shared by all registered components.
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// Add registers components. It panics on a prefix collision so that
// wiring mistakes surface at startup rather than on first request.
func (reg *Registry) Add(components ...HXComponent) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, comp := range components {
		prefix := comp.HXPrefix()
		if _, exists := reg.components[prefix]; exists {
			panic(fmt.Sprintf("hxui: prefix collision for %q", prefix))
		}

		if c, ok := comp.(interface{ SetEncoder(*Encoder) }); ok {
			c.SetEncoder(reg.encoder)
		}
		if c, ok := comp.(interface{ SetLogger(*slog.Logger) }); ok {
			c.SetLogger(reg.logger)
		}
		if c, ok := comp.(interface {
			SetErrorHandler(func(http.ResponseWriter, *http.Request, error))
		}); ok {
			c.SetErrorHandler(reg.handleError)
		}

		reg.components[prefix] = comp

		var h http.Handler = http.HandlerFunc(comp.HXServeHTTP)
		if reg.metrics != nil {
			h = reg.metrics.instrument(prefix, h)
		}
		reg.mux.Handle(prefix+"/", h)
	}
}

// Prefixes returns the registered prefixes in sorted order.
func (reg *Registry) Prefixes() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	out := make([]string, 0, len(reg.components))
	for p := range reg.components {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Handler returns the HTTP handler for component routes. Mount it at
// "/_c/".
//
// Requests with mutating methods must carry HX-Request: true. Browsers do
// not let cross-origin forms set custom headers, so this blocks CSRF
// without tokens.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead && !IsHTMX(r) {
			http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
			return
		}
		reg.mux.ServeHTTP(w, r)
	})
}

func (reg *Registry) handleError(w http.ResponseWriter, r *http.Request, err error) {
	attrs := []any{"component", reg.componentFor(r.URL.Path), "method", r.Method, "path", r.URL.Path, "error", err}
	if errorStatus(err) >= http.StatusInternalServerError {
		reg.logger.Error("hxui: component request failed", attrs...)
	} else {
		reg.logger.Warn("hxui: rejected component request", attrs...)
	}

	if reg.OnError == nil {
		DefaultErrorHandler(w, r, err)
		return
	}
	reg.OnError(w, r, err)
}

// componentFor returns the registered prefix that path falls under, or ""
// when none matches.
func (reg *Registry) componentFor(path string) string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	for prefix := range reg.components {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return prefix
		}
	}
	return ""
}
