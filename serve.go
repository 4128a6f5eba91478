package hxui

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Lifecycle is the pair of methods every component provides.
type Lifecycle[P any] interface {
	Hydrater[P]
	Renderer[P]
}

// Serve handles a request below the component's prefix:
//
//  1. decode props from the "p" query or form value;
//  2. Hydrate;
//  3. on the bare prefix, Render; otherwise route to the named action and
//     turn its Result into a response.
//
// Failures at any step go to the error handler set by the registry.
func (c *Component[P]) Serve(w http.ResponseWriter, r *http.Request, impl Lifecycle[P]) {
	name := strings.Trim(strings.TrimPrefix(r.URL.Path, c.prefix), "/")

	var def *actionDef[P]
	if name != "" {
		var ok bool
		if def, ok = c.actions[name]; !ok {
			c.onError(w, r, fmt.Errorf("%w: %s/%s", ErrUnknownAction, c.name, name))
			return
		}
		if r.Method != def.method {
			w.Header().Set("Allow", def.method)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
	} else if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	props, err := c.decode(r.FormValue("p"))
	if err != nil {
		c.onError(w, r, err)
		return
	}

	ctx := r.Context()
	if err := impl.Hydrate(ctx, &props); err != nil {
		c.onError(w, r, fmt.Errorf("%w: %w", ErrHydrationFailed, err))
		return
	}

	if def == nil {
		c.writeResult(w, r, impl, OK(props))
		return
	}
	c.writeResult(w, r, impl, def.handler(ctx, props, r))
}

func (c *Component[P]) writeResult(w http.ResponseWriter, r *http.Request, impl Renderer[P], res Result[P]) {
	if err := res.Error(); err != nil {
		c.onError(w, r, err)
		return
	}

	h := w.Header()
	for k, v := range res.Headers() {
		h.Set(k, v)
	}
	if trigger := BuildTriggerHeader(res.Events()); trigger != "" {
		h.Set("HX-Trigger", trigger)
	}
	if url := res.RedirectURL(); url != "" {
		h.Set("HX-Redirect", url)
		w.WriteHeader(statusOr(res.StatusCode(), http.StatusOK))
		return
	}
	if res.Skipped() {
		return
	}

	// Nothing is written until the template has rendered.
	var buf bytes.Buffer
	if err := impl.Render(r.Context(), res.Props()).Render(r.Context(), &buf); err != nil {
		c.onError(w, r, fmt.Errorf("hxui: render %s: %w", c.name, err))
		return
	}
	buf.WriteString(RenderFlashesOOB(res.Flashes()))

	h.Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusOr(res.StatusCode(), http.StatusOK))
	if r.Method != http.MethodHead {
		if _, err := io.Copy(w, &buf); err != nil {
			c.logger.Debug("hxui: write response", "component", c.name, "path", r.URL.Path, "error", err)
		}
	}
}

func statusOr(code, fallback int) int {
	if code == 0 {
		return fallback
	}
	return code
}
