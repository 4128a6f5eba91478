package hxui

import (
	"encoding/json"
	"maps"
	"net/http"

	"github.com/a-h/templ"
)

// Action describes one HTMX request: a URL, a method and the attributes
// that shape how the response is swapped in. Build it with Component.Call
// or Component.Refresh and finish with Attrs:
//
//	<button { c.Call("next", props).Target("#results").Attrs()... }>Next</button>
//
// Methods return the receiver so calls chain; an Action is not meant to be
// shared between goroutines while it is being built.
type Action struct {
	url       string
	method    string
	target    string
	swap      SwapMode
	trigger   string
	confirm   string
	indicator string
	include   string
	pushURL   bool
	vals      map[string]any
}

// NewAction returns an action for url using method. An empty method means
// GET. The swap mode defaults to SwapOuter.
func NewAction(url, method string) *Action {
	if method == "" {
		method = http.MethodGet
	}
	return &Action{url: url, method: method, swap: SwapOuter}
}

// URL returns the request URL.
func (a *Action) URL() string { return a.url }

// Method returns the HTTP method.
func (a *Action) Method() string { return a.method }

// Target sets hx-target to a CSS selector.
func (a *Action) Target(selector string) *Action {
	a.target = selector
	return a
}

// TargetThis targets the element carrying the attributes.
func (a *Action) TargetThis() *Action { return a.Target("this") }

// TargetClosest targets the nearest ancestor matching selector.
func (a *Action) TargetClosest(selector string) *Action {
	return a.Target("closest " + selector)
}

// Swap sets the swap strategy.
func (a *Action) Swap(mode SwapMode) *Action {
	a.swap = mode
	return a
}

// SwapOuter replaces the target element.
func (a *Action) SwapOuter() *Action { return a.Swap(SwapOuter) }

// SwapInner replaces the target's children.
func (a *Action) SwapInner() *Action { return a.Swap(SwapInner) }

// SwapNone discards the response body.
func (a *Action) SwapNone() *Action { return a.Swap(SwapNone) }

// Trigger sets a raw hx-trigger expression such as "change" or
// "keyup changed delay:300ms".
func (a *Action) Trigger(expr string) *Action {
	a.trigger = expr
	return a
}

// OnEvent fires the request when event reaches the body, which is where
// HX-Trigger response events are dispatched.
func (a *Action) OnEvent(event string) *Action {
	return a.Trigger(event + " from:body")
}

// OnLoad fires the request once the element is loaded.
func (a *Action) OnLoad() *Action { return a.Trigger("load") }

// OnIntersect fires the request once, when the element enters the viewport.
func (a *Action) OnIntersect() *Action { return a.Trigger("intersect once") }

// Confirm asks the user before sending the request.
func (a *Action) Confirm(message string) *Action {
	a.confirm = message
	return a
}

// Indicator names the element that gets the htmx-request class while the
// request is in flight.
func (a *Action) Indicator(selector string) *Action {
	a.indicator = selector
	return a
}

// Include adds the values of the matched elements to the request.
func (a *Action) Include(selector string) *Action {
	a.include = selector
	return a
}

// PushURL pushes the request URL onto the browser history.
func (a *Action) PushURL() *Action {
	a.pushURL = true
	return a
}

// Vals merges extra parameters into hx-vals.
func (a *Action) Vals(vals map[string]any) *Action {
	if a.vals == nil {
		a.vals = make(map[string]any, len(vals))
	}
	maps.Copy(a.vals, vals)
	return a
}

// Attrs renders the action as HTMX attributes.
func (a *Action) Attrs() templ.Attributes {
	attrs := templ.Attributes{
		methodAttr(a.method): a.url,
		"hx-swap":            string(a.swap),
	}
	if a.target != "" {
		attrs["hx-target"] = a.target
	}
	if a.trigger != "" {
		attrs["hx-trigger"] = a.trigger
	}
	if a.confirm != "" {
		attrs["hx-confirm"] = a.confirm
	}
	if a.indicator != "" {
		attrs["hx-indicator"] = a.indicator
	}
	if a.include != "" {
		attrs["hx-include"] = a.include
	}
	if a.pushURL {
		attrs["hx-push-url"] = "true"
	}
	if len(a.vals) > 0 {
		data, _ := json.Marshal(a.vals)
		attrs["hx-vals"] = string(data)
	}
	return attrs
}

// AsLink renders the action as a plain href, for controls that must keep
// working without JavaScript. Only GET actions make sense here.
func (a *Action) AsLink() templ.Attributes {
	return templ.Attributes{"href": a.url}
}

func methodAttr(method string) string {
	switch method {
	case http.MethodPost:
		return "hx-post"
	case http.MethodPut:
		return "hx-put"
	case http.MethodPatch:
		return "hx-patch"
	case http.MethodDelete:
		return "hx-delete"
	}
	return "hx-get"
}
