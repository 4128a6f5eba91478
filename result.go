package hxui

// Event is an HX-Trigger event emitted by an action. Data, when present, is
// delivered to listeners as the event detail.
type Event struct {
	Name string
	Data map[string]any
}

// Result is returned from action handlers to tell Serve what to do next:
// render the new props, report an error, redirect or stay out of the way.
//
//	return hxui.OK(props)
//	return hxui.OK(props).Trigger("pager:page", map[string]any{"page": 3})
//	return hxui.Err(props, err)
//	return hxui.Redirect[Props]("/catalog")
//
// Result is a value; every builder method returns a modified copy.
type Result[P any] struct {
	props    P
	err      error
	redirect string
	flashes  []Flash
	events   []Event
	headers  map[string]string
	status   int
	skip     bool
}

// OK renders props with the component's Renderer.
func OK[P any](props P) Result[P] {
	return Result[P]{props: props}
}

// Err passes err to the registry's OnError. Props are kept so error
// handlers can still inspect them.
func Err[P any](props P, err error) Result[P] {
	return Result[P]{props: props, err: err}
}

// Skip means the handler wrote its own response.
func Skip[P any]() Result[P] {
	return Result[P]{skip: true}
}

// Redirect sends HX-Redirect so HTMX navigates the browser to url.
func Redirect[P any](url string) Result[P] {
	return Result[P]{redirect: url}
}

// Flash appends a toast rendered as an out-of-band swap.
func (r Result[P]) Flash(level, message string) Result[P] {
	r.flashes = append(r.flashes[:len(r.flashes):len(r.flashes)], Flash{Level: level, Message: message})
	return r
}

// Trigger emits event through HX-Trigger. Several events may be emitted
// from one response; they reach listeners in the order given.
func (r Result[P]) Trigger(event string, data ...map[string]any) Result[P] {
	ev := Event{Name: event}
	if len(data) > 0 {
		ev.Data = data[0]
	}
	r.events = append(r.events[:len(r.events):len(r.events)], ev)
	return r
}

// PushURL sets HX-Push-Url, replacing the browser's current URL with url.
func (r Result[P]) PushURL(url string) Result[P] {
	return r.Header("HX-Push-Url", url)
}

// Header sets a response header.
func (r Result[P]) Header(key, value string) Result[P] {
	headers := make(map[string]string, len(r.headers)+1)
	for k, v := range r.headers {
		headers[k] = v
	}
	headers[key] = value
	r.headers = headers
	return r
}

// Status sets the response status code. Zero means 200.
func (r Result[P]) Status(code int) Result[P] {
	r.status = code
	return r
}

// Props returns the props to render.
func (r Result[P]) Props() P { return r.props }

// Error returns the error passed to Err.
func (r Result[P]) Error() error { return r.err }

// RedirectURL returns the redirect target, "" when not redirecting.
func (r Result[P]) RedirectURL() string { return r.redirect }

// Flashes returns the queued toasts.
func (r Result[P]) Flashes() []Flash { return r.flashes }

// Events returns the HX-Trigger events in emission order.
func (r Result[P]) Events() []Event { return r.events }

// Headers returns extra response headers.
func (r Result[P]) Headers() map[string]string { return r.headers }

// StatusCode returns the status set with Status, 0 when unset.
func (r Result[P]) StatusCode() int { return r.status }

// Skipped reports whether the handler wrote its own response.
func (r Result[P]) Skipped() bool { return r.skip }
