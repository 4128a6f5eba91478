package hxui

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

// TestResult is the captured output of a rendered component or a simulated
// request, with helpers for assertions.
type TestResult struct {
	HTML            string
	StatusCode      int
	Headers         http.Header
	TriggeredEvents []string
	// EventData holds the detail of each triggered event that carried data.
	EventData   map[string]map[string]any
	Flashes     []Flash
	RedirectURL string
}

// TestRender runs Hydrate and Render directly, without HTTP or props
// encoding. Use it for pure rendering tests.
func TestRender[P any](comp Lifecycle[P], props P) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), comp, props)
}

// TestRenderWithContext is TestRender with a caller-supplied context.
func TestRenderWithContext[P any](ctx context.Context, comp Lifecycle[P], props P) (*TestResult, error) {
	if err := comp.Hydrate(ctx, &props); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := comp.Render(ctx, props).Render(ctx, &buf); err != nil {
		return nil, err
	}

	return &TestResult{
		HTML:       buf.String(),
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// TestAction sends a simulated HTMX request straight to comp, covering
// props decoding, hydration, the handler and result processing.
func TestAction(comp HXComponent, actionURL, method string, formData map[string]string) (*TestResult, error) {
	return NewTestRequest(method, actionURL).WithFormValues(formData).Execute(comp)
}

// TestGet is TestAction with GET.
func TestGet(comp HXComponent, url string) (*TestResult, error) {
	return TestAction(comp, url, http.MethodGet, nil)
}

// TestPost is TestAction with POST.
func TestPost(comp HXComponent, url string, formData map[string]string) (*TestResult, error) {
	return TestAction(comp, url, http.MethodPost, formData)
}

// TestCall executes a, as built by Component.Call or Refresh, against comp.
// Values from hx-vals are sent as form data alongside formData.
func TestCall(comp HXComponent, a *Action, formData map[string]string) (*TestResult, error) {
	b := NewTestRequest(a.Method(), a.URL())
	if raw := a.Attrs()["hx-vals"]; raw != nil {
		var vals map[string]any
		if err := json.Unmarshal([]byte(raw.(string)), &vals); err != nil {
			return nil, err
		}
		for k, v := range vals {
			switch v := v.(type) {
			case string:
				b.WithFormData(k, v)
			default:
				enc, _ := json.Marshal(v)
				b.WithFormData(k, string(enc))
			}
		}
	}
	return b.WithFormValues(formData).Execute(comp)
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HasEvent checks if an event was triggered.
func (r *TestResult) HasEvent(event string) bool {
	for _, e := range r.TriggeredEvents {
		if e == event {
			return true
		}
	}
	return false
}

// HasFlash checks if a flash with the given level and message was set.
func (r *TestResult) HasFlash(level, message string) bool {
	for _, f := range r.Flashes {
		if f.Level == level && f.Message == message {
			return true
		}
	}
	return false
}

// IsOK checks if the status code is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks if the status code matches.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// TestRequestBuilder builds a simulated request step by step:
//
//	result, err := hxui.NewTestRequest("POST", actionURL).
//	    WithFormData("page", "4").
//	    WithHeader("HX-Target", "catalog").
//	    Execute(comp)
type TestRequestBuilder struct {
	method   string
	url      string
	formData url.Values
	headers  map[string]string
	ctx      context.Context
	noHTMX   bool
}

// NewTestRequest creates a new test request builder.
func NewTestRequest(method, url string) *TestRequestBuilder {
	return &TestRequestBuilder{
		method:   method,
		url:      url,
		formData: make(map[string][]string),
		headers:  make(map[string]string),
		ctx:      context.Background(),
	}
}

// WithFormData adds a form value.
func (b *TestRequestBuilder) WithFormData(key, value string) *TestRequestBuilder {
	b.formData.Set(key, value)
	return b
}

// WithFormValues adds several form values.
func (b *TestRequestBuilder) WithFormValues(data map[string]string) *TestRequestBuilder {
	for k, v := range data {
		b.formData.Set(k, v)
	}
	return b
}

// WithHeader adds a request header.
func (b *TestRequestBuilder) WithHeader(key, value string) *TestRequestBuilder {
	b.headers[key] = value
	return b
}

// WithContext sets the request context.
func (b *TestRequestBuilder) WithContext(ctx context.Context) *TestRequestBuilder {
	b.ctx = ctx
	return b
}

// WithoutHTMX drops the HX-Request header, simulating a plain browser
// request.
func (b *TestRequestBuilder) WithoutHTMX() *TestRequestBuilder {
	b.noHTMX = true
	return b
}

// Build returns the request without executing it.
func (b *TestRequestBuilder) Build() *http.Request {
	req := httptest.NewRequest(b.method, b.url, strings.NewReader(b.formData.Encode()))
	req = req.WithContext(b.ctx)
	if !b.noHTMX {
		req.Header.Set("HX-Request", "true")
	}
	if len(b.formData) > 0 {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range b.headers {
		req.Header.Set(k, v)
	}
	return req
}

// Execute sends the request to comp.
func (b *TestRequestBuilder) Execute(comp HXComponent) (*TestResult, error) {
	rec := httptest.NewRecorder()
	comp.HXServeHTTP(rec, b.Build())
	return NewTestResult(rec), nil
}

// NewTestResult captures a recorded response.
func NewTestResult(rec *httptest.ResponseRecorder) *TestResult {
	result := &TestResult{
		HTML:        rec.Body.String(),
		StatusCode:  rec.Code,
		Headers:     rec.Header(),
		RedirectURL: rec.Header().Get("HX-Redirect"),
	}
	if trigger := rec.Header().Get("HX-Trigger"); trigger != "" {
		result.TriggeredEvents, result.EventData = parseTriggerHeader(trigger)
	}
	result.Flashes = parseFlashesFromHTML(result.HTML)
	return result
}

// parseTriggerHeader splits an HX-Trigger value into event names, in
// header order, plus the data of events that carried any.
func parseTriggerHeader(trigger string) ([]string, map[string]map[string]any) {
	trigger = strings.TrimSpace(trigger)
	if !strings.HasPrefix(trigger, "{") {
		var events []string
		for _, p := range strings.Split(trigger, ",") {
			if p = strings.TrimSpace(p); p != "" {
				events = append(events, p)
			}
		}
		return events, nil
	}

	dec := json.NewDecoder(strings.NewReader(trigger))
	if _, err := dec.Token(); err != nil {
		return nil, nil
	}
	var events []string
	data := make(map[string]map[string]any)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return events, data
		}
		name, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return events, data
		}
		events = append(events, name)
		var detail map[string]any
		if json.Unmarshal(raw, &detail) == nil && detail != nil {
			data[name] = detail
		}
	}
	return events, data
}

// parseFlashesFromHTML extracts toasts written by RenderFlashesOOB.
func parseFlashesFromHTML(html string) []Flash {
	const prefix = `<div class="toast toast-`
	var flashes []Flash
	for rest := html; ; {
		i := strings.Index(rest, prefix)
		if i < 0 {
			return flashes
		}
		rest = rest[i+len(prefix):]
		level, _, ok := strings.Cut(rest, `"`)
		if !ok {
			return flashes
		}
		_, rest, ok = strings.Cut(rest, ">")
		if !ok {
			return flashes
		}
		msg, after, ok := strings.Cut(rest, "</div>")
		if !ok {
			return flashes
		}
		flashes = append(flashes, Flash{Level: level, Message: msg})
		rest = after
	}
}
