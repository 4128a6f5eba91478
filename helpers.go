package hxui

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
)

// Render writes a templ component as an HTML response.
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// IsHTMX reports whether the request was sent by HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// IsBoosted reports whether the request is an hx-boost navigation.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get("HX-Boosted") == "true"
}

// CurrentURL returns the browser's URL from HX-Current-URL, "" for plain
// requests.
func CurrentURL(r *http.Request) string {
	return r.Header.Get("HX-Current-URL")
}

// TriggerName returns the name of the element that triggered the request.
func TriggerName(r *http.Request) string {
	return r.Header.Get("HX-Trigger-Name")
}

// TargetID returns the id of the element the response will be swapped into.
func TargetID(r *http.Request) string {
	return r.Header.Get("HX-Target")
}

// BuildTriggerHeader formats events as an HX-Trigger value. A single event
// without data is sent as its bare name; anything else becomes a JSON
// object keyed by event name, with true standing in for missing data.
// Keys keep emission order, which is the order htmx dispatches them in. A
// repeated name keeps its first position and takes the latest data.
func BuildTriggerHeader(events []Event) string {
	switch {
	case len(events) == 0:
		return ""
	case len(events) == 1 && events[0].Data == nil:
		return events[0].Name
	}

	order := make([]string, 0, len(events))
	detail := make(map[string]any, len(events))
	for _, ev := range events {
		if _, seen := detail[ev.Name]; !seen {
			order = append(order, ev.Name)
		}
		if ev.Data != nil {
			detail[ev.Name] = ev.Data
		} else {
			detail[ev.Name] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(name)
		val, err := json.Marshal(detail[name])
		if err != nil {
			val = []byte("true")
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.String()
}
