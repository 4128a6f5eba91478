// Package hxui is a small component system for server-rendered, accessible
// user interfaces built from Go, templ and HTMX.
//
// A component is a Go type embedding *Component[P], where P is a props
// struct small enough to travel in a URL. Components implement Hydrate to
// rebuild request-time data from those props and Render to produce a
// templ.Component. Actions are named handlers registered on the component
// and invoked by HTMX requests.
//
// # Lifecycle
//
// Every request below a component's prefix goes through Serve:
//
//	decode props -> Hydrate -> handler (or plain render) -> Result
//
// Handlers return a Result that says what happens next: OK(props) renders,
// Err routes to the registry's OnError, Redirect sets HX-Redirect and Skip
// leaves the response to the handler. Results may also queue HX-Trigger
// events and flash toasts.
//
// # Props
//
// Props are msgpack-encoded. By default they are signed (readable, tamper
// proof); components marked Sensitive encrypt them with AES-GCM instead.
// Decoding failures surface as ErrInvalidFormat, ErrSignatureInvalid or
// ErrDecryptFailed and become 400 responses.
//
// # Registration
//
//	reg := hxui.NewRegistry(key, hxui.WithLogger(logger))
//	reg.Add(pager.New(source))
//	http.Handle("/_c/", reg.Handler())
//
// The registry injects the encoder, logger and error handler into each
// component, rejects prefix collisions at startup and refuses mutating
// requests that lack the HX-Request header.
//
// Ready-made components live in the components directory; the pagination
// package holds the page-window arithmetic they share.
package hxui
