package hxui

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
)

// Hydrater is implemented by components to rebuild request-time data from
// the lean props carried in the URL. It runs once per request, before any
// action handler and before a plain render.
//
//	func (c *Pager) Hydrate(ctx context.Context, props *Props) error {
//	    total, err := c.source.Count(ctx)
//	    props.Total = total
//	    return err
//	}
type Hydrater[P any] interface {
	Hydrate(ctx context.Context, props *P) error
}

// Renderer is implemented by components to produce their markup from fully
// hydrated props. Render should be pure.
type Renderer[P any] interface {
	Render(ctx context.Context, props P) templ.Component
}

// HXComponent is what the Registry mounts. HXPrefix is the component's URL
// prefix and HXServeHTTP handles every request below it.
//
// Components normally implement HXServeHTTP by delegating to Serve with
// their action table.
type HXComponent interface {
	HXPrefix() string
	HXServeHTTP(w http.ResponseWriter, r *http.Request)
}
