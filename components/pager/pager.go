// Package pager is the pagination presentation layer: an hxui component
// that renders page controls from the pagination calculator and moves
// between pages with HTMX actions.
//
// Only the navigation inputs travel in props. The item count is hydrated
// from a Source on every request, so a shrinking dataset clamps the page
// instead of pointing past the end.
package pager

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/pthm/hxui"
	"github.com/pthm/hxui/pagination"
)

// Events emitted through HX-Trigger when an action changes state.
const (
	EventPage = "pager:page"
	EventSize = "pager:size"
)

// DefaultPerPage is used when props carry no page size.
const DefaultPerPage = 10

// MaxPerPage bounds the size action when props offer no size list.
const MaxPerPage = 100

// Variant selects the control layout.
type Variant string

const (
	// VariantFull renders numbered page buttons with ellipses.
	VariantFull Variant = "full"
	// VariantSimple renders previous/next with "Page x of y".
	VariantSimple Variant = "simple"
)

// Props are the pager's encoded inputs.
type Props struct {
	Page    int     `msgpack:"pg"`
	PerPage int     `msgpack:"pp"`
	Total   int     `msgpack:"t,omitempty"`
	Variant Variant `msgpack:"v,omitempty"`
	// Sizes is a comma separated list of page sizes offered in the size
	// selector, e.g. "10,20,50". Empty hides the selector.
	Sizes string `msgpack:"s,omitempty"`
	// Label names the navigation landmark. Defaults to "Pagination".
	Label string `msgpack:"l,omitempty"`
}

// State returns the computed pagination window for p.
func (p Props) State() pagination.State {
	return pagination.Compute(p.Total, p.PerPage, p.Page)
}

// PageSizes parses Sizes, dropping entries that are not positive integers.
func (p Props) PageSizes() []int {
	var sizes []int
	for _, s := range strings.Split(p.Sizes, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 1 || slices.Contains(sizes, n) {
			continue
		}
		sizes = append(sizes, n)
	}
	return sizes
}

// Source reports how many items are being paginated.
type Source interface {
	Count(ctx context.Context) (int, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (int, error)

// Count implements Source.
func (f SourceFunc) Count(ctx context.Context) (int, error) { return f(ctx) }

// BodyFunc renders the items of the current window above the controls.
type BodyFunc func(ctx context.Context, st pagination.State) templ.Component

// Option configures a Pager.
type Option func(*options)

type options struct {
	name string
	body BodyFunc
}

// WithName sets the component name. Pagers mounted on the same registry
// need distinct names.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithBody renders the current window with fn inside the swapped region,
// so items and controls update in one request.
func WithBody(fn BodyFunc) Option {
	return func(o *options) { o.body = fn }
}

// Pager is the pagination component.
type Pager struct {
	*hxui.Component[Props]
	source Source
	body   BodyFunc
}

// New creates a pager counting items with src. A nil src leaves Total as
// carried in props.
func New(src Source, opts ...Option) *Pager {
	o := options{name: "pager"}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Pager{
		Component: hxui.New[Props](o.name),
		source:    src,
		body:      o.body,
	}
	c.Action("goto", c.handleGoTo)
	c.Action("next", c.handleNext)
	c.Action("prev", c.handlePrev)
	c.Action("first", c.handleFirst)
	c.Action("last", c.handleLast)
	c.Action("size", c.handleSize)
	return c
}

// HXServeHTTP implements hxui.HXComponent.
func (c *Pager) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.Serve(w, r, c)
}

// Hydrate refreshes Total from the source and fills defaults.
func (c *Pager) Hydrate(ctx context.Context, props *Props) error {
	if c.source != nil {
		n, err := c.source.Count(ctx)
		if err != nil {
			return fmt.Errorf("pager: count items: %w", err)
		}
		props.Total = n
	}
	if props.PerPage < 1 {
		props.PerPage = DefaultPerPage
		if sizes := props.PageSizes(); len(sizes) > 0 {
			props.PerPage = sizes[0]
		}
	}
	if props.Variant != VariantSimple {
		props.Variant = VariantFull
	}
	props.Page = props.State().CurrentPage
	return nil
}

// Render produces the HTML output.
func (c *Pager) Render(ctx context.Context, props Props) templ.Component {
	return pagerTemplate(c, props)
}

func (c *Pager) handleGoTo(ctx context.Context, props Props, r *http.Request) hxui.Result[Props] {
	n, err := strconv.Atoi(strings.TrimSpace(r.FormValue("page")))
	if err != nil {
		return hxui.OK(props).Flash(hxui.FlashWarning, "Enter a page number")
	}
	return c.apply(props, func(p *pagination.Pager) { p.GoToPage(n) })
}

func (c *Pager) handleNext(ctx context.Context, props Props, r *http.Request) hxui.Result[Props] {
	return c.apply(props, func(p *pagination.Pager) { p.NextPage() })
}

func (c *Pager) handlePrev(ctx context.Context, props Props, r *http.Request) hxui.Result[Props] {
	return c.apply(props, func(p *pagination.Pager) { p.PreviousPage() })
}

func (c *Pager) handleFirst(ctx context.Context, props Props, r *http.Request) hxui.Result[Props] {
	return c.apply(props, func(p *pagination.Pager) { p.FirstPage() })
}

func (c *Pager) handleLast(ctx context.Context, props Props, r *http.Request) hxui.Result[Props] {
	return c.apply(props, func(p *pagination.Pager) { p.LastPage() })
}

func (c *Pager) handleSize(ctx context.Context, props Props, r *http.Request) hxui.Result[Props] {
	n, err := strconv.Atoi(strings.TrimSpace(r.FormValue("per_page")))
	if !allowedSize(props.PageSizes(), n, err) {
		return hxui.OK(props).Flash(hxui.FlashWarning, "Unsupported page size")
	}
	res := c.apply(props, func(p *pagination.Pager) { p.SetItemsPerPage(n) })
	if res.Props().PerPage != props.PerPage {
		res = res.Flash(hxui.FlashInfo, fmt.Sprintf("Showing %d per page", n))
	}
	return res
}

// apply runs op on a calculator built from props and turns its change
// notifications into HX-Trigger events, in the order they fired.
func (c *Pager) apply(props Props, op func(*pagination.Pager)) hxui.Result[Props] {
	var events []hxui.Event
	p := pagination.New(props.Total, props.PerPage,
		pagination.WithCurrentPage(props.Page),
		pagination.OnPageChange(func(page int) {
			events = append(events, hxui.Event{Name: EventPage, Data: map[string]any{"page": page}})
		}),
		pagination.OnItemsPerPageChange(func(count int) {
			events = append(events, hxui.Event{Name: EventSize, Data: map[string]any{"count": count}})
		}),
	)
	op(p)

	props.Page = p.CurrentPage()
	props.PerPage = p.ItemsPerPage()
	res := hxui.OK(props)
	for _, e := range events {
		res = res.Trigger(e.Name, e.Data)
	}
	return res
}

func allowedSize(sizes []int, n int, parseErr error) bool {
	switch {
	case parseErr != nil || n < 1:
		return false
	case len(sizes) > 0:
		return slices.Contains(sizes, n)
	}
	return n <= MaxPerPage
}
