package pager

import (
	"context"
	"fmt"
	"html"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/pthm/hxui"
	"github.com/pthm/hxui/pagination"
)

// markup writes HTML, remembering the first write error so templates can
// emit a run of fragments and check once.
type markup struct {
	w   io.Writer
	err error
}

func (m *markup) raw(s string) {
	if m.err == nil {
		_, m.err = io.WriteString(m.w, s)
	}
}

func (m *markup) text(s string) { m.raw(html.EscapeString(s)) }

func (m *markup) rawf(format string, args ...any) { m.raw(fmt.Sprintf(format, args...)) }

// attrs writes attributes in key order. Boolean attributes are written
// bare when true and skipped when false.
func (m *markup) attrs(a templ.Attributes) {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		switch v := a[k].(type) {
		case bool:
			if v {
				m.rawf(" %s", k)
			}
		default:
			m.rawf(` %s="%s"`, k, html.EscapeString(fmt.Sprint(v)))
		}
	}
}

func (m *markup) component(ctx context.Context, c templ.Component) {
	if m.err == nil && c != nil {
		m.err = c.Render(ctx, m.w)
	}
}

// control is a navigation button. Unavailable controls stay in the tab
// order's visual position but carry no request attributes.
type control struct {
	class  string
	label  string
	glyph  string
	action *hxui.Action
	attrs  templ.Attributes
}

func (m *markup) button(c control) {
	a := templ.Attributes{"type": "button", "class": c.class, "aria-label": c.label}
	if c.action == nil {
		a["aria-disabled"] = "true"
		a["disabled"] = true
	} else {
		for k, v := range c.action.Attrs() {
			a[k] = v
		}
	}
	for k, v := range c.attrs {
		a[k] = v
	}
	m.raw("<button")
	m.attrs(a)
	m.raw(">")
	m.text(c.glyph)
	m.raw("</button>")
}

func pagerTemplate(c *Pager, props Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		st := props.State()
		m := &markup{w: w}

		m.rawf(`<div class="pager pager-%s" id="%s">`, props.Variant, c.domID(""))
		if c.body != nil {
			m.raw(`<div class="pager-body">`)
			m.component(ctx, c.body(ctx, st))
			m.raw(`</div>`)
		}

		label := props.Label
		if label == "" {
			label = "Pagination"
		}
		m.raw(`<nav class="pager-nav"`)
		m.attrs(templ.Attributes{"aria-label": label})
		m.raw(`><ul class="pager-list">`)
		if props.Variant == VariantSimple {
			c.simpleControls(m, props, st)
		} else {
			c.fullControls(m, props, st)
		}
		m.raw(`</ul></nav>`)

		c.sizeSelect(m, props)

		m.raw(`<p class="pager-status" role="status" aria-live="polite">`)
		m.text(statusText(st))
		m.raw(`</p></div>`)
		return m.err
	})
}

func (c *Pager) fullControls(m *markup, props Props, st pagination.State) {
	m.raw("<li>")
	m.button(control{class: "pager-first", label: "First page", glyph: "«", action: c.when(st.HasPreviousPage, "first", props)})
	m.raw("</li><li>")
	m.button(control{class: "pager-prev", label: "Previous page", glyph: "‹", action: c.when(st.HasPreviousPage, "prev", props)})
	m.raw("</li>")

	for _, item := range st.Range {
		m.rawf(`<li data-key="%s">`, item.Key())
		if item.IsEllipsis() {
			m.raw(`<span class="pager-ellipsis" aria-hidden="true">…</span><span class="sr-only">More pages</span>`)
			m.raw("</li>")
			continue
		}

		n := item.Page()
		ctl := control{class: "pager-page", label: "Page " + item.String(), glyph: item.String()}
		if n == st.CurrentPage {
			ctl.class += " pager-current"
			ctl.attrs = templ.Attributes{"aria-current": "page"}
		} else {
			ctl.action = c.target(c.Call("goto", props).Vals(map[string]any{"page": strconv.Itoa(n)}))
		}
		m.button(ctl)
		m.raw("</li>")
	}

	m.raw("<li>")
	m.button(control{class: "pager-next", label: "Next page", glyph: "›", action: c.when(st.HasNextPage, "next", props)})
	m.raw("</li><li>")
	m.button(control{class: "pager-last", label: "Last page", glyph: "»", action: c.when(st.HasNextPage, "last", props)})
	m.raw("</li>")
}

func (c *Pager) simpleControls(m *markup, props Props, st pagination.State) {
	m.raw("<li>")
	m.button(control{class: "pager-prev", label: "Previous page", glyph: "‹ Previous", action: c.when(st.HasPreviousPage, "prev", props)})
	m.raw(`</li><li class="pager-position">`)
	m.text(fmt.Sprintf("Page %d of %d", st.CurrentPage, st.TotalPages))
	m.raw("</li><li>")
	m.button(control{class: "pager-next", label: "Next page", glyph: "Next ›", action: c.when(st.HasNextPage, "next", props)})
	m.raw("</li>")
}

func (c *Pager) sizeSelect(m *markup, props Props) {
	sizes := props.PageSizes()
	if len(sizes) == 0 {
		return
	}
	id := c.domID("size")
	m.rawf(`<div class="pager-size"><label for="%s">Items per page</label><select`, id)
	a := c.target(c.Call("size", props)).Trigger("change").Attrs()
	a["id"] = id
	a["name"] = "per_page"
	m.attrs(a)
	m.raw(">")
	for _, n := range sizes {
		m.rawf(`<option value="%d"`, n)
		if n == props.PerPage {
			m.raw(" selected")
		}
		m.rawf(">%d</option>", n)
	}
	m.raw("</select></div>")
}

// when returns the action for name, or nil when the control is unavailable.
func (c *Pager) when(ok bool, name string, props Props) *hxui.Action {
	if !ok {
		return nil
	}
	return c.target(c.Call(name, props))
}

func (c *Pager) target(a *hxui.Action) *hxui.Action {
	return a.TargetClosest(".pager")
}

// domID derives element ids from the component prefix, unique per
// registered pager.
func (c *Pager) domID(suffix string) string {
	id := strings.TrimPrefix(c.Prefix(), "/_c/")
	if suffix != "" {
		id += "-" + suffix
	}
	return id
}

func statusText(st pagination.State) string {
	if st.TotalItems == 0 {
		return "No items"
	}
	return fmt.Sprintf("Showing %d–%d of %d", st.StartIndex+1, st.EndIndex, st.TotalItems)
}
