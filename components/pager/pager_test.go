package pager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/pthm/hxui"
	"github.com/pthm/hxui/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedCount(n int) Source {
	return SourceFunc(func(context.Context) (int, error) { return n, nil })
}

func registered(t *testing.T, src Source, opts ...Option) *Pager {
	t.Helper()
	c := New(src, opts...)
	hxui.NewRegistry([]byte("pager-test-key")).Add(c)
	return c
}

func TestHydrate_Defaults(t *testing.T) {
	c := New(fixedCount(95))

	props := Props{Page: 42}
	require.NoError(t, c.Hydrate(context.Background(), &props))

	assert.Equal(t, 95, props.Total)
	assert.Equal(t, DefaultPerPage, props.PerPage)
	assert.Equal(t, VariantFull, props.Variant)
	assert.Equal(t, 10, props.Page, "page clamps to the last page")
}

func TestHydrate_FirstSizeIsDefault(t *testing.T) {
	c := New(fixedCount(95))

	props := Props{Sizes: "25, 50,x,25,-1"}
	require.NoError(t, c.Hydrate(context.Background(), &props))

	assert.Equal(t, []int{25, 50}, props.PageSizes())
	assert.Equal(t, 25, props.PerPage)
}

func TestHydrate_SourceError(t *testing.T) {
	offline := errors.New("offline")
	c := New(SourceFunc(func(context.Context) (int, error) { return 0, offline }))

	_, err := hxui.TestRender[Props](c, Props{})
	require.Error(t, err)
	assert.ErrorIs(t, err, offline)
}

func TestHydrate_NilSourceKeepsTotal(t *testing.T) {
	c := New(nil)

	props := Props{Total: 30, PerPage: 10, Page: 2}
	require.NoError(t, c.Hydrate(context.Background(), &props))
	assert.Equal(t, 30, props.Total)
	assert.Equal(t, 2, props.Page)
}

func TestRender_FullFirstPage(t *testing.T) {
	c := New(fixedCount(95))

	result, err := hxui.TestRender[Props](c, Props{Page: 1, PerPage: 10})
	require.NoError(t, err)

	html := result.HTML
	assert.Contains(t, html, `<nav class="pager-nav" aria-label="Pagination">`)
	assert.Contains(t, html, `aria-current="page" aria-label="Page 1"`)
	assert.Contains(t, html, `aria-disabled="true" aria-label="First page"`)
	assert.Contains(t, html, `aria-disabled="true" aria-label="Previous page"`)
	assert.Contains(t, html, `aria-label="Next page" class="pager-next" hx-post="`)
	assert.Contains(t, html, `data-key="ellipsis-right"`)
	assert.NotContains(t, html, `data-key="ellipsis-left"`)
	assert.Contains(t, html, `<span class="pager-ellipsis" aria-hidden="true">…</span><span class="sr-only">More pages</span>`)
	assert.Contains(t, html, `role="status" aria-live="polite">Showing 1–10 of 95</p>`)
	for _, n := range []int{1, 2, 3, 4, 5, 10} {
		assert.Contains(t, html, fmt.Sprintf(`data-key="page-%d"`, n))
	}
	assert.NotContains(t, html, `data-key="page-6"`)
	assert.NotContains(t, html, "<select", "no size selector without sizes")
}

func TestRender_FullMiddlePage(t *testing.T) {
	c := New(fixedCount(95))

	result, err := hxui.TestRender[Props](c, Props{Page: 5, PerPage: 10, Label: "Catalog pages"})
	require.NoError(t, err)

	assert.True(t, result.HTMLContainsAll(
		`aria-label="Catalog pages"`,
		`data-key="ellipsis-left"`,
		`data-key="ellipsis-right"`,
		`data-key="page-4"`,
		`data-key="page-6"`,
		`aria-current="page" aria-label="Page 5"`,
		`Showing 41–50 of 95`,
	), result.HTML)
	assert.NotContains(t, result.HTML, `aria-disabled`)
}

func TestRender_FullLastPage(t *testing.T) {
	c := New(fixedCount(95))

	result, err := hxui.TestRender[Props](c, Props{Page: 10, PerPage: 10})
	require.NoError(t, err)

	assert.True(t, result.HTMLContainsAll(
		`aria-disabled="true" aria-label="Next page"`,
		`aria-disabled="true" aria-label="Last page"`,
		`data-key="ellipsis-left"`,
		`Showing 91–95 of 95`,
	), result.HTML)
	assert.NotContains(t, result.HTML, `data-key="ellipsis-right"`)
}

func TestRender_Simple(t *testing.T) {
	c := New(fixedCount(95))

	result, err := hxui.TestRender[Props](c, Props{Page: 3, PerPage: 10, Variant: VariantSimple})
	require.NoError(t, err)

	assert.Contains(t, result.HTML, `class="pager pager-simple"`)
	assert.Contains(t, result.HTML, `<li class="pager-position">Page 3 of 10</li>`)
	assert.NotContains(t, result.HTML, `data-key=`)
	assert.NotContains(t, result.HTML, "First page")
}

func TestRender_Empty(t *testing.T) {
	c := New(fixedCount(0))

	result, err := hxui.TestRender[Props](c, Props{})
	require.NoError(t, err)

	assert.Contains(t, result.HTML, ">No items</p>")
	assert.Contains(t, result.HTML, `aria-current="page" aria-label="Page 1"`)
	assert.Contains(t, result.HTML, `aria-disabled="true" aria-label="Next page"`)
}

func TestRender_SizeSelect(t *testing.T) {
	c := New(fixedCount(95))

	result, err := hxui.TestRender[Props](c, Props{PerPage: 20, Sizes: "10,20,50"})
	require.NoError(t, err)

	id := c.domID("size")
	assert.Contains(t, result.HTML, fmt.Sprintf(`<label for="%s">Items per page</label>`, id))
	assert.Contains(t, result.HTML, `hx-trigger="change"`)
	assert.Contains(t, result.HTML, fmt.Sprintf(`id="%s" name="per_page"`, id))
	assert.Contains(t, result.HTML, `<option value="20" selected>20</option>`)
	assert.Contains(t, result.HTML, `<option value="50">50</option>`)
}

func TestRender_Body(t *testing.T) {
	var seen pagination.State
	body := func(ctx context.Context, st pagination.State) templ.Component {
		seen = st
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := fmt.Fprintf(w, "<ol start=%d></ol>", st.StartIndex+1)
			return err
		})
	}
	c := New(fixedCount(95), WithBody(body))

	result, err := hxui.TestRender[Props](c, Props{Page: 3, PerPage: 10})
	require.NoError(t, err)

	assert.Contains(t, result.HTML, `<div class="pager-body"><ol start=21></ol></div>`)
	assert.Equal(t, 20, seen.StartIndex)
	assert.Equal(t, 30, seen.EndIndex)
}

func TestWithName(t *testing.T) {
	a := New(nil, WithName("orders"))
	b := New(nil, WithName("invoices"))

	assert.Equal(t, "orders", a.Name())
	assert.NotEqual(t, a.Prefix(), b.Prefix())

	reg := hxui.NewRegistry([]byte("k"))
	assert.NotPanics(t, func() { reg.Add(a, b) })
}

func TestActions(t *testing.T) {
	tests := []struct {
		name   string
		action string
		props  Props
		form   map[string]string
		page   int
		event  bool
	}{
		{"next", "next", Props{Page: 1}, nil, 2, true},
		{"next at end", "next", Props{Page: 10}, nil, 10, false},
		{"prev", "prev", Props{Page: 4}, nil, 3, true},
		{"prev at start", "prev", Props{Page: 1}, nil, 1, false},
		{"first", "first", Props{Page: 6}, nil, 1, true},
		{"first on first", "first", Props{Page: 1}, nil, 1, false},
		{"last", "last", Props{Page: 2}, nil, 10, true},
		{"last on last", "last", Props{Page: 10}, nil, 10, false},
		{"goto", "goto", Props{Page: 1}, map[string]string{"page": "7"}, 7, true},
		{"goto current", "goto", Props{Page: 7}, map[string]string{"page": "7"}, 7, false},
		{"goto past end", "goto", Props{Page: 1}, map[string]string{"page": "999"}, 10, true},
		{"goto before start", "goto", Props{Page: 3}, map[string]string{"page": "-4"}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := registered(t, fixedCount(95))
			tt.props.PerPage = 10

			result, err := hxui.TestCall(c, c.Call(tt.action, tt.props), tt.form)
			require.NoError(t, err)
			require.True(t, result.IsOK(), result.HTML)

			assert.Contains(t, result.HTML, fmt.Sprintf(`aria-current="page" aria-label="Page %d"`, tt.page))
			if tt.event {
				require.True(t, result.HasEvent(EventPage), "events: %v", result.TriggeredEvents)
				assert.Equal(t, float64(tt.page), result.EventData[EventPage]["page"])
			} else {
				assert.Empty(t, result.TriggeredEvents)
				assert.Empty(t, result.Headers.Get("HX-Trigger"))
			}
		})
	}
}

func TestGoTo_NotANumber(t *testing.T) {
	c := registered(t, fixedCount(95))

	result, err := hxui.TestCall(c, c.Call("goto", Props{Page: 4, PerPage: 10}), map[string]string{"page": "four"})
	require.NoError(t, err)

	assert.True(t, result.HasFlash(hxui.FlashWarning, "Enter a page number"))
	assert.Empty(t, result.TriggeredEvents)
	assert.Contains(t, result.HTML, `aria-current="page" aria-label="Page 4"`)
}

func TestSize(t *testing.T) {
	c := registered(t, fixedCount(95))
	props := Props{Page: 7, PerPage: 10, Sizes: "10,20,50"}

	result, err := hxui.TestCall(c, c.Call("size", props), map[string]string{"per_page": "20"})
	require.NoError(t, err)

	assert.Equal(t, []string{EventSize, EventPage}, result.TriggeredEvents, "size change fires before the page reset")
	assert.JSONEq(t, `{"pager:size":{"count":20},"pager:page":{"page":1}}`, result.Headers.Get("HX-Trigger"))
	assert.Less(t, strings.Index(result.Headers.Get("HX-Trigger"), EventSize), strings.Index(result.Headers.Get("HX-Trigger"), EventPage))
	assert.Equal(t, float64(20), result.EventData[EventSize]["count"])
	assert.Equal(t, float64(1), result.EventData[EventPage]["page"])
	assert.True(t, result.HasFlash(hxui.FlashInfo, "Showing 20 per page"))
	assert.Contains(t, result.HTML, `<option value="20" selected>`)
	assert.Contains(t, result.HTML, "Showing 1–20 of 95")
}

func TestSize_FromFirstPageOnlyEmitsSize(t *testing.T) {
	c := registered(t, fixedCount(95))

	result, err := hxui.TestCall(c, c.Call("size", Props{Page: 1, PerPage: 10}), map[string]string{"per_page": "50"})
	require.NoError(t, err)

	assert.Equal(t, []string{EventSize}, result.TriggeredEvents)
	assert.JSONEq(t, `{"pager:size":{"count":50}}`, result.Headers.Get("HX-Trigger"))
}

func TestSize_NoOpAndRejected(t *testing.T) {
	c := registered(t, fixedCount(95))
	props := Props{Page: 3, PerPage: 20, Sizes: "10,20,50"}

	same, err := hxui.TestCall(c, c.Call("size", props), map[string]string{"per_page": "20"})
	require.NoError(t, err)
	assert.Empty(t, same.TriggeredEvents)
	assert.Empty(t, same.Flashes)
	assert.Contains(t, same.HTML, `aria-current="page" aria-label="Page 3"`)

	for _, v := range []string{"30", "0", "lots"} {
		bad, err := hxui.TestCall(c, c.Call("size", props), map[string]string{"per_page": v})
		require.NoError(t, err)
		assert.True(t, bad.HasFlash(hxui.FlashWarning, "Unsupported page size"), "per_page=%s", v)
		assert.Empty(t, bad.TriggeredEvents)
	}
}

func TestSize_FreeFormIsBounded(t *testing.T) {
	c := registered(t, fixedCount(95))
	props := Props{Page: 2, PerPage: 10}

	ok, err := hxui.TestCall(c, c.Call("size", props), map[string]string{"per_page": fmt.Sprint(MaxPerPage)})
	require.NoError(t, err)
	assert.True(t, ok.HasEvent(EventSize))
	assert.Contains(t, ok.HTML, "Showing 1–95 of 95")

	for _, v := range []string{fmt.Sprint(MaxPerPage + 1), "9223372036854775807"} {
		big, err := hxui.TestCall(c, c.Call("size", props), map[string]string{"per_page": v})
		require.NoError(t, err)
		assert.True(t, big.HasFlash(hxui.FlashWarning, "Unsupported page size"), "per_page=%s", v)
		assert.Empty(t, big.TriggeredEvents)
	}
}

func TestShrinkingSourceClampsPage(t *testing.T) {
	total := 95
	c := registered(t, SourceFunc(func(context.Context) (int, error) { return total, nil }))

	a := c.Refresh(Props{Page: 10, PerPage: 10})
	total = 30

	result, err := hxui.TestCall(c, a, nil)
	require.NoError(t, err)
	assert.Contains(t, result.HTML, `aria-current="page" aria-label="Page 3"`)
	assert.Contains(t, result.HTML, "Showing 21–30 of 30")
}

func TestControlsCarrySignedProps(t *testing.T) {
	c := registered(t, fixedCount(95))

	result, err := hxui.TestRender[Props](c, Props{Page: 2, PerPage: 10})
	require.NoError(t, err)

	assert.Contains(t, result.HTML, `hx-post="`+c.Prefix()+`/goto"`)
	assert.Contains(t, result.HTML, `hx-target="closest .pager"`)
	assert.Contains(t, result.HTML, `hx-vals="{&#34;p&#34;:&#34;`)
	assert.Contains(t, result.HTML, `&#34;page&#34;:&#34;3&#34;`)
}
