package main

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/pthm/hxui"
	"github.com/pthm/hxui/components/pager"
	"github.com/pthm/hxui/components/skeleton"
	"github.com/pthm/hxui/internal/catalog"
	"github.com/pthm/hxui/pagination"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

func showcasePage(p *pager.Pager, props pager.Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>hxui catalog</title>
<script src="%s"></script>
</head>
<body>
<main>
<h1>Catalog</h1>
`, htmxScript)
		if err != nil {
			return err
		}
		placeholder := skeleton.Skeleton{Lines: max(1, props.PerPage), Label: "Loading catalog…", Class: "pager"}
		if err := p.Lazy(props, placeholder.Component()).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n</main>\n"); err != nil {
			return err
		}
		if err := hxui.ToastContainer().Render(ctx, w); err != nil {
			return err
		}
		_, err = io.WriteString(w, "\n</body>\n</html>\n")
		return err
	})
}

func catalogTable(items *catalog.Catalog) pager.BodyFunc {
	return func(ctx context.Context, st pagination.State) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			window := items.Window(st)
			if len(window) == 0 {
				_, err := io.WriteString(w, `<p class="catalog-empty">The catalog is empty.</p>`)
				return err
			}
			if _, err := io.WriteString(w, `<table class="catalog"><thead><tr><th scope="col">SKU</th><th scope="col">Name</th><th scope="col">Price</th></tr></thead><tbody>`); err != nil {
				return err
			}
			for _, it := range window {
				_, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>%s</td></tr>`,
					html.EscapeString(it.SKU), html.EscapeString(it.Name), catalog.FormatPrice(it.Price))
				if err != nil {
					return err
				}
			}
			_, err := io.WriteString(w, `</tbody></table>`)
			return err
		})
	}
}
