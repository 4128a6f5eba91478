// Package skeleton renders loading placeholders for regions that arrive
// later, typically through Component.Lazy or Component.Defer.
package skeleton

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Skeleton describes a placeholder block.
type Skeleton struct {
	// Lines is the number of shimmer rows. Values below 1 render one.
	Lines int
	// Label is announced to assistive technology while loading.
	Label string
	// Class adds classes to the outer element.
	Class string
}

// Lines is shorthand for a labelled placeholder with n rows.
func Lines(n int) templ.Component {
	return Skeleton{Lines: n}.Component()
}

// Component renders the placeholder. The container is a busy status region
// so screen readers announce Label once instead of reading the rows.
func (s Skeleton) Component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		label := s.Label
		if label == "" {
			label = "Loading…"
		}
		class := "skeleton"
		if s.Class != "" {
			class += " " + s.Class
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, `<div class="%s" role="status" aria-busy="true" aria-live="polite">`, html.EscapeString(class))
		for i := 0; i < max(1, s.Lines); i++ {
			fmt.Fprintf(&sb, `<div class="skeleton-line" style="width:%d%%" aria-hidden="true"></div>`, lineWidth(i))
		}
		fmt.Fprintf(&sb, `<span class="sr-only">%s</span></div>`, html.EscapeString(label))

		_, err := io.WriteString(w, sb.String())
		return err
	})
}

func lineWidth(i int) int {
	widths := [...]int{100, 92, 84, 96, 76}
	return widths[i%len(widths)]
}
