// Package pagination computes page metadata and the visible page window for
// numbered pagination controls.
//
// Everything here is total: out-of-range inputs are clamped rather than
// rejected, so any (totalItems, itemsPerPage, currentPage) triple yields a
// valid State with at least one page.
//
//	st := pagination.Compute(95, 10, 5)
//	st.TotalPages // 10
//	st.Range      // [1 … 4 5 6 … 10]
package pagination

import "strconv"

// maxSlots is the number of page controls shown once pages no longer fit.
const maxSlots = 7

// Side identifies which gap an ellipsis stands for.
type Side uint8

const (
	// Left is the gap between the first page and the centre window.
	Left Side = iota + 1
	// Right is the gap between the centre window and the last page.
	Right
)

// Item is one slot of a page range: either a page number or an ellipsis.
//
// The zero Item is invalid; build items with PageItem and EllipsisItem.
type Item struct {
	page int
	side Side
}

// PageItem returns a slot for page n.
func PageItem(n int) Item {
	return Item{page: n}
}

// EllipsisItem returns a placeholder slot for hidden pages.
func EllipsisItem(side Side) Item {
	return Item{side: side}
}

// IsEllipsis reports whether the slot stands for hidden pages.
func (i Item) IsEllipsis() bool {
	return i.side != 0
}

// Page returns the page number, or 0 for an ellipsis.
func (i Item) Page() int {
	return i.page
}

// Side returns which gap an ellipsis stands for, or 0 for a page.
func (i Item) Side() Side {
	return i.side
}

// Key returns a stable rendering key for the slot. Keys are unique within a
// range but carry no meaning beyond that.
func (i Item) Key() string {
	switch i.side {
	case Left:
		return "ellipsis-left"
	case Right:
		return "ellipsis-right"
	}
	return "page-" + strconv.Itoa(i.page)
}

// String renders the slot as its page number or "…".
func (i Item) String() string {
	if i.IsEllipsis() {
		return "…"
	}
	return strconv.Itoa(i.page)
}

// State is the derived pagination metadata for one moment in time.
// It is never stored; recompute it whenever an input changes.
type State struct {
	TotalItems      int
	ItemsPerPage    int
	CurrentPage     int
	TotalPages      int
	HasPreviousPage bool
	HasNextPage     bool
	// StartIndex and EndIndex bound the current page as a half-open
	// interval [StartIndex, EndIndex) over the item list.
	StartIndex int
	EndIndex   int
	Range      []Item
}

// Compute derives the pagination state. Negative totals count as zero,
// page sizes below one count as one and the current page is clamped to
// [1, TotalPages].
func Compute(totalItems, itemsPerPage, currentPage int) State {
	if totalItems < 0 {
		totalItems = 0
	}
	if itemsPerPage < 1 {
		itemsPerPage = 1
	}
	totalPages := TotalPages(totalItems, itemsPerPage)
	currentPage = clamp(currentPage, 1, totalPages)

	// start < totalItems whenever totalItems > 0, so adding only the
	// remaining room cannot overflow.
	start := (currentPage - 1) * itemsPerPage
	end := start + min(itemsPerPage, totalItems-start)

	return State{
		TotalItems:      totalItems,
		ItemsPerPage:    itemsPerPage,
		CurrentPage:     currentPage,
		TotalPages:      totalPages,
		HasPreviousPage: currentPage > 1,
		HasNextPage:     currentPage < totalPages,
		StartIndex:      start,
		EndIndex:        end,
		Range:           PageRange(currentPage, totalPages),
	}
}

// TotalPages returns max(1, ceil(totalItems/itemsPerPage)) after clamping
// the inputs the same way Compute does.
func TotalPages(totalItems, itemsPerPage int) int {
	if totalItems < 0 {
		totalItems = 0
	}
	if itemsPerPage < 1 {
		itemsPerPage = 1
	}
	pages := totalItems / itemsPerPage
	if totalItems%itemsPerPage != 0 {
		pages++
	}
	return max(1, pages)
}

// PageRange returns the slots to render for currentPage out of totalPages.
//
// Up to seven pages are listed in full. Beyond that the range always has
// exactly seven slots: the first and last page are pinned and an ellipsis
// stands in for each gap around the window of three pages near the current
// one.
func PageRange(currentPage, totalPages int) []Item {
	totalPages = max(1, totalPages)
	if totalPages <= maxSlots {
		items := make([]Item, 0, totalPages)
		for p := 1; p <= totalPages; p++ {
			items = append(items, PageItem(p))
		}
		return items
	}

	center := clamp(currentPage, 1, totalPages)
	switch {
	case center < 4:
		return []Item{
			PageItem(1), PageItem(2), PageItem(3), PageItem(4), PageItem(5),
			EllipsisItem(Right),
			PageItem(totalPages),
		}
	case center > totalPages-3:
		return []Item{
			PageItem(1),
			EllipsisItem(Left),
			PageItem(totalPages - 4), PageItem(totalPages - 3), PageItem(totalPages - 2),
			PageItem(totalPages - 1), PageItem(totalPages),
		}
	default:
		return []Item{
			PageItem(1),
			EllipsisItem(Left),
			PageItem(center - 1), PageItem(center), PageItem(center + 1),
			EllipsisItem(Right),
			PageItem(totalPages),
		}
	}
}

// Slice returns the part of items that falls on the state's current page.
// The state is applied as-is; a state computed for a longer list is
// truncated to the slice bounds.
func Slice[T any](items []T, st State) []T {
	start := clamp(st.StartIndex, 0, len(items))
	end := clamp(st.EndIndex, start, len(items))
	return items[start:end]
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
