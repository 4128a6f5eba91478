package pagination

// Pager holds pagination inputs and applies navigation to them.
//
// Every mutation re-clamps the current page, so accessors always describe
// a valid state. Change callbacks fire once per transition that actually
// changes a value; a navigation that lands on the current page is silent.
//
// A Pager is not safe for concurrent use.
type Pager struct {
	totalItems   int
	itemsPerPage int
	currentPage  int

	onPageChange         func(page int)
	onItemsPerPageChange func(count int)
}

// Option configures a Pager.
type Option func(*Pager)

// WithCurrentPage sets the starting page. It is clamped like any other
// page change, without notifying OnPageChange.
func WithCurrentPage(page int) Option {
	return func(p *Pager) {
		p.currentPage = page
	}
}

// OnPageChange registers a callback for current page transitions.
func OnPageChange(fn func(page int)) Option {
	return func(p *Pager) {
		p.onPageChange = fn
	}
}

// OnItemsPerPageChange registers a callback for page size transitions.
func OnItemsPerPageChange(fn func(count int)) Option {
	return func(p *Pager) {
		p.onItemsPerPageChange = fn
	}
}

// New returns a Pager on page one unless WithCurrentPage says otherwise.
func New(totalItems, itemsPerPage int, opts ...Option) *Pager {
	p := &Pager{
		totalItems:   max(0, totalItems),
		itemsPerPage: max(1, itemsPerPage),
		currentPage:  1,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.currentPage = clamp(p.currentPage, 1, p.TotalPages())
	return p
}

// GoToPage moves to page n, clamped to [1, TotalPages]. It reports whether
// the current page changed.
func (p *Pager) GoToPage(n int) bool {
	n = clamp(n, 1, p.TotalPages())
	if n == p.currentPage {
		return false
	}
	p.currentPage = n
	if p.onPageChange != nil {
		p.onPageChange(n)
	}
	return true
}

// NextPage advances one page when there is one.
func (p *Pager) NextPage() bool {
	if !p.HasNextPage() {
		return false
	}
	return p.GoToPage(p.currentPage + 1)
}

// PreviousPage goes back one page when there is one.
func (p *Pager) PreviousPage() bool {
	if !p.HasPreviousPage() {
		return false
	}
	return p.GoToPage(p.currentPage - 1)
}

// FirstPage moves to page one.
func (p *Pager) FirstPage() bool {
	return p.GoToPage(1)
}

// LastPage moves to the final page.
func (p *Pager) LastPage() bool {
	return p.GoToPage(p.TotalPages())
}

// SetItemsPerPage changes the page size and returns to page one. Sizes
// below one count as one; setting the current size is a no-op.
func (p *Pager) SetItemsPerPage(n int) bool {
	n = max(1, n)
	if n == p.itemsPerPage {
		return false
	}
	p.itemsPerPage = n
	if p.onItemsPerPageChange != nil {
		p.onItemsPerPageChange(n)
	}
	p.GoToPage(1)
	return true
}

// SetTotalItems changes the item count. When the current page no longer
// exists it is clamped to the new last page and OnPageChange fires.
func (p *Pager) SetTotalItems(n int) bool {
	n = max(0, n)
	if n == p.totalItems {
		return false
	}
	p.totalItems = n
	p.GoToPage(p.currentPage)
	return true
}

// CurrentPage returns the 1-based current page.
func (p *Pager) CurrentPage() int { return p.currentPage }

// ItemsPerPage returns the page size.
func (p *Pager) ItemsPerPage() int { return p.itemsPerPage }

// TotalItems returns the item count.
func (p *Pager) TotalItems() int { return p.totalItems }

// TotalPages returns the page count, never less than one.
func (p *Pager) TotalPages() int {
	return TotalPages(p.totalItems, p.itemsPerPage)
}

// HasPreviousPage reports whether a page precedes the current one.
func (p *Pager) HasPreviousPage() bool { return p.currentPage > 1 }

// HasNextPage reports whether a page follows the current one.
func (p *Pager) HasNextPage() bool { return p.currentPage < p.TotalPages() }

// StartIndex returns the offset of the first item on the current page.
func (p *Pager) StartIndex() int { return p.State().StartIndex }

// EndIndex returns the offset one past the last item on the current page.
func (p *Pager) EndIndex() int { return p.State().EndIndex }

// PageRange returns the slots to render for the current page.
func (p *Pager) PageRange() []Item {
	return PageRange(p.currentPage, p.TotalPages())
}

// State returns a snapshot of the derived metadata.
func (p *Pager) State() State {
	return Compute(p.totalItems, p.itemsPerPage, p.currentPage)
}
