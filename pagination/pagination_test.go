package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slots builds a range from page numbers; -1 is a left ellipsis and -2 a
// right one.
func slots(ns ...int) []Item {
	items := make([]Item, 0, len(ns))
	for _, n := range ns {
		switch n {
		case -1:
			items = append(items, EllipsisItem(Left))
		case -2:
			items = append(items, EllipsisItem(Right))
		default:
			items = append(items, PageItem(n))
		}
	}
	return items
}

func TestCompute_NinetyFiveItems(t *testing.T) {
	tests := []struct {
		page int
		want []Item
	}{
		{1, slots(1, 2, 3, 4, 5, -2, 10)},
		{3, slots(1, 2, 3, 4, 5, -2, 10)},
		{4, slots(1, -1, 3, 4, 5, -2, 10)},
		{5, slots(1, -1, 4, 5, 6, -2, 10)},
		{7, slots(1, -1, 6, 7, 8, -2, 10)},
		{8, slots(1, -1, 6, 7, 8, 9, 10)},
		{10, slots(1, -1, 6, 7, 8, 9, 10)},
	}

	for _, tt := range tests {
		st := Compute(95, 10, tt.page)
		assert.Equal(t, 10, st.TotalPages)
		assert.Equal(t, tt.want, st.Range, "page %d", tt.page)
	}
}

func TestCompute_FewPagesHasNoEllipsis(t *testing.T) {
	for page := -3; page <= 8; page++ {
		st := Compute(50, 10, page)
		assert.Equal(t, 5, st.TotalPages)
		assert.Equal(t, slots(1, 2, 3, 4, 5), st.Range, "page %d", page)
	}
}

func TestCompute_SevenPagesIsListedInFull(t *testing.T) {
	st := Compute(70, 10, 4)
	assert.Equal(t, slots(1, 2, 3, 4, 5, 6, 7), st.Range)

	st = Compute(71, 10, 4)
	assert.Equal(t, slots(1, -1, 3, 4, 5, -2, 8), st.Range)
}

func TestCompute_Indices(t *testing.T) {
	st := Compute(95, 10, 10)
	assert.Equal(t, 90, st.StartIndex)
	assert.Equal(t, 95, st.EndIndex)
	assert.True(t, st.HasPreviousPage)
	assert.False(t, st.HasNextPage)

	st = Compute(95, 10, 1)
	assert.Equal(t, 0, st.StartIndex)
	assert.Equal(t, 10, st.EndIndex)
	assert.False(t, st.HasPreviousPage)
	assert.True(t, st.HasNextPage)
}

func TestCompute_ClampsInputs(t *testing.T) {
	tests := []struct {
		name                       string
		total, perPage, page       int
		wantTotal, wantPer, wantPg int
		wantPages                  int
	}{
		{"zero items", 0, 10, 1, 0, 10, 1, 1},
		{"negative items", -20, 10, 3, 0, 10, 1, 1},
		{"zero page size", 5, 0, 2, 5, 1, 2, 5},
		{"negative page size", 5, -4, 9, 5, 1, 5, 5},
		{"page below range", 95, 10, -7, 95, 10, 1, 10},
		{"page above range", 95, 10, 99, 95, 10, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Compute(tt.total, tt.perPage, tt.page)
			assert.Equal(t, tt.wantTotal, st.TotalItems)
			assert.Equal(t, tt.wantPer, st.ItemsPerPage)
			assert.Equal(t, tt.wantPg, st.CurrentPage)
			assert.Equal(t, tt.wantPages, st.TotalPages)
		})
	}
}

func TestCompute_EmptyList(t *testing.T) {
	st := Compute(0, 10, 1)
	assert.Equal(t, 1, st.TotalPages)
	assert.Equal(t, 0, st.StartIndex)
	assert.Equal(t, 0, st.EndIndex)
	assert.False(t, st.HasPreviousPage)
	assert.False(t, st.HasNextPage)
	assert.Equal(t, slots(1), st.Range)
}

func TestInvariants(t *testing.T) {
	for total := 0; total <= 130; total++ {
		for perPage := 1; perPage <= 12; perPage++ {
			wantPages := max(1, (total+perPage-1)/perPage)
			require.Equal(t, wantPages, TotalPages(total, perPage), "total=%d per=%d", total, perPage)

			for page := -1; page <= wantPages+2; page++ {
				st := Compute(total, perPage, page)
				require.GreaterOrEqual(t, st.CurrentPage, 1)
				require.LessOrEqual(t, st.CurrentPage, st.TotalPages)
				require.GreaterOrEqual(t, st.StartIndex, 0)
				require.LessOrEqual(t, st.StartIndex, st.EndIndex)
				require.LessOrEqual(t, st.EndIndex, st.TotalItems)
				if st.TotalPages > 7 {
					require.Len(t, st.Range, 7)
				} else {
					require.Len(t, st.Range, st.TotalPages)
				}
			}
		}
	}
}

func TestCompute_ExtremeInputs(t *testing.T) {
	tests := []struct {
		name                      string
		total, perPage, page      int
		wantPages, wantStart, end int
	}{
		{"page size just below total", math.MaxInt, math.MaxInt - 1, 2, 2, math.MaxInt - 1, math.MaxInt},
		{"half of max int", math.MaxInt, math.MaxInt / 2, 3, 3, math.MaxInt - 1, math.MaxInt},
		{"max page size", 10, math.MaxInt, 5, 1, 0, 10},
		{"max total, unit pages", math.MaxInt, 1, math.MaxInt, math.MaxInt, math.MaxInt - 1, math.MaxInt},
		{"min page", math.MaxInt, 7, math.MinInt, math.MaxInt / 7, 0, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Compute(tt.total, tt.perPage, tt.page)
			assert.Equal(t, tt.wantPages, st.TotalPages)
			assert.Equal(t, tt.wantStart, st.StartIndex)
			assert.Equal(t, tt.end, st.EndIndex)
			assert.LessOrEqual(t, st.StartIndex, st.EndIndex)
			assert.LessOrEqual(t, st.EndIndex, st.TotalItems)
		})
	}
}

func TestPageRange_EllipsisKeysAreUnique(t *testing.T) {
	for page := 1; page <= 40; page++ {
		seen := make(map[string]bool)
		for _, it := range PageRange(page, 40) {
			require.False(t, seen[it.Key()], "duplicate key %q at page %d", it.Key(), page)
			seen[it.Key()] = true
		}
	}
}

func TestItem(t *testing.T) {
	p := PageItem(4)
	assert.False(t, p.IsEllipsis())
	assert.Equal(t, 4, p.Page())
	assert.Equal(t, "4", p.String())
	assert.Equal(t, "page-4", p.Key())

	e := EllipsisItem(Left)
	assert.True(t, e.IsEllipsis())
	assert.Equal(t, 0, e.Page())
	assert.Equal(t, Left, e.Side())
	assert.Equal(t, "…", e.String())
	assert.Equal(t, "ellipsis-left", e.Key())
	assert.Equal(t, "ellipsis-right", EllipsisItem(Right).Key())
}

func TestSlice(t *testing.T) {
	items := make([]int, 95)
	for i := range items {
		items[i] = i
	}

	page := Slice(items, Compute(len(items), 10, 10))
	assert.Equal(t, []int{90, 91, 92, 93, 94}, page)

	assert.Empty(t, Slice(items[:3], Compute(95, 10, 5)))
	assert.Empty(t, Slice([]int(nil), Compute(0, 10, 1)))
}
