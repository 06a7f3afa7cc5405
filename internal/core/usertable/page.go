package usertable

// PageSizes lists the rows-per-page choices offered by the table.
var PageSizes = []int{5, 10, 25}

// DefaultPageSize is the page size of a freshly mounted table.
const DefaultPageSize = 5

// PageState selects the window of rows that is rendered.
type PageState struct {
	Index int
	Size  int
}

// DefaultPageState is the first page at DefaultPageSize.
func DefaultPageState() PageState {
	return PageState{Index: 0, Size: DefaultPageSize}
}

// NormalizePageSize maps size onto the closest entry of PageSizes. Ties
// resolve to the smaller size.
func NormalizePageSize(size int) int {
	best := PageSizes[0]
	bestDistance := distance(size, best)
	for _, candidate := range PageSizes[1:] {
		if d := distance(size, candidate); d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}
	return best
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

func (p PageState) size() int {
	if p.Size <= 0 {
		return DefaultPageSize
	}
	return p.Size
}

// Range returns the half-open row interval [start, end) for the page,
// clipped to total. Out-of-range pages yield start == end.
func (p PageState) Range(total int) (start, end int) {
	if total <= 0 || p.Index < 0 {
		return 0, 0
	}
	if p.Index >= p.PageCount(total) {
		return total, total
	}
	size := p.size()
	start = p.Index * size
	end = start + size
	if end > total {
		end = total
	}
	return start, end
}

// PageCount returns the number of pages needed for total rows.
func (p PageState) PageCount(total int) int {
	if total <= 0 {
		return 0
	}
	size := p.size()
	return (total + size - 1) / size
}

// LastPage returns the index of the final page, 0 when there are no rows.
func (p PageState) LastPage(total int) int {
	if count := p.PageCount(total); count > 0 {
		return count - 1
	}
	return 0
}

// HasPrev reports whether a previous page exists.
func (p PageState) HasPrev() bool {
	return p.Index > 0
}

// HasNext reports whether rows exist after this page.
func (p PageState) HasNext(total int) bool {
	return p.Index < p.PageCount(total)-1
}

// Displayed returns the 1-based first and last row numbers shown for the
// "from–to of total" label. Both are 0 when the page is empty.
func (p PageState) Displayed(total int) (from, to int) {
	start, end := p.Range(total)
	if start == end {
		return 0, 0
	}
	return start + 1, end
}
