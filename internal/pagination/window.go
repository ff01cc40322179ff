// Package pagination computes which page numbers to display for paged
// listings and tracks the contiguous result range shown for the current
// page. It is pure state arithmetic, decoupled from fetching.
package pagination

// PerPage is the number of result-range items per page used by the
// range calculations.
const PerPage = 5

// Range is the 1-based inclusive span of items shown for a page.
type Range struct {
	Start int
	End   int
}

// Window returns the ordered page numbers to render for the given
// current page and total page count.
//
// When totalPages > 5, three independent if-rules each append their run
// of page numbers: pinned-to-start while currentPage < 3, a centered
// five-page run while currentPage+2 still fits, and pinned-to-end for
// the final two pages. The rules are written as separate appends, not
// an if/else chain, exactly as shipped; their conditions happen to be
// disjoint, so the result is always a single five-page run.
func Window(currentPage, totalPages int) []int {
	var pages []int

	if totalPages <= 5 {
		for i := 1; i <= totalPages; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	if currentPage < 3 {
		for i := 1; i <= 5; i++ {
			pages = append(pages, i)
		}
	}

	if currentPage >= 3 && currentPage+2 <= totalPages {
		for i := currentPage - 2; i <= currentPage+2; i++ {
			pages = append(pages, i)
		}
	}

	if currentPage > totalPages-2 {
		for i := totalPages - 4; i <= totalPages; i++ {
			pages = append(pages, i)
		}
	}

	return pages
}

// PageRange returns the result range for page p.
func PageRange(p, totalItems int) Range {
	end := p * PerPage
	if totalItems > 0 && end > totalItems {
		end = totalItems
	}
	return Range{Start: (p-1)*PerPage + 1, End: end}
}

// Navigator holds the paging state for one listing. The caller feeds in
// TotalPages and TotalItems from the page envelope and reads back
// CurrentPage and ResultRange after each navigation.
type Navigator struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
	ResultRange Range
}

// NewNavigator starts on page 1 with the first result range.
func NewNavigator(totalPages, totalItems int) *Navigator {
	return &Navigator{
		CurrentPage: 1,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		ResultRange: Range{Start: 1, End: PerPage},
	}
}

// Window returns the page numbers to render for the current position.
func (n *Navigator) Window() []int {
	return Window(n.CurrentPage, n.TotalPages)
}

// First jumps to page 1. Returns whether the page changed; the view
// returns to the top of the listing on every call either way.
func (n *Navigator) First() bool {
	if n.CurrentPage == 1 {
		return false
	}
	n.ResultRange = Range{Start: 1, End: PerPage}
	n.CurrentPage = 1
	return true
}

// Last jumps to the last page. No-op when already there.
func (n *Navigator) Last() bool {
	if n.CurrentPage == n.TotalPages {
		return false
	}
	n.ResultRange = Range{Start: n.TotalPages*PerPage - 4, End: n.TotalItems}
	n.CurrentPage = n.TotalPages
	return true
}

// Select moves to page p. Pages 1 and TotalPages delegate to First and
// Last so the boundary ranges stay consistent.
func (n *Navigator) Select(p int) bool {
	switch p {
	case 1:
		return n.First()
	case n.TotalPages:
		return n.Last()
	default:
		n.ResultRange = Range{Start: (p-1)*PerPage + 1, End: p * PerPage}
		n.CurrentPage = p
		return true
	}
}
