package grocery

import "github.com/mmynk/groceries/internal/models"

// DefaultPageSize is the number of rows per page.
const DefaultPageSize = 10

// Page is one window of the filtered view.
type Page struct {
	Items      []models.GroceryItem
	Number     int
	TotalPages int
}

// TotalPages returns ceil(n/size). An empty view still has one (empty) page.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if n == 0 {
		return 1
	}
	return (n + size - 1) / size
}

// clamp bounds page to [1, total].
func clamp(page, total int) int {
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// Paginate returns page number page of items. Out-of-range pages are clamped.
func Paginate(items []models.GroceryItem, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := TotalPages(len(items), size)
	page = clamp(page, total)

	start := (page - 1) * size
	end := min(start+size, len(items))

	window := make([]models.GroceryItem, end-start)
	copy(window, items[start:end])

	return Page{Items: window, Number: page, TotalPages: total}
}

// Paginator tracks the current page across recomputations of the view.
type Paginator struct {
	size    int
	current int
	total   int
}

// NewPaginator returns a paginator on page 1 of an empty view.
func NewPaginator(size int) *Paginator {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Paginator{size: size, current: 1, total: 1}
}

// Resize recomputes the page count for a view of n items and pulls the
// current page back into range.
func (p *Paginator) Resize(n int) {
	p.total = TotalPages(n, p.size)
	p.current = clamp(p.current, p.total)
}

// SetPage moves to page, clamped to the valid range, and returns the page.
func (p *Paginator) SetPage(page int) int {
	p.current = clamp(page, p.total)
	return p.current
}

// Next moves forward one page. No-op on the last page.
func (p *Paginator) Next() int {
	return p.SetPage(p.current + 1)
}

// Previous moves back one page. No-op on the first page.
func (p *Paginator) Previous() int {
	return p.SetPage(p.current - 1)
}

// Current returns the current page number.
func (p *Paginator) Current() int { return p.current }

// TotalPages returns the page count of the last resized view.
func (p *Paginator) TotalPages() int { return p.total }

// Size returns the page size.
func (p *Paginator) Size() int { return p.size }

// Window returns the current page of items.
func (p *Paginator) Window(items []models.GroceryItem) []models.GroceryItem {
	return Paginate(items, p.current, p.size).Items
}
