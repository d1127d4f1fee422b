package listquery

// PagerWidth is the number of page buttons the pager shows.
const PagerWidth = 5

// TotalPages returns the page count for total items, never less than 1.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// PageWindow returns the page numbers to show around current. The window
// has at most width pages, slides with current, and sticks to both ends.
func PageWindow(current, totalPages, width int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	if width < 1 {
		width = 1
	}
	current = min(max(current, 1), totalPages)

	n := min(width, totalPages)
	start := current - width/2
	start = max(start, 1)
	start = min(start, totalPages-n+1)

	pages := make([]int, n)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}

// Paginate returns the page of items selected by page and size. It serves
// endpoints that return whole collections.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		return items
	}
	start := (max(page, 1) - 1) * size
	if start >= len(items) {
		return nil
	}
	end := min(start+size, len(items))
	return items[start:end]
}
