package listview

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Ellipsis marks a collapsed gap in a page-number window.
const Ellipsis = 0

type Paged[T any] struct {
	Items []T
	Meta  Page
}

// Paginate cuts records[(page-1)*limit : page*limit]. Out-of-range pages
// yield no items; it does not clamp, see ClampPage.
func Paginate[T any](records []T, page, limit int) Paged[T] {
	if limit < 1 {
		limit = DefaultLimit
	}
	n := len(records)

	start := (page - 1) * limit
	end := page * limit
	start = min(max(start, 0), n)
	end = min(max(end, start), n)

	items := make([]T, end-start)
	copy(items, records[start:end])

	return Paged[T]{
		Items: items,
		Meta: Page{
			CurrentPage: page,
			TotalPages:  TotalPages(n, limit),
			TotalCount:  n,
			Limit:       limit,
		},
	}
}

func TotalPages(count, limit int) int {
	if limit < 1 || count <= 0 {
		return 0
	}
	return (count + limit - 1) / limit
}

// ClampPage keeps page inside [1, totalPages]. Zero pages count as one
// empty page.
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// PageWindow lists the page numbers to render: the first, the last, the
// current one and its direct neighbours. Gaps collapse into Ellipsis.
func PageWindow(current, totalPages int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	current = ClampPage(current, totalPages)

	window := make([]int, 0, 7)
	for p := 1; p <= totalPages; p++ {
		if p == 1 || p == totalPages || (p >= current-1 && p <= current+1) {
			window = append(window, p)
			continue
		}
		if window[len(window)-1] != Ellipsis {
			window = append(window, Ellipsis)
		}
	}
	return window
}
