package listview

type Result[T any] struct {
	Items []T
	Meta  Page
	// Pages is the page-number window for Meta.CurrentPage.
	Pages []int
}

// Run takes a record store through Filter, Sort and Paginate. The
// requested page is clamped to the pages that actually exist.
func Run[T any](records []T, schema Schema[T], q Query) Result[T] {
	filtered := Filter(records, schema, q.Filter)
	sorted := Sort(filtered, schema, q.Sort)

	limit := q.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	page := ClampPage(q.Page, TotalPages(len(sorted), limit))

	paged := Paginate(sorted, page, limit)
	return Result[T]{
		Items: paged.Items,
		Meta:  paged.Meta,
		Pages: PageWindow(page, paged.Meta.TotalPages),
	}
}

// Select runs Filter and Sort only. It is the input of an export, which
// always covers every matching record.
func Select[T any](records []T, schema Schema[T], q Query) []T {
	return Sort(Filter(records, schema, q.Filter), schema, q.Sort)
}

// Counts tallies records per requested value of a field or facet. Values
// that were not requested are never reported.
func Counts[T any](records []T, schema Schema[T], name string, values ...string) map[string]int {
	counts := make(map[string]int)
	if facet, ok := schema.Facets[name]; ok && facet != nil {
		for _, v := range values {
			counts[v] = 0
		}
		for _, r := range records {
			for _, v := range values {
				if facet(r, v) {
					counts[v]++
				}
			}
		}
		return counts
	}
	f, ok := schema.field(name)
	if !ok {
		return counts
	}
	for _, v := range values {
		counts[v] = 0
	}
	for _, r := range records {
		if _, wanted := counts[f.Get(r)]; wanted {
			counts[f.Get(r)]++
		}
	}
	return counts
}
