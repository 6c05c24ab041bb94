package listview

import "time"

// AllValues is the equality sentinel that disables a filter.
const AllValues = "all"

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// DateRange bounds a timestamp field by calendar day. From and To are
// YYYY-MM-DD strings; an empty bound is open-ended.
type DateRange struct {
	Field string `json:"field,omitempty"`
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
}

func (r DateRange) IsZero() bool {
	return r.From == "" && r.To == ""
}

type FilterSpec struct {
	Search string            `json:"search,omitempty"`
	Equals map[string]string `json:"equals,omitempty"`
	Range  DateRange         `json:"range,omitempty"`
	// Location decides where a day starts and ends. Nil means UTC.
	Location *time.Location `json:"-"`
}

type SortSpec struct {
	Field string `json:"field"`
	Order Order  `json:"order"`
}

// Page is derived paging metadata; it is never stored.
type Page struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalCount  int `json:"totalCount"`
	Limit       int `json:"limit"`
}

// Query is the full view state of a list: what to keep, how to order it
// and which page to show.
type Query struct {
	Filter FilterSpec `json:"filter"`
	Sort   SortSpec   `json:"sort"`
	Page   int        `json:"page"`
	Limit  int        `json:"limit"`
}

// WithFilter returns a copy of q with a new filter. Changing the filter
// always sends the view back to the first page.
func (q Query) WithFilter(f FilterSpec) Query {
	q.Filter = f
	q.Page = 1
	return q
}

// WithSort returns a copy of q with a new sort and the page reset to 1.
func (q Query) WithSort(s SortSpec) Query {
	q.Sort = s
	q.Page = 1
	return q
}
