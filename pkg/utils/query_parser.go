package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "warranty-console/pkg/errors"
	"warranty-console/pkg/listview"
)

const (
	DefaultLimit = listview.DefaultLimit
	MaxLimit     = listview.MaxLimit
)

// reserved keys are never read as equality filters.
var reserved = map[string]bool{
	"limit": true, "page": true, "offset": true, "search": true,
	"sort": true, "order": true, "date_from": true, "date_to": true, "date_field": true,
	"format": true, "fields": true, "fields[]": true, "facet": true, "type": true, "withPagination": true,
}

// ParseListQuery reads a list view state from the query string:
//
//	search=john&filter[status]=validated&status=validated
//	sort=created_at&order=desc | sort=-created_at | sort[created_at]=desc
//	date_from=2024-01-01&date_to=2024-01-31&date_field=created_at
//	page=2&limit=25 (or offset=25)
//
// Dates are calendar days interpreted in loc.
func ParseListQuery(values url.Values, loc *time.Location) (listview.Query, error) {
	q := listview.Query{
		Filter: listview.FilterSpec{
			Equals:   make(map[string]string),
			Location: loc,
		},
		Page:  1,
		Limit: DefaultLimit,
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			q.Limit = min(l, MaxLimit)
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			q.Page = p
		}
	} else if offsetStr := values.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			q.Page = o/q.Limit + 1
		}
	}

	q.Filter.Search = strings.TrimSpace(values.Get("search"))

	if sort := strings.TrimSpace(values.Get("sort")); sort != "" {
		if strings.HasPrefix(sort, "-") {
			q.Sort = listview.SortSpec{Field: sort[1:], Order: listview.Desc}
		} else {
			q.Sort = listview.SortSpec{Field: sort, Order: listview.Order(strings.ToLower(values.Get("order")))}
			if q.Sort.Order == "" {
				q.Sort.Order = listview.Asc
			}
		}
	}

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}

		if strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]") {
			direction := listview.Order(strings.ToLower(vals[0]))
			if direction == listview.Asc || direction == listview.Desc {
				q.Sort = listview.SortSpec{Field: key[5 : len(key)-1], Order: direction}
			}
			continue
		}

		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			q.Filter.Equals[key[7:len(key)-1]] = vals[0]
			continue
		}

		if !reserved[key] {
			q.Filter.Equals[key] = vals[0]
		}
	}

	q.Filter.Range = listview.DateRange{
		Field: values.Get("date_field"),
		From:  strings.TrimSpace(values.Get("date_from")),
		To:    strings.TrimSpace(values.Get("date_to")),
	}
	for name, bound := range map[string]string{"date_from": q.Filter.Range.From, "date_to": q.Filter.Range.To} {
		if bound != "" && !listview.IsDay(bound) {
			return q, apperrors.NewBadRequestError(fmt.Sprintf("%s must be a date in YYYY-MM-DD format", name))
		}
	}

	return q, nil
}

// ParseFields reads the selective-export field list. The second result is
// false when no selection was made at all.
func ParseFields(values url.Values) ([]string, bool) {
	raw, ok := values["fields"]
	if !ok {
		raw, ok = values["fields[]"]
	}
	if !ok {
		return nil, false
	}
	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out, true
}
