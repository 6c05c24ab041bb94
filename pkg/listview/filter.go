package listview

import (
	"strings"
	"time"
)

// Filter keeps the records that pass every active predicate of spec.
// Records is never modified and the result is always a new slice.
func Filter[T any](records []T, schema Schema[T], spec FilterSpec) []T {
	preds := buildPredicates(schema, spec)

	out := make([]T, 0, len(records))
	for _, r := range records {
		if matchAll(r, preds) {
			out = append(out, r)
		}
	}
	return out
}

type predicate[T any] func(T) bool

func matchAll[T any](r T, preds []predicate[T]) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

func buildPredicates[T any](schema Schema[T], spec FilterSpec) []predicate[T] {
	var preds []predicate[T]

	if q := strings.ToLower(strings.TrimSpace(spec.Search)); q != "" {
		preds = append(preds, searchPredicate(schema, q))
	}

	for name, value := range spec.Equals {
		if value == "" || value == AllValues {
			continue
		}
		if facet, ok := schema.Facets[name]; ok && facet != nil {
			v := value
			preds = append(preds, func(r T) bool { return facet(r, v) })
			continue
		}
		if f, ok := schema.field(name); ok {
			get, v := f.Get, value
			preds = append(preds, func(r T) bool { return get(r) == v })
		}
		// unknown fields are ignored
	}

	if !spec.Range.IsZero() {
		if p, ok := datePredicate(schema, spec); ok {
			preds = append(preds, p)
		}
	}

	return preds
}

func searchPredicate[T any](schema Schema[T], q string) predicate[T] {
	getters := make([]func(T) string, 0, len(schema.Search))
	for _, name := range schema.Search {
		if f, ok := schema.field(name); ok {
			getters = append(getters, f.Get)
		}
	}
	return func(r T) bool {
		for _, get := range getters {
			if strings.Contains(strings.ToLower(get(r)), q) {
				return true
			}
		}
		return false
	}
}

func datePredicate[T any](schema Schema[T], spec FilterSpec) (predicate[T], bool) {
	name := spec.Range.Field
	if name == "" {
		name = schema.DateField
	}
	f, ok := schema.field(name)
	if !ok {
		return nil, false
	}

	loc := spec.Location
	if loc == nil {
		loc = time.UTC
	}

	from, hasFrom := parseDay(spec.Range.From)
	to, hasTo := parseDay(spec.Range.To)
	if !hasFrom && !hasTo {
		return nil, false
	}

	return func(r T) bool {
		ts, ok := ParseTimestamp(f.Get(r))
		if !ok {
			return false
		}
		day := dayOf(ts.In(loc))
		if hasFrom && day < from {
			return false
		}
		if hasTo && day > to {
			return false
		}
		return true
	}, true
}

// day is a calendar date packed as yyyymmdd so that days compare as ints.
type day int

func dayOf(t time.Time) day {
	y, m, d := t.Date()
	return day(y*10000 + int(m)*100 + d)
}

// IsDay reports whether s is a usable date-range bound.
func IsDay(s string) bool {
	_, ok := parseDay(s)
	return ok
}

// parseDay reads a YYYY-MM-DD bound. A bound carrying a time part is
// truncated to its date.
func parseDay(s string) (day, bool) {
	s = strings.TrimSpace(s)
	if len(s) > len(DayLayout) {
		s = s[:len(DayLayout)]
	}
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return 0, false
	}
	return dayOf(t), true
}
