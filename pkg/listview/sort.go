package listview

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Sort returns a new slice ordered by spec. Timestamps compare as epoch
// milliseconds, numbers numerically and everything else as lower-cased
// text; unparsable timestamps and numbers count as 0. Equal keys keep a
// deterministic order: by record id, then by input position.
//
// An unknown field or order falls back to the schema default.
func Sort[T any](records []T, schema Schema[T], spec SortSpec) []T {
	spec = resolveSort(schema, spec)
	f, ok := schema.field(spec.Field)
	if !ok {
		return slices.Clone(records)
	}

	keyed := make([]sortEntry[T], len(records))
	for i, r := range records {
		keyed[i] = sortEntry[T]{record: r, key: keyOf(f, r), id: schema.id(r)}
	}

	desc := spec.Order == Desc
	slices.SortStableFunc(keyed, func(a, b sortEntry[T]) int {
		c := compareKeys(f.Kind, a.key, b.key)
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.id, b.id)
	})

	out := make([]T, len(keyed))
	for i, e := range keyed {
		out[i] = e.record
	}
	return out
}

func resolveSort[T any](schema Schema[T], spec SortSpec) SortSpec {
	if _, ok := schema.field(spec.Field); !ok {
		spec.Field = schema.DefaultSort.Field
		if spec.Order == "" {
			spec.Order = schema.DefaultSort.Order
		}
	}
	if spec.Order != Asc && spec.Order != Desc {
		spec.Order = schema.DefaultSort.Order
	}
	if spec.Order != Asc && spec.Order != Desc {
		spec.Order = Asc
	}
	return spec
}

type sortKey struct {
	num  float64
	text string
}

type sortEntry[T any] struct {
	record T
	key    sortKey
	id     string
}

func keyOf[T any](f Field[T], r T) sortKey {
	raw := f.Get(r)
	switch f.Kind {
	case Time:
		ts, ok := ParseTimestamp(raw)
		if !ok {
			return sortKey{}
		}
		return sortKey{num: float64(ts.UnixMilli())}
	case Number:
		return sortKey{num: ParseNumber(raw)}
	default:
		return sortKey{text: strings.ToLower(raw)}
	}
}

func compareKeys(kind Kind, a, b sortKey) int {
	if kind == Time || kind == Number {
		return cmp.Compare(a.num, b.num)
	}
	return strings.Compare(a.text, b.text)
}

// ParseNumber reads a numeric field. Anything that is not a finite number
// reads as 0.
func ParseNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
