// Package views binds each console list to the pipeline: the schema that
// drives filtering and sorting, the export columns and the tab counters.
package views

import (
	"time"

	"warranty-console/pkg/listview"
)

// ExportOptions tune an export. Variant selects an alternative column
// set where a view has one.
type ExportOptions struct {
	Location *time.Location
	Variant  string
}

type View[T any] struct {
	// Name is the URL segment, the cache namespace and the export file stem.
	Name string
	// ResourceKey is the list key of the response envelope.
	ResourceKey string
	Schema      listview.Schema[T]
	// Export returns the columns and the file stem for opts.
	Export func(opts ExportOptions) (listview.FieldMap[T], string)
	// VariantField is the field or facet an export variant filters on.
	VariantField string
	// Counts lists, per field or facet, the values a counter exists for.
	Counts map[string][]string
}

// CountsFor tallies records for one counter group. ok is false when the
// view has no such group.
func (v View[T]) CountsFor(records []T, name string) (map[string]int, bool) {
	values, ok := v.Counts[name]
	if !ok {
		return nil, false
	}
	counts := listview.Counts(records, v.Schema, name, values...)
	counts[listview.AllValues] = len(records)
	return counts, true
}

func text[T any](get func(T) string) listview.Field[T] {
	return listview.Field[T]{Kind: listview.Text, Get: get}
}

func number[T any](get func(T) string) listview.Field[T] {
	return listview.Field[T]{Kind: listview.Number, Get: get}
}

func timestamp[T any](get func(T) string) listview.Field[T] {
	return listview.Field[T]{Kind: listview.Time, Get: get}
}

func column[T any](id, label string, format func(T) string) listview.ExportField[T] {
	return listview.ExportField[T]{ID: id, Label: label, Format: format}
}

func date(raw string, loc *time.Location) string {
	return listview.FormatDate(raw, loc, listview.DateLayout)
}

func dateTime(raw string, loc *time.Location) string {
	return listview.FormatDate(raw, loc, listview.DateTimeLayout)
}

func na(values ...string) string {
	return listview.Or(listview.Coalesce(values...), listview.NA)
}
