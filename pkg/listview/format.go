package listview

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	NA      = "N/A"
	Unknown = "Unknown"

	DayLayout      = "2006-01-02"
	DateLayout     = "02/01/2006"
	DateTimeLayout = "02 Jan 2006, 03:04 pm"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	DayLayout,
}

// ParseTimestamp accepts the timestamp shapes the API emits. Values
// without a zone are read as UTC.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Coalesce returns the first value that is not blank, or "".
func Coalesce(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Or returns v, or fallback when v is blank.
func Or(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

type Details map[string]any

// ParseDetails decodes a JSON object stored in a string field. Anything
// that is not a valid JSON object yields an empty map.
func ParseDetails(raw string) Details {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Details{}
	}
	var d Details
	if err := json.Unmarshal([]byte(raw), &d); err != nil || d == nil {
		return Details{}
	}
	return d
}

// Text returns the first key holding a non-empty scalar.
func (d Details) Text(keys ...string) string {
	for _, k := range keys {
		if s := scalarString(d[k]); s != "" {
			return s
		}
	}
	return ""
}

// Object returns a nested object, or an empty one.
func (d Details) Object(key string) Details {
	if m, ok := d[key].(map[string]any); ok {
		return Details(m)
	}
	return Details{}
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

// FormatDate renders raw in loc with layout, or "N/A".
func FormatDate(raw string, loc *time.Location, layout string) string {
	t, ok := ParseTimestamp(raw)
	if !ok {
		return NA
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(layout)
}

// Humanize turns snake_case codes into words.
func Humanize(code string) string {
	return strings.ReplaceAll(code, "_", " ")
}

func Upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// Capitalize upper-cases the first letter of each word and keeps the rest.
func Capitalize(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(s)
}
