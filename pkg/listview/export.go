package listview

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

var (
	ErrNothingToExport  = errors.New("No records to export")
	ErrNoFieldsSelected = errors.New("Select at least one field to export")
)

// ExportField is one column of an export: a stable id, the header label
// and a formatter. Formatters are pure functions of the record.
type ExportField[T any] struct {
	ID     string
	Label  string
	Format func(T) string
}

type FieldMap[T any] []ExportField[T]

// Select keeps the fields whose ids are listed, in field-map order.
func (m FieldMap[T]) Select(ids []string) (FieldMap[T], error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			wanted[id] = true
		}
	}
	if len(wanted) == 0 {
		return nil, ErrNoFieldsSelected
	}

	out := make(FieldMap[T], 0, len(wanted))
	for _, f := range m {
		if wanted[f.ID] {
			out = append(out, f)
			delete(wanted, f.ID)
		}
	}
	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for id := range wanted {
			unknown = append(unknown, id)
		}
		return nil, fmt.Errorf("unknown export fields: %s", strings.Join(unknown, ", "))
	}
	return out, nil
}

func (m FieldMap[T]) Labels() []string {
	labels := make([]string, len(m))
	for i, f := range m {
		labels[i] = f.Label
	}
	return labels
}

// Table is a materialised export: labels plus one formatted row per record.
type Table struct {
	Header []string
	Rows   [][]string
}

// Project formats records through fields. An empty record set is an
// error so that no empty file is ever produced.
func Project[T any](records []T, fields FieldMap[T]) (Table, error) {
	if len(records) == 0 {
		return Table{}, ErrNothingToExport
	}
	if len(fields) == 0 {
		return Table{}, ErrNoFieldsSelected
	}

	t := Table{Header: fields.Labels(), Rows: make([][]string, 0, len(records))}
	for _, r := range records {
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = safeFormat(f, r)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func safeFormat[T any](f ExportField[T], r T) (out string) {
	if f.Format == nil {
		return NA
	}
	defer func() {
		if recover() != nil {
			out = NA
		}
	}()
	return f.Format(r)
}

// WriteCSV writes t with every cell double-quoted and inner quotes
// doubled. Rows are joined with "\n" and there is no trailing newline.
func WriteCSV(w io.Writer, t Table) error {
	bw := bufio.NewWriter(w)
	writeRow := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteByte('"')
			bw.WriteString(strings.ReplaceAll(c, `"`, `""`))
			bw.WriteByte('"')
		}
	}

	writeRow(t.Header)
	for _, row := range t.Rows {
		bw.WriteByte('\n')
		writeRow(row)
	}
	return bw.Flush()
}

// ExportFileName builds <entity>_<YYYY-MM-DD>.<ext> using the date in loc.
func ExportFileName(entity string, now time.Time, loc *time.Location, ext string) string {
	if loc == nil {
		loc = time.UTC
	}
	if ext == "" {
		ext = "csv"
	}
	return fmt.Sprintf("%s_%s.%s", entity, now.In(loc).Format(DayLayout), ext)
}
