package listview

// Kind selects how a field is compared when sorting and how it is read
// by the date-range filter.
type Kind int

const (
	Text Kind = iota
	Number
	Time
)

// Field reads one value out of a record. Get must never panic; a missing
// value is the empty string.
type Field[T any] struct {
	Kind Kind
	Get  func(T) string
}

// Facet is a categorical predicate that is not plain equality, e.g. a tab
// that groups several raw values together.
type Facet[T any] func(record T, value string) bool

// Schema configures the pipeline for one entity.
type Schema[T any] struct {
	Fields map[string]Field[T]
	// Search lists the fields the free-text query is matched against.
	Search []string
	Facets map[string]Facet[T]
	// DateField is used by the date-range filter when the range names none.
	DateField   string
	DefaultSort SortSpec
	// ID returns the unique identity of a record. It is the tie-break for
	// equal sort keys.
	ID func(T) string
}

func (s Schema[T]) field(name string) (Field[T], bool) {
	f, ok := s.Fields[name]
	if !ok || f.Get == nil {
		return Field[T]{}, false
	}
	return f, true
}

func (s Schema[T]) id(record T) string {
	if s.ID == nil {
		return ""
	}
	return s.ID(record)
}

// HasField reports whether name is a sortable or filterable field.
func (s Schema[T]) HasField(name string) bool {
	_, ok := s.field(name)
	if ok {
		return true
	}
	_, ok = s.Facets[name]
	return ok
}

// IsDateField reports whether name is a timestamp field a date range can
// apply to. The empty name stands for the default date field.
func (s Schema[T]) IsDateField(name string) bool {
	if name == "" {
		name = s.DateField
	}
	f, ok := s.field(name)
	return ok && f.Kind == Time
}
