package features

import (
	"errors"
	"fmt"
)

// ErrSchemaMismatch is returned when a vector's width differs from what the
// classifier expects.
var ErrSchemaMismatch = errors.New("feature count mismatch")

// Vector is one value per schema column, in schema order.
type Vector []float64

// Schema is the ordered list of feature columns the classifier was trained on.
type Schema struct {
	columns []string
	index   map[string]int
}

// NewSchema builds a schema from column names. Names must be unique and
// non-empty.
func NewSchema(columns []string) (*Schema, error) {
	s := &Schema{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range s.columns {
		if c == "" {
			return nil, fmt.Errorf("schema column %d: empty name", i)
		}
		if _, dup := s.index[c]; dup {
			return nil, fmt.Errorf("schema column %q: duplicate", c)
		}
		s.index[c] = i
	}
	return s, nil
}

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.columns) }

// Columns returns a copy of the column names.
func (s *Schema) Columns() []string { return append([]string(nil), s.columns...) }

// Column returns the name at position i.
func (s *Schema) Column(i int) string { return s.columns[i] }

// Index returns the position of a column and whether it exists.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Align orders values by schema. Columns absent from values are 0; values
// that name no schema column are dropped. The result always has Len() entries.
func (s *Schema) Align(values Values) Vector {
	v := make(Vector, len(s.columns))
	for i, c := range s.columns {
		v[i] = values[c]
	}
	return v
}

// Missing returns the schema columns values does not provide, in schema order.
func (s *Schema) Missing(values Values) []string {
	var out []string
	for _, c := range s.columns {
		if _, ok := values[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}

// Validate checks that v has exactly width entries.
func Validate(v Vector, width int) error {
	if len(v) != width {
		return fmt.Errorf("%w: got %d features, model expects %d", ErrSchemaMismatch, len(v), width)
	}
	return nil
}
