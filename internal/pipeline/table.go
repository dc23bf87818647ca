package pipeline

import (
	"fmt"
	"sort"

	"github.com/spf13/cast"
)

// Table is column-oriented tabular input. Columns are looked up by name.
type Table interface {
	Len() int
	Strings(column string) ([]string, error)
	Floats(column string) ([]float64, error)
}

// Row is a single observation keyed by column name. Categorical values
// are coerced to strings and numeric values to float64.
type Row map[string]interface{}

// Len implements Table
func (r Row) Len() int { return 1 }

// Strings implements Table
func (r Row) Strings(column string) ([]string, error) {
	v, ok := r[column]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, column)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return nil, fmt.Errorf("column %q: %v", column, err)
	}
	return []string{s}, nil
}

// Floats implements Table
func (r Row) Floats(column string) ([]float64, error) {
	v, ok := r[column]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, column)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return nil, fmt.Errorf("%w: column %q: %v", ErrInvalidValue, column, err)
	}
	return []float64{f}, nil
}

// checkColumns verifies the row holds exactly the expected columns
func (r Row) checkColumns(expected []string) error {
	want := make(map[string]bool, len(expected))
	for _, c := range expected {
		want[c] = true
		if _, ok := r[c]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
	}
	var extra []string
	for c := range r {
		if !want[c] {
			extra = append(extra, c)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return fmt.Errorf("%w: %q", ErrUnexpectedColumn, extra)
	}
	return nil
}
