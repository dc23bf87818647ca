package pipeline

import (
	"fmt"
	"sort"
)

// OneHotEncoder encodes one categorical column as indicator columns.
// Categories are sorted and the first one is dropped, so the reference
// category encodes to all zeros.
type OneHotEncoder struct {
	Column     string
	Categories []string

	index map[string]int
}

// NewOneHotEncoder creates an unfitted encoder for column
func NewOneHotEncoder(column string) *OneHotEncoder {
	return &OneHotEncoder{Column: column}
}

// Fit learns the category set from values
func (e *OneHotEncoder) Fit(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("encoder %q: %w", e.Column, ErrEmptyTable)
	}
	seen := make(map[string]bool)
	cats := []string{}
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			cats = append(cats, v)
		}
	}
	sort.Strings(cats)

	e.Categories = cats
	e.index = make(map[string]int, len(cats))
	for i, c := range cats {
		e.index[c] = i
	}
	return nil
}

// Reference is the dropped category
func (e *OneHotEncoder) Reference() string {
	if len(e.Categories) == 0 {
		return ""
	}
	return e.Categories[0]
}

// Width is the number of output columns
func (e *OneHotEncoder) Width() int {
	if len(e.Categories) == 0 {
		return 0
	}
	return len(e.Categories) - 1
}

// FeatureNames returns column_category for every output column
func (e *OneHotEncoder) FeatureNames() []string {
	if e.Width() == 0 {
		return nil
	}
	names := make([]string, 0, e.Width())
	for _, c := range e.Categories[1:] {
		names = append(names, e.Column+"_"+c)
	}
	return names
}

// EncodeTo writes the indicators for v into dst, which must have Width() slots
func (e *OneHotEncoder) EncodeTo(dst []float64, v string) error {
	i, ok := e.index[v]
	if !ok {
		return fmt.Errorf("%w: column %q value %q", ErrUnknownCategory, e.Column, v)
	}
	for j := range dst {
		dst[j] = 0
	}
	if i > 0 {
		dst[i-1] = 1
	}
	return nil
}
