// Package dataset loads training tables into typed frames and checks them
// against a declared schema.
package dataset

import (
	"errors"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"student-score-predictor/internal/models"
	"student-score-predictor/internal/pipeline"
)

var (
	ErrSchemaMismatch = errors.New("dataset does not match schema")
	ErrMissingValues  = errors.New("dataset has missing values")
	ErrEmpty          = errors.New("dataset has no rows")
)

// missingValues are the cells read as missing. The literal "None" is
// kept as an ordinary category.
var missingValues = []string{"", "NA", "NaN", "<nil>"}

// Frame is a loaded training table that satisfies its schema
type Frame struct {
	df     dataframe.DataFrame
	schema models.Schema
	source string
}

func newFrame(df dataframe.DataFrame, schema models.Schema, source string) (*Frame, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("dataset %s: %w", source, df.Err)
	}
	f := &Frame{df: df, schema: schema, source: source}
	if err := f.check(); err != nil {
		return nil, fmt.Errorf("dataset %s: %w", source, err)
	}
	return f, nil
}

// loadOptions declares column types up front instead of detecting them
func loadOptions(schema models.Schema) []dataframe.LoadOption {
	types := make(map[string]series.Type, len(schema.Columns))
	for _, c := range schema.Columns {
		switch c.Kind {
		case models.KindNumeric, models.KindTarget:
			types[c.Name] = series.Float
		default:
			types[c.Name] = series.String
		}
	}
	return []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(types),
		dataframe.NaNValues(missingValues),
	}
}

func (f *Frame) check() error {
	present := make(map[string]bool)
	for _, name := range f.df.Names() {
		present[name] = true
	}
	for _, c := range f.schema.Columns {
		if !present[c.Name] {
			return fmt.Errorf("%w: missing column %q", ErrSchemaMismatch, c.Name)
		}
	}
	for _, name := range f.df.Names() {
		if _, ok := f.schema.Lookup(name); !ok {
			return fmt.Errorf("%w: unexpected column %q", ErrSchemaMismatch, name)
		}
	}

	if f.df.Nrow() == 0 {
		return ErrEmpty
	}

	for _, c := range f.schema.Columns {
		if c.Kind == models.KindIdentifier {
			continue
		}
		missing := 0
		for _, isNaN := range f.df.Col(c.Name).IsNaN() {
			if isNaN {
				missing++
			}
		}
		if missing > 0 {
			return fmt.Errorf("%w: column %q (%s) has %d missing or unparseable values",
				ErrMissingValues, c.Name, c.Kind, missing)
		}
	}
	return nil
}

// Source describes where the frame was loaded from
func (f *Frame) Source() string { return f.source }

// Schema returns the schema the frame was checked against
func (f *Frame) Schema() models.Schema { return f.schema }

// Len returns the number of rows
func (f *Frame) Len() int { return f.df.Nrow() }

// Strings returns a column as strings
func (f *Frame) Strings(column string) ([]string, error) {
	col, err := f.col(column)
	if err != nil {
		return nil, err
	}
	return col.Records(), nil
}

// Floats returns a column as float64 values
func (f *Frame) Floats(column string) ([]float64, error) {
	col, err := f.col(column)
	if err != nil {
		return nil, err
	}
	return col.Float(), nil
}

// Domain returns the distinct values of a column in order of first appearance
func (f *Frame) Domain(column string) ([]string, error) {
	values, err := f.Strings(column)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	domain := []string{}
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			domain = append(domain, v)
		}
	}
	return domain, nil
}

// PipelineSpec returns the pipeline columns declared by the frame's schema
func (f *Frame) PipelineSpec() pipeline.Spec {
	return pipeline.Spec{
		Categorical: f.schema.Categorical(),
		Numeric:     f.schema.Numeric(),
		Target:      f.schema.Target(),
	}
}

func (f *Frame) col(column string) (series.Series, error) {
	if _, ok := f.schema.Lookup(column); !ok {
		return series.Series{}, fmt.Errorf("%w: %q", pipeline.ErrMissingColumn, column)
	}
	col := f.df.Col(column)
	if col.Err != nil {
		return series.Series{}, fmt.Errorf("%w: %q: %v", pipeline.ErrMissingColumn, column, col.Err)
	}
	return col, nil
}
