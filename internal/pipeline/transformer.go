package pipeline

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ColumnTransformer applies one-hot encoding to categorical columns and
// standardization to numeric columns, concatenating the encoded block
// before the scaled block.
type ColumnTransformer struct {
	Encoders []*OneHotEncoder
	Scalers  []*StandardScaler
}

// NewColumnTransformer creates an unfitted transformer
func NewColumnTransformer(categorical, numeric []string) *ColumnTransformer {
	ct := &ColumnTransformer{}
	for _, c := range categorical {
		ct.Encoders = append(ct.Encoders, NewOneHotEncoder(c))
	}
	for _, c := range numeric {
		ct.Scalers = append(ct.Scalers, NewStandardScaler(c))
	}
	return ct
}

// Fit learns categories and scaling statistics from t
func (ct *ColumnTransformer) Fit(t Table) error {
	for _, e := range ct.Encoders {
		values, err := t.Strings(e.Column)
		if err != nil {
			return err
		}
		if err := e.Fit(values); err != nil {
			return err
		}
	}
	for _, s := range ct.Scalers {
		values, err := t.Floats(s.Column)
		if err != nil {
			return err
		}
		if err := s.Fit(values); err != nil {
			return err
		}
	}
	return nil
}

// Width is the number of transformed columns
func (ct *ColumnTransformer) Width() int {
	w := len(ct.Scalers)
	for _, e := range ct.Encoders {
		w += e.Width()
	}
	return w
}

// FeatureNames lists the transformed columns in output order
func (ct *ColumnTransformer) FeatureNames() []string {
	names := make([]string, 0, ct.Width())
	for _, e := range ct.Encoders {
		names = append(names, e.FeatureNames()...)
	}
	for _, s := range ct.Scalers {
		names = append(names, s.Column)
	}
	return names
}

// Transform builds the design matrix for t, one row per observation
func (ct *ColumnTransformer) Transform(t Table) (*mat.Dense, error) {
	n := t.Len()
	if n == 0 {
		return nil, ErrEmptyTable
	}
	width := ct.Width()
	if width == 0 {
		return nil, ErrNoFeatures
	}
	data := make([]float64, n*width)

	offset := 0
	for _, e := range ct.Encoders {
		values, err := t.Strings(e.Column)
		if err != nil {
			return nil, err
		}
		if len(values) != n {
			return nil, lengthError(e.Column, len(values), n)
		}
		w := e.Width()
		for i, v := range values {
			start := i*width + offset
			if err := e.EncodeTo(data[start:start+w], v); err != nil {
				return nil, err
			}
		}
		offset += w
	}
	for _, s := range ct.Scalers {
		values, err := t.Floats(s.Column)
		if err != nil {
			return nil, err
		}
		if len(values) != n {
			return nil, lengthError(s.Column, len(values), n)
		}
		for i, v := range values {
			data[i*width+offset] = s.Transform(v)
		}
		offset++
	}

	return mat.NewDense(n, width, data), nil
}

func lengthError(column string, got, want int) error {
	return fmt.Errorf("column %q has %d values, table has %d rows", column, got, want)
}
