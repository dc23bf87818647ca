package pipeline

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler rescales one numeric column to zero mean and unit variance
// using the population standard deviation of the fitting data.
type StandardScaler struct {
	Column string
	Mean   float64
	Scale  float64
}

// NewStandardScaler creates an unfitted scaler for column
func NewStandardScaler(column string) *StandardScaler {
	return &StandardScaler{Column: column, Scale: 1}
}

// Fit computes mean and scale. A constant column keeps scale 1.
func (s *StandardScaler) Fit(values []float64) error {
	n := len(values)
	if n == 0 {
		return fmt.Errorf("scaler %q: %w", s.Column, ErrEmptyTable)
	}
	if !allFinite(values) {
		return fmt.Errorf("%w: column %q has non-finite values", ErrInvalidValue, s.Column)
	}

	s.Mean = stat.Mean(values, nil)
	s.Scale = 1
	if n > 1 {
		_, variance := stat.PopMeanVariance(values, nil)
		if std := math.Sqrt(variance); std > 0 {
			s.Scale = std
		}
	}
	return nil
}

// Transform standardizes a single value
func (s *StandardScaler) Transform(v float64) float64 {
	return (v - s.Mean) / s.Scale
}
