// Package pipeline fits and applies a one-hot + standardize + ordinary
// least squares regression pipeline over named tabular columns.
package pipeline

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrUnknownCategory  = errors.New("unknown category")
	ErrMissingColumn    = errors.New("missing column")
	ErrUnexpectedColumn = errors.New("unexpected column")
	ErrInvalidValue     = errors.New("invalid value")
	ErrEmptyTable       = errors.New("empty table")
	ErrNoFeatures       = errors.New("no feature columns")
	ErrNotFitted        = errors.New("model is not fitted")
	ErrSolve            = errors.New("least squares solve failed")
)

// Spec names the columns a pipeline is fitted on
type Spec struct {
	Categorical []string
	Numeric     []string
	Target      string
}

// Features returns every feature column, categorical first
func (s Spec) Features() []string {
	out := make([]string, 0, len(s.Categorical)+len(s.Numeric))
	out = append(out, s.Categorical...)
	return append(out, s.Numeric...)
}

// Pipeline is a fitted transformer and regression pair
type Pipeline struct {
	Spec        Spec
	Transformer *ColumnTransformer
	Model       *LinearRegression
}

// Fit learns encodings, scaling statistics and regression weights from t
func Fit(t Table, spec Spec) (*Pipeline, error) {
	if len(spec.Features()) == 0 {
		return nil, ErrNoFeatures
	}
	if t.Len() == 0 {
		return nil, ErrEmptyTable
	}

	y, err := t.Floats(spec.Target)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	ct := NewColumnTransformer(spec.Categorical, spec.Numeric)
	if err := ct.Fit(t); err != nil {
		return nil, fmt.Errorf("fit transformer: %w", err)
	}
	X, err := ct.Transform(t)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}

	model := NewLinearRegression()
	if err := model.Fit(X, y); err != nil {
		return nil, fmt.Errorf("fit regression: %w", err)
	}

	return &Pipeline{Spec: spec, Transformer: ct, Model: model}, nil
}

// Transform returns the design matrix for t using the fitted encodings
func (p *Pipeline) Transform(t Table) (*mat.Dense, error) {
	return p.Transformer.Transform(t)
}

// Predict returns one prediction per row of t
func (p *Pipeline) Predict(t Table) ([]float64, error) {
	X, err := p.Transform(t)
	if err != nil {
		return nil, err
	}
	return p.Model.Predict(X)
}

// TransformRow returns the encoded feature vector of a single row.
// The row must contain exactly the feature columns.
func (p *Pipeline) TransformRow(row Row) ([]float64, error) {
	if err := row.checkColumns(p.Spec.Features()); err != nil {
		return nil, err
	}
	X, err := p.Transform(row)
	if err != nil {
		return nil, err
	}
	return mat.Row(nil, 0, X), nil
}

// PredictRow predicts a single row. The row must contain exactly the
// feature columns.
func (p *Pipeline) PredictRow(row Row) (float64, error) {
	if err := row.checkColumns(p.Spec.Features()); err != nil {
		return 0, err
	}
	pred, err := p.Predict(row)
	if err != nil {
		return 0, err
	}
	return pred[0], nil
}

// Score returns R² of the pipeline's predictions on t
func (p *Pipeline) Score(t Table) (float64, error) {
	y, err := t.Floats(p.Spec.Target)
	if err != nil {
		return 0, fmt.Errorf("target: %w", err)
	}
	pred, err := p.Predict(t)
	if err != nil {
		return 0, err
	}
	return R2(y, pred), nil
}

// FeatureNames lists the transformed columns the weights apply to
func (p *Pipeline) FeatureNames() []string {
	return p.Transformer.FeatureNames()
}

// Weight is the learned coefficient of one transformed column
type Weight struct {
	Feature string
	Value   float64
}

// Weights pairs every transformed column with its coefficient, in order
func (p *Pipeline) Weights() []Weight {
	names := p.FeatureNames()
	out := make([]Weight, len(names))
	for i, name := range names {
		out[i] = Weight{Feature: name, Value: p.Model.Coef[i]}
	}
	return out
}
