package pipeline

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// rcond is the relative cutoff below which singular values are treated as zero
const rcond = 1e-12

// LinearRegression is an ordinary least squares model with intercept.
type LinearRegression struct {
	Coef      []float64
	Intercept float64
}

// NewLinearRegression creates an unfitted model
func NewLinearRegression() *LinearRegression {
	return &LinearRegression{}
}

// Fit solves min ||y - Xw - b||². X and y are centered first, then w is
// found with a thin SVD least squares solve, which yields the minimum norm
// solution when X is rank deficient.
func (m *LinearRegression) Fit(X mat.Matrix, y []float64) error {
	n, p := X.Dims()
	if n == 0 {
		return ErrEmptyTable
	}
	if p == 0 {
		return ErrNoFeatures
	}
	if len(y) != n {
		return fmt.Errorf("pipeline: %d targets for %d rows", len(y), n)
	}
	if !allFinite(y) {
		return fmt.Errorf("%w: target has non-finite values", ErrInvalidValue)
	}

	xMean := make([]float64, p)
	for j := 0; j < p; j++ {
		xMean[j] = stat.Mean(mat.Col(nil, j, X), nil)
	}
	yMean := stat.Mean(y, nil)

	xc := mat.NewDense(n, p, nil)
	xc.Apply(func(_, j int, v float64) float64 { return v - xMean[j] }, X)
	yc := make([]float64, n)
	for i, v := range y {
		yc[i] = v - yMean
	}

	coef := make([]float64, p)
	var svd mat.SVD
	if ok := svd.Factorize(xc, mat.SVDThin); !ok {
		return ErrSolve
	}
	if rank := svd.Rank(rcond); rank > 0 {
		var w mat.VecDense
		svd.SolveVecTo(&w, mat.NewVecDense(n, yc), rank)
		for j := range coef {
			coef[j] = w.AtVec(j)
		}
	}

	m.Coef = coef
	m.Intercept = yMean - floats.Dot(xMean, coef)
	return nil
}

// Predict returns Xw + b for every row of X
func (m *LinearRegression) Predict(X mat.Matrix) ([]float64, error) {
	if m.Coef == nil {
		return nil, ErrNotFitted
	}
	n, p := X.Dims()
	if p != len(m.Coef) {
		return nil, fmt.Errorf("pipeline: model has %d coefficients, input has %d columns", len(m.Coef), p)
	}

	var out mat.VecDense
	out.MulVec(X, mat.NewVecDense(p, m.Coef))

	pred := make([]float64, n)
	for i := range pred {
		pred[i] = out.AtVec(i) + m.Intercept
	}
	return pred, nil
}

// R2 is the coefficient of determination of pred against y. A constant y
// scores 1 when predicted exactly and 0 otherwise.
func R2(y, pred []float64) float64 {
	mean := stat.Mean(y, nil)
	var ssRes, ssTot float64
	for i := range y {
		ssRes += (y[i] - pred[i]) * (y[i] - pred[i])
		ssTot += (y[i] - mean) * (y[i] - mean)
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}

func allFinite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
