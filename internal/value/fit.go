package value

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
)

// ErrMismatchedSamples marks x and y slices of different lengths.
var ErrMismatchedSamples = errors.New("mismatched sample lengths")

// FitPolynomial fits a least-squares polynomial of the model's degree
// to (xs, ys). The result is marked invalid, not an error, when the
// sample is too small to determine the coefficients; callers surface
// invalid fits as insufficient sample.
func FitPolynomial(xs, ys []float64, model domain.ModelFamily) (domain.FitResult, error) {
	if len(xs) != len(ys) {
		return domain.FitResult{}, fmt.Errorf("%w: %d x values, %d y values",
			ErrMismatchedSamples, len(xs), len(ys))
	}

	degree := model.Degree()
	p := degree + 1
	n := len(xs)

	res := domain.FitResult{
		Model:      model,
		SampleSize: n,
	}
	if n <= p {
		return res, nil
	}

	// Design matrix of ascending powers of x.
	X := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		pow := 1.0
		for j := 0; j < p; j++ {
			X.Set(i, j, pow)
			pow *= xs[i]
		}
		y.SetVec(i, ys[i])
	}

	var qr mat.QR
	qr.Factorize(X)
	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, y); err != nil {
		// Degenerate design, e.g. every x identical.
		return res, nil
	}

	coeffs := make([]float64, p)
	for j := 0; j < p; j++ {
		coeffs[j] = beta.AtVec(j)
	}

	estimates := make([]float64, n)
	for i, x := range xs {
		estimates[i] = evalPoly(coeffs, x)
	}

	res.Coefficients = coeffs
	res.RSquared = stat.RSquaredFrom(estimates, ys, nil)
	res.PValue = leadingPValue(X, ys, estimates, coeffs)
	res.Valid = true
	return res, nil
}

// evalPoly evaluates a polynomial with ascending coefficients at x.
func evalPoly(coeffs []float64, x float64) float64 {
	v := 0.0
	for j := len(coeffs) - 1; j >= 0; j-- {
		v = v*x + coeffs[j]
	}
	return v
}

// leadingPValue computes the two-sided t-test p-value for the leading
// coefficient. Returns nil when the standard error cannot be
// estimated.
func leadingPValue(X *mat.Dense, ys, estimates, coeffs []float64) *float64 {
	n, p := X.Dims()
	dof := n - p
	if dof <= 0 {
		return nil
	}

	var rss float64
	for i, y := range ys {
		r := y - estimates[i]
		rss += r * r
	}
	sigma2 := rss / float64(dof)

	var xtx, inv mat.Dense
	xtx.Mul(X.T(), X)
	if err := inv.Inverse(&xtx); err != nil {
		return nil
	}

	se := math.Sqrt(sigma2 * inv.At(p-1, p-1))
	if se <= 0 || math.IsNaN(se) || math.IsInf(se, 0) {
		return nil
	}

	t := coeffs[p-1] / se
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dof)}
	pv := 2 * (1 - dist.CDF(math.Abs(t)))
	if math.IsNaN(pv) {
		return nil
	}
	return &pv
}

// FitQualityLabel grades an R-squared for reporting.
func FitQualityLabel(r2 float64) string {
	switch {
	case r2 >= 0.8:
		return "Excellent"
	case r2 >= 0.6:
		return "Good"
	case r2 >= 0.4:
		return "Fair"
	case r2 >= 0.2:
		return "Poor"
	default:
		return "Very Poor"
	}
}

// Correlation computes the Pearson correlation between xs and ys plus
// a two-sided p-value. The p-value is nil when the sample is too small
// or the correlation is degenerate.
func Correlation(xs, ys []float64) (float64, *float64, error) {
	if len(xs) != len(ys) {
		return 0, nil, fmt.Errorf("%w: %d x values, %d y values",
			ErrMismatchedSamples, len(xs), len(ys))
	}
	n := len(xs)
	if n < 2 {
		return math.NaN(), nil, nil
	}

	r := stat.Correlation(xs, ys, nil)
	if n < 3 || math.IsNaN(r) || math.Abs(r) >= 1 {
		return r, nil, nil
	}

	dof := float64(n - 2)
	t := r * math.Sqrt(dof/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}
	pv := 2 * (1 - dist.CDF(math.Abs(t)))
	return r, &pv, nil
}
