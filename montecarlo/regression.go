package montecarlo

import (
	"fmt"
	"math"

	"github.com/bcdannyboy/mcprice/models"
	"gonum.org/v1/gonum/mat"
)

// Fewer in-the-money paths than this cannot determine the three
// coefficients of the quadratic basis.
const minRegressionPaths = 3

// ContinuationValues fits discounted future cash flows against the basis
// [1, x, x^2] with x = price/scale by ordinary least squares and returns the
// fitted values at the same prices. Scaling only changes the coefficients,
// not the fitted values; pass the strike.
//
// The fit solves the 3x3 normal equations, so memory is linear in the
// number of observations.
//
// It returns ErrDegenerateRegression when there are too few observations or
// the fit is singular or non-finite.
func ContinuationValues(prices, future []float64, scale float64) ([]float64, error) {
	n := len(prices)
	if n != len(future) {
		return nil, fmt.Errorf("%w: %d prices and %d cash flows", models.ErrShapeMismatch, n, len(future))
	}
	if n < minRegressionPaths {
		return nil, fmt.Errorf("%w: %d in-the-money paths", models.ErrDegenerateRegression, n)
	}
	if !(scale > 0) {
		scale = 1
	}

	// Power sums of u give X^T X; moments of y against 1, u, u^2 give X^T y.
	var pow [5]float64
	var xty [3]float64
	for i, s := range prices {
		u := s / scale
		u2 := u * u
		pow[0]++
		pow[1] += u
		pow[2] += u2
		pow[3] += u2 * u
		pow[4] += u2 * u2
		y := future[i]
		xty[0] += y
		xty[1] += u * y
		xty[2] += u2 * y
	}

	xtx := mat.NewSymDense(3, []float64{
		pow[0], pow[1], pow[2],
		pow[1], pow[2], pow[3],
		pow[2], pow[3], pow[4],
	})
	var chol mat.Cholesky
	if ok := chol.Factorize(xtx); !ok {
		return nil, fmt.Errorf("%w: normal equations are not positive definite", models.ErrDegenerateRegression)
	}
	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, mat.NewVecDense(3, xty[:])); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrDegenerateRegression, err)
	}
	b0, b1, b2 := beta.AtVec(0), beta.AtVec(1), beta.AtVec(2)
	for _, b := range []float64{b0, b1, b2} {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return nil, fmt.Errorf("%w: non-finite coefficient", models.ErrDegenerateRegression)
		}
	}

	out := make([]float64, n)
	for i, s := range prices {
		u := s / scale
		v := b0 + u*(b1+u*b2)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite fitted value", models.ErrDegenerateRegression)
		}
		out[i] = v
	}
	return out, nil
}
