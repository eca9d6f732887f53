package blackscholes

import (
	"fmt"
	"math"

	"github.com/bcdannyboy/mcprice/models"
	"gonum.org/v1/gonum/optimize"
)

const impliedVolTolerance = 1e-6

// ImpliedVolatility finds the volatility at which the closed-form price
// matches target. The search runs over log volatility so it stays
// positive.
func ImpliedVolatility(target, s, k, t, r float64, optionType models.OptionType) (float64, error) {
	if err := models.ValidateContract(s, k, t, r, 1); err != nil {
		return 0, err
	}
	if !optionType.Valid() {
		return 0, fmt.Errorf("%w: %d", models.ErrInvalidOptionType, int(optionType))
	}

	discountedStrike := k * math.Exp(-r*t)
	lower, upper := math.Max(s-discountedStrike, 0), s
	if optionType == models.Put {
		lower, upper = math.Max(discountedStrike-s, 0), discountedStrike
	}
	if math.IsNaN(target) || target <= lower || target >= upper {
		return 0, fmt.Errorf("%w: price %v outside no-arbitrage bounds (%v, %v)", models.ErrInvalidParameter, target, lower, upper)
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			p, err := price(s, k, t, r, math.Exp(x[0]), optionType)
			if err != nil || math.IsNaN(p) {
				return math.Inf(1)
			}
			diff := (p - target) / target
			return diff * diff
		},
	}

	result, err := optimize.Minimize(problem, []float64{math.Log(0.2)}, nil, &optimize.NelderMead{})
	if err != nil {
		return 0, err
	}

	sigma := math.Exp(result.X[0])
	fitted, _ := price(s, k, t, r, sigma, optionType)
	if math.Abs(fitted-target) > impliedVolTolerance*math.Max(1, target) {
		return 0, fmt.Errorf("implied volatility did not converge: price %v at sigma %v, want %v", fitted, sigma, target)
	}
	return sigma, nil
}
