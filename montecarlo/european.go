package montecarlo

import (
	"fmt"
	"math"

	"github.com/bcdannyboy/mcprice/models"
	"github.com/bcdannyboy/mcprice/payoff"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// EuropeanResult is the price of a European option together with its
// Monte Carlo standard error and the paths it was computed from.
type EuropeanResult struct {
	Price    float64
	StdError float64
	Paths    int
	Steps    int
	Discount float64 // exp(-r*T)

	PricePaths *mat.Dense `json:"-"`
}

// EuropeanFromPaths discounts the mean terminal payoff of paths. Only the
// last row is read.
func EuropeanFromPaths(paths *mat.Dense, strike, rate, maturity float64, optionType models.OptionType) (*EuropeanResult, error) {
	if math.IsNaN(strike) || math.IsInf(strike, 0) || strike <= 0 {
		return nil, fmt.Errorf("%w: strike must be positive, got %v", models.ErrInvalidParameter, strike)
	}
	if math.IsNaN(maturity) || math.IsInf(maturity, 0) || maturity <= 0 {
		return nil, fmt.Errorf("%w: maturity must be positive, got %v", models.ErrInvalidParameter, maturity)
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("%w: rate must be finite, got %v", models.ErrInvalidParameter, rate)
	}

	payoffs, err := payoff.Terminal(paths, strike, optionType)
	if err != nil {
		return nil, err
	}

	discount := math.Exp(-rate * maturity)
	mean, std := stat.MeanStdDev(payoffs, nil)
	n := len(payoffs)
	stdErr := 0.0
	if n > 1 {
		stdErr = discount * std / math.Sqrt(float64(n))
	}
	rows, _ := paths.Dims()

	return &EuropeanResult{
		Price:      discount * mean,
		StdError:   stdErr,
		Paths:      n,
		Steps:      rows - 1,
		Discount:   discount,
		PricePaths: paths,
	}, nil
}
