// Package payoff turns simulated prices into intrinsic values.
package payoff

import (
	"fmt"

	"github.com/bcdannyboy/mcprice/models"
	"gonum.org/v1/gonum/mat"
)

// intrinsicFunc returns the exercise value of one option as a function of
// price and strike.
func intrinsicFunc(optionType models.OptionType) (func(s, k float64) float64, error) {
	switch optionType {
	case models.Call:
		return func(s, k float64) float64 { return max(s-k, 0) }, nil
	case models.Put:
		return func(s, k float64) float64 { return max(k-s, 0) }, nil
	default:
		return nil, fmt.Errorf("%w: %d", models.ErrInvalidOptionType, int(optionType))
	}
}

// CashFlows builds the raw cash-flow matrix, the intrinsic value of every
// entry of paths, and a zeroed matrix of the same shape for discounted cash
// flows. paths is not modified.
func CashFlows(paths *mat.Dense, strike float64, optionType models.OptionType, workers int) (cash, discounted *mat.Dense, err error) {
	f, err := intrinsicFunc(optionType)
	if err != nil {
		return nil, nil, err
	}
	if paths == nil || paths.IsEmpty() {
		return nil, nil, fmt.Errorf("%w: empty price path matrix", models.ErrInvalidParameter)
	}

	rows, cols := paths.Dims()
	cash = mat.NewDense(rows, cols, nil)
	for t := 0; t < rows; t++ {
		prices := paths.RawRowView(t)
		out := cash.RawRowView(t)
		models.ForEachChunk(cols, workers, func(start, end int) {
			for i := start; i < end; i++ {
				out[i] = f(prices[i], strike)
			}
		})
	}

	return cash, mat.NewDense(rows, cols, nil), nil
}

// Terminal returns the payoff of every path at the last row of paths.
func Terminal(paths *mat.Dense, strike float64, optionType models.OptionType) ([]float64, error) {
	if paths == nil || paths.IsEmpty() {
		return nil, fmt.Errorf("%w: empty price path matrix", models.ErrInvalidParameter)
	}
	rows, _ := paths.Dims()
	return Grid(paths.RawRowView(rows-1), strike, optionType)
}

// Grid evaluates the expiry payoff over a slice of prices.
func Grid(prices []float64, strike float64, optionType models.OptionType) ([]float64, error) {
	f, err := intrinsicFunc(optionType)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(prices))
	for i, s := range prices {
		out[i] = f(s, strike)
	}
	return out, nil
}
