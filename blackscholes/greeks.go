package blackscholes

import (
	"fmt"
	"math"

	"github.com/bcdannyboy/mcprice/models"
)

// Greeks follows trading desk conventions: Theta per calendar day, Vega
// and Rho per one percentage point.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

func CalculateGreeks(s, k, t, r, sigma float64, optionType models.OptionType) (Greeks, error) {
	if err := models.ValidateContract(s, k, t, r, sigma); err != nil {
		return Greeks{}, err
	}
	if !optionType.Valid() {
		return Greeks{}, fmt.Errorf("%w: %d", models.ErrInvalidOptionType, int(optionType))
	}

	d1, d2 := d1d2(s, k, t, r, sigma)
	sqrtT := math.Sqrt(t)
	pdf := norm.Prob(d1)
	discountedStrike := k * math.Exp(-r*t)

	g := Greeks{
		Gamma: pdf / (s * sigma * sqrtT),
		Vega:  s * sqrtT * pdf / 100,
	}
	decay := -s * sigma * pdf / (2 * sqrtT)
	if optionType == models.Call {
		g.Delta = norm.CDF(d1)
		g.Theta = (decay - r*discountedStrike*norm.CDF(d2)) / 365
		g.Rho = t * discountedStrike * norm.CDF(d2) / 100
	} else {
		g.Delta = norm.CDF(d1) - 1
		g.Theta = (decay + r*discountedStrike*norm.CDF(-d2)) / 365
		g.Rho = -t * discountedStrike * norm.CDF(-d2) / 100
	}
	return g, nil
}
