// Package blackscholes holds the closed-form Black-Scholes price, its
// Greeks and implied volatility for European options on a non-dividend
// paying underlying.
package blackscholes

import (
	"fmt"
	"math"

	"github.com/bcdannyboy/mcprice/models"
	"gonum.org/v1/gonum/stat/distuv"
)

var norm = distuv.UnitNormal

func d1d2(s, k, t, r, sigma float64) (float64, float64) {
	sqrtT := math.Sqrt(t)
	d1 := (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / (sigma * sqrtT)
	return d1, d1 - sigma*sqrtT
}

func Price(s, k, t, r, sigma float64, optionType models.OptionType) (float64, error) {
	if err := models.ValidateContract(s, k, t, r, sigma); err != nil {
		return 0, err
	}
	return price(s, k, t, r, sigma, optionType)
}

func price(s, k, t, r, sigma float64, optionType models.OptionType) (float64, error) {
	d1, d2 := d1d2(s, k, t, r, sigma)
	discountedStrike := k * math.Exp(-r*t)

	switch optionType {
	case models.Call:
		return s*norm.CDF(d1) - discountedStrike*norm.CDF(d2), nil
	case models.Put:
		return discountedStrike*norm.CDF(-d2) - s*norm.CDF(-d1), nil
	default:
		return 0, fmt.Errorf("%w: %d", models.ErrInvalidOptionType, int(optionType))
	}
}
