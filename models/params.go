package models

import (
	"fmt"
	"math"
)

type SimulationParams struct {
	Spot       float64 // Initial underlying price
	Strike     float64
	Maturity   float64 // Time to maturity in years
	Rate       float64 // Continuously compounded risk-free rate
	Volatility float64
	Type       OptionType
	Paths      int // Number of simulated paths
	Steps      int // Number of time steps per path
}

func (p SimulationParams) Validate() error {
	if err := ValidateContract(p.Spot, p.Strike, p.Maturity, p.Rate, p.Volatility); err != nil {
		return err
	}
	if !p.Type.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidOptionType, int(p.Type))
	}
	if p.Paths <= 0 {
		return fmt.Errorf("%w: path count must be positive, got %d", ErrInvalidParameter, p.Paths)
	}
	if p.Steps <= 0 {
		return fmt.Errorf("%w: step count must be positive, got %d", ErrInvalidParameter, p.Steps)
	}
	return nil
}

// Dt is the length of one simulation period in years.
func (p SimulationParams) Dt() float64 {
	return p.Maturity / float64(p.Steps)
}

// ValidateContract checks the market inputs shared by every pricer.
func ValidateContract(spot, strike, maturity, rate, volatility float64) error {
	positive := []struct {
		name  string
		value float64
	}{
		{"spot", spot},
		{"strike", strike},
		{"maturity", maturity},
		{"volatility", volatility},
	}
	for _, v := range positive {
		if !finite(v.value) || v.value <= 0 {
			return fmt.Errorf("%w: %s must be positive and finite, got %v", ErrInvalidParameter, v.name, v.value)
		}
	}
	if !finite(rate) {
		return fmt.Errorf("%w: rate must be finite, got %v", ErrInvalidParameter, rate)
	}
	return nil
}

// StepsForDt converts a step length into a whole number of steps covering
// the maturity. The effective step is maturity/steps afterwards.
func StepsForDt(maturity, dt float64) (int, error) {
	if !finite(maturity) || maturity <= 0 {
		return 0, fmt.Errorf("%w: maturity must be positive and finite, got %v", ErrInvalidParameter, maturity)
	}
	if !finite(dt) || dt <= 0 {
		return 0, fmt.Errorf("%w: dt must be positive and finite, got %v", ErrInvalidParameter, dt)
	}
	steps := math.Round(maturity / dt)
	if steps < 1 {
		return 0, fmt.Errorf("%w: dt %v is longer than maturity %v", ErrInvalidParameter, dt, maturity)
	}
	if steps > math.MaxInt32 {
		return 0, fmt.Errorf("%w: dt %v gives too many steps", ErrInvalidParameter, dt)
	}
	return int(steps), nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
