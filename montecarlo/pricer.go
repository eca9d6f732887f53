// Package montecarlo prices European and American options by simulating
// geometric Brownian motion. American prices use the Longstaff-Schwartz
// least-squares method.
//
// Time is discretised in steps of dt = T/M. One discount period is one dt,
// so a cash flow paid at step t is worth exp(-r*t*dt) today.
package montecarlo

import (
	"github.com/bcdannyboy/mcprice/models"
	"gonum.org/v1/gonum/mat"
)

// PriceEuropean simulates numSimulations GBM paths of numSteps steps and
// returns the discounted mean payoff at maturity.
func PriceEuropean(s, k, t, r, sigma float64, optionType string, numSimulations, numSteps int, opts ...Option) (float64, error) {
	typ, err := models.ParseOptionType(optionType)
	if err != nil {
		return 0, err
	}
	res, err := SimulateEuropean(models.SimulationParams{
		Spot:       s,
		Strike:     k,
		Maturity:   t,
		Rate:       r,
		Volatility: sigma,
		Type:       typ,
		Paths:      numSimulations,
		Steps:      numSteps,
	}, opts...)
	if err != nil {
		return 0, err
	}
	return res.Price, nil
}

// PriceAmericanLSM prices an American option with time steps of length dt.
// The step count is round(t/dt) and the step actually used is t divided by
// that count.
func PriceAmericanLSM(s, k, t, r, sigma float64, optionType string, numSimulations int, dt float64, opts ...Option) (float64, error) {
	typ, err := models.ParseOptionType(optionType)
	if err != nil {
		return 0, err
	}
	params := models.SimulationParams{
		Spot:       s,
		Strike:     k,
		Maturity:   t,
		Rate:       r,
		Volatility: sigma,
		Type:       typ,
		Paths:      numSimulations,
	}
	if err := models.ValidateContract(s, k, t, r, sigma); err != nil {
		return 0, err
	}
	if params.Steps, err = models.StepsForDt(t, dt); err != nil {
		return 0, err
	}
	res, err := SimulateAmerican(params, opts...)
	if err != nil {
		return 0, err
	}
	return res.Price, nil
}

// SimulateEuropean simulates params.Paths GBM paths of params.Steps steps and
// prices the European option on them. Use WithSeed for reproducible runs.
func SimulateEuropean(params models.SimulationParams, opts ...Option) (*EuropeanResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	s := newSettings(opts)

	paths, err := simulate(params, s)
	if err != nil {
		return nil, err
	}
	res, err := EuropeanFromPaths(paths, params.Strike, params.Rate, params.Maturity, params.Type)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("type", params.Type.String()).
		Float64("price", res.Price).
		Float64("std_error", res.StdError).
		Int("paths", params.Paths).
		Int("steps", params.Steps).
		Msg("european priced")
	return res, nil
}

// SimulateAmerican simulates GBM paths and prices the American option with
// Longstaff-Schwartz regression. The result keeps the path and cash-flow
// matrices and the per-step exercise counts.
func SimulateAmerican(params models.SimulationParams, opts ...Option) (*LSMResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	s := newSettings(opts)

	paths, err := simulate(params, s)
	if err != nil {
		return nil, err
	}
	return americanFromPaths(paths, params.Strike, params.Rate, params.Dt(), params.Type, s)
}

func simulate(params models.SimulationParams, s *settings) (*mat.Dense, error) {
	gbm := models.NewGeometricBrownianMotion(params.Rate, params.Volatility)
	gbm.Workers = s.workers
	return gbm.SimulatePaths(params.Spot, params.Dt(), params.Steps, params.Paths, s.normalSampler())
}
