package cli

import (
	"time"

	"github.com/bcdannyboy/mcprice/models"
	"github.com/bcdannyboy/mcprice/montecarlo"
	"github.com/spf13/cobra"
)

type marketFlags struct {
	spot       float64
	strike     float64
	maturity   float64
	rate       float64
	volatility float64
	optionType string
}

func (a *App) addMarketFlags(cmd *cobra.Command, m *marketFlags) {
	c := a.Config.Market
	cmd.Flags().Float64VarP(&m.spot, "spot", "s", c.Spot, "initial underlying price")
	cmd.Flags().Float64VarP(&m.strike, "strike", "k", c.Strike, "strike price")
	cmd.Flags().Float64VarP(&m.maturity, "maturity", "t", c.Maturity, "time to maturity in years")
	cmd.Flags().Float64VarP(&m.rate, "rate", "r", c.Rate, "continuously compounded risk-free rate")
	cmd.Flags().Float64Var(&m.volatility, "vol", c.Volatility, "annualised volatility")
	cmd.Flags().StringVar(&m.optionType, "type", c.OptionType, "option type: call or put")
}

func (m marketFlags) params(paths, steps int) (models.SimulationParams, error) {
	typ, err := models.ParseOptionType(m.optionType)
	if err != nil {
		return models.SimulationParams{}, err
	}
	return models.SimulationParams{
		Spot:       m.spot,
		Strike:     m.strike,
		Maturity:   m.maturity,
		Rate:       m.rate,
		Volatility: m.volatility,
		Type:       typ,
		Paths:      paths,
		Steps:      steps,
	}, nil
}

type simulationFlags struct {
	paths   int
	steps   int
	seed    uint64
	workers int
}

func (a *App) addSimulationFlags(cmd *cobra.Command, s *simulationFlags) {
	c := a.Config.Simulation
	cmd.Flags().IntVarP(&s.paths, "paths", "n", c.Paths, "number of simulated paths")
	cmd.Flags().IntVar(&s.steps, "steps", c.Steps, "time steps per path")
	cmd.Flags().Uint64Var(&s.seed, "seed", c.Seed, "random seed, 0 seeds from the clock")
	cmd.Flags().IntVar(&s.workers, "workers", c.Workers, "goroutines per time step, 0 sizes from cpu load")
}

// resolveSeed fixes a seed for the run so that it can be reported and
// reused across pricers.
func (a *App) resolveSeed(seed uint64) uint64 {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
		a.Logger.Debug().Uint64("seed", seed).Msg("seeded from clock")
	}
	return seed
}

func (a *App) pricingOptions(s simulationFlags, seed uint64) []montecarlo.Option {
	return []montecarlo.Option{
		montecarlo.WithSeed(seed),
		montecarlo.WithWorkers(s.workers),
		montecarlo.WithLogger(a.Logger),
	}
}
