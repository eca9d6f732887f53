package cli

import (
	"fmt"
	"io"

	"github.com/bcdannyboy/mcprice/blackscholes"
	"github.com/bcdannyboy/mcprice/models"
	"github.com/bcdannyboy/mcprice/montecarlo"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var heading = color.New(color.Bold)

type europeanOutput struct {
	Type     models.OptionType `json:"type"`
	Price    float64           `json:"price"`
	StdError float64           `json:"std_error"`
	Paths    int               `json:"paths"`
	Steps    int               `json:"steps"`
	Seed     uint64            `json:"seed"`
}

type americanOutput struct {
	Type            models.OptionType `json:"type"`
	Price           float64           `json:"price"`
	StdError        float64           `json:"std_error"`
	Paths           int               `json:"paths"`
	Steps           int               `json:"steps"`
	Dt              float64           `json:"dt"`
	DegenerateSteps int               `json:"degenerate_steps"`
	ExerciseCounts  []int             `json:"exercise_counts"`
	Seed            uint64            `json:"seed"`
}

type compareOutput struct {
	Type                  models.OptionType `json:"type"`
	BlackScholes          float64           `json:"black_scholes"`
	European              float64           `json:"european"`
	EuropeanStdError      float64           `json:"european_std_error"`
	EuropeanImpliedVol    *float64          `json:"european_implied_vol,omitempty"`
	American              float64           `json:"american"`
	AmericanStdError      float64           `json:"american_std_error"`
	EarlyExercisePremium  float64           `json:"early_exercise_premium"`
	DegenerateRegressions int               `json:"degenerate_regressions"`
	Paths                 int               `json:"paths"`
	Steps                 int               `json:"steps"`
	Seed                  uint64            `json:"seed"`
}

func newEuropeanCmd(app *App) *cobra.Command {
	var m marketFlags
	var s simulationFlags

	cmd := &cobra.Command{
		Use:   "european",
		Short: "Price a European option by Monte Carlo",
		Example: `  mcprice european --type call -s 100 -k 100 -t 1 -r 0.05 --vol 0.2 -n 200000 --steps 50
  mcprice european --type put --seed 42 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := m.params(s.paths, s.steps)
			if err != nil {
				return err
			}
			seed := app.resolveSeed(s.seed)
			res, err := montecarlo.SimulateEuropean(params, app.pricingOptions(s, seed)...)
			if err != nil {
				return err
			}

			result := europeanOutput{
				Type:     params.Type,
				Price:    res.Price,
				StdError: res.StdError,
				Paths:    res.Paths,
				Steps:    res.Steps,
				Seed:     seed,
			}
			return app.render(out(cmd), result, func(w io.Writer) {
				heading.Fprintf(w, "European %s\n", params.Type)
				fmt.Fprintf(w, "Price:\t%.6f\n", result.Price)
				fmt.Fprintf(w, "Std error:\t%.6f\n", result.StdError)
				fmt.Fprintf(w, "Paths x steps:\t%d x %d\n", result.Paths, result.Steps)
				fmt.Fprintf(w, "Seed:\t%d\n", result.Seed)
			})
		},
	}

	app.addMarketFlags(cmd, &m)
	app.addSimulationFlags(cmd, &s)
	return cmd
}

func newAmericanCmd(app *App) *cobra.Command {
	var m marketFlags
	var s simulationFlags
	var dt float64

	cmd := &cobra.Command{
		Use:   "american",
		Short: "Price an American option with Longstaff-Schwartz",
		Long: `Price an American option with the Longstaff-Schwartz least-squares Monte
Carlo method. The step count is round(maturity/dt) unless --steps is given.`,
		Example: `  mcprice american --type put -s 36 -k 40 -t 1 -r 0.06 --vol 0.2 --dt 0.02
  mcprice american --type put --steps 100 --seed 7 --debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := s.steps
			if !cmd.Flags().Changed("steps") {
				n, err := models.StepsForDt(m.maturity, dt)
				if err != nil {
					return err
				}
				steps = n
			}
			params, err := m.params(s.paths, steps)
			if err != nil {
				return err
			}
			seed := app.resolveSeed(s.seed)
			res, err := montecarlo.SimulateAmerican(params, app.pricingOptions(s, seed)...)
			if err != nil {
				return err
			}
			if res.DegenerateSteps > 0 {
				app.Logger.Warn().Int("steps", res.DegenerateSteps).Msg("regression fell back to immediate exercise")
			}

			result := americanOutput{
				Type:            params.Type,
				Price:           res.Price,
				StdError:        res.StdError,
				Paths:           res.Paths,
				Steps:           res.Steps,
				Dt:              res.Dt,
				DegenerateSteps: res.DegenerateSteps,
				ExerciseCounts:  res.ExerciseCounts,
				Seed:            seed,
			}
			return app.render(out(cmd), result, func(w io.Writer) {
				early := 0
				for t := 1; t < len(result.ExerciseCounts)-1; t++ {
					early += result.ExerciseCounts[t]
				}
				heading.Fprintf(w, "American %s (LSM)\n", params.Type)
				fmt.Fprintf(w, "Price:\t%.6f\n", result.Price)
				fmt.Fprintf(w, "Std error:\t%.6f\n", result.StdError)
				fmt.Fprintf(w, "Paths x steps:\t%d x %d (dt %.5f)\n", result.Paths, result.Steps, result.Dt)
				fmt.Fprintf(w, "Early exercises:\t%d of %d paths\n", early, result.Paths)
				fmt.Fprintf(w, "Degenerate steps:\t%d\n", result.DegenerateSteps)
				fmt.Fprintf(w, "Seed:\t%d\n", result.Seed)
			})
		},
	}

	app.addMarketFlags(cmd, &m)
	app.addSimulationFlags(cmd, &s)
	cmd.Flags().Float64Var(&dt, "dt", app.Config.Simulation.Dt, "step length in years")
	return cmd
}

func newCompareCmd(app *App) *cobra.Command {
	var m marketFlags
	var s simulationFlags

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare closed-form, European and American prices on the same paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := m.params(s.paths, s.steps)
			if err != nil {
				return err
			}
			bs, err := blackscholes.Price(params.Spot, params.Strike, params.Maturity, params.Rate, params.Volatility, params.Type)
			if err != nil {
				return err
			}

			seed := app.resolveSeed(s.seed)
			european, err := montecarlo.SimulateEuropean(params, app.pricingOptions(s, seed)...)
			if err != nil {
				return err
			}
			american, err := montecarlo.SimulateAmerican(params, app.pricingOptions(s, seed)...)
			if err != nil {
				return err
			}

			result := compareOutput{
				Type:                  params.Type,
				BlackScholes:          bs,
				European:              european.Price,
				EuropeanStdError:      european.StdError,
				American:              american.Price,
				AmericanStdError:      american.StdError,
				EarlyExercisePremium:  american.Price - european.Price,
				DegenerateRegressions: american.DegenerateSteps,
				Paths:                 params.Paths,
				Steps:                 params.Steps,
				Seed:                  seed,
			}
			iv, err := blackscholes.ImpliedVolatility(european.Price, params.Spot, params.Strike, params.Maturity, params.Rate, params.Type)
			if err != nil {
				app.Logger.Debug().Err(err).Msg("no implied volatility for simulated price")
			} else {
				result.EuropeanImpliedVol = &iv
			}

			return app.render(out(cmd), result, func(w io.Writer) {
				heading.Fprintf(w, "%s, S=%.2f K=%.2f T=%.2f r=%.4f vol=%.4f\n",
					params.Type, params.Spot, params.Strike, params.Maturity, params.Rate, params.Volatility)
				fmt.Fprintf(w, "Black-Scholes:\t%.6f\n", result.BlackScholes)
				fmt.Fprintf(w, "European MC:\t%.6f\t± %.6f\n", result.European, result.EuropeanStdError)
				if result.EuropeanImpliedVol != nil {
					fmt.Fprintf(w, "European MC implied vol:\t%.6f\n", *result.EuropeanImpliedVol)
				}
				fmt.Fprintf(w, "American LSM:\t%.6f\t± %.6f\n", result.American, result.AmericanStdError)
				fmt.Fprintf(w, "Early exercise premium:\t%.6f\n", result.EarlyExercisePremium)
				fmt.Fprintf(w, "Seed:\t%d\n", result.Seed)
			})
		},
	}

	app.addMarketFlags(cmd, &m)
	app.addSimulationFlags(cmd, &s)
	return cmd
}

type greeksOutput struct {
	Type  models.OptionType `json:"type"`
	Price float64           `json:"price"`
	blackscholes.Greeks
}

func newGreeksCmd(app *App) *cobra.Command {
	var m marketFlags

	cmd := &cobra.Command{
		Use:   "greeks",
		Short: "Closed-form Black-Scholes price and Greeks",
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := models.ParseOptionType(m.optionType)
			if err != nil {
				return err
			}
			price, err := blackscholes.Price(m.spot, m.strike, m.maturity, m.rate, m.volatility, typ)
			if err != nil {
				return err
			}
			g, err := blackscholes.CalculateGreeks(m.spot, m.strike, m.maturity, m.rate, m.volatility, typ)
			if err != nil {
				return err
			}

			result := greeksOutput{Type: typ, Price: price, Greeks: g}
			return app.render(out(cmd), result, func(w io.Writer) {
				heading.Fprintf(w, "Black-Scholes %s\n", typ)
				fmt.Fprintf(w, "Price:\t%.6f\n", price)
				fmt.Fprintf(w, "Delta:\t%.6f\n", g.Delta)
				fmt.Fprintf(w, "Gamma:\t%.6f\n", g.Gamma)
				fmt.Fprintf(w, "Theta (per day):\t%.6f\n", g.Theta)
				fmt.Fprintf(w, "Vega (per 1%%):\t%.6f\n", g.Vega)
				fmt.Fprintf(w, "Rho (per 1%%):\t%.6f\n", g.Rho)
			})
		},
	}

	app.addMarketFlags(cmd, &m)
	return cmd
}
