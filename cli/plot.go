package cli

import (
	"fmt"

	"github.com/bcdannyboy/mcprice/blackscholes"
	"github.com/bcdannyboy/mcprice/models"
	"github.com/bcdannyboy/mcprice/plotting"
	"github.com/spf13/cobra"
)

func newPlotCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render paths, payoffs and price curves to image files",
		Long: `Render charts to a file. The format follows the file extension:
png, jpg, svg, pdf, eps and tif are supported.`,
	}
	cmd.AddCommand(
		newPlotPathsCmd(app),
		newPlotPayoffCmd(app),
		newPlotCurveCmd(app),
	)
	return cmd
}

func newPlotPathsCmd(app *App) *cobra.Command {
	var m marketFlags
	var s simulationFlags
	var show int
	var file string

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Simulate GBM paths and draw them with the strike",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only the drawn paths are needed unless --paths asks for more.
			if !cmd.Flags().Changed("paths") {
				s.paths = show
			}
			params, err := m.params(s.paths, s.steps)
			if err != nil {
				return err
			}
			if err := params.Validate(); err != nil {
				return err
			}
			seed := app.resolveSeed(s.seed)

			gbm := models.NewGeometricBrownianMotion(params.Rate, params.Volatility)
			gbm.Workers = s.workers
			if gbm.Workers <= 0 {
				gbm.Workers = models.AdaptiveWorkers()
			}
			paths, err := gbm.SimulatePaths(params.Spot, params.Dt(), params.Steps, params.Paths, models.NewRandSampler(seed))
			if err != nil {
				return err
			}
			if err := plotting.PathFan(paths, params.Strike, params.Dt(), show, file); err != nil {
				return err
			}
			app.Logger.Info().Str("file", file).Int("paths", params.Paths).Uint64("seed", seed).Msg("path chart written")
			return nil
		},
	}

	app.addMarketFlags(cmd, &m)
	app.addSimulationFlags(cmd, &s)
	cmd.Flags().IntVar(&show, "show", 50, "number of paths drawn")
	cmd.Flags().StringVarP(&file, "out", "o", "paths.png", "output file")
	return cmd
}

func newPlotPayoffCmd(app *App) *cobra.Command {
	var m marketFlags
	var premium, lo, hi float64
	var file string

	cmd := &cobra.Command{
		Use:   "payoff",
		Short: "Draw the expiry payoff with the stock leg and the hedged position",
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := models.ParseOptionType(m.optionType)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("premium") {
				if premium, err = blackscholes.Price(m.spot, m.strike, m.maturity, m.rate, m.volatility, typ); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("lo") {
				lo = 0.5 * m.strike
			}
			if !cmd.Flags().Changed("hi") {
				hi = 1.5 * m.strike
			}
			if err := plotting.PayoffDiagram(m.strike, premium, lo, hi, typ, file); err != nil {
				return err
			}
			app.Logger.Info().Str("file", file).Float64("premium", premium).Msg("payoff chart written")
			return nil
		},
	}

	app.addMarketFlags(cmd, &m)
	cmd.Flags().Float64Var(&premium, "premium", 0, "premium paid, defaults to the Black-Scholes price")
	cmd.Flags().Float64Var(&lo, "lo", 0, "lowest price drawn (default 0.5 x strike)")
	cmd.Flags().Float64Var(&hi, "hi", 0, "highest price drawn (default 1.5 x strike)")
	cmd.Flags().StringVarP(&file, "out", "o", "payoff.png", "output file")
	return cmd
}

func newPlotCurveCmd(app *App) *cobra.Command {
	var m marketFlags
	var lo, hi float64
	var file string

	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Draw the Black-Scholes price against spot",
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := models.ParseOptionType(m.optionType)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("lo") {
				lo = 0.5 * m.strike
			}
			if !cmd.Flags().Changed("hi") {
				hi = 1.5 * m.strike
			}
			if err := plotting.OptionPriceCurve(m.strike, m.maturity, m.rate, m.volatility, lo, hi, typ, file); err != nil {
				return fmt.Errorf("failed to draw price curve: %w", err)
			}
			app.Logger.Info().Str("file", file).Msg("price curve written")
			return nil
		},
	}

	app.addMarketFlags(cmd, &m)
	cmd.Flags().Float64Var(&lo, "lo", 0, "lowest spot drawn (default 0.5 x strike)")
	cmd.Flags().Float64Var(&hi, "hi", 0, "highest spot drawn (default 1.5 x strike)")
	cmd.Flags().StringVarP(&file, "out", "o", "curve.png", "output file")
	return cmd
}
