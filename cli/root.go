// Package cli provides the mcprice command line.
package cli

import (
	"io"
	"os"

	"github.com/bcdannyboy/mcprice/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const Version = "0.1.0"

// App holds what every command needs.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	JSON   bool
}

// NewRootCmd creates the root command. Flag defaults come from cfg.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "mcprice",
		Short: "Monte Carlo option pricer",
		Long: `mcprice prices European and American options on a non-dividend paying
stock by simulating geometric Brownian motion. American options are priced
with the Longstaff-Schwartz least-squares method.

Defaults are read from .env and MCPRICE_* environment variables, e.g.
MCPRICE_SIMULATION_PATHS=200000 or MCPRICE_MARKET_VOLATILITY=0.3.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&app.JSON, "json", cfg.Log.JSON, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.SetOut(os.Stdout)

	rootCmd.AddCommand(
		newEuropeanCmd(app),
		newAmericanCmd(app),
		newCompareCmd(app),
		newGreeksCmd(app),
		newPlotCmd(app),
	)

	return rootCmd
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
