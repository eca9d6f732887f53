// Package config loads pricing defaults from built-in values, an optional
// .env file and MCPRICE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "MCPRICE"

type Config struct {
	Market     MarketConfig     `mapstructure:"market"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Log        LogConfig        `mapstructure:"log"`
}

type MarketConfig struct {
	Spot       float64 `mapstructure:"spot"`
	Strike     float64 `mapstructure:"strike"`
	Maturity   float64 `mapstructure:"maturity"` // years
	Rate       float64 `mapstructure:"rate"`
	Volatility float64 `mapstructure:"volatility"`
	OptionType string  `mapstructure:"option_type"`
}

type SimulationConfig struct {
	Paths   int     `mapstructure:"paths"`
	Steps   int     `mapstructure:"steps"`
	Dt      float64 `mapstructure:"dt"`   // American step length in years
	Seed    uint64  `mapstructure:"seed"` // 0 seeds from the clock
	Workers int     `mapstructure:"workers"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("market.spot", 100.0)
	v.SetDefault("market.strike", 100.0)
	v.SetDefault("market.maturity", 1.0)
	v.SetDefault("market.rate", 0.05)
	v.SetDefault("market.volatility", 0.2)
	v.SetDefault("market.option_type", "call")

	v.SetDefault("simulation.paths", 100000)
	v.SetDefault("simulation.steps", 50)
	v.SetDefault("simulation.dt", 1.0/50)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.workers", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// Load reads envFile into the process environment when it exists and
// returns the merged configuration. Variables already set in the
// environment win over the file; MCPRICE_SIMULATION_PATHS overrides
// simulation.paths and so on.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration without reading the
// environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("config: built-in defaults do not decode: %v", err))
	}
	return &cfg
}
