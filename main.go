package main

import (
	"os"

	"github.com/bcdannyboy/mcprice/cli"
	"github.com/bcdannyboy/mcprice/config"
	"github.com/bcdannyboy/mcprice/logging"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		bootLogger := logging.New("info", false, os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.JSON, os.Stderr)

	if err := cli.NewRootCmd(cfg, logger).Execute(); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
