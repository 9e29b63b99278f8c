package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"cawver-web/internal/config"
	"cawver-web/pkg/logger"
	"cawver-web/pkg/validator"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "cawver",
		Short:         "cawver marketing site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCommand(), newRoutesCommand())
	return root
}

// loadConfig reads .env when present and the process environment.
func loadConfig() *config.Config {
	logger.Init()

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using environment variables", nil)
	}

	cfg := config.New()
	logger.SetLevel(cfg.LogLevel)
	if cfg.IsProduction() {
		logger.UseJSON()
	}
	validator.Init()

	return cfg
}
