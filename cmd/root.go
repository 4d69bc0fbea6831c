package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shopetl/shopetl/internal/config"
	"github.com/shopetl/shopetl/internal/logging"
)

var (
	cfgFile  string
	logLevel string
	version  = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "shopetl",
	Short: "shopetl — synthetic e-commerce data pipeline",
	Long: `shopetl runs a three-stage batch pipeline over a toy e-commerce dataset:

  generate   synthesize users, products, orders, order items and reviews as CSV
  load       recreate the five tables and bulk-insert the CSV rows
  report     run the fixed aggregation queries and export the results to CSV

Each stage hands off through files only, so any stage can be rerun from scratch.`,
}

func Execute() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.shopetl/shopetl.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// loadConfig reads the config file (or defaults when none exists) and
// builds the logger, honoring the --log-level override.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	return cfg, logging.Setup(level), nil
}
