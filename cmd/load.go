package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shopetl/shopetl/internal/loader"
	"github.com/shopetl/shopetl/internal/store"
)

var (
	loadDriver  string
	loadDBPath  string
	loadDSN     string
	loadDataDir string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the generated CSV files into the database",
	Long: `Drop and recreate the five destination tables, then bulk-insert the
rows from the CSV files. Tables whose CSV file is missing load zero rows;
a missing data directory aborts the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("driver") {
			cfg.Database.Driver = loadDriver
		}
		if flags.Changed("db") {
			cfg.Database.Path = loadDBPath
		}
		if flags.Changed("dsn") {
			cfg.Database.DSN = loadDSN
		}
		if flags.Changed("data") {
			cfg.Load.DataDir = loadDataDir
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, err := store.Open(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer st.Close()

		results, err := loader.Run(ctx, st, cfg.Load.DataDir, logger)
		if err != nil {
			return err
		}

		if cfg.Database.Driver == "" || cfg.Database.Driver == "sqlite" {
			abs, absErr := filepath.Abs(cfg.Database.Path)
			if absErr != nil {
				abs = cfg.Database.Path
			}
			fmt.Printf("Database written to %s\n", abs)
		}
		for _, r := range results {
			fmt.Printf("%s: %d rows\n", r.Table, r.Rows)
		}
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadDriver, "driver", "sqlite", "database driver (sqlite, postgres)")
	loadCmd.Flags().StringVar(&loadDBPath, "db", "ecom.db", "sqlite database file")
	loadCmd.Flags().StringVar(&loadDSN, "dsn", "", "postgres connection string")
	loadCmd.Flags().StringVar(&loadDataDir, "data", "data", "directory containing the CSV files")
	rootCmd.AddCommand(loadCmd)
}
