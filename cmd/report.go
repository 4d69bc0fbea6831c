package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shopetl/shopetl/internal/reports"
	"github.com/shopetl/shopetl/internal/store"
)

var (
	reportDriver    string
	reportDBPath    string
	reportDSN       string
	reportOutputDir string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export the aggregation reports to CSV",
	Long: `Run the four fixed aggregation queries against the loaded tables and
write each result set to its own CSV file in the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("driver") {
			cfg.Database.Driver = reportDriver
		}
		if flags.Changed("db") {
			cfg.Database.Path = reportDBPath
		}
		if flags.Changed("dsn") {
			cfg.Database.DSN = reportDSN
		}
		if flags.Changed("out") {
			cfg.Reports.OutputDir = reportOutputDir
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, err := store.OpenExisting(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer st.Close()

		results, err := reports.Run(ctx, st, cfg.Reports.OutputDir, logger)
		if err != nil {
			return err
		}

		for _, r := range results {
			fmt.Printf("Wrote %s with %d rows\n", r.File, r.Rows)
		}
		abs, err := filepath.Abs(cfg.Reports.OutputDir)
		if err != nil {
			abs = cfg.Reports.OutputDir
		}
		fmt.Printf("Reports written to %s\n", abs)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportDriver, "driver", "sqlite", "database driver (sqlite, postgres)")
	reportCmd.Flags().StringVar(&reportDBPath, "db", "ecom.db", "sqlite database file")
	reportCmd.Flags().StringVar(&reportDSN, "dsn", "", "postgres connection string")
	reportCmd.Flags().StringVar(&reportOutputDir, "out", "reports", "output directory for report CSV files")
	rootCmd.AddCommand(reportCmd)
}
