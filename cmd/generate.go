package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shopetl/shopetl/internal/datagen"
)

var (
	genUsers      int
	genProducts   int
	genOrders     int
	genMaxReviews int
	genSeed       uint64
	genOutputDir  string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate synthetic e-commerce CSV files",
	Long: `Synthesize users, products, orders, order items and reviews with a
seeded fake-data source and write them as header-bearing CSV files. The
same seed always reproduces the same files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("users") {
			cfg.Generate.Users = genUsers
		}
		if flags.Changed("products") {
			cfg.Generate.Products = genProducts
		}
		if flags.Changed("orders") {
			cfg.Generate.Orders = genOrders
		}
		if flags.Changed("max-reviews") {
			cfg.Generate.MaxReviews = genMaxReviews
		}
		if flags.Changed("seed") {
			cfg.Generate.Seed = genSeed
		}
		if flags.Changed("out") {
			cfg.Generate.OutputDir = genOutputDir
		}

		ds, err := datagen.Run(cfg.Generate, logger)
		if err != nil {
			return err
		}
		if err := ds.WriteCSVs(cfg.Generate.OutputDir); err != nil {
			return err
		}

		abs, err := filepath.Abs(cfg.Generate.OutputDir)
		if err != nil {
			abs = cfg.Generate.OutputDir
		}
		fmt.Printf("Generated data in %s\n", abs)
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVar(&genUsers, "users", 500, "number of users to generate")
	generateCmd.Flags().IntVar(&genProducts, "products", 150, "number of products to generate")
	generateCmd.Flags().IntVar(&genOrders, "orders", 800, "number of orders to generate")
	generateCmd.Flags().IntVar(&genMaxReviews, "max-reviews", 400, "maximum number of review trials")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 42, "random seed")
	generateCmd.Flags().StringVar(&genOutputDir, "out", "data", "output directory for CSV files")
	rootCmd.AddCommand(generateCmd)
}
