package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shopetl/shopetl/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long:  `Write the default shopetl configuration to ~/.shopetl/shopetl.yaml (or the --config path).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath := config.ExpandHome(config.DefaultPath)
		if cfgFile != "" {
			cfgPath = cfgFile
		}

		if _, err := os.Stat(cfgPath); err == nil && !initForce {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", cfgPath)
		}

		if err := config.Default().Save(cfgPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Printf("Config written to %s\n", cfgPath)
		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Println("  shopetl generate   — Generate the CSV dataset")
		fmt.Println("  shopetl load       — Load the CSVs into the database")
		fmt.Println("  shopetl report     — Export the aggregation reports")
		fmt.Println("  shopetl run        — All three in sequence")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
