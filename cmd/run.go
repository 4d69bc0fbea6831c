package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/shopetl/shopetl/internal/datagen"
	"github.com/shopetl/shopetl/internal/loader"
	"github.com/shopetl/shopetl/internal/reports"
	"github.com/shopetl/shopetl/internal/store"
)

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	summaryOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	summaryDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	summaryBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: generate, load, report",
	Long: `Execute all three stages in sequence against one configuration and
print a summary of the rows loaded and reports written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ds, err := datagen.Run(cfg.Generate, logger)
		if err != nil {
			return err
		}
		if err := ds.WriteCSVs(cfg.Generate.OutputDir); err != nil {
			return err
		}

		st, err := store.Open(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer st.Close()

		loadResults, err := loader.Run(ctx, st, cfg.Load.DataDir, logger)
		if err != nil {
			return err
		}

		reportResults, err := reports.Run(ctx, st, cfg.Reports.OutputDir, logger)
		if err != nil {
			return err
		}

		fmt.Println(renderSummary(loadResults, reportResults, cfg.Reports.OutputDir))
		return nil
	},
}

func renderSummary(loads []loader.Result, exports []reports.Result, outputDir string) string {
	var b strings.Builder

	b.WriteString(summaryTitleStyle.Render("Pipeline Summary"))
	b.WriteString("\n\n")

	b.WriteString(summaryDimStyle.Render("Tables loaded"))
	b.WriteString("\n")
	for _, r := range loads {
		b.WriteString(fmt.Sprintf("  %-12s %s\n", r.Table, summaryOKStyle.Render(fmt.Sprintf("%d rows", r.Rows))))
	}
	b.WriteString("\n")

	b.WriteString(summaryDimStyle.Render("Reports written to " + outputDir))
	b.WriteString("\n")
	for _, r := range exports {
		b.WriteString(fmt.Sprintf("  %-28s %s\n", r.File, summaryOKStyle.Render(fmt.Sprintf("%d rows", r.Rows))))
	}

	return summaryBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func init() {
	rootCmd.AddCommand(runCmd)
}
