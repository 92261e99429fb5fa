package cli

import (
	"github.com/spf13/cobra"

	"github.com/mazen-hassani/masar2-sub000/internal/aggregation"
	"github.com/mazen-hassani/masar2-sub000/internal/finance"
	"github.com/mazen-hassani/masar2-sub000/internal/service"
)

// App bundles the services the CLI commands call plus the configured
// defaults. Commands receive it at construction and never reach into the
// database directly, which keeps them testable against fakes.
type App struct {
	Projects    service.ProjectService
	WBS         service.WBSService
	Aggregation service.AggregationService
	Costs       service.CostService
	Finance     service.FinanceService
	Portfolio   service.PortfolioService
	Import      service.ImportService

	// Options and Thresholds carry the configured aggregation and budget
	// health defaults. Command flags override them per invocation.
	Options    aggregation.Options
	Thresholds finance.HealthThresholds

	// IsInteractive reports whether the session is attached to a terminal.
	// Wizards and the TUI refuse to start when it returns false.
	IsInteractive func() bool
}

// NewRootCmd builds the masar root command with all subcommands attached.
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "masar",
		Short: "Hierarchical project budgeting and forecasting",
		Long: `Masar tracks projects as work breakdown structures, rolls dates, status,
progress and cost up the hierarchy, and forecasts budgets with earned
value analysis.

Projects are referenced by short ID (ROAD01), UUID or UUID prefix; WBS
items by #sequence within a project or by UUID.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newProjectCmd(app))
	rootCmd.AddCommand(newWBSCmd(app))
	rootCmd.AddCommand(newCostCmd(app))
	rootCmd.AddCommand(newInvoiceCmd(app))
	rootCmd.AddCommand(newRollupCmd(app))
	rootCmd.AddCommand(newForecastCmd(app))
	rootCmd.AddCommand(newTrendCmd(app))
	rootCmd.AddCommand(newSnapshotCmd(app))
	rootCmd.AddCommand(newHealthCmd(app))
	rootCmd.AddCommand(newRebuildCmd(app))
	rootCmd.AddCommand(newImportCmd(app))
	rootCmd.AddCommand(newPortfolioCmd(app))
	rootCmd.AddCommand(newUICmd(app))

	return rootCmd
}
