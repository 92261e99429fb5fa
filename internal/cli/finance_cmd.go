package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mazen-hassani/masar2-sub000/internal/app"
	"github.com/mazen-hassani/masar2-sub000/internal/cli/formatter"
)

func newRollupCmd(cliApp *App) *cobra.Command {
	var projectRef string
	cmd := &cobra.Command{
		Use:   "rollup ITEM",
		Short: "Show an item's cost rollup",
		Long: `Rollup sums an item's own cost items with the aggregated costs of its
children and reports variances plus any invoice allocations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			item, err := resolveItem(ctx, cliApp, projectRef, args[0])
			if err != nil {
				return err
			}
			r, err := cliApp.Finance.CalculateItemCostRollup(ctx, item.ID)
			if err != nil {
				return err
			}
			if r == nil {
				fmt.Printf("No cost data for %s %s\n", item.DisplayRef(), item.Title)
				return nil
			}
			fmt.Println(formatter.FormatRollup(item, r))
			return nil
		},
	}
	cmd.Flags().StringVar(&projectRef, "project", "", "project reference, required for #seq lookups")
	return cmd
}

func newForecastCmd(cliApp *App) *cobra.Command {
	var (
		entityType string
		projectRef string
		progress   int
		method     string
	)
	cmd := &cobra.Command{
		Use:   "forecast ENTITY",
		Short: "Forecast an entity's budget with earned value analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, name, err := resolveFinanceEntity(ctx, cliApp, entityType, projectRef, args[0])
			if err != nil {
				return err
			}
			req := app.NewForecastRequest(entityType, id)
			if cmd.Flags().Changed("progress") {
				pct, err := parsePercent(progress)
				if err != nil {
					return err
				}
				req.Progress = &pct
			}
			if cmd.Flags().Changed("method") {
				req.Method = method
			}
			f, err := cliApp.Finance.CalculateBudgetForecast(ctx, req)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatForecast(name, f))
			return nil
		},
	}
	cmd.Flags().StringVar(&entityType, "type", "project", "entity type (project or wbs_item)")
	cmd.Flags().StringVar(&projectRef, "project", "", "project reference, required for #seq lookups")
	cmd.Flags().IntVar(&progress, "progress", 0, "override percent complete (0-100)")
	cmd.Flags().StringVar(&method, "method", app.ForecastMethodEVM, "forecasting method")
	return cmd
}

func newTrendCmd(cliApp *App) *cobra.Command {
	var (
		entityType string
		projectRef string
		from       string
		to         string
	)
	cmd := &cobra.Command{
		Use:   "trend ENTITY",
		Short: "Fit a cost trend over an entity's snapshots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, name, err := resolveFinanceEntity(ctx, cliApp, entityType, projectRef, args[0])
			if err != nil {
				return err
			}
			window, err := parseWindow(from, to)
			if err != nil {
				return err
			}
			tr, err := cliApp.Finance.AnalyzeCostTrend(ctx, app.TrendRequest{
				EntityType: entityType,
				EntityID:   id,
				From:       window.from,
				To:         window.to,
			})
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatTrend(name, tr))
			return nil
		},
	}
	cmd.Flags().StringVar(&entityType, "type", "project", "entity type (project or wbs_item)")
	cmd.Flags().StringVar(&projectRef, "project", "", "project reference, required for #seq lookups")
	cmd.Flags().StringVar(&from, "from", "", "window start (YYYY-MM-DD, default 90 days ago)")
	cmd.Flags().StringVar(&to, "to", "", "window end (YYYY-MM-DD, default today)")
	return cmd
}

func newSnapshotCmd(cliApp *App) *cobra.Command {
	var (
		entityType string
		projectRef string
		list       bool
		from       string
		to         string
	)
	cmd := &cobra.Command{
		Use:   "snapshot ENTITY",
		Short: "Record a cost snapshot, or list recorded ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, name, err := resolveFinanceEntity(ctx, cliApp, entityType, projectRef, args[0])
			if err != nil {
				return err
			}
			if list {
				window, err := parseWindow(from, to)
				if err != nil {
					return err
				}
				snaps, err := cliApp.Finance.ListSnapshots(ctx, entityType, id, window.from, window.to)
				if err != nil {
					return err
				}
				fmt.Println(formatter.FormatSnapshotList(name, snaps))
				return nil
			}
			snap, err := cliApp.Finance.RecordSnapshot(ctx, entityType, id)
			if err != nil {
				return err
			}
			fmt.Printf("Recorded snapshot for %s: planned %s, actual %s\n",
				name, formatter.Money(snap.PlannedCost), formatter.Money(snap.ActualCost))
			return nil
		},
	}
	cmd.Flags().StringVar(&entityType, "type", "project", "entity type (project or wbs_item)")
	cmd.Flags().StringVar(&projectRef, "project", "", "project reference, required for #seq lookups")
	cmd.Flags().BoolVar(&list, "list", false, "list snapshots instead of recording one")
	cmd.Flags().StringVar(&from, "from", "", "list window start (YYYY-MM-DD, default 90 days ago)")
	cmd.Flags().StringVar(&to, "to", "", "list window end (YYYY-MM-DD, default today)")
	return cmd
}

func newHealthCmd(cliApp *App) *cobra.Command {
	var (
		entityType string
		projectRef string
		warnUtil   float64
		critUtil   float64
		warnVar    float64
		critVar    float64
	)
	cmd := &cobra.Command{
		Use:   "health ENTITY",
		Short: "Classify an entity's budget health",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, name, err := resolveFinanceEntity(ctx, cliApp, entityType, projectRef, args[0])
			if err != nil {
				return err
			}
			thresholds := cliApp.Thresholds
			if cmd.Flags().Changed("warn-utilization") {
				thresholds.UtilizationWarning = warnUtil
			}
			if cmd.Flags().Changed("crit-utilization") {
				thresholds.UtilizationCritical = critUtil
			}
			if cmd.Flags().Changed("warn-variance") {
				thresholds.VarianceWarning = warnVar
			}
			if cmd.Flags().Changed("crit-variance") {
				thresholds.VarianceCritical = critVar
			}
			h, err := cliApp.Finance.CheckBudgetHealth(ctx, app.NewForecastRequest(entityType, id), thresholds)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatHealth(name, h))
			return nil
		},
	}
	cmd.Flags().StringVar(&entityType, "type", "project", "entity type (project or wbs_item)")
	cmd.Flags().StringVar(&projectRef, "project", "", "project reference, required for #seq lookups")
	cmd.Flags().Float64Var(&warnUtil, "warn-utilization", 0, "utilization % above which health is warning")
	cmd.Flags().Float64Var(&critUtil, "crit-utilization", 0, "utilization % above which health is critical")
	cmd.Flags().Float64Var(&warnVar, "warn-variance", 0, "projected variance % below which health is warning")
	cmd.Flags().Float64Var(&critVar, "crit-variance", 0, "projected variance % below which health is critical")
	return cmd
}

// snapshotWindow is a parsed --from/--to pair. Empty flags default to the
// last 90 days ending today.
type snapshotWindow struct {
	from time.Time
	to   time.Time
}

func parseWindow(from, to string) (snapshotWindow, error) {
	now := time.Now().UTC()
	w := snapshotWindow{from: now.AddDate(0, 0, -90), to: now}
	if from != "" {
		t, err := parseDate("from", from)
		if err != nil {
			return snapshotWindow{}, err
		}
		w.from = t
	}
	if to != "" {
		t, err := parseDate("to", to)
		if err != nil {
			return snapshotWindow{}, err
		}
		// Include the whole end day.
		w.to = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return w, nil
}
