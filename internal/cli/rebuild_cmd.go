package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mazen-hassani/masar2-sub000/internal/aggregation"
	"github.com/mazen-hassani/masar2-sub000/internal/cli/formatter"
)

func newRebuildCmd(app *App) *cobra.Command {
	var (
		dateHandling string
		weighting    string
		flat         bool
	)
	cmd := &cobra.Command{
		Use:   "rebuild PROJECT",
		Short: "Recompute every aggregate in a project's hierarchy",
		Long: `Rebuild walks the WBS bottom-up and recomputes the derived dates, status,
progress and cost of every parent node. Items that fail to aggregate are
reported without stopping the pass.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			opts := app.Options
			if cmd.Flags().Changed("date-handling") {
				dh, err := aggregation.ParseDateHandling(dateHandling)
				if err != nil {
					return err
				}
				opts.DateHandling = dh
			}
			if cmd.Flags().Changed("weighting") {
				pw, err := aggregation.ParseProgressWeighting(weighting)
				if err != nil {
					return err
				}
				opts.ProgressWeighting = pw
			}
			if flat {
				opts.RecursiveAggregation = false
			}
			report, err := app.Aggregation.RebuildHierarchy(ctx, p.ID, opts)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatRebuildReport(p, report))
			return nil
		},
	}
	cmd.Flags().StringVar(&dateHandling, "date-handling", "", "dateless children handling (propagate, skip, require)")
	cmd.Flags().StringVar(&weighting, "weighting", "", "progress weighting (cost, equal, hybrid)")
	cmd.Flags().BoolVar(&flat, "flat", false, "sum only direct children's own costs")
	return cmd
}
