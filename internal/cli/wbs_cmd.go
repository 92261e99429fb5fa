package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mazen-hassani/masar2-sub000/internal/cli/formatter"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

func newWBSCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wbs",
		Short: "Manage WBS items",
	}
	cmd.AddCommand(newWBSAddCmd(app))
	cmd.AddCommand(newWBSTreeCmd(app))
	cmd.AddCommand(newWBSInspectCmd(app))
	cmd.AddCommand(newWBSUpdateCmd(app))
	cmd.AddCommand(newWBSMoveCmd(app))
	cmd.AddCommand(newWBSRemoveCmd(app))
	return cmd
}

// loadTreeShape returns a project's live roots plus a parent-to-children map
// covering every live item. The formatter orders siblings itself.
func loadTreeShape(ctx context.Context, app *App, projectID string) ([]*domain.WBSItem, map[string][]*domain.WBSItem, error) {
	items, err := app.WBS.ListByProject(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	var roots []*domain.WBSItem
	childMap := make(map[string][]*domain.WBSItem)
	for _, item := range items {
		if item.ParentID == nil {
			roots = append(roots, item)
			continue
		}
		childMap[*item.ParentID] = append(childMap[*item.ParentID], item)
	}
	return roots, childMap, nil
}

func newWBSAddCmd(app *App) *cobra.Command {
	var (
		projectRef  string
		parentRef   string
		start       string
		end         string
		status      string
		percent     int
		plannedCost float64
		interactive bool
	)
	cmd := &cobra.Command{
		Use:   "add [TITLE]",
		Short: "Add a WBS item",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if interactive {
				if !app.IsInteractive() {
					return fmt.Errorf("interactive mode requires a terminal")
				}
				return runWBSAddForm(ctx, app, projectRef)
			}
			if len(args) == 0 {
				return fmt.Errorf("a title is required (or use -i for the interactive form)")
			}

			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			item := &domain.WBSItem{
				ProjectID: p.ID,
				Title:     args[0],
			}
			if parentRef != "" {
				parent, err := resolveItem(ctx, app, projectRef, parentRef)
				if err != nil {
					return err
				}
				item.ParentID = &parent.ID
			}
			if item.PlannedStart, err = parseOptionalDate("start", start); err != nil {
				return err
			}
			if item.PlannedEnd, err = parseOptionalDate("end", end); err != nil {
				return err
			}
			if cmd.Flags().Changed("status") {
				st, err := parseWBSStatus(status)
				if err != nil {
					return err
				}
				item.Status = st
			}
			if cmd.Flags().Changed("percent") {
				pct, err := parsePercent(percent)
				if err != nil {
					return err
				}
				item.PercentComplete = pct
			}
			if cmd.Flags().Changed("cost") {
				item.PlannedCost = &plannedCost
			}
			if err := app.WBS.Create(ctx, item); err != nil {
				return err
			}
			fmt.Printf("Added %s %s\n", item.DisplayRef(), item.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectRef, "project", "", "project reference")
	cmd.Flags().StringVar(&parentRef, "parent", "", "parent item reference (omit for a root item)")
	cmd.Flags().StringVar(&start, "start", "", "planned start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "planned end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "status (not_started, in_progress, delayed, completed, cancelled)")
	cmd.Flags().IntVar(&percent, "percent", 0, "percent complete (0-100)")
	cmd.Flags().Float64Var(&plannedCost, "cost", 0, "planned cost")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "fill in the item with a form")
	return cmd
}

func newWBSTreeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree PROJECT",
		Short: "Show a project's WBS tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			roots, childMap, err := loadTreeShape(ctx, app, p.ID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatWBSTree(formatter.WBSTreeData{
				Project:  p,
				Roots:    roots,
				ChildMap: childMap,
			}))
			return nil
		},
	}
	return cmd
}

func newWBSInspectCmd(app *App) *cobra.Command {
	var projectRef string
	cmd := &cobra.Command{
		Use:   "inspect ITEM",
		Short: "Show a WBS item in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			item, err := resolveItem(ctx, app, projectRef, args[0])
			if err != nil {
				return err
			}
			children, err := app.WBS.ListChildren(ctx, item.ID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatWBSInspect(item, len(children)))
			if len(children) > 0 {
				sum, err := app.Aggregation.GetAggregationSummary(ctx, item.ID)
				if err != nil {
					return err
				}
				fmt.Println(formatter.FormatAggregationSummary(sum))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&projectRef, "project", "", "project reference, required for #seq lookups")
	return cmd
}

func newWBSUpdateCmd(app *App) *cobra.Command {
	var (
		projectRef  string
		title       string
		start       string
		end         string
		actualStart string
		actualEnd   string
		status      string
		percent     int
		plannedCost float64
		actualCost  float64
	)
	cmd := &cobra.Command{
		Use:   "update ITEM",
		Short: "Update WBS item fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			item, err := resolveItem(ctx, app, projectRef, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("title") {
				item.Title = title
			}
			if cmd.Flags().Changed("start") {
				if item.PlannedStart, err = parseOptionalDate("start", start); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("end") {
				if item.PlannedEnd, err = parseOptionalDate("end", end); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("actual-start") {
				if item.ActualStart, err = parseOptionalDate("actual-start", actualStart); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("actual-end") {
				if item.ActualEnd, err = parseOptionalDate("actual-end", actualEnd); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("status") {
				st, err := parseWBSStatus(status)
				if err != nil {
					return err
				}
				item.Status = st
			}
			if cmd.Flags().Changed("percent") {
				pct, err := parsePercent(percent)
				if err != nil {
					return err
				}
				item.PercentComplete = pct
			}
			if cmd.Flags().Changed("cost") {
				item.PlannedCost = &plannedCost
			}
			if cmd.Flags().Changed("actual-cost") {
				item.ActualCost = &actualCost
			}
			if err := app.WBS.Update(ctx, item); err != nil {
				return err
			}
			fmt.Printf("Updated %s %s\n", item.DisplayRef(), item.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectRef, "project", "", "project reference, required for #seq lookups")
	cmd.Flags().StringVar(&title, "title", "", "item title")
	cmd.Flags().StringVar(&start, "start", "", "planned start (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&end, "end", "", "planned end (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&actualStart, "actual-start", "", "actual start (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&actualEnd, "actual-end", "", "actual end (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&status, "status", "", "status (not_started, in_progress, delayed, completed, cancelled)")
	cmd.Flags().IntVar(&percent, "percent", 0, "percent complete (0-100)")
	cmd.Flags().Float64Var(&plannedCost, "cost", 0, "planned cost")
	cmd.Flags().Float64Var(&actualCost, "actual-cost", 0, "actual cost")
	return cmd
}

func newWBSMoveCmd(app *App) *cobra.Command {
	var (
		projectRef string
		parentRef  string
		toRoot     bool
	)
	cmd := &cobra.Command{
		Use:   "move ITEM",
		Short: "Reparent a WBS item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if toRoot == (parentRef != "") {
				return fmt.Errorf("specify exactly one of --parent or --root")
			}
			item, err := resolveItem(ctx, app, projectRef, args[0])
			if err != nil {
				return err
			}
			var newParentID *string
			dest := "the root level"
			if parentRef != "" {
				parent, err := resolveItem(ctx, app, projectRef, parentRef)
				if err != nil {
					return err
				}
				newParentID = &parent.ID
				dest = fmt.Sprintf("under %s %s", parent.DisplayRef(), parent.Title)
			}
			if err := app.WBS.Move(ctx, item.ID, newParentID); err != nil {
				return err
			}
			fmt.Printf("Moved %s %s to %s\n", item.DisplayRef(), item.Title, dest)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectRef, "project", "", "project reference, required for #seq lookups")
	cmd.Flags().StringVar(&parentRef, "parent", "", "new parent item reference")
	cmd.Flags().BoolVar(&toRoot, "root", false, "move to the root level")
	return cmd
}

func newWBSRemoveCmd(app *App) *cobra.Command {
	var projectRef string
	cmd := &cobra.Command{
		Use:     "remove ITEM",
		Short:   "Remove a WBS item and its subtree",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			item, err := resolveItem(ctx, app, projectRef, args[0])
			if err != nil {
				return err
			}
			count, err := app.WBS.Remove(ctx, item.ID)
			if err != nil {
				return err
			}
			fmt.Printf("Removed %s %s (%d items)\n", item.DisplayRef(), item.Title, count)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectRef, "project", "", "project reference, required for #seq lookups")
	return cmd
}
