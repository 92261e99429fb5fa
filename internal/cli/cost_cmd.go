package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mazen-hassani/masar2-sub000/internal/cli/formatter"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
	"github.com/mazen-hassani/masar2-sub000/internal/repository"
)

func newCostCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Manage cost items on WBS items",
	}
	cmd.AddCommand(newCostAddCmd(app))
	cmd.AddCommand(newCostListCmd(app))
	cmd.AddCommand(newCostUpdateCmd(app))
	cmd.AddCommand(newCostRemoveCmd(app))
	return cmd
}

// resolveCostItem accepts a full cost item UUID, or a UUID prefix when an
// owning item reference narrows the candidate set.
func resolveCostItem(ctx context.Context, app *App, projectRef, itemRef, ref string) (*domain.CostItem, error) {
	c, err := app.Costs.GetCostItem(ctx, ref)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if itemRef == "" {
		return nil, fmt.Errorf("cost item not found: %q (pass --item to match by ID prefix)", ref)
	}

	item, err := resolveItem(ctx, app, projectRef, itemRef)
	if err != nil {
		return nil, err
	}
	costs, err := app.Costs.ListCostItems(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(ref)
	var matches []*domain.CostItem
	for _, cand := range costs {
		if strings.HasPrefix(strings.ToLower(cand.ID), lower) {
			matches = append(matches, cand)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("cost item not found: %q", ref)
	default:
		return nil, fmt.Errorf("cost item ID prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func newCostAddCmd(app *App) *cobra.Command {
	var (
		projectRef string
		itemRef    string
		category   string
		planned    float64
		actual     float64
	)
	cmd := &cobra.Command{
		Use:   "add DESCRIPTION",
		Short: "Add a cost item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			item, err := resolveItem(ctx, app, projectRef, itemRef)
			if err != nil {
				return err
			}
			c := &domain.CostItem{
				WBSItemID:     item.ID,
				Description:   args[0],
				Category:      category,
				PlannedAmount: planned,
				ActualAmount:  actual,
			}
			if err := app.Costs.CreateCostItem(ctx, c); err != nil {
				return err
			}
			fmt.Printf("Added cost item %s to %s %s\n", c.Description, item.DisplayRef(), item.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectRef, "project", "", "project reference, required for #seq lookups")
	cmd.Flags().StringVar(&itemRef, "item", "", "owning WBS item reference")
	cmd.Flags().StringVar(&category, "category", "", "cost category (e.g. materials, labour)")
	cmd.Flags().Float64Var(&planned, "planned", 0, "planned amount")
	cmd.Flags().Float64Var(&actual, "actual", 0, "actual amount")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func newCostListCmd(app *App) *cobra.Command {
	var (
		projectRef string
		itemRef    string
	)
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List an item's cost items",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			item, err := resolveItem(ctx, app, projectRef, itemRef)
			if err != nil {
				return err
			}
			costs, err := app.Costs.ListCostItems(ctx, item.ID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatCostItemList(item, costs))
			return nil
		},
	}
	cmd.Flags().StringVar(&projectRef, "project", "", "project reference, required for #seq lookups")
	cmd.Flags().StringVar(&itemRef, "item", "", "owning WBS item reference")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func newCostUpdateCmd(app *App) *cobra.Command {
	var (
		projectRef  string
		itemRef     string
		description string
		category    string
		planned     float64
		actual      float64
	)
	cmd := &cobra.Command{
		Use:   "update COST",
		Short: "Update a cost item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := resolveCostItem(ctx, app, projectRef, itemRef, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("description") {
				c.Description = description
			}
			if cmd.Flags().Changed("category") {
				c.Category = category
			}
			if cmd.Flags().Changed("planned") {
				c.PlannedAmount = planned
			}
			if cmd.Flags().Changed("actual") {
				c.ActualAmount = actual
			}
			if err := app.Costs.UpdateCostItem(ctx, c); err != nil {
				return err
			}
			fmt.Printf("Updated cost item %s\n", c.Description)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectRef, "project", "", "project reference, required for #seq lookups")
	cmd.Flags().StringVar(&itemRef, "item", "", "owning WBS item reference, enables ID prefix matching")
	cmd.Flags().StringVar(&description, "description", "", "cost item description")
	cmd.Flags().StringVar(&category, "category", "", "cost category")
	cmd.Flags().Float64Var(&planned, "planned", 0, "planned amount")
	cmd.Flags().Float64Var(&actual, "actual", 0, "actual amount")
	return cmd
}

func newCostRemoveCmd(app *App) *cobra.Command {
	var (
		projectRef string
		itemRef    string
	)
	cmd := &cobra.Command{
		Use:     "remove COST",
		Short:   "Delete a cost item",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := resolveCostItem(ctx, app, projectRef, itemRef, args[0])
			if err != nil {
				return err
			}
			if err := app.Costs.DeleteCostItem(ctx, c.ID); err != nil {
				return err
			}
			fmt.Printf("Removed cost item %s\n", c.Description)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectRef, "project", "", "project reference, required for #seq lookups")
	cmd.Flags().StringVar(&itemRef, "item", "", "owning WBS item reference, enables ID prefix matching")
	return cmd
}
