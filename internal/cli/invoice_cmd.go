package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mazen-hassani/masar2-sub000/internal/cli/formatter"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

func newInvoiceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Allocate invoices to WBS items",
	}
	cmd.AddCommand(newInvoiceAllocateCmd(app))
	cmd.AddCommand(newInvoiceListCmd(app))
	cmd.AddCommand(newInvoiceRemoveCmd(app))
	return cmd
}

// resolveAllocation accepts a full allocation UUID or a UUID prefix within
// the owning item's allocations.
func resolveAllocation(ctx context.Context, app *App, projectRef, itemRef, ref string) (*domain.InvoiceAllocation, error) {
	item, err := resolveItem(ctx, app, projectRef, itemRef)
	if err != nil {
		return nil, err
	}
	allocs, err := app.Costs.ListAllocations(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(ref)
	var matches []*domain.InvoiceAllocation
	for _, cand := range allocs {
		if strings.HasPrefix(strings.ToLower(cand.ID), lower) {
			matches = append(matches, cand)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("allocation not found: %q", ref)
	default:
		return nil, fmt.Errorf("allocation ID prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func newInvoiceAllocateCmd(app *App) *cobra.Command {
	var (
		projectRef string
		itemRef    string
		amount     float64
		percent    float64
	)
	cmd := &cobra.Command{
		Use:   "allocate INVOICE_REF",
		Short: "Allocate an invoice share to a WBS item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			item, err := resolveItem(ctx, app, projectRef, itemRef)
			if err != nil {
				return err
			}
			a := &domain.InvoiceAllocation{
				WBSItemID:  item.ID,
				InvoiceRef: args[0],
				Amount:     amount,
				Percentage: percent,
			}
			if err := app.Costs.CreateAllocation(ctx, a); err != nil {
				return err
			}
			fmt.Printf("Allocated %s of invoice %s to %s %s\n",
				formatter.Money(a.Amount), a.InvoiceRef, item.DisplayRef(), item.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectRef, "project", "", "project reference, required for #seq lookups")
	cmd.Flags().StringVar(&itemRef, "item", "", "target WBS item reference")
	cmd.Flags().Float64Var(&amount, "amount", 0, "allocated amount")
	cmd.Flags().Float64Var(&percent, "percent", 0, "share of the invoice (0-100)")
	_ = cmd.MarkFlagRequired("item")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newInvoiceListCmd(app *App) *cobra.Command {
	var (
		projectRef string
		itemRef    string
	)
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List an item's invoice allocations",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			item, err := resolveItem(ctx, app, projectRef, itemRef)
			if err != nil {
				return err
			}
			allocs, err := app.Costs.ListAllocations(ctx, item.ID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatAllocationList(item, allocs))
			return nil
		},
	}
	cmd.Flags().StringVar(&projectRef, "project", "", "project reference, required for #seq lookups")
	cmd.Flags().StringVar(&itemRef, "item", "", "owning WBS item reference")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func newInvoiceRemoveCmd(app *App) *cobra.Command {
	var (
		projectRef string
		itemRef    string
	)
	cmd := &cobra.Command{
		Use:     "remove ALLOCATION",
		Short:   "Delete an invoice allocation",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := resolveAllocation(ctx, app, projectRef, itemRef, args[0])
			if err != nil {
				return err
			}
			if err := app.Costs.DeleteAllocation(ctx, a.ID); err != nil {
				return err
			}
			fmt.Printf("Removed allocation of invoice %s\n", a.InvoiceRef)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectRef, "project", "", "project reference, required for #seq lookups")
	cmd.Flags().StringVar(&itemRef, "item", "", "owning WBS item reference")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}
