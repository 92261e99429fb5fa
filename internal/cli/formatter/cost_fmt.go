package formatter

import (
	"fmt"
	"strings"

	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// FormatCostItemList renders an item's cost ledger as an aligned table with
// planned and actual totals underneath.
func FormatCostItemList(item *domain.WBSItem, costs []*domain.CostItem) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(item.Title) + "  " + Dim(item.DisplayRef()) + "\n\n")

	if len(costs) == 0 {
		b.WriteString(StyleDim.Render("No cost items yet. Add one with: masar cost add --item " + item.DisplayRef() + " \"Description\""))
		return RenderBox("Cost Items", b.String())
	}

	headers := []string{"ID", "DESCRIPTION", "CATEGORY", "PLANNED", "ACTUAL", "VARIANCE"}
	rows := make([][]string, 0, len(costs))
	var planned, actual float64
	for _, c := range costs {
		planned += c.PlannedAmount
		actual += c.ActualAmount
		category := c.Category
		if category == "" {
			category = StyleDim.Render("--")
		}
		rows = append(rows, []string{
			StyleDim.Render(TruncID(c.ID)),
			c.Description,
			category,
			Money(c.PlannedAmount),
			Money(c.ActualAmount),
			VarianceBadge(c.Variance()),
		})
	}
	b.WriteString(RenderAlignedTable(headers, rows, 3, 4, 5))
	b.WriteString("\n" + Dim(fmt.Sprintf("Totals: planned %s, actual %s", Money(planned), Money(actual))))

	return RenderBox("Cost Items", b.String())
}

// FormatAllocationList renders an item's invoice allocations.
func FormatAllocationList(item *domain.WBSItem, allocs []*domain.InvoiceAllocation) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(item.Title) + "  " + Dim(item.DisplayRef()) + "\n\n")

	if len(allocs) == 0 {
		b.WriteString(StyleDim.Render("No invoice allocations yet. Add one with: masar invoice allocate REF --item " + item.DisplayRef()))
		return RenderBox("Invoice Allocations", b.String())
	}

	headers := []string{"ID", "INVOICE", "AMOUNT", "SHARE", "RECORDED"}
	rows := make([][]string, 0, len(allocs))
	var total float64
	for _, a := range allocs {
		total += a.Amount
		share := StyleDim.Render("--")
		if a.Percentage > 0 {
			share = Percent(a.Percentage)
		}
		rows = append(rows, []string{
			StyleDim.Render(TruncID(a.ID)),
			a.InvoiceRef,
			Money(a.Amount),
			share,
			HumanDate(a.CreatedAt),
		})
	}
	b.WriteString(RenderAlignedTable(headers, rows, 2, 3))
	b.WriteString("\n" + Dim(fmt.Sprintf("Total allocated: %s across %d invoices", Money(total), len(allocs))))

	return RenderBox("Invoice Allocations", b.String())
}
