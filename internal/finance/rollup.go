package finance

import "github.com/mazen-hassani/masar2-sub000/internal/domain"

// RollupInput is everything the calculator reads for one WBS item: its own
// cost ledger, its direct children and any invoice allocations against it.
type RollupInput struct {
	ItemID      string
	CostItems   []*domain.CostItem
	Children    []*domain.WBSItem
	Allocations []*domain.InvoiceAllocation
}

// Rollup is the cost picture of a single WBS item.
type Rollup struct {
	ItemID string

	DirectPlanned      float64
	DirectActual       float64
	ChildrenAggregated float64

	TotalPlanned float64
	TotalActual  float64

	TotalVariance     float64
	TotalVariancePct  float64
	DirectVariance    float64
	DirectVariancePct float64

	AllocationCount  int
	AllocationAmount float64

	HasChildren       bool
	ChildCount        int
	ChildrenWithCosts int
	CostItemCount     int
}

// ComputeRollup combines direct cost items, the children's aggregated cost
// and invoice allocations. The children's figure is added to both totals:
// an aggregated cost does not separate planned from actual, so it raises
// both sides equally. Allocations are reported but never summed into the
// cost totals.
func ComputeRollup(in RollupInput) Rollup {
	r := Rollup{
		ItemID:        in.ItemID,
		CostItemCount: len(in.CostItems),
		HasChildren:   len(in.Children) > 0,
		ChildCount:    len(in.Children),
	}

	for _, ci := range in.CostItems {
		r.DirectPlanned += ci.PlannedAmount
		r.DirectActual += ci.ActualAmount
	}
	for _, c := range in.Children {
		r.ChildrenAggregated += c.AggregatedCost
		if childHasCost(c) {
			r.ChildrenWithCosts++
		}
	}
	for _, a := range in.Allocations {
		r.AllocationCount++
		r.AllocationAmount += a.Amount
	}

	r.TotalPlanned = r.DirectPlanned + r.ChildrenAggregated
	r.TotalActual = r.DirectActual + r.ChildrenAggregated
	r.TotalVariance = r.TotalPlanned - r.TotalActual
	r.TotalVariancePct = pctOf(r.TotalVariance, r.TotalPlanned)
	r.DirectVariance = r.DirectPlanned - r.DirectActual
	r.DirectVariancePct = pctOf(r.DirectVariance, r.DirectPlanned)
	return r
}

func childHasCost(w *domain.WBSItem) bool {
	return domain.Float64FromPtrWithDefault(0, w.PlannedCost) != 0 ||
		domain.Float64FromPtrWithDefault(0, w.ActualCost) != 0 ||
		w.AggregatedCost != 0
}

// pctOf returns part/whole as a percentage, or 0 when whole is 0.
func pctOf(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
