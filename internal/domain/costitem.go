package domain

import (
	"fmt"
	"time"
)

// CostItem is one ledger line attached to a WBS item. The item-level
// PlannedCost/ActualCost stay the authored budget figures the tree
// aggregation consumes; cost items feed the per-item rollup instead.
type CostItem struct {
	ID            string
	WBSItemID     string
	Description   string
	Category      string
	PlannedAmount float64
	ActualAmount  float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Variance returns planned minus actual; positive means under budget.
func (c *CostItem) Variance() float64 {
	return c.PlannedAmount - c.ActualAmount
}

// Validate checks that the cost item holds legal values.
func (c *CostItem) Validate() error {
	if c.Description == "" {
		return fmt.Errorf("description is required")
	}
	if c.PlannedAmount < 0 {
		return fmt.Errorf("planned amount must not be negative")
	}
	if c.ActualAmount < 0 {
		return fmt.Errorf("actual amount must not be negative")
	}
	return nil
}
