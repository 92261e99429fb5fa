package domain

import (
	"fmt"
	"time"
)

// InvoiceAllocation ties a share of an external invoice to a WBS item.
// Allocations are reported by the cost rollup but never folded into
// AggregatedCost.
type InvoiceAllocation struct {
	ID         string
	WBSItemID  string
	InvoiceRef string
	Amount     float64
	Percentage float64
	CreatedAt  time.Time
}

// Validate checks that the allocation holds legal values.
func (a *InvoiceAllocation) Validate() error {
	if a.InvoiceRef == "" {
		return fmt.Errorf("invoice reference is required")
	}
	if a.Amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}
	if a.Percentage < 0 || a.Percentage > 100 {
		return fmt.Errorf("percentage %.1f out of range 0-100", a.Percentage)
	}
	return nil
}
