package domain

import "time"

// CostSnapshot is one historical budget reading for a project or WBS item,
// recorded so trend analysis has a time-ordered series to regress over.
type CostSnapshot struct {
	ID          string
	EntityType  EntityType
	EntityID    string
	PlannedCost float64
	ActualCost  float64
	Variance    float64 // planned minus actual at recording time
	RecordedAt  time.Time
}
