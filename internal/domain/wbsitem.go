package domain

import (
	"fmt"
	"time"
)

// WBSItem is one node of a project's work breakdown structure. Leaves carry
// authored schedule, progress and budget figures; parents additionally carry
// the Aggregated* fields derived from their live children.
type WBSItem struct {
	ID         string
	ProjectID  string
	Seq        int // project-scoped sequential ID
	ParentID   *string
	Title      string
	Level      int // root = 0, child = parent level + 1
	OrderIndex int

	// Authored schedule
	PlannedStart *time.Time
	PlannedEnd   *time.Time
	ActualStart  *time.Time
	ActualEnd    *time.Time

	// Authored progress
	Status          WBSStatus
	PercentComplete int

	// Authored budget
	PlannedCost *float64
	ActualCost  *float64

	// Derived by aggregation, never authored. Leaves keep AggregatedCost 0
	// and AggregatedStatus empty.
	AggregatedStart  *time.Time
	AggregatedEnd    *time.Time
	AggregatedStatus AggregatedStatus
	AggregatedCost   float64

	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot reports whether the item sits at the top of its project's tree.
func (w *WBSItem) IsRoot() bool {
	return w.ParentID == nil
}

// Deleted reports whether the item has been soft-deleted.
func (w *WBSItem) Deleted() bool {
	return w.DeletedAt != nil
}

// EffectiveStart returns the actual start when recorded, else the planned start.
func (w *WBSItem) EffectiveStart() *time.Time {
	return CoalesceTime(w.ActualStart, w.PlannedStart)
}

// EffectiveEnd returns the actual end when recorded, else the planned end.
func (w *WBSItem) EffectiveEnd() *time.Time {
	return CoalesceTime(w.ActualEnd, w.PlannedEnd)
}

// EffectiveStatus returns the derived status when one has been computed,
// else the authored status.
func (w *WBSItem) EffectiveStatus() AggregatedStatus {
	if w.AggregatedStatus != "" {
		return w.AggregatedStatus
	}
	return w.Status.Aggregated()
}

// DisplayRef returns the short reference used across the CLI (#seq).
func (w *WBSItem) DisplayRef() string {
	return fmt.Sprintf("#%d", w.Seq)
}

// Validate checks that the authored fields hold legal values.
func (w *WBSItem) Validate() error {
	if w.Title == "" {
		return fmt.Errorf("title is required")
	}
	if !ValidWBSStatuses[string(w.Status)] {
		return fmt.Errorf("invalid status %q (expected not_started, in_progress, delayed, completed or cancelled)", w.Status)
	}
	if w.PercentComplete < 0 || w.PercentComplete > 100 {
		return fmt.Errorf("percent complete %d out of range 0-100", w.PercentComplete)
	}
	if w.PlannedCost != nil && *w.PlannedCost < 0 {
		return fmt.Errorf("planned cost must not be negative")
	}
	if w.ActualCost != nil && *w.ActualCost < 0 {
		return fmt.Errorf("actual cost must not be negative")
	}
	return nil
}
