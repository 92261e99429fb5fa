package aggregation

import (
	"time"

	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// ChildSnapshot is the flattened view of one direct child that the
// aggregation functions consume. Start/End carry the child's actual dates
// when recorded, else its planned dates; Status carries the child's derived
// status when one exists, else its authored status.
type ChildSnapshot struct {
	ID              string
	Status          domain.AggregatedStatus
	Start           *time.Time
	End             *time.Time
	PercentComplete int
	PlannedCost     float64
	ActualCost      float64
	AggregatedCost  float64
}

// Snapshot flattens a WBS item into the view its parent aggregates over.
func Snapshot(w *domain.WBSItem) ChildSnapshot {
	return ChildSnapshot{
		ID:              w.ID,
		Status:          w.EffectiveStatus(),
		Start:           w.EffectiveStart(),
		End:             w.EffectiveEnd(),
		PercentComplete: w.PercentComplete,
		PlannedCost:     domain.Float64FromPtrWithDefault(0, w.PlannedCost),
		ActualCost:      domain.Float64FromPtrWithDefault(0, w.ActualCost),
		AggregatedCost:  w.AggregatedCost,
	}
}

// SnapshotAll flattens a slice of children in order.
func SnapshotAll(items []*domain.WBSItem) []ChildSnapshot {
	out := make([]ChildSnapshot, 0, len(items))
	for _, w := range items {
		out = append(out, Snapshot(w))
	}
	return out
}

// HasDates reports whether the child contributes to the date envelope.
func (c ChildSnapshot) HasDates() bool {
	return c.Start != nil || c.End != nil
}

// HasCost reports whether the child carries any cost figure.
func (c ChildSnapshot) HasCost() bool {
	return c.PlannedCost != 0 || c.ActualCost != 0 || c.AggregatedCost != 0
}
