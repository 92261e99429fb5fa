package aggregation

import (
	"math"
	"time"

	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// NodeUpdate is the record of derived fields written back to a parent after
// one aggregation pass.
type NodeUpdate struct {
	AggregatedStart  *time.Time
	AggregatedEnd    *time.Time
	AggregatedStatus domain.AggregatedStatus
	PercentComplete  int
	AggregatedCost   float64
}

// Result is one full aggregation pass: the update record plus every
// intermediate sub-result, for diagnostics.
type Result struct {
	NodeID     string
	Status     StatusResult
	Dates      DateResult
	Progress   ProgressResult
	Cost       CostResult
	Update     NodeUpdate
	ComputedAt time.Time
}

// Compute runs the four aggregators over a parent's direct children and
// assembles the update record, keeping the intermediates for inspection.
// The same children and options always produce the same record.
func Compute(nodeID string, children []ChildSnapshot, opts Options, now time.Time) Result {
	status := ResolveStatus(statusesOf(children))
	dates := AggregateDates(children, opts.DateHandling)
	progress := AggregateProgress(children, opts.ProgressWeighting)
	cost := AggregateCost(children, opts.RecursiveAggregation)

	return Result{
		NodeID:   nodeID,
		Status:   status,
		Dates:    dates,
		Progress: progress,
		Cost:     cost,
		Update: NodeUpdate{
			AggregatedStart:  dates.Start,
			AggregatedEnd:    dates.End,
			AggregatedStatus: status.Status,
			PercentComplete:  progress.WeightedProgress,
			AggregatedCost:   cost.TotalCost,
		},
		ComputedAt: now,
	}
}

// AggregateNode runs one pass and returns just the update record.
func AggregateNode(children []ChildSnapshot, opts Options) NodeUpdate {
	return Compute("", children, opts, time.Time{}).Update
}

// Summary describes a child set without deriving anything new.
type Summary struct {
	NodeID             string
	ChildCount         int
	ChildrenWithDates  int
	ChildrenWithCosts  int
	StatusDistribution map[domain.AggregatedStatus]int
	DateRangeDays      *int // nil when the children define no envelope
	PlannedTotal       float64
	ActualTotal        float64
}

// Summarize reports the structural facts an inspection or rebuild wants to
// show before committing to a pass.
func Summarize(nodeID string, children []ChildSnapshot) Summary {
	status := ResolveStatus(statusesOf(children))
	dates := AggregateDates(children, DateSkip)
	cost := AggregateCost(children, true)

	s := Summary{
		NodeID:             nodeID,
		ChildCount:         len(children),
		StatusDistribution: status.Counts,
		PlannedTotal:       cost.PlannedTotal,
		ActualTotal:        cost.ActualTotal,
	}
	for _, c := range children {
		if c.HasDates() {
			s.ChildrenWithDates++
		}
		if c.HasCost() {
			s.ChildrenWithCosts++
		}
	}
	if dates.Start != nil && dates.End != nil {
		days := int(math.Ceil(dates.End.Sub(*dates.Start).Hours() / 24))
		s.DateRangeDays = &days
	}
	return s
}

func statusesOf(children []ChildSnapshot) []domain.AggregatedStatus {
	out := make([]domain.AggregatedStatus, len(children))
	for i, c := range children {
		out[i] = c.Status
	}
	return out
}
