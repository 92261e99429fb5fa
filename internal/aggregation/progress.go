package aggregation

import (
	"math"

	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// ProgressResult carries the two progress readings for a child set.
type ProgressResult struct {
	WeightedProgress int     // sum(pct*weight)/sum(weight), rounded then clamped
	AverageProgress  int     // unweighted mean, rounded then clamped
	WeightSum        float64 // total weight used, for diagnostics
}

// AggregateProgress averages the children's percent complete under the
// selected weighting:
//
//   - equal: every child weighs 1.
//   - cost: weight = planned cost + aggregated cost; a child whose sum is 0
//     falls back to weight 1 so it still participates.
//   - hybrid: a child with aggregated cost is a branch and weighs 1; a leaf
//     weighs planned + actual cost, falling back to 1 when both are 0.
//
// Zero children yield zero progress.
func AggregateProgress(children []ChildSnapshot, weighting ProgressWeighting) ProgressResult {
	if len(children) == 0 {
		return ProgressResult{}
	}

	var weightedSum, weightSum, plainSum float64
	for _, c := range children {
		w := childWeight(c, weighting)
		weightedSum += float64(c.PercentComplete) * w
		weightSum += w
		plainSum += float64(c.PercentComplete)
	}

	return ProgressResult{
		WeightedProgress: domain.ClampPercent(int(math.Round(weightedSum / weightSum))),
		AverageProgress:  domain.ClampPercent(int(math.Round(plainSum / float64(len(children))))),
		WeightSum:        weightSum,
	}
}

func childWeight(c ChildSnapshot, weighting ProgressWeighting) float64 {
	switch weighting {
	case WeightEqual:
		return 1
	case WeightHybrid:
		if c.AggregatedCost > 0 {
			return 1
		}
		if w := c.PlannedCost + c.ActualCost; w > 0 {
			return w
		}
		return 1
	default: // cost
		if w := c.PlannedCost + c.AggregatedCost; w > 0 {
			return w
		}
		return 1
	}
}
