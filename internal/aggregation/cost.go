package aggregation

import "math"

// CostResult is the budget envelope of a child set.
type CostResult struct {
	PlannedTotal float64 // sum of child planned costs
	ActualTotal  float64 // sum of child actual costs
	TotalCost    float64 // rolled-up figure written to the parent
}

// AggregateCost sums the children's budget figures. TotalCost is the largest
// of the recursive running total (sum of child aggregated costs when
// recursive is set), the planned total and the actual total. Zero children
// yield all zeros.
func AggregateCost(children []ChildSnapshot, recursive bool) CostResult {
	var result CostResult
	var running float64
	for _, c := range children {
		result.PlannedTotal += c.PlannedCost
		result.ActualTotal += c.ActualCost
		if recursive {
			running += c.AggregatedCost
		}
	}
	result.TotalCost = math.Max(running, math.Max(result.PlannedTotal, result.ActualTotal))
	return result
}
