package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateProgress_NoChildren(t *testing.T) {
	res := AggregateProgress(nil, WeightByCost)
	assert.Zero(t, res.WeightedProgress)
	assert.Zero(t, res.AverageProgress)
	assert.Zero(t, res.WeightSum)
}

func TestAggregateProgress_EqualWeights(t *testing.T) {
	children := []ChildSnapshot{
		{PercentComplete: 100, PlannedCost: 9000},
		{PercentComplete: 0, PlannedCost: 1000},
	}
	res := AggregateProgress(children, WeightEqual)
	assert.Equal(t, 50, res.WeightedProgress)
	assert.Equal(t, 50, res.AverageProgress)
	assert.InDelta(t, 2, res.WeightSum, 1e-9)
}

func TestAggregateProgress_CostWeights(t *testing.T) {
	children := []ChildSnapshot{
		{PercentComplete: 100, PlannedCost: 9000},
		{PercentComplete: 0, PlannedCost: 1000},
	}
	res := AggregateProgress(children, WeightByCost)
	assert.Equal(t, 90, res.WeightedProgress, "done child carries 90%% of the weight")
	assert.Equal(t, 50, res.AverageProgress)
}

func TestAggregateProgress_CostWeightUsesAggregatedCost(t *testing.T) {
	children := []ChildSnapshot{
		{PercentComplete: 100, AggregatedCost: 3000},
		{PercentComplete: 0, PlannedCost: 1000},
	}
	res := AggregateProgress(children, WeightByCost)
	assert.Equal(t, 75, res.WeightedProgress)
}

func TestAggregateProgress_CostlessChildFallsBackToOne(t *testing.T) {
	children := []ChildSnapshot{
		{PercentComplete: 100, PlannedCost: 3},
		{PercentComplete: 0},
	}
	res := AggregateProgress(children, WeightByCost)
	assert.Equal(t, 75, res.WeightedProgress, "costless child still weighs 1")
}

func TestAggregateProgress_AllCostlessMatchesEqual(t *testing.T) {
	children := []ChildSnapshot{
		{PercentComplete: 30},
		{PercentComplete: 60},
	}
	byCost := AggregateProgress(children, WeightByCost)
	equal := AggregateProgress(children, WeightEqual)
	assert.Equal(t, equal.WeightedProgress, byCost.WeightedProgress)
	assert.Equal(t, 45, byCost.WeightedProgress)
}

func TestAggregateProgress_HybridBranchWeighsOne(t *testing.T) {
	children := []ChildSnapshot{
		{PercentComplete: 100, AggregatedCost: 50000},
		{PercentComplete: 0, PlannedCost: 10, ActualCost: 10},
	}
	res := AggregateProgress(children, WeightHybrid)
	assert.Equal(t, 5, res.WeightedProgress, "branch weighs 1, leaf weighs 20: 100/21 rounds to 5")
}

func TestAggregateProgress_HybridLeafFallback(t *testing.T) {
	children := []ChildSnapshot{
		{PercentComplete: 80},
		{PercentComplete: 40},
	}
	res := AggregateProgress(children, WeightHybrid)
	assert.Equal(t, 60, res.WeightedProgress)
}

func TestAggregateProgress_Rounding(t *testing.T) {
	children := []ChildSnapshot{
		{PercentComplete: 33},
		{PercentComplete: 34},
	}
	res := AggregateProgress(children, WeightEqual)
	assert.Equal(t, 34, res.WeightedProgress, "33.5 rounds up")
}
