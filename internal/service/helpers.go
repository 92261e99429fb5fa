package service

import (
	"time"

	"github.com/mazen-hassani/masar2-sub000/internal/aggregation"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// maxTreeDepth caps upward parent walks. A chain deeper than this means the
// hierarchy holds a cycle, which is reported as a fatal configuration error
// instead of walked forever.
const maxTreeDepth = 64

// groupByParent indexes items by parent ID, with roots under the empty key.
func groupByParent(items []*domain.WBSItem) map[string][]*domain.WBSItem {
	byParent := make(map[string][]*domain.WBSItem, len(items))
	for _, it := range items {
		key := ""
		if it.ParentID != nil {
			key = *it.ParentID
		}
		byParent[key] = append(byParent[key], it)
	}
	return byParent
}

// applyAggregates copies an update record onto the in-memory item, mirroring
// what UpdateAggregates persists.
func applyAggregates(w *domain.WBSItem, up aggregation.NodeUpdate, now time.Time) {
	w.AggregatedStart = up.AggregatedStart
	w.AggregatedEnd = up.AggregatedEnd
	w.AggregatedStatus = up.AggregatedStatus
	w.PercentComplete = up.PercentComplete
	w.AggregatedCost = up.AggregatedCost
	w.UpdatedAt = now
}

// resolveNow returns the caller's pinned clock when set, else UTC now.
func resolveNow(override *time.Time) time.Time {
	if override != nil {
		return *override
	}
	return time.Now().UTC()
}

// costWeightedProgress averages percent complete across items under the
// cost weighting mode. Zero items yield zero.
func costWeightedProgress(items []*domain.WBSItem) float64 {
	if len(items) == 0 {
		return 0
	}
	pr := aggregation.AggregateProgress(aggregation.SnapshotAll(items), aggregation.WeightByCost)
	return float64(pr.WeightedProgress)
}
