package aggregation

import "github.com/mazen-hassani/masar2-sub000/internal/domain"

// StatusResult is the derived status of a parent plus the distribution it
// was derived from.
type StatusResult struct {
	Status domain.AggregatedStatus
	Counts map[domain.AggregatedStatus]int
}

// ResolveStatus derives a parent status from its children's statuses.
// The rules apply in priority order:
//
//  1. no children: not_started
//  2. all children share one status: that status
//  3. any child delayed or in progress: mixed
//  4. any other heterogeneous combination: mixed
//
// The result depends only on the multiset of statuses, never their order.
func ResolveStatus(statuses []domain.AggregatedStatus) StatusResult {
	counts := make(map[domain.AggregatedStatus]int, len(statuses))
	for _, s := range statuses {
		counts[s]++
	}

	if len(statuses) == 0 {
		return StatusResult{Status: domain.AggNotStarted, Counts: counts}
	}
	if len(counts) == 1 {
		return StatusResult{Status: statuses[0], Counts: counts}
	}
	return StatusResult{Status: domain.AggMixed, Counts: counts}
}
