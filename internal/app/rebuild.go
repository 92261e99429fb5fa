package app

import "time"

// RebuildReport is the outcome of a full-hierarchy recomputation. A node that
// fails to aggregate is recorded in Errors and skipped; the rebuild carries on
// with the remaining nodes.
type RebuildReport struct {
	ProjectID    string
	GeneratedAt  time.Time
	NodesUpdated int
	Errors       []string
}

// Partial reports whether any node failed while the rest were updated.
func (r *RebuildReport) Partial() bool {
	return len(r.Errors) > 0
}
