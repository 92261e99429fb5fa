package aggregation

import "time"

// DateResult is the schedule envelope of a child set.
type DateResult struct {
	Start       *time.Time // earliest child start, nil when no child has one
	End         *time.Time // latest child end, nil when no child has one
	HasChildren bool
	ChildCount  int
}

// AggregateDates computes the min start / max end over the children's
// effective dates. A child lacking a date is left out of that bound but
// still counted. Every handling mode shares this inclusion law; require
// currently behaves like skip.
func AggregateDates(children []ChildSnapshot, handling DateHandling) DateResult {
	result := DateResult{
		HasChildren: len(children) > 0,
		ChildCount:  len(children),
	}
	for _, c := range children {
		if c.Start != nil && (result.Start == nil || c.Start.Before(*result.Start)) {
			result.Start = c.Start
		}
		if c.End != nil && (result.End == nil || c.End.After(*result.End)) {
			result.End = c.End
		}
	}
	return result
}
