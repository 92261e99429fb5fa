package aggregation

import "fmt"

// DateHandling selects how children lacking schedule dates are treated when
// the date envelope is rolled up.
type DateHandling string

const (
	DatePropagate DateHandling = "propagate"
	DateSkip      DateHandling = "skip"
	DateRequire   DateHandling = "require"
)

// ProgressWeighting selects the weight given to each child when averaging
// percent complete.
type ProgressWeighting string

const (
	WeightByCost ProgressWeighting = "cost"
	WeightEqual  ProgressWeighting = "equal"
	WeightHybrid ProgressWeighting = "hybrid"
)

// Options tune a single aggregation pass. They are supplied per call and
// never persisted.
type Options struct {
	DateHandling         DateHandling
	ProgressWeighting    ProgressWeighting
	RecursiveAggregation bool
	// CancelledAsComplete is accepted for configuration parity but not
	// consulted by the status rules.
	CancelledAsComplete bool
}

// DefaultOptions returns the options used when a caller passes none:
// skip dateless children, cost-weighted progress, recursive cost totals.
func DefaultOptions() Options {
	return Options{
		DateHandling:         DateSkip,
		ProgressWeighting:    WeightByCost,
		RecursiveAggregation: true,
	}
}

// ParseDateHandling validates a user-supplied date handling mode.
func ParseDateHandling(s string) (DateHandling, error) {
	switch DateHandling(s) {
	case DatePropagate, DateSkip, DateRequire:
		return DateHandling(s), nil
	}
	return "", fmt.Errorf("invalid date handling %q (expected propagate, skip or require)", s)
}

// ParseProgressWeighting validates a user-supplied progress weighting mode.
func ParseProgressWeighting(s string) (ProgressWeighting, error) {
	switch ProgressWeighting(s) {
	case WeightByCost, WeightEqual, WeightHybrid:
		return ProgressWeighting(s), nil
	}
	return "", fmt.Errorf("invalid progress weighting %q (expected cost, equal or hybrid)", s)
}
