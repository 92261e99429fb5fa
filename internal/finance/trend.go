package finance

import (
	"math"

	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// Trend is an ordinary-least-squares read of a time-ordered series.
type Trend struct {
	Slope     float64
	Intercept float64
	RSquared  float64
	Direction domain.TrendDirection
	Samples   int
}

// AnalyzeTrend regresses value against sample index (0..n-1). Slopes inside
// the -0.1..0.1 band classify as stable; fewer than two points yield a flat
// result with zero slope.
func AnalyzeTrend(values []float64) Trend {
	n := len(values)
	t := Trend{Direction: domain.TrendStable, Samples: n}
	if n < 2 {
		return t
	}

	var sumX, sumY float64
	for i, v := range values {
		sumX += float64(i)
		sumY += v
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var ssXY, ssXX, ssYY float64
	for i, v := range values {
		dx := float64(i) - meanX
		dy := v - meanY
		ssXY += dx * dy
		ssXX += dx * dx
		ssYY += dy * dy
	}

	// ssXX > 0 whenever n >= 2: the indexes are distinct.
	t.Slope = ssXY / ssXX
	t.Intercept = meanY - t.Slope*meanX
	if ssYY != 0 {
		r := ssXY / math.Sqrt(ssXX*ssYY)
		t.RSquared = r * r
	}

	switch {
	case t.Slope > 0.1:
		t.Direction = domain.TrendDeteriorating
	case t.Slope < -0.1:
		t.Direction = domain.TrendImproving
	}
	return t
}
