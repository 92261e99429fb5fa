package finance

import (
	"math"
	"time"

	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// ForecastInput is the raw budget reading a forecast is computed from.
type ForecastInput struct {
	EntityType  domain.EntityType
	EntityID    string
	PlannedCost float64
	ActualCost  float64
	Progress    float64 // percent complete, clamped to 0-100
	Now         time.Time
}

// Forecast is one earned-value computation over a budget reading.
// Monetary fields are rounded to whole units, the indexes to 2 decimals.
type Forecast struct {
	EntityType domain.EntityType
	EntityID   string

	PlannedCost float64
	ActualCost  float64
	Progress    float64

	EarnedValue        float64
	PlannedValue       float64
	BudgetAtCompletion float64

	CPI float64
	SPI float64

	CostVariance     float64
	ScheduleVariance float64

	EstimateToCompletion float64
	ForecastAtCompletion float64
	VarianceAtCompletion float64

	ProjectedCompletion *time.Time
	Confidence          domain.ConfidenceLevel
}

// ComputeForecast derives the earned-value metrics from one budget reading.
// Every division is guarded, so the function is total: zero and negative
// inputs produce neutral zeros rather than errors.
func ComputeForecast(in ForecastInput) Forecast {
	progress := clampProgress(in.Progress)

	ev := progress / 100 * in.PlannedCost
	pv := in.PlannedCost
	bac := in.PlannedCost

	var cpi, spi float64
	if in.ActualCost > 0 {
		cpi = ev / in.ActualCost
	}
	if pv > 0 {
		spi = ev / pv
	}

	cv := ev - in.ActualCost
	sv := ev - pv

	var etc float64
	if cpi > 0 {
		etc = (bac - ev) / cpi
	}
	fac := in.ActualCost + etc
	vac := bac - fac

	f := Forecast{
		EntityType:           in.EntityType,
		EntityID:             in.EntityID,
		PlannedCost:          roundMoney(in.PlannedCost),
		ActualCost:           roundMoney(in.ActualCost),
		Progress:             progress,
		EarnedValue:          roundMoney(ev),
		PlannedValue:         roundMoney(pv),
		BudgetAtCompletion:   roundMoney(bac),
		CPI:                  roundRatio(cpi),
		SPI:                  roundRatio(spi),
		CostVariance:         roundMoney(cv),
		ScheduleVariance:     roundMoney(sv),
		EstimateToCompletion: roundMoney(etc),
		ForecastAtCompletion: roundMoney(fac),
		VarianceAtCompletion: roundMoney(vac),
		Confidence:           confidenceFor(cv, bac),
	}

	// Coarse burn-rate projection: cumulative actual cost stands in for a
	// daily rate, so the date is indicative only.
	if etc > 0 && in.ActualCost > 0 {
		completion := in.Now.AddDate(0, 0, int(math.Ceil(etc/in.ActualCost)))
		f.ProjectedCompletion = &completion
	}
	return f
}

// confidenceFor classifies |cv/bac| as a percentage: under 5 high, over 15
// low, else medium. The boundaries land on medium.
func confidenceFor(cv, bac float64) domain.ConfidenceLevel {
	var pct float64
	if bac != 0 {
		pct = math.Abs(cv/bac) * 100
	}
	switch {
	case pct < 5:
		return domain.ConfidenceHigh
	case pct > 15:
		return domain.ConfidenceLow
	default:
		return domain.ConfidenceMedium
	}
}

func clampProgress(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// roundMoney rounds to the nearest whole currency unit.
func roundMoney(v float64) float64 {
	return math.Round(v)
}

// roundRatio rounds an index to two decimals.
func roundRatio(v float64) float64 {
	return math.Round(v*100) / 100
}
