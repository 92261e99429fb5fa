package finance

import (
	"fmt"

	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// HealthThresholds are the utilization and projected-variance trip points,
// in percent.
type HealthThresholds struct {
	UtilizationWarning  float64
	UtilizationCritical float64
	VarianceWarning     float64
	VarianceCritical    float64
}

// DefaultThresholds returns the standard trip points: warn at 85% spend or
// -10% projected variance, critical at 95% spend or -15% projected variance.
func DefaultThresholds() HealthThresholds {
	return HealthThresholds{
		UtilizationWarning:  85,
		UtilizationCritical: 95,
		VarianceWarning:     -10,
		VarianceCritical:    -15,
	}
}

// Health is the state of one entity's budget against its thresholds.
type Health struct {
	EntityType domain.EntityType
	EntityID   string

	Level                domain.HealthLevel
	UtilizationPct       float64 // actual spend as % of budget at completion
	ProjectedVariancePct float64 // variance at completion as % of budget
	Signals              []string
}

// EvaluateHealth classifies a forecast against the thresholds. Utilization
// is actual/BAC, projected variance is VAC/BAC, both 0 when BAC is 0.
// Either figure crossing its critical threshold makes the entity critical;
// either crossing its warning threshold makes it at least warning.
func EvaluateHealth(f Forecast, t HealthThresholds) Health {
	h := Health{
		EntityType: f.EntityType,
		EntityID:   f.EntityID,
		Level:      domain.HealthHealthy,
	}
	if f.BudgetAtCompletion != 0 {
		h.UtilizationPct = f.ActualCost / f.BudgetAtCompletion * 100
		h.ProjectedVariancePct = f.VarianceAtCompletion / f.BudgetAtCompletion * 100
	}

	switch {
	case h.UtilizationPct > t.UtilizationCritical:
		h.Level = domain.HealthCritical
		h.Signals = append(h.Signals, fmt.Sprintf("budget utilization %.1f%% above critical threshold %.0f%%", h.UtilizationPct, t.UtilizationCritical))
	case h.UtilizationPct > t.UtilizationWarning:
		h.Level = domain.HealthWarning
		h.Signals = append(h.Signals, fmt.Sprintf("budget utilization %.1f%% above warning threshold %.0f%%", h.UtilizationPct, t.UtilizationWarning))
	}

	switch {
	case h.ProjectedVariancePct < t.VarianceCritical:
		h.Level = domain.HealthCritical
		h.Signals = append(h.Signals, fmt.Sprintf("projected variance %.1f%% below critical threshold %.0f%%", h.ProjectedVariancePct, t.VarianceCritical))
	case h.ProjectedVariancePct < t.VarianceWarning:
		if h.Level != domain.HealthCritical {
			h.Level = domain.HealthWarning
		}
		h.Signals = append(h.Signals, fmt.Sprintf("projected variance %.1f%% below warning threshold %.0f%%", h.ProjectedVariancePct, t.VarianceWarning))
	}
	return h
}
