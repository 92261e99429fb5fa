package app

import (
	"time"

	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// ForecastRequest names the entity a forecast, snapshot or health check is
// computed for. EntityType is the raw caller string; services validate it
// against domain.ValidEntityTypes.
type ForecastRequest struct {
	EntityType string
	EntityID   string
	Progress   *int // overrides the stored percent complete when set
	Method     string
	Now        *time.Time
}

func NewForecastRequest(entityType, entityID string) ForecastRequest {
	return ForecastRequest{
		EntityType: entityType,
		EntityID:   entityID,
		Method:     ForecastMethodEVM,
	}
}

// ForecastMethodEVM is the only implemented forecasting method.
const ForecastMethodEVM = "evm"

type TrendRequest struct {
	EntityType string
	EntityID   string
	From       time.Time
	To         time.Time
}

// CostTrend is the regression over an entity's snapshot overruns inside a
// window, oldest reading first.
type CostTrend struct {
	EntityType domain.EntityType
	EntityID   string
	From       time.Time
	To         time.Time

	Samples   int
	Slope     float64
	Intercept float64
	RSquared  float64
	Direction domain.TrendDirection
}

type FinanceErrorCode string

const (
	FinanceErrUnknownEntityType FinanceErrorCode = "UNKNOWN_ENTITY_TYPE"
	FinanceErrUnknownMethod     FinanceErrorCode = "UNKNOWN_METHOD"
	FinanceErrInvalidRange      FinanceErrorCode = "INVALID_RANGE"
)

type FinanceError struct {
	Code    FinanceErrorCode
	Message string
}

func (e *FinanceError) Error() string {
	return string(e.Code) + ": " + e.Message
}
