package app

import (
	"time"

	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

type PortfolioRequest struct {
	Now             *time.Time
	IncludeArchived bool
}

type ProjectOverview struct {
	ProjectID  string
	ShortID    string
	Name       string
	Department string
	Status     domain.ProjectStatus

	ItemCount   int
	PlannedCost float64
	ActualCost  float64
	Progress    float64

	Health  domain.HealthLevel
	Signals []string
}

type PortfolioSummary struct {
	GeneratedAt    time.Time
	CountsTotal    int
	CountsHealthy  int
	CountsWarning  int
	CountsCritical int
	PlannedTotal   float64
	ActualTotal    float64
}

type PortfolioResponse struct {
	Summary  PortfolioSummary
	Projects []ProjectOverview
	Warnings []string
}
