package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mazen-hassani/masar2-sub000/internal/app"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
	"github.com/mazen-hassani/masar2-sub000/internal/finance"
	"github.com/mazen-hassani/masar2-sub000/internal/repository"
)

type portfolioService struct {
	projects   repository.ProjectRepo
	items      repository.WBSItemRepo
	costItems  repository.CostItemRepo
	thresholds finance.HealthThresholds
	observer   UseCaseObserver
}

func NewPortfolioService(
	projects repository.ProjectRepo,
	items repository.WBSItemRepo,
	costItems repository.CostItemRepo,
	thresholds finance.HealthThresholds,
	observers ...UseCaseObserver,
) PortfolioService {
	return &portfolioService{
		projects:   projects,
		items:      items,
		costItems:  costItems,
		thresholds: thresholds,
		observer:   useCaseObserverOrNoop(observers),
	}
}

var healthRank = map[domain.HealthLevel]int{
	domain.HealthCritical: 0,
	domain.HealthWarning:  1,
	domain.HealthHealthy:  2,
}

// Overview scores every project's budget health and returns them critical
// first. A project whose data cannot be read becomes a warning, not a
// failure of the whole overview.
func (s *portfolioService) Overview(ctx context.Context, req app.PortfolioRequest) (resp *app.PortfolioResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		if resp != nil {
			fields["projects"] = len(resp.Projects)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "portfolio-overview",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	now := resolveNow(req.Now)
	projects, err := s.projects.List(ctx, req.IncludeArchived)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	resp = &app.PortfolioResponse{
		Summary: app.PortfolioSummary{GeneratedAt: now},
	}
	for _, p := range projects {
		view, verr := s.projectOverview(ctx, p, now)
		if verr != nil {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s: %v", p.DisplayID(), verr))
			continue
		}
		resp.Projects = append(resp.Projects, view)
		resp.Summary.PlannedTotal += view.PlannedCost
		resp.Summary.ActualTotal += view.ActualCost
		switch view.Health {
		case domain.HealthCritical:
			resp.Summary.CountsCritical++
		case domain.HealthWarning:
			resp.Summary.CountsWarning++
		default:
			resp.Summary.CountsHealthy++
		}
	}
	resp.Summary.CountsTotal = len(resp.Projects)

	sort.SliceStable(resp.Projects, func(i, j int) bool {
		a, b := resp.Projects[i], resp.Projects[j]
		if healthRank[a.Health] != healthRank[b.Health] {
			return healthRank[a.Health] < healthRank[b.Health]
		}
		return a.ShortID < b.ShortID
	})
	return resp, nil
}

func (s *portfolioService) projectOverview(ctx context.Context, p *domain.Project, now time.Time) (app.ProjectOverview, error) {
	items, err := s.items.ListByProject(ctx, p.ID)
	if err != nil {
		return app.ProjectOverview{}, fmt.Errorf("listing items: %w", err)
	}
	costItems, err := s.costItems.ListByProject(ctx, p.ID)
	if err != nil {
		return app.ProjectOverview{}, fmt.Errorf("listing cost items: %w", err)
	}

	var planned, actual float64
	for _, ci := range costItems {
		planned += ci.PlannedAmount
		actual += ci.ActualAmount
	}
	var roots []*domain.WBSItem
	for _, it := range items {
		if it.IsRoot() {
			roots = append(roots, it)
		}
	}
	progress := costWeightedProgress(roots)

	f := finance.ComputeForecast(finance.ForecastInput{
		EntityType:  domain.EntityProject,
		EntityID:    p.ID,
		PlannedCost: planned,
		ActualCost:  actual,
		Progress:    progress,
		Now:         now,
	})
	h := finance.EvaluateHealth(f, s.thresholds)

	return app.ProjectOverview{
		ProjectID:   p.ID,
		ShortID:     p.ShortID,
		Name:        p.Name,
		Department:  p.Department,
		Status:      p.Status,
		ItemCount:   len(items),
		PlannedCost: planned,
		ActualCost:  actual,
		Progress:    progress,
		Health:      h.Level,
		Signals:     h.Signals,
	}, nil
}
