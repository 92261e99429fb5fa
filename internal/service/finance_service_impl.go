package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mazen-hassani/masar2-sub000/internal/app"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
	"github.com/mazen-hassani/masar2-sub000/internal/finance"
	"github.com/mazen-hassani/masar2-sub000/internal/repository"
)

type financeService struct {
	projects    repository.ProjectRepo
	items       repository.WBSItemRepo
	costItems   repository.CostItemRepo
	allocations repository.AllocationRepo
	snapshots   repository.SnapshotRepo
	observer    UseCaseObserver
}

func NewFinanceService(
	projects repository.ProjectRepo,
	items repository.WBSItemRepo,
	costItems repository.CostItemRepo,
	allocations repository.AllocationRepo,
	snapshots repository.SnapshotRepo,
	observers ...UseCaseObserver,
) FinanceService {
	return &financeService{
		projects:    projects,
		items:       items,
		costItems:   costItems,
		allocations: allocations,
		snapshots:   snapshots,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// CalculateItemCostRollup returns the cost picture of one item. A missing or
// soft-deleted item yields a nil rollup, not an error.
func (s *financeService) CalculateItemCostRollup(ctx context.Context, itemID string) (*finance.Rollup, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading item: %w", err)
	}
	return s.rollupFor(ctx, item)
}

func (s *financeService) CalculateBudgetForecast(ctx context.Context, req app.ForecastRequest) (forecast *finance.Forecast, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"entity_type": req.EntityType, "entity": req.EntityID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "budget-forecast",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	method := req.Method
	if method == "" {
		method = app.ForecastMethodEVM
	}
	if method != app.ForecastMethodEVM {
		return nil, &app.FinanceError{
			Code:    app.FinanceErrUnknownMethod,
			Message: fmt.Sprintf("unknown forecast method %q (only %s is supported)", req.Method, app.ForecastMethodEVM),
		}
	}

	reading, err := s.readBudget(ctx, req.EntityType, req.EntityID)
	if err != nil {
		return nil, err
	}
	progress := reading.progress
	if req.Progress != nil {
		progress = float64(*req.Progress)
	}

	out := finance.ComputeForecast(finance.ForecastInput{
		EntityType:  reading.entityType,
		EntityID:    req.EntityID,
		PlannedCost: reading.planned,
		ActualCost:  reading.actual,
		Progress:    progress,
		Now:         resolveNow(req.Now),
	})
	return &out, nil
}

func (s *financeService) AnalyzeCostTrend(ctx context.Context, req app.TrendRequest) (trend *app.CostTrend, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"entity_type": req.EntityType, "entity": req.EntityID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "cost-trend",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if !domain.ValidEntityTypes[req.EntityType] {
		return nil, &app.FinanceError{
			Code:    app.FinanceErrUnknownEntityType,
			Message: fmt.Sprintf("unknown entity type %q (expected project or wbs_item)", req.EntityType),
		}
	}
	if req.To.Before(req.From) {
		return nil, &app.FinanceError{
			Code:    app.FinanceErrInvalidRange,
			Message: fmt.Sprintf("window end %s precedes start %s", req.To.Format("2006-01-02"), req.From.Format("2006-01-02")),
		}
	}

	snaps, err := s.snapshots.ListByEntityBetween(ctx, domain.EntityType(req.EntityType), req.EntityID, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	fields["samples"] = len(snaps)

	// Regress the overrun (actual minus planned) so a worsening budget
	// slopes upward and classifies as deteriorating.
	values := make([]float64, len(snaps))
	for i, snap := range snaps {
		values[i] = snap.ActualCost - snap.PlannedCost
	}
	res := finance.AnalyzeTrend(values)

	return &app.CostTrend{
		EntityType: domain.EntityType(req.EntityType),
		EntityID:   req.EntityID,
		From:       req.From,
		To:         req.To,
		Samples:    res.Samples,
		Slope:      res.Slope,
		Intercept:  res.Intercept,
		RSquared:   res.RSquared,
		Direction:  res.Direction,
	}, nil
}

func (s *financeService) CheckBudgetHealth(ctx context.Context, req app.ForecastRequest, thresholds finance.HealthThresholds) (*finance.Health, error) {
	f, err := s.CalculateBudgetForecast(ctx, req)
	if err != nil {
		return nil, err
	}
	h := finance.EvaluateHealth(*f, thresholds)
	return &h, nil
}

func (s *financeService) RecordSnapshot(ctx context.Context, entityType, entityID string) (snap *domain.CostSnapshot, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"entity_type": entityType, "entity": entityID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "record-snapshot",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	reading, err := s.readBudget(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}

	snap = &domain.CostSnapshot{
		ID:          uuid.New().String(),
		EntityType:  reading.entityType,
		EntityID:    entityID,
		PlannedCost: reading.planned,
		ActualCost:  reading.actual,
		Variance:    reading.planned - reading.actual,
		RecordedAt:  time.Now().UTC(),
	}
	if err = s.snapshots.Create(ctx, snap); err != nil {
		return nil, fmt.Errorf("recording snapshot: %w", err)
	}
	return snap, nil
}

// ListSnapshots returns an entity's recorded snapshots inside a window,
// oldest first.
func (s *financeService) ListSnapshots(ctx context.Context, entityType, entityID string, from, to time.Time) ([]*domain.CostSnapshot, error) {
	if !domain.ValidEntityTypes[entityType] {
		return nil, &app.FinanceError{
			Code:    app.FinanceErrUnknownEntityType,
			Message: fmt.Sprintf("unknown entity type %q (expected project or wbs_item)", entityType),
		}
	}
	if to.Before(from) {
		return nil, &app.FinanceError{
			Code:    app.FinanceErrInvalidRange,
			Message: fmt.Sprintf("window end %s precedes start %s", to.Format("2006-01-02"), from.Format("2006-01-02")),
		}
	}
	snaps, err := s.snapshots.ListByEntityBetween(ctx, domain.EntityType(entityType), entityID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	return snaps, nil
}

// budgetReading is one entity's current planned/actual/progress figures.
type budgetReading struct {
	entityType domain.EntityType
	planned    float64
	actual     float64
	progress   float64
}

// readBudget resolves the figures a forecast or snapshot works from. A WBS
// item reads its rollup totals; a project reads the flat sum over its cost
// items, with progress cost-weighted across the live roots.
func (s *financeService) readBudget(ctx context.Context, entityType, entityID string) (budgetReading, error) {
	switch domain.EntityType(entityType) {
	case domain.EntityWBSItem:
		item, err := s.items.GetByID(ctx, entityID)
		if err != nil {
			return budgetReading{}, fmt.Errorf("loading item: %w", err)
		}
		r, err := s.rollupFor(ctx, item)
		if err != nil {
			return budgetReading{}, err
		}
		return budgetReading{
			entityType: domain.EntityWBSItem,
			planned:    r.TotalPlanned,
			actual:     r.TotalActual,
			progress:   float64(item.PercentComplete),
		}, nil

	case domain.EntityProject:
		if _, err := s.projects.GetByID(ctx, entityID); err != nil {
			return budgetReading{}, fmt.Errorf("loading project: %w", err)
		}
		costItems, err := s.costItems.ListByProject(ctx, entityID)
		if err != nil {
			return budgetReading{}, fmt.Errorf("listing project cost items: %w", err)
		}
		var planned, actual float64
		for _, ci := range costItems {
			planned += ci.PlannedAmount
			actual += ci.ActualAmount
		}
		roots, err := s.items.ListRoots(ctx, entityID)
		if err != nil {
			return budgetReading{}, fmt.Errorf("listing roots: %w", err)
		}
		return budgetReading{
			entityType: domain.EntityProject,
			planned:    planned,
			actual:     actual,
			progress:   costWeightedProgress(roots),
		}, nil
	}

	return budgetReading{}, &app.FinanceError{
		Code:    app.FinanceErrUnknownEntityType,
		Message: fmt.Sprintf("unknown entity type %q (expected project or wbs_item)", entityType),
	}
}

func (s *financeService) rollupFor(ctx context.Context, item *domain.WBSItem) (*finance.Rollup, error) {
	costItems, err := s.costItems.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("listing cost items: %w", err)
	}
	children, err := s.items.ListChildren(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("listing children: %w", err)
	}
	allocations, err := s.allocations.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}
	r := finance.ComputeRollup(finance.RollupInput{
		ItemID:      item.ID,
		CostItems:   costItems,
		Children:    children,
		Allocations: allocations,
	})
	return &r, nil
}
