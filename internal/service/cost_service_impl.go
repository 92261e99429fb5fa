package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
	"github.com/mazen-hassani/masar2-sub000/internal/repository"
)

type costService struct {
	items       repository.WBSItemRepo
	costItems   repository.CostItemRepo
	allocations repository.AllocationRepo
}

func NewCostService(
	items repository.WBSItemRepo,
	costItems repository.CostItemRepo,
	allocations repository.AllocationRepo,
) CostService {
	return &costService{
		items:       items,
		costItems:   costItems,
		allocations: allocations,
	}
}

func (s *costService) CreateCostItem(ctx context.Context, c *domain.CostItem) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if _, err := s.items.GetByID(ctx, c.WBSItemID); err != nil {
		return fmt.Errorf("loading owning item: %w", err)
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.costItems.Create(ctx, c)
}

func (s *costService) GetCostItem(ctx context.Context, id string) (*domain.CostItem, error) {
	return s.costItems.GetByID(ctx, id)
}

func (s *costService) UpdateCostItem(ctx context.Context, c *domain.CostItem) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	return s.costItems.Update(ctx, c)
}

func (s *costService) DeleteCostItem(ctx context.Context, id string) error {
	return s.costItems.Delete(ctx, id)
}

func (s *costService) ListCostItems(ctx context.Context, wbsItemID string) ([]*domain.CostItem, error) {
	return s.costItems.ListByItem(ctx, wbsItemID)
}

func (s *costService) CreateAllocation(ctx context.Context, a *domain.InvoiceAllocation) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if _, err := s.items.GetByID(ctx, a.WBSItemID); err != nil {
		return fmt.Errorf("loading owning item: %w", err)
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.CreatedAt = time.Now().UTC()
	return s.allocations.Create(ctx, a)
}

func (s *costService) DeleteAllocation(ctx context.Context, id string) error {
	return s.allocations.Delete(ctx, id)
}

func (s *costService) ListAllocations(ctx context.Context, wbsItemID string) ([]*domain.InvoiceAllocation, error) {
	return s.allocations.ListByItem(ctx, wbsItemID)
}
