package repository

import (
	"context"
	"time"

	"github.com/mazen-hassani/masar2-sub000/internal/aggregation"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type WBSItemRepo interface {
	Create(ctx context.Context, w *domain.WBSItem) error
	GetByID(ctx context.Context, id string) (*domain.WBSItem, error)
	GetBySeq(ctx context.Context, projectID string, seq int) (*domain.WBSItem, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.WBSItem, error)
	ListByProjectDeepestFirst(ctx context.Context, projectID string) ([]*domain.WBSItem, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.WBSItem, error)
	ListRoots(ctx context.Context, projectID string) ([]*domain.WBSItem, error)
	Update(ctx context.Context, w *domain.WBSItem) error
	UpdateAggregates(ctx context.Context, id string, up aggregation.NodeUpdate, updatedAt time.Time) error
	SoftDelete(ctx context.Context, id string, deletedAt time.Time) error
	SoftDeleteSubtree(ctx context.Context, rootID string, deletedAt time.Time) (int, error)
}

type CostItemRepo interface {
	Create(ctx context.Context, c *domain.CostItem) error
	GetByID(ctx context.Context, id string) (*domain.CostItem, error)
	ListByItem(ctx context.Context, wbsItemID string) ([]*domain.CostItem, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.CostItem, error)
	Update(ctx context.Context, c *domain.CostItem) error
	Delete(ctx context.Context, id string) error
}

type AllocationRepo interface {
	Create(ctx context.Context, a *domain.InvoiceAllocation) error
	GetByID(ctx context.Context, id string) (*domain.InvoiceAllocation, error)
	ListByItem(ctx context.Context, wbsItemID string) ([]*domain.InvoiceAllocation, error)
	Delete(ctx context.Context, id string) error
}

type SnapshotRepo interface {
	Create(ctx context.Context, s *domain.CostSnapshot) error
	ListByEntityBetween(ctx context.Context, entityType domain.EntityType, entityID string, from, to time.Time) ([]*domain.CostSnapshot, error)
}

// SequenceAllocator hands out project-scoped sequence numbers for item refs.
type SequenceAllocator interface {
	NextProjectSeq(ctx context.Context, projectID string) (int, error)
}
