package service

import (
	"context"
	"time"

	"github.com/mazen-hassani/masar2-sub000/internal/aggregation"
	"github.com/mazen-hassani/masar2-sub000/internal/app"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
	"github.com/mazen-hassani/masar2-sub000/internal/finance"
	"github.com/mazen-hassani/masar2-sub000/internal/importer"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

// TreeNode is one WBS item with its children nested, ready for display.
type TreeNode struct {
	Item     *domain.WBSItem
	Children []*TreeNode
}

type WBSService interface {
	Create(ctx context.Context, w *domain.WBSItem) error
	GetByID(ctx context.Context, id string) (*domain.WBSItem, error)
	GetBySeq(ctx context.Context, projectID string, seq int) (*domain.WBSItem, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.WBSItem, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.WBSItem, error)
	ListRoots(ctx context.Context, projectID string) ([]*domain.WBSItem, error)
	Tree(ctx context.Context, projectID string) ([]*TreeNode, error)
	Update(ctx context.Context, w *domain.WBSItem) error
	Move(ctx context.Context, id string, newParentID *string) error
	Remove(ctx context.Context, id string) (int, error)
}

type AggregationService interface {
	AggregateNode(ctx context.Context, nodeID string, opts aggregation.Options) (*aggregation.NodeUpdate, error)
	PropagateFromItem(ctx context.Context, itemID string, opts aggregation.Options) (int, error)
	RebuildHierarchy(ctx context.Context, projectID string, opts aggregation.Options) (*app.RebuildReport, error)
	GetAggregationResult(ctx context.Context, nodeID string, opts aggregation.Options) (*aggregation.Result, error)
	GetAggregationSummary(ctx context.Context, nodeID string) (*aggregation.Summary, error)
}

type CostService interface {
	CreateCostItem(ctx context.Context, c *domain.CostItem) error
	GetCostItem(ctx context.Context, id string) (*domain.CostItem, error)
	UpdateCostItem(ctx context.Context, c *domain.CostItem) error
	DeleteCostItem(ctx context.Context, id string) error
	ListCostItems(ctx context.Context, wbsItemID string) ([]*domain.CostItem, error)
	CreateAllocation(ctx context.Context, a *domain.InvoiceAllocation) error
	DeleteAllocation(ctx context.Context, id string) error
	ListAllocations(ctx context.Context, wbsItemID string) ([]*domain.InvoiceAllocation, error)
}

type FinanceService interface {
	CalculateItemCostRollup(ctx context.Context, itemID string) (*finance.Rollup, error)
	CalculateBudgetForecast(ctx context.Context, req app.ForecastRequest) (*finance.Forecast, error)
	AnalyzeCostTrend(ctx context.Context, req app.TrendRequest) (*app.CostTrend, error)
	CheckBudgetHealth(ctx context.Context, req app.ForecastRequest, thresholds finance.HealthThresholds) (*finance.Health, error)
	RecordSnapshot(ctx context.Context, entityType, entityID string) (*domain.CostSnapshot, error)
	ListSnapshots(ctx context.Context, entityType, entityID string, from, to time.Time) ([]*domain.CostSnapshot, error)
}

type PortfolioService interface {
	Overview(ctx context.Context, req app.PortfolioRequest) (*app.PortfolioResponse, error)
}

type ImportService interface {
	ImportProject(ctx context.Context, filePath string) (*app.ImportResult, error)
	ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*app.ImportResult, error)
}
