package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/mazen-hassani/masar2-sub000/internal/aggregation"
	"github.com/mazen-hassani/masar2-sub000/internal/importer"
	"github.com/mazen-hassani/masar2-sub000/internal/repository"
	"github.com/mazen-hassani/masar2-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }

func validImportSchema() *importer.ImportSchema {
	return &importer.ImportSchema{
		Project: importer.ProjectImport{
			Name:       "Rollback Test Project",
			ShortID:    "RBT01",
			Department: "testing",
			StartDate:  "2026-01-01",
		},
		Items: []importer.ItemImport{
			{Ref: "ph1", Title: "Phase 1"},
			{Ref: "ph1_a", ParentRef: strPtr("ph1"), Title: "Groundworks", PlannedCost: floatPtr(1000)},
			{Ref: "ph2", Title: "Phase 2"},
		},
		CostItems: []importer.CostItemImport{
			{ItemRef: "ph1_a", Description: "Excavator hire", Category: "equipment", PlannedAmount: 400, ActualAmount: 380},
		},
		Allocations: []importer.AllocationImport{
			{ItemRef: "ph1_a", InvoiceRef: "INV-7", Amount: 380, Percentage: 100},
		},
	}
}

func TestImportProject_RollbackOnItemCreateFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	projRepo := repository.NewSQLiteProjectRepo(database)
	itemRepo := repository.NewSQLiteWBSItemRepo(database)
	agg := NewAggregationService(itemRepo)
	ctx := context.Background()

	// ExecContext calls in importSchema:
	// #1 = project create, #2 = "Phase 1", #3 = "Groundworks", #4 = "Phase 2"
	// Fail on #3 so the second item fails after project + first item succeed within tx
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 3,
		Err:    fmt.Errorf("injected item create failure"),
	}

	svc := NewImportService(projRepo, failUoW, agg, aggregation.DefaultOptions())

	_, err := svc.ImportProjectFromSchema(ctx, validImportSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected item create failure")

	// Verify nothing was persisted (transaction rolled back)
	projects, err := projRepo.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, projects, "no projects should exist after rollback")
}

func TestImportProject_RollbackOnCostItemCreateFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	projRepo := repository.NewSQLiteProjectRepo(database)
	itemRepo := repository.NewSQLiteWBSItemRepo(database)
	agg := NewAggregationService(itemRepo)
	ctx := context.Background()

	// Exec calls: #1 = project, #2..#4 = items, #5 = cost item
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 5,
		Err:    fmt.Errorf("injected cost item create failure"),
	}

	svc := NewImportService(projRepo, failUoW, agg, aggregation.DefaultOptions())

	_, err := svc.ImportProjectFromSchema(ctx, validImportSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected cost item create failure")

	// Verify nothing was persisted
	projects, err := projRepo.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, projects, "no projects should exist after rollback")
}

func TestImportProject_SuccessPath(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	projRepo := repository.NewSQLiteProjectRepo(database)
	itemRepo := repository.NewSQLiteWBSItemRepo(database)
	ciRepo := repository.NewSQLiteCostItemRepo(database)
	allocRepo := repository.NewSQLiteAllocationRepo(database)
	agg := NewAggregationService(itemRepo)
	ctx := context.Background()

	svc := NewImportService(projRepo, uow, agg, aggregation.DefaultOptions())

	result, err := svc.ImportProjectFromSchema(ctx, validImportSchema())
	require.NoError(t, err)
	assert.Equal(t, "Rollback Test Project", result.Project.Name)
	assert.Equal(t, 3, result.ItemCount)
	assert.Equal(t, 1, result.CostItemCount)
	assert.Equal(t, 1, result.AllocationCount)

	// Verify all entities are queryable
	projects, err := projRepo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, projects, 1)

	items, err := itemRepo.ListByProject(ctx, result.Project.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)

	costItems, err := ciRepo.ListByProject(ctx, result.Project.ID)
	require.NoError(t, err)
	assert.Len(t, costItems, 1)

	// Rebuild ran after commit: "Phase 1" carries its child's planned cost.
	require.NotNil(t, result.Rebuild)
	assert.Equal(t, 1, result.Rebuild.NodesUpdated)
	assert.Empty(t, result.Rebuild.Errors)

	for _, it := range items {
		switch it.Title {
		case "Phase 1":
			assert.Equal(t, 1000.0, it.AggregatedCost)
		case "Groundworks":
			require.NotNil(t, it.ParentID)
			alloc, err := allocRepo.ListByItem(ctx, it.ID)
			require.NoError(t, err)
			assert.Len(t, alloc, 1)
		case "Phase 2":
			assert.Zero(t, it.AggregatedCost)
		}
	}
}
