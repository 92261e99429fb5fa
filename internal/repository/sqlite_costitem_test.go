package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazen-hassani/masar2-sub000/internal/testutil"
)

func setupCostItemRepo(t *testing.T) (*SQLiteCostItemRepo, string) {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Cost Host")
	require.NoError(t, NewSQLiteProjectRepo(database).Create(ctx, proj))
	item := testutil.NewTestItem(proj.ID, "Costed Item", testutil.WithSeq(1))
	require.NoError(t, NewSQLiteWBSItemRepo(database).Create(ctx, item))

	return NewSQLiteCostItemRepo(database), item.ID
}

func TestCostItemRepo_CreateAndGetByID(t *testing.T) {
	repo, itemID := setupCostItemRepo(t)
	ctx := context.Background()

	ci := testutil.NewTestCostItem(itemID, "Asphalt supply", 25000, 18500, testutil.WithCategory("materials"))
	require.NoError(t, repo.Create(ctx, ci))

	got, err := repo.GetByID(ctx, ci.ID)
	require.NoError(t, err)
	assert.Equal(t, ci.ID, got.ID)
	assert.Equal(t, itemID, got.WBSItemID)
	assert.Equal(t, "Asphalt supply", got.Description)
	assert.Equal(t, "materials", got.Category)
	assert.Equal(t, 25000.0, got.PlannedAmount)
	assert.Equal(t, 18500.0, got.ActualAmount)
}

func TestCostItemRepo_GetByID_NotFound(t *testing.T) {
	repo, _ := setupCostItemRepo(t)
	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCostItemRepo_ListByItem_OrderedByCreation(t *testing.T) {
	repo, itemID := setupCostItemRepo(t)
	ctx := context.Background()

	first := testutil.NewTestCostItem(itemID, "First", 100, 0)
	second := testutil.NewTestCostItem(itemID, "Second", 200, 0)
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	second.UpdatedAt = second.CreatedAt
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.ListByItem(ctx, itemID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "First", list[0].Description)
	assert.Equal(t, "Second", list[1].Description)
}

func TestCostItemRepo_ListByProject_SkipsDeletedItems(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Flat Sums")
	require.NoError(t, NewSQLiteProjectRepo(database).Create(ctx, proj))
	itemRepo := NewSQLiteWBSItemRepo(database)
	kept := testutil.NewTestItem(proj.ID, "Kept", testutil.WithSeq(1))
	doomed := testutil.NewTestItem(proj.ID, "Doomed", testutil.WithSeq(2))
	require.NoError(t, itemRepo.Create(ctx, kept))
	require.NoError(t, itemRepo.Create(ctx, doomed))

	repo := NewSQLiteCostItemRepo(database)
	require.NoError(t, repo.Create(ctx, testutil.NewTestCostItem(kept.ID, "Steel", 1000, 400)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCostItem(doomed.ID, "Scrapped", 500, 500)))

	require.NoError(t, itemRepo.SoftDelete(ctx, doomed.ID, time.Now().UTC()))

	list, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Steel", list[0].Description)
}

func TestCostItemRepo_Update(t *testing.T) {
	repo, itemID := setupCostItemRepo(t)
	ctx := context.Background()

	ci := testutil.NewTestCostItem(itemID, "Original", 100, 50)
	require.NoError(t, repo.Create(ctx, ci))

	ci.Description = "Revised"
	ci.Category = "labour"
	ci.ActualAmount = 75
	ci.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, ci))

	got, err := repo.GetByID(ctx, ci.ID)
	require.NoError(t, err)
	assert.Equal(t, "Revised", got.Description)
	assert.Equal(t, "labour", got.Category)
	assert.Equal(t, 75.0, got.ActualAmount)
}

func TestCostItemRepo_Delete(t *testing.T) {
	repo, itemID := setupCostItemRepo(t)
	ctx := context.Background()

	ci := testutil.NewTestCostItem(itemID, "Doomed", 100, 0)
	require.NoError(t, repo.Create(ctx, ci))

	require.NoError(t, repo.Delete(ctx, ci.ID))
	_, err := repo.GetByID(ctx, ci.ID)
	assert.Error(t, err)
}
