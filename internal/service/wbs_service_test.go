package service

import (
	"context"
	"testing"

	"github.com/mazen-hassani/masar2-sub000/internal/aggregation"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
	"github.com/mazen-hassani/masar2-sub000/internal/repository"
	"github.com/mazen-hassani/masar2-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupWBSService(t *testing.T) (WBSService, repository.ProjectRepo, repository.WBSItemRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	projRepo := repository.NewSQLiteProjectRepo(database)
	itemRepo := repository.NewSQLiteWBSItemRepo(database)
	seqRepo := repository.NewSQLiteSequenceRepo(database)
	agg := NewAggregationService(itemRepo)
	svc := NewWBSService(itemRepo, seqRepo, agg, aggregation.DefaultOptions())
	return svc, projRepo, itemRepo
}

func TestWBSService_Create_AssignsStructure(t *testing.T) {
	svc, projects, _ := setupWBSService(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Roads")
	require.NoError(t, projects.Create(ctx, proj))

	rootA := &domain.WBSItem{ProjectID: proj.ID, Title: "Phase A"}
	require.NoError(t, svc.Create(ctx, rootA))
	assert.NotEmpty(t, rootA.ID, "UUID should be generated")
	assert.Equal(t, 1, rootA.Seq)
	assert.Equal(t, 0, rootA.Level)
	assert.Equal(t, 0, rootA.OrderIndex)
	assert.Equal(t, domain.WBSNotStarted, rootA.Status, "status should default")

	rootB := &domain.WBSItem{ProjectID: proj.ID, Title: "Phase B"}
	require.NoError(t, svc.Create(ctx, rootB))
	assert.Equal(t, 2, rootB.Seq)
	assert.Equal(t, 1, rootB.OrderIndex, "second root appends after the first")

	child := &domain.WBSItem{ProjectID: proj.ID, ParentID: &rootA.ID, Title: "Earthworks"}
	require.NoError(t, svc.Create(ctx, child))
	assert.Equal(t, 3, child.Seq, "seq keeps counting across levels")
	assert.Equal(t, 1, child.Level)
	assert.Equal(t, 0, child.OrderIndex, "first child of its parent")
}

func TestWBSService_Create_PropagatesToAncestors(t *testing.T) {
	svc, projects, items := setupWBSService(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Roads")
	require.NoError(t, projects.Create(ctx, proj))

	root := &domain.WBSItem{ProjectID: proj.ID, Title: "Phase A"}
	require.NoError(t, svc.Create(ctx, root))

	child := &domain.WBSItem{
		ProjectID:       proj.ID,
		ParentID:        &root.ID,
		Title:           "Earthworks",
		Status:          domain.WBSInProgress,
		PercentComplete: 40,
		PlannedCost:     floatPtr(500),
	}
	require.NoError(t, svc.Create(ctx, child))

	got, err := items.GetByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, got.AggregatedCost)
	assert.Equal(t, domain.AggInProgress, got.AggregatedStatus)
	assert.Equal(t, 40, got.PercentComplete)
}

func TestWBSService_Create_RejectsCrossProjectParent(t *testing.T) {
	svc, projects, _ := setupWBSService(t)
	ctx := context.Background()

	projA := testutil.NewTestProject("Roads")
	projB := testutil.NewTestProject("Bridges")
	require.NoError(t, projects.Create(ctx, projA))
	require.NoError(t, projects.Create(ctx, projB))

	root := &domain.WBSItem{ProjectID: projA.ID, Title: "Phase A"}
	require.NoError(t, svc.Create(ctx, root))

	stray := &domain.WBSItem{ProjectID: projB.ID, ParentID: &root.ID, Title: "Stray"}
	err := svc.Create(ctx, stray)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "different project")
}

func TestWBSService_Create_RequiresProjectID(t *testing.T) {
	svc, _, _ := setupWBSService(t)

	err := svc.Create(context.Background(), &domain.WBSItem{Title: "Orphan"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project ID is required")
}

func TestWBSService_Tree_NestsChildren(t *testing.T) {
	svc, projects, _ := setupWBSService(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Roads")
	require.NoError(t, projects.Create(ctx, proj))

	rootA := &domain.WBSItem{ProjectID: proj.ID, Title: "Phase A"}
	rootB := &domain.WBSItem{ProjectID: proj.ID, Title: "Phase B"}
	require.NoError(t, svc.Create(ctx, rootA))
	require.NoError(t, svc.Create(ctx, rootB))

	mid := &domain.WBSItem{ProjectID: proj.ID, ParentID: &rootA.ID, Title: "Earthworks"}
	require.NoError(t, svc.Create(ctx, mid))
	leaf := &domain.WBSItem{ProjectID: proj.ID, ParentID: &mid.ID, Title: "Drainage"}
	require.NoError(t, svc.Create(ctx, leaf))

	tree, err := svc.Tree(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "Phase A", tree[0].Item.Title)
	assert.Equal(t, "Phase B", tree[1].Item.Title)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Earthworks", tree[0].Children[0].Item.Title)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "Drainage", tree[0].Children[0].Children[0].Item.Title)
	assert.Empty(t, tree[1].Children)
}

func TestWBSService_Update_RejectsReparent(t *testing.T) {
	svc, projects, _ := setupWBSService(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Roads")
	require.NoError(t, projects.Create(ctx, proj))

	root := &domain.WBSItem{ProjectID: proj.ID, Title: "Phase A"}
	require.NoError(t, svc.Create(ctx, root))
	child := &domain.WBSItem{ProjectID: proj.ID, ParentID: &root.ID, Title: "Earthworks"}
	require.NoError(t, svc.Create(ctx, child))

	moved := *child
	moved.ParentID = nil
	err := svc.Update(ctx, &moved)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use move")
}

func TestWBSService_Update_PreservesStructureAndPropagates(t *testing.T) {
	svc, projects, items := setupWBSService(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Roads")
	require.NoError(t, projects.Create(ctx, proj))

	root := &domain.WBSItem{ProjectID: proj.ID, Title: "Phase A"}
	require.NoError(t, svc.Create(ctx, root))
	child := &domain.WBSItem{
		ProjectID:       proj.ID,
		ParentID:        &root.ID,
		Title:           "Earthworks",
		Status:          domain.WBSInProgress,
		PercentComplete: 40,
	}
	require.NoError(t, svc.Create(ctx, child))
	originalSeq := child.Seq

	// Caller passes zeroed structural fields; the stored ones must survive.
	upd := &domain.WBSItem{
		ID:              child.ID,
		ProjectID:       proj.ID,
		ParentID:        &root.ID,
		Title:           "Earthworks and drainage",
		Status:          domain.WBSInProgress,
		PercentComplete: 80,
	}
	require.NoError(t, svc.Update(ctx, upd))

	got, err := items.GetByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "Earthworks and drainage", got.Title)
	assert.Equal(t, originalSeq, got.Seq)
	assert.Equal(t, 1, got.Level)

	parent, err := items.GetByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, 80, parent.PercentComplete, "parent rollup follows the update")
}

func TestWBSService_Move_ReparentsAndShiftsLevels(t *testing.T) {
	svc, projects, items := setupWBSService(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Roads")
	require.NoError(t, projects.Create(ctx, proj))

	rootA := &domain.WBSItem{ProjectID: proj.ID, Title: "Phase A"}
	rootB := &domain.WBSItem{ProjectID: proj.ID, Title: "Phase B"}
	require.NoError(t, svc.Create(ctx, rootA))
	require.NoError(t, svc.Create(ctx, rootB))

	mid := &domain.WBSItem{ProjectID: proj.ID, ParentID: &rootA.ID, Title: "Earthworks", PlannedCost: floatPtr(300)}
	require.NoError(t, svc.Create(ctx, mid))
	leaf := &domain.WBSItem{ProjectID: proj.ID, ParentID: &mid.ID, Title: "Drainage", PlannedCost: floatPtr(200)}
	require.NoError(t, svc.Create(ctx, leaf))

	// Promote the subtree to root level.
	require.NoError(t, svc.Move(ctx, mid.ID, nil))

	gotMid, err := items.GetByID(ctx, mid.ID)
	require.NoError(t, err)
	assert.Nil(t, gotMid.ParentID)
	assert.Equal(t, 0, gotMid.Level)
	assert.Equal(t, 2, gotMid.OrderIndex, "appends after the existing roots")

	gotLeaf, err := items.GetByID(ctx, leaf.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotLeaf.Level, "subtree shifts with its root")

	gotA, err := items.GetByID(ctx, rootA.ID)
	require.NoError(t, err)
	assert.Zero(t, gotA.AggregatedCost, "old parent loses the subtree's costs")

	// Tuck it under the other phase.
	require.NoError(t, svc.Move(ctx, mid.ID, &rootB.ID))

	gotMid, err = items.GetByID(ctx, mid.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotMid.Level)

	gotLeaf, err = items.GetByID(ctx, leaf.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, gotLeaf.Level)

	gotB, err := items.GetByID(ctx, rootB.ID)
	require.NoError(t, err)
	assert.Equal(t, 300.0, gotB.AggregatedCost, "new parent picks the subtree up")
}

func TestWBSService_Move_RejectsCycles(t *testing.T) {
	svc, projects, _ := setupWBSService(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Roads")
	require.NoError(t, projects.Create(ctx, proj))

	root := &domain.WBSItem{ProjectID: proj.ID, Title: "Phase A"}
	require.NoError(t, svc.Create(ctx, root))
	mid := &domain.WBSItem{ProjectID: proj.ID, ParentID: &root.ID, Title: "Earthworks"}
	require.NoError(t, svc.Create(ctx, mid))
	leaf := &domain.WBSItem{ProjectID: proj.ID, ParentID: &mid.ID, Title: "Drainage"}
	require.NoError(t, svc.Create(ctx, leaf))

	err := svc.Move(ctx, root.ID, &root.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "under itself")

	err = svc.Move(ctx, root.ID, &leaf.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "own descendant")
}

func TestWBSService_Move_SameParentIsNoOp(t *testing.T) {
	svc, projects, items := setupWBSService(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Roads")
	require.NoError(t, projects.Create(ctx, proj))

	root := &domain.WBSItem{ProjectID: proj.ID, Title: "Phase A"}
	require.NoError(t, svc.Create(ctx, root))
	child := &domain.WBSItem{ProjectID: proj.ID, ParentID: &root.ID, Title: "Earthworks"}
	require.NoError(t, svc.Create(ctx, child))

	require.NoError(t, svc.Move(ctx, child.ID, &root.ID))

	got, err := items.GetByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.OrderIndex, "order index untouched on a no-op move")
}

func TestWBSService_Remove_SoftDeletesSubtree(t *testing.T) {
	svc, projects, items := setupWBSService(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Roads")
	require.NoError(t, projects.Create(ctx, proj))

	root := &domain.WBSItem{ProjectID: proj.ID, Title: "Phase A"}
	require.NoError(t, svc.Create(ctx, root))
	mid := &domain.WBSItem{ProjectID: proj.ID, ParentID: &root.ID, Title: "Earthworks", PlannedCost: floatPtr(300)}
	require.NoError(t, svc.Create(ctx, mid))
	leaf := &domain.WBSItem{ProjectID: proj.ID, ParentID: &mid.ID, Title: "Drainage", PlannedCost: floatPtr(200)}
	require.NoError(t, svc.Create(ctx, leaf))

	count, err := svc.Remove(ctx, mid.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "item and its descendant")

	live, err := items.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, root.ID, live[0].ID)

	// The emptied parent drops back to the neutral record.
	got, err := items.GetByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Zero(t, got.AggregatedCost)
	assert.Equal(t, domain.AggNotStarted, got.AggregatedStatus)
	assert.Zero(t, got.PercentComplete)
}
