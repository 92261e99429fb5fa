package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/mazen-hassani/masar2-sub000/internal/aggregation"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
	"github.com/mazen-hassani/masar2-sub000/internal/finance"
	"github.com/mazen-hassani/masar2-sub000/internal/repository"
	"github.com/mazen-hassani/masar2-sub000/internal/service"
	"github.com/mazen-hassani/masar2-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	projRepo := repository.NewSQLiteProjectRepo(database)
	itemRepo := repository.NewSQLiteWBSItemRepo(database)
	seqRepo := repository.NewSQLiteSequenceRepo(database)
	costRepo := repository.NewSQLiteCostItemRepo(database)
	allocRepo := repository.NewSQLiteAllocationRepo(database)
	snapRepo := repository.NewSQLiteSnapshotRepo(database)
	uow := testutil.NewTestUoW(database)

	opts := aggregation.DefaultOptions()
	thresholds := finance.DefaultThresholds()
	agg := service.NewAggregationService(itemRepo)

	return &App{
		Projects:    service.NewProjectService(projRepo),
		WBS:         service.NewWBSService(itemRepo, seqRepo, agg, opts),
		Aggregation: agg,
		Costs:       service.NewCostService(itemRepo, costRepo, allocRepo),
		Finance:     service.NewFinanceService(projRepo, itemRepo, costRepo, allocRepo, snapRepo),
		Portfolio:   service.NewPortfolioService(projRepo, itemRepo, costRepo, thresholds),
		Import:      service.NewImportService(projRepo, uow, agg, opts),

		Options:    opts,
		Thresholds: thresholds,

		// Commands run detached from a terminal in tests.
		IsInteractive: func() bool { return false },
	}
}

// seedProject creates one project through the service layer.
func seedProject(t *testing.T, app *App, shortID string) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject("Ring Road Upgrade", testutil.WithShortID(shortID))
	require.NoError(t, app.Projects.Create(context.Background(), p))
	return p
}

// seedTree creates a project with a parent item (#1) and two leaves (#2, #3)
// carrying planned and actual costs.
func seedTree(t *testing.T, app *App) (*domain.Project, *domain.WBSItem) {
	t.Helper()
	ctx := context.Background()
	p := seedProject(t, app, "RING01")

	parent := testutil.NewTestItem(p.ID, "Phase 1")
	require.NoError(t, app.WBS.Create(ctx, parent))

	earthworks := testutil.NewTestItem(p.ID, "Earthworks",
		testutil.WithParent(parent.ID),
		testutil.WithPlannedCost(40000),
		testutil.WithActualCost(35000),
		testutil.WithItemStatus(domain.WBSInProgress),
		testutil.WithPercent(60),
	)
	require.NoError(t, app.WBS.Create(ctx, earthworks))

	paving := testutil.NewTestItem(p.ID, "Paving",
		testutil.WithParent(parent.ID),
		testutil.WithPlannedCost(25000),
	)
	require.NoError(t, app.WBS.Create(ctx, paving))

	return p, parent
}

// executeCmd runs a cobra command and captures cobra-rendered output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- root command ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "masar")
}

// --- project commands ---

func TestProjectAddCmd(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "Ring Road Upgrade", "--id", "ring01", "--department", "infrastructure")
	require.NoError(t, err)

	// Short IDs are uppercased on the way in and matched case-insensitively.
	p, err := app.Projects.GetByShortID(context.Background(), "RING01")
	require.NoError(t, err)
	assert.Equal(t, "Ring Road Upgrade", p.Name)
	assert.Equal(t, "infrastructure", p.Department)
	assert.Equal(t, domain.ProjectActive, p.Status)
}

func TestProjectAddCmd_RequiresID(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "No ID Project")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id")
}

func TestProjectAddCmd_BadShortID(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "Bad ID", "--id", "X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "short ID")
}

func TestProjectAddCmd_BadStartDate(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "Bad Date", "--id", "BAD01", "--start", "tomorrow")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid start date")
}

func TestProjectListCmd(t *testing.T) {
	app := testApp(t)
	seedProject(t, app, "RING01")

	_, err := executeCmd(t, app, "project", "list")
	require.NoError(t, err)
}

func TestProjectInspectCmd(t *testing.T) {
	app := testApp(t)
	seedTree(t, app)

	_, err := executeCmd(t, app, "project", "inspect", "RING01")
	require.NoError(t, err)
}

func TestProjectUpdateCmd(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app, "RING01")

	_, err := executeCmd(t, app, "project", "update", "RING01", "--name", "Ring Road Phase II", "--status", "on_hold")
	require.NoError(t, err)

	got, err := app.Projects.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ring Road Phase II", got.Name)
	assert.Equal(t, domain.ProjectOnHold, got.Status)
}

func TestProjectUpdateCmd_RejectsArchivedStatus(t *testing.T) {
	app := testApp(t)
	seedProject(t, app, "RING01")

	_, err := executeCmd(t, app, "project", "update", "RING01", "--status", "archived")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archive command")
}

func TestProjectArchiveCycle(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app, "RING01")
	ctx := context.Background()

	_, err := executeCmd(t, app, "project", "archive", "RING01")
	require.NoError(t, err)
	got, err := app.Projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectArchived, got.Status)

	_, err = executeCmd(t, app, "project", "unarchive", "RING01")
	require.NoError(t, err)
	got, err = app.Projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectActive, got.Status)
}

func TestProjectRemoveCmd_RequiresArchiveOrForce(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app, "RING01")
	ctx := context.Background()

	_, err := executeCmd(t, app, "project", "remove", "RING01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be archived")

	_, err = executeCmd(t, app, "project", "remove", "RING01", "--force")
	require.NoError(t, err)

	_, err = app.Projects.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRemoveCmd_Unknown(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "remove", "GHOST99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

// --- wbs commands ---

func TestWBSAddCmd(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app, "RING01")

	_, err := executeCmd(t, app, "wbs", "add", "Foundations", "--project", "RING01", "--cost", "12500")
	require.NoError(t, err)

	item, err := app.WBS.GetBySeq(context.Background(), p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Foundations", item.Title)
	assert.Equal(t, domain.WBSNotStarted, item.Status)
	require.NotNil(t, item.PlannedCost)
	assert.InDelta(t, 12500, *item.PlannedCost, 0.001)
}

func TestWBSAddCmd_UnderParent(t *testing.T) {
	app := testApp(t)
	p, parent := seedTree(t, app)

	_, err := executeCmd(t, app, "wbs", "add", "Drainage", "--project", "RING01", "--parent", "#1")
	require.NoError(t, err)

	item, err := app.WBS.GetBySeq(context.Background(), p.ID, 4)
	require.NoError(t, err)
	require.NotNil(t, item.ParentID)
	assert.Equal(t, parent.ID, *item.ParentID)
	assert.Equal(t, parent.Level+1, item.Level)
}

func TestWBSAddCmd_NoTitle(t *testing.T) {
	app := testApp(t)
	seedProject(t, app, "RING01")

	_, err := executeCmd(t, app, "wbs", "add", "--project", "RING01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")
}

func TestWBSAddCmd_InteractiveNeedsTerminal(t *testing.T) {
	app := testApp(t)
	seedProject(t, app, "RING01")

	_, err := executeCmd(t, app, "wbs", "add", "-i")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a terminal")
}

func TestWBSTreeCmd(t *testing.T) {
	app := testApp(t)
	seedTree(t, app)

	_, err := executeCmd(t, app, "wbs", "tree", "RING01")
	require.NoError(t, err)
}

func TestWBSInspectCmd(t *testing.T) {
	app := testApp(t)
	seedTree(t, app)

	_, err := executeCmd(t, app, "wbs", "inspect", "#2", "--project", "RING01")
	require.NoError(t, err)
}

func TestWBSInspectCmd_ParentIncludesSummary(t *testing.T) {
	app := testApp(t)
	seedTree(t, app)

	// The parent's inspect card also reads the aggregation summary.
	_, err := executeCmd(t, app, "wbs", "inspect", "#1", "--project", "RING01")
	require.NoError(t, err)
}

func TestWBSUpdateCmd(t *testing.T) {
	app := testApp(t)
	p, _ := seedTree(t, app)

	_, err := executeCmd(t, app, "wbs", "update", "#2", "--project", "RING01",
		"--status", "completed", "--percent", "100", "--actual-cost", "41000")
	require.NoError(t, err)

	item, err := app.WBS.GetBySeq(context.Background(), p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.WBSCompleted, item.Status)
	assert.Equal(t, 100, item.PercentComplete)
	require.NotNil(t, item.ActualCost)
	assert.InDelta(t, 41000, *item.ActualCost, 0.001)
}

func TestWBSMoveCmd_ToRoot(t *testing.T) {
	app := testApp(t)
	p, _ := seedTree(t, app)

	_, err := executeCmd(t, app, "wbs", "move", "#3", "--project", "RING01", "--root")
	require.NoError(t, err)

	item, err := app.WBS.GetBySeq(context.Background(), p.ID, 3)
	require.NoError(t, err)
	assert.Nil(t, item.ParentID)
	assert.Equal(t, 0, item.Level)
}

func TestWBSMoveCmd_FlagExclusive(t *testing.T) {
	app := testApp(t)
	seedTree(t, app)

	_, err := executeCmd(t, app, "wbs", "move", "#3", "--project", "RING01", "--root", "--parent", "#1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")

	_, err = executeCmd(t, app, "wbs", "move", "#3", "--project", "RING01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")
}

func TestWBSRemoveCmd_RemovesSubtree(t *testing.T) {
	app := testApp(t)
	p, parent := seedTree(t, app)
	ctx := context.Background()

	_, err := executeCmd(t, app, "wbs", "remove", "#1", "--project", "RING01")
	require.NoError(t, err)

	_, err = app.WBS.GetByID(ctx, parent.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = app.WBS.GetBySeq(ctx, p.ID, 2)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// --- ui command ---

func TestUICmd_NeedsTerminal(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "ui")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a terminal")
}
