package cli

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazen-hassani/masar2-sub000/internal/domain"
	"github.com/mazen-hassani/masar2-sub000/internal/testutil"
)

func loadedItemDetail(t *testing.T, app *App, item *domain.WBSItem) *itemDetailView {
	t.Helper()
	state := &SharedState{App: app, Width: 100, Height: 30}
	state.SetActiveItem(item.ID, item.Title, item.Seq)
	v := newItemDetailView(state)

	msg := v.Init()()
	loaded, ok := msg.(itemDetailLoadedMsg)
	require.True(t, ok, "expected itemDetailLoadedMsg, got %T", msg)
	require.NoError(t, loaded.err)

	model, _ := v.Update(loaded)
	return model.(*itemDetailView)
}

func TestItemDetailView_Render(t *testing.T) {
	app := testApp(t)
	seedTree(t, app)
	ctx := context.Background()

	item, err := resolveItem(ctx, app, "RING01", "#2")
	require.NoError(t, err)
	require.NoError(t, app.Costs.CreateCostItem(ctx, testutil.NewTestCostItem(item.ID, "Aggregate base", 18000, 16500)))
	require.NoError(t, app.Costs.CreateAllocation(ctx, testutil.NewTestAllocation(item.ID, "INV-2026-014", 5200)))

	v := loadedItemDetail(t, app, item)
	assert.Equal(t, "#2", v.Title())

	out := v.View()
	assert.Contains(t, out, "Earthworks")
	assert.Contains(t, out, "#2")
	assert.Contains(t, out, "Progress")
	assert.Contains(t, out, "Variance")
	assert.Contains(t, out, "Aggregate base")
	assert.Contains(t, out, "1 invoices")
}

func TestItemDetailView_ParentShowsChildSummary(t *testing.T) {
	app := testApp(t)
	_, parent := seedTree(t, app)

	v := loadedItemDetail(t, app, parent)
	out := v.View()
	assert.Contains(t, out, "Phase 1")
	assert.Contains(t, out, "Children")
}

func TestItemDetailView_DatesFallBack(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app, "RING01")
	ctx := context.Background()

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 29, 0, 0, 0, 0, time.UTC)
	item := testutil.NewTestItem(p.ID, "Drainage", testutil.WithPlannedWindow(start, end))
	require.NoError(t, app.WBS.Create(ctx, item))

	v := loadedItemDetail(t, app, item)
	out := v.View()
	// Planned dates render dimmed; no actuals recorded yet.
	assert.Contains(t, out, "Mar")
	assert.Contains(t, out, "May")
}

func TestItemDetailView_SnapshotKey(t *testing.T) {
	app := testApp(t)
	seedTree(t, app)
	ctx := context.Background()

	item, err := resolveItem(ctx, app, "RING01", "#2")
	require.NoError(t, err)

	v := loadedItemDetail(t, app, item)
	model, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	v = model.(*itemDetailView)
	require.NotNil(t, cmd)

	msg := cmd()
	recorded, ok := msg.(snapshotRecordedMsg)
	require.True(t, ok, "expected snapshotRecordedMsg, got %T", msg)
	require.NoError(t, recorded.err)

	model, _ = v.Update(recorded)
	v = model.(*itemDetailView)
	assert.Contains(t, v.note, "Snapshot recorded")
	assert.False(t, v.noteErr)
	assert.Contains(t, v.View(), "Snapshot recorded")

	now := time.Now().UTC()
	snaps, err := app.Finance.ListSnapshots(ctx, string(domain.EntityWBSItem), item.ID, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
}

func TestItemDetailView_SnapshotFailureNote(t *testing.T) {
	app := testApp(t)
	seedTree(t, app)
	ctx := context.Background()

	item, err := resolveItem(ctx, app, "RING01", "#2")
	require.NoError(t, err)
	v := loadedItemDetail(t, app, item)

	model, _ := v.Update(snapshotRecordedMsg{err: fmt.Errorf("db locked")})
	v = model.(*itemDetailView)
	assert.True(t, v.noteErr)
	assert.Contains(t, v.View(), "Snapshot failed")
}

func TestItemDetailView_RefreshClearsNote(t *testing.T) {
	app := testApp(t)
	seedTree(t, app)
	ctx := context.Background()

	item, err := resolveItem(ctx, app, "RING01", "#2")
	require.NoError(t, err)
	v := loadedItemDetail(t, app, item)
	v.note = "Snapshot recorded: planned $0.00, actual $0.00"

	model, cmd := v.Update(refreshViewMsg{})
	v = model.(*itemDetailView)
	require.NotNil(t, cmd)
	assert.True(t, v.loading)

	model, _ = v.Update(cmd().(itemDetailLoadedMsg))
	v = model.(*itemDetailView)
	assert.Empty(t, v.note)
}

func TestItemDetailView_LoadError(t *testing.T) {
	app := testApp(t)
	state := &SharedState{App: app, Width: 100, Height: 30}
	state.SetActiveItem("no-such-item", "Ghost", 9)
	v := newItemDetailView(state)

	msg := v.Init()()
	loaded, ok := msg.(itemDetailLoadedMsg)
	require.True(t, ok)
	require.Error(t, loaded.err)

	model, _ := v.Update(loaded)
	v = model.(*itemDetailView)
	assert.Contains(t, v.View(), "Error:")
}
