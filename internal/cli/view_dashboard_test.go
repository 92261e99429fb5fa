package cli

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedDashboard(t *testing.T, app *App) *dashboardView {
	t.Helper()
	state := &SharedState{App: app, Width: 100, Height: 30}
	v := newDashboardView(state)

	msg := v.Init()()
	loaded, ok := msg.(dashboardLoadedMsg)
	require.True(t, ok, "expected dashboardLoadedMsg, got %T", msg)
	require.NoError(t, loaded.err)

	model, _ := v.Update(loaded)
	return model.(*dashboardView)
}

func TestDashboardView_RendersPortfolio(t *testing.T) {
	app := testApp(t)
	seedTree(t, app)

	v := loadedDashboard(t, app)
	out := v.View()

	assert.Contains(t, out, "1 projects")
	assert.Contains(t, out, "RING01")
	assert.Contains(t, out, "Ring Road Upgrade")
	// Right pane detail for the selected row.
	assert.Contains(t, out, "planned")
	assert.Contains(t, out, "3 in breakdown")
}

func TestDashboardView_EmptyState(t *testing.T) {
	app := testApp(t)

	v := loadedDashboard(t, app)
	assert.Contains(t, v.View(), "No projects yet")
}

func TestDashboardView_LoadError(t *testing.T) {
	app := testApp(t)
	state := &SharedState{App: app, Width: 100, Height: 30}
	v := newDashboardView(state)

	model, _ := v.Update(dashboardLoadedMsg{err: fmt.Errorf("db locked")})
	v = model.(*dashboardView)

	assert.Contains(t, v.View(), "db locked")
}

func TestDashboardView_CursorMovement(t *testing.T) {
	app := testApp(t)
	seedProject(t, app, "AAA01")
	seedProject(t, app, "BBB01")

	v := loadedDashboard(t, app)
	require.Equal(t, 0, v.cursor)

	model, _ := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	v = model.(*dashboardView)
	assert.Equal(t, 1, v.cursor)

	// Clamped at the last row.
	model, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v = model.(*dashboardView)
	assert.Equal(t, 1, v.cursor)

	model, _ = v.Update(tea.KeyMsg{Type: tea.KeyUp})
	v = model.(*dashboardView)
	assert.Equal(t, 0, v.cursor)
}

func TestDashboardView_EnterOpensTree(t *testing.T) {
	app := testApp(t)
	p, _ := seedTree(t, app)

	v := loadedDashboard(t, app)
	model, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = model.(*dashboardView)
	require.NotNil(t, cmd)

	msg := cmd()
	push, ok := msg.(pushViewMsg)
	require.True(t, ok, "expected pushViewMsg, got %T", msg)
	assert.Equal(t, ViewTree, push.view.ID())

	assert.Equal(t, p.ID, v.state.ActiveProjectID)
	assert.Equal(t, "RING01", v.state.ActiveShortID)
	assert.Empty(t, v.state.ActiveItemID)
}

func TestDashboardView_Refresh(t *testing.T) {
	app := testApp(t)
	v := loadedDashboard(t, app)

	model, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	v = model.(*dashboardView)
	require.NotNil(t, cmd)
	assert.True(t, v.loading)

	// The reload lands like any other fetch.
	msg := cmd()
	_, ok := msg.(dashboardLoadedMsg)
	assert.True(t, ok)
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "abc   ", padRight("abc", 6))
	assert.Equal(t, "abcde…", padRight("abcdefgh", 6))
	assert.Equal(t, "abcdef", padRight("abcdef", 6))
}
