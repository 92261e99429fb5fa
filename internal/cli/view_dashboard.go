package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mazen-hassani/masar2-sub000/internal/app"
	"github.com/mazen-hassani/masar2-sub000/internal/cli/formatter"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// ── messages ─────────────────────────────────────────────────────────────────

// dashboardLoadedMsg signals that portfolio data has been loaded.
type dashboardLoadedMsg struct {
	resp *app.PortfolioResponse
	err  error
}

// ── view ─────────────────────────────────────────────────────────────────────

// dashboardView is the home screen of the TUI.
// It shows a split-pane layout: left pane (selectable project list) and right
// pane (budget detail for the selected project). Both panes render from the
// same portfolio overview response, so a single load refreshes everything.
type dashboardView struct {
	state   *SharedState
	resp    *app.PortfolioResponse
	loading bool
	err     error

	cursor int
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{
		state:   state,
		loading: true,
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadData()
}

// ── data loading ─────────────────────────────────────────────────────────────

func (v *dashboardView) loadData() tea.Cmd {
	portfolio := v.state.App.Portfolio
	return func() tea.Msg {
		resp, err := portfolio.Overview(context.Background(), app.PortfolioRequest{})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		return dashboardLoadedMsg{resp: resp}
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.resp = msg.resp
		if v.cursor >= len(v.resp.Projects) {
			v.cursor = max(0, len(v.resp.Projects)-1)
		}
		return v, nil

	case refreshViewMsg:
		v.loading = true
		v.err = nil
		return v, v.loadData()

	case tea.KeyMsg:
		var rows []app.ProjectOverview
		if v.resp != nil {
			rows = v.resp.Projects
		}
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(rows)-1 {
				v.cursor++
			}
		case "enter":
			if v.cursor < len(rows) {
				row := rows[v.cursor]
				v.state.SetActiveProject(row.ProjectID, row.ShortID, row.Name)
				v.state.ClearItemContext()
				return v, pushView(newTreeView(v.state))
			}
		case "r":
			v.loading = true
			v.err = nil
			return v, v.loadData()
		}
	}

	return v, nil
}

// ── view rendering ───────────────────────────────────────────────────────────

const dashLeftPaneWidth = 36

func (v *dashboardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if v.resp == nil {
		return ""
	}

	var b strings.Builder

	// Health tally across the portfolio.
	s := v.resp.Summary
	b.WriteString(fmt.Sprintf("\n  %s   %s  %s  %s\n\n",
		formatter.Bold(fmt.Sprintf("%d projects", s.CountsTotal)),
		formatter.StyleGreen.Render(fmt.Sprintf("● %d", s.CountsHealthy)),
		formatter.StyleYellow.Render(fmt.Sprintf("● %d", s.CountsWarning)),
		formatter.StyleRed.Render(fmt.Sprintf("● %d", s.CountsCritical)),
	))

	rows := v.resp.Projects
	if len(rows) == 0 {
		b.WriteString("  " + formatter.Dim("No projects yet. Create one with: masar project add"))
		b.WriteString("\n")
		return b.String()
	}

	// Decide layout: split pane vs. single column.
	useSplit := v.state.Width >= 80

	leftPane := v.renderLeftPane(rows)
	rightPane := v.renderRightPane()

	if !useSplit {
		b.WriteString(leftPane)
		b.WriteString("\n")
		b.WriteString(rightPane)
		return b.String()
	}

	rightWidth := v.state.Width - dashLeftPaneWidth - 3
	if rightWidth < 20 {
		rightWidth = 20
	}

	leftCol := lipgloss.NewStyle().Width(dashLeftPaneWidth).Render(leftPane)
	divider := lipgloss.NewStyle().
		Foreground(lipgloss.Color(formatter.ColorDim)).
		Render("│")
	rightCol := lipgloss.NewStyle().Width(rightWidth).Render(rightPane)

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, leftCol, " "+divider+" ", rightCol))

	return b.String()
}

// ── left pane: selectable project list ───────────────────────────────────────

func (v *dashboardView) renderLeftPane(rows []app.ProjectOverview) string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("PROJECTS") + "\n\n")

	for i, row := range rows {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}

		name := row.Name
		if len(name) > 16 {
			name = name[:15] + "…"
		}

		progressBar := formatter.RenderProgress(row.Progress/100, 6)

		healthDot := formatter.Dim("·")
		switch row.Health {
		case domain.HealthCritical:
			healthDot = formatter.StyleRed.Render("●")
		case domain.HealthWarning:
			healthDot = formatter.StyleYellow.Render("●")
		case domain.HealthHealthy:
			healthDot = formatter.StyleGreen.Render("●")
		}

		b.WriteString(fmt.Sprintf("%s%-7s %s %s %s\n",
			cursor,
			formatter.StyleGreen.Render(row.ShortID),
			nameStyle.Render(padRight(name, 16)),
			progressBar,
			healthDot,
		))
	}

	return b.String()
}

// ── right pane: budget detail ────────────────────────────────────────────────

func (v *dashboardView) renderRightPane() string {
	rows := v.resp.Projects
	if v.cursor >= len(rows) {
		return formatter.Dim("Select a project to see details.")
	}

	row := rows[v.cursor]
	var b strings.Builder

	// Project name + status
	b.WriteString(formatter.StyleBold.Render(row.Name) + "\n")
	b.WriteString(formatter.StatusPill(row.Status))
	if row.Department != "" {
		b.WriteString("  " + formatter.DepartmentBadge(row.Department))
	}
	b.WriteString("\n\n")

	// Progress
	b.WriteString(formatter.Dim("Progress  "))
	b.WriteString(formatter.RenderProgress(row.Progress/100, 16) + "\n\n")

	// Budget
	b.WriteString(formatter.Dim("Budget    "))
	b.WriteString(fmt.Sprintf("%s spent / %s planned\n",
		formatter.Bold(formatter.Money(row.ActualCost)),
		formatter.Dim(formatter.Money(row.PlannedCost)),
	))
	b.WriteString(formatter.Dim("Items     "))
	b.WriteString(fmt.Sprintf("%d in breakdown\n\n", row.ItemCount))

	// Health
	b.WriteString(formatter.Dim("Health    "))
	b.WriteString(formatter.HealthIndicator(row.Health) + "\n")
	for _, sig := range row.Signals {
		b.WriteString(formatter.HealthColor(row.Health).Render("  "+sig) + "\n")
	}

	return b.String()
}

func padRight(s string, width int) string {
	if len(s) > width {
		return s[:width-1] + "…"
	}
	return s + strings.Repeat(" ", width-len(s))
}
