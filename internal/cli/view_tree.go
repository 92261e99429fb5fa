package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mazen-hassani/masar2-sub000/internal/cli/formatter"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
	"github.com/mazen-hassani/masar2-sub000/internal/service"
)

// wbsRow represents a flattened row in the WBS tree.
type wbsRow struct {
	item       *domain.WBSItem
	depth      int
	childCount int
	// Collapse state (set at render time).
	collapsed bool
}

// treeLoadedMsg signals that WBS tree data has been loaded.
type treeLoadedMsg struct {
	rows []wbsRow
	err  error
}

// jumpTimeoutMsg clears the digit-jump buffer after a pause.
type jumpTimeoutMsg struct{ seq int }

// treeView shows the active project's work breakdown with navigable rows.
// Trees taller than the terminal scroll inside a viewport that follows the
// cursor.
type treeView struct {
	state     *SharedState
	rows      []wbsRow
	cursor    int
	loading   bool
	err       error
	collapsed map[string]bool // item ID -> collapsed
	jumpBuf   string          // accumulated digit keys for jump-to-seq
	jumpSeq   int             // incremented per digit press; stale timeouts are ignored

	vp viewport.Model
}

func newTreeView(state *SharedState) *treeView {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &treeView{
		state:     state,
		loading:   true,
		collapsed: make(map[string]bool),
		vp:        vp,
	}
}

func (v *treeView) ID() ViewID { return ViewTree }
func (v *treeView) Title() string {
	if v.state.ActiveProjectName != "" {
		return v.state.ActiveProjectName
	}
	return "Breakdown"
}

func (v *treeView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "collapse")),
		key.NewBinding(key.WithKeys("1"), key.WithHelp("#", "jump to item")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *treeView) Init() tea.Cmd {
	return v.loadTree()
}

// ── data loading ─────────────────────────────────────────────────────────────

func (v *treeView) loadTree() tea.Cmd {
	wbs := v.state.App.WBS
	projectID := v.state.ActiveProjectID
	return func() tea.Msg {
		nodes, err := wbs.Tree(context.Background(), projectID)
		if err != nil {
			return treeLoadedMsg{err: err}
		}
		return treeLoadedMsg{rows: flattenTree(nodes, 0)}
	}
}

// flattenTree walks the nested tree depth-first into displayable rows.
func flattenTree(nodes []*service.TreeNode, depth int) []wbsRow {
	var rows []wbsRow
	for _, n := range nodes {
		rows = append(rows, wbsRow{
			item:       n.Item,
			depth:      depth,
			childCount: len(n.Children),
		})
		rows = append(rows, flattenTree(n.Children, depth+1)...)
	}
	return rows
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *treeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case treeLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.rows = msg.rows
		if visible := v.visibleRows(); v.cursor >= len(visible) {
			v.cursor = max(0, len(visible)-1)
		}
		v.sizeViewport()
		v.syncContent()
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadTree()

	case jumpTimeoutMsg:
		if msg.seq == v.jumpSeq {
			v.jumpBuf = ""
		}
		return v, nil

	case tea.WindowSizeMsg:
		v.sizeViewport()
		v.syncContent()
		return v, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		visible := v.visibleRows()

		// Digit keys: accumulate and jump to the matching seq number.
		if k := msg.String(); len(k) == 1 && k[0] >= '0' && k[0] <= '9' {
			v.jumpBuf += k
			v.jumpSeq++
			if target, err := strconv.Atoi(v.jumpBuf); err == nil {
				for i, row := range visible {
					if row.item.Seq == target {
						v.cursor = i
						break
					}
				}
			}
			v.syncContent()
			seq := v.jumpSeq
			return v, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return jumpTimeoutMsg{seq: seq}
			})
		}

		// Any non-digit key clears the jump buffer.
		v.jumpBuf = ""

		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
				v.syncContent()
			}
		case "down", "j":
			if v.cursor < len(visible)-1 {
				v.cursor++
				v.syncContent()
			}
		case "enter":
			if v.cursor < len(visible) {
				row := visible[v.cursor]
				v.state.SetActiveItem(row.item.ID, row.item.Title, row.item.Seq)
				return v, pushView(newItemDetailView(v.state))
			}
		case " ":
			if v.cursor < len(visible) {
				row := visible[v.cursor]
				if row.childCount > 0 {
					v.collapsed[row.item.ID] = !v.collapsed[row.item.ID]
					if vis := v.visibleRows(); v.cursor >= len(vis) {
						v.cursor = max(0, len(vis)-1)
					}
					v.syncContent()
				}
			}
		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var cmd tea.Cmd
			v.vp, cmd = v.vp.Update(msg)
			return v, cmd
		case "r":
			v.loading = true
			return v, v.loadTree()
		}
	}
	return v, nil
}

// visibleRows filters out rows hidden inside collapsed subtrees.
func (v *treeView) visibleRows() []wbsRow {
	var visible []wbsRow
	// Track collapsed ancestor depth for recursive hiding.
	collapsedDepth := -1
	for _, r := range v.rows {
		if collapsedDepth >= 0 {
			if r.depth > collapsedDepth {
				continue
			}
			collapsedDepth = -1
		}
		r.collapsed = v.collapsed[r.item.ID]
		if r.collapsed && r.childCount > 0 {
			collapsedDepth = r.depth
		}
		visible = append(visible, r)
	}
	return visible
}

// ── viewport plumbing ────────────────────────────────────────────────────────

func (v *treeView) sizeViewport() {
	// One line above the viewport and the scroll indicator below it.
	v.vp.Width = max(v.state.Width, 20)
	v.vp.Height = max(v.state.ContentHeight()-2, 1)
}

// syncContent re-renders the visible rows into the viewport and keeps the
// cursor inside the scrolled window.
func (v *treeView) syncContent() {
	visible := v.visibleRows()
	lines := make([]string, 0, len(visible))
	for i, row := range visible {
		lines = append(lines, v.renderRow(row, i == v.cursor))
	}
	v.vp.SetContent(strings.Join(lines, "\n"))

	if v.cursor < v.vp.YOffset {
		v.vp.SetYOffset(v.cursor)
	} else if v.cursor >= v.vp.YOffset+v.vp.Height {
		v.vp.SetYOffset(v.cursor - v.vp.Height + 1)
	}
}

// scrollIndicator returns a dim scroll position string, or "" when the whole
// tree fits on screen.
func scrollIndicator(vp viewport.Model) string {
	if vp.TotalLineCount() <= vp.Height {
		return ""
	}
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	pct := int(vp.ScrollPercent() * 100)
	return formatter.Dim(fmt.Sprintf("[%d%%]", pct))
}

// ── view rendering ───────────────────────────────────────────────────────────

func (v *treeView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading tree...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if len(v.rows) == 0 {
		return "\n  " + formatter.Dim("No WBS items yet. Add one with: masar wbs add -i")
	}

	top := ""
	if v.jumpBuf != "" {
		top = "  " + formatter.Dim("jump: #"+v.jumpBuf)
	}

	var b strings.Builder
	b.WriteString(top + "\n")
	b.WriteString(v.vp.View())
	if sc := scrollIndicator(v.vp); sc != "" {
		b.WriteString("\n  " + sc)
	}
	return b.String()
}

// renderRow renders a single tree row.
func (v *treeView) renderRow(row wbsRow, isCursor bool) string {
	cursor := "  "
	if isCursor {
		cursor = formatter.StyleGreen.Render("▸ ")
	}

	indent := strings.Repeat("  ", row.depth)

	collapse := ""
	if row.childCount > 0 {
		if row.collapsed {
			collapse = formatter.Dim(fmt.Sprintf("▸ (%d) ", row.childCount))
		} else {
			collapse = formatter.Dim("▾ ")
		}
	}

	status := row.item.EffectiveStatus()
	title := row.item.Title
	switch status {
	case domain.AggCompleted, domain.AggCancelled:
		title = formatter.Dim(title)
	case domain.AggInProgress:
		title = formatter.StyleYellowBold.Render(title)
	case domain.AggDelayed:
		title = formatter.StyleRed.Render(title)
	}

	progress := ""
	if row.childCount == 0 && row.item.PercentComplete > 0 {
		progress = " " + formatter.RenderProgress(float64(row.item.PercentComplete)/100, 6)
	}

	badge := ""
	if cost := rowCostBadge(row.item); cost != "" {
		badge = "  " + formatter.StyleBlue.Render("[ "+cost+" ]")
	}

	return fmt.Sprintf("%s%s%s %s%s%s%s%s",
		cursor, indent,
		itemStatusIcon(status),
		collapse,
		formatter.Dim(fmt.Sprintf("#%d ", row.item.Seq)),
		title, progress, badge,
	)
}

// itemStatusIcon returns the one-cell status glyph used on tree rows.
func itemStatusIcon(status domain.AggregatedStatus) string {
	switch status {
	case domain.AggCompleted:
		return formatter.StyleGreen.Render("✔")
	case domain.AggInProgress:
		return formatter.StyleYellowBold.Render("▶")
	case domain.AggDelayed:
		return formatter.StyleRed.Render("▲")
	case domain.AggCancelled:
		return formatter.Dim("⊘")
	case domain.AggMixed:
		return formatter.StylePurple.Render("◆")
	default:
		return " "
	}
}

// rowCostBadge picks the cost shown on a row: the rolled-up total for
// parents, else the authored planned cost.
func rowCostBadge(item *domain.WBSItem) string {
	if item.AggregatedCost > 0 {
		return formatter.Money(item.AggregatedCost)
	}
	if item.PlannedCost != nil && *item.PlannedCost > 0 {
		return formatter.Money(*item.PlannedCost)
	}
	return ""
}
