package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mazen-hassani/masar2-sub000/internal/cli/formatter"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
	"github.com/mazen-hassani/masar2-sub000/internal/finance"
)

// itemDetailData holds the loaded detail for one WBS item.
type itemDetailData struct {
	item   *domain.WBSItem
	rollup *finance.Rollup
	costs  []*domain.CostItem
}

// itemDetailLoadedMsg signals that item detail data has been loaded.
type itemDetailLoadedMsg struct {
	data *itemDetailData
	err  error
}

// snapshotRecordedMsg reports the outcome of recording a budget snapshot.
type snapshotRecordedMsg struct {
	snap *domain.CostSnapshot
	err  error
}

// itemDetailView shows one WBS item's schedule, progress and budget figures
// together with its direct cost lines and the subtree rollup.
type itemDetailView struct {
	state   *SharedState
	data    *itemDetailData
	loading bool
	err     error
	note    string // transient feedback line, cleared on reload
	noteErr bool
}

func newItemDetailView(state *SharedState) *itemDetailView {
	return &itemDetailView{
		state:   state,
		loading: true,
	}
}

func (v *itemDetailView) ID() ViewID { return ViewItemDetail }
func (v *itemDetailView) Title() string {
	if v.state.ActiveItemSeq > 0 {
		return fmt.Sprintf("#%d", v.state.ActiveItemSeq)
	}
	return "Item"
}

func (v *itemDetailView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "snapshot")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *itemDetailView) Init() tea.Cmd {
	return v.loadDetail()
}

// ── data loading ─────────────────────────────────────────────────────────────

func (v *itemDetailView) loadDetail() tea.Cmd {
	cliApp := v.state.App
	itemID := v.state.ActiveItemID
	return func() tea.Msg {
		ctx := context.Background()

		item, err := cliApp.WBS.GetByID(ctx, itemID)
		if err != nil {
			return itemDetailLoadedMsg{err: err}
		}

		rollup, err := cliApp.Finance.CalculateItemCostRollup(ctx, itemID)
		if err != nil {
			return itemDetailLoadedMsg{err: err}
		}

		costs, err := cliApp.Costs.ListCostItems(ctx, itemID)
		if err != nil {
			return itemDetailLoadedMsg{err: err}
		}

		return itemDetailLoadedMsg{data: &itemDetailData{
			item:   item,
			rollup: rollup,
			costs:  costs,
		}}
	}
}

func (v *itemDetailView) recordSnapshot() tea.Cmd {
	financeSvc := v.state.App.Finance
	itemID := v.state.ActiveItemID
	return func() tea.Msg {
		snap, err := financeSvc.RecordSnapshot(context.Background(), string(domain.EntityWBSItem), itemID)
		return snapshotRecordedMsg{snap: snap, err: err}
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *itemDetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case itemDetailLoadedMsg:
		v.loading = false
		v.note = ""
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.data = msg.data
		return v, nil

	case snapshotRecordedMsg:
		if msg.err != nil {
			v.note = "Snapshot failed: " + msg.err.Error()
			v.noteErr = true
			return v, nil
		}
		v.note = fmt.Sprintf("Snapshot recorded: planned %s, actual %s",
			formatter.Money(msg.snap.PlannedCost), formatter.Money(msg.snap.ActualCost))
		v.noteErr = false
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadDetail()

	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			return v, v.recordSnapshot()
		case "r":
			v.loading = true
			v.err = nil
			return v, v.loadDetail()
		}
	}
	return v, nil
}

// ── view rendering ───────────────────────────────────────────────────────────

func (v *itemDetailView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if v.data == nil {
		return ""
	}

	item := v.data.item
	var b strings.Builder

	b.WriteString("\n  " + formatter.StyleBold.Render(item.Title) + "  " + formatter.Dim(item.DisplayRef()) + "\n")
	b.WriteString("  " + formatter.ItemStatusPill(item.EffectiveStatus()) + "\n\n")

	b.WriteString("  " + formatter.Dim("Progress  "))
	b.WriteString(formatter.RenderProgress(float64(item.PercentComplete)/100, 16) + "\n")

	b.WriteString("  " + formatter.Dim("Start     ") + detailDate(item.ActualStart, item.PlannedStart) + "\n")
	b.WriteString("  " + formatter.Dim("End       ") + detailDate(item.ActualEnd, item.PlannedEnd) + "\n")
	if item.AggregatedStart != nil || item.AggregatedEnd != nil {
		b.WriteString("  " + formatter.Dim("Rolled    "))
		b.WriteString(detailDate(nil, item.AggregatedStart) + " to " + detailDate(nil, item.AggregatedEnd) + "\n")
	}
	b.WriteString("\n")

	v.renderBudget(&b)

	if v.note != "" {
		style := formatter.StyleGreen
		if v.noteErr {
			style = formatter.StyleRed
		}
		b.WriteString("\n  " + style.Render(v.note) + "\n")
	}

	return b.String()
}

func (v *itemDetailView) renderBudget(b *strings.Builder) {
	r := v.data.rollup
	if r == nil {
		b.WriteString("  " + formatter.Dim("No cost data recorded. Add a line with: masar cost add") + "\n")
		return
	}

	b.WriteString("  " + formatter.Dim("Planned   "))
	b.WriteString(fmt.Sprintf("%s direct / %s total\n",
		formatter.Money(r.DirectPlanned), formatter.Bold(formatter.Money(r.TotalPlanned))))

	b.WriteString("  " + formatter.Dim("Actual    "))
	b.WriteString(fmt.Sprintf("%s direct / %s total\n",
		formatter.Money(r.DirectActual), formatter.Bold(formatter.Money(r.TotalActual))))

	b.WriteString("  " + formatter.Dim("Variance  "))
	b.WriteString(fmt.Sprintf("%s (%s)\n",
		formatter.VarianceBadge(r.TotalVariance), formatter.Percent(r.TotalVariancePct)))

	if r.HasChildren {
		b.WriteString("  " + formatter.Dim("Children  "))
		b.WriteString(fmt.Sprintf("%d, %d carrying costs\n", r.ChildCount, r.ChildrenWithCosts))
	}

	if len(v.data.costs) > 0 {
		b.WriteString("\n  " + formatter.StyleHeader.Render("COST ITEMS") + "\n")
		for _, c := range v.data.costs {
			category := ""
			if c.Category != "" {
				category = "  " + formatter.Dim(c.Category)
			}
			b.WriteString(fmt.Sprintf("  %s %s / %s planned%s\n",
				padRight(c.Description, 24),
				formatter.Bold(formatter.Money(c.ActualAmount)),
				formatter.Dim(formatter.Money(c.PlannedAmount)),
				category,
			))
		}
	}
	if r.AllocationCount > 0 {
		b.WriteString("\n  " + formatter.Dim(fmt.Sprintf("%s allocated across %d invoices",
			formatter.Money(r.AllocationAmount), r.AllocationCount)) + "\n")
	}
}

// detailDate shows the actual date when recorded, else the planned one dimmed.
func detailDate(actual, planned *time.Time) string {
	if actual != nil {
		return formatter.HumanDate(*actual)
	}
	if planned != nil {
		return formatter.Dim(formatter.HumanDate(*planned))
	}
	return formatter.Dim("--")
}
