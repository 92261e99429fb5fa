package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mazen-hassani/masar2-sub000/internal/aggregation"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// WBSTreeData holds all data needed to render a project's WBS tree.
type WBSTreeData struct {
	Project  *domain.Project
	Roots    []*domain.WBSItem
	ChildMap map[string][]*domain.WBSItem // parentID -> children
}

// FormatWBSTree renders the full work breakdown structure of a project as a
// connector tree with status glyphs and right-aligned cost badges.
func FormatWBSTree(data WBSTreeData) string {
	var b strings.Builder

	b.WriteString(Bold(data.Project.Name) + "  " + StatusPill(data.Project.Status) + "\n\n")

	if len(data.Roots) == 0 {
		b.WriteString(Dim("No WBS items yet. Add one with: masar wbs add --project " + data.Project.DisplayID() + " \"Title\""))
		b.WriteString("\n")
	} else {
		items := buildWBSTreeItems(data.Roots, data.ChildMap, 0)
		b.WriteString(RenderTree(items))
	}

	return RenderBox("Work Breakdown", b.String())
}

// buildWBSTreeItems recursively converts WBS items into TreeItems.
func buildWBSTreeItems(nodes []*domain.WBSItem, childMap map[string][]*domain.WBSItem, level int) []TreeItem {
	var items []TreeItem

	// Sort nodes by OrderIndex for deterministic output.
	sorted := make([]*domain.WBSItem, len(nodes))
	copy(sorted, nodes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].OrderIndex < sorted[j].OrderIndex
	})

	for i, node := range sorted {
		children := childMap[node.ID]
		isLastNode := i == len(sorted)-1

		items = append(items, TreeItem{
			Title:  node.Title,
			Seq:    node.Seq,
			Level:  level + 1,
			IsLast: isLastNode && len(children) == 0,
			Status: string(node.EffectiveStatus()),
			Detail: wbsItemBadge(node),
		})

		if len(children) > 0 {
			items = append(items, buildWBSTreeItems(children, childMap, level+1)...)
		}
	}

	return items
}

// wbsItemBadge picks the detail badge for a tree line: the rolled-up cost for
// parents, the authored planned cost for leaves, else the planned end date.
func wbsItemBadge(node *domain.WBSItem) string {
	if node.AggregatedCost > 0 {
		return Money(node.AggregatedCost)
	}
	if node.PlannedCost != nil && *node.PlannedCost > 0 {
		return Money(*node.PlannedCost)
	}
	if node.PlannedEnd != nil {
		return "DUE " + RelativeDate(*node.PlannedEnd)
	}
	return ""
}

// FormatWBSInspect renders a one-item detail card with schedule, progress and
// budget figures side by side with the derived aggregation values.
func FormatWBSInspect(item *domain.WBSItem, childCount int) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(item.Title) + "  " + Dim(item.DisplayRef()) + "\n")
	b.WriteString(ItemStatusPill(item.EffectiveStatus()) + "\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UUID    "), TruncID(item.ID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("LEVEL   "), fmt.Sprintf("%d", item.Level)))
	if childCount > 0 {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CHILDREN"), fmt.Sprintf("%d", childCount)))
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PROGRESS"), RenderProgress(float64(item.PercentComplete)/100, 12)))

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("START   "), scheduleDate(item.ActualStart, item.PlannedStart)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("END     "), scheduleDate(item.ActualEnd, item.PlannedEnd)))
	if item.AggregatedStart != nil || item.AggregatedEnd != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ROLLED  "), dateRange(item.AggregatedStart, item.AggregatedEnd)))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PLANNED "), moneyOrDash(item.PlannedCost)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ACTUAL  "), moneyOrDash(item.ActualCost)))
	if item.AggregatedCost > 0 {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ROLLUP  "), StyleFg.Render(Money(item.AggregatedCost))))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UPDATED "), HumanTimestamp(item.UpdatedAt)))

	return RenderBox("WBS Item", b.String())
}

// FormatAggregationSummary renders the child-set diagnostics shown under an
// inspect card when the item has children.
func FormatAggregationSummary(sum *aggregation.Summary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %d", StyleDim.Render("CHILDREN"), sum.ChildCount))
	b.WriteString(Dim(fmt.Sprintf("  (%d with dates, %d with costs)\n", sum.ChildrenWithDates, sum.ChildrenWithCosts)))

	if len(sum.StatusDistribution) > 0 {
		statuses := make([]string, 0, len(sum.StatusDistribution))
		for s := range sum.StatusDistribution {
			statuses = append(statuses, string(s))
		}
		sort.Strings(statuses)
		parts := make([]string, 0, len(statuses))
		for _, s := range statuses {
			parts = append(parts, fmt.Sprintf("%s %d", s, sum.StatusDistribution[domain.AggregatedStatus(s)]))
		}
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUSES"), strings.Join(parts, ", ")))
	}

	if sum.DateRangeDays != nil {
		b.WriteString(fmt.Sprintf("%s  %d days\n", StyleDim.Render("SPAN    "), *sum.DateRangeDays))
	}
	b.WriteString(fmt.Sprintf("%s  %s planned / %s actual\n",
		StyleDim.Render("TOTALS  "), Money(sum.PlannedTotal), Money(sum.ActualTotal)))

	return RenderBox("Rollup Inputs", b.String())
}

// scheduleDate shows the actual date when recorded, else the planned one dimmed.
func scheduleDate(actual, planned *time.Time) string {
	if actual != nil {
		return StyleFg.Render(HumanDate(*actual))
	}
	if planned != nil {
		return Dim(HumanDate(*planned) + " (planned)")
	}
	return Dim("--")
}

func dateRange(start, end *time.Time) string {
	from := "--"
	if start != nil {
		from = HumanDate(*start)
	}
	to := "--"
	if end != nil {
		to = HumanDate(*end)
	}
	return Dim(from + " → " + to)
}

func moneyOrDash(v *float64) string {
	if v == nil {
		return Dim("--")
	}
	return StyleFg.Render(Money(*v))
}
