package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// ProjectInspectData holds all data needed to render a project inspect view.
type ProjectInspectData struct {
	Project  *domain.Project
	Roots    []*domain.WBSItem
	ChildMap map[string][]*domain.WBSItem // parentID -> children
}

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "DEPARTMENT", "STATUS", "TARGET"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		targetStr := Dim("--")
		if p.TargetDate != nil {
			targetStr = RelativeDateStyled(*p.TargetDate)
		}

		rows = append(rows, []string{
			p.DisplayID(),
			Bold(p.Name),
			DepartmentBadge(p.Department),
			StatusPill(p.Status),
			targetStr,
		})
	}

	table := RenderTable(headers, rows)
	return RenderBox("Projects", table)
}

// FormatProjectInspect renders a styled project inspect card with side-by-side layout.
func FormatProjectInspect(data ProjectInspectData) string {
	leftPanel := buildMetadataPanel(data.Project)
	rightPanel := buildStructurePanel(data.Roots, data.ChildMap)

	spacing := "    "
	combined := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, spacing, rightPanel)

	return RenderBox("", combined)
}

// buildMetadataPanel creates the left panel with project metadata.
func buildMetadataPanel(p *domain.Project) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(p.Name) + "\n")
	b.WriteString(DepartmentBadge(p.Department) + "\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS"), StatusPill(p.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ID    "), Dim(p.ShortID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UUID  "), TruncID(p.ID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("START "), StyleFg.Render(HumanDate(p.StartDate))))

	if p.TargetDate != nil {
		targetRelative := RelativeDateStyled(*p.TargetDate)
		targetAbsolute := p.TargetDate.Format("Jan 2, 2006")
		b.WriteString(fmt.Sprintf("%s  %s %s\n", StyleDim.Render("TARGET"), targetRelative, Dim("("+targetAbsolute+")")))
	}

	if p.ArchivedAt != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ARCHVD"), HumanTimestamp(*p.ArchivedAt)))
	}

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UPDATED"), HumanTimestamp(p.UpdatedAt)))

	// Constrain to fixed width for consistent left panel
	return lipgloss.NewStyle().Width(45).Render(b.String())
}

// buildStructurePanel creates the right panel with the WBS tree and a
// completion bar derived from item statuses.
func buildStructurePanel(roots []*domain.WBSItem, childMap map[string][]*domain.WBSItem) string {
	if len(roots) == 0 {
		return StyleDim.Render("No WBS items")
	}

	var b strings.Builder

	total := 0
	completed := 0
	var count func(nodes []*domain.WBSItem)
	count = func(nodes []*domain.WBSItem) {
		for _, n := range nodes {
			total++
			if n.EffectiveStatus() == domain.AggCompleted {
				completed++
			}
			count(childMap[n.ID])
		}
	}
	count(roots)

	headerText := StyleHeader.Render("STRUCTURE")
	if total > 0 {
		pct := float64(completed) / float64(total)
		headerText += "  " + RenderProgress(pct, 12)
	}
	underline := StyleDim.Render(strings.Repeat("─", 9))
	b.WriteString(headerText + "\n" + underline + "\n")

	items := buildWBSTreeItems(roots, childMap, 0)
	if len(items) > 0 {
		b.WriteString(RenderTree(items))
	}

	return b.String()
}
