package formatter

import (
	"fmt"
	"strings"

	"github.com/mazen-hassani/masar2-sub000/internal/app"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// FormatRebuildReport renders the outcome of a full hierarchy rebuild.
func FormatRebuildReport(p *domain.Project, report *app.RebuildReport) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(p.Name) + "  " + Dim("["+p.DisplayID()+"]") + "\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("NODES UPDATED"), StyleFg.Render(fmt.Sprintf("%d", report.NodesUpdated))))
	if report.Partial() {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("RESULT       "), StyleYellowBold.Render("▲ partial")))
		b.WriteString("\n")
		for _, e := range report.Errors {
			b.WriteString(StyleRed.Render("  ERROR: "+e) + "\n")
		}
	} else {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("RESULT       "), StyleGreen.Render("✔ complete")))
	}

	return RenderBox("Rebuild", b.String())
}

// FormatImportResult renders what an import created and how the follow-up
// rebuild went.
func FormatImportResult(res *app.ImportResult) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(res.Project.Name) + "  " + Dim("["+res.Project.DisplayID()+"]") + "\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("WBS ITEMS  "), StyleFg.Render(fmt.Sprintf("%d", res.ItemCount))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("COST ITEMS "), StyleFg.Render(fmt.Sprintf("%d", res.CostItemCount))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ALLOCATIONS"), StyleFg.Render(fmt.Sprintf("%d", res.AllocationCount))))
	if res.Rebuild != nil {
		status := StyleGreen.Render(fmt.Sprintf("✔ %d nodes updated", res.Rebuild.NodesUpdated))
		if res.Rebuild.Partial() {
			status = StyleYellowBold.Render(fmt.Sprintf("▲ %d nodes updated, %d errors", res.Rebuild.NodesUpdated, len(res.Rebuild.Errors)))
		}
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("REBUILD    "), status))
	}

	return RenderBox("Import", b.String())
}
