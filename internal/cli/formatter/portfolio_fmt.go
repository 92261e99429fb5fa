package formatter

import (
	"fmt"
	"strings"

	"github.com/mazen-hassani/masar2-sub000/internal/app"
)

const portfolioBarWidth = 10

// FormatPortfolio formats a PortfolioResponse into a styled CLI dashboard string.
func FormatPortfolio(resp *app.PortfolioResponse) string {
	var b strings.Builder

	headers := []string{"ID", "NAME", "STATUS", "PROGRESS", "SPENT", "PLANNED", "HEALTH"}
	rows := make([][]string, 0, len(resp.Projects))

	for _, p := range resp.Projects {
		id := p.ShortID
		if strings.TrimSpace(id) == "" {
			id = TruncID(p.ProjectID)
		}

		rows = append(rows, []string{
			id,
			Bold(p.Name),
			StatusPill(p.Status),
			RenderProgress(p.Progress/100, portfolioBarWidth),
			Money(p.ActualCost),
			Money(p.PlannedCost),
			HealthIndicator(p.Health),
		})
	}

	b.WriteString(RenderAlignedTable(headers, rows, 4, 5))

	// Summary line.
	summary := resp.Summary
	b.WriteString("\n")

	criticalPart := StyleRed.Render(fmt.Sprintf("%d Critical", summary.CountsCritical))
	warningPart := StyleYellow.Render(fmt.Sprintf("%d Warning", summary.CountsWarning))
	healthyPart := StyleGreen.Render(fmt.Sprintf("%d Healthy", summary.CountsHealthy))

	b.WriteString(fmt.Sprintf("%s, %s, %s\n", criticalPart, warningPart, healthyPart))

	totals := fmt.Sprintf("Spent %s of %s planned", Money(summary.ActualTotal), Money(summary.PlannedTotal))
	b.WriteString(Dim(totals) + "\n")

	// Per-project threshold signals.
	signalLines := 0
	for _, p := range resp.Projects {
		for _, s := range p.Signals {
			if signalLines == 0 {
				b.WriteString("\n")
			}
			b.WriteString(HealthColor(p.Health).Render(fmt.Sprintf("  %s: %s", p.ShortID, s)) + "\n")
			signalLines++
		}
	}

	// Warnings.
	if len(resp.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range resp.Warnings {
			b.WriteString(StyleYellow.Render(fmt.Sprintf("  WARNING: %s", w)) + "\n")
		}
	}

	return RenderBox("Portfolio", b.String())
}
