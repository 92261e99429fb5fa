package formatter

import (
	"fmt"
	"strings"

	"github.com/mazen-hassani/masar2-sub000/internal/app"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
	"github.com/mazen-hassani/masar2-sub000/internal/finance"
)

const healthBarWidth = 14

// FormatRollup renders a cost rollup card for one WBS item: direct figures,
// the rolled-up children figure and the combined totals.
func FormatRollup(item *domain.WBSItem, r *finance.Rollup) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(item.Title) + "  " + Dim(item.DisplayRef()) + "\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("DIRECT PLANNED"), StyleFg.Render(Money(r.DirectPlanned))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("DIRECT ACTUAL "), StyleFg.Render(Money(r.DirectActual))))
	b.WriteString(fmt.Sprintf("%s  %s %s\n", StyleDim.Render("DIRECT VAR    "), VarianceBadge(r.DirectVariance), Dim("("+Percent(r.DirectVariancePct)+")")))

	if r.HasChildren {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CHILDREN      "), StyleFg.Render(Money(r.ChildrenAggregated))))
		counts := fmt.Sprintf("%d total, %d with costs", r.ChildCount, r.ChildrenWithCosts)
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("              "), Dim(counts)))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("TOTAL PLANNED "), Bold(Money(r.TotalPlanned))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("TOTAL ACTUAL  "), Bold(Money(r.TotalActual))))
	b.WriteString(fmt.Sprintf("%s  %s %s\n", StyleDim.Render("TOTAL VAR     "), VarianceBadge(r.TotalVariance), Dim("("+Percent(r.TotalVariancePct)+")")))

	b.WriteString("\n")
	sources := fmt.Sprintf("%d cost items", r.CostItemCount)
	if r.AllocationCount > 0 {
		sources += fmt.Sprintf(", %d invoice allocations (%s)", r.AllocationCount, Money(r.AllocationAmount))
	}
	b.WriteString(Dim(sources) + "\n")

	return RenderBox("Cost Rollup", b.String())
}

// FormatForecast renders the earned-value forecast card for a project or item.
func FormatForecast(name string, f *finance.Forecast) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(name) + "  " + entityBadge(f.EntityType) + "\n")
	b.WriteString(RenderProgress(f.Progress/100, 16) + "\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("BUDGET (BAC)  "), StyleFg.Render(Money(f.BudgetAtCompletion))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PLANNED VALUE "), StyleFg.Render(Money(f.PlannedValue))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("EARNED VALUE  "), StyleFg.Render(Money(f.EarnedValue))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ACTUAL COST   "), StyleFg.Render(Money(f.ActualCost))))

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s   %s  %s\n",
		StyleDim.Render("CPI"), Ratio(f.CPI),
		StyleDim.Render("SPI"), Ratio(f.SPI)))
	b.WriteString(fmt.Sprintf("%s  %s   %s  %s\n",
		StyleDim.Render("CV "), VarianceBadge(f.CostVariance),
		StyleDim.Render("SV "), VarianceBadge(f.ScheduleVariance)))

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("EST TO COMPLETE"), StyleFg.Render(Money(f.EstimateToCompletion))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("FORECAST (EAC) "), Bold(Money(f.ForecastAtCompletion))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("VAR AT COMPL   "), VarianceBadge(f.VarianceAtCompletion)))

	b.WriteString("\n")
	if f.ProjectedCompletion != nil {
		completion := fmt.Sprintf("%s %s", HumanDate(*f.ProjectedCompletion), Dim("("+RelativeDate(*f.ProjectedCompletion)+")"))
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PROJECTED END  "), completion))
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CONFIDENCE     "), ConfidencePill(f.Confidence)))

	return RenderBox("Budget Forecast", b.String())
}

// FormatHealth renders the budget health card with the utilization bar and
// any tripped threshold signals.
func FormatHealth(name string, h *finance.Health) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(name) + "  " + entityBadge(h.EntityType) + "\n")
	b.WriteString(HealthIndicator(h.Level) + "\n\n")

	bar := RenderCompactBar(h.UtilizationPct/100, healthBarWidth, h.Level == domain.HealthHealthy)
	b.WriteString(fmt.Sprintf("%s  %s %s\n", StyleDim.Render("UTILIZATION"), bar, HealthColor(h.Level).Render(Percent(h.UtilizationPct))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PROJ VAR   "), signedPercent(h.ProjectedVariancePct)))

	if len(h.Signals) > 0 {
		b.WriteString("\n")
		for _, s := range h.Signals {
			b.WriteString(HealthColor(h.Level).Render("  SIGNAL: "+s) + "\n")
		}
	}

	return RenderBox("Budget Health", b.String())
}

// FormatTrend renders the snapshot regression card for an entity's window.
func FormatTrend(name string, tr *app.CostTrend) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(name) + "  " + entityBadge(tr.EntityType) + "\n")
	b.WriteString(TrendIndicator(tr.Direction) + "\n\n")

	window := fmt.Sprintf("%s → %s", HumanDate(tr.From), HumanDate(tr.To))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("WINDOW "), StyleFg.Render(window)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("SAMPLES"), fmt.Sprintf("%d", tr.Samples)))

	if tr.Samples >= 2 {
		b.WriteString(fmt.Sprintf("%s  %s %s\n", StyleDim.Render("SLOPE  "), slopeBadge(tr.Slope), Dim("overrun per snapshot")))
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("FIT    "), Dim(fmt.Sprintf("R² %.2f", tr.RSquared))))
	} else {
		b.WriteString("\n" + Dim("Not enough snapshots in the window to fit a trend.") + "\n")
	}

	return RenderBox("Cost Trend", b.String())
}

// FormatSnapshotList renders recorded cost snapshots, newest last.
func FormatSnapshotList(name string, snaps []*domain.CostSnapshot) string {
	if len(snaps) == 0 {
		return RenderBox("Snapshots", Dim("No snapshots recorded for "+name+"."))
	}

	headers := []string{"RECORDED", "PLANNED", "ACTUAL", "VARIANCE"}
	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, []string{
			StyleFg.Render(HumanDate(s.RecordedAt)),
			Money(s.PlannedCost),
			Money(s.ActualCost),
			VarianceBadge(s.Variance),
		})
	}

	table := RenderAlignedTable(headers, rows, 1, 2, 3)
	content := StyleBold.Render(name) + "\n\n" + table
	return RenderBox("Snapshots", content)
}

// entityBadge renders the entity type the way department badges render.
func entityBadge(entityType domain.EntityType) string {
	switch entityType {
	case domain.EntityProject:
		return StylePurple.Render("Project")
	case domain.EntityWBSItem:
		return StylePurple.Render("WBS Item")
	default:
		return StyleDim.Render(string(entityType))
	}
}

// slopeBadge colors the regression slope: rising overrun is the bad direction.
func slopeBadge(slope float64) string {
	text := fmt.Sprintf("%+.2f", slope)
	switch {
	case slope > 0:
		return StyleRed.Render(text)
	case slope < 0:
		return StyleGreen.Render(text)
	default:
		return StyleDim.Render(text)
	}
}

// signedPercent formats a signed percentage, red when negative.
func signedPercent(v float64) string {
	text := fmt.Sprintf("%+.1f%%", v)
	switch {
	case v < 0:
		return StyleRed.Render(text)
	case v > 0:
		return StyleGreen.Render(text)
	default:
		return StyleDim.Render(text)
	}
}
