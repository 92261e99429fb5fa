package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// RelativeDate returns a human-friendly relative date string.
func RelativeDate(t time.Time) string {
	return RelativeDateFrom(t, time.Now())
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	diff := t.Sub(now)
	days := int(math.Round(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// RelativeDateStyled returns RelativeDate with urgency coloring applied.
func RelativeDateStyled(t time.Time) string {
	text := RelativeDate(t)
	days := int(math.Round(time.Until(t).Hours() / 24))

	if days >= 0 && days <= 2 {
		return StyleRed.Render(text)
	}
	if days > 2 && days <= 7 {
		return StyleYellow.Render(text)
	}
	if days < 0 {
		return StyleRed.Render(text)
	}
	return StyleFg.Render(text)
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t time.Time) string {
	now := time.Now()
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()

	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	yesterday := now.AddDate(0, 0, -1)
	y3, m3, d3 := yesterday.Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return HumanDate(t)
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return HumanDate(t)
	}
}

// StatusPill returns a colored status indicator for project status.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectOnHold:
		return StyleYellow.Render("○ On Hold")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.ProjectArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

// ItemStatusPill returns a colored status indicator for a WBS item status.
// It accepts the aggregated form so derived parent statuses render too.
func ItemStatusPill(status domain.AggregatedStatus) string {
	switch status {
	case domain.AggNotStarted:
		return StyleBlue.Render("○ Not Started")
	case domain.AggInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.AggDelayed:
		return StyleRed.Render("▲ Delayed")
	case domain.AggCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.AggCancelled:
		return StyleDim.Render("⊘ Cancelled")
	case domain.AggMixed:
		return StylePurple.Render("◆ Mixed")
	default:
		return StyleDim.Render(string(status))
	}
}

// ConfidencePill returns a colored confidence indicator for a forecast.
func ConfidencePill(c domain.ConfidenceLevel) string {
	switch c {
	case domain.ConfidenceHigh:
		return StyleGreen.Render("● High")
	case domain.ConfidenceMedium:
		return StyleYellow.Render("● Medium")
	case domain.ConfidenceLow:
		return StyleRed.Render("● Low")
	default:
		return StyleDim.Render(string(c))
	}
}

// DepartmentBadge returns a capitalized, purple-styled department label.
func DepartmentBadge(d string) string {
	if d == "" {
		return StyleDim.Render("--")
	}
	label := strings.ToUpper(d[:1]) + d[1:]
	return StylePurple.Render(label)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Money formats an amount rounded to whole units with thousands separators.
func Money(v float64) string {
	r := math.Round(v)
	if r == 0 {
		return "0"
	}
	return humanize.Commaf(r)
}

// SignedMoney formats an amount like Money with an explicit sign prefix.
func SignedMoney(v float64) string {
	r := math.Round(v)
	if r == 0 {
		return "0"
	}
	if r > 0 {
		return "+" + humanize.Commaf(r)
	}
	return "-" + humanize.Commaf(-r)
}

// VarianceBadge formats a money variance with favorable coloring: positive
// (under budget) renders green, negative renders red, zero renders dim.
func VarianceBadge(v float64) string {
	r := math.Round(v)
	switch {
	case r > 0:
		return StyleGreen.Render(SignedMoney(v))
	case r < 0:
		return StyleRed.Render(SignedMoney(v))
	default:
		return StyleDim.Render("0")
	}
}

// Percent formats a 0-100 percentage with one decimal place.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// Ratio formats an EVM performance index with two decimal places, colored by
// whether it meets the break-even value of 1.0.
func Ratio(v float64) string {
	text := fmt.Sprintf("%.2f", v)
	switch {
	case v >= 1:
		return StyleGreen.Render(text)
	case v >= 0.9:
		return StyleYellow.Render(text)
	default:
		return StyleRed.Render(text)
	}
}
