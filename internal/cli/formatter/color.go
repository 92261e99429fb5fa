package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
)

// HealthColor returns the lipgloss style corresponding to the given health level.
func HealthColor(level domain.HealthLevel) lipgloss.Style {
	switch level {
	case domain.HealthCritical:
		return StyleRed
	case domain.HealthWarning:
		return StyleYellow
	case domain.HealthHealthy:
		return StyleGreen
	default:
		return StyleDim
	}
}

// HealthIndicator returns a colored health indicator string such as "● CRITICAL".
func HealthIndicator(level domain.HealthLevel) string {
	switch level {
	case domain.HealthCritical:
		return StyleRed.Render("● CRITICAL")
	case domain.HealthWarning:
		return StyleYellow.Render("● WARNING")
	case domain.HealthHealthy:
		return StyleGreen.Render("● HEALTHY")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// TrendIndicator returns a colored direction indicator for a cost trend.
// The trend tracks overrun, so a falling slope is the good direction.
func TrendIndicator(direction domain.TrendDirection) string {
	switch direction {
	case domain.TrendDeteriorating:
		return StyleRed.Render("▲ DETERIORATING")
	case domain.TrendImproving:
		return StyleGreen.Render("▼ IMPROVING")
	case domain.TrendStable:
		return StyleDim.Render("● STABLE")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
