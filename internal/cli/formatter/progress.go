package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct, width = clampBar(pct, width)

	bar := buildBar(pct, width)
	pctStr := fmt.Sprintf("%3.0f%%", pct*100)
	return fmt.Sprintf("[%s] %s", barStyle(pct).Render(bar), pctStr)
}

// RenderCompactBar renders a bare block bar without brackets or a percentage
// label, for embedding in table cells. With dim set the bar renders muted
// regardless of percentage.
func RenderCompactBar(pct float64, width int, dim bool) string {
	pct, width = clampBar(pct, width)

	bar := buildBar(pct, width)
	if dim {
		return StyleDim.Render(bar)
	}
	return barStyle(pct).Render(bar)
}

func clampBar(pct float64, width int) (float64, int) {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}
	return pct, width
}

func buildBar(pct float64, width int) string {
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

func barStyle(pct float64) lipgloss.Style {
	if pct < 0.33 {
		return StyleRed
	}
	if pct < 0.66 {
		return StyleYellow
	}
	return StyleGreen
}
