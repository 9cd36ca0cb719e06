package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gastoctl/gastoctl/internal/tui/theme"
)

// SpendBar renders a budget progress bar. The bar itself is clamped to
// [0, 100] but the numeric label shows the unclamped percentage, so an
// overspent budget reads e.g. "112.4%" with a full red bar.
func SpendBar(pct float64, severity string, width int) string {
	t := theme.Active

	clamped := pct
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 100 {
		clamped = 100
	}

	filled := int(clamped / 100 * float64(width))
	if filled > width {
		filled = width
	}

	barColor := theme.ColorForSeverity(severity)
	filledStyle := lipgloss.NewStyle().Foreground(barColor)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Bold(true)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))
	b.WriteString(" ")
	b.WriteString(pctStyle.Render(fmt.Sprintf("%.1f%%", pct)))
	return b.String()
}
