package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gastoctl/gastoctl/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// the logged-in user on the right.
func RenderStatusBar(width int, left, user string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	right := ""
	if user != "" {
		right = user + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
