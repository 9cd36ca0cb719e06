package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/gastoctl/gastoctl/internal/tui/theme"
)

// DistributionBar renders the spent/remaining split of a budget as a
// two-segment horizontal bar with a legend, the terminal stand-in for the
// donut chart of the web client.
func DistributionBar(gastado, restante decimal.Decimal, width int) string {
	t := theme.Active

	total := gastado.Add(restante)
	if total.IsZero() || width < 10 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Render("Sin datos")
	}

	frac, _ := gastado.Div(total).Float64()
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	spentW := int(frac * float64(width))
	if spentW > width {
		spentW = width
	}

	spentStyle := lipgloss.NewStyle().Foreground(t.Orange)
	remainStyle := lipgloss.NewStyle().Foreground(t.Green)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(spentStyle.Render(strings.Repeat("█", spentW)))
	b.WriteString(remainStyle.Render(strings.Repeat("█", width-spentW)))
	b.WriteString("\n")
	b.WriteString(spentStyle.Render("■ "))
	b.WriteString(mutedStyle.Render("Gastado   "))
	b.WriteString(remainStyle.Render("■ "))
	b.WriteString(mutedStyle.Render("Disponible"))
	return b.String()
}

// DailyBarChart renders spend per day as vertical unicode bars with date
// labels. values and labels run in parallel; height is in text rows.
func DailyBarChart(values []float64, labels []string, width, height int) string {
	t := theme.Active

	if len(values) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Render("Sin gastos en el período")
	}
	if height < 2 {
		height = 2
	}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	// Bar sizing: fixed 2-wide bars with a 1-column gap, sampled down
	// when the series does not fit.
	const barW, gap = 2, 1
	maxBars := (width + gap) / (barW + gap)
	if maxBars < 1 {
		maxBars = 1
	}
	if len(values) > maxBars {
		if maxBars == 1 {
			// Too narrow to sample a range; show the latest bucket.
			values = values[len(values)-1:]
			labels = labels[len(labels)-1:]
		} else {
			sampled := make([]float64, maxBars)
			sampledLabels := make([]string, maxBars)
			for i := range sampled {
				srcIdx := i * (len(values) - 1) / (maxBars - 1)
				sampled[i] = values[srcIdx]
				sampledLabels[i] = labels[srcIdx]
			}
			values, labels = sampled, sampledLabels
		}
	}

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	barStyle := lipgloss.NewStyle().Foreground(t.Blue)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		rowTop := peak * float64(row) / float64(height)
		rowBottom := peak * float64(row-1) / float64(height)

		for i, v := range values {
			if i > 0 {
				b.WriteString(" ")
			}
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				frac := (v - rowBottom) / (rowTop - rowBottom)
				idx := int(frac * 8)
				if idx > 8 {
					idx = 8
				}
				if idx < 1 {
					idx = 1
				}
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(strings.Repeat(" ", barW))
			}
		}
		b.WriteString("\n")
	}

	// Axis: day-of-month of first and last bucket.
	axisLen := len(values)*barW + (len(values)-1)*gap
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))
	if len(labels) > 0 {
		first, last := dayOfMonth(labels[0]), dayOfMonth(labels[len(labels)-1])
		line := first
		if pad := axisLen - len(first) - len(last); pad > 0 && last != first {
			line += strings.Repeat(" ", pad) + last
		}
		b.WriteString("\n")
		b.WriteString(axisStyle.Render(line))
	}

	return b.String()
}

// dayOfMonth extracts "dd" from an ISO date, falling back to the raw label.
func dayOfMonth(iso string) string {
	if len(iso) == len("2006-01-02") {
		return fmt.Sprintf("%s/%s", iso[8:10], iso[5:7])
	}
	return iso
}
