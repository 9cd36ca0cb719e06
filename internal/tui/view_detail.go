package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gastoctl/gastoctl/internal/cli"
	"github.com/gastoctl/gastoctl/internal/model"
	"github.com/gastoctl/gastoctl/internal/tui/components"
	"github.com/gastoctl/gastoctl/internal/tui/theme"
)

func (a App) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	if a.confirmExp {
		switch key.String() {
		case "y", "Y":
			a.confirmExp = false
			if a.gastosState == stateLoaded && a.expCursor < len(a.gastos) {
				return a, a.deleteExpenseCmd(a.gen, a.detailID, a.gastos[a.expCursor].ID)
			}
			return a, nil
		default:
			a.confirmExp = false
			return a, nil
		}
	}

	switch key.String() {
	case "esc", "q":
		cmd := a.openDashboard()
		return a, cmd
	case "j", "down":
		if a.expCursor < len(a.gastos)-1 {
			a.expCursor++
		}
	case "k", "up":
		if a.expCursor > 0 {
			a.expCursor--
		}
	case "a":
		return a.openExpenseForm(0)
	case "e":
		if a.gastosState == stateLoaded && a.expCursor < len(a.gastos) {
			return a.openExpenseForm(a.gastos[a.expCursor].ID)
		}
	case "d":
		if a.gastosState == stateLoaded && a.expCursor < len(a.gastos) {
			a.confirmExp = true
		}
	case "r":
		// Retry whichever sections failed.
		var cmds []tea.Cmd
		if a.budgetState == stateFailed {
			a.budgetState = stateLoading
			a.budgetErr = ""
			cmds = append(cmds, a.loadBudgetCmd(a.gen, a.detailID))
		}
		if a.summaryState == stateFailed {
			a.summaryState = stateLoading
			a.summaryErr = ""
			cmds = append(cmds, a.loadSummaryCmd(a.gen, a.detailID))
		}
		if a.gastosState == stateFailed {
			a.gastosState = stateLoading
			a.gastosErr = ""
			cmds = append(cmds, a.loadExpensesCmd(a.gen, a.detailID))
		}
		if len(cmds) > 0 {
			return a, tea.Batch(cmds...)
		}
	}
	return a, nil
}

func (a App) renderDetail() string {
	t := theme.Active
	cw := a.contentWidth()
	currency := a.cfg.General.Currency

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)

	var b strings.Builder
	b.WriteString("\n ")

	switch a.budgetState {
	case stateLoading:
		b.WriteString(a.spinner.View())
		b.WriteString(mutedStyle.Render(" Cargando presupuesto..."))
	case stateFailed:
		b.WriteString(errStyle.Render(a.budgetErr))
		b.WriteString(mutedStyle.Render("  [r] reintentar"))
	case stateLoaded:
		b.WriteString(titleStyle.Render(a.budget.Nombre))
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(cli.FormatDateRange(a.budget.FechaInicio, a.budget.FechaFin)))
	}
	b.WriteString("\n\n")

	b.WriteString(a.renderSummarySection(cw, currency))
	b.WriteString("\n")
	b.WriteString(a.renderExpenseSection(cw, currency))

	hints := "[a]gregar gasto [e]ditar [d]eliminar [j/k]mover [esc]volver"
	if a.confirmExp && a.expCursor < len(a.gastos) {
		hints = fmt.Sprintf("¿Eliminar %q? [y] sí / cualquier otra tecla cancela", a.gastos[a.expCursor].Descripcion)
	}

	user := ""
	if u := a.sess.User(); u != nil {
		user = u.Username
	}

	content := lipgloss.NewStyle().Width(cw).Render(b.String())
	status := components.RenderStatusBar(a.width, " "+hints, user)

	gap := a.height - lipgloss.Height(content) - 1
	if gap < 0 {
		gap = 0
	}
	return content + strings.Repeat("\n", gap) + status
}

// renderSummarySection draws the metric cards, the spent/available split,
// and the spend-by-day chart from the resumen payload.
func (a App) renderSummarySection(cw int, currency string) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)

	switch a.summaryState {
	case stateLoading:
		return " " + a.spinner.View() + mutedStyle.Render(" Cargando resumen...") + "\n"
	case stateFailed:
		return " " + errStyle.Render(a.summaryErr) + mutedStyle.Render("  [r] reintentar") + "\n"
	}

	s := a.summary
	pct := s.SpentPercent()
	severity := model.SeverityFor(pct)

	widths := components.LayoutRow(cw-2, 3)
	cards := components.CardRow([]string{
		components.MetricCard("Presupuesto", cli.FormatMoney(currency, s.Total), s.RangoFechas, widths[0]),
		components.MetricCard("Gastado", cli.FormatMoney(currency, s.Gastado), cli.FormatPercent(pct), widths[1]),
		components.MetricCard("Disponible", cli.FormatMoney(currency, s.Restante), "", widths[2]),
	})

	var b strings.Builder
	b.WriteString(cards)
	b.WriteString("\n\n ")
	b.WriteString(components.SpendBar(pct, severity, cw-12))
	b.WriteString("\n\n")
	b.WriteString(components.DistributionBar(s.Gastado, s.Restante, cw-4))
	b.WriteString("\n")

	if series := s.DailySeries(); len(series) > 0 {
		values := make([]float64, len(series))
		labels := make([]string, len(series))
		for i, d := range series {
			values[i], _ = d.Monto.Float64()
			labels[i] = d.Fecha
		}
		b.WriteString("\n ")
		b.WriteString(mutedStyle.Render("Gastos por día"))
		b.WriteString("\n")
		b.WriteString(components.DailyBarChart(values, labels, cw-4, 6))
		b.WriteString("\n")
	}
	return b.String()
}

// truncateCell fits s into width display cells, cutting on rune boundaries
// and ending with an ellipsis when anything was dropped.
func truncateCell(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func (a App) renderExpenseSection(cw int, currency string) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)
	headStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)

	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(headStyle.Render("Gastos"))
	if a.gastosState == stateLoaded {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  (%d)", len(a.gastos))))
	}
	b.WriteString("\n")

	switch a.gastosState {
	case stateLoading:
		b.WriteString(" ")
		b.WriteString(a.spinner.View())
		b.WriteString(mutedStyle.Render(" Cargando gastos..."))
		b.WriteString("\n")
		return b.String()
	case stateFailed:
		b.WriteString(" ")
		b.WriteString(errStyle.Render(a.gastosErr))
		b.WriteString(mutedStyle.Render("  [r] reintentar"))
		b.WriteString("\n")
		return b.String()
	}

	if len(a.gastos) == 0 {
		b.WriteString(mutedStyle.Render(" Sin gastos registrados. Agrega uno con [a]."))
		b.WriteString("\n")
		return b.String()
	}

	selStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	descW := cw - 36
	if descW < 12 {
		descW = 12
	}
	for i, g := range a.gastos {
		marker := "  "
		style := rowStyle
		if i == a.expCursor {
			marker = "> "
			style = selStyle
		}
		desc := truncateCell(g.Descripcion, descW)
		if pad := descW - lipgloss.Width(desc); pad > 0 {
			desc += strings.Repeat(" ", pad)
		}
		line := fmt.Sprintf("%s%s %s %10s  %s",
			marker,
			model.CategoryIcon(g.Categoria),
			desc,
			cli.FormatMoney(currency, g.Monto),
			mutedStyle.Render(cli.FormatDate(g.Fecha)),
		)
		b.WriteString(" ")
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	totalStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	b.WriteString("\n ")
	b.WriteString(totalStyle.Render("Total listado: " + cli.FormatMoney(currency, model.TotalAmount(a.gastos))))
	b.WriteString("\n")
	return b.String()
}
