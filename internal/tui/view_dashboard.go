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

const maxContentWidth = 110

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	// Pending delete confirmation intercepts all keys.
	if a.confirmDelete {
		switch key.String() {
		case "y", "Y":
			a.confirmDelete = false
			if a.cursor < len(a.budgets) {
				return a, a.deleteBudgetCmd(a.gen, a.budgets[a.cursor].ID)
			}
			return a, nil
		default:
			a.confirmDelete = false
			return a, nil
		}
	}

	switch key.String() {
	case "q", "esc":
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(a.budgets)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "enter":
		if a.budgetsState == stateLoaded && a.cursor < len(a.budgets) {
			cmd := a.openDetail(a.budgets[a.cursor].ID)
			return a, cmd
		}
	case "n":
		return a.openBudgetForm(0)
	case "e":
		if a.budgetsState == stateLoaded && a.cursor < len(a.budgets) {
			return a.openBudgetForm(a.budgets[a.cursor].ID)
		}
	case "d":
		if a.budgetsState == stateLoaded && a.cursor < len(a.budgets) {
			a.confirmDelete = true
		}
	case "r":
		cmd := a.openDashboard()
		return a, cmd
	case "L":
		a.sess.Logout()
		a.bumpGen()
		a.view = viewLogin
		a.notice = "Sesión cerrada."
		a.loginVals = loginValues{}
		a.loginForm = newLoginForm(&a.loginVals)
		return a, a.loginForm.Init()
	}
	return a, nil
}

func (a App) renderDashboard() string {
	t := theme.Active
	cw := a.contentWidth()

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)
	noticeStyle := lipgloss.NewStyle().Foreground(t.Green)

	var b strings.Builder
	b.WriteString("\n ")
	b.WriteString(titleStyle.Render("Mis Presupuestos"))
	if a.budgetsState == stateLoaded {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  (%d)", len(a.budgets))))
	}
	b.WriteString("\n\n")

	switch a.budgetsState {
	case stateLoading:
		b.WriteString(" ")
		b.WriteString(a.spinner.View())
		b.WriteString(mutedStyle.Render(" Cargando presupuestos..."))
		b.WriteString("\n")

	case stateFailed:
		b.WriteString(" ")
		b.WriteString(errStyle.Render(a.budgetsErr))
		b.WriteString("\n ")
		b.WriteString(mutedStyle.Render("[r] intentar nuevamente"))
		b.WriteString("\n")

	case stateLoaded:
		if len(a.budgets) == 0 {
			b.WriteString(mutedStyle.Render(" No tienes presupuestos aún. Crea uno con [n] para comenzar."))
			b.WriteString("\n")
			break
		}
		for i, budget := range a.budgets {
			b.WriteString(a.renderBudgetCard(budget, i == a.cursor, cw-2))
			b.WriteString("\n")
		}
	}

	if a.notice != "" {
		b.WriteString("\n ")
		b.WriteString(noticeStyle.Render(a.notice))
		b.WriteString("\n")
	}

	hints := "[enter]abrir [n]uevo [e]ditar [d]eliminar [r]efrescar [L]salir de sesión [q]uit"
	if a.confirmDelete && a.cursor < len(a.budgets) {
		hints = fmt.Sprintf("¿Eliminar %q? [y] sí / cualquier otra tecla cancela", a.budgets[a.cursor].Nombre)
	}

	user := ""
	if u := a.sess.User(); u != nil {
		user = u.Username
	}

	body := b.String()
	content := lipgloss.NewStyle().Width(cw).Render(body)
	status := components.RenderStatusBar(a.width, " "+hints, user)

	gap := a.height - lipgloss.Height(content) - 1
	if gap < 0 {
		gap = 0
	}
	return content + strings.Repeat("\n", gap) + status
}

// renderBudgetCard renders one budget row: name, dates, amounts, and the
// severity-colored spend bar.
func (a App) renderBudgetCard(budget model.Budget, selected bool, width int) string {
	t := theme.Active
	currency := a.cfg.General.Currency

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	pct := budget.SpentPercent()
	severity := model.SeverityFor(pct)

	inner := components.CardInnerWidth(width)
	barW := inner - 10
	if barW < 10 {
		barW = 10
	}

	var body strings.Builder
	body.WriteString(mutedStyle.Render(cli.FormatDateRange(budget.FechaInicio, budget.FechaFin)))
	body.WriteString("\n")
	body.WriteString(fmt.Sprintf("%s  %s  %s",
		mutedStyle.Render("Total ")+cli.FormatMoney(currency, budget.MontoTotal),
		mutedStyle.Render("Gastado ")+cli.FormatMoney(currency, budget.Spent()),
		mutedStyle.Render("Disponible ")+cli.FormatMoney(currency, budget.MontoRestante),
	))
	body.WriteString("\n")
	body.WriteString(components.SpendBar(pct, severity, barW))

	title := nameStyle.Render(budget.Nombre)
	if selected {
		return components.FocusCard(title, body.String(), width)
	}
	return components.ContentCard(title, body.String(), width)
}
