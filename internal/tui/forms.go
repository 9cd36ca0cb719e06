package tui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/gastoctl/gastoctl/internal/api"
	"github.com/gastoctl/gastoctl/internal/model"
	"github.com/gastoctl/gastoctl/internal/tui/theme"
)

type budgetValues struct {
	nombre      string
	fechaInicio string
	fechaFin    string
	montoTotal  string
}

type expenseValues struct {
	descripcion string
	monto       string
	fecha       string
	categoria   string
}

// expenseCategories are the selectable categories. The values are stored
// verbatim on the expense, so they must be the exact names CategoryIcon
// resolves.
var expenseCategories = []string{
	"Alimentación",
	"Transporte",
	"Entretenimiento",
	"Salud",
	"Educación",
	"Servicios",
	"Ropa",
	"Otros",
}

func categoryOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("Sin categoría", "")}
	for _, c := range expenseCategories {
		opts = append(opts, huh.NewOption(c, c))
	}
	return opts
}

// parseAmount accepts "1234.56" and "1,234.56"; rejects anything else.
func parseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return decimal.Zero, errors.New("Ingresa un monto.")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, errors.New("El monto debe ser un número válido.")
	}
	return d, nil
}

func newBudgetForm(v *budgetValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nombre del presupuesto").
				Placeholder("Gastos de marzo").
				Value(&v.nombre).
				Validate(func(s string) error {
					return fieldError(model.ValidateBudget(s, "2024-01-01", "2024-01-31", decimal.NewFromInt(100)), "nombre_presupuesto")
				}),
			huh.NewInput().
				Title("Fecha de inicio").
				Placeholder("2024-03-01").
				Value(&v.fechaInicio).
				Validate(func(s string) error {
					return fieldError(model.ValidateBudget("x", s, "9999-12-31", decimal.NewFromInt(100)), "fecha_inicio")
				}),
			huh.NewInput().
				Title("Fecha de fin").
				Placeholder("2024-03-31").
				Value(&v.fechaFin).
				Validate(func(s string) error {
					// Cross-field check against the start date typed so far.
					return fieldError(model.ValidateBudget("x", v.fechaInicio, s, decimal.NewFromInt(100)), "fecha_fin")
				}),
			huh.NewInput().
				Title("Monto total").
				Placeholder("1500.00").
				Value(&v.montoTotal).
				Validate(func(s string) error {
					monto, err := parseAmount(s)
					if err != nil {
						return err
					}
					return fieldError(model.ValidateBudget("x", "2024-01-01", "2024-01-31", monto), "monto_total")
				}),
		),
	)
}

func newExpenseForm(v *expenseValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Descripción").
				Placeholder("Supermercado").
				Value(&v.descripcion).
				Validate(func(s string) error {
					return fieldError(model.ValidateExpense(s, decimal.NewFromInt(1), "2024-01-01"), "descripcion")
				}),
			huh.NewInput().
				Title("Monto").
				Placeholder("45.90").
				Value(&v.monto).
				Validate(func(s string) error {
					monto, err := parseAmount(s)
					if err != nil {
						return err
					}
					return fieldError(model.ValidateExpense("x", monto, "2024-01-01"), "monto")
				}),
			huh.NewInput().
				Title("Fecha").
				Placeholder("2024-03-15").
				Value(&v.fecha).
				Validate(func(s string) error {
					return fieldError(model.ValidateExpense("x", decimal.NewFromInt(1), s), "fecha")
				}),
			huh.NewSelect[string]().
				Title("Categoría").
				Options(categoryOptions()...).
				Value(&v.categoria),
		),
	)
}

// openBudgetForm switches to the budget form. id 0 creates; a known id
// prefills the form from the loaded list for editing.
func (a App) openBudgetForm(id int) (tea.Model, tea.Cmd) {
	a.bumpGen()
	a.view = viewBudgetForm
	a.editingBudgetID = id
	a.saving = false
	a.saveErr = ""
	a.notice = ""

	a.budgetVals = budgetValues{}
	if id != 0 {
		for _, b := range a.budgets {
			if b.ID == id {
				a.budgetVals = budgetValues{
					nombre:      b.Nombre,
					fechaInicio: b.FechaInicio,
					fechaFin:    b.FechaFin,
					montoTotal:  b.MontoTotal.StringFixed(2),
				}
				break
			}
		}
	}
	a.budgetForm = newBudgetForm(&a.budgetVals)
	return a, a.budgetForm.Init()
}

// openExpenseForm switches to the expense form within the current budget.
// Editing scans the loaded expense list; the API has no single-expense GET.
func (a App) openExpenseForm(id int) (tea.Model, tea.Cmd) {
	a.bumpGen()
	a.view = viewExpenseForm
	a.editingExpenseID = id
	a.saving = false
	a.saveErr = ""
	a.notice = ""

	a.expenseVals = expenseValues{}
	if id != 0 {
		if g, ok := model.FindByID(a.gastos, id); ok {
			a.expenseVals = expenseValues{
				descripcion: g.Descripcion,
				monto:       g.Monto.StringFixed(2),
				fecha:       g.Fecha,
				categoria:   g.Categoria,
			}
		}
	}
	a.expenseForm = newExpenseForm(&a.expenseVals)
	return a, a.expenseForm.Init()
}

func (a App) updateBudgetForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" && !a.saving {
		cmd := a.openDashboard()
		return a, cmd
	}
	if a.budgetForm == nil || a.saving {
		return a, nil
	}

	form, cmd := a.budgetForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.budgetForm = f
	}

	if a.budgetForm.State == huh.StateCompleted {
		monto, err := parseAmount(a.budgetVals.montoTotal)
		if err != nil {
			a.saveErr = err.Error()
			a.budgetForm = newBudgetForm(&a.budgetVals)
			return a, a.budgetForm.Init()
		}
		a.saving = true
		a.saveErr = ""
		req := api.BudgetRequest{
			Nombre:      strings.TrimSpace(a.budgetVals.nombre),
			FechaInicio: strings.TrimSpace(a.budgetVals.fechaInicio),
			FechaFin:    strings.TrimSpace(a.budgetVals.fechaFin),
			MontoTotal:  monto,
		}
		return a, a.saveBudgetCmd(a.gen, a.editingBudgetID, req)
	}
	if a.budgetForm.State == huh.StateAborted {
		cmd := a.openDashboard()
		return a, cmd
	}
	return a, cmd
}

func (a App) updateExpenseForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" && !a.saving {
		cmd := a.openDetail(a.detailID)
		return a, cmd
	}
	if a.expenseForm == nil || a.saving {
		return a, nil
	}

	form, cmd := a.expenseForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.expenseForm = f
	}

	if a.expenseForm.State == huh.StateCompleted {
		monto, err := parseAmount(a.expenseVals.monto)
		if err != nil {
			a.saveErr = err.Error()
			a.expenseForm = newExpenseForm(&a.expenseVals)
			return a, a.expenseForm.Init()
		}
		a.saving = true
		a.saveErr = ""
		req := api.ExpenseRequest{
			Descripcion: strings.TrimSpace(a.expenseVals.descripcion),
			Monto:       monto,
			Fecha:       strings.TrimSpace(a.expenseVals.fecha),
			Categoria:   a.expenseVals.categoria,
		}
		return a, a.saveExpenseCmd(a.gen, a.detailID, a.editingExpenseID, req)
	}
	if a.expenseForm.State == huh.StateAborted {
		cmd := a.openDetail(a.detailID)
		return a, cmd
	}
	return a, cmd
}

func (a App) saveBudgetCmd(gen, id int, req api.BudgetRequest) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		var err error
		if id == 0 {
			_, err = client.CreateBudget(context.Background(), req)
		} else {
			_, err = client.UpdateBudget(context.Background(), id, req)
		}
		return budgetSavedMsg{gen: gen, err: err}
	}
}

func (a App) saveExpenseCmd(gen, budgetID, expenseID int, req api.ExpenseRequest) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		var err error
		if expenseID == 0 {
			_, err = client.CreateExpense(context.Background(), budgetID, req)
		} else {
			_, err = client.UpdateExpense(context.Background(), budgetID, expenseID, req)
		}
		return expenseSavedMsg{gen: gen, err: err}
	}
}

// closeBudgetForm returns to the dashboard after a successful save and
// refetches so the list reflects the server record.
func (a App) closeBudgetForm() (tea.Model, tea.Cmd) {
	cmd := a.openDashboard()
	if a.editingBudgetID == 0 {
		a.notice = "Presupuesto creado."
	} else {
		a.notice = "Presupuesto actualizado."
	}
	return a, cmd
}

// closeExpenseForm returns to the detail view; budget, summary, and the
// expense list all refetch since amounts changed server-side.
func (a App) closeExpenseForm() (tea.Model, tea.Cmd) {
	cmd := a.openDetail(a.detailID)
	if a.editingExpenseID == 0 {
		a.notice = "Gasto registrado."
	} else {
		a.notice = "Gasto actualizado."
	}
	return a, cmd
}

// formCard centers a bordered card holding a form plus error and hint lines.
func (a App) formCard(title, formView string) string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(formView)
	b.WriteString("\n")
	if a.saveErr != "" {
		b.WriteString(errStyle.Render(a.saveErr))
		b.WriteString("\n")
	}
	if a.saving {
		b.WriteString(a.spinner.View())
		b.WriteString(hintStyle.Render(" guardando..."))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("esc cancelar"))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) renderBudgetForm() string {
	title := "Nuevo presupuesto"
	if a.editingBudgetID != 0 {
		title = "Editar presupuesto"
	}
	formView := ""
	if a.budgetForm != nil {
		formView = a.budgetForm.View()
	}
	return a.formCard(title, formView)
}

func (a App) renderExpenseForm() string {
	title := "Nuevo gasto"
	if a.editingExpenseID != 0 {
		title = "Editar gasto"
	}
	formView := ""
	if a.expenseForm != nil {
		formView = a.expenseForm.View()
	}
	return a.formCard(title, formView)
}
