// Package tui provides the interactive Bubble Tea dashboard for gastoctl.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/gastoctl/gastoctl/internal/api"
	"github.com/gastoctl/gastoctl/internal/config"
	"github.com/gastoctl/gastoctl/internal/model"
	"github.com/gastoctl/gastoctl/internal/session"
	"github.com/gastoctl/gastoctl/internal/tui/theme"
)

// Views. The login view doubles as the route guard: protected views are
// never rendered without a session, and any 401 forces a way back here.
const (
	viewLogin = iota
	viewRegister
	viewDashboard
	viewBudgetForm
	viewDetail
	viewExpenseForm
)

// loadState tracks one fetch's lifecycle. Every fetch must end in either
// loaded or failed; failed renders a retry affordance.
type loadState int

const (
	stateLoading loadState = iota
	stateLoaded
	stateFailed
)

// Messages. Each carries the generation of the view that issued the fetch;
// stale generations are dropped so a torn-down view never mutates state.
type (
	budgetsLoadedMsg struct {
		gen     int
		budgets []model.Budget
		err     error
	}
	budgetLoadedMsg struct {
		gen    int
		budget model.Budget
		err    error
	}
	summaryLoadedMsg struct {
		gen     int
		summary model.Summary
		err     error
	}
	expensesLoadedMsg struct {
		gen    int
		gastos []model.Expense
		err    error
	}
	budgetDeletedMsg struct {
		gen int
		id  int
		err error
	}
	expenseDeletedMsg struct {
		gen int
		id  int
		err error
	}
	budgetSavedMsg struct {
		gen int
		err error
	}
	expenseSavedMsg struct {
		gen int
		err error
	}
	loginDoneMsg struct {
		ok  bool
		msg string
	}
	registerDoneMsg struct {
		user api.RegisteredUser
		err  error
	}
)

// App is the root Bubble Tea model.
type App struct {
	cfg    config.Config
	sess   *session.Store
	client *api.Client

	width  int
	height int
	view   int
	gen    int // fetch generation; bumped on every view transition

	notice string // transient banner (session expired, item saved, ...)

	// Login / register forms
	loginForm    *huh.Form
	loginVals    loginValues
	loggingIn    bool
	loginErr     string
	registerForm *huh.Form
	regVals      registerValues
	registering  bool

	// Dashboard
	budgets       []model.Budget
	budgetsState  loadState
	budgetsErr    string
	cursor        int
	confirmDelete bool

	// Budget form (create or edit)
	budgetForm      *huh.Form
	budgetVals      budgetValues
	editingBudgetID int // 0 means create
	saving          bool
	saveErr         string

	// Detail: budget and summary are fetched independently; each resolves
	// to its own loading | loaded | failed state.
	detailID     int
	budget       model.Budget
	budgetState  loadState
	budgetErr    string
	summary      model.Summary
	summaryState loadState
	summaryErr   string
	gastos       []model.Expense
	gastosState  loadState
	gastosErr    string
	expCursor    int
	confirmExp   bool

	// Expense form (create or edit)
	expenseForm      *huh.Form
	expenseVals      expenseValues
	editingExpenseID int // 0 means create

	spinner spinner.Model
}

// NewApp creates the root TUI model.
func NewApp(cfg config.Config, sess *session.Store, client *api.Client) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	a := App{
		cfg:     cfg,
		sess:    sess,
		client:  client,
		spinner: sp,
	}

	// Route guard: presence only, no expiry validation. An expired token
	// surfaces as 401 on the first protected fetch and forces logout.
	if sess.LoggedIn() {
		a.view = viewDashboard
		a.budgetsState = stateLoading
	} else {
		a.view = viewLogin
		a.loginForm = newLoginForm(&a.loginVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick}
	if a.view == viewDashboard {
		cmds = append(cmds, a.loadBudgetsCmd(a.gen))
	}
	if a.loginForm != nil {
		cmds = append(cmds, a.loginForm.Init())
	}
	return tea.Batch(cmds...)
}

// bumpGen invalidates all in-flight fetches of the previous view.
func (a *App) bumpGen() int {
	a.gen++
	return a.gen
}

// Fetch commands. Each closes over the client and its generation.

func (a App) loadBudgetsCmd(gen int) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		budgets, err := client.ListBudgets(context.Background())
		return budgetsLoadedMsg{gen: gen, budgets: budgets, err: err}
	}
}

func (a App) loadBudgetCmd(gen, id int) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		b, err := client.GetBudget(context.Background(), id)
		return budgetLoadedMsg{gen: gen, budget: b, err: err}
	}
}

func (a App) loadSummaryCmd(gen, id int) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		s, err := client.GetSummary(context.Background(), id)
		return summaryLoadedMsg{gen: gen, summary: s, err: err}
	}
}

func (a App) loadExpensesCmd(gen, budgetID int) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		gastos, err := client.ListExpenses(context.Background(), budgetID)
		return expensesLoadedMsg{gen: gen, gastos: gastos, err: err}
	}
}

func (a App) deleteBudgetCmd(gen, id int) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		err := client.DeleteBudget(context.Background(), id)
		return budgetDeletedMsg{gen: gen, id: id, err: err}
	}
}

func (a App) deleteExpenseCmd(gen, budgetID, expenseID int) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		err := client.DeleteExpense(context.Background(), budgetID, expenseID)
		return expenseDeletedMsg{gen: gen, id: expenseID, err: err}
	}
}

func (a App) loginCmd(email, password string) tea.Cmd {
	sess, client := a.sess, a.client
	return func() tea.Msg {
		ok, msg := sess.Login(context.Background(), client, email, password)
		return loginDoneMsg{ok: ok, msg: msg}
	}
}

func (a App) registerCmd(username, email, password string) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		user, err := client.Register(context.Background(), username, email, password)
		return registerDoneMsg{user: user, err: err}
	}
}

// forceLogout handles a 401 on any protected call: clear the session and
// land on the login view with an explanation, distinct from a generic
// server rejection.
func (a *App) forceLogout() tea.Cmd {
	a.sess.Logout()
	a.bumpGen()
	a.view = viewLogin
	a.notice = "Tu sesión expiró. Inicia sesión nuevamente."
	a.loginVals = loginValues{}
	a.loginForm = newLoginForm(&a.loginVals)
	a.loggingIn = false
	return a.loginForm.Init()
}

// fetchFailed folds a fetch error into a view state, special-casing 401.
// Returns a non-nil cmd when the error forced a logout.
func (a *App) fetchFailed(err error, state *loadState, msg *string) tea.Cmd {
	if errors.Is(err, api.ErrUnauthorized) {
		return a.forceLogout()
	}
	*state = stateFailed
	*msg = userMessage(err)
	return nil
}

// userMessage renders an error for display: server payloads verbatim,
// transport failures as a generic retry prompt.
func userMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return apiErr.Error()
	}
	if errors.Is(err, api.ErrNotFound) {
		return "No encontrado."
	}
	return "Error de conexión. Intenta nuevamente."
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		for _, f := range []*huh.Form{a.loginForm, a.registerForm, a.budgetForm, a.expenseForm} {
			if f != nil {
				_ = f.WithWidth(msg.Width)
			}
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case loginDoneMsg:
		return a.handleLoginDone(msg)
	case registerDoneMsg:
		return a.handleRegisterDone(msg)

	case budgetsLoadedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		if msg.err != nil {
			cmd := a.fetchFailed(msg.err, &a.budgetsState, &a.budgetsErr)
			return a, cmd
		}
		a.budgets = msg.budgets
		a.budgetsState = stateLoaded
		if a.cursor >= len(a.budgets) {
			a.cursor = len(a.budgets) - 1
		}
		if a.cursor < 0 {
			a.cursor = 0
		}
		return a, nil

	case budgetLoadedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		if msg.err != nil {
			cmd := a.fetchFailed(msg.err, &a.budgetState, &a.budgetErr)
			return a, cmd
		}
		a.budget = msg.budget
		a.budgetState = stateLoaded
		return a, nil

	case summaryLoadedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		if msg.err != nil {
			cmd := a.fetchFailed(msg.err, &a.summaryState, &a.summaryErr)
			return a, cmd
		}
		a.summary = msg.summary
		a.summaryState = stateLoaded
		return a, nil

	case expensesLoadedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		if msg.err != nil {
			cmd := a.fetchFailed(msg.err, &a.gastosState, &a.gastosErr)
			return a, cmd
		}
		a.gastos = msg.gastos
		a.gastosState = stateLoaded
		if a.expCursor >= len(a.gastos) {
			a.expCursor = len(a.gastos) - 1
		}
		if a.expCursor < 0 {
			a.expCursor = 0
		}
		return a, nil

	case budgetDeletedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				cmd := a.forceLogout()
				return a, cmd
			}
			a.notice = userMessage(msg.err)
			return a, nil
		}
		// Optimistic local removal, reconciled on next natural fetch.
		a.budgets = removeBudget(a.budgets, msg.id)
		if a.cursor >= len(a.budgets) && a.cursor > 0 {
			a.cursor--
		}
		a.notice = "Presupuesto eliminado."
		return a, nil

	case expenseDeletedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				cmd := a.forceLogout()
				return a, cmd
			}
			// Anything but a clean 204 leaves the list untouched.
			a.gastosErr = userMessage(msg.err)
			return a, nil
		}
		a.gastos = model.RemoveByID(a.gastos, msg.id)
		if a.expCursor >= len(a.gastos) && a.expCursor > 0 {
			a.expCursor--
		}
		// Remaining amount changed server-side; refresh the summary.
		a.summaryState = stateLoading
		return a, a.loadSummaryCmd(a.gen, a.detailID)

	case budgetSavedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		a.saving = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				cmd := a.forceLogout()
				return a, cmd
			}
			a.saveErr = userMessage(msg.err)
			return a, nil
		}
		return a.closeBudgetForm()

	case expenseSavedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		a.saving = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthorized) {
				cmd := a.forceLogout()
				return a, cmd
			}
			a.saveErr = userMessage(msg.err)
			return a, nil
		}
		return a.closeExpenseForm()
	}

	switch a.view {
	case viewLogin:
		return a.updateLogin(msg)
	case viewRegister:
		return a.updateRegister(msg)
	case viewDashboard:
		return a.updateDashboard(msg)
	case viewBudgetForm:
		return a.updateBudgetForm(msg)
	case viewDetail:
		return a.updateDetail(msg)
	case viewExpenseForm:
		return a.updateExpenseForm(msg)
	}
	return a, nil
}

func removeBudget(budgets []model.Budget, id int) []model.Budget {
	out := budgets[:0:0]
	for _, b := range budgets {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}

// openDashboard transitions to the budget list and starts its fetch.
func (a *App) openDashboard() tea.Cmd {
	gen := a.bumpGen()
	a.view = viewDashboard
	a.budgetsState = stateLoading
	a.budgetsErr = ""
	a.confirmDelete = false
	return a.loadBudgetsCmd(gen)
}

// openDetail transitions to one budget's detail view. The budget record,
// its summary, and its expenses load independently.
func (a *App) openDetail(id int) tea.Cmd {
	gen := a.bumpGen()
	a.view = viewDetail
	a.detailID = id
	a.budgetState = stateLoading
	a.summaryState = stateLoading
	a.gastosState = stateLoading
	a.budgetErr, a.summaryErr, a.gastosErr = "", "", ""
	a.expCursor = 0
	a.confirmExp = false
	return tea.Batch(
		a.loadBudgetCmd(gen, id),
		a.loadSummaryCmd(gen, id),
		a.loadExpensesCmd(gen, id),
	)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	switch a.view {
	case viewLogin:
		return a.renderLogin()
	case viewRegister:
		return a.renderRegister()
	case viewDashboard:
		return a.renderDashboard()
	case viewBudgetForm:
		return a.renderBudgetForm()
	case viewDetail:
		return a.renderDetail()
	case viewExpenseForm:
		return a.renderExpenseForm()
	}
	return ""
}
