package tui

import (
	"path/filepath"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"

	"github.com/gastoctl/gastoctl/internal/api"
	"github.com/gastoctl/gastoctl/internal/config"
	"github.com/gastoctl/gastoctl/internal/model"
	"github.com/gastoctl/gastoctl/internal/session"
)

func emptySession(t *testing.T) *session.Store {
	t.Helper()
	return session.Open(filepath.Join(t.TempDir(), "tokens.json"))
}

func loggedInSession(t *testing.T) *session.Store {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, session.Claims{
		UserID:   7,
		Username: "ana",
		Email:    "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}

	s := session.Open(filepath.Join(t.TempDir(), "tokens.json"))
	if err := s.Set(api.TokenPair{Access: signed, Refresh: "r"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	return s
}

func testApp(t *testing.T, sess *session.Store) App {
	t.Helper()
	cfg := config.DefaultConfig()
	return NewApp(cfg, sess, api.NewClient("http://localhost:1", sess))
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestNewApp_RouteGuard(t *testing.T) {
	a := testApp(t, emptySession(t))
	if a.view != viewLogin {
		t.Fatalf("view = %d without session, want viewLogin", a.view)
	}

	a = testApp(t, loggedInSession(t))
	if a.view != viewDashboard {
		t.Fatalf("view = %d with session, want viewDashboard", a.view)
	}
	if a.budgetsState != stateLoading {
		t.Fatalf("budgetsState = %d, want stateLoading", a.budgetsState)
	}
}

func TestUpdate_StaleGenerationDropped(t *testing.T) {
	a := testApp(t, loggedInSession(t))
	a.gen = 3
	a.budgets = []model.Budget{{ID: 1, Nombre: "vigente"}}
	a.budgetsState = stateLoaded

	stale := budgetsLoadedMsg{gen: 2, budgets: []model.Budget{{ID: 9, Nombre: "viejo"}}}
	updated, _ := a.Update(stale)
	got := updated.(App)

	if len(got.budgets) != 1 || got.budgets[0].ID != 1 {
		t.Fatalf("stale message mutated budgets: %+v", got.budgets)
	}
}

func TestUpdate_BudgetsLoadedClampsCursor(t *testing.T) {
	a := testApp(t, loggedInSession(t))
	a.cursor = 5

	updated, _ := a.Update(budgetsLoadedMsg{gen: a.gen, budgets: []model.Budget{{ID: 1}, {ID: 2}}})
	got := updated.(App)

	if got.cursor != 1 {
		t.Fatalf("cursor = %d after load of 2 budgets, want 1", got.cursor)
	}
	if got.budgetsState != stateLoaded {
		t.Fatalf("budgetsState = %d, want stateLoaded", got.budgetsState)
	}
}

func TestUpdate_ExpenseDeleteRemovesExactlyOne(t *testing.T) {
	a := testApp(t, loggedInSession(t))
	a.view = viewDetail
	a.detailID = 1
	a.gastos = []model.Expense{
		{ID: 1, Descripcion: "pan", Monto: dec(t, "5.00")},
		{ID: 2, Descripcion: "luz", Monto: dec(t, "80.00")},
		{ID: 3, Descripcion: "cine", Monto: dec(t, "30.00")},
	}
	a.gastosState = stateLoaded

	updated, cmd := a.Update(expenseDeletedMsg{gen: a.gen, id: 2})
	got := updated.(App)

	if len(got.gastos) != 2 {
		t.Fatalf("len(gastos) = %d, want 2", len(got.gastos))
	}
	for _, g := range got.gastos {
		if g.ID == 2 {
			t.Fatal("deleted expense still present")
		}
	}
	if cmd == nil {
		t.Fatal("expected summary refresh cmd after delete")
	}
	if got.summaryState != stateLoading {
		t.Fatalf("summaryState = %d, want stateLoading", got.summaryState)
	}
}

func TestUpdate_ExpenseDeleteFailureLeavesListUntouched(t *testing.T) {
	a := testApp(t, loggedInSession(t))
	a.view = viewDetail
	a.gastos = []model.Expense{{ID: 1}, {ID: 2}}
	a.gastosState = stateLoaded

	failure := &api.Error{Status: 500, Detail: "error interno"}
	updated, _ := a.Update(expenseDeletedMsg{gen: a.gen, id: 1, err: failure})
	got := updated.(App)

	if len(got.gastos) != 2 {
		t.Fatalf("failed delete mutated the list: %+v", got.gastos)
	}
	if got.gastosErr == "" {
		t.Fatal("expected an error message after failed delete")
	}
}

func TestUpdate_BudgetDeleteOptimisticRemoval(t *testing.T) {
	a := testApp(t, loggedInSession(t))
	a.view = viewDashboard
	a.budgets = []model.Budget{{ID: 10}, {ID: 20}}
	a.budgetsState = stateLoaded
	a.cursor = 1

	updated, _ := a.Update(budgetDeletedMsg{gen: a.gen, id: 20})
	got := updated.(App)

	if len(got.budgets) != 1 || got.budgets[0].ID != 10 {
		t.Fatalf("budgets after delete = %+v, want only id 10", got.budgets)
	}
	if got.cursor != 0 {
		t.Fatalf("cursor = %d after deleting last entry, want 0", got.cursor)
	}
}

func TestUpdate_UnauthorizedForcesLogout(t *testing.T) {
	sess := loggedInSession(t)
	a := testApp(t, sess)
	a.view = viewDashboard

	updated, _ := a.Update(budgetsLoadedMsg{gen: a.gen, err: api.ErrUnauthorized})
	got := updated.(App)

	if got.view != viewLogin {
		t.Fatalf("view = %d after 401, want viewLogin", got.view)
	}
	if sess.LoggedIn() {
		t.Fatal("session still logged in after forced logout")
	}
	if got.notice == "" {
		t.Fatal("expected an expiry notice on the login view")
	}
}

func TestRemoveBudget(t *testing.T) {
	in := []model.Budget{{ID: 1}, {ID: 2}, {ID: 3}}
	out := removeBudget(in, 2)
	if len(out) != 2 || out[0].ID != 1 || out[1].ID != 3 {
		t.Fatalf("removeBudget = %+v", out)
	}
	if len(in) != 3 {
		t.Fatal("removeBudget mutated its input")
	}
}

func TestExpenseCategoriesResolveToIcons(t *testing.T) {
	// Selected category values are stored verbatim, so each one must hit
	// a real entry in the icon map rather than the fallback.
	fallback := model.CategoryIcon("no-such-category")
	for _, c := range expenseCategories {
		if model.CategoryIcon(c) == fallback {
			t.Errorf("category %q falls through to the generic icon", c)
		}
	}
}

func TestTruncateCellKeepsRunesIntact(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"corto", 10, "corto"},
		{"Alimentación del mes", 9, "Alimenta…"},
		{"Educación", 6, "Educa…"},
	}
	for _, tt := range tests {
		got := truncateCell(tt.in, tt.width)
		if got != tt.want {
			t.Errorf("truncateCell(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncateCell(%q, %d) produced invalid UTF-8", tt.in, tt.width)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"1234.56", "1234.56", false},
		{"1,234.56", "1234.56", false},
		{" 100 ", "100", false},
		{"", "", true},
		{"abc", "", true},
	}
	for _, tt := range tests {
		got, err := parseAmount(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseAmount(%q) err = nil, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseAmount(%q) err = %v", tt.in, err)
			continue
		}
		if !got.Equal(dec(t, tt.want)) {
			t.Errorf("parseAmount(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
