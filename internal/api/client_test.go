package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

type staticToken string

func (s staticToken) AccessToken() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, staticToken(token))
}

func TestDo_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}, "tok123")

	if _, err := c.ListBudgets(context.Background()); err != nil {
		t.Fatalf("ListBudgets: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("Authorization = %q, want Bearer tok123", gotAuth)
	}
}

func TestDo_NoTokenMeansNoHeader(t *testing.T) {
	var hadHeader bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hadHeader = r.Header["Authorization"]
		w.Write([]byte(`{"access":"a","refresh":"r"}`))
	}, "")

	if _, err := c.Login(context.Background(), "ana@example.com", "secreta"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if hadHeader {
		t.Fatal("Authorization header sent without a session")
	}
}

func TestDo_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Token inválido"}`, http.StatusUnauthorized)
	}, "stale")

	_, err := c.ListBudgets(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestDo_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Presupuesto no encontrado."}`, http.StatusNotFound)
	}, "tok")

	_, err := c.GetBudget(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDo_ServerDetailSurfacedVerbatim(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Credenciales inválidas o el usuario no existe."}`, http.StatusBadRequest)
	}, "")

	_, err := c.Login(context.Background(), "ana@example.com", "mala")

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *Error", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Fatalf("Status = %d, want 400", apiErr.Status)
	}
	if apiErr.Detail != "Credenciales inválidas o el usuario no existe." {
		t.Fatalf("Detail = %q", apiErr.Detail)
	}
}

func TestDo_FieldKeyedValidationErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"email":["Ingresa un correo válido."],"password":["La contraseña debe tener al menos 8 caracteres."]}`, http.StatusBadRequest)
	}, "")

	_, err := c.Register(context.Background(), "ana", "mal", "corta")

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *Error", err)
	}
	if got := apiErr.Fields["email"]; len(got) != 1 || got[0] != "Ingresa un correo válido." {
		t.Fatalf("Fields[email] = %v", got)
	}
	if got := apiErr.Fields["password"]; len(got) != 1 {
		t.Fatalf("Fields[password] = %v", got)
	}
}

func TestListBudgets_DecodesDecimalAmounts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gastos/presupuesto/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`[{"id":1,"nombre_presupuesto":"Casa","fecha_inicio":"2026-01-01","fecha_fin":"2026-01-31","monto_total":"1000.00","monto_restante":"250.00"}]`))
	}, "tok")

	budgets, err := c.ListBudgets(context.Background())
	if err != nil {
		t.Fatalf("ListBudgets: %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("len = %d, want 1", len(budgets))
	}
	if got := budgets[0].SpentPercent(); got != 75.0 {
		t.Fatalf("SpentPercent = %v, want 75", got)
	}
}

func TestDeleteExpense_Requires204Exactly(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"204 succeeds", http.StatusNoContent, false},
		{"200 is a failure", http.StatusOK, true},
		{"202 is a failure", http.StatusAccepted, true},
		{"500 is a failure", http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete {
					t.Errorf("method = %s", r.Method)
				}
				w.WriteHeader(tt.status)
			}, "tok")

			err := c.DeleteExpense(context.Background(), 1, 7)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDeleteExpense_PathScopedToBudgetAndExpense(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}, "tok")

	if err := c.DeleteExpense(context.Background(), 3, 14); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	if gotPath != "/gastos/presupuesto/3/gastos/14/eliminar/" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestCreateThenGetBudget_RoundTripsFields(t *testing.T) {
	// Minimal stateful server: POST stores the budget, GET echoes it back
	// with the server-assigned id and remaining amount.
	var stored []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			var req map[string]any
			if err := json.Unmarshal(body, &req); err != nil {
				t.Fatalf("bad request body: %v", err)
			}
			req["id"] = 5
			req["monto_restante"] = req["monto_total"]
			stored, _ = json.Marshal(req)
			w.WriteHeader(http.StatusCreated)
			w.Write(stored)
		case http.MethodGet:
			w.Write(stored)
		}
	}, "tok")

	ctx := context.Background()
	created, err := c.CreateBudget(ctx, BudgetRequest{
		Nombre:      "Marzo",
		FechaInicio: "2024-03-01",
		FechaFin:    "2024-03-31",
		MontoTotal:  decimal.NewFromInt(1500),
	})
	if err != nil {
		t.Fatalf("CreateBudget: %v", err)
	}

	fetched, err := c.GetBudget(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetBudget: %v", err)
	}

	if fetched.Nombre != "Marzo" || fetched.FechaInicio != "2024-03-01" || fetched.FechaFin != "2024-03-31" {
		t.Fatalf("fetched = %+v, want the created fields back", fetched)
	}
	if !fetched.MontoTotal.Equal(created.MontoTotal) {
		t.Fatalf("monto_total = %s, want %s", fetched.MontoTotal, created.MontoTotal)
	}
}
