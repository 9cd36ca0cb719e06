package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gastoctl/gastoctl/internal/model"
)

func openTestSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snapshot.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := openTestSnapshot(t)

	budgets := []model.Budget{
		{
			ID: 1, Nombre: "Casa",
			FechaInicio: "2026-01-01", FechaFin: "2026-01-31",
			MontoTotal:    decimal.RequireFromString("1000.00"),
			MontoRestante: decimal.RequireFromString("250.00"),
		},
	}
	syncedAt := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	if err := s.ReplaceBudgets(budgets, syncedAt); err != nil {
		t.Fatalf("ReplaceBudgets: %v", err)
	}

	gastos := []model.Expense{
		{ID: 10, Descripcion: "mercado", Monto: decimal.RequireFromString("120.50"), Fecha: "2026-01-05", Categoria: "Alimentación"},
		{ID: 11, Descripcion: "taxi", Monto: decimal.RequireFromString("15.00"), Fecha: "2026-01-03"},
	}
	if err := s.ReplaceExpenses(1, gastos); err != nil {
		t.Fatalf("ReplaceExpenses: %v", err)
	}

	gotBudgets, gotSynced, err := s.Budgets()
	if err != nil {
		t.Fatalf("Budgets: %v", err)
	}
	if len(gotBudgets) != 1 || gotBudgets[0].Nombre != "Casa" {
		t.Fatalf("budgets = %+v", gotBudgets)
	}
	if !gotBudgets[0].MontoTotal.Equal(budgets[0].MontoTotal) {
		t.Fatalf("monto_total = %s, want %s", gotBudgets[0].MontoTotal, budgets[0].MontoTotal)
	}
	if !gotSynced.Equal(syncedAt) {
		t.Fatalf("syncedAt = %v, want %v", gotSynced, syncedAt)
	}

	gotGastos, err := s.Expenses(1)
	if err != nil {
		t.Fatalf("Expenses: %v", err)
	}
	if len(gotGastos) != 2 {
		t.Fatalf("expenses len = %d, want 2", len(gotGastos))
	}
	// Ordered by fecha.
	if gotGastos[0].Descripcion != "taxi" || gotGastos[1].Descripcion != "mercado" {
		t.Fatalf("expense order = %q, %q", gotGastos[0].Descripcion, gotGastos[1].Descripcion)
	}
}

func TestReplaceBudgetsDropsRemovedOnes(t *testing.T) {
	s := openTestSnapshot(t)

	first := []model.Budget{
		{ID: 1, Nombre: "Casa", FechaInicio: "2026-01-01", FechaFin: "2026-01-31",
			MontoTotal: decimal.RequireFromString("1000"), MontoRestante: decimal.RequireFromString("1000")},
		{ID: 2, Nombre: "Viaje", FechaInicio: "2026-02-01", FechaFin: "2026-02-28",
			MontoTotal: decimal.RequireFromString("500"), MontoRestante: decimal.RequireFromString("500")},
	}
	if err := s.ReplaceBudgets(first, time.Now()); err != nil {
		t.Fatalf("ReplaceBudgets: %v", err)
	}

	if err := s.ReplaceBudgets(first[:1], time.Now()); err != nil {
		t.Fatalf("second ReplaceBudgets: %v", err)
	}

	got, _, err := s.Budgets()
	if err != nil {
		t.Fatalf("Budgets: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("budgets after replace = %+v", got)
	}
}
