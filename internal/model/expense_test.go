package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTotalAmount_ExactAndOrderIndependent(t *testing.T) {
	// Classic float trap: 0.1 + 0.2 must come out as exactly 0.3.
	a := []Expense{
		{ID: 1, Monto: dec(t, "0.1")},
		{ID: 2, Monto: dec(t, "0.2")},
		{ID: 3, Monto: dec(t, "19.99")},
	}
	b := []Expense{a[2], a[0], a[1]}

	want := dec(t, "20.29")
	if got := TotalAmount(a); !got.Equal(want) {
		t.Fatalf("TotalAmount = %s, want %s", got, want)
	}
	if got := TotalAmount(b); !got.Equal(want) {
		t.Fatalf("reordered TotalAmount = %s, want %s", got, want)
	}
}

func TestTotalAmount_Empty(t *testing.T) {
	if got := TotalAmount(nil); !got.Equal(decimal.Zero) {
		t.Fatalf("TotalAmount(nil) = %s, want 0", got)
	}
}

func TestRemoveByID(t *testing.T) {
	gastos := []Expense{{ID: 1}, {ID: 2}, {ID: 3}}

	got := RemoveByID(gastos, 2)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("RemoveByID removed wrong entries: %+v", got)
	}

	// Unknown id leaves the list unchanged.
	got = RemoveByID(gastos, 99)
	if len(got) != 3 {
		t.Fatalf("RemoveByID(99) len = %d, want 3", len(got))
	}

	// Input slice must not be mutated.
	if len(gastos) != 3 {
		t.Fatalf("input slice mutated, len = %d", len(gastos))
	}
}

func TestFindByID(t *testing.T) {
	gastos := []Expense{
		{ID: 7, Descripcion: "taxi"},
		{ID: 8, Descripcion: "almuerzo"},
	}

	g, ok := FindByID(gastos, 8)
	if !ok || g.Descripcion != "almuerzo" {
		t.Fatalf("FindByID(8) = %+v, %v", g, ok)
	}

	if _, ok := FindByID(gastos, 99); ok {
		t.Fatal("FindByID(99) unexpectedly found an entry")
	}
}
