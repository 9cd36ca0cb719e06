package model

import (
	"github.com/shopspring/decimal"
)

// Expense is a single spend transaction scoped to exactly one budget.
type Expense struct {
	ID          int             `json:"id"`
	Presupuesto int             `json:"presupuesto"`
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
	Fecha       string          `json:"fecha"`
	Categoria   string          `json:"categoria,omitempty"`
}

// TotalAmount sums expense amounts exactly. Decimal arithmetic keeps the
// result independent of ordering and free of float accumulation drift.
func TotalAmount(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, g := range expenses {
		total = total.Add(g.Monto)
	}
	return total
}

// RemoveByID returns expenses with exactly the given id filtered out.
// Used for the optimistic list update after a confirmed delete.
func RemoveByID(expenses []Expense, id int) []Expense {
	out := expenses[:0:0]
	for _, g := range expenses {
		if g.ID != id {
			out = append(out, g)
		}
	}
	return out
}

// FindByID scans for the expense with the given id. The API has no
// single-expense GET, so edit flows locate the entry in the fetched list.
func FindByID(expenses []Expense, id int) (Expense, bool) {
	for _, g := range expenses {
		if g.ID == id {
			return g, true
		}
	}
	return Expense{}, false
}

// CategoryIcon returns a display icon for an expense category.
func CategoryIcon(categoria string) string {
	icons := map[string]string{
		"Alimentación":    "🍽",
		"Transporte":      "🚗",
		"Entretenimiento": "🎮",
		"Salud":           "⚕",
		"Educación":       "📚",
		"Servicios":       "💡",
		"Ropa":            "👕",
		"Otros":           "📦",
	}
	if icon, ok := icons[categoria]; ok {
		return icon
	}
	return "💰"
}
