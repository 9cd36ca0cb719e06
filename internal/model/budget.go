// Package model defines domain types for budgets, expenses, and summaries.
package model

import (
	"github.com/shopspring/decimal"
)

// Severity tiers for budget spend, used for progress coloring.
const (
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityDanger  = "danger"
)

// Budget is a server-owned spending plan with a date range and total allotment.
// The client never recomputes MontoRestante, only the derived spend percentage.
type Budget struct {
	ID            int             `json:"id"`
	Nombre        string          `json:"nombre_presupuesto"`
	FechaInicio   string          `json:"fecha_inicio"`
	FechaFin      string          `json:"fecha_fin"`
	MontoTotal    decimal.Decimal `json:"monto_total"`
	MontoRestante decimal.Decimal `json:"monto_restante"`
}

// Spent returns the exact amount consumed so far.
func (b Budget) Spent() decimal.Decimal {
	return b.MontoTotal.Sub(b.MontoRestante)
}

// SpentPercent returns the spent fraction of the budget as a percentage.
// A zero total is defined as 0% rather than propagating a division by zero.
// The result is intentionally unclamped; callers clamp for bar rendering.
func (b Budget) SpentPercent() float64 {
	if b.MontoTotal.IsZero() {
		return 0
	}
	pct, _ := b.Spent().Div(b.MontoTotal).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// ClampPercent clamps a percentage into [0, 100] for progress bar rendering.
func ClampPercent(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// SeverityFor maps a spend percentage to a severity tier.
func SeverityFor(pct float64) string {
	switch {
	case pct >= 90:
		return SeverityDanger
	case pct >= 70:
		return SeverityWarning
	default:
		return SeveritySuccess
	}
}
