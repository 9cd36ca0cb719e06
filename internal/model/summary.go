package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Summary is the server-computed aggregate of one budget's spend.
// Read-only projection; never mutated by the client.
type Summary struct {
	PresupuestoID  int                        `json:"presupuesto_id"`
	Total          decimal.Decimal            `json:"presupuesto_total"`
	Gastado        decimal.Decimal            `json:"gastado"`
	Restante       decimal.Decimal            `json:"restante"`
	RangoFechas    string                     `json:"rango_fechas"`
	GastosPorFecha map[string]decimal.Decimal `json:"gastos_por_fecha"`
}

// SpentPercent mirrors Budget.SpentPercent for the summary projection.
func (s Summary) SpentPercent() float64 {
	if s.Total.IsZero() {
		return 0
	}
	pct, _ := s.Gastado.Div(s.Total).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// DailySpend is one day bucket of the summary's spend-over-time series.
type DailySpend struct {
	Fecha string
	Monto decimal.Decimal
}

// DailySeries returns the per-day spend buckets sorted by date.
// Dates are ISO (YYYY-MM-DD) so lexical order is chronological order.
func (s Summary) DailySeries() []DailySpend {
	series := make([]DailySpend, 0, len(s.GastosPorFecha))
	for fecha, monto := range s.GastosPorFecha {
		series = append(series, DailySpend{Fecha: fecha, Monto: monto})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Fecha < series[j].Fecha
	})
	return series
}
