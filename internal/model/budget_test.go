package model

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func TestSpentPercent(t *testing.T) {
	tests := []struct {
		name     string
		total    string
		restante string
		want     float64
	}{
		{"three quarters spent", "1000", "250", 75.0},
		{"nothing spent", "500", "500", 0},
		{"fully spent", "200", "0", 100},
		{"overspent past total", "100", "-50", 150},
		{"zero total defined as zero", "0", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Budget{MontoTotal: dec(t, tt.total), MontoRestante: dec(t, tt.restante)}
			got := b.SpentPercent()
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("SpentPercent() = %v, want %v", got, tt.want)
			}
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Fatalf("SpentPercent() produced non-finite value %v", got)
			}
		})
	}
}

func TestClampPercent(t *testing.T) {
	if got := ClampPercent(150); got != 100 {
		t.Fatalf("ClampPercent(150) = %v, want 100", got)
	}
	if got := ClampPercent(-5); got != 0 {
		t.Fatalf("ClampPercent(-5) = %v, want 0", got)
	}
	if got := ClampPercent(42.5); got != 42.5 {
		t.Fatalf("ClampPercent(42.5) = %v, want 42.5", got)
	}
}

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{0, SeveritySuccess},
		{69.9, SeveritySuccess},
		{70, SeverityWarning},
		{89.9, SeverityWarning},
		{90, SeverityDanger},
		{120, SeverityDanger},
	}
	for _, tt := range tests {
		if got := SeverityFor(tt.pct); got != tt.want {
			t.Errorf("SeverityFor(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}
