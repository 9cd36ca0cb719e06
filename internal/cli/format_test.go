package cli

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "S/ 0.00"},
		{"12.5", "S/ 12.50"},
		{"1234.56", "S/ 1,234.56"},
		{"1234567.8", "S/ 1,234,567.80"},
		{"-45.25", "-S/ 45.25"},
	}

	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.in, err)
		}
		if got := FormatMoney("S/", d); got != tt.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent_Unclamped(t *testing.T) {
	if got := FormatPercent(75.0); got != "75.0%" {
		t.Fatalf("FormatPercent(75) = %q", got)
	}
	// The numeric label shows the true value even past 100.
	if got := FormatPercent(112.34); got != "112.3%" {
		t.Fatalf("FormatPercent(112.34) = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2026-01-15"); got != "15 Jan 2026" {
		t.Fatalf("FormatDate = %q", got)
	}
	// Unparseable input passes through untouched.
	if got := FormatDate("mañana"); got != "mañana" {
		t.Fatalf("FormatDate passthrough = %q", got)
	}
}
