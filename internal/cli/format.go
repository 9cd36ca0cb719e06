// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount with the currency prefix and thousands
// separators, always to two decimal places. e.g. "S/ 1,234.50".
func FormatMoney(currency string, amount decimal.Decimal) string {
	s := amount.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	grouped := groupThousands(intPart)

	out := currency + " " + grouped + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatPercent formats an already-scaled percentage (0-100) with one
// decimal, unclamped. e.g. 75.0 -> "75.0%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDate renders an ISO date (YYYY-MM-DD) as "02 Jan 2006".
// Unparseable input is returned as-is rather than dropped.
func FormatDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006")
}

// FormatDateRange renders a budget's date span.
func FormatDateRange(inicio, fin string) string {
	return FormatDate(inicio) + " – " + FormatDate(fin)
}
