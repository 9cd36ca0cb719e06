package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"

	"github.com/gastoctl/gastoctl/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestSpendBarLabelIsUnclamped(t *testing.T) {
	theme.SetActive("flexoki-dark")

	bar := SpendBar(112.4, "danger", 20)
	if !strings.Contains(bar, "112.4%") {
		t.Fatalf("overspent bar should label the real percentage, got %q", bar)
	}
	// The drawn bar itself stays within width: exactly 20 filled cells.
	if got := strings.Count(bar, "█"); got != 20 {
		t.Fatalf("filled cells = %d, want 20 (clamped full bar)", got)
	}
}

func TestSpendBarZeroPercent(t *testing.T) {
	theme.SetActive("flexoki-dark")

	bar := SpendBar(0, "success", 10)
	if strings.Contains(bar, "█") {
		t.Fatalf("empty bar should have no filled cells, got %q", bar)
	}
	if !strings.Contains(bar, "0.0%") {
		t.Fatalf("missing 0.0%% label in %q", bar)
	}
}

func TestDistributionBarHandlesZeroTotal(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := DistributionBar(decimal.Zero, decimal.Zero, 40)
	if !strings.Contains(out, "Sin datos") {
		t.Fatalf("zero total should render the empty marker, got %q", out)
	}
}

func TestDistributionBarSegmentsFillWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := DistributionBar(decimal.NewFromInt(25), decimal.NewFromInt(75), 40)
	barLine := strings.Split(out, "\n")[0]
	if got := strings.Count(barLine, "█"); got != 40 {
		t.Fatalf("segments sum to %d cells, want 40", got)
	}
}

func TestDailyBarChartAxisLabels(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := DailyBarChart(
		[]float64{10, 40, 25},
		[]string{"2024-03-01", "2024-03-02", "2024-03-03"},
		40, 4,
	)
	if !strings.Contains(out, "01/03") || !strings.Contains(out, "03/03") {
		t.Fatalf("axis should carry first and last dates, got %q", out)
	}
}

func TestDailyBarChartSingleBarWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	// Width fits only one bar while the series has several buckets; the
	// chart must degrade to the latest bucket instead of panicking.
	out := DailyBarChart(
		[]float64{10, 40},
		[]string{"2024-03-01", "2024-03-02"},
		4, 4,
	)
	if out == "" {
		t.Fatal("expected a rendered chart")
	}
	if !strings.Contains(out, "02/03") {
		t.Fatalf("single-bar chart should label the latest bucket, got %q", out)
	}
	if strings.Contains(out, "01/03") {
		t.Fatalf("dropped buckets should not appear on the axis, got %q", out)
	}
}

func TestLayoutRowSumsExactly(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4} {
		widths := LayoutRow(101, n)
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != 101 {
			t.Errorf("LayoutRow(101, %d) sums to %d", n, sum)
		}
	}
}
