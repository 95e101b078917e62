package accounting

import (
	"testing"

	"github.com/shopspring/decimal"

	"leasebackend/internal/model"
)

func TestLeaseSpan(t *testing.T) {
	periods := []model.RentPeriod{
		rentPeriod(date(2025, 7, 1), date(2025, 12, 31), "12000"),
		rentPeriod(date(2025, 1, 1), date(2025, 6, 30), "10000"),
	}

	start, end, ok := LeaseSpan(periods)
	if !ok {
		t.Fatal("expected ok for non-empty periods")
	}
	if !start.Equal(date(2025, 1, 1)) || !end.Equal(date(2025, 12, 31)) {
		t.Errorf("span = [%s, %s]", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	if _, _, ok := LeaseSpan(nil); ok {
		t.Error("expected ok=false for empty periods")
	}
}

func TestStraightLineMonthlyWholeYear(t *testing.T) {
	// 126,000 gross over exactly 12 months at 5% VAT: 120,000 net / 12
	got := StraightLineMonthly(
		decimal.RequireFromString("126000"),
		decimal.RequireFromString("0.05"),
		date(2025, 1, 1), date(2025, 12, 31),
	)
	assertDecimal(t, got, "10000.00")
}

func TestStraightLineMonthlySameMonthSpan(t *testing.T) {
	// Start and end inside one month still sum the first and last ratios:
	// (30-10+1)/30 + 20/30 = 41/30 months
	got := StraightLineMonthly(
		decimal.RequireFromString("10500"),
		decimal.RequireFromString("0.05"),
		date(2025, 4, 10), date(2025, 4, 20),
	)
	// 10000 net over 41/30 months
	assertDecimal(t, got, "7317.07")
}

func TestStraightLineMonthlyFractionalEnds(t *testing.T) {
	// Half of June (15/30) + July..Nov (5 whole) + half of December (15.5/31)
	got := StraightLineMonthly(
		decimal.RequireFromString("6300"),
		decimal.RequireFromString("0.05"),
		date(2025, 6, 16), date(2025, 12, 15),
	)
	// 6000 net over 15/30 + 5 + 15/31 = 5.98387... months
	assertDecimal(t, got, "1002.70")
}

func TestStraightLineMonthlyDegenerateSpan(t *testing.T) {
	got := StraightLineMonthly(
		decimal.RequireFromString("126000"),
		decimal.RequireFromString("0.05"),
		date(2025, 12, 31), date(2025, 1, 1),
	)
	assertDecimal(t, got, "0")
}

func TestAdjustedMonthlyIncome(t *testing.T) {
	totalRent := decimal.RequireFromString("126000")
	rate := decimal.RequireFromString("0.05")
	start, end := date(2025, 3, 1), date(2026, 2, 28)

	// Month ends before the lease starts: nothing recognized
	assertDecimal(t, AdjustedMonthlyIncome(totalRent, rate, start, end, 2025, 2), "0")

	// Any month from commencement on recognizes the constant amount
	first := AdjustedMonthlyIncome(totalRent, rate, start, end, 2025, 3)
	mid := AdjustedMonthlyIncome(totalRent, rate, start, end, 2025, 9)
	if !first.Equal(mid) {
		t.Errorf("straight-line income not constant: %s vs %s", first, mid)
	}
	if !first.IsPositive() {
		t.Errorf("expected positive income, got %s", first)
	}
}
