package accounting

import (
	"time"

	"github.com/shopspring/decimal"

	"leasebackend/internal/model"
)

// LeaseSpan returns the overall lease interval, from the earliest rent
// period start to the latest rent period end. ok is false when the contract
// has no rent periods.
func LeaseSpan(rentPeriods []model.RentPeriod) (start, end time.Time, ok bool) {
	if len(rentPeriods) == 0 {
		return time.Time{}, time.Time{}, false
	}
	start = DateOf(rentPeriods[0].StartDate)
	end = DateOf(rentPeriods[0].EndDate)
	for _, rp := range rentPeriods[1:] {
		if s := DateOf(rp.StartDate); s.Before(start) {
			start = s
		}
		if e := DateOf(rp.EndDate); e.After(end) {
			end = e
		}
	}
	return start, end, true
}

// StraightLineMonthly returns the constant monthly book income of a contract
// flagged for income adjustment: the VAT-exclusive total rent spread evenly
// over the fractional lease months. First and last months count as the
// fraction of the month the lease covers; months in between count whole.
// Returns zero when the span is degenerate.
func StraightLineMonthly(totalRent, taxRate decimal.Decimal, start, end time.Time) decimal.Decimal {
	start = DateOf(start)
	end = DateOf(end)
	if end.Before(start) {
		return decimal.Zero
	}

	firstDays := MonthEndOf(start).Day() - start.Day() + 1
	firstTotal := DaysInMonth(start.Year(), int(start.Month()))
	firstRatio := decimal.NewFromInt(int64(firstDays)).Div(decimal.NewFromInt(int64(firstTotal)))

	lastDays := end.Day()
	lastTotal := DaysInMonth(end.Year(), int(end.Month()))
	lastRatio := decimal.NewFromInt(int64(lastDays)).Div(decimal.NewFromInt(int64(lastTotal)))

	// First and last ratios are summed even when start and end share a
	// month, so a same-month span counts both partial ratios.
	monthDiff := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	middleMonths := monthDiff - 1
	if middleMonths < 0 {
		middleMonths = 0
	}

	totalMonths := firstRatio.Add(decimal.NewFromInt(int64(middleMonths))).Add(lastRatio)
	if !totalMonths.IsPositive() {
		return decimal.Zero
	}

	denom := decimal.NewFromInt(1).Add(taxRate)
	if denom.IsZero() {
		return decimal.Zero
	}
	return totalRent.Div(denom).Div(totalMonths).Round(2)
}

// AdjustedMonthlyIncome is StraightLineMonthly gated on lease commencement:
// months that end before the lease starts recognize nothing.
func AdjustedMonthlyIncome(totalRent, taxRate decimal.Decimal, start, end time.Time, year, month int) decimal.Decimal {
	if DateOf(start).After(MonthEnd(year, month)) {
		return decimal.Zero
	}
	return StraightLineMonthly(totalRent, taxRate, start, end)
}
