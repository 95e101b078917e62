// Package accounting holds the pure lease tax/accounting math: proration,
// straight-line recognition, VAT portions and obligation dates, stamp duty
// and the book-vs-tax difference breakdown. Nothing here touches storage;
// the services feed data in and persist what comes out.
package accounting

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"leasebackend/internal/model"
)

var (
	// ErrNoRentPeriods means the contract cannot be accounted for at all.
	ErrNoRentPeriods = errors.New("contract has no rent periods")
	// ErrInvalidTaxRate means the contract's VAT rate is outside (0, 1].
	ErrInvalidTaxRate = errors.New("contract tax rate must be positive")
)

// ValidateContract rejects contracts the engine cannot account for. These
// are construction-time failures, not per-call guards.
func ValidateContract(c *model.Contract) error {
	if len(c.RentPeriods) == 0 {
		return ErrNoRentPeriods
	}
	if !c.TaxRate.IsPositive() || c.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return ErrInvalidTaxRate
	}
	return nil
}

// Prorate computes the valid rentable days and the VAT-inclusive tax-basis
// rent of one calendar month. Each rent period contributes
// monthly_rent * valid_days / days_in_month for its overlap with the month,
// with days covered by free-rent periods subtracted (floored at zero).
// Multiple periods overlapping the same month sum their contributions.
func Prorate(rentPeriods []model.RentPeriod, freePeriods []model.FreeRentPeriod, year, month int) (int, decimal.Decimal) {
	monthStart := MonthStart(year, month)
	monthEnd := MonthEnd(year, month)
	daysInMonth := decimal.NewFromInt(int64(DaysInMonth(year, month)))

	totalValidDays := 0
	taxRent := decimal.Zero

	for _, rp := range rentPeriods {
		overlap := overlapDays(DateOf(rp.StartDate), DateOf(rp.EndDate), monthStart, monthEnd)
		if overlap == 0 {
			continue
		}

		freeDays := freeDaysWithin(freePeriods, maxDate(DateOf(rp.StartDate), monthStart), minDate(DateOf(rp.EndDate), monthEnd))
		validDays := overlap - freeDays
		if validDays < 0 {
			validDays = 0
		}
		totalValidDays += validDays

		taxRent = taxRent.Add(rp.MonthlyRent.Mul(decimal.NewFromInt(int64(validDays))).Div(daysInMonth))
	}

	return totalValidDays, taxRent.Round(2)
}

// freeDaysWithin sums the days of [start, end] covered by any free-rent
// period. Free periods are assumed non-overlapping with each other.
func freeDaysWithin(freePeriods []model.FreeRentPeriod, start, end time.Time) int {
	days := 0
	for _, fp := range freePeriods {
		days += overlapDays(start, end, DateOf(fp.StartDate), DateOf(fp.EndDate))
	}
	return days
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
