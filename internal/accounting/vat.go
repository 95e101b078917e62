package accounting

import (
	"time"

	"github.com/shopspring/decimal"

	"leasebackend/internal/model"
)

// StampDutyRate is the per-mille rate applied once to a contract's total
// rent.
var StampDutyRate = decimal.NewFromFloat(0.001)

// DefaultIncomeTaxRate is the corporate income tax rate used for deferred
// tax on book-vs-tax timing differences.
var DefaultIncomeTaxRate = decimal.NewFromFloat(0.25)

// ExcludeVAT strips VAT from a gross amount: gross / (1 + rate), rounded to
// two decimals. Returns zero when the denominator degenerates.
func ExcludeVAT(gross, rate decimal.Decimal) decimal.Decimal {
	denom := decimal.NewFromInt(1).Add(rate)
	if denom.IsZero() {
		return decimal.Zero
	}
	return gross.Div(denom).Round(2)
}

// VATPortion extracts the VAT contained in a gross amount:
// gross / (1 + rate) * rate, rounded to two decimals.
func VATPortion(gross, rate decimal.Decimal) decimal.Decimal {
	denom := decimal.NewFromInt(1).Add(rate)
	if denom.IsZero() {
		return decimal.Zero
	}
	return gross.Div(denom).Mul(rate).Round(2)
}

// TaxObligationDate applies the earliest-of rule. Accrued receivables are
// due at the trigger month's end; cash receipts and invoices at the earlier
// of the event date and that month's end.
func TaxObligationDate(relateType string, eventDate time.Time) time.Time {
	eventDate = DateOf(eventDate)
	monthEnd := MonthEndOf(eventDate)
	switch relateType {
	case model.VATTriggerPayment, model.VATTriggerInvoice:
		return minDate(eventDate, monthEnd)
	default:
		return monthEnd
	}
}

// StampDuty computes the one-time stamp duty on the contract's total rent.
func StampDuty(totalRent decimal.Decimal) decimal.Decimal {
	return totalRent.Mul(StampDutyRate).Round(2)
}

// DiffBreakdown is the monthly book-vs-tax reconciliation.
type DiffBreakdown struct {
	AccountingIncome decimal.Decimal
	TaxIncome        decimal.Decimal
	DiffAmount       decimal.Decimal
	DeferredTax      decimal.Decimal
	ToBeSettledVAT   decimal.Decimal
	AdjustVAT        decimal.Decimal
}

// ComputeDiff derives the timing difference, its deferred-tax effect and the
// VAT carry-forward adjustments from a month's recognized income pair.
func ComputeDiff(accountingIncome, taxIncome, vatRate, incomeTaxRate decimal.Decimal) DiffBreakdown {
	diff := accountingIncome.Sub(taxIncome).Round(2)
	return DiffBreakdown{
		AccountingIncome: accountingIncome,
		TaxIncome:        taxIncome,
		DiffAmount:       diff,
		DeferredTax:      diff.Mul(incomeTaxRate).Round(2),
		ToBeSettledVAT:   accountingIncome.Mul(vatRate).Round(2),
		AdjustVAT:        taxIncome.Mul(vatRate).Round(2),
	}
}
