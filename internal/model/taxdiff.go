package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxDiff reconciles book-vs-tax income for one contract-month into a
// deferred-tax figure and the VAT carry-forward adjustments. Write-once per
// (contract, year, month).
type TaxDiff struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ContractID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tax_diff_key" json:"contract_id"`
	Contract   *Contract `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"-"`
	Year       int       `gorm:"not null;uniqueIndex:idx_tax_diff_key" json:"year"`
	Month      int       `gorm:"not null;uniqueIndex:idx_tax_diff_key" json:"month"`

	AccountingIncome decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"accounting_income"`
	TaxIncome        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"tax_income"`

	// DiffAmount = accounting - tax. DeferredTax = diff x income tax rate.
	DiffAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"diff_amount"`
	DeferredTax decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"deferred_tax"`

	// ToBeSettledVAT accrues on the book income; AdjustVAT relieves it on
	// the tax income.
	ToBeSettledVAT decimal.Decimal `gorm:"column:to_be_settled_vat;type:decimal(18,2);not null" json:"to_be_settled_vat"`
	AdjustVAT      decimal.Decimal `gorm:"column:adjust_vat;type:decimal(18,2);not null" json:"adjust_vat"`

	CreatedAt time.Time `json:"created_at"`
}
