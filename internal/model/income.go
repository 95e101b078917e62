package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeSource enum constants
const (
	IncomeSourceMonthly = "MONTHLY"
	IncomeSourceManual  = "MANUAL"
)

// MonthlyIncome holds the recognized income of one contract-month in both
// bases. One row per (contract, year, month); rows are never updated after
// creation.
type MonthlyIncome struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ContractID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_monthly_income_key" json:"contract_id"`
	Contract   *Contract `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"-"`
	Year       int       `gorm:"not null;uniqueIndex:idx_monthly_income_key" json:"year"`
	Month      int       `gorm:"not null;uniqueIndex:idx_monthly_income_key" json:"month"`

	// AccountingIncome and TaxIncome are both VAT-exclusive.
	AccountingIncome decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"accounting_income"`
	TaxIncome        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"tax_income"`

	TaxRate  decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"tax_rate"`
	IsAdjust bool            `gorm:"not null" json:"is_adjust"`

	CreatedAt time.Time `json:"created_at"`
}

// IncomeRecord is the append-only audit trail of income recognition, one row
// per recognized month, dated at that month's last day.
type IncomeRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ContractID uuid.UUID `gorm:"type:uuid;not null;index" json:"contract_id"`
	Contract   *Contract `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"-"`
	IncomeDate time.Time `gorm:"type:date;not null" json:"income_date"`

	AccountingIncome decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"accounting_income"`
	TaxIncome        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"tax_income"`

	SourceType string     `gorm:"type:varchar(20);not null" json:"source_type"` // MONTHLY, MANUAL
	SourceID   *uuid.UUID `gorm:"type:uuid" json:"source_id"`                   // MonthlyIncome row that produced this entry
	IsInvoiced bool       `gorm:"default:false" json:"is_invoiced"`

	CreatedAt time.Time `json:"created_at"`
}
