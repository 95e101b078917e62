package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus enum constants
const (
	InvoiceValid  = "VALID"
	InvoiceVoided = "VOIDED"
)

// InvoiceDetail records an issued rent invoice. Issuance triggers an
// INVOICE-type VAT ledger entry; the invoice number doubles as the VAT
// correlation id. Unique invoice numbers prevent double issuance.
type InvoiceDetail struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceNumber string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"invoice_number"`
	ContractID    uuid.UUID `gorm:"type:uuid;not null;index" json:"contract_id"`
	Contract      *Contract `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"-"`

	InvoiceDate time.Time       `gorm:"type:date;not null" json:"invoice_date"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_amount"` // VAT-inclusive
	VATAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"vat_amount"`

	// Optional linkage back to the payment and recognition month this
	// invoice covers.
	RelatePaymentID   *uuid.UUID `gorm:"type:uuid" json:"relate_payment_id"`
	RelateIncomeYear  *int       `json:"relate_income_year"`
	RelateIncomeMonth *int       `json:"relate_income_month"`

	Status    string    `gorm:"type:varchar(20);not null;default:'VALID'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
