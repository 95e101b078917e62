package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VAT trigger type enum constants. Receivable accrual, cash receipt and
// invoice issuance book VAT under the earliest-of rule; OVERPAID books VAT
// on rent collected ahead of recognition, and OVERPAID_REVERSE pays it back
// down as income catches up.
const (
	VATTriggerReceivable      = "RECEIVABLE"
	VATTriggerPayment         = "PAYMENT"
	VATTriggerInvoice         = "INVOICE"
	VATTriggerOverpaid        = "OVERPAID"
	VATTriggerOverpaidReverse = "OVERPAID_REVERSE"
)

// VAT status enum constants. PENDING -> PAID is the only transition and it
// is terminal.
const (
	VATStatusPending = "PENDING"
	VATStatusPaid    = "PAID"
)

// VATRecord is one row of the append-only VAT obligation ledger. Amounts are
// positive except for OVERPAID_REVERSE rows, which are negative. RelateID
// correlates back to the triggering entity: a payment id, an invoice number,
// a generated token for OVERPAID rows, or the original OVERPAID row's id for
// OVERPAID_REVERSE rows.
//
// The composite unique index makes the write-once idempotence race-safe at
// the storage layer.
type VATRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ContractID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vat_dedupe;index" json:"contract_id"`
	Contract   *Contract `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"-"`

	RelateType string `gorm:"type:varchar(20);not null;uniqueIndex:idx_vat_dedupe;index" json:"relate_type"`
	RelateID   string `gorm:"type:varchar(64);not null;uniqueIndex:idx_vat_dedupe" json:"relate_id"`

	VATAmount decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"vat_amount"`

	TaxObligationDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_vat_dedupe;index" json:"tax_obligation_date"`

	Status      string     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	PaymentDate *time.Time `gorm:"type:date" json:"payment_date"`
	Remark      string     `gorm:"type:text" json:"remark"`

	CreatedAt time.Time `json:"created_at"`
}
