package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentType enum constants. Only rent-type payments count toward the
// overpaid-VAT comparison.
const (
	PaymentTypeRent    = "RENT"
	PaymentTypeDeposit = "DEPOSIT"
	PaymentTypeOther   = "OTHER"
)

// PaymentRecord is a cash receipt against a contract.
type PaymentRecord struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ContractID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"contract_id"`
	Contract    *Contract       `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"-"`
	PayDate     time.Time       `gorm:"type:date;not null;index" json:"pay_date"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	PaymentType string          `gorm:"type:varchar(20);not null;index" json:"payment_type"` // RENT, DEPOSIT, OTHER
	Remark      string          `gorm:"type:text" json:"remark"`
	CreatedAt   time.Time       `json:"created_at"`
}
