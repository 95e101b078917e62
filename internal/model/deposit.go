package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepositDetail breaks a contract's deposit into the contracted amount and
// what was actually collected. One row per contract.
type DepositDetail struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ContractID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"contract_id"`
	Contract   *Contract `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"-"`

	PlannedDeposit decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"planned_deposit"`
	ActualDeposit  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"actual_deposit"`
	DepositDate    *time.Time      `gorm:"type:date" json:"deposit_date"`
	Remark         string          `gorm:"type:text" json:"remark"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
