package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateContract     = "CREATE_CONTRACT"
	ActionUpdateContract     = "UPDATE_CONTRACT"
	ActionDeleteContract     = "DELETE_CONTRACT"
	ActionRecordPayment      = "RECORD_PAYMENT"
	ActionRecognizeIncome    = "RECOGNIZE_INCOME"
	ActionBookVAT            = "BOOK_VAT"
	ActionMarkVATPaid        = "MARK_VAT_PAID"
	ActionComputeStampDuty   = "COMPUTE_STAMP_DUTY"
	ActionRegisterInvoice    = "REGISTER_INVOICE"
	ActionUpsertDeposit      = "UPSERT_DEPOSIT"
	ActionComputeTaxDiff     = "COMPUTE_TAX_DIFF"
	ActionRegisterReceivable = "REGISTER_RECEIVABLE"
)

// AuditLog tracks Who, What, and When for mutations of contracts and the
// accounting ledgers.
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // nullable for scheduled jobs
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(64);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"` // serialized JSON payload
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
