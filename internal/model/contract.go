package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContractStatus enum constants
const (
	ContractActive     = "ACTIVE"
	ContractTerminated = "TERMINATED"
)

// Contract represents a property lease contract. Rent periods and free-rent
// periods are owned by the contract and cascade-deleted with it, as do all
// ledger rows derived from it.
type Contract struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ContractNo string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"contract_no"`

	CustomerName string `gorm:"type:varchar(255);not null" json:"customer_name"`
	RoomNumber   string `gorm:"type:varchar(50)" json:"room_number"`

	// TaxRate is the VAT rate applied to this contract's rent, e.g. 0.05 = 5%.
	TaxRate decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"tax_rate"`

	// NeedsIncomeAdjustment switches book recognition to straight-line
	// smoothing over the whole lease span.
	NeedsIncomeAdjustment bool `gorm:"default:false" json:"needs_income_adjustment"`

	// TotalRent is the VAT-inclusive rent contracted over the full lease.
	TotalRent decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_rent"`

	// InitialStampDuty caches the one-shot stamp duty figure. Zero means
	// not yet computed.
	InitialStampDuty decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"initial_stamp_duty"`

	DepositAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"deposit_amount"`

	Status string `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status"`

	RentPeriods     []RentPeriod     `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"rent_periods,omitempty"`
	FreeRentPeriods []FreeRentPeriod `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"free_rent_periods,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RentPeriod is a fixed-rent window within a contract. End date is inclusive.
// A mid-lease rent change is modelled as two adjacent periods.
type RentPeriod struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ContractID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"contract_id"`
	StartDate   time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time       `gorm:"type:date;not null" json:"end_date"`
	MonthlyRent decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"monthly_rent"`
	CreatedAt   time.Time       `json:"created_at"`
}

// FreeRentPeriod is a rent-free window. It may overlap one or more rent
// periods; overlapping days do not earn rent.
type FreeRentPeriod struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ContractID uuid.UUID `gorm:"type:uuid;not null;index" json:"contract_id"`
	StartDate  time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate    time.Time `gorm:"type:date;not null" json:"end_date"`
	Remark     string    `gorm:"type:text" json:"remark"`
	CreatedAt  time.Time `json:"created_at"`
}
