package repository

import (
	"context"
	"time"

	"leasebackend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.PaymentRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PaymentRecord, error)
	ListByContract(ctx context.Context, contractID uuid.UUID, page, limit int) ([]model.PaymentRecord, int64, error)
	SumRentThrough(ctx context.Context, contractID uuid.UUID, through time.Time) (decimal.Decimal, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.PaymentRecord) error {
	return GetDB(ctx, r.db).Create(payment).Error
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PaymentRecord, error) {
	var payment model.PaymentRecord
	if err := GetDB(ctx, r.db).First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) ListByContract(ctx context.Context, contractID uuid.UUID, page, limit int) ([]model.PaymentRecord, int64, error) {
	var payments []model.PaymentRecord
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.PaymentRecord{}).Where("contract_id = ?", contractID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := db.Where("contract_id = ?", contractID).
		Order("pay_date desc").Offset(offset).Limit(limit).Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// SumRentThrough totals rent-type receipts up to and including the given
// date. Used by the overpaid-VAT comparison.
func (r *paymentRepository) SumRentThrough(ctx context.Context, contractID uuid.UUID, through time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := GetDB(ctx, r.db).Model(&model.PaymentRecord{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("contract_id = ? AND payment_type = ? AND pay_date <= ?", contractID, model.PaymentTypeRent, through).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
