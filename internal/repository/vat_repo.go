package repository

import (
	"context"
	"time"

	"leasebackend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VATFilter narrows ledger listings.
type VATFilter struct {
	ContractID *uuid.UUID
	RelateType string
	Status     string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Limit      int
}

type VATRepository interface {
	Create(ctx context.Context, record *model.VATRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.VATRecord, error)
	List(ctx context.Context, filter VATFilter) ([]model.VATRecord, int64, error)
	ListPendingOverpaid(ctx context.Context, contractID uuid.UUID) ([]model.VATRecord, error)
	MarkPaid(ctx context.Context, ids []uuid.UUID, paymentDate time.Time) (int64, error)
}

type vatRepository struct {
	db *gorm.DB
}

func NewVATRepository(db *gorm.DB) VATRepository {
	return &vatRepository{db: db}
}

func (r *vatRepository) Create(ctx context.Context, record *model.VATRecord) error {
	return GetDB(ctx, r.db).Create(record).Error
}

func (r *vatRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.VATRecord, error) {
	var record model.VATRecord
	if err := GetDB(ctx, r.db).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *vatRepository) List(ctx context.Context, filter VATFilter) ([]model.VATRecord, int64, error) {
	db := GetDB(ctx, r.db)

	apply := func(q *gorm.DB) *gorm.DB {
		if filter.ContractID != nil {
			q = q.Where("contract_id = ?", *filter.ContractID)
		}
		if filter.RelateType != "" {
			q = q.Where("relate_type = ?", filter.RelateType)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if filter.DateFrom != nil {
			q = q.Where("tax_obligation_date >= ?", *filter.DateFrom)
		}
		if filter.DateTo != nil {
			q = q.Where("tax_obligation_date <= ?", *filter.DateTo)
		}
		return q
	}

	var total int64
	if err := apply(db.Model(&model.VATRecord{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []model.VATRecord
	offset := (filter.Page - 1) * filter.Limit
	err := apply(db).Order("tax_obligation_date desc, created_at desc").
		Offset(offset).Limit(filter.Limit).Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// ListPendingOverpaid returns the contract's pending OVERPAID rows that no
// OVERPAID_REVERSE row references yet, oldest obligation first. This is the
// FIFO input of the reversal walk.
func (r *vatRepository) ListPendingOverpaid(ctx context.Context, contractID uuid.UUID) ([]model.VATRecord, error) {
	var records []model.VATRecord
	err := GetDB(ctx, r.db).
		Where("contract_id = ? AND relate_type = ? AND status = ?",
			contractID, model.VATTriggerOverpaid, model.VATStatusPending).
		Where("id::text NOT IN (?)",
			GetDB(ctx, r.db).Model(&model.VATRecord{}).
				Select("relate_id").
				Where("contract_id = ? AND relate_type = ?", contractID, model.VATTriggerOverpaidReverse),
		).
		Order("tax_obligation_date asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// MarkPaid transitions the given pending records to PAID. Already-paid rows
// are left untouched; the transition is terminal.
func (r *vatRepository) MarkPaid(ctx context.Context, ids []uuid.UUID, paymentDate time.Time) (int64, error) {
	res := GetDB(ctx, r.db).Model(&model.VATRecord{}).
		Where("id IN ? AND status = ?", ids, model.VATStatusPending).
		Updates(map[string]interface{}{
			"status":       model.VATStatusPaid,
			"payment_date": paymentDate,
		})
	return res.RowsAffected, res.Error
}
