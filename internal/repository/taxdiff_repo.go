package repository

import (
	"context"

	"leasebackend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaxDiffRepository interface {
	Find(ctx context.Context, contractID uuid.UUID, year, month int) (*model.TaxDiff, error)
	Create(ctx context.Context, diff *model.TaxDiff) error
	ListByContract(ctx context.Context, contractID uuid.UUID) ([]model.TaxDiff, error)
}

type taxDiffRepository struct {
	db *gorm.DB
}

func NewTaxDiffRepository(db *gorm.DB) TaxDiffRepository {
	return &taxDiffRepository{db: db}
}

func (r *taxDiffRepository) Find(ctx context.Context, contractID uuid.UUID, year, month int) (*model.TaxDiff, error) {
	var diff model.TaxDiff
	err := GetDB(ctx, r.db).
		First(&diff, "contract_id = ? AND year = ? AND month = ?", contractID, year, month).Error
	if err != nil {
		return nil, err
	}
	return &diff, nil
}

func (r *taxDiffRepository) Create(ctx context.Context, diff *model.TaxDiff) error {
	return GetDB(ctx, r.db).Create(diff).Error
}

func (r *taxDiffRepository) ListByContract(ctx context.Context, contractID uuid.UUID) ([]model.TaxDiff, error) {
	var rows []model.TaxDiff
	err := GetDB(ctx, r.db).
		Where("contract_id = ?", contractID).
		Order("year asc, month asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
