package repository

import (
	"context"

	"leasebackend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DepositRepository interface {
	Upsert(ctx context.Context, deposit *model.DepositDetail) error
	FindByContract(ctx context.Context, contractID uuid.UUID) (*model.DepositDetail, error)
}

type depositRepository struct {
	db *gorm.DB
}

func NewDepositRepository(db *gorm.DB) DepositRepository {
	return &depositRepository{db: db}
}

// Upsert keeps the one-row-per-contract invariant at the storage layer.
func (r *depositRepository) Upsert(ctx context.Context, deposit *model.DepositDetail) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contract_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"planned_deposit", "actual_deposit", "deposit_date", "remark", "updated_at"}),
	}).Create(deposit).Error
}

func (r *depositRepository) FindByContract(ctx context.Context, contractID uuid.UUID) (*model.DepositDetail, error) {
	var deposit model.DepositDetail
	if err := GetDB(ctx, r.db).First(&deposit, "contract_id = ?", contractID).Error; err != nil {
		return nil, err
	}
	return &deposit, nil
}
