package repository

import (
	"context"

	"leasebackend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IncomeRepository interface {
	FindMonthly(ctx context.Context, contractID uuid.UUID, year, month int) (*model.MonthlyIncome, error)
	CreateMonthly(ctx context.Context, income *model.MonthlyIncome) error
	CreateRecord(ctx context.Context, record *model.IncomeRecord) error
	ListMonthlyByContract(ctx context.Context, contractID uuid.UUID) ([]model.MonthlyIncome, error)
}

type incomeRepository struct {
	db *gorm.DB
}

func NewIncomeRepository(db *gorm.DB) IncomeRepository {
	return &incomeRepository{db: db}
}

func (r *incomeRepository) FindMonthly(ctx context.Context, contractID uuid.UUID, year, month int) (*model.MonthlyIncome, error) {
	var income model.MonthlyIncome
	err := GetDB(ctx, r.db).
		First(&income, "contract_id = ? AND year = ? AND month = ?", contractID, year, month).Error
	if err != nil {
		return nil, err
	}
	return &income, nil
}

func (r *incomeRepository) CreateMonthly(ctx context.Context, income *model.MonthlyIncome) error {
	return GetDB(ctx, r.db).Create(income).Error
}

func (r *incomeRepository) CreateRecord(ctx context.Context, record *model.IncomeRecord) error {
	return GetDB(ctx, r.db).Create(record).Error
}

func (r *incomeRepository) ListMonthlyByContract(ctx context.Context, contractID uuid.UUID) ([]model.MonthlyIncome, error) {
	var rows []model.MonthlyIncome
	err := GetDB(ctx, r.db).
		Where("contract_id = ?", contractID).
		Order("year asc, month asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
