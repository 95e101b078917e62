package repository

import (
	"context"

	"leasebackend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ContractRepository interface {
	Create(ctx context.Context, contract *model.Contract) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Contract, error)
	FindByIDWithPeriods(ctx context.Context, id uuid.UUID) (*model.Contract, error)
	FindByContractNo(ctx context.Context, contractNo string) (*model.Contract, error)
	List(ctx context.Context, status string, page, limit int) ([]model.Contract, int64, error)
	ListCreatedBetween(ctx context.Context, from, to string) ([]model.Contract, error)
	Update(ctx context.Context, contract *model.Contract) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetStampDutyIfUnset(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error)
	ReplacePeriods(ctx context.Context, contractID uuid.UUID, rent []model.RentPeriod, free []model.FreeRentPeriod) error
}

type contractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) Create(ctx context.Context, contract *model.Contract) error {
	return GetDB(ctx, r.db).Create(contract).Error
}

func (r *contractRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	if err := GetDB(ctx, r.db).First(&contract, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) FindByIDWithPeriods(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	err := GetDB(ctx, r.db).
		Preload("RentPeriods", func(db *gorm.DB) *gorm.DB { return db.Order("start_date asc") }).
		Preload("FreeRentPeriods", func(db *gorm.DB) *gorm.DB { return db.Order("start_date asc") }).
		First(&contract, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) FindByContractNo(ctx context.Context, contractNo string) (*model.Contract, error) {
	var contract model.Contract
	if err := GetDB(ctx, r.db).First(&contract, "contract_no = ?", contractNo).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) List(ctx context.Context, status string, page, limit int) ([]model.Contract, int64, error) {
	var contracts []model.Contract
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.Contract{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetch := db.Preload("RentPeriods").Preload("FreeRentPeriods")
	if status != "" {
		fetch = fetch.Where("status = ?", status)
	}
	if err := fetch.Order("created_at desc").Offset(offset).Limit(limit).Find(&contracts).Error; err != nil {
		return nil, 0, err
	}

	return contracts, total, nil
}

func (r *contractRepository) ListCreatedBetween(ctx context.Context, from, to string) ([]model.Contract, error) {
	var contracts []model.Contract
	err := GetDB(ctx, r.db).
		Where("created_at >= ?::date AND created_at <= ?::date + interval '1 day'", from, to).
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *contractRepository) Update(ctx context.Context, contract *model.Contract) error {
	return GetDB(ctx, r.db).Save(contract).Error
}

func (r *contractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.Contract{}, "id = ?", id).Error
}

// SetStampDutyIfUnset writes the cached stamp-duty figure only when it is
// still zero, returning whether a write happened. The WHERE clause makes the
// one-shot semantics race-safe.
func (r *contractRepository) SetStampDutyIfUnset(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	res := GetDB(ctx, r.db).Model(&model.Contract{}).
		Where("id = ? AND initial_stamp_duty = 0", id).
		Update("initial_stamp_duty", amount)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *contractRepository) ReplacePeriods(ctx context.Context, contractID uuid.UUID, rent []model.RentPeriod, free []model.FreeRentPeriod) error {
	db := GetDB(ctx, r.db)
	if err := db.Delete(&model.RentPeriod{}, "contract_id = ?", contractID).Error; err != nil {
		return err
	}
	if err := db.Delete(&model.FreeRentPeriod{}, "contract_id = ?", contractID).Error; err != nil {
		return err
	}
	if len(rent) > 0 {
		if err := db.Create(&rent).Error; err != nil {
			return err
		}
	}
	if len(free) > 0 {
		if err := db.Create(&free).Error; err != nil {
			return err
		}
	}
	return nil
}
