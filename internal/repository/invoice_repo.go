package repository

import (
	"context"

	"leasebackend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.InvoiceDetail) error
	FindByNumber(ctx context.Context, invoiceNumber string) (*model.InvoiceDetail, error)
	ListByContract(ctx context.Context, contractID uuid.UUID, page, limit int) ([]model.InvoiceDetail, int64, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.InvoiceDetail) error {
	return GetDB(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*model.InvoiceDetail, error) {
	var invoice model.InvoiceDetail
	if err := GetDB(ctx, r.db).First(&invoice, "invoice_number = ?", invoiceNumber).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) ListByContract(ctx context.Context, contractID uuid.UUID, page, limit int) ([]model.InvoiceDetail, int64, error) {
	var invoices []model.InvoiceDetail
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.InvoiceDetail{}).Where("contract_id = ?", contractID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := db.Where("contract_id = ?", contractID).
		Order("invoice_date desc").Offset(offset).Limit(limit).Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}
