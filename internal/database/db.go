package database

import (
	"leasebackend/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM and migrates
// the schema.
func NewConnection(dsn string, log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Contract{},
		&model.RentPeriod{},
		&model.FreeRentPeriod{},
		&model.PaymentRecord{},
		&model.MonthlyIncome{},
		&model.IncomeRecord{},
		&model.VATRecord{},
		&model.TaxDiff{},
		&model.InvoiceDetail{},
		&model.DepositDetail{},
		&model.AuditLog{},
	)
	if err != nil {
		log.WithError(err).Warn("failed to auto-migrate models")
	}

	return db, nil
}
