package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"leasebackend/internal/accounting"
	"leasebackend/internal/middleware"
	"leasebackend/internal/model"
	"leasebackend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// --- DTOs ---

type UpsertDepositRequest struct {
	ContractID     string `json:"contract_id" binding:"required"`
	PlannedDeposit string `json:"planned_deposit" binding:"required"`
	ActualDeposit  string `json:"actual_deposit" binding:"required"`
	DepositDate    string `json:"deposit_date"` // YYYY-MM-DD, empty when not yet collected
	Remark         string `json:"remark"`
}

type DepositResponse struct {
	ContractID     string  `json:"contract_id"`
	PlannedDeposit string  `json:"planned_deposit"`
	ActualDeposit  string  `json:"actual_deposit"`
	DepositDate    *string `json:"deposit_date"`
	Remark         string  `json:"remark"`
	Shortfall      string  `json:"shortfall"` // planned - actual, floored at zero
}

// --- Interface ---

type DepositService interface {
	UpsertDeposit(ctx context.Context, req UpsertDepositRequest) (DepositResponse, error)
	GetDeposit(ctx context.Context, contractID string) (DepositResponse, error)
}

type depositService struct {
	depositRepo  repository.DepositRepository
	contractRepo repository.ContractRepository
	auditRepo    repository.AuditRepository
	log          *logrus.Logger
}

func NewDepositService(
	depositRepo repository.DepositRepository,
	contractRepo repository.ContractRepository,
	auditRepo repository.AuditRepository,
	log *logrus.Logger,
) DepositService {
	return &depositService{
		depositRepo:  depositRepo,
		contractRepo: contractRepo,
		auditRepo:    auditRepo,
		log:          log,
	}
}

// --- Implementation ---

func (s *depositService) UpsertDeposit(ctx context.Context, req UpsertDepositRequest) (DepositResponse, error) {
	contractID, err := uuid.Parse(req.ContractID)
	if err != nil {
		return DepositResponse{}, fmt.Errorf("invalid contract id: %w", err)
	}
	if _, err := s.contractRepo.FindByID(ctx, contractID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepositResponse{}, fmt.Errorf("contract not found")
		}
		return DepositResponse{}, fmt.Errorf("failed to fetch contract: %w", err)
	}

	planned, err := decimal.NewFromString(req.PlannedDeposit)
	if err != nil {
		return DepositResponse{}, fmt.Errorf("invalid planned_deposit: %w", err)
	}
	actual, err := decimal.NewFromString(req.ActualDeposit)
	if err != nil {
		return DepositResponse{}, fmt.Errorf("invalid actual_deposit: %w", err)
	}
	if planned.IsNegative() || actual.IsNegative() {
		return DepositResponse{}, fmt.Errorf("deposit amounts must not be negative")
	}

	var depositDate *time.Time
	if req.DepositDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DepositDate)
		if err != nil {
			return DepositResponse{}, fmt.Errorf("invalid deposit_date format (expected YYYY-MM-DD): %w", err)
		}
		d := accounting.DateOf(parsed)
		depositDate = &d
	}

	deposit := model.DepositDetail{
		ContractID:     contractID,
		PlannedDeposit: planned,
		ActualDeposit:  actual,
		DepositDate:    depositDate,
		Remark:         req.Remark,
	}
	if err := s.depositRepo.Upsert(ctx, &deposit); err != nil {
		return DepositResponse{}, fmt.Errorf("failed to store deposit detail: %w", err)
	}

	detailsJSON, _ := json.Marshal(req)
	entry := model.AuditLog{
		Action:   model.ActionUpsertDeposit,
		EntityID: req.ContractID,
		Details:  string(detailsJSON),
	}
	if userID, ok := middleware.UserIDFromContext(ctx); ok && userID != "" {
		if parsed, parseErr := uuid.Parse(userID); parseErr == nil {
			entry.UserID = &parsed
		}
	}
	_ = s.auditRepo.Log(ctx, &entry)
	s.log.WithField("contract", req.ContractID).Info("deposit detail stored")

	return toDepositResponse(deposit), nil
}

func (s *depositService) GetDeposit(ctx context.Context, contractID string) (DepositResponse, error) {
	id, err := uuid.Parse(contractID)
	if err != nil {
		return DepositResponse{}, fmt.Errorf("invalid contract id: %w", err)
	}

	deposit, err := s.depositRepo.FindByContract(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepositResponse{}, fmt.Errorf("deposit detail not found")
		}
		return DepositResponse{}, fmt.Errorf("failed to fetch deposit detail: %w", err)
	}
	return toDepositResponse(*deposit), nil
}

// --- Helpers ---

func toDepositResponse(d model.DepositDetail) DepositResponse {
	shortfall := d.PlannedDeposit.Sub(d.ActualDeposit)
	if shortfall.IsNegative() {
		shortfall = decimal.Zero
	}
	resp := DepositResponse{
		ContractID:     d.ContractID.String(),
		PlannedDeposit: d.PlannedDeposit.StringFixed(2),
		ActualDeposit:  d.ActualDeposit.StringFixed(2),
		Remark:         d.Remark,
		Shortfall:      shortfall.StringFixed(2),
	}
	if d.DepositDate != nil {
		s := d.DepositDate.Format("2006-01-02")
		resp.DepositDate = &s
	}
	return resp
}
