package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"leasebackend/internal/middleware"
	"leasebackend/internal/model"
	"leasebackend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// --- DTOs ---

type RentPeriodRequest struct {
	StartDate   string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate     string `json:"end_date" binding:"required"`   // YYYY-MM-DD
	MonthlyRent string `json:"monthly_rent" binding:"required"`
}

type FreeRentPeriodRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Remark    string `json:"remark"`
}

type CreateContractRequest struct {
	ContractNo            string                  `json:"contract_no" binding:"required"`
	CustomerName          string                  `json:"customer_name" binding:"required"`
	RoomNumber            string                  `json:"room_number"`
	TaxRate               string                  `json:"tax_rate" binding:"required"` // e.g. "0.05"
	NeedsIncomeAdjustment bool                    `json:"needs_income_adjustment"`
	TotalRent             string                  `json:"total_rent" binding:"required"`
	DepositAmount         string                  `json:"deposit_amount"`
	RentPeriods           []RentPeriodRequest     `json:"rent_periods" binding:"required,min=1"`
	FreeRentPeriods       []FreeRentPeriodRequest `json:"free_rent_periods"`
}

type UpdateContractRequest struct {
	CustomerName          string                  `json:"customer_name" binding:"required"`
	RoomNumber            string                  `json:"room_number"`
	TaxRate               string                  `json:"tax_rate" binding:"required"`
	NeedsIncomeAdjustment bool                    `json:"needs_income_adjustment"`
	TotalRent             string                  `json:"total_rent" binding:"required"`
	DepositAmount         string                  `json:"deposit_amount"`
	Status                string                  `json:"status" binding:"omitempty,oneof=ACTIVE TERMINATED"`
	RentPeriods           []RentPeriodRequest     `json:"rent_periods" binding:"required,min=1"`
	FreeRentPeriods       []FreeRentPeriodRequest `json:"free_rent_periods"`
}

type ContractResponse struct {
	ID                    string                 `json:"id"`
	ContractNo            string                 `json:"contract_no"`
	CustomerName          string                 `json:"customer_name"`
	RoomNumber            string                 `json:"room_number"`
	TaxRate               string                 `json:"tax_rate"`
	NeedsIncomeAdjustment bool                   `json:"needs_income_adjustment"`
	TotalRent             string                 `json:"total_rent"`
	InitialStampDuty      string                 `json:"initial_stamp_duty"`
	DepositAmount         string                 `json:"deposit_amount"`
	Status                string                 `json:"status"`
	RentPeriods           []model.RentPeriod     `json:"rent_periods"`
	FreeRentPeriods       []model.FreeRentPeriod `json:"free_rent_periods"`
	CreatedAt             string                 `json:"created_at"`
}

// --- Interface ---

type ContractService interface {
	CreateContract(ctx context.Context, req CreateContractRequest) (ContractResponse, error)
	GetContract(ctx context.Context, id string) (ContractResponse, error)
	ListContracts(ctx context.Context, status string, page, limit int) ([]ContractResponse, int64, error)
	UpdateContract(ctx context.Context, id string, req UpdateContractRequest) (ContractResponse, error)
	DeleteContract(ctx context.Context, id string) error
}

type contractService struct {
	contractRepo repository.ContractRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	log          *logrus.Logger
}

func NewContractService(
	contractRepo repository.ContractRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	log *logrus.Logger,
) ContractService {
	return &contractService{
		contractRepo: contractRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		log:          log,
	}
}

// --- Implementation ---

func (s *contractService) CreateContract(ctx context.Context, req CreateContractRequest) (ContractResponse, error) {
	taxRate, totalRent, deposit, err := parseContractAmounts(req.TaxRate, req.TotalRent, req.DepositAmount)
	if err != nil {
		return ContractResponse{}, err
	}

	rentPeriods, err := parseRentPeriods(req.RentPeriods)
	if err != nil {
		return ContractResponse{}, err
	}
	freePeriods, err := parseFreePeriods(req.FreeRentPeriods)
	if err != nil {
		return ContractResponse{}, err
	}

	if _, err := s.contractRepo.FindByContractNo(ctx, req.ContractNo); err == nil {
		return ContractResponse{}, fmt.Errorf("contract number %s already exists", req.ContractNo)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ContractResponse{}, fmt.Errorf("failed to check contract number: %w", err)
	}

	contract := model.Contract{
		ContractNo:            req.ContractNo,
		CustomerName:          req.CustomerName,
		RoomNumber:            req.RoomNumber,
		TaxRate:               taxRate,
		NeedsIncomeAdjustment: req.NeedsIncomeAdjustment,
		TotalRent:             totalRent,
		DepositAmount:         deposit,
		Status:                model.ContractActive,
		RentPeriods:           rentPeriods,
		FreeRentPeriods:       freePeriods,
	}

	if err := s.contractRepo.Create(ctx, &contract); err != nil {
		return ContractResponse{}, fmt.Errorf("failed to create contract: %w", err)
	}

	s.writeAuditLog(ctx, model.ActionCreateContract, contract.ID.String(), contract.ContractNo, req)
	s.log.WithField("contract", contract.ContractNo).Info("contract created")

	return toContractResponse(contract), nil
}

func (s *contractService) GetContract(ctx context.Context, id string) (ContractResponse, error) {
	contractID, err := uuid.Parse(id)
	if err != nil {
		return ContractResponse{}, fmt.Errorf("invalid contract id: %w", err)
	}
	contract, err := s.contractRepo.FindByIDWithPeriods(ctx, contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ContractResponse{}, fmt.Errorf("contract not found")
		}
		return ContractResponse{}, fmt.Errorf("failed to fetch contract: %w", err)
	}
	return toContractResponse(*contract), nil
}

func (s *contractService) ListContracts(ctx context.Context, status string, page, limit int) ([]ContractResponse, int64, error) {
	contracts, total, err := s.contractRepo.List(ctx, status, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contracts: %w", err)
	}

	res := make([]ContractResponse, 0, len(contracts))
	for _, c := range contracts {
		res = append(res, toContractResponse(c))
	}
	return res, total, nil
}

func (s *contractService) UpdateContract(ctx context.Context, id string, req UpdateContractRequest) (ContractResponse, error) {
	contractID, err := uuid.Parse(id)
	if err != nil {
		return ContractResponse{}, fmt.Errorf("invalid contract id: %w", err)
	}

	contract, err := s.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ContractResponse{}, fmt.Errorf("contract not found")
		}
		return ContractResponse{}, fmt.Errorf("failed to fetch contract: %w", err)
	}

	taxRate, totalRent, deposit, err := parseContractAmounts(req.TaxRate, req.TotalRent, req.DepositAmount)
	if err != nil {
		return ContractResponse{}, err
	}
	rentPeriods, err := parseRentPeriods(req.RentPeriods)
	if err != nil {
		return ContractResponse{}, err
	}
	freePeriods, err := parseFreePeriods(req.FreeRentPeriods)
	if err != nil {
		return ContractResponse{}, err
	}
	for i := range rentPeriods {
		rentPeriods[i].ContractID = contractID
	}
	for i := range freePeriods {
		freePeriods[i].ContractID = contractID
	}

	contract.CustomerName = req.CustomerName
	contract.RoomNumber = req.RoomNumber
	contract.TaxRate = taxRate
	contract.NeedsIncomeAdjustment = req.NeedsIncomeAdjustment
	contract.TotalRent = totalRent
	contract.DepositAmount = deposit
	if req.Status != "" {
		contract.Status = req.Status
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.contractRepo.Update(txCtx, contract); err != nil {
			return fmt.Errorf("failed to update contract: %w", err)
		}
		if err := s.contractRepo.ReplacePeriods(txCtx, contractID, rentPeriods, freePeriods); err != nil {
			return fmt.Errorf("failed to replace periods: %w", err)
		}
		return nil
	})
	if err != nil {
		return ContractResponse{}, err
	}

	s.writeAuditLog(ctx, model.ActionUpdateContract, contract.ID.String(), contract.ContractNo, req)

	updated, err := s.contractRepo.FindByIDWithPeriods(ctx, contractID)
	if err != nil {
		return ContractResponse{}, fmt.Errorf("failed to reload contract: %w", err)
	}
	return toContractResponse(*updated), nil
}

// DeleteContract removes the contract; all ledger rows cascade with it.
func (s *contractService) DeleteContract(ctx context.Context, id string) error {
	contractID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid contract id: %w", err)
	}

	contract, err := s.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("contract not found")
		}
		return fmt.Errorf("failed to fetch contract: %w", err)
	}

	if err := s.contractRepo.Delete(ctx, contractID); err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}

	s.writeAuditLog(ctx, model.ActionDeleteContract, contract.ID.String(), contract.ContractNo, map[string]string{"deleted_id": id})
	s.log.WithField("contract", contract.ContractNo).Info("contract deleted")
	return nil
}

// --- Helpers ---

func parseContractAmounts(rateStr, totalStr, depositStr string) (rate, total, deposit decimal.Decimal, err error) {
	rate, err = decimal.NewFromString(rateStr)
	if err != nil {
		return rate, total, deposit, fmt.Errorf("invalid tax_rate: %w", err)
	}
	if !rate.IsPositive() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return rate, total, deposit, fmt.Errorf("tax_rate must be in (0, 1]")
	}

	total, err = decimal.NewFromString(totalStr)
	if err != nil {
		return rate, total, deposit, fmt.Errorf("invalid total_rent: %w", err)
	}
	if total.IsNegative() {
		return rate, total, deposit, fmt.Errorf("total_rent must not be negative")
	}

	deposit = decimal.Zero
	if depositStr != "" {
		deposit, err = decimal.NewFromString(depositStr)
		if err != nil {
			return rate, total, deposit, fmt.Errorf("invalid deposit_amount: %w", err)
		}
	}
	return rate, total, deposit, nil
}

func parseRentPeriods(reqs []RentPeriodRequest) ([]model.RentPeriod, error) {
	periods := make([]model.RentPeriod, 0, len(reqs))
	for i, p := range reqs {
		start, end, err := parsePeriodDates(p.StartDate, p.EndDate)
		if err != nil {
			return nil, fmt.Errorf("rent period %d: %w", i+1, err)
		}
		rent, err := decimal.NewFromString(p.MonthlyRent)
		if err != nil {
			return nil, fmt.Errorf("rent period %d: invalid monthly_rent: %w", i+1, err)
		}
		if rent.IsNegative() {
			return nil, fmt.Errorf("rent period %d: monthly_rent must not be negative", i+1)
		}
		periods = append(periods, model.RentPeriod{StartDate: start, EndDate: end, MonthlyRent: rent})
	}
	return periods, nil
}

func parseFreePeriods(reqs []FreeRentPeriodRequest) ([]model.FreeRentPeriod, error) {
	periods := make([]model.FreeRentPeriod, 0, len(reqs))
	for i, p := range reqs {
		start, end, err := parsePeriodDates(p.StartDate, p.EndDate)
		if err != nil {
			return nil, fmt.Errorf("free rent period %d: %w", i+1, err)
		}
		periods = append(periods, model.FreeRentPeriod{StartDate: start, EndDate: end, Remark: p.Remark})
	}
	return periods, nil
}

func parsePeriodDates(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date format (expected YYYY-MM-DD): %w", err)
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date format (expected YYYY-MM-DD): %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date precedes start_date")
	}
	return start, end, nil
}

func toContractResponse(c model.Contract) ContractResponse {
	return ContractResponse{
		ID:                    c.ID.String(),
		ContractNo:            c.ContractNo,
		CustomerName:          c.CustomerName,
		RoomNumber:            c.RoomNumber,
		TaxRate:               c.TaxRate.String(),
		NeedsIncomeAdjustment: c.NeedsIncomeAdjustment,
		TotalRent:             c.TotalRent.StringFixed(2),
		InitialStampDuty:      c.InitialStampDuty.StringFixed(2),
		DepositAmount:         c.DepositAmount.StringFixed(2),
		Status:                c.Status,
		RentPeriods:           c.RentPeriods,
		FreeRentPeriods:       c.FreeRentPeriods,
		CreatedAt:             c.CreatedAt.Format(time.RFC3339),
	}
}

func (s *contractService) writeAuditLog(ctx context.Context, action, entityID, entityName string, details interface{}) {
	detailsJSON, _ := json.Marshal(details)

	entry := model.AuditLog{
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(detailsJSON),
	}
	if userID, ok := middleware.UserIDFromContext(ctx); ok && userID != "" {
		if parsed, err := uuid.Parse(userID); err == nil {
			entry.UserID = &parsed
		}
	}
	_ = s.auditRepo.Log(ctx, &entry)
}
