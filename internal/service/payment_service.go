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
	"leasebackend/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// --- DTOs ---

type RecordPaymentRequest struct {
	ContractID  string `json:"contract_id" binding:"required"`
	PayDate     string `json:"pay_date" binding:"required"` // YYYY-MM-DD
	Amount      string `json:"amount" binding:"required"`
	PaymentType string `json:"payment_type" binding:"required,oneof=RENT DEPOSIT OTHER"`
	Remark      string `json:"remark"`
}

type PaymentResponse struct {
	ID          string `json:"id"`
	ContractID  string `json:"contract_id"`
	PayDate     string `json:"pay_date"`
	Amount      string `json:"amount"`
	PaymentType string `json:"payment_type"`
	Remark      string `json:"remark"`
	VATAmount   string `json:"vat_amount"`   // VAT booked by this receipt, zero for non-rent payments
	VATRecordID string `json:"vat_record_id,omitempty"`
}

// --- Interface ---

type PaymentService interface {
	RecordPayment(ctx context.Context, req RecordPaymentRequest) (PaymentResponse, error)
	ListPayments(ctx context.Context, contractID string, page, limit int) ([]PaymentResponse, int64, error)
}

type paymentService struct {
	paymentRepo  repository.PaymentRepository
	contractRepo repository.ContractRepository
	auditRepo    repository.AuditRepository
	accounting   AccountingService
	txManager    repository.TransactionManager
	hub          *websocket.Hub
	log          *logrus.Logger
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	contractRepo repository.ContractRepository,
	auditRepo repository.AuditRepository,
	accountingService AccountingService,
	txManager repository.TransactionManager,
	hub *websocket.Hub,
	log *logrus.Logger,
) PaymentService {
	return &paymentService{
		paymentRepo:  paymentRepo,
		contractRepo: contractRepo,
		auditRepo:    auditRepo,
		accounting:   accountingService,
		txManager:    txManager,
		hub:          hub,
		log:          log,
	}
}

// --- Implementation ---

// RecordPayment stores the receipt, then books its VAT. The receipt must be
// persisted first: the overpaid-VAT comparison reads cumulative receipts
// through the payment date, this one included.
func (s *paymentService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (PaymentResponse, error) {
	contractID, err := uuid.Parse(req.ContractID)
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("invalid contract id: %w", err)
	}
	if _, err := s.contractRepo.FindByID(ctx, contractID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PaymentResponse{}, fmt.Errorf("contract not found")
		}
		return PaymentResponse{}, fmt.Errorf("failed to fetch contract: %w", err)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("invalid amount: %w", err)
	}
	if !amount.IsPositive() {
		return PaymentResponse{}, fmt.Errorf("payment amount must be positive")
	}

	payDate, err := time.Parse("2006-01-02", req.PayDate)
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("invalid pay_date format (expected YYYY-MM-DD): %w", err)
	}

	payment := model.PaymentRecord{
		ContractID:  contractID,
		PayDate:     accounting.DateOf(payDate),
		Amount:      amount,
		PaymentType: req.PaymentType,
		Remark:      req.Remark,
	}

	var vatResult VATResult
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.paymentRepo.Create(txCtx, &payment); err != nil {
			return fmt.Errorf("failed to store payment: %w", err)
		}
		if req.PaymentType == model.PaymentTypeRent {
			vatResult, err = s.accounting.RecordVAT(txCtx, req.ContractID, model.VATTriggerPayment, payDate, amount, payment.ID.String())
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return PaymentResponse{}, err
	}

	s.writeAuditLog(ctx, model.ActionRecordPayment, payment.ID.String(), req.ContractID, req)
	if s.hub != nil {
		s.hub.BroadcastEvent("payment_recorded", payment)
	}
	s.log.WithFields(logrus.Fields{
		"contract": req.ContractID,
		"amount":   amount.StringFixed(2),
		"type":     req.PaymentType,
	}).Info("payment recorded")

	resp := toPaymentResponse(payment)
	resp.VATAmount = vatResult.TotalVAT.StringFixed(2)
	if vatResult.Booked() {
		resp.VATRecordID = vatResult.RecordID.String()
	}
	return resp, nil
}

func (s *paymentService) ListPayments(ctx context.Context, contractID string, page, limit int) ([]PaymentResponse, int64, error) {
	id, err := uuid.Parse(contractID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid contract id: %w", err)
	}

	payments, total, err := s.paymentRepo.ListByContract(ctx, id, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}

	res := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		res = append(res, toPaymentResponse(p))
	}
	return res, total, nil
}

// --- Helpers ---

func toPaymentResponse(p model.PaymentRecord) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID.String(),
		ContractID:  p.ContractID.String(),
		PayDate:     p.PayDate.Format("2006-01-02"),
		Amount:      p.Amount.StringFixed(2),
		PaymentType: p.PaymentType,
		Remark:      p.Remark,
		VATAmount:   decimal.Zero.StringFixed(2),
	}
}

func (s *paymentService) writeAuditLog(ctx context.Context, action, entityID, entityName string, details interface{}) {
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
