package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"leasebackend/internal/accounting"
	"leasebackend/internal/middleware"
	"leasebackend/internal/model"
	"leasebackend/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// --- DTOs ---

type VATListFilter struct {
	ContractID string
	RelateType string
	Status     string
	DateFrom   string // YYYY-MM-DD
	DateTo     string // YYYY-MM-DD
	Page       int
	Limit      int
}

type VATRecordResponse struct {
	ID                string  `json:"id"`
	ContractID        string  `json:"contract_id"`
	RelateType        string  `json:"relate_type"`
	RelateID          string  `json:"relate_id"`
	VATAmount         string  `json:"vat_amount"`
	TaxObligationDate string  `json:"tax_obligation_date"`
	Status            string  `json:"status"`
	PaymentDate       *string `json:"payment_date"`
	Remark            string  `json:"remark"`
}

type MarkVATPaidRequest struct {
	RecordIDs   []string `json:"record_ids" binding:"required,min=1"`
	PaymentDate string   `json:"payment_date" binding:"required"` // YYYY-MM-DD
}

// --- Interface ---

// VATService exposes the VAT obligation ledger: filtered listings and the
// batch pending-to-paid transition.
type VATService interface {
	ListRecords(ctx context.Context, filter VATListFilter) ([]VATRecordResponse, int64, error)
	MarkPaid(ctx context.Context, req MarkVATPaidRequest) (int64, error)
}

type vatService struct {
	vatRepo   repository.VATRepository
	auditRepo repository.AuditRepository
	log       *logrus.Logger
}

func NewVATService(vatRepo repository.VATRepository, auditRepo repository.AuditRepository, log *logrus.Logger) VATService {
	return &vatService{vatRepo: vatRepo, auditRepo: auditRepo, log: log}
}

// --- Implementation ---

func (s *vatService) ListRecords(ctx context.Context, filter VATListFilter) ([]VATRecordResponse, int64, error) {
	repoFilter := repository.VATFilter{
		RelateType: filter.RelateType,
		Status:     filter.Status,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}

	if filter.ContractID != "" {
		id, err := uuid.Parse(filter.ContractID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid contract id: %w", err)
		}
		repoFilter.ContractID = &id
	}
	if filter.DateFrom != "" {
		from, err := time.Parse("2006-01-02", filter.DateFrom)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid date_from format (expected YYYY-MM-DD): %w", err)
		}
		repoFilter.DateFrom = &from
	}
	if filter.DateTo != "" {
		to, err := time.Parse("2006-01-02", filter.DateTo)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid date_to format (expected YYYY-MM-DD): %w", err)
		}
		repoFilter.DateTo = &to
	}

	records, total, err := s.vatRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list VAT records: %w", err)
	}

	res := make([]VATRecordResponse, 0, len(records))
	for _, r := range records {
		res = append(res, toVATRecordResponse(r))
	}
	return res, total, nil
}

// MarkPaid transitions the given records from PENDING to PAID. The move is
// terminal; ids already paid are skipped silently.
func (s *vatService) MarkPaid(ctx context.Context, req MarkVATPaidRequest) (int64, error) {
	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return 0, fmt.Errorf("invalid payment_date format (expected YYYY-MM-DD): %w", err)
	}

	ids := make([]uuid.UUID, 0, len(req.RecordIDs))
	for _, raw := range req.RecordIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return 0, fmt.Errorf("invalid record id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}

	updated, err := s.vatRepo.MarkPaid(ctx, ids, accounting.DateOf(paymentDate))
	if err != nil {
		return 0, fmt.Errorf("failed to mark VAT records paid: %w", err)
	}

	detailsJSON, _ := json.Marshal(req)
	entry := model.AuditLog{
		Action:  model.ActionMarkVATPaid,
		Details: string(detailsJSON),
	}
	if userID, ok := middleware.UserIDFromContext(ctx); ok && userID != "" {
		if parsed, parseErr := uuid.Parse(userID); parseErr == nil {
			entry.UserID = &parsed
		}
	}
	_ = s.auditRepo.Log(ctx, &entry)

	s.log.WithFields(logrus.Fields{
		"requested": len(ids),
		"updated":   updated,
	}).Info("VAT records marked paid")
	return updated, nil
}

// --- Helpers ---

func toVATRecordResponse(r model.VATRecord) VATRecordResponse {
	resp := VATRecordResponse{
		ID:                r.ID.String(),
		ContractID:        r.ContractID.String(),
		RelateType:        r.RelateType,
		RelateID:          r.RelateID,
		VATAmount:         r.VATAmount.StringFixed(2),
		TaxObligationDate: r.TaxObligationDate.Format("2006-01-02"),
		Status:            r.Status,
		Remark:            r.Remark,
	}
	if r.PaymentDate != nil {
		d := r.PaymentDate.Format("2006-01-02")
		resp.PaymentDate = &d
	}
	return resp
}
