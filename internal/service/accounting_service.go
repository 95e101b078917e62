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

type MonthlyIncomeResponse struct {
	ContractID       string `json:"contract_id"`
	Year             int    `json:"year"`
	Month            int    `json:"month"`
	AccountingIncome string `json:"accounting_income"`
	TaxIncome        string `json:"tax_income"`
	TaxRate          string `json:"tax_rate"`
	IsAdjust         bool   `json:"is_adjust"`
}

type TaxDiffResponse struct {
	ContractID       string `json:"contract_id"`
	CustomerName     string `json:"customer_name"`
	RoomNumber       string `json:"room_number"`
	Year             int    `json:"year"`
	Month            int    `json:"month"`
	AccountingIncome string `json:"accounting_income"`
	TaxIncome        string `json:"tax_income"`
	DiffAmount       string `json:"diff_amount"`
	DeferredTax      string `json:"deferred_tax"`
	ToBeSettledVAT   string `json:"to_be_settled_vat"`
	AdjustVAT        string `json:"adjust_vat"`
	IsAdjust         bool   `json:"is_adjust"`
}

// VATResult carries the outcome of a VAT booking. A zero total with a nil
// RecordID is the recoverable-guard sentinel: nothing was written.
type VATResult struct {
	TotalVAT decimal.Decimal
	RecordID uuid.UUID
}

// Booked reports whether the ledger was written at all.
func (r VATResult) Booked() bool {
	return r.RecordID != uuid.Nil
}

type RegisterInvoiceRequest struct {
	ContractID        string `json:"contract_id"` // taken from the route when invoked via the nested endpoint
	InvoiceNumber     string `json:"invoice_number" binding:"required"`
	InvoiceDate       string `json:"invoice_date" binding:"required"` // YYYY-MM-DD
	TotalAmount       string `json:"total_amount" binding:"required"` // VAT-inclusive, decimal string
	RelatePaymentID   string `json:"relate_payment_id"`
	RelateIncomeYear  *int   `json:"relate_income_year"`
	RelateIncomeMonth *int   `json:"relate_income_month"`
}

type InvoiceResponse struct {
	ID            string `json:"id"`
	InvoiceNumber string `json:"invoice_number"`
	ContractID    string `json:"contract_id"`
	InvoiceDate   string `json:"invoice_date"`
	TotalAmount   string `json:"total_amount"`
	VATAmount     string `json:"vat_amount"`
	Status        string `json:"status"`
}

type RegisterReceivableRequest struct {
	Date         string `json:"date" binding:"required"`   // YYYY-MM-DD
	Amount       string `json:"amount" binding:"required"` // VAT-inclusive, decimal string
	ReceivableID string `json:"receivable_id" binding:"required"`
}

type RecordVATRequest struct {
	ContractID string `json:"contract_id" binding:"required"`
	RelateType string `json:"relate_type" binding:"required,oneof=RECEIVABLE PAYMENT INVOICE"`
	RelateDate string `json:"relate_date" binding:"required"` // YYYY-MM-DD
	Amount     string `json:"amount" binding:"required"`      // VAT-inclusive, decimal string
	RelateID   string `json:"relate_id" binding:"required"`
}

// --- Interface ---

// AccountingService is the lease tax/accounting engine: monthly income
// recognition in both bases, the VAT obligation ledger with overpaid-rent
// detection and reversal, stamp duty, and the book-vs-tax reconciliation.
type AccountingService interface {
	MonthlyIncome(ctx context.Context, contractID string, year, month int) (MonthlyIncomeResponse, error)
	TaxDiff(ctx context.Context, contractID string, year, month int) (TaxDiffResponse, error)
	RecordVAT(ctx context.Context, contractID, relateType string, relateDate time.Time, amount decimal.Decimal, relateID string) (VATResult, error)
	StampDuty(ctx context.Context, contractID string) (decimal.Decimal, error)
	RegisterInvoice(ctx context.Context, req RegisterInvoiceRequest) (InvoiceResponse, error)
	RegisterReceivable(ctx context.Context, contractID string, req RegisterReceivableRequest) (VATResult, error)
}

type accountingService struct {
	contractRepo  repository.ContractRepository
	paymentRepo   repository.PaymentRepository
	incomeRepo    repository.IncomeRepository
	vatRepo       repository.VATRepository
	taxDiffRepo   repository.TaxDiffRepository
	invoiceRepo   repository.InvoiceRepository
	auditRepo     repository.AuditRepository
	txManager     repository.TransactionManager
	hub           *websocket.Hub
	log           *logrus.Logger
	incomeTaxRate decimal.Decimal
}

func NewAccountingService(
	contractRepo repository.ContractRepository,
	paymentRepo repository.PaymentRepository,
	incomeRepo repository.IncomeRepository,
	vatRepo repository.VATRepository,
	taxDiffRepo repository.TaxDiffRepository,
	invoiceRepo repository.InvoiceRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *websocket.Hub,
	log *logrus.Logger,
) AccountingService {
	return &accountingService{
		contractRepo:  contractRepo,
		paymentRepo:   paymentRepo,
		incomeRepo:    incomeRepo,
		vatRepo:       vatRepo,
		taxDiffRepo:   taxDiffRepo,
		invoiceRepo:   invoiceRepo,
		auditRepo:     auditRepo,
		txManager:     txManager,
		hub:           hub,
		log:           log,
		incomeTaxRate: accounting.DefaultIncomeTaxRate,
	}
}

// --- Implementation ---

// loadContract fetches the contract with its periods and rejects contracts
// the engine cannot account for.
func (s *accountingService) loadContract(ctx context.Context, contractID string) (*model.Contract, error) {
	id, err := uuid.Parse(contractID)
	if err != nil {
		return nil, fmt.Errorf("invalid contract id: %w", err)
	}
	contract, err := s.contractRepo.FindByIDWithPeriods(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contract not found")
		}
		return nil, fmt.Errorf("failed to fetch contract: %w", err)
	}
	if err := accounting.ValidateContract(contract); err != nil {
		return nil, fmt.Errorf("contract %s: %w", contract.ContractNo, err)
	}
	return contract, nil
}

// MonthlyIncome recognizes one month of income in both bases. The write is
// once-per-(contract, year, month): a repeat call returns the stored pair
// without inserting anything. A positive tax income then pays down pending
// overpaid VAT.
func (s *accountingService) MonthlyIncome(ctx context.Context, contractID string, year, month int) (MonthlyIncomeResponse, error) {
	contract, err := s.loadContract(ctx, contractID)
	if err != nil {
		return MonthlyIncomeResponse{}, err
	}
	income, err := s.monthlyIncome(ctx, contract, year, month)
	if err != nil {
		return MonthlyIncomeResponse{}, err
	}
	return MonthlyIncomeResponse{
		ContractID:       contract.ID.String(),
		Year:             year,
		Month:            month,
		AccountingIncome: income.AccountingIncome.StringFixed(2),
		TaxIncome:        income.TaxIncome.StringFixed(2),
		TaxRate:          income.TaxRate.String(),
		IsAdjust:         income.IsAdjust,
	}, nil
}

func (s *accountingService) monthlyIncome(ctx context.Context, contract *model.Contract, year, month int) (*model.MonthlyIncome, error) {
	if existing, err := s.incomeRepo.FindMonthly(ctx, contract.ID, year, month); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check monthly income: %w", err)
	}

	_, taxRent := accounting.Prorate(contract.RentPeriods, contract.FreeRentPeriods, year, month)
	taxIncome := accounting.ExcludeVAT(taxRent, contract.TaxRate)

	accountingIncome := taxIncome
	if contract.NeedsIncomeAdjustment {
		start, end, ok := accounting.LeaseSpan(contract.RentPeriods)
		if !ok {
			accountingIncome = decimal.Zero
		} else {
			accountingIncome = accounting.AdjustedMonthlyIncome(contract.TotalRent, contract.TaxRate, start, end, year, month)
		}
	}

	income := &model.MonthlyIncome{
		ContractID:       contract.ID,
		Year:             year,
		Month:            month,
		AccountingIncome: accountingIncome,
		TaxIncome:        taxIncome,
		TaxRate:          contract.TaxRate,
		IsAdjust:         contract.NeedsIncomeAdjustment,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.incomeRepo.CreateMonthly(txCtx, income); err != nil {
			return fmt.Errorf("failed to store monthly income: %w", err)
		}
		record := &model.IncomeRecord{
			ContractID:       contract.ID,
			IncomeDate:       accounting.MonthEnd(year, month),
			AccountingIncome: accountingIncome,
			TaxIncome:        taxIncome,
			SourceType:       model.IncomeSourceMonthly,
			SourceID:         &income.ID,
		}
		if err := s.incomeRepo.CreateRecord(txCtx, record); err != nil {
			return fmt.Errorf("failed to store income record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if taxIncome.IsPositive() {
		if err := s.reverseOverpaidVAT(ctx, contract, year, month, taxIncome); err != nil {
			return nil, err
		}
	}

	s.writeAuditLog(ctx, model.ActionRecognizeIncome, contract.ID.String(), contract.ContractNo, income)
	s.broadcast("income_recognized", income)
	return income, nil
}

// RecordVAT books VAT for a triggering event under the earliest-of rule.
// Non-positive amounts or rates return the sentinel result instead of an
// error so callers can treat bad per-call input as a no-op.
func (s *accountingService) RecordVAT(ctx context.Context, contractID, relateType string, relateDate time.Time, amount decimal.Decimal, relateID string) (VATResult, error) {
	contract, err := s.loadContract(ctx, contractID)
	if err != nil {
		return VATResult{TotalVAT: decimal.Zero}, err
	}
	return s.recordVAT(ctx, contract, relateType, relateDate, amount, relateID)
}

func (s *accountingService) recordVAT(ctx context.Context, contract *model.Contract, relateType string, relateDate time.Time, amount decimal.Decimal, relateID string) (VATResult, error) {
	result := VATResult{TotalVAT: decimal.Zero}

	if !amount.IsPositive() || !contract.TaxRate.IsPositive() {
		s.log.WithFields(logrus.Fields{
			"contract": contract.ContractNo,
			"type":     relateType,
			"amount":   amount.String(),
		}).Warn("VAT booking skipped: non-positive amount or rate")
		return result, nil
	}

	baseVAT := accounting.VATPortion(amount, contract.TaxRate)
	obligationDate := accounting.TaxObligationDate(relateType, relateDate)

	if relateType == model.VATTriggerPayment {
		overpaidVAT, err := s.overpaidVAT(ctx, contract, accounting.DateOf(relateDate))
		if err != nil {
			return result, err
		}
		if overpaidVAT.IsPositive() {
			overpaidRecord := &model.VATRecord{
				ContractID:        contract.ID,
				RelateType:        model.VATTriggerOverpaid,
				RelateID:          uuid.NewString(),
				VATAmount:         overpaidVAT,
				TaxObligationDate: obligationDate,
				Status:            model.VATStatusPending,
				Remark:            fmt.Sprintf("VAT on rent collected in advance (receipt %s)", amount.StringFixed(2)),
			}
			if err := s.vatRepo.Create(ctx, overpaidRecord); err != nil {
				return result, fmt.Errorf("failed to store overpaid VAT record: %w", err)
			}
			result.TotalVAT = result.TotalVAT.Add(overpaidVAT)
			result.RecordID = overpaidRecord.ID
			s.log.WithFields(logrus.Fields{
				"contract": contract.ContractNo,
				"vat":      overpaidVAT.StringFixed(2),
			}).Info("overpaid VAT booked")
			s.broadcast("vat_booked", overpaidRecord)
		}
	}

	if baseVAT.IsPositive() {
		baseRecord := &model.VATRecord{
			ContractID:        contract.ID,
			RelateType:        relateType,
			RelateID:          relateID,
			VATAmount:         baseVAT,
			TaxObligationDate: obligationDate,
			Status:            model.VATStatusPending,
		}
		if err := s.vatRepo.Create(ctx, baseRecord); err != nil {
			return result, fmt.Errorf("failed to store VAT record: %w", err)
		}
		result.TotalVAT = result.TotalVAT.Add(baseVAT)
		if result.RecordID == uuid.Nil {
			result.RecordID = baseRecord.ID
		}
		s.broadcast("vat_booked", baseRecord)
	}

	s.writeAuditLog(ctx, model.ActionBookVAT, contract.ID.String(), contract.ContractNo, map[string]string{
		"relate_type": relateType,
		"relate_id":   relateID,
		"total_vat":   result.TotalVAT.StringFixed(2),
	})
	return result, nil
}

// overpaidVAT compares cumulative rent-type receipts (through the payment
// date, which the caller has already persisted) against cumulative prorated
// receivable rent through the payment month, both VAT-inclusive, and returns
// the VAT hidden in the excess.
func (s *accountingService) overpaidVAT(ctx context.Context, contract *model.Contract, payDate time.Time) (decimal.Decimal, error) {
	receivable := s.cumulativeReceivableThrough(contract, payDate)

	paid, err := s.paymentRepo.SumRentThrough(ctx, contract.ID, payDate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum rent receipts: %w", err)
	}

	overpaid := paid.Sub(receivable)
	if !overpaid.IsPositive() {
		return decimal.Zero, nil
	}

	vat := accounting.VATPortion(overpaid, contract.TaxRate)
	s.log.WithFields(logrus.Fields{
		"contract": contract.ContractNo,
		"overpaid": overpaid.StringFixed(2),
		"vat":      vat.StringFixed(2),
	}).Info("rent received ahead of recognition")
	return vat, nil
}

// cumulativeReceivableThrough sums the prorated VAT-inclusive tax-basis rent
// for every month from lease inception through the month containing the
// given date.
func (s *accountingService) cumulativeReceivableThrough(contract *model.Contract, through time.Time) decimal.Decimal {
	start, _, ok := accounting.LeaseSpan(contract.RentPeriods)
	if !ok {
		return decimal.Zero
	}

	total := decimal.Zero
	year, month := start.Year(), int(start.Month())
	for year < through.Year() || (year == through.Year() && month <= int(through.Month())) {
		_, rent := accounting.Prorate(contract.RentPeriods, contract.FreeRentPeriods, year, month)
		total = total.Add(rent)
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return total
}

// reverseOverpaidVAT pays down pending overpaid VAT as recognized income
// catches up to cash received. The reversal budget of the month is
// tax_income x rate; pending overpaid rows not yet referenced by a reversal
// are walked oldest obligation first.
func (s *accountingService) reverseOverpaidVAT(ctx context.Context, contract *model.Contract, year, month int, taxIncome decimal.Decimal) error {
	budget := taxIncome.Mul(contract.TaxRate).Round(2)
	if !budget.IsPositive() {
		return nil
	}

	pending, err := s.vatRepo.ListPendingOverpaid(ctx, contract.ID)
	if err != nil {
		return fmt.Errorf("failed to list pending overpaid VAT: %w", err)
	}

	obligationDate := accounting.MonthEnd(year, month)
	for _, record := range pending {
		if !budget.IsPositive() {
			break
		}
		reversal := decimal.Min(budget, record.VATAmount)

		reverseRecord := &model.VATRecord{
			ContractID:        contract.ID,
			RelateType:        model.VATTriggerOverpaidReverse,
			RelateID:          record.ID.String(),
			VATAmount:         reversal.Neg(),
			TaxObligationDate: obligationDate,
			Status:            model.VATStatusPending,
			Remark:            fmt.Sprintf("reversal of overpaid VAT record %s against %d-%02d income", record.ID, year, month),
		}
		if err := s.vatRepo.Create(ctx, reverseRecord); err != nil {
			return fmt.Errorf("failed to store overpaid VAT reversal: %w", err)
		}

		s.log.WithFields(logrus.Fields{
			"contract": contract.ContractNo,
			"original": record.ID.String(),
			"reversed": reversal.StringFixed(2),
		}).Info("overpaid VAT reversed")
		s.broadcast("vat_booked", reverseRecord)
		budget = budget.Sub(reversal)
	}
	return nil
}

// TaxDiff reconciles one month's book and tax income into the timing
// difference, deferred tax, and VAT carry-forward adjustments. Write-once
// per (contract, year, month).
func (s *accountingService) TaxDiff(ctx context.Context, contractID string, year, month int) (TaxDiffResponse, error) {
	contract, err := s.loadContract(ctx, contractID)
	if err != nil {
		return TaxDiffResponse{}, err
	}

	income, err := s.monthlyIncome(ctx, contract, year, month)
	if err != nil {
		return TaxDiffResponse{}, err
	}

	breakdown := accounting.ComputeDiff(income.AccountingIncome, income.TaxIncome, contract.TaxRate, s.incomeTaxRate)

	if _, err := s.taxDiffRepo.Find(ctx, contract.ID, year, month); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return TaxDiffResponse{}, fmt.Errorf("failed to check tax diff: %w", err)
		}
		diff := &model.TaxDiff{
			ContractID:       contract.ID,
			Year:             year,
			Month:            month,
			AccountingIncome: breakdown.AccountingIncome,
			TaxIncome:        breakdown.TaxIncome,
			DiffAmount:       breakdown.DiffAmount,
			DeferredTax:      breakdown.DeferredTax,
			ToBeSettledVAT:   breakdown.ToBeSettledVAT,
			AdjustVAT:        breakdown.AdjustVAT,
		}
		if err := s.taxDiffRepo.Create(ctx, diff); err != nil {
			return TaxDiffResponse{}, fmt.Errorf("failed to store tax diff: %w", err)
		}
		s.writeAuditLog(ctx, model.ActionComputeTaxDiff, contract.ID.String(), contract.ContractNo, diff)
	}

	return TaxDiffResponse{
		ContractID:       contract.ID.String(),
		CustomerName:     contract.CustomerName,
		RoomNumber:       contract.RoomNumber,
		Year:             year,
		Month:            month,
		AccountingIncome: breakdown.AccountingIncome.StringFixed(2),
		TaxIncome:        breakdown.TaxIncome.StringFixed(2),
		DiffAmount:       breakdown.DiffAmount.StringFixed(2),
		DeferredTax:      breakdown.DeferredTax.StringFixed(2),
		ToBeSettledVAT:   breakdown.ToBeSettledVAT.StringFixed(2),
		AdjustVAT:        breakdown.AdjustVAT.StringFixed(2),
		IsAdjust:         contract.NeedsIncomeAdjustment,
	}, nil
}

// StampDuty computes the one-time stamp duty and caches it on the contract
// the first time only.
func (s *accountingService) StampDuty(ctx context.Context, contractID string) (decimal.Decimal, error) {
	contract, err := s.loadContract(ctx, contractID)
	if err != nil {
		return decimal.Zero, err
	}

	amount := accounting.StampDuty(contract.TotalRent)

	written, err := s.contractRepo.SetStampDutyIfUnset(ctx, contract.ID, amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to cache stamp duty: %w", err)
	}
	if written {
		s.writeAuditLog(ctx, model.ActionComputeStampDuty, contract.ID.String(), contract.ContractNo, map[string]string{
			"stamp_duty": amount.StringFixed(2),
		})
	}

	s.log.WithFields(logrus.Fields{
		"contract":   contract.ContractNo,
		"stamp_duty": amount.StringFixed(2),
	}).Info("stamp duty computed")
	return amount, nil
}

// RegisterInvoice stores the invoice detail and books its VAT in one
// transaction. Duplicate invoice numbers are rejected by the unique index.
func (s *accountingService) RegisterInvoice(ctx context.Context, req RegisterInvoiceRequest) (InvoiceResponse, error) {
	contract, err := s.loadContract(ctx, req.ContractID)
	if err != nil {
		return InvoiceResponse{}, err
	}

	totalAmount, err := decimal.NewFromString(req.TotalAmount)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid total_amount: %w", err)
	}
	if !totalAmount.IsPositive() {
		return InvoiceResponse{}, fmt.Errorf("invoice total amount must be positive")
	}

	invoiceDate, err := time.Parse("2006-01-02", req.InvoiceDate)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid invoice_date format (expected YYYY-MM-DD): %w", err)
	}

	var relatePaymentID *uuid.UUID
	if req.RelatePaymentID != "" {
		parsed, parseErr := uuid.Parse(req.RelatePaymentID)
		if parseErr != nil {
			return InvoiceResponse{}, fmt.Errorf("invalid relate_payment_id: %w", parseErr)
		}
		if _, err := s.paymentRepo.FindByID(ctx, parsed); err != nil {
			return InvoiceResponse{}, fmt.Errorf("referenced payment not found: %w", err)
		}
		relatePaymentID = &parsed
	}

	invoice := &model.InvoiceDetail{
		InvoiceNumber:     req.InvoiceNumber,
		ContractID:        contract.ID,
		InvoiceDate:       accounting.DateOf(invoiceDate),
		TotalAmount:       totalAmount,
		VATAmount:         accounting.VATPortion(totalAmount, contract.TaxRate),
		RelatePaymentID:   relatePaymentID,
		RelateIncomeYear:  req.RelateIncomeYear,
		RelateIncomeMonth: req.RelateIncomeMonth,
		Status:            model.InvoiceValid,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.invoiceRepo.Create(txCtx, invoice); err != nil {
			return fmt.Errorf("failed to store invoice: %w", err)
		}
		if _, err := s.recordVAT(txCtx, contract, model.VATTriggerInvoice, invoiceDate, totalAmount, req.InvoiceNumber); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return InvoiceResponse{}, err
	}

	s.writeAuditLog(ctx, model.ActionRegisterInvoice, invoice.ID.String(), req.InvoiceNumber, req)
	s.log.WithFields(logrus.Fields{
		"contract": contract.ContractNo,
		"invoice":  req.InvoiceNumber,
		"amount":   totalAmount.StringFixed(2),
	}).Info("invoice registered")

	return InvoiceResponse{
		ID:            invoice.ID.String(),
		InvoiceNumber: invoice.InvoiceNumber,
		ContractID:    contract.ID.String(),
		InvoiceDate:   invoice.InvoiceDate.Format("2006-01-02"),
		TotalAmount:   invoice.TotalAmount.StringFixed(2),
		VATAmount:     invoice.VATAmount.StringFixed(2),
		Status:        invoice.Status,
	}, nil
}

// RegisterReceivable books receivable-accrual VAT. Guard failures come back
// as the sentinel result, not an error.
func (s *accountingService) RegisterReceivable(ctx context.Context, contractID string, req RegisterReceivableRequest) (VATResult, error) {
	contract, err := s.loadContract(ctx, contractID)
	if err != nil {
		return VATResult{TotalVAT: decimal.Zero}, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return VATResult{TotalVAT: decimal.Zero}, fmt.Errorf("invalid amount: %w", err)
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return VATResult{TotalVAT: decimal.Zero}, fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}

	result, err := s.recordVAT(ctx, contract, model.VATTriggerReceivable, date, amount, req.ReceivableID)
	if err != nil {
		return result, err
	}
	if !result.Booked() {
		s.log.WithField("contract", contract.ContractNo).Warn("receivable VAT not booked")
	} else {
		s.writeAuditLog(ctx, model.ActionRegisterReceivable, contract.ID.String(), contract.ContractNo, req)
	}
	return result, nil
}

// --- Helpers ---

func (s *accountingService) writeAuditLog(ctx context.Context, action, entityID, entityName string, details interface{}) {
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

	// Best-effort audit log
	_ = s.auditRepo.Log(ctx, &entry)
}

func (s *accountingService) broadcast(eventType string, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastEvent(eventType, payload)
}
