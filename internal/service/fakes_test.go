package service

import (
	"context"
	"io"
	"sort"
	"time"

	"leasebackend/internal/model"
	"leasebackend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// In-memory repository doubles. They mirror the storage semantics the GORM
// implementations enforce with unique indexes and filtered queries.

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// --- contracts ---

type fakeContractRepo struct {
	contracts map[uuid.UUID]*model.Contract
	setCalls  int
}

func newFakeContractRepo(contracts ...*model.Contract) *fakeContractRepo {
	repo := &fakeContractRepo{contracts: make(map[uuid.UUID]*model.Contract)}
	for _, c := range contracts {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		repo.contracts[c.ID] = c
	}
	return repo
}

func (r *fakeContractRepo) Create(ctx context.Context, contract *model.Contract) error {
	if contract.ID == uuid.Nil {
		contract.ID = uuid.New()
	}
	r.contracts[contract.ID] = contract
	return nil
}

func (r *fakeContractRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	if c, ok := r.contracts[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeContractRepo) FindByIDWithPeriods(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeContractRepo) FindByContractNo(ctx context.Context, contractNo string) (*model.Contract, error) {
	for _, c := range r.contracts {
		if c.ContractNo == contractNo {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeContractRepo) List(ctx context.Context, status string, page, limit int) ([]model.Contract, int64, error) {
	var out []model.Contract
	for _, c := range r.contracts {
		if status == "" || c.Status == status {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeContractRepo) ListCreatedBetween(ctx context.Context, from, to string) ([]model.Contract, error) {
	var out []model.Contract
	for _, c := range r.contracts {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeContractRepo) Update(ctx context.Context, contract *model.Contract) error {
	r.contracts[contract.ID] = contract
	return nil
}

func (r *fakeContractRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.contracts, id)
	return nil
}

func (r *fakeContractRepo) SetStampDutyIfUnset(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	r.setCalls++
	c, ok := r.contracts[id]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if !c.InitialStampDuty.IsZero() {
		return false, nil
	}
	c.InitialStampDuty = amount
	return true, nil
}

func (r *fakeContractRepo) ReplacePeriods(ctx context.Context, contractID uuid.UUID, rent []model.RentPeriod, free []model.FreeRentPeriod) error {
	if c, ok := r.contracts[contractID]; ok {
		c.RentPeriods = rent
		c.FreeRentPeriods = free
	}
	return nil
}

// --- payments ---

type fakePaymentRepo struct {
	payments []model.PaymentRecord
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *model.PaymentRecord) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	r.payments = append(r.payments, *payment)
	return nil
}

func (r *fakePaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PaymentRecord, error) {
	for i := range r.payments {
		if r.payments[i].ID == id {
			return &r.payments[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePaymentRepo) ListByContract(ctx context.Context, contractID uuid.UUID, page, limit int) ([]model.PaymentRecord, int64, error) {
	var out []model.PaymentRecord
	for _, p := range r.payments {
		if p.ContractID == contractID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePaymentRepo) SumRentThrough(ctx context.Context, contractID uuid.UUID, through time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.payments {
		if p.ContractID == contractID && p.PaymentType == model.PaymentTypeRent && !p.PayDate.After(through) {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

// --- income ---

type incomeKey struct {
	contractID uuid.UUID
	year       int
	month      int
}

type fakeIncomeRepo struct {
	monthly map[incomeKey]*model.MonthlyIncome
	records []model.IncomeRecord
}

func newFakeIncomeRepo() *fakeIncomeRepo {
	return &fakeIncomeRepo{monthly: make(map[incomeKey]*model.MonthlyIncome)}
}

func (r *fakeIncomeRepo) FindMonthly(ctx context.Context, contractID uuid.UUID, year, month int) (*model.MonthlyIncome, error) {
	if income, ok := r.monthly[incomeKey{contractID, year, month}]; ok {
		return income, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeIncomeRepo) CreateMonthly(ctx context.Context, income *model.MonthlyIncome) error {
	if income.ID == uuid.Nil {
		income.ID = uuid.New()
	}
	r.monthly[incomeKey{income.ContractID, income.Year, income.Month}] = income
	return nil
}

func (r *fakeIncomeRepo) CreateRecord(ctx context.Context, record *model.IncomeRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeIncomeRepo) ListMonthlyByContract(ctx context.Context, contractID uuid.UUID) ([]model.MonthlyIncome, error) {
	var out []model.MonthlyIncome
	for _, income := range r.monthly {
		if income.ContractID == contractID {
			out = append(out, *income)
		}
	}
	return out, nil
}

// --- VAT ---

type fakeVATRepo struct {
	records []model.VATRecord
}

func (r *fakeVATRepo) Create(ctx context.Context, record *model.VATRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.Status == "" {
		record.Status = model.VATStatusPending
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeVATRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.VATRecord, error) {
	for i := range r.records {
		if r.records[i].ID == id {
			return &r.records[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVATRepo) List(ctx context.Context, filter repository.VATFilter) ([]model.VATRecord, int64, error) {
	var out []model.VATRecord
	for _, rec := range r.records {
		if filter.ContractID != nil && rec.ContractID != *filter.ContractID {
			continue
		}
		if filter.RelateType != "" && rec.RelateType != filter.RelateType {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func (r *fakeVATRepo) ListPendingOverpaid(ctx context.Context, contractID uuid.UUID) ([]model.VATRecord, error) {
	reversed := make(map[string]bool)
	for _, rec := range r.records {
		if rec.ContractID == contractID && rec.RelateType == model.VATTriggerOverpaidReverse {
			reversed[rec.RelateID] = true
		}
	}

	var out []model.VATRecord
	for _, rec := range r.records {
		if rec.ContractID == contractID &&
			rec.RelateType == model.VATTriggerOverpaid &&
			rec.Status == model.VATStatusPending &&
			!reversed[rec.ID.String()] {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TaxObligationDate.Before(out[j].TaxObligationDate)
	})
	return out, nil
}

func (r *fakeVATRepo) MarkPaid(ctx context.Context, ids []uuid.UUID, paymentDate time.Time) (int64, error) {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var updated int64
	for i := range r.records {
		if wanted[r.records[i].ID] && r.records[i].Status == model.VATStatusPending {
			r.records[i].Status = model.VATStatusPaid
			d := paymentDate
			r.records[i].PaymentDate = &d
			updated++
		}
	}
	return updated, nil
}

func (r *fakeVATRepo) byType(relateType string) []model.VATRecord {
	var out []model.VATRecord
	for _, rec := range r.records {
		if rec.RelateType == relateType {
			out = append(out, rec)
		}
	}
	return out
}

// --- tax diff ---

type fakeTaxDiffRepo struct {
	diffs map[incomeKey]*model.TaxDiff
}

func newFakeTaxDiffRepo() *fakeTaxDiffRepo {
	return &fakeTaxDiffRepo{diffs: make(map[incomeKey]*model.TaxDiff)}
}

func (r *fakeTaxDiffRepo) Find(ctx context.Context, contractID uuid.UUID, year, month int) (*model.TaxDiff, error) {
	if diff, ok := r.diffs[incomeKey{contractID, year, month}]; ok {
		return diff, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTaxDiffRepo) Create(ctx context.Context, diff *model.TaxDiff) error {
	if diff.ID == uuid.Nil {
		diff.ID = uuid.New()
	}
	r.diffs[incomeKey{diff.ContractID, diff.Year, diff.Month}] = diff
	return nil
}

func (r *fakeTaxDiffRepo) ListByContract(ctx context.Context, contractID uuid.UUID) ([]model.TaxDiff, error) {
	var out []model.TaxDiff
	for _, diff := range r.diffs {
		if diff.ContractID == contractID {
			out = append(out, *diff)
		}
	}
	return out, nil
}

// --- invoices ---

type fakeInvoiceRepo struct {
	invoices []model.InvoiceDetail
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, invoice *model.InvoiceDetail) error {
	for _, existing := range r.invoices {
		if existing.InvoiceNumber == invoice.InvoiceNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	r.invoices = append(r.invoices, *invoice)
	return nil
}

func (r *fakeInvoiceRepo) FindByNumber(ctx context.Context, invoiceNumber string) (*model.InvoiceDetail, error) {
	for i := range r.invoices {
		if r.invoices[i].InvoiceNumber == invoiceNumber {
			return &r.invoices[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeInvoiceRepo) ListByContract(ctx context.Context, contractID uuid.UUID, page, limit int) ([]model.InvoiceDetail, int64, error) {
	var out []model.InvoiceDetail
	for _, inv := range r.invoices {
		if inv.ContractID == contractID {
			out = append(out, inv)
		}
	}
	return out, int64(len(out)), nil
}

// --- deposits ---

type fakeDepositRepo struct {
	deposits map[uuid.UUID]*model.DepositDetail
}

func newFakeDepositRepo() *fakeDepositRepo {
	return &fakeDepositRepo{deposits: make(map[uuid.UUID]*model.DepositDetail)}
}

func (r *fakeDepositRepo) Upsert(ctx context.Context, deposit *model.DepositDetail) error {
	if existing, ok := r.deposits[deposit.ContractID]; ok {
		deposit.ID = existing.ID
	} else if deposit.ID == uuid.Nil {
		deposit.ID = uuid.New()
	}
	r.deposits[deposit.ContractID] = deposit
	return nil
}

func (r *fakeDepositRepo) FindByContract(ctx context.Context, contractID uuid.UUID) (*model.DepositDetail, error) {
	if d, ok := r.deposits[contractID]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// --- audit ---

type fakeAuditRepo struct {
	entries []model.AuditLog
}

func (r *fakeAuditRepo) Log(ctx context.Context, entry *model.AuditLog) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeAuditRepo) List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	return r.entries, int64(len(r.entries)), nil
}
