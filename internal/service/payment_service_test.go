package service

import (
	"context"
	"testing"

	"leasebackend/internal/middleware"
	"leasebackend/internal/model"

	"github.com/google/uuid"
)

type paymentFixture struct {
	svc        PaymentService
	accounting *accountingFixture
}

func newPaymentFixture(contract *model.Contract) *paymentFixture {
	af := newAccountingFixture(contract)
	svc := NewPaymentService(
		af.paymentRepo, af.contractRepo, af.auditRepo, af.svc,
		fakeTxManager{}, nil, testLogger())
	return &paymentFixture{svc: svc, accounting: af}
}

func TestRecordPaymentRentBooksVAT(t *testing.T) {
	f := newPaymentFixture(standardContract())

	resp, err := f.svc.RecordPayment(context.Background(), RecordPaymentRequest{
		ContractID:  f.accounting.contract.ID.String(),
		PayDate:     "2025-01-15",
		Amount:      "21000",
		PaymentType: model.PaymentTypeRent,
	})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	// The receipt itself counts in the overpaid comparison: base 1000.00
	// plus 523.81 on the 11,000 collected ahead of recognition.
	if resp.VATAmount != "1523.81" {
		t.Errorf("VAT amount = %s, want 1523.81", resp.VATAmount)
	}
	if resp.VATRecordID == "" {
		t.Error("expected a VAT record id on a rent receipt")
	}
	if len(f.accounting.paymentRepo.payments) != 1 {
		t.Errorf("payments stored = %d, want 1", len(f.accounting.paymentRepo.payments))
	}
}

func TestRecordPaymentDepositBooksNoVAT(t *testing.T) {
	f := newPaymentFixture(standardContract())

	resp, err := f.svc.RecordPayment(context.Background(), RecordPaymentRequest{
		ContractID:  f.accounting.contract.ID.String(),
		PayDate:     "2025-01-15",
		Amount:      "20000",
		PaymentType: model.PaymentTypeDeposit,
	})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	if resp.VATAmount != "0.00" {
		t.Errorf("VAT amount = %s, want 0.00", resp.VATAmount)
	}
	if len(f.accounting.vatRepo.records) != 0 {
		t.Errorf("VAT rows = %d, want 0 for a deposit", len(f.accounting.vatRepo.records))
	}
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	f := newPaymentFixture(standardContract())

	_, err := f.svc.RecordPayment(context.Background(), RecordPaymentRequest{
		ContractID:  f.accounting.contract.ID.String(),
		PayDate:     "2025-01-15",
		Amount:      "-100",
		PaymentType: model.PaymentTypeRent,
	})
	if err == nil {
		t.Error("expected error for negative amount")
	}
	if len(f.accounting.paymentRepo.payments) != 0 {
		t.Error("rejected payment must not be stored")
	}
}

func TestRecordPaymentUnknownContract(t *testing.T) {
	f := newPaymentFixture(standardContract())

	_, err := f.svc.RecordPayment(context.Background(), RecordPaymentRequest{
		ContractID:  "0e4fedd2-7f7c-4a62-9a1c-000000000000",
		PayDate:     "2025-01-15",
		Amount:      "10000",
		PaymentType: model.PaymentTypeRent,
	})
	if err == nil {
		t.Error("expected error for unknown contract")
	}
}

func TestRecordPaymentAttributesAuditToUser(t *testing.T) {
	f := newPaymentFixture(standardContract())

	actor := uuid.New()
	ctx := middleware.ContextWithUserID(context.Background(), actor.String())

	if _, err := f.svc.RecordPayment(ctx, RecordPaymentRequest{
		ContractID:  f.accounting.contract.ID.String(),
		PayDate:     "2025-01-15",
		Amount:      "21000",
		PaymentType: model.PaymentTypeRent,
	}); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	entries := f.accounting.auditRepo.entries
	if len(entries) == 0 {
		t.Fatal("expected an audit entry for the payment")
	}
	last := entries[len(entries)-1]
	if last.UserID == nil {
		t.Fatal("audit entry has no user attribution")
	}
	if *last.UserID != actor {
		t.Errorf("audit user = %s, want %s", last.UserID, actor)
	}
}
