package service

import (
	"context"
	"testing"
	"time"

	"leasebackend/internal/model"

	"github.com/google/uuid"
)

func seedVATRecord(t *testing.T, repo *fakeVATRepo, contractID uuid.UUID, status string, obligation time.Time) uuid.UUID {
	t.Helper()
	record := model.VATRecord{
		ContractID:        contractID,
		RelateType:        model.VATTriggerPayment,
		RelateID:          uuid.NewString(),
		VATAmount:         dec("476.19"),
		TaxObligationDate: obligation,
		Status:            status,
	}
	if status == model.VATStatusPaid {
		d := obligation
		record.PaymentDate = &d
	}
	if err := repo.Create(context.Background(), &record); err != nil {
		t.Fatal(err)
	}
	return record.ID
}

func TestMarkPaidSkipsAlreadyPaid(t *testing.T) {
	vatRepo := &fakeVATRepo{}
	svc := NewVATService(vatRepo, &fakeAuditRepo{}, testLogger())
	contractID := uuid.New()

	pendingID := seedVATRecord(t, vatRepo, contractID, model.VATStatusPending, date(2025, 1, 31))
	paidID := seedVATRecord(t, vatRepo, contractID, model.VATStatusPaid, date(2025, 2, 28))

	updated, err := svc.MarkPaid(context.Background(), MarkVATPaidRequest{
		RecordIDs:   []string{pendingID.String(), paidID.String()},
		PaymentDate: "2025-03-10",
	})
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if updated != 1 {
		t.Errorf("updated = %d, want 1", updated)
	}

	pending, _ := vatRepo.FindByID(context.Background(), pendingID)
	if pending.Status != model.VATStatusPaid {
		t.Errorf("pending record status = %s, want PAID", pending.Status)
	}
	if pending.PaymentDate == nil || !pending.PaymentDate.Equal(date(2025, 3, 10)) {
		t.Error("payment date not stamped on the transitioned record")
	}

	// The already-paid record keeps its original payment date
	paid, _ := vatRepo.FindByID(context.Background(), paidID)
	if !paid.PaymentDate.Equal(date(2025, 2, 28)) {
		t.Errorf("paid record payment date changed to %s", paid.PaymentDate.Format("2006-01-02"))
	}
}

func TestMarkPaidRejectsBadInput(t *testing.T) {
	svc := NewVATService(&fakeVATRepo{}, &fakeAuditRepo{}, testLogger())

	if _, err := svc.MarkPaid(context.Background(), MarkVATPaidRequest{
		RecordIDs:   []string{"not-a-uuid"},
		PaymentDate: "2025-03-10",
	}); err == nil {
		t.Error("expected error for malformed record id")
	}

	if _, err := svc.MarkPaid(context.Background(), MarkVATPaidRequest{
		RecordIDs:   []string{uuid.NewString()},
		PaymentDate: "10/03/2025",
	}); err == nil {
		t.Error("expected error for malformed payment date")
	}
}

func TestListRecordsFilters(t *testing.T) {
	vatRepo := &fakeVATRepo{}
	svc := NewVATService(vatRepo, &fakeAuditRepo{}, testLogger())
	contractID := uuid.New()

	seedVATRecord(t, vatRepo, contractID, model.VATStatusPending, date(2025, 1, 31))
	seedVATRecord(t, vatRepo, contractID, model.VATStatusPaid, date(2025, 2, 28))
	seedVATRecord(t, vatRepo, uuid.New(), model.VATStatusPending, date(2025, 1, 31))

	records, total, err := svc.ListRecords(context.Background(), VATListFilter{
		ContractID: contractID.String(),
		Status:     model.VATStatusPending,
		Page:       1,
		Limit:      20,
	})
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if total != 1 || len(records) != 1 {
		t.Errorf("got %d records (total %d), want 1", len(records), total)
	}
	if records[0].Status != model.VATStatusPending {
		t.Errorf("status = %s", records[0].Status)
	}
}
