package service

import (
	"context"
	"testing"

	"leasebackend/internal/model"
)

func newContractService(repo *fakeContractRepo) ContractService {
	return NewContractService(repo, &fakeAuditRepo{}, fakeTxManager{}, testLogger())
}

func validCreateRequest() CreateContractRequest {
	return CreateContractRequest{
		ContractNo:   "HT-2025-010",
		CustomerName: "Beta Retail Ltd",
		RoomNumber:   "105",
		TaxRate:      "0.05",
		TotalRent:    "126000",
		RentPeriods: []RentPeriodRequest{
			{StartDate: "2025-01-01", EndDate: "2025-12-31", MonthlyRent: "10000"},
		},
	}
}

func TestCreateContract(t *testing.T) {
	repo := newFakeContractRepo()
	svc := newContractService(repo)

	resp, err := svc.CreateContract(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("CreateContract: %v", err)
	}
	if resp.Status != model.ContractActive {
		t.Errorf("status = %s, want ACTIVE", resp.Status)
	}
	if len(resp.RentPeriods) != 1 {
		t.Errorf("rent periods = %d, want 1", len(resp.RentPeriods))
	}
	if len(repo.contracts) != 1 {
		t.Errorf("stored contracts = %d, want 1", len(repo.contracts))
	}
}

func TestCreateContractDuplicateNumber(t *testing.T) {
	repo := newFakeContractRepo()
	svc := newContractService(repo)
	ctx := context.Background()

	if _, err := svc.CreateContract(ctx, validCreateRequest()); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateContract(ctx, validCreateRequest()); err == nil {
		t.Error("expected duplicate contract number to fail")
	}
}

func TestCreateContractRejectsBadTaxRate(t *testing.T) {
	svc := newContractService(newFakeContractRepo())
	ctx := context.Background()

	for _, rate := range []string{"0", "-0.05", "1.5", "five percent"} {
		req := validCreateRequest()
		req.TaxRate = rate
		if _, err := svc.CreateContract(ctx, req); err == nil {
			t.Errorf("tax rate %q accepted", rate)
		}
	}
}

func TestCreateContractRejectsBadPeriodDates(t *testing.T) {
	svc := newContractService(newFakeContractRepo())

	req := validCreateRequest()
	req.RentPeriods = []RentPeriodRequest{
		{StartDate: "2025-12-31", EndDate: "2025-01-01", MonthlyRent: "10000"},
	}
	if _, err := svc.CreateContract(context.Background(), req); err == nil {
		t.Error("expected end-before-start period to fail")
	}
}

func TestUpdateContractReplacesPeriods(t *testing.T) {
	repo := newFakeContractRepo()
	svc := newContractService(repo)
	ctx := context.Background()

	created, err := svc.CreateContract(ctx, validCreateRequest())
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateContract(ctx, created.ID, UpdateContractRequest{
		CustomerName: "Beta Retail Ltd",
		TaxRate:      "0.05",
		TotalRent:    "132000",
		Status:       model.ContractTerminated,
		RentPeriods: []RentPeriodRequest{
			{StartDate: "2025-01-01", EndDate: "2025-06-30", MonthlyRent: "10000"},
			{StartDate: "2025-07-01", EndDate: "2025-12-31", MonthlyRent: "12000"},
		},
	})
	if err != nil {
		t.Fatalf("UpdateContract: %v", err)
	}
	if updated.Status != model.ContractTerminated {
		t.Errorf("status = %s, want TERMINATED", updated.Status)
	}
	if len(updated.RentPeriods) != 2 {
		t.Errorf("rent periods = %d, want 2", len(updated.RentPeriods))
	}
}

func TestDeleteContract(t *testing.T) {
	repo := newFakeContractRepo()
	svc := newContractService(repo)
	ctx := context.Background()

	created, err := svc.CreateContract(ctx, validCreateRequest())
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteContract(ctx, created.ID); err != nil {
		t.Fatalf("DeleteContract: %v", err)
	}
	if _, err := svc.GetContract(ctx, created.ID); err == nil {
		t.Error("deleted contract still retrievable")
	}
}
