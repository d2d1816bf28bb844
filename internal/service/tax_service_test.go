package service

import (
	"testing"
	"time"

	"vouchbooks/internal/model"

	"github.com/shopspring/decimal"
)

func TestBuildRecordsSkipsInternalTransfers(t *testing.T) {
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		{Type: model.TransactionTypeIncome, Amount: decimal.NewFromInt(500000), Date: day},
		{Type: model.TransactionTypeExpense, Amount: decimal.NewFromInt(20000), Date: day, IsInternalTransfer: true},
		{Type: model.TransactionTypeExpense, Amount: decimal.NewFromInt(15000), Date: day, IsDeductible: true},
	}

	records := buildRecords(txns)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, r := range records {
		if r.Amount.Equal(decimal.NewFromInt(20000)) {
			t.Errorf("internal transfer leaked into tax records: %v", r)
		}
	}
}

func TestBuildRecordsCarriesDigitalAssetFields(t *testing.T) {
	day := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		{
			Type:            model.TransactionTypeIncome,
			Amount:          decimal.NewFromInt(900000),
			Date:            day,
			IsDigitalAsset:  true,
			AcquisitionCost: decimal.NewFromInt(600000),
		},
	}

	records := buildRecords(txns)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if !records[0].IsDigitalAsset {
		t.Error("expected digital asset flag to carry over")
	}
	if !records[0].AcquisitionCost.Equal(decimal.NewFromInt(600000)) {
		t.Errorf("acquisition cost = %s, want 600000", records[0].AcquisitionCost)
	}
}
