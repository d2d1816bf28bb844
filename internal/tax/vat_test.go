package tax

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCalculateVAT(t *testing.T) {
	tests := []struct {
		name                                             string
		sales, purchases, exemptSales, exemptPurchases   int64
		wantOutput, wantInput, wantNet                   int64
	}{
		{"sales only", 1_000_000, 0, 0, 0, 75_000, 0, 75_000},
		{"input offsets output", 1_000_000, 400_000, 0, 0, 75_000, 30_000, 45_000},
		{"input exceeds output clamps to zero", 100_000, 2_000_000, 0, 0, 7_500, 150_000, 0},
		{"exempt sales reduce taxable base", 1_000_000, 0, 600_000, 0, 30_000, 0, 30_000},
		{"exempt exceeding totals clamps base", 100_000, 50_000, 900_000, 80_000, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateVAT(d(tt.sales), d(tt.purchases), d(tt.exemptSales), d(tt.exemptPurchases), time.January, 2026)
			if !got.OutputVAT.Equal(d(tt.wantOutput)) {
				t.Errorf("OutputVAT = %s, want %d", got.OutputVAT, tt.wantOutput)
			}
			if !got.InputVAT.Equal(d(tt.wantInput)) {
				t.Errorf("InputVAT = %s, want %d", got.InputVAT, tt.wantInput)
			}
			if !got.NetVATPayable.Equal(d(tt.wantNet)) {
				t.Errorf("NetVATPayable = %s, want %d", got.NetVATPayable, tt.wantNet)
			}
			if got.NetVATPayable.IsNegative() {
				t.Error("NetVATPayable must never be negative")
			}
		})
	}
}

func TestCalculateVAT_PeriodLabel(t *testing.T) {
	got := CalculateVAT(decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, time.March, 2026)
	if got.Period != "Mar 2026" {
		t.Errorf("Period = %q, want %q", got.Period, "Mar 2026")
	}
}

func TestIsVATRegistrationRequired(t *testing.T) {
	if IsVATRegistrationRequired(d(24_999_999)) {
		t.Error("24,999,999 must not require registration")
	}
	if !IsVATRegistrationRequired(d(25_000_000)) {
		t.Error("25,000,000 must require registration")
	}
}
