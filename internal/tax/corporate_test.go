package tax

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestCalculateCorporateTax_SmallCompanyClassification(t *testing.T) {
	tests := []struct {
		name   string
		in     CorporateTaxInput
		status string
	}{
		{
			name:   "below both ceilings",
			in:     CorporateTaxInput{Turnover: d(10_000_000), AssessableProfit: d(2_000_000), TotalAssets: d(5_000_000)},
			status: CompanyStatusSmall,
		},
		{
			name:   "turnover exactly at ceiling is still small",
			in:     CorporateTaxInput{Turnover: d(50_000_000), AssessableProfit: d(8_000_000), TotalAssets: d(100_000_000)},
			status: CompanyStatusSmall,
		},
		{
			name:   "negative profit does not change classification",
			in:     CorporateTaxInput{Turnover: d(30_000_000), AssessableProfit: d(-4_000_000), TotalAssets: d(1_000_000)},
			status: CompanyStatusSmall,
		},
		{
			name:   "turnover above ceiling",
			in:     CorporateTaxInput{Turnover: d(50_000_001), AssessableProfit: d(8_000_000), TotalAssets: d(1_000_000)},
			status: CompanyStatusLarge,
		},
		{
			name:   "assets at ceiling",
			in:     CorporateTaxInput{Turnover: d(10_000_000), AssessableProfit: d(1_000_000), TotalAssets: d(250_000_000)},
			status: CompanyStatusLarge,
		},
		{
			name:   "professional service is never small",
			in:     CorporateTaxInput{Turnover: d(5_000_000), AssessableProfit: d(1_000_000), TotalAssets: d(0), IsProfessionalService: true},
			status: CompanyStatusLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateCorporateTax(tt.in)
			if got.CompanyStatus != tt.status {
				t.Fatalf("CompanyStatus = %s, want %s", got.CompanyStatus, tt.status)
			}
			if tt.status == CompanyStatusSmall {
				if !got.TaxRate.IsZero() {
					t.Errorf("small company TaxRate = %s, want 0", got.TaxRate)
				}
				if !got.DevelopmentLevy.IsZero() {
					t.Errorf("small company DevelopmentLevy = %s, want 0", got.DevelopmentLevy)
				}
			}
		})
	}
}

func TestCalculateCorporateTax_LargeCompanyLiability(t *testing.T) {
	got := CalculateCorporateTax(CorporateTaxInput{
		Turnover:         d(120_000_000),
		AssessableProfit: d(10_000_000),
		TotalAssets:      d(300_000_000),
	})

	if got.CompanyStatus != CompanyStatusLarge {
		t.Fatalf("CompanyStatus = %s, want large", got.CompanyStatus)
	}
	if !got.EstimatedCIT.Equal(d(3_000_000)) {
		t.Errorf("EstimatedCIT = %s, want 3000000", got.EstimatedCIT)
	}
	if !got.DevelopmentLevy.Equal(d(400_000)) {
		t.Errorf("DevelopmentLevy = %s, want 400000", got.DevelopmentLevy)
	}
	if !got.TotalLiability.Equal(d(3_400_000)) {
		t.Errorf("TotalLiability = %s, want 3400000", got.TotalLiability)
	}
}

// An exempted large company pays no CIT but still owes the 4% Development
// Levy: the exemption zeroes the rate, not the classification.
func TestCalculateCorporateTax_ExemptionKeepsLevy(t *testing.T) {
	got := CalculateCorporateTax(CorporateTaxInput{
		Turnover:         d(80_000_000),
		AssessableProfit: d(5_000_000),
		TotalAssets:      d(10_000_000),
		IsExempt:         true,
	})

	if got.CompanyStatus != CompanyStatusLarge {
		t.Fatalf("CompanyStatus = %s, want large", got.CompanyStatus)
	}
	if !got.EstimatedCIT.IsZero() {
		t.Errorf("EstimatedCIT = %s, want 0", got.EstimatedCIT)
	}
	if !got.DevelopmentLevy.Equal(d(200_000)) {
		t.Errorf("DevelopmentLevy = %s, want 200000", got.DevelopmentLevy)
	}
}

func TestCalculateCorporateTax_NonPositiveProfit(t *testing.T) {
	for _, profit := range []int64{0, -1_000_000} {
		got := CalculateCorporateTax(CorporateTaxInput{
			Turnover:         d(200_000_000),
			AssessableProfit: d(profit),
			TotalAssets:      d(400_000_000),
		})
		if !got.EstimatedCIT.IsZero() || !got.DevelopmentLevy.IsZero() || !got.TotalLiability.IsZero() {
			t.Errorf("profit %d: liability = %s, want 0", profit, got.TotalLiability)
		}
	}
}

func TestCalculateRentRelief(t *testing.T) {
	tests := []struct {
		name string
		rent decimal.Decimal
		want decimal.Decimal
	}{
		{"zero rent", d(0), d(0)},
		{"linear below cap", d(1_000_000), d(200_000)},
		{"exactly at cap boundary", d(2_500_000), d(500_000)},
		{"above cap is flat", d(6_000_000), d(500_000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateRentRelief(tt.rent); !got.Equal(tt.want) {
				t.Errorf("CalculateRentRelief(%s) = %s, want %s", tt.rent, got, tt.want)
			}
		})
	}
}

func TestValidateExpenseCompliance(t *testing.T) {
	tests := []struct {
		name        string
		hasEvidence bool
		description string
		compliant   bool
	}{
		{"evidence and description", true, "fuel for generator", true},
		{"no evidence", false, "fuel for generator", false},
		{"description too short", true, "ab", false},
		{"minimum description length", true, "abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateExpenseCompliance(tt.hasEvidence, tt.description)
			if got.IsCompliant != tt.compliant {
				t.Errorf("IsCompliant = %v, want %v (reason: %s)", got.IsCompliant, tt.compliant, got.Reason)
			}
			if !got.IsCompliant && got.Reason == "" {
				t.Error("non-compliant check must carry a reason")
			}
		})
	}
}
