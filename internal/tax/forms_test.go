package tax

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func personalProfile() Profile {
	return Profile{
		AccountType:    AccountTypePersonal,
		Name:           "Adaeze Obi",
		AnnualIncome:   d(4_000_000),
		PaysRent:       true,
		RentAmount:     d(1_200_000),
		ResidenceState: "Lagos",
	}
}

func businessProfile() Profile {
	return Profile{
		AccountType:    AccountTypeBusiness,
		BusinessName:   "Zenith Traders Ltd",
		Sector:         "retail",
		AnnualTurnover: d(80_000_000),
		TotalAssets:    d(20_000_000),
	}
}

func TestMapToFormA_PersonalReliefs(t *testing.T) {
	records := []Record{
		{Amount: d(500_000), Type: RecordTypeIncome},
		{Amount: d(120_000), Type: RecordTypeExpense, IsDeductible: true},
	}

	got := MapToFormA(personalProfile(), records, 2026)

	if !got.EmploymentIncome.Equal(d(4_000_000)) {
		t.Errorf("EmploymentIncome = %s, want 4000000", got.EmploymentIncome)
	}
	if !got.TradeIncome.Equal(d(500_000)) {
		t.Errorf("TradeIncome = %s, want 500000", got.TradeIncome)
	}
	if !got.PensionRelief.Equal(d(320_000)) {
		t.Errorf("PensionRelief = %s, want 320000", got.PensionRelief)
	}
	if !got.NHFRelief.Equal(d(100_000)) {
		t.Errorf("NHFRelief = %s, want 100000", got.NHFRelief)
	}
	if !got.ConsolidatedRelief.Equal(d(200_000)) {
		t.Errorf("ConsolidatedRelief = %s, want 200000", got.ConsolidatedRelief)
	}
	if !got.RentRelief.Equal(d(240_000)) {
		t.Errorf("RentRelief = %s, want 240000", got.RentRelief)
	}
	// 4,500,000 - (320,000 + 100,000 + 200,000 + 240,000)
	if !got.ChargeableIncome.Equal(d(3_640_000)) {
		t.Errorf("ChargeableIncome = %s, want 3640000", got.ChargeableIncome)
	}
}

func TestMapToFormA_BusinessProfileSkipsPersonalReliefs(t *testing.T) {
	got := MapToFormA(businessProfile(), []Record{{Amount: d(1_000_000), Type: RecordTypeIncome}}, 2026)

	if !got.EmploymentIncome.IsZero() || !got.PensionRelief.IsZero() || !got.NHFRelief.IsZero() || !got.ConsolidatedRelief.IsZero() {
		t.Error("business profiles must not receive personal employment reliefs")
	}
	if !got.TradeIncome.Equal(d(1_000_000)) {
		t.Errorf("TradeIncome = %s, want 1000000", got.TradeIncome)
	}
}

func TestMapToFormA_DigitalAssetDisposals(t *testing.T) {
	records := []Record{
		{Amount: d(300_000), Type: RecordTypeIncome, IsDigitalAsset: true, AcquisitionCost: d(100_000)},
		{Amount: d(150_000), Type: RecordTypeIncome},
	}

	got := MapToFormA(personalProfile(), records, 2026)

	if got.DigitalAssetTax.DisposalCount != 1 {
		t.Fatalf("DisposalCount = %d, want 1", got.DigitalAssetTax.DisposalCount)
	}
	if !got.DigitalAssetTax.TaxPayable.Equal(d(20_000)) {
		t.Errorf("digital asset TaxPayable = %s, want 20000", got.DigitalAssetTax.TaxPayable)
	}
}

func TestMapToCITReturn_LargeCompany(t *testing.T) {
	records := []Record{
		{Amount: d(60_000_000), Type: RecordTypeIncome},
		{Amount: d(10_000_000), Type: RecordTypeExpense, IsDeductible: true},
		{Amount: d(5_000_000), Type: RecordTypeExpense, IsDeductible: false},
	}

	got := MapToCITReturn(businessProfile(), records, 2026)

	if !got.Turnover.Equal(d(80_000_000)) {
		t.Errorf("Turnover = %s, want declared 80000000", got.Turnover)
	}
	if !got.DeductibleExpenses.Equal(d(10_000_000)) {
		t.Errorf("DeductibleExpenses = %s, want 10000000", got.DeductibleExpenses)
	}
	if !got.AssessableProfit.Equal(d(70_000_000)) {
		t.Errorf("AssessableProfit = %s, want 70000000", got.AssessableProfit)
	}
	if got.Calculation.CompanyStatus != CompanyStatusLarge {
		t.Fatalf("CompanyStatus = %s, want large", got.Calculation.CompanyStatus)
	}
	if got.IsNilReturn {
		t.Error("large company must not be a nil return")
	}
	// liability = 70M*0.30 + 70M*0.04 = 23.8M; ETR = 23.8/80*100 = 29.75
	if !got.ETRCheck.Equal(decimal.NewFromFloat(29.75)) {
		t.Errorf("ETRCheck = %s, want 29.75", got.ETRCheck)
	}
}

func TestMapToCITReturn_SmallCompanyNilReturn(t *testing.T) {
	profile := businessProfile()
	profile.AnnualTurnover = d(30_000_000)

	got := MapToCITReturn(profile, []Record{{Amount: d(30_000_000), Type: RecordTypeIncome}}, 2026)

	if got.Calculation.CompanyStatus != CompanyStatusSmall {
		t.Fatalf("CompanyStatus = %s, want small", got.Calculation.CompanyStatus)
	}
	if !got.IsNilReturn {
		t.Error("small company must produce a nil return")
	}
	if !got.Calculation.TotalLiability.IsZero() {
		t.Errorf("TotalLiability = %s, want 0", got.Calculation.TotalLiability)
	}
}

func TestMapToCITReturn_TurnoverFallsBackToRecords(t *testing.T) {
	profile := businessProfile()
	profile.AnnualTurnover = decimal.Zero

	got := MapToCITReturn(profile, []Record{{Amount: d(12_000_000), Type: RecordTypeIncome}}, 2026)

	if !got.Turnover.Equal(d(12_000_000)) {
		t.Errorf("Turnover = %s, want summed 12000000", got.Turnover)
	}
}

func TestMapToVATReturn_TheoreticalRate(t *testing.T) {
	records := []Record{
		{Amount: d(2_000_000), Type: RecordTypeIncome},
		{Amount: d(800_000), Type: RecordTypeExpense},
	}

	got := MapToVATReturn(businessProfile(), records, time.June, 2026)

	if got.UsedRecordedVAT {
		t.Error("no recorded VAT present, must use theoretical rate")
	}
	if !got.OutputVAT.Equal(d(150_000)) {
		t.Errorf("OutputVAT = %s, want 150000", got.OutputVAT)
	}
	if !got.InputVAT.Equal(d(60_000)) {
		t.Errorf("InputVAT = %s, want 60000", got.InputVAT)
	}
	if !got.NetVATPayable.Equal(d(90_000)) {
		t.Errorf("NetVATPayable = %s, want 90000", got.NetVATPayable)
	}
}

// VAT recorded at entry time wins over the recomputed 7.5% figures, and the
// net payable is re-derived from the overridden amounts.
func TestMapToVATReturn_RecordedVATOverride(t *testing.T) {
	records := []Record{
		{Amount: d(2_000_000), Type: RecordTypeIncome, VATAmount: d(148_000)},
		{Amount: d(800_000), Type: RecordTypeExpense, VATAmount: d(61_500)},
	}

	got := MapToVATReturn(businessProfile(), records, time.June, 2026)

	if !got.UsedRecordedVAT {
		t.Fatal("expected recorded VAT override")
	}
	if !got.OutputVAT.Equal(d(148_000)) {
		t.Errorf("OutputVAT = %s, want recorded 148000", got.OutputVAT)
	}
	if !got.InputVAT.Equal(d(61_500)) {
		t.Errorf("InputVAT = %s, want recorded 61500", got.InputVAT)
	}
	if !got.NetVATPayable.Equal(d(86_500)) {
		t.Errorf("NetVATPayable = %s, want 86500", got.NetVATPayable)
	}
}

func TestMapToVATReturn_ExemptSplit(t *testing.T) {
	records := []Record{
		{Amount: d(1_000_000), Type: RecordTypeIncome},
		{Amount: d(400_000), Type: RecordTypeIncome, VATExempt: true},
	}

	got := MapToVATReturn(businessProfile(), records, time.June, 2026)

	if !got.TotalSales.Equal(d(1_400_000)) {
		t.Errorf("TotalSales = %s, want 1400000", got.TotalSales)
	}
	if !got.ExemptSales.Equal(d(400_000)) {
		t.Errorf("ExemptSales = %s, want 400000", got.ExemptSales)
	}
	if !got.TaxableSales.Equal(d(1_000_000)) {
		t.Errorf("TaxableSales = %s, want 1000000", got.TaxableSales)
	}
}
