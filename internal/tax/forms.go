package tax

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordType enum constants for form-mapper input records
const (
	RecordTypeIncome  = "income"
	RecordTypeExpense = "expense"
)

// AccountType enum constants
const (
	AccountTypePersonal = "personal"
	AccountTypeBusiness = "business"
)

// Profile is the taxpayer snapshot the form mappers consume. It mirrors the
// stored user profile but carries no persistence concerns.
type Profile struct {
	AccountType           string
	Name                  string
	BusinessName          string
	Sector                string
	AnnualTurnover        decimal.Decimal
	TotalAssets           decimal.Decimal
	AnnualIncome          decimal.Decimal
	IsProfessionalService bool
	IsTaxExempt           bool
	PaysRent              bool
	RentAmount            decimal.Decimal
	TaxIdentityNumber     string
	NIN                   string
	BVN                   string
	ResidenceState        string
}

// Record is one stored transaction reduced to the fields the form mappers
// aggregate over.
type Record struct {
	Amount          decimal.Decimal
	Type            string // income or expense
	Date            time.Time
	CategoryName    string
	IsDeductible    bool
	IsDigitalAsset  bool
	AcquisitionCost decimal.Decimal // digital-asset disposals only
	VATAmount       decimal.Decimal // VAT actually recorded at entry time
	VATExempt       bool
}

// FormAData is the personal income tax (Form A) snapshot.
type FormAData struct {
	TaxpayerName       string                `json:"taxpayer_name"`
	TaxIdentityNumber  string                `json:"tax_identity_number"`
	NIN                string                `json:"nin"`
	ResidenceState     string                `json:"residence_state"`
	Year               int                   `json:"year"`
	EmploymentIncome   decimal.Decimal       `json:"employment_income"`
	TradeIncome        decimal.Decimal       `json:"trade_income"`
	TotalIncome        decimal.Decimal       `json:"total_income"`
	PensionRelief      decimal.Decimal       `json:"pension_relief"`
	NHFRelief          decimal.Decimal       `json:"nhf_relief"`
	ConsolidatedRelief decimal.Decimal       `json:"consolidated_relief"`
	RentRelief         decimal.Decimal       `json:"rent_relief"`
	TotalReliefs       decimal.Decimal       `json:"total_reliefs"`
	ChargeableIncome   decimal.Decimal       `json:"chargeable_income"`
	DigitalAssetTax    DigitalAssetTaxResult `json:"digital_asset_tax"`
}

// CITReturnData is the companies income tax return snapshot.
type CITReturnData struct {
	CompanyName        string                `json:"company_name"`
	TaxIdentityNumber  string                `json:"tax_identity_number"`
	Sector             string                `json:"sector"`
	Year               int                   `json:"year"`
	Turnover           decimal.Decimal       `json:"turnover"`
	TotalIncome        decimal.Decimal       `json:"total_income"`
	TotalExpenses      decimal.Decimal       `json:"total_expenses"`
	DeductibleExpenses decimal.Decimal       `json:"deductible_expenses"`
	AssessableProfit   decimal.Decimal       `json:"assessable_profit"`
	Calculation        TaxCalculation        `json:"calculation"`
	DigitalAssetTax    DigitalAssetTaxResult `json:"digital_asset_tax"`
	ETRCheck           decimal.Decimal       `json:"etr_check"` // effective tax rate, percent
	IsNilReturn        bool                  `json:"is_nil_return"`
}

// VATReturnData is the monthly VAT return snapshot.
type VATReturnData struct {
	BusinessName      string          `json:"business_name"`
	TaxIdentityNumber string          `json:"tax_identity_number"`
	TotalSales        decimal.Decimal `json:"total_sales"`
	ExemptSales       decimal.Decimal `json:"exempt_sales"`
	TotalPurchases    decimal.Decimal `json:"total_purchases"`
	ExemptPurchases   decimal.Decimal `json:"exempt_purchases"`
	UsedRecordedVAT   bool            `json:"used_recorded_vat"`
	VATCalculationResult
}

// recordTotals is the shared aggregation pass over a transaction list.
type recordTotals struct {
	income          decimal.Decimal
	expenses        decimal.Decimal
	deductible      decimal.Decimal
	exemptSales     decimal.Decimal
	exemptPurchases decimal.Decimal
	recordedOutput  decimal.Decimal
	recordedInput   decimal.Decimal
	disposals       []DigitalAssetDisposal
}

func aggregate(records []Record) recordTotals {
	t := recordTotals{
		income:          decimal.Zero,
		expenses:        decimal.Zero,
		deductible:      decimal.Zero,
		exemptSales:     decimal.Zero,
		exemptPurchases: decimal.Zero,
		recordedOutput:  decimal.Zero,
		recordedInput:   decimal.Zero,
	}

	for _, r := range records {
		switch r.Type {
		case RecordTypeIncome:
			t.income = t.income.Add(r.Amount)
			t.recordedOutput = t.recordedOutput.Add(r.VATAmount)
			if r.VATExempt {
				t.exemptSales = t.exemptSales.Add(r.Amount)
			}
			if r.IsDigitalAsset {
				t.disposals = append(t.disposals, DigitalAssetDisposal{
					AcquisitionCost: r.AcquisitionCost,
					DisposalValue:   r.Amount,
					Date:            r.Date,
				})
			}
		case RecordTypeExpense:
			t.expenses = t.expenses.Add(r.Amount)
			t.recordedInput = t.recordedInput.Add(r.VATAmount)
			if r.VATExempt {
				t.exemptPurchases = t.exemptPurchases.Add(r.Amount)
			}
			if r.IsDeductible {
				t.deductible = t.deductible.Add(r.Amount)
			}
		}
	}
	return t
}

// MapToFormA assembles the personal income tax form. Employment income comes
// from the declared annual income; trade income is the sum of recorded
// income transactions. Pension, NHF and the consolidated relief apply only
// to personal, non-business profiles.
func MapToFormA(profile Profile, records []Record, year int) FormAData {
	t := aggregate(records)

	employment := decimal.Zero
	pension := decimal.Zero
	nhf := decimal.Zero
	consolidated := decimal.Zero
	if profile.AccountType == AccountTypePersonal {
		employment = profile.AnnualIncome
		pension = employment.Mul(PensionRate)
		nhf = employment.Mul(NHFRate)
		consolidated = ConsolidatedReliefAllowance
	}

	rentRelief := decimal.Zero
	if profile.PaysRent {
		rentRelief = CalculateRentRelief(profile.RentAmount)
	}

	totalIncome := employment.Add(t.income)
	totalReliefs := pension.Add(nhf).Add(consolidated).Add(rentRelief)

	return FormAData{
		TaxpayerName:       profile.Name,
		TaxIdentityNumber:  profile.TaxIdentityNumber,
		NIN:                profile.NIN,
		ResidenceState:     profile.ResidenceState,
		Year:               year,
		EmploymentIncome:   employment,
		TradeIncome:        t.income,
		TotalIncome:        totalIncome,
		PensionRelief:      pension,
		NHFRelief:          nhf,
		ConsolidatedRelief: consolidated,
		RentRelief:         rentRelief,
		TotalReliefs:       totalReliefs,
		ChargeableIncome:   clampZero(totalIncome.Sub(totalReliefs)),
		DigitalAssetTax:    CalculateDigitalAssetTax(t.disposals),
	}
}

// MapToCITReturn assembles the companies income tax return. Turnover prefers
// the declared annual figure and falls back to the summed income records of
// the period. The ETR check is total liability over turnover as a percent, a
// sanity figure reviewers compare against the headline rate.
func MapToCITReturn(profile Profile, records []Record, year int) CITReturnData {
	t := aggregate(records)

	turnover := profile.AnnualTurnover
	if !turnover.IsPositive() {
		turnover = t.income
	}

	assessableProfit := turnover.Sub(t.deductible)

	calc := CalculateCorporateTax(CorporateTaxInput{
		Turnover:              turnover,
		AssessableProfit:      assessableProfit,
		TotalAssets:           profile.TotalAssets,
		Sector:                profile.Sector,
		IsExempt:              profile.IsTaxExempt,
		IsProfessionalService: profile.IsProfessionalService,
	})

	etr := decimal.Zero
	if turnover.IsPositive() {
		etr = calc.TotalLiability.Div(turnover).Mul(decimal.NewFromInt(100))
	}

	return CITReturnData{
		CompanyName:        profile.BusinessName,
		TaxIdentityNumber:  profile.TaxIdentityNumber,
		Sector:             profile.Sector,
		Year:               year,
		Turnover:           turnover,
		TotalIncome:        t.income,
		TotalExpenses:      t.expenses,
		DeductibleExpenses: t.deductible,
		AssessableProfit:   assessableProfit,
		Calculation:        calc,
		DigitalAssetTax:    CalculateDigitalAssetTax(t.disposals),
		ETRCheck:           etr,
		IsNilReturn:        calc.CompanyStatus == CompanyStatusSmall,
	}
}

// MapToVATReturn assembles the monthly VAT return. When transactions carry
// VAT recorded at entry time, those actual figures replace the theoretical
// 7.5%-of-base computation before the net payable is re-derived, since VAT
// actually charged can differ slightly from the statutory rate.
func MapToVATReturn(profile Profile, records []Record, month time.Month, year int) VATReturnData {
	t := aggregate(records)

	result := CalculateVAT(t.income, t.expenses, t.exemptSales, t.exemptPurchases, month, year)

	usedRecorded := false
	if t.recordedOutput.IsPositive() {
		result.OutputVAT = t.recordedOutput
		usedRecorded = true
	}
	if t.recordedInput.IsPositive() {
		result.InputVAT = t.recordedInput
		usedRecorded = true
	}
	if usedRecorded {
		result.NetVATPayable = clampZero(result.OutputVAT.Sub(result.InputVAT))
	}

	return VATReturnData{
		BusinessName:         profile.BusinessName,
		TaxIdentityNumber:    profile.TaxIdentityNumber,
		TotalSales:           t.income,
		ExemptSales:          t.exemptSales,
		TotalPurchases:       t.expenses,
		ExemptPurchases:      t.exemptPurchases,
		UsedRecordedVAT:      usedRecorded,
		VATCalculationResult: result,
	}
}
