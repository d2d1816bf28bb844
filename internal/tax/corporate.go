package tax

import "github.com/shopspring/decimal"

// CorporateTaxInput captures the figures needed to classify a company
// and estimate its CIT liability for a fiscal period.
type CorporateTaxInput struct {
	Turnover              decimal.Decimal
	AssessableProfit      decimal.Decimal
	TotalAssets           decimal.Decimal
	Sector                string
	IsExempt              bool // sector-based override, e.g. approved manufacturing incentives
	IsProfessionalService bool
}

// TaxCalculation is the result of classifying a company and computing its
// CIT and Development Levy liability.
type TaxCalculation struct {
	Turnover         decimal.Decimal `json:"turnover"`
	AssessableProfit decimal.Decimal `json:"assessable_profit"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	Sector           string          `json:"sector"`
	IsExempt         bool            `json:"is_exempt"`
	CompanyStatus    string          `json:"company_status"` // small or large
	TaxRate          decimal.Decimal `json:"tax_rate"`
	EstimatedCIT     decimal.Decimal `json:"estimated_cit"`
	DevelopmentLevy  decimal.Decimal `json:"development_levy"`
	TotalLiability   decimal.Decimal `json:"total_liability"`
}

// CalculateCorporateTax classifies a company as small or large and computes
// its CIT and Development Levy.
//
// Small companies (turnover <= 50M, assets < 250M, not a professional
// service) pay 0% CIT and no levy. Large companies pay 30% CIT plus the 4%
// Development Levy. An exemption override zeroes the CIT rate but does NOT
// change the classification: an exempted large company still owes the levy.
func CalculateCorporateTax(in CorporateTaxInput) TaxCalculation {
	isSmall := in.Turnover.LessThanOrEqual(SmallCompanyTurnoverCeiling) &&
		in.TotalAssets.LessThan(SmallCompanyAssetCeiling) &&
		!in.IsProfessionalService

	status := CompanyStatusLarge
	rate := CITRate
	if isSmall {
		status = CompanyStatusSmall
		rate = decimal.Zero
	}
	if in.IsExempt {
		rate = decimal.Zero
	}

	cit := decimal.Zero
	levy := decimal.Zero
	if in.AssessableProfit.IsPositive() {
		cit = in.AssessableProfit.Mul(rate)
		if status == CompanyStatusLarge {
			levy = in.AssessableProfit.Mul(DevelopmentLevyRate)
		}
	}

	return TaxCalculation{
		Turnover:         in.Turnover,
		AssessableProfit: in.AssessableProfit,
		TotalAssets:      in.TotalAssets,
		Sector:           in.Sector,
		IsExempt:         in.IsExempt,
		CompanyStatus:    status,
		TaxRate:          rate,
		EstimatedCIT:     cit,
		DevelopmentLevy:  levy,
		TotalLiability:   cit.Add(levy),
	}
}

// CalculateRentRelief returns the personal income tax rent relief:
// 20% of annual rent, capped at 500,000 naira.
func CalculateRentRelief(rentAmount decimal.Decimal) decimal.Decimal {
	if !rentAmount.IsPositive() {
		return decimal.Zero
	}
	relief := rentAmount.Mul(RentReliefRate)
	if relief.GreaterThan(RentReliefCap) {
		return RentReliefCap
	}
	return relief
}

// ComplianceCheck is the result of the wholly-and-exclusively expense gate.
type ComplianceCheck struct {
	IsCompliant bool   `json:"is_compliant"`
	Reason      string `json:"reason,omitempty"`
}

// ValidateExpenseCompliance applies the W&E deductibility gate: an expense
// needs third-party evidence and a meaningful description to be claimed.
func ValidateExpenseCompliance(hasEvidence bool, description string) ComplianceCheck {
	if !hasEvidence {
		return ComplianceCheck{
			IsCompliant: false,
			Reason:      "no receipt or VAT evidence attached",
		}
	}
	if len(description) < 3 {
		return ComplianceCheck{
			IsCompliant: false,
			Reason:      "description too short to establish business purpose",
		}
	}
	return ComplianceCheck{IsCompliant: true}
}
