package tax

import "github.com/shopspring/decimal"

// CompanyStatus enum constants
const (
	CompanyStatusSmall = "small"
	CompanyStatusLarge = "large"
)

// Statutory rates and thresholds under the Nigeria Tax Act 2025.
// All amounts are naira.
var (
	CITRate             = decimal.NewFromFloat(0.30)
	DevelopmentLevyRate = decimal.NewFromFloat(0.04)
	VATStandardRate     = decimal.NewFromFloat(0.075)
	DigitalAssetCGTRate = decimal.NewFromFloat(0.10)

	// A company is "small" (CIT-exempt) below both ceilings, unless it
	// renders professional services.
	SmallCompanyTurnoverCeiling = decimal.NewFromInt(50_000_000)
	SmallCompanyAssetCeiling    = decimal.NewFromInt(250_000_000)

	VATRegistrationThreshold = decimal.NewFromInt(25_000_000)

	RentReliefRate = decimal.NewFromFloat(0.20)
	RentReliefCap  = decimal.NewFromInt(500_000)

	PensionRate                 = decimal.NewFromFloat(0.08)
	NHFRate                     = decimal.NewFromFloat(0.025)
	ConsolidatedReliefAllowance = decimal.NewFromInt(200_000)
)
