package tax

import (
	"time"

	"github.com/shopspring/decimal"
)

// VATCalculationResult holds output/input VAT and the net payable for one
// filing period.
type VATCalculationResult struct {
	Period            string          `json:"period"` // e.g. "Jan 2026"
	Month             time.Month      `json:"month"`
	Year              int             `json:"year"`
	TaxableSales      decimal.Decimal `json:"taxable_sales"`
	TaxablePurchases  decimal.Decimal `json:"taxable_purchases"`
	OutputVAT         decimal.Decimal `json:"output_vat"`
	InputVAT          decimal.Decimal `json:"input_vat"`
	NetVATPayable     decimal.Decimal `json:"net_vat_payable"`
}

// CalculateVAT computes output and input VAT at the 7.5% standard rate from
// period sales/purchase totals. Exempt amounts are deducted from the taxable
// base first, and bases are clamped at zero. Net payable never goes negative;
// there is no refund path.
func CalculateVAT(totalSales, totalPurchases, exemptSales, exemptPurchases decimal.Decimal, month time.Month, year int) VATCalculationResult {
	taxableSales := clampZero(totalSales.Sub(exemptSales))
	taxablePurchases := clampZero(totalPurchases.Sub(exemptPurchases))

	outputVAT := taxableSales.Mul(VATStandardRate)
	inputVAT := taxablePurchases.Mul(VATStandardRate)

	return VATCalculationResult{
		Period:           time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006"),
		Month:            month,
		Year:             year,
		TaxableSales:     taxableSales,
		TaxablePurchases: taxablePurchases,
		OutputVAT:        outputVAT,
		InputVAT:         inputVAT,
		NetVATPayable:    clampZero(outputVAT.Sub(inputVAT)),
	}
}

// IsVATRegistrationRequired reports whether annual turnover meets the
// mandatory VAT registration threshold.
func IsVATRegistrationRequired(annualTurnover decimal.Decimal) bool {
	return annualTurnover.GreaterThanOrEqual(VATRegistrationThreshold)
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
