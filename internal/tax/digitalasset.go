package tax

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DigitalAssetDisposal is one acquisition/disposal pair for CGT purposes.
type DigitalAssetDisposal struct {
	AcquisitionCost decimal.Decimal `json:"acquisition_cost"`
	DisposalValue   decimal.Decimal `json:"disposal_value"`
	Date            time.Time       `json:"date"`
}

// DigitalAssetTaxResult aggregates gains and losses across a list of
// disposals and computes the 10% CGT due.
type DigitalAssetTaxResult struct {
	DisposalCount  int             `json:"disposal_count"`
	TotalProceeds  decimal.Decimal `json:"total_proceeds"`
	TotalGain      decimal.Decimal `json:"total_gain"`
	TotalLoss      decimal.Decimal `json:"total_loss"`
	NetCapitalGain decimal.Decimal `json:"net_capital_gain"`
	TaxPayable     decimal.Decimal `json:"tax_payable"`
}

// CalculateDigitalAssetTax computes capital gains tax on digital asset
// disposals. Losses offset gains within the period but a net loss yields a
// zero result rather than a refund or carry-forward.
func CalculateDigitalAssetTax(disposals []DigitalAssetDisposal) DigitalAssetTaxResult {
	totalProceeds := decimal.Zero
	totalGain := decimal.Zero
	totalLoss := decimal.Zero

	for _, d := range disposals {
		totalProceeds = totalProceeds.Add(d.DisposalValue)
		gain := d.DisposalValue.Sub(d.AcquisitionCost)
		if gain.IsPositive() {
			totalGain = totalGain.Add(gain)
		} else {
			totalLoss = totalLoss.Add(gain.Abs())
		}
	}

	netGain := clampZero(totalGain.Sub(totalLoss))

	return DigitalAssetTaxResult{
		DisposalCount:  len(disposals),
		TotalProceeds:  totalProceeds,
		TotalGain:      totalGain,
		TotalLoss:      totalLoss,
		NetCapitalGain: netGain,
		TaxPayable:     netGain.Mul(DigitalAssetCGTRate),
	}
}

var digitalAssetMarkers = []string{
	"crypto",
	"bitcoin",
	"ethereum",
	"nft",
	"digital asset",
	"token",
}

// IsDigitalAsset reports whether a category or description refers to a
// digital asset class subject to CGT.
func IsDigitalAsset(category string) bool {
	lower := strings.ToLower(category)
	for _, marker := range digitalAssetMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
