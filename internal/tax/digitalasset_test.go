package tax

import (
	"testing"
)

func TestCalculateDigitalAssetTax(t *testing.T) {
	tests := []struct {
		name      string
		disposals []DigitalAssetDisposal
		wantGain  int64
		wantLoss  int64
		wantNet   int64
		wantTax   int64
	}{
		{
			name:      "no disposals",
			disposals: nil,
			wantGain:  0, wantLoss: 0, wantNet: 0, wantTax: 0,
		},
		{
			name: "single gain",
			disposals: []DigitalAssetDisposal{
				{AcquisitionCost: d(100_000), DisposalValue: d(350_000)},
			},
			wantGain: 250_000, wantLoss: 0, wantNet: 250_000, wantTax: 25_000,
		},
		{
			name: "loss offsets gain",
			disposals: []DigitalAssetDisposal{
				{AcquisitionCost: d(100_000), DisposalValue: d(300_000)},
				{AcquisitionCost: d(500_000), DisposalValue: d(420_000)},
			},
			wantGain: 200_000, wantLoss: 80_000, wantNet: 120_000, wantTax: 12_000,
		},
		{
			name: "net loss clamps to zero",
			disposals: []DigitalAssetDisposal{
				{AcquisitionCost: d(100_000), DisposalValue: d(150_000)},
				{AcquisitionCost: d(900_000), DisposalValue: d(200_000)},
			},
			wantGain: 50_000, wantLoss: 700_000, wantNet: 0, wantTax: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateDigitalAssetTax(tt.disposals)
			if !got.TotalGain.Equal(d(tt.wantGain)) {
				t.Errorf("TotalGain = %s, want %d", got.TotalGain, tt.wantGain)
			}
			if !got.TotalLoss.Equal(d(tt.wantLoss)) {
				t.Errorf("TotalLoss = %s, want %d", got.TotalLoss, tt.wantLoss)
			}
			if !got.NetCapitalGain.Equal(d(tt.wantNet)) {
				t.Errorf("NetCapitalGain = %s, want %d", got.NetCapitalGain, tt.wantNet)
			}
			if !got.TaxPayable.Equal(d(tt.wantTax)) {
				t.Errorf("TaxPayable = %s, want %d", got.TaxPayable, tt.wantTax)
			}
			if got.NetCapitalGain.IsNegative() {
				t.Error("NetCapitalGain must never be negative")
			}
		})
	}
}

func TestIsDigitalAsset(t *testing.T) {
	tests := []struct {
		category string
		want     bool
	}{
		{"Crypto Sales", true},
		{"BITCOIN purchase", true},
		{"NFT royalties", true},
		{"Digital Asset disposal", true},
		{"Utility token swap", true},
		{"Office Rent", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsDigitalAsset(tt.category); got != tt.want {
			t.Errorf("IsDigitalAsset(%q) = %v, want %v", tt.category, got, tt.want)
		}
	}
}
