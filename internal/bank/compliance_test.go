package bank

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDetectCompliance(t *testing.T) {
	tests := []struct {
		name      string
		narration string
		amount    decimal.Decimal
		txType    string
		check     func(t *testing.T, f ComplianceFlags)
	}{
		{
			name:      "internal transfer keywords",
			narration: "internal transfer to savings",
			amount:    decimal.NewFromInt(20_000),
			txType:    TypeExpense,
			check: func(t *testing.T, f ComplianceFlags) {
				if !f.IsInternalTransfer {
					t.Error("want IsInternalTransfer")
				}
			},
		},
		{
			name:      "withholding tax",
			narration: "payment less WHT 10 percent",
			amount:    decimal.NewFromInt(90_000),
			txType:    TypeIncome,
			check: func(t *testing.T, f ComplianceFlags) {
				if !f.IsTaxCredit {
					t.Error("want IsTaxCredit")
				}
			},
		},
		{
			name:      "bank charge by keyword",
			narration: "card maintenance",
			amount:    decimal.NewFromInt(1_000),
			txType:    TypeExpense,
			check: func(t *testing.T, f ComplianceFlags) {
				if !f.IsBankCharge {
					t.Error("want IsBankCharge")
				}
			},
		},
		{
			name:      "fifty naira expense is an sms alert charge",
			narration: "alert",
			amount:    decimal.NewFromInt(50),
			txType:    TypeExpense,
			check: func(t *testing.T, f ComplianceFlags) {
				if !f.IsBankCharge {
					t.Error("want IsBankCharge from the 50 naira heuristic")
				}
			},
		},
		{
			name:      "fifty naira income is not a charge",
			narration: "gift",
			amount:    decimal.NewFromInt(50),
			txType:    TypeIncome,
			check: func(t *testing.T, f ComplianceFlags) {
				if f.IsBankCharge {
					t.Error("income must not trigger the 50 naira heuristic")
				}
			},
		},
		{
			name:      "crypto exchange always needs review",
			narration: "transfer to QUIDAX wallet",
			amount:    decimal.NewFromInt(500_000),
			txType:    TypeExpense,
			check: func(t *testing.T, f ComplianceFlags) {
				if !f.IsDigitalAsset {
					t.Error("want IsDigitalAsset")
				}
				if !f.FlaggedForReview {
					t.Error("digital asset hits are never auto-trusted")
				}
			},
		},
		{
			name:      "clean narration has no flags",
			narration: "invoice 0042 settlement",
			amount:    decimal.NewFromInt(150_000),
			txType:    TypeIncome,
			check: func(t *testing.T, f ComplianceFlags) {
				if f.IsInternalTransfer || f.IsTaxCredit || f.IsBankCharge || f.IsDigitalAsset || f.FlaggedForReview {
					t.Errorf("unexpected flags: %+v", f)
				}
				if len(f.Notes) != 0 {
					t.Errorf("unexpected notes: %v", f.Notes)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := DetectCompliance("", tt.narration, "Lagos Widgets", tt.amount, tt.txType)
			tt.check(t, flags)
		})
	}
}

func TestDetectCompliance_BusinessNameMarksOwnTransfer(t *testing.T) {
	flags := DetectCompliance("", "TRF Lagos Widgets main to ops", "Lagos Widgets", decimal.NewFromInt(10_000), TypeExpense)
	if !flags.IsInternalTransfer {
		t.Error("narration containing the business name must mark an internal transfer")
	}
}

func TestDetectCompliance_MultipleFlagsAccumulate(t *testing.T) {
	flags := DetectCompliance("", "binance deposit less wht and stamp duty", "Lagos Widgets", decimal.NewFromInt(75_000), TypeExpense)
	if !flags.IsTaxCredit || !flags.IsBankCharge || !flags.IsDigitalAsset {
		t.Errorf("want all three families to trigger, got %+v", flags)
	}
	if len(flags.Notes) != 3 {
		t.Errorf("got %d notes, want one per triggered rule", len(flags.Notes))
	}
}
