package bank

import (
	"strings"

	"github.com/shopspring/decimal"
)

var internalTransferKeywords = []string{
	"own account", "self transfer", "internal transfer", "between accounts", "same name",
}

var withholdingTaxKeywords = []string{"wht", "withholding tax"}

var bankChargeKeywords = []string{
	"bank charge", "sms charge", "sms alert", "card maintenance", "maintenance fee",
	"stamp duty", "commission", "transfer levy",
}

// cryptoExchangeKeywords name exchanges Nigerians commonly trade through.
// Matches are always flagged for review; digital-asset classification is
// never auto-trusted.
var cryptoExchangeKeywords = []string{
	"binance", "quidax", "bybit", "luno", "bundle", "yellow card", "patricia", "roqqu",
}

// smsAlertCharge is the flat 50 naira SMS notification debit; amount alone
// identifies it when the narration is uninformative.
var smsAlertCharge = decimal.NewFromInt(50)

// DetectCompliance scans a transaction's text for keyword families that
// carry tax consequences. Flags are independent; several can trigger on one
// transaction, and each triggered rule appends a note.
func DetectCompliance(description, narration, businessName string, amount decimal.Decimal, txType string) ComplianceFlags {
	var flags ComplianceFlags
	haystack := strings.ToLower(description + " " + narration)

	if matchesAny(haystack, internalTransferKeywords) ||
		(businessName != "" && strings.Contains(haystack, strings.ToLower(businessName))) {
		flags.IsInternalTransfer = true
		flags.Notes = append(flags.Notes, "Looks like a transfer between own accounts; likely not taxable income")
	}

	if matchesAny(haystack, withholdingTaxKeywords) {
		flags.IsTaxCredit = true
		flags.Notes = append(flags.Notes, "Withholding tax detected; may be claimable as a tax credit")
	}

	if matchesAny(haystack, bankChargeKeywords) ||
		(txType == TypeExpense && amount.Equal(smsAlertCharge)) {
		flags.IsBankCharge = true
		flags.Notes = append(flags.Notes, "Bank charge; deductible as a finance cost")
	}

	if matchesAny(haystack, cryptoExchangeKeywords) {
		flags.IsDigitalAsset = true
		flags.FlaggedForReview = true
		flags.Notes = append(flags.Notes, "Crypto exchange activity; digital asset CGT may apply, review required")
	}

	return flags
}

func matchesAny(haystack string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(haystack, k) {
			return true
		}
	}
	return false
}
