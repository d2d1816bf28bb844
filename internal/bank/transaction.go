package bank

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType enum constants
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// CategoryResult is the deductibility category assigned to an expense.
type CategoryResult struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	IsDeductible bool   `json:"is_deductible"`
}

// ComplianceFlags marks statutory and review-worthy properties of an
// extracted transaction. Several flags can be true at once; Notes carries one
// human-readable line per triggered rule.
type ComplianceFlags struct {
	IsInternalTransfer bool     `json:"is_internal_transfer"`
	IsTaxCredit        bool     `json:"is_tax_credit"`
	IsBankCharge       bool     `json:"is_bank_charge"`
	IsDigitalAsset     bool     `json:"is_digital_asset"`
	FlaggedForReview   bool     `json:"flagged_for_review"`
	Notes              []string `json:"notes,omitempty"`
}

// Provenance records where an extracted transaction came from.
type Provenance struct {
	BankName string `json:"bank_name"`
	RawText  string `json:"raw_text"`
}

// ExtractedTransaction is one financial movement parsed out of a bank
// statement. Instances are immutable once emitted.
type ExtractedTransaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"` // always positive; direction is Type
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Narration   string          `json:"narration"`
	Payee       string          `json:"payee,omitempty"`
	Category    *CategoryResult `json:"category,omitempty"`
	Compliance  ComplianceFlags `json:"compliance"`
	Meta        Provenance      `json:"meta"`
}

// Result is the outcome of parsing one statement. SkippedLines counts
// candidate transaction lines dropped by the best-effort heuristics, so
// under-extraction is visible to callers instead of silent.
type Result struct {
	BankName     string                 `json:"bank_name"`
	Transactions []ExtractedTransaction `json:"transactions"`
	SkippedLines int                    `json:"skipped_lines"`
}
