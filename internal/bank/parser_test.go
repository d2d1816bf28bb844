package bank

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

const ubaStatement = `UNITED BANK FOR AFRICA PLC
Statement of Account
Account Name: LAGOS WIDGETS LTD
Opening Balance: 100,000.00
05-Jan-2026 TRF from client invoice 042 50,000.00 150,000.00
06-Jan-2026 SMS Charge 5,000.00 145,000.00
Closing Balance: 145,000.00
`

func TestParseStatement_UBARoundTrip(t *testing.T) {
	res, err := ParseStatement(ubaStatement, "Lagos Widgets")
	if err != nil {
		t.Fatalf("ParseStatement failed: %v", err)
	}
	if res.BankName != "United Bank for Africa" {
		t.Errorf("BankName = %q", res.BankName)
	}
	if len(res.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(res.Transactions))
	}

	first := res.Transactions[0]
	if first.Type != TypeIncome {
		t.Errorf("first.Type = %s, want income", first.Type)
	}
	if !first.Amount.Equal(decimal.NewFromInt(50_000)) {
		t.Errorf("first.Amount = %s, want 50000", first.Amount)
	}
	if first.Date.Day() != 5 || first.Date.Month() != 1 || first.Date.Year() != 2026 {
		t.Errorf("first.Date = %s", first.Date)
	}
	if first.Category != nil {
		t.Error("income must not be categorised")
	}
	if first.ID == "" {
		t.Error("transactions must get generated ids")
	}

	second := res.Transactions[1]
	if second.Type != TypeExpense {
		t.Errorf("second.Type = %s, want expense", second.Type)
	}
	if !second.Amount.Equal(decimal.NewFromInt(5_000)) {
		t.Errorf("second.Amount = %s, want 5000", second.Amount)
	}
	if !second.Compliance.IsBankCharge {
		t.Error("SMS charge must be flagged as a bank charge")
	}
	if second.Meta.BankName != "United Bank for Africa" {
		t.Errorf("second.Meta.BankName = %q", second.Meta.BankName)
	}
}

func TestParseStatement_KudaRoundTrip(t *testing.T) {
	text := `Kuda Microfinance Bank
Account Statement
Opening Balance 20,000.00
03/02/2026 Transfer from OLU 10,000.00 30,000.00
04/02/2026 POS purchase groceries 2,500.00 27,500.00
`
	res, err := ParseStatement(text, "Lagos Widgets")
	if err != nil {
		t.Fatalf("ParseStatement failed: %v", err)
	}
	if res.BankName != "Kuda Microfinance Bank" {
		t.Errorf("BankName = %q", res.BankName)
	}
	if len(res.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(res.Transactions))
	}
	if res.Transactions[0].Type != TypeIncome || !res.Transactions[0].Amount.Equal(decimal.NewFromInt(10_000)) {
		t.Errorf("first = %s %s, want income 10000", res.Transactions[0].Type, res.Transactions[0].Amount)
	}
	if res.Transactions[0].Payee != "OLU" {
		t.Errorf("Payee = %q, want OLU", res.Transactions[0].Payee)
	}
	if res.Transactions[1].Type != TypeExpense || !res.Transactions[1].Amount.Equal(decimal.NewFromInt(2_500)) {
		t.Errorf("second = %s %s, want expense 2500", res.Transactions[1].Type, res.Transactions[1].Amount)
	}
}

func TestParseStatement_EmptyDocument(t *testing.T) {
	for _, text := range []string{"", "   \n\t  "} {
		if _, err := ParseStatement(text, "Biz"); !errors.Is(err, ErrEmptyDocument) {
			t.Errorf("ParseStatement(%q) err = %v, want ErrEmptyDocument", text, err)
		}
	}
}

func TestParseStatement_UnsupportedBank(t *testing.T) {
	_, err := ParseStatement("First Imaginary Bank\n01/01/2026 something 10.00 20.00\n", "Biz")
	var unsupported *UnsupportedBankError
	if !errors.As(err, &unsupported) {
		t.Fatalf("err = %v, want UnsupportedBankError", err)
	}
	if !strings.Contains(unsupported.Snippet, "First Imaginary Bank") {
		t.Errorf("Snippet = %q, want document head", unsupported.Snippet)
	}
}

// A statutory-charge narration forces expense even when the balance
// arithmetic reads the movement as income.
func TestParseStatement_StrongKeywordOverride(t *testing.T) {
	text := `UNITED BANK FOR AFRICA PLC
Opening Balance: 100,000.00
05-Jan-2026 REVERSAL VAT adjustment 2,000.00 102,000.00
`
	res, err := ParseStatement(text, "Biz")
	if err != nil {
		t.Fatalf("ParseStatement failed: %v", err)
	}
	if len(res.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(res.Transactions))
	}
	tx := res.Transactions[0]
	if tx.Type != TypeExpense {
		t.Errorf("Type = %s, want expense despite credit arithmetic", tx.Type)
	}
	if tx.Compliance.FlaggedForReview {
		t.Error("default options must not flag the override for review")
	}
}

func TestParseStatement_StrictBalanceCheckFlagsOverride(t *testing.T) {
	text := `UNITED BANK FOR AFRICA PLC
Opening Balance: 100,000.00
05-Jan-2026 REVERSAL VAT adjustment 2,000.00 102,000.00
`
	res, err := ParseStatementWithOptions(text, "Biz", Options{StrictBalanceCheck: true})
	if err != nil {
		t.Fatalf("ParseStatement failed: %v", err)
	}
	if len(res.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(res.Transactions))
	}
	if !res.Transactions[0].Compliance.FlaggedForReview {
		t.Error("strict mode must flag arithmetic/keyword disagreement for review")
	}
}

// Without an opening balance or a satisfiable differencing check, type falls
// back to direction keywords and the first non-balance candidate.
func TestParseStatement_KeywordFallback(t *testing.T) {
	text := `UNITED BANK FOR AFRICA PLC
05-Jan-2026 NIP transfer from ADE 7,000.00 99,000.00
`
	res, err := ParseStatement(text, "Biz")
	if err != nil {
		t.Fatalf("ParseStatement failed: %v", err)
	}
	if len(res.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(res.Transactions))
	}
	tx := res.Transactions[0]
	if tx.Type != TypeIncome {
		t.Errorf("Type = %s, want income from narration keywords", tx.Type)
	}
	if !tx.Amount.Equal(decimal.NewFromInt(7_000)) {
		t.Errorf("Amount = %s, want 7000", tx.Amount)
	}
}

func TestParseStatement_MalformedLinesAreCountedNotFatal(t *testing.T) {
	text := `UNITED BANK FOR AFRICA PLC
Opening Balance: 100,000.00
05-Jan-2026 narration without any amounts at all
06-Jan-2026 TRF from client 50,000.00 150,000.00
`
	res, err := ParseStatement(text, "Biz")
	if err != nil {
		t.Fatalf("ParseStatement failed: %v", err)
	}
	if len(res.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(res.Transactions))
	}
	if res.SkippedLines != 1 {
		t.Errorf("SkippedLines = %d, want 1", res.SkippedLines)
	}
}

func TestParseStatement_RunningBalanceThreadsThroughWindows(t *testing.T) {
	text := `UNITED BANK FOR AFRICA PLC
Opening Balance: 10,000.00
01-Mar-2026 deposit one 5,000.00 15,000.00
02-Mar-2026 deposit two 5,000.00 20,000.00
03-Mar-2026 withdrawal 12,000.00 8,000.00
`
	res, err := ParseStatement(text, "Biz")
	if err != nil {
		t.Fatalf("ParseStatement failed: %v", err)
	}
	if len(res.Transactions) != 3 {
		t.Fatalf("got %d transactions, want 3", len(res.Transactions))
	}
	wantTypes := []string{TypeIncome, TypeIncome, TypeExpense}
	for i, want := range wantTypes {
		if res.Transactions[i].Type != want {
			t.Errorf("transaction %d type = %s, want %s", i, res.Transactions[i].Type, want)
		}
	}
}
