package bank

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
)

func TestScanMoneyTokens(t *testing.T) {
	tokens := scanMoneyTokens("TRF 05-Jan-2026 1,234.56 ref 0042 balance 150,000.00 then 75.00")
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}
	want := []string{"1234.56", "150000", "75"}
	for i, w := range tokens {
		expected, _ := decimal.NewFromString(want[i])
		if !w.value.Equal(expected) {
			t.Errorf("token %d = %s, want %s", i, w.value, expected)
		}
	}
}

func TestScanMoneyTokens_IgnoresIntegersAndDates(t *testing.T) {
	tokens := scanMoneyTokens("05-Jan-2026 invoice 0042 qty 10")
	if len(tokens) != 0 {
		t.Errorf("got %d tokens, want 0", len(tokens))
	}
}

func TestFindOpeningBalance(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int64
	}{
		{"labelled with colon", "Opening Balance: 100,000.00", 100_000},
		{"labelled inline", "opening balance as at 01-Jan 55,500.25\nmore", 55_500},
		{"absent", "no balances here", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findOpeningBalance(tt.text)
			if got.IntPart() != tt.want {
				t.Errorf("findOpeningBalance = %s, want %d", got, tt.want)
			}
		})
	}
}

func TestCleanDescription(t *testing.T) {
	datePattern := regexp.MustCompile(`\b\d{1,2}-[A-Za-z]{3}-\d{4}\b`)
	got := cleanDescription("05-Jan-2026 10:42 NIP TRF inward 50,000.00 from Client A 150,000.00", datePattern)
	if got != "from Client A" {
		t.Errorf("cleanDescription = %q, want %q", got, "from Client A")
	}
}

func TestExtractPayee(t *testing.T) {
	tests := []struct {
		narration string
		want      string
	}{
		{"NIP transfer from Chinedu Okafor 50,000.00", "Chinedu Okafor"},
		{"payment to Acme Supplies ref 99", "Acme Supplies ref"},
		{"sms alert charge", ""},
	}
	for _, tt := range tests {
		if got := extractPayee(tt.narration); got != tt.want {
			t.Errorf("extractPayee(%q) = %q, want %q", tt.narration, got, tt.want)
		}
	}
}
