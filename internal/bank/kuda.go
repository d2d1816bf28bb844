package bank

import (
	"regexp"
	"strings"
)

// kudaAdapter parses Kuda Microfinance Bank statements. Kuda uses
// dd/mm/yyyy dates and a tighter line grouping than the legacy banks.
type kudaAdapter struct {
	layout layout
}

// NewKudaAdapter returns the Kuda statement adapter.
func NewKudaAdapter() Adapter {
	return &kudaAdapter{
		layout: layout{
			bank:        "Kuda Microfinance Bank",
			datePattern: regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`),
			dateLayouts: []string{"02/01/2006"},
			ignorePatterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)^page \d+`),
				regexp.MustCompile(`(?i)^(transaction history|account statement)`),
				regexp.MustCompile(`(?i)^(money in|money out|category|balance)$`),
				regexp.MustCompile(`(?i)^(opening|closing) balance`),
				regexp.MustCompile(`(?i)^generated (on|by)`),
			},
			maxContextLines: 3,
		},
	}
}

func (a *kudaAdapter) Bank() string { return a.layout.bank }

func (a *kudaAdapter) CanParse(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "kuda microfinance bank") || strings.Contains(lower, "kuda bank")
}

func (a *kudaAdapter) Parse(text, businessName string, opts Options) Result {
	return extract(a.layout, text, businessName, opts)
}
