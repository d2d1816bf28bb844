package bank

import (
	"regexp"
	"strings"
)

// ubaAdapter parses United Bank for Africa statements. UBA statements use
// dd-Mon-yyyy transaction dates and spread narration, amount and running
// balance over up to four physical lines after PDF extraction.
type ubaAdapter struct {
	layout layout
}

// NewUBAAdapter returns the UBA statement adapter.
func NewUBAAdapter() Adapter {
	return &ubaAdapter{
		layout: layout{
			bank:        "United Bank for Africa",
			datePattern: regexp.MustCompile(`\b\d{1,2}-[A-Za-z]{3}-\d{4}\b`),
			dateLayouts: []string{"2-Jan-2006", "02-Jan-2006"},
			ignorePatterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)^page \d+`),
				regexp.MustCompile(`(?i)^statement of account`),
				regexp.MustCompile(`(?i)^account (name|number|type)`),
				regexp.MustCompile(`(?i)^(currency|branch|period)`),
				regexp.MustCompile(`(?i)^date\s+(narration|description)`),
				regexp.MustCompile(`(?i)^(opening|closing) balance`),
				regexp.MustCompile(`(?i)^total (debit|credit)s?`),
				regexp.MustCompile(`(?i)(brought|carried) forward`),
			},
			maxContextLines: 4,
		},
	}
}

func (a *ubaAdapter) Bank() string { return a.layout.bank }

func (a *ubaAdapter) CanParse(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "united bank for africa") || strings.Contains(lower, "uba plc")
}

func (a *ubaAdapter) Parse(text, businessName string, opts Options) Result {
	return extract(a.layout, text, businessName, opts)
}
