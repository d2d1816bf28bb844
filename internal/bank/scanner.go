package bank

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// moneyPattern matches monetary tokens as they appear on Nigerian bank
// statements: optional thousands separators, always two decimal places.
var moneyPattern = regexp.MustCompile(`\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2}`)

// timePattern matches time-of-day tokens that PDF extraction mixes into
// transaction lines.
var timePattern = regexp.MustCompile(`\b\d{1,2}:\d{2}(?::\d{2})?\s?(?:AM|PM|am|pm)?\b`)

var openingBalancePattern = regexp.MustCompile(`(?i)opening\s+balance[^\n]*?(\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2})`)

// directional boilerplate stripped from descriptions; these words describe
// the channel, not the counterparty.
var boilerplateWords = []string{
	"inward", "outward", "transfer", "trf", "pos", "web", "atm", "airtime", "bills",
	"nip", "ussd", "mobile",
}

// moneyToken is one monetary value found in a context window, with its raw
// source text preserved for stripping.
type moneyToken struct {
	value decimal.Decimal
	raw   string
}

// scanMoneyTokens extracts every monetary token from a block of text in
// order of appearance.
func scanMoneyTokens(text string) []moneyToken {
	matches := moneyPattern.FindAllString(text, -1)
	tokens := make([]moneyToken, 0, len(matches))
	for _, m := range matches {
		v, err := decimal.NewFromString(strings.ReplaceAll(m, ",", ""))
		if err != nil {
			continue
		}
		tokens = append(tokens, moneyToken{value: v, raw: m})
	}
	return tokens
}

// findOpeningBalance locates the statement's declared opening balance.
// Returns zero when the statement does not declare one; the differencing
// heuristic then calibrates itself from the first accepted transaction.
func findOpeningBalance(text string) decimal.Decimal {
	m := openingBalancePattern.FindStringSubmatch(text)
	if len(m) < 2 {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return v
}

// cleanDescription reduces a raw context window to a short narration:
// dates, times and monetary tokens are stripped, then channel boilerplate
// words are trimmed away.
func cleanDescription(context string, datePattern *regexp.Regexp) string {
	s := datePattern.ReplaceAllString(context, " ")
	s = timePattern.ReplaceAllString(s, " ")
	s = moneyPattern.ReplaceAllString(s, " ")

	words := strings.Fields(s)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		lower := strings.ToLower(strings.Trim(w, ".,;:|/-"))
		if lower == "" || isBoilerplate(lower) {
			continue
		}
		kept = append(kept, w)
	}

	out := strings.Join(kept, " ")
	if len(out) > 140 {
		out = out[:140]
	}
	return strings.TrimSpace(out)
}

func isBoilerplate(word string) bool {
	for _, b := range boilerplateWords {
		if word == b {
			return true
		}
	}
	return false
}

var payeePattern = regexp.MustCompile(`(?i)\b(?:from|to)[:\s]+([A-Za-z][A-Za-z .'&-]{2,40})`)

// extractPayee pulls a counterparty name out of a narration when the text
// carries a from/to clause. Best effort; empty when absent.
func extractPayee(narration string) string {
	m := payeePattern.FindStringSubmatch(narration)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}
