package bank

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// balanceTolerance absorbs rounding and OCR noise in the balance
// differencing checks. One naira of slack.
var balanceTolerance = decimal.NewFromInt(1)

// strongExpenseKeywords force a transaction to expense regardless of what
// the balance arithmetic concluded: statutory charges are never income.
var strongExpenseKeywords = []string{
	"stamp duty", "fee", "charge", "levy", "vat", "tax",
}

var creditKeywords = []string{"credit", "inward", "inflow", "from", "received"}
var debitKeywords = []string{"debit", "outward", "pos", "atm", "withdrawal", "purchase"}

// layout describes how one bank's statement text is shaped. Adapters supply
// a layout; the extraction fold below is shared.
type layout struct {
	bank            string
	datePattern     *regexp.Regexp
	dateLayouts     []string
	ignorePatterns  []*regexp.Regexp
	maxContextLines int
}

// contextWindow is the group of physical lines belonging to one transaction.
// PDF extraction often splits a transaction's narration, amount and running
// balance across lines, so everything between two date anchors is one unit.
type contextWindow struct {
	date  time.Time
	lines []string
}

func (l layout) ignored(line string) bool {
	for _, p := range l.ignorePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

func (l layout) parseDate(token string) (time.Time, bool) {
	for _, lay := range l.dateLayouts {
		if t, err := time.Parse(lay, token); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// collectWindows scans statement lines for date anchors and gathers each
// anchor's trailing context, bounded by the next anchor or the layout's
// window size.
func collectWindows(l layout, text string) []contextWindow {
	lines := strings.Split(text, "\n")
	var windows []contextWindow

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || l.ignored(line) {
			continue
		}
		token := l.datePattern.FindString(line)
		if token == "" {
			continue
		}
		date, ok := l.parseDate(token)
		if !ok {
			continue
		}

		w := contextWindow{date: date, lines: []string{line}}
		for j := i + 1; j < len(lines) && len(w.lines) < l.maxContextLines; j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" || l.ignored(next) {
				continue
			}
			if l.datePattern.MatchString(next) {
				break
			}
			w.lines = append(w.lines, next)
		}
		windows = append(windows, w)
	}
	return windows
}

// extract runs the shared heuristic over a recognised statement. The running
// balance is threaded through the fold explicitly: each accepted transaction
// must explain the step from the previous balance to the window's trailing
// balance, within tolerance.
func extract(l layout, text, businessName string, opts Options) Result {
	windows := collectWindows(l, text)
	running := findOpeningBalance(text)

	res := Result{BankName: l.bank, Transactions: make([]ExtractedTransaction, 0, len(windows))}

	for _, w := range windows {
		context := strings.Join(w.lines, " ")
		tokens := scanMoneyTokens(context)
		if len(tokens) < 2 {
			// need at least one amount candidate plus the running balance
			res.SkippedLines++
			continue
		}

		lineBalance := tokens[len(tokens)-1].value
		candidates := tokens[:len(tokens)-1]

		amount, txType, matched := classifyByDifferencing(running, lineBalance, candidates)
		if !matched {
			txType = inferTypeFromKeywords(context)
			for _, c := range candidates {
				if !c.value.Equal(lineBalance) {
					amount = c.value
					break
				}
			}
		}

		if amount.IsZero() || amount.Equal(lineBalance) {
			res.SkippedLines++
			continue
		}

		arithmeticSaysIncome := matched && txType == TypeIncome
		overridden := false
		if txType != TypeExpense && hasStrongExpenseKeyword(context) {
			txType = TypeExpense
			overridden = true
		}

		description := cleanDescription(context, l.datePattern)
		flags := DetectCompliance(description, context, businessName, amount, txType)
		if overridden && arithmeticSaysIncome && opts.StrictBalanceCheck {
			flags.FlaggedForReview = true
			flags.Notes = append(flags.Notes, "Statutory charge keywords contradict balance arithmetic; verify amount direction")
		}

		var category *CategoryResult
		if txType == TypeExpense {
			category = Categorize(description, context, txType)
		}

		res.Transactions = append(res.Transactions, ExtractedTransaction{
			ID:          uuid.NewString(),
			Date:        w.date,
			Amount:      amount,
			Type:        txType,
			Description: description,
			Narration:   context,
			Payee:       extractPayee(context),
			Category:    category,
			Compliance:  flags,
			Meta:        Provenance{BankName: l.bank, RawText: w.lines[0]},
		})

		running = lineBalance
	}

	return res
}

// classifyByDifferencing tests each candidate amount against the running
// balance: a candidate that explains the balance as an inflow is income, as
// an outflow is expense. First candidate that fits wins.
func classifyByDifferencing(running, lineBalance decimal.Decimal, candidates []moneyToken) (decimal.Decimal, string, bool) {
	for _, c := range candidates {
		if running.Add(c.value).Sub(lineBalance).Abs().LessThanOrEqual(balanceTolerance) {
			return c.value, TypeIncome, true
		}
		if running.Sub(c.value).Sub(lineBalance).Abs().LessThanOrEqual(balanceTolerance) {
			return c.value, TypeExpense, true
		}
	}
	return decimal.Zero, "", false
}

// inferTypeFromKeywords is the fallback when no candidate satisfies the
// balance arithmetic. Defaults to expense: mislabelling income as expense
// gets caught at review, the reverse inflates turnover.
func inferTypeFromKeywords(context string) string {
	lower := strings.ToLower(context)
	for _, k := range creditKeywords {
		if strings.Contains(lower, k) {
			return TypeIncome
		}
	}
	for _, k := range debitKeywords {
		if strings.Contains(lower, k) {
			return TypeExpense
		}
	}
	return TypeExpense
}

func hasStrongExpenseKeyword(context string) bool {
	lower := strings.ToLower(context)
	for _, k := range strongExpenseKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
