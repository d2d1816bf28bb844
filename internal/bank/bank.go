// Package bank extracts transactions from PDF-derived bank statement text.
//
// Statement layouts differ per bank, so parsing goes through an ordered list
// of bank adapters: the first adapter that recognises the document parses it.
// The heuristics are best-effort per line — a malformed transaction line is
// skipped and counted, never fatal — but an unreadable document or an
// unrecognised bank fails the whole parse.
package bank

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyDocument is returned when PDF extraction produced no usable text.
var ErrEmptyDocument = errors.New("statement contains no extractable text")

// UnsupportedBankError is returned when no adapter recognises the statement.
// It carries the head of the document for support triage.
type UnsupportedBankError struct {
	Snippet string
}

func (e *UnsupportedBankError) Error() string {
	return fmt.Sprintf("no adapter recognises this bank statement (starts with %q)", e.Snippet)
}

// Options tunes adapter behaviour.
type Options struct {
	// StrictBalanceCheck surfaces disagreement between the statutory-charge
	// keyword override and the balance arithmetic as a review flag instead
	// of silently trusting the keywords.
	StrictBalanceCheck bool
}

// Adapter is a bank-specific statement parser.
type Adapter interface {
	// Bank returns the display name of the bank this adapter handles.
	Bank() string
	// CanParse reports whether the statement text looks like this bank's format.
	CanParse(text string) bool
	// Parse extracts transactions from recognised statement text.
	Parse(text, businessName string, opts Options) Result
}

// adapters is the dispatch order. Add new banks here; dispatch logic never
// changes.
var adapters = []Adapter{
	NewUBAAdapter(),
	NewKudaAdapter(),
}

// ParseStatement parses PDF-extracted statement text with default options.
func ParseStatement(text, businessName string) (*Result, error) {
	return ParseStatementWithOptions(text, businessName, Options{})
}

// ParseStatementWithOptions dispatches to the first adapter that recognises
// the document.
func ParseStatementWithOptions(text, businessName string, opts Options) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	for _, a := range adapters {
		if a.CanParse(text) {
			res := a.Parse(text, businessName, opts)
			return &res, nil
		}
	}

	snippet := strings.TrimSpace(text)
	if len(snippet) > 120 {
		snippet = snippet[:120]
	}
	return nil, &UnsupportedBankError{Snippet: snippet}
}
