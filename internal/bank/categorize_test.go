package bank

import "testing"

func TestCategorize_IncomeIsNeverCategorised(t *testing.T) {
	if got := Categorize("fuel purchase", "fuel purchase at nnpc", TypeIncome); got != nil {
		t.Errorf("Categorize(income) = %+v, want nil", got)
	}
}

func TestCategorize_NoMatchReturnsNil(t *testing.T) {
	if got := Categorize("sundry purchase", "sundry purchase lagos", TypeExpense); got != nil {
		t.Errorf("Categorize = %+v, want nil for unmatched text", got)
	}
}

// Rule order is a priority list: the first rule in declaration order with a
// matching keyword wins, even when later rules also match.
func TestCategorize_PriorityOrder(t *testing.T) {
	got := Categorize("rent and hosting fee", "", TypeExpense)
	if got == nil {
		t.Fatal("expected a category")
	}
	if got.CategoryID != "web-software" {
		t.Errorf("CategoryID = %s, want web-software (hosting precedes rent in rule order)", got.CategoryID)
	}
}

func TestCategorize_Rules(t *testing.T) {
	tests := []struct {
		name           string
		description    string
		narration      string
		wantID         string
		wantDeductible bool
	}{
		{"airtime", "MTN airtime", "", "communication", true},
		{"fuel", "diesel for generator", "", "fuel", true},
		{"ride hailing", "Bolt trip to client site", "", "transport", true},
		{"electricity", "IKEDC prepaid", "", "utilities", true},
		{"meals are not deductible", "team lunch", "", "meals", false},
		{"software", "annual SaaS subscription", "", "web-software", true},
		{"payroll", "march salaries", "", "salaries", true},
		{"rent", "office rent Q1", "", "rent", true},
		{"stamp duty", "stamp duty", "", "bank-charges", true},
		{"match via narration", "", "paid landlord for shop", "rent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Categorize(tt.description, tt.narration, TypeExpense)
			if got == nil {
				t.Fatalf("Categorize(%q, %q) = nil", tt.description, tt.narration)
			}
			if got.CategoryID != tt.wantID {
				t.Errorf("CategoryID = %s, want %s", got.CategoryID, tt.wantID)
			}
			if got.IsDeductible != tt.wantDeductible {
				t.Errorf("IsDeductible = %v, want %v", got.IsDeductible, tt.wantDeductible)
			}
		})
	}
}
