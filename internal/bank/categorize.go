package bank

import "strings"

// categoryRule maps narration keywords to a deductibility category. Rules
// are evaluated in list order and the first match wins — the order is a
// deliberate priority, not a scoring system.
type categoryRule struct {
	id           string
	name         string
	isDeductible bool
	keywords     []string
}

var categoryRules = []categoryRule{
	{
		id: "communication", name: "Communication", isDeductible: true,
		keywords: []string{"airtime", "recharge", "mtn", "glo", "airtel", "9mobile", "data bundle", "data plan"},
	},
	{
		id: "fuel", name: "Fuel", isDeductible: true,
		keywords: []string{"fuel", "petrol", "diesel", "filling station", "nnpc", "total energies", "oando"},
	},
	{
		id: "transport", name: "Transport", isDeductible: true,
		keywords: []string{"uber", "bolt", "taxi", "transport", "bus fare", "flight", "logistics", "dispatch"},
	},
	{
		id: "utilities", name: "Utilities", isDeductible: true,
		keywords: []string{"electricity", "nepa", "phcn", "ikedc", "ekedc", "aedc", "water bill", "waste", "internet", "wifi"},
	},
	{
		// Meals carry personal-consumption risk; not deductible by default.
		id: "meals", name: "Meals", isDeductible: false,
		keywords: []string{"restaurant", "food", "eatery", "meal", "lunch", "dinner", "cafe", "chicken republic"},
	},
	{
		id: "web-software", name: "Web & Software", isDeductible: true,
		keywords: []string{"hosting", "domain", "software", "subscription", "saas", "aws", "google cloud", "microsoft", "zoom"},
	},
	{
		id: "salaries", name: "Salaries & Wages", isDeductible: true,
		keywords: []string{"salary", "salaries", "wages", "payroll", "staff payment"},
	},
	{
		id: "rent", name: "Rent", isDeductible: true,
		keywords: []string{"rent", "lease", "landlord"},
	},
	{
		id: "bank-charges", name: "Bank Charges", isDeductible: true,
		keywords: []string{"bank charge", "sms charge", "sms alert", "maintenance fee", "commission", "stamp duty"},
	},
}

// CategoryByID resolves a known category identifier, for callers that let
// the user pick a category explicitly.
func CategoryByID(id string) (CategoryResult, bool) {
	for _, rule := range categoryRules {
		if rule.id == id {
			return CategoryResult{
				CategoryID:   rule.id,
				CategoryName: rule.name,
				IsDeductible: rule.isDeductible,
			}, true
		}
	}
	return CategoryResult{}, false
}

// Categories lists every known category in priority order.
func Categories() []CategoryResult {
	out := make([]CategoryResult, 0, len(categoryRules))
	for _, rule := range categoryRules {
		out = append(out, CategoryResult{
			CategoryID:   rule.id,
			CategoryName: rule.name,
			IsDeductible: rule.isDeductible,
		})
	}
	return out
}

// Categorize assigns a deductibility category to an expense by keyword
// matching over the description and narration. Income is never categorised.
// Returns nil when nothing matches; callers treat that as uncategorised.
func Categorize(description, narration, txType string) *CategoryResult {
	if txType != TypeExpense {
		return nil
	}

	haystack := strings.ToLower(description + " " + narration)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return &CategoryResult{
					CategoryID:   rule.id,
					CategoryName: rule.name,
					IsDeductible: rule.isDeductible,
				}
			}
		}
	}
	return nil
}
