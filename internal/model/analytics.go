package model

import (
	"time"
)

// FinancialSummary aggregates a user's transactions over a time range.
type FinancialSummary struct {
	TotalIncome          float64             `json:"total_income"`
	TotalExpenses        float64             `json:"total_expenses"`
	DeductibleExpenses   float64             `json:"deductible_expenses"`
	NetProfit            float64             `json:"net_profit"`
	TransactionCount     int                 `json:"transaction_count"`
	FlaggedForReview     int                 `json:"flagged_for_review"`
	TopExpenseCategories []CategoryBreakdown `json:"top_expense_categories"`
	MonthlyTotals        []MonthlyTotal      `json:"monthly_totals"`
	TimeRangeStartDate   time.Time           `json:"time_range_start_date"`
	TimeRangeEndDate     time.Time           `json:"time_range_end_date"`
}

// CategoryBreakdown represents one expense category's accumulated spend.
type CategoryBreakdown struct {
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Count        int     `json:"count"`
	TotalAmount  float64 `json:"total_amount"`
	IsDeductible bool    `json:"is_deductible"`
}

// MonthlyTotal represents one month's income and expense totals.
type MonthlyTotal struct {
	Month        string  `json:"month"` // "2026-01"
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
}
