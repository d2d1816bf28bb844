package service

import (
	"context"
	"fmt"
	"time"

	"vouchbooks/internal/model"
	"vouchbooks/internal/repository"

	"github.com/google/uuid"
)

type AnalyticsService interface {
	GetFinancialSummary(ctx context.Context, userID string, startDate, endDate string) (*model.FinancialSummary, error)
}

type analyticsService struct {
	repo repository.AnalyticsRepository
}

func NewAnalyticsService(repo repository.AnalyticsRepository) AnalyticsService {
	return &analyticsService{repo: repo}
}

// GetFinancialSummary aggregates the user's books over a date range. The
// range defaults to the current calendar year when unset.
func (s *analyticsService) GetFinancialSummary(ctx context.Context, userID string, startDate, endDate string) (*model.FinancialSummary, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	now := time.Now()
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year(), time.December, 31, 23, 59, 59, 0, time.UTC)

	if startDate != "" {
		if start, err = time.Parse("2006-01-02", startDate); err != nil {
			return nil, fmt.Errorf("invalid start_date: %w", err)
		}
	}
	if endDate != "" {
		if end, err = time.Parse("2006-01-02", endDate); err != nil {
			return nil, fmt.Errorf("invalid end_date: %w", err)
		}
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end_date must not precede start_date")
	}

	totalIncome, incomeCount, err := s.repo.GetTotalsByType(ctx, userUUID, model.TransactionTypeIncome, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate income: %w", err)
	}
	totalExpenses, expenseCount, err := s.repo.GetTotalsByType(ctx, userUUID, model.TransactionTypeExpense, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses: %w", err)
	}
	deductible, err := s.repo.GetDeductibleTotal(ctx, userUUID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate deductible expenses: %w", err)
	}
	topCategories, err := s.repo.GetTopCategories(ctx, userUUID, start, end, 5)
	if err != nil {
		return nil, err
	}
	monthly, err := s.repo.GetMonthlyTotals(ctx, userUUID, start, end)
	if err != nil {
		return nil, err
	}
	flagged, err := s.repo.CountFlagged(ctx, userUUID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count flagged transactions: %w", err)
	}

	return &model.FinancialSummary{
		TotalIncome:          totalIncome,
		TotalExpenses:        totalExpenses,
		DeductibleExpenses:   deductible,
		NetProfit:            totalIncome - totalExpenses,
		TransactionCount:     incomeCount + expenseCount,
		FlaggedForReview:     flagged,
		TopExpenseCategories: topCategories,
		MonthlyTotals:        monthly,
		TimeRangeStartDate:   start,
		TimeRangeEndDate:     end,
	}, nil
}
