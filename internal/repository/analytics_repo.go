package repository

import (
	"context"
	"fmt"
	"time"

	"vouchbooks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalyticsRepository interface {
	GetTotalsByType(ctx context.Context, userID uuid.UUID, txType string, start, end time.Time) (total float64, count int, err error)
	GetDeductibleTotal(ctx context.Context, userID uuid.UUID, start, end time.Time) (float64, error)
	GetTopCategories(ctx context.Context, userID uuid.UUID, start, end time.Time, limit int) ([]model.CategoryBreakdown, error)
	GetMonthlyTotals(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]model.MonthlyTotal, error)
	CountFlagged(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetTotalsByType(ctx context.Context, userID uuid.UUID, txType string, start, end time.Time) (float64, int, error) {
	var result struct {
		Total float64
		Count int
	}
	r.db.WithContext(ctx).Table("transactions").
		Select("COALESCE(SUM(amount), 0) as total, COUNT(*) as count").
		Where("user_id = ? AND type = ? AND is_internal_transfer = false AND date >= ? AND date <= ?", userID, txType, start, end).
		Scan(&result)
	return result.Total, result.Count, nil
}

func (r *analyticsRepository) GetDeductibleTotal(ctx context.Context, userID uuid.UUID, start, end time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Table("transactions").
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ? AND is_deductible = true AND is_internal_transfer = false AND date >= ? AND date <= ?",
			userID, model.TransactionTypeExpense, start, end).
		Scan(&total).Error
	return total, err
}

func (r *analyticsRepository) GetTopCategories(ctx context.Context, userID uuid.UUID, start, end time.Time, limit int) ([]model.CategoryBreakdown, error) {
	var breakdowns []model.CategoryBreakdown
	if err := r.db.WithContext(ctx).Table("transactions").
		Select("category_id, category_name, COUNT(*) as count, SUM(amount) as total_amount, bool_or(is_deductible) as is_deductible").
		Where("user_id = ? AND type = ? AND category_id <> '' AND date >= ? AND date <= ?",
			userID, model.TransactionTypeExpense, start, end).
		Group("category_id, category_name").
		Order("total_amount DESC").
		Limit(limit).
		Scan(&breakdowns).Error; err != nil {
		return nil, fmt.Errorf("failed to query top categories: %w", err)
	}
	return breakdowns, nil
}

func (r *analyticsRepository) GetMonthlyTotals(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]model.MonthlyTotal, error) {
	var totals []model.MonthlyTotal
	if err := r.db.WithContext(ctx).Table("transactions").
		Select("to_char(date, 'YYYY-MM') as month, "+
			"COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0) as total_income, "+
			"COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) as total_expense").
		Where("user_id = ? AND is_internal_transfer = false AND date >= ? AND date <= ?", userID, start, end).
		Group("to_char(date, 'YYYY-MM')").
		Order("month ASC").
		Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to query monthly totals: %w", err)
	}
	return totals, nil
}

func (r *analyticsRepository) CountFlagged(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("transactions").
		Where("user_id = ? AND flagged_for_review = true AND date >= ? AND date <= ?", userID, start, end).
		Count(&count).Error
	return int(count), err
}
