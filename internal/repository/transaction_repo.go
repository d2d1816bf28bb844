package repository

import (
	"context"
	"time"

	"vouchbooks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionFilter narrows List queries. Zero values mean "no constraint".
type TransactionFilter struct {
	Type             string
	CategoryID       string
	Source           string
	FlaggedForReview *bool
	StartDate        *time.Time
	EndDate          *time.Time
}

type TransactionRepository interface {
	Create(ctx context.Context, txn *model.Transaction) error
	CreateBatch(ctx context.Context, txns []model.Transaction) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Transaction, error)
	List(ctx context.Context, userID uuid.UUID, filter TransactionFilter, page, limit int) ([]model.Transaction, int64, error)
	ListForYear(ctx context.Context, userID uuid.UUID, year int) ([]model.Transaction, error)
	ListForMonth(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]model.Transaction, error)
	Update(ctx context.Context, txn *model.Transaction) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	CountFlagged(ctx context.Context, userID uuid.UUID) (int64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, txn *model.Transaction) error {
	return GetDB(ctx, r.db).Create(txn).Error
}

func (r *transactionRepository) CreateBatch(ctx context.Context, txns []model.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).CreateInBatches(txns, 100).Error
}

func (r *transactionRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Transaction, error) {
	var txn model.Transaction
	if err := GetDB(ctx, r.db).First(&txn, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) List(ctx context.Context, userID uuid.UUID, filter TransactionFilter, page, limit int) ([]model.Transaction, int64, error) {
	var txns []model.Transaction
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Transaction{}).Where("user_id = ?", userID)
	if filter.Type != "" {
		db = db.Where("type = ?", filter.Type)
	}
	if filter.CategoryID != "" {
		db = db.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Source != "" {
		db = db.Where("source = ?", filter.Source)
	}
	if filter.FlaggedForReview != nil {
		db = db.Where("flagged_for_review = ?", *filter.FlaggedForReview)
	}
	if filter.StartDate != nil {
		db = db.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		db = db.Where("date <= ?", *filter.EndDate)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("date desc, created_at desc").Offset(offset).Limit(limit).Find(&txns).Error; err != nil {
		return nil, 0, err
	}

	return txns, total, nil
}

func (r *transactionRepository) ListForYear(ctx context.Context, userID uuid.UUID, year int) ([]model.Transaction, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var txns []model.Transaction
	if err := GetDB(ctx, r.db).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date asc").
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *transactionRepository) ListForMonth(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]model.Transaction, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var txns []model.Transaction
	if err := GetDB(ctx, r.db).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date asc").
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *transactionRepository) Update(ctx context.Context, txn *model.Transaction) error {
	return GetDB(ctx, r.db).Save(txn).Error
}

func (r *transactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Transaction{}).Error
}

func (r *transactionRepository) CountFlagged(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Transaction{}).
		Where("user_id = ? AND flagged_for_review = ?", userID, true).
		Count(&count).Error
	return count, err
}
