package repository

import (
	"context"

	"vouchbooks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FilingRepository interface {
	Create(ctx context.Context, filing *model.TaxFiling) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.TaxFiling, error)
	List(ctx context.Context, userID uuid.UUID, filingType, status string, page, limit int) ([]model.TaxFiling, int64, error)
	ListPendingReview(ctx context.Context, page, limit int) ([]model.TaxFiling, int64, error)
	Update(ctx context.Context, filing *model.TaxFiling) error
}

type filingRepository struct {
	db *gorm.DB
}

func NewFilingRepository(db *gorm.DB) FilingRepository {
	return &filingRepository{db: db}
}

func (r *filingRepository) Create(ctx context.Context, filing *model.TaxFiling) error {
	return GetDB(ctx, r.db).Create(filing).Error
}

func (r *filingRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.TaxFiling, error) {
	var filing model.TaxFiling
	if err := GetDB(ctx, r.db).First(&filing, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &filing, nil
}

func (r *filingRepository) List(ctx context.Context, userID uuid.UUID, filingType, status string, page, limit int) ([]model.TaxFiling, int64, error) {
	var filings []model.TaxFiling
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.TaxFiling{}).Where("user_id = ?", userID)
	if filingType != "" {
		query = query.Where("filing_type = ?", filingType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetchQuery := db.Where("user_id = ?", userID)
	if filingType != "" {
		fetchQuery = fetchQuery.Where("filing_type = ?", filingType)
	}
	if status != "" {
		fetchQuery = fetchQuery.Where("status = ?", status)
	}
	if err := fetchQuery.Order("created_at desc").Offset(offset).Limit(limit).Find(&filings).Error; err != nil {
		return nil, 0, err
	}

	return filings, total, nil
}

// ListPendingReview returns SUBMITTED filings across all users, for the admin
// review queue.
func (r *filingRepository) ListPendingReview(ctx context.Context, page, limit int) ([]model.TaxFiling, int64, error) {
	var filings []model.TaxFiling
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.TaxFiling{}).Where("status = ?", model.FilingStatusSubmitted).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("User").Where("status = ?", model.FilingStatusSubmitted).
		Order("submitted_at asc").Offset(offset).Limit(limit).Find(&filings).Error; err != nil {
		return nil, 0, err
	}

	return filings, total, nil
}

func (r *filingRepository) Update(ctx context.Context, filing *model.TaxFiling) error {
	return GetDB(ctx, r.db).Save(filing).Error
}
