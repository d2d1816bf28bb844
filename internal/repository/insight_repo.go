package repository

import (
	"context"

	"vouchbooks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InsightRepository interface {
	Create(ctx context.Context, insight *model.Insight) error
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, limit int) ([]model.Insight, int64, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	ExistsUnread(ctx context.Context, userID uuid.UUID, code string) (bool, error)
}

type insightRepository struct {
	db *gorm.DB
}

func NewInsightRepository(db *gorm.DB) InsightRepository {
	return &insightRepository{db: db}
}

func (r *insightRepository) Create(ctx context.Context, insight *model.Insight) error {
	return GetDB(ctx, r.db).Create(insight).Error
}

func (r *insightRepository) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, limit int) ([]model.Insight, int64, error) {
	var insights []model.Insight
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.Insight{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetchQuery := db.Where("user_id = ?", userID)
	if unreadOnly {
		fetchQuery = fetchQuery.Where("is_read = ?", false)
	}
	if err := fetchQuery.Order("created_at desc").Offset(offset).Limit(limit).Find(&insights).Error; err != nil {
		return nil, 0, err
	}

	return insights, total, nil
}

func (r *insightRepository) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.Insight{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

// ExistsUnread reports whether the user already has an unread insight with
// the given rule code, so periodic evaluation does not stack duplicates.
func (r *insightRepository) ExistsUnread(ctx context.Context, userID uuid.UUID, code string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Insight{}).
		Where("user_id = ? AND code = ? AND is_read = ?", userID, code, false).
		Count(&count).Error
	return count > 0, err
}
