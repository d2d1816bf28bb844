package repository

import (
	"context"

	"vouchbooks/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository interface {
	Get(ctx context.Context, key string) (*model.PlatformSetting, error)
	List(ctx context.Context) ([]model.PlatformSetting, error)
	Upsert(ctx context.Context, setting *model.PlatformSetting) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(ctx context.Context, key string) (*model.PlatformSetting, error) {
	var setting model.PlatformSetting
	if err := GetDB(ctx, r.db).First(&setting, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) List(ctx context.Context) ([]model.PlatformSetting, error) {
	var settings []model.PlatformSetting
	if err := GetDB(ctx, r.db).Order("key asc").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingRepository) Upsert(ctx context.Context, setting *model.PlatformSetting) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_by", "updated_at"}),
	}).Create(setting).Error
}
