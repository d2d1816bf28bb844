package repository

import (
	"context"

	"vouchbooks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatementRepository interface {
	Create(ctx context.Context, statement *model.BankStatement) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.BankStatement, error)
	List(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.BankStatement, int64, error)
	Update(ctx context.Context, statement *model.BankStatement) error
}

type statementRepository struct {
	db *gorm.DB
}

func NewStatementRepository(db *gorm.DB) StatementRepository {
	return &statementRepository{db: db}
}

func (r *statementRepository) Create(ctx context.Context, statement *model.BankStatement) error {
	return GetDB(ctx, r.db).Create(statement).Error
}

func (r *statementRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.BankStatement, error) {
	var statement model.BankStatement
	if err := GetDB(ctx, r.db).First(&statement, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &statement, nil
}

func (r *statementRepository) List(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.BankStatement, int64, error) {
	var statements []model.BankStatement
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.BankStatement{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Where("user_id = ?", userID).Order("created_at desc").Offset(offset).Limit(limit).Find(&statements).Error; err != nil {
		return nil, 0, err
	}

	return statements, total, nil
}

func (r *statementRepository) Update(ctx context.Context, statement *model.BankStatement) error {
	return GetDB(ctx, r.db).Save(statement).Error
}
