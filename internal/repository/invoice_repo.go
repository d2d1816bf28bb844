package repository

import (
	"context"

	"vouchbooks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Invoice, error)
	FindByIDWithItems(ctx context.Context, userID, id uuid.UUID) (*model.Invoice, error)
	List(ctx context.Context, userID uuid.UUID, status string, page, limit int) ([]model.Invoice, int64, error)
	Update(ctx context.Context, invoice *model.Invoice) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	CountByPrefix(ctx context.Context, userID uuid.UUID, prefix string) (int64, error)
	MarkOverdue(ctx context.Context, userID uuid.UUID) (int64, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).First(&invoice, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByIDWithItems(ctx context.Context, userID, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).Preload("Items").Preload("Customer").First(&invoice, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context, userID uuid.UUID, status string, page, limit int) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.Invoice{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetchQuery := db.Preload("Customer").Where("user_id = ?", userID)
	if status != "" {
		fetchQuery = fetchQuery.Where("status = ?", status)
	}
	if err := fetchQuery.Order("issued_at desc, created_at desc").Offset(offset).Limit(limit).Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Save(invoice).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Invoice{}).Error
}

func (r *invoiceRepository) CountByPrefix(ctx context.Context, userID uuid.UUID, prefix string) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.Invoice{}).
		Where("user_id = ? AND invoice_no LIKE ?", userID, prefix+"%").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MarkOverdue flips SENT invoices past their due date to OVERDUE and reports
// how many rows changed.
func (r *invoiceRepository) MarkOverdue(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := GetDB(ctx, r.db).Model(&model.Invoice{}).
		Where("user_id = ? AND status = ? AND due_at IS NOT NULL AND due_at < CURRENT_DATE", userID, model.InvoiceStatusSent).
		Update("status", model.InvoiceStatusOverdue)
	return res.RowsAffected, res.Error
}
