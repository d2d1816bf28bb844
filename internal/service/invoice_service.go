package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vouchbooks/internal/model"
	"vouchbooks/internal/repository"
	"vouchbooks/internal/tax"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type InvoiceItemRequest struct {
	Description string `json:"description" binding:"required"`
	Quantity    string `json:"quantity"` // Decimal string, defaults to 1
	UnitPrice   string `json:"unit_price" binding:"required"`
}

type CreateInvoiceRequest struct {
	CustomerID string               `json:"customer_id"`
	IssuedAt   string               `json:"issued_at" binding:"required"` // "2006-01-02"
	DueAt      string               `json:"due_at"`
	VATExempt  bool                 `json:"vat_exempt"`
	Note       string               `json:"note"`
	Items      []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

type InvoiceItemResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNo     string                `json:"invoice_no"`
	CustomerID    *string               `json:"customer_id"`
	CustomerName  string                `json:"customer_name,omitempty"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
	Subtotal      string                `json:"subtotal"`
	VATAmount     string                `json:"vat_amount"`
	TotalAmount   string                `json:"total_amount"`
	VATExempt     bool                  `json:"vat_exempt"`
	Status        string                `json:"status"`
	IssuedAt      string                `json:"issued_at"`
	DueAt         *string               `json:"due_at"`
	PaidAt        *string               `json:"paid_at"`
	TransactionID *string               `json:"transaction_id"`
	Note          string                `json:"note"`
	CreatedAt     string                `json:"created_at"`
}

// --- Interface ---

type InvoiceService interface {
	CreateInvoice(ctx context.Context, userID string, req CreateInvoiceRequest) (InvoiceResponse, error)
	GetInvoice(ctx context.Context, userID, id string) (InvoiceResponse, error)
	ListInvoices(ctx context.Context, userID, status string, page, limit int) ([]InvoiceResponse, int64, error)
	SendInvoice(ctx context.Context, userID, id string) (InvoiceResponse, error)
	MarkInvoicePaid(ctx context.Context, userID, id string) (InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, userID, id string) error
}

type invoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	txnRepo      repository.TransactionRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	txnRepo repository.TransactionRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		txnRepo:      txnRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
	}
}

// --- Implementation ---

func (s *invoiceService) CreateInvoice(ctx context.Context, userID string, req CreateInvoiceRequest) (InvoiceResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid user id: %w", err)
	}

	issuedAt, err := time.Parse("2006-01-02", req.IssuedAt)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid issued_at, want YYYY-MM-DD: %w", err)
	}

	var dueAt *time.Time
	if req.DueAt != "" {
		parsed, parseErr := time.Parse("2006-01-02", req.DueAt)
		if parseErr != nil {
			return InvoiceResponse{}, fmt.Errorf("invalid due_at, want YYYY-MM-DD: %w", parseErr)
		}
		dueAt = &parsed
	}

	var customerID *uuid.UUID
	if req.CustomerID != "" {
		parsed, parseErr := uuid.Parse(req.CustomerID)
		if parseErr != nil {
			return InvoiceResponse{}, fmt.Errorf("invalid customer_id: %w", parseErr)
		}
		if _, findErr := s.customerRepo.FindByID(ctx, userUUID, parsed); findErr != nil {
			return InvoiceResponse{}, fmt.Errorf("customer not found")
		}
		customerID = &parsed
	}

	items := make([]model.InvoiceItem, 0, len(req.Items))
	subtotal := decimal.Zero
	for i, itemReq := range req.Items {
		quantity := decimal.NewFromInt(1)
		if itemReq.Quantity != "" {
			if quantity, err = decimal.NewFromString(itemReq.Quantity); err != nil {
				return InvoiceResponse{}, fmt.Errorf("invalid quantity on item %d: %w", i+1, err)
			}
		}
		unitPrice, priceErr := decimal.NewFromString(itemReq.UnitPrice)
		if priceErr != nil {
			return InvoiceResponse{}, fmt.Errorf("invalid unit_price on item %d: %w", i+1, priceErr)
		}
		if quantity.LessThanOrEqual(decimal.Zero) || unitPrice.IsNegative() {
			return InvoiceResponse{}, fmt.Errorf("item %d has non-positive quantity or negative price", i+1)
		}

		lineTotal := quantity.Mul(unitPrice)
		subtotal = subtotal.Add(lineTotal)
		items = append(items, model.InvoiceItem{
			Description: itemReq.Description,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			LineTotal:   lineTotal,
		})
	}

	vatAmount := decimal.Zero
	if !req.VATExempt {
		vatAmount = subtotal.Mul(tax.VATStandardRate).Round(2)
	}

	invoiceNo, err := s.generateInvoiceNo(ctx, userUUID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to generate invoice number: %w", err)
	}

	invoice := model.Invoice{
		UserID:      userUUID,
		InvoiceNo:   invoiceNo,
		CustomerID:  customerID,
		Items:       items,
		Subtotal:    subtotal,
		VATAmount:   vatAmount,
		TotalAmount: subtotal.Add(vatAmount),
		VATExempt:   req.VATExempt,
		Status:      model.InvoiceStatusDraft,
		IssuedAt:    issuedAt,
		DueAt:       dueAt,
		Note:        req.Note,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.invoiceRepo.Create(txCtx, &invoice); createErr != nil {
			return fmt.Errorf("failed to create invoice: %w", createErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"invoice_no":   invoiceNo,
			"subtotal":     subtotal.StringFixed(2),
			"vat_amount":   vatAmount.StringFixed(2),
			"total_amount": invoice.TotalAmount.StringFixed(2),
			"item_count":   len(items),
		})
		audit := &model.AuditLog{
			UserID:     &userUUID,
			Action:     model.ActionCreateInvoice,
			EntityID:   invoice.ID.String(),
			EntityName: invoiceNo,
			Details:    string(details),
		}
		if auditErr := s.auditRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return InvoiceResponse{}, err
	}

	return toInvoiceResponse(invoice), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, userID, id string) (InvoiceResponse, error) {
	userUUID, invoiceUUID, err := parseUserAndID(userID, id)
	if err != nil {
		return InvoiceResponse{}, err
	}

	invoice, err := s.invoiceRepo.FindByIDWithItems(ctx, userUUID, invoiceUUID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invoice not found")
	}
	return toInvoiceResponse(*invoice), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, userID, status string, page, limit int) ([]InvoiceResponse, int64, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid user id: %w", err)
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	// Roll overdue invoices before listing so statuses reflect today.
	if _, err := s.invoiceRepo.MarkOverdue(ctx, userUUID); err != nil {
		return nil, 0, fmt.Errorf("failed to refresh overdue invoices: %w", err)
	}

	invoices, total, err := s.invoiceRepo.List(ctx, userUUID, status, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	result := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		result = append(result, toInvoiceResponse(inv))
	}
	return result, total, nil
}

func (s *invoiceService) SendInvoice(ctx context.Context, userID, id string) (InvoiceResponse, error) {
	userUUID, invoiceUUID, err := parseUserAndID(userID, id)
	if err != nil {
		return InvoiceResponse{}, err
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, userUUID, invoiceUUID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invoice not found")
	}
	if invoice.Status != model.InvoiceStatusDraft {
		return InvoiceResponse{}, fmt.Errorf("only DRAFT invoices can be sent, current status is %s", invoice.Status)
	}

	invoice.Status = model.InvoiceStatusSent
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to update invoice: %w", err)
	}

	return toInvoiceResponse(*invoice), nil
}

// MarkInvoicePaid flips the invoice to PAID and records the matching income
// transaction in the same database transaction, so the books and the invoice
// ledger cannot drift apart.
func (s *invoiceService) MarkInvoicePaid(ctx context.Context, userID, id string) (InvoiceResponse, error) {
	userUUID, invoiceUUID, err := parseUserAndID(userID, id)
	if err != nil {
		return InvoiceResponse{}, err
	}

	var invoice *model.Invoice
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		invoice, findErr = s.invoiceRepo.FindByID(txCtx, userUUID, invoiceUUID)
		if findErr != nil {
			return fmt.Errorf("invoice not found: %w", findErr)
		}

		if invoice.Status == model.InvoiceStatusPaid {
			return fmt.Errorf("invoice is already paid")
		}
		if invoice.Status == model.InvoiceStatusDraft {
			return fmt.Errorf("a DRAFT invoice cannot be marked paid; send it first")
		}

		now := time.Now()
		txn := model.Transaction{
			UserID:      userUUID,
			Date:        now,
			Amount:      invoice.TotalAmount,
			Type:        model.TransactionTypeIncome,
			Description: "Payment for invoice " + invoice.InvoiceNo,
			VATAmount:   invoice.VATAmount,
			VATExempt:   invoice.VATExempt,
			HasReceipt:  true, // the invoice itself is the evidence
			Source:      model.SourceManual,
		}
		if createErr := s.txnRepo.Create(txCtx, &txn); createErr != nil {
			return fmt.Errorf("failed to record payment transaction: %w", createErr)
		}

		invoice.Status = model.InvoiceStatusPaid
		invoice.PaidAt = &now
		invoice.TransactionID = &txn.ID
		if updateErr := s.invoiceRepo.Update(txCtx, invoice); updateErr != nil {
			return fmt.Errorf("failed to update invoice: %w", updateErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"invoice_no":     invoice.InvoiceNo,
			"total_amount":   invoice.TotalAmount.StringFixed(2),
			"transaction_id": txn.ID.String(),
		})
		audit := &model.AuditLog{
			UserID:     &userUUID,
			Action:     model.ActionMarkInvoicePaid,
			EntityID:   invoice.ID.String(),
			EntityName: invoice.InvoiceNo,
			Details:    string(details),
		}
		if auditErr := s.auditRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return InvoiceResponse{}, err
	}

	return toInvoiceResponse(*invoice), nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, userID, id string) error {
	userUUID, invoiceUUID, err := parseUserAndID(userID, id)
	if err != nil {
		return err
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, userUUID, invoiceUUID)
	if err != nil {
		return fmt.Errorf("invoice not found")
	}
	if invoice.Status == model.InvoiceStatusPaid {
		return fmt.Errorf("paid invoices cannot be deleted")
	}

	return s.invoiceRepo.Delete(ctx, userUUID, invoiceUUID)
}

func (s *invoiceService) generateInvoiceNo(ctx context.Context, userID uuid.UUID) (string, error) {
	today := time.Now().Format("20060102")
	prefix := "INV-" + today + "-"

	count, err := s.invoiceRepo.CountByPrefix(ctx, userID, prefix)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%05d", prefix, count+1), nil
}

// --- Mapping ---

func toInvoiceResponse(inv model.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:          inv.ID.String(),
		InvoiceNo:   inv.InvoiceNo,
		Subtotal:    inv.Subtotal.StringFixed(2),
		VATAmount:   inv.VATAmount.StringFixed(2),
		TotalAmount: inv.TotalAmount.StringFixed(2),
		VATExempt:   inv.VATExempt,
		Status:      inv.Status,
		IssuedAt:    inv.IssuedAt.Format("2006-01-02"),
		Note:        inv.Note,
		CreatedAt:   inv.CreatedAt.Format(time.RFC3339),
	}

	for _, item := range inv.Items {
		resp.Items = append(resp.Items, InvoiceItemResponse{
			ID:          item.ID.String(),
			Description: item.Description,
			Quantity:    item.Quantity.StringFixed(2),
			UnitPrice:   item.UnitPrice.StringFixed(2),
			LineTotal:   item.LineTotal.StringFixed(2),
		})
	}

	if inv.CustomerID != nil {
		s := inv.CustomerID.String()
		resp.CustomerID = &s
	}
	if inv.Customer != nil {
		resp.CustomerName = inv.Customer.Name
	}
	if inv.DueAt != nil {
		s := inv.DueAt.Format("2006-01-02")
		resp.DueAt = &s
	}
	if inv.PaidAt != nil {
		s := inv.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &s
	}
	if inv.TransactionID != nil {
		s := inv.TransactionID.String()
		resp.TransactionID = &s
	}

	return resp
}
