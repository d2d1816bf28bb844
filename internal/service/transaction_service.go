package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"vouchbooks/internal/bank"
	"vouchbooks/internal/model"
	"vouchbooks/internal/repository"
	"vouchbooks/internal/tax"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateTransactionRequest struct {
	Date        string `json:"date" binding:"required"` // "2006-01-02"
	Amount      string `json:"amount" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=income expense"`
	Description string `json:"description" binding:"required"`
	Narration   string `json:"narration"`
	Payee       string `json:"payee"`

	CategoryID string `json:"category_id"` // optional; auto-categorised when empty

	VATAmount string `json:"vat_amount"`
	VATExempt bool   `json:"vat_exempt"`

	IsDigitalAsset  bool   `json:"is_digital_asset"`
	AcquisitionCost string `json:"acquisition_cost"`

	HasReceipt  bool   `json:"has_receipt"`
	DocumentURL string `json:"document_url"`
}

type UpdateTransactionRequest struct {
	Description      string `json:"description"`
	Narration        string `json:"narration"`
	Payee            string `json:"payee"`
	CategoryID       string `json:"category_id"`
	HasReceipt       *bool  `json:"has_receipt"`
	DocumentURL      string `json:"document_url"`
	FlaggedForReview *bool  `json:"flagged_for_review"`
}

type TransactionResponse struct {
	ID                 string `json:"id"`
	Date               string `json:"date"`
	Amount             string `json:"amount"`
	Type               string `json:"type"`
	Description        string `json:"description"`
	Narration          string `json:"narration"`
	Payee              string `json:"payee"`
	CategoryID         string `json:"category_id"`
	CategoryName       string `json:"category_name"`
	IsDeductible       bool   `json:"is_deductible"`
	VATAmount          string `json:"vat_amount"`
	VATExempt          bool   `json:"vat_exempt"`
	IsDigitalAsset     bool   `json:"is_digital_asset"`
	AcquisitionCost    string `json:"acquisition_cost"`
	IsInternalTransfer bool   `json:"is_internal_transfer"`
	IsTaxCredit        bool   `json:"is_tax_credit"`
	IsBankCharge       bool   `json:"is_bank_charge"`
	FlaggedForReview   bool   `json:"flagged_for_review"`
	ComplianceNotes    string `json:"compliance_notes"`
	HasReceipt         bool   `json:"has_receipt"`
	DocumentURL        string `json:"document_url"`
	Source             string `json:"source"`
	StatementID        string `json:"statement_id,omitempty"`
	BankName           string `json:"bank_name,omitempty"`
	CreatedAt          string `json:"created_at"`
}

type TransactionListFilter struct {
	Type             string
	CategoryID       string
	Source           string
	FlaggedForReview *bool
	StartDate        string
	EndDate          string
}

// --- Interface ---

type TransactionService interface {
	CreateTransaction(ctx context.Context, userID string, req CreateTransactionRequest) (TransactionResponse, error)
	GetTransaction(ctx context.Context, userID, id string) (TransactionResponse, error)
	ListTransactions(ctx context.Context, userID string, filter TransactionListFilter, page, limit int) ([]TransactionResponse, int64, error)
	UpdateTransaction(ctx context.Context, userID, id string, req UpdateTransactionRequest) (TransactionResponse, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
}

type transactionService struct {
	txnRepo   repository.TransactionRepository
	userRepo  repository.UserRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewTransactionService(
	txnRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) TransactionService {
	return &transactionService{
		txnRepo:   txnRepo,
		userRepo:  userRepo,
		auditRepo: auditRepo,
		txManager: txManager,
	}
}

// --- Implementation ---

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req CreateTransactionRequest) (TransactionResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return TransactionResponse{}, fmt.Errorf("invalid user id: %w", err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return TransactionResponse{}, fmt.Errorf("invalid date, want YYYY-MM-DD: %w", err)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return TransactionResponse{}, fmt.Errorf("invalid amount: %w", err)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return TransactionResponse{}, fmt.Errorf("amount must be greater than 0")
	}

	vatAmount := decimal.Zero
	if req.VATAmount != "" {
		if vatAmount, err = decimal.NewFromString(req.VATAmount); err != nil {
			return TransactionResponse{}, fmt.Errorf("invalid vat_amount: %w", err)
		}
	}

	acquisitionCost := decimal.Zero
	if req.AcquisitionCost != "" {
		if acquisitionCost, err = decimal.NewFromString(req.AcquisitionCost); err != nil {
			return TransactionResponse{}, fmt.Errorf("invalid acquisition_cost: %w", err)
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return TransactionResponse{}, fmt.Errorf("user not found")
	}

	txn := model.Transaction{
		UserID:          userUUID,
		Date:            date,
		Amount:          amount,
		Type:            req.Type,
		Description:     req.Description,
		Narration:       req.Narration,
		Payee:           req.Payee,
		VATAmount:       vatAmount,
		VATExempt:       req.VATExempt,
		IsDigitalAsset:  req.IsDigitalAsset,
		AcquisitionCost: acquisitionCost,
		HasReceipt:      req.HasReceipt,
		DocumentURL:     req.DocumentURL,
		Source:          model.SourceManual,
	}

	// Auto-categorise expenses; a caller-supplied category wins.
	if req.Type == model.TransactionTypeExpense {
		if req.CategoryID != "" {
			cat, ok := bank.CategoryByID(req.CategoryID)
			if !ok {
				return TransactionResponse{}, fmt.Errorf("unknown category: %s", req.CategoryID)
			}
			txn.CategoryID = cat.CategoryID
			txn.CategoryName = cat.CategoryName
			txn.IsDeductible = cat.IsDeductible
		} else if cat := bank.Categorize(req.Description, req.Narration, req.Type); cat != nil {
			txn.CategoryID = cat.CategoryID
			txn.CategoryName = cat.CategoryName
			txn.IsDeductible = cat.IsDeductible
		}

		// Deductibility holds only when the wholly-and-exclusively evidence
		// gate passes; otherwise the expense stays on the books undeducted.
		if txn.IsDeductible {
			check := tax.ValidateExpenseCompliance(req.HasReceipt, req.Description)
			if !check.IsCompliant {
				txn.IsDeductible = false
				txn.ComplianceNotes = check.Reason
			}
		}
	}

	flags := bank.DetectCompliance(req.Description, req.Narration, user.BusinessName, amount, req.Type)
	txn.IsInternalTransfer = flags.IsInternalTransfer
	txn.IsTaxCredit = flags.IsTaxCredit
	txn.IsBankCharge = flags.IsBankCharge
	txn.FlaggedForReview = flags.FlaggedForReview
	if flags.IsDigitalAsset {
		txn.IsDigitalAsset = true
	}
	if len(flags.Notes) > 0 {
		if txn.ComplianceNotes != "" {
			txn.ComplianceNotes += "\n"
		}
		txn.ComplianceNotes += strings.Join(flags.Notes, "\n")
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.txnRepo.Create(txCtx, &txn); createErr != nil {
			return fmt.Errorf("failed to create transaction: %w", createErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"amount":      req.Amount,
			"type":        req.Type,
			"description": req.Description,
			"category_id": txn.CategoryID,
			"source":      model.SourceManual,
		})
		audit := &model.AuditLog{
			UserID:     &userUUID,
			Action:     model.ActionCreateTransaction,
			EntityID:   txn.ID.String(),
			EntityName: req.Description,
			Details:    string(details),
		}
		if auditErr := s.auditRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}

		return nil
	})
	if err != nil {
		return TransactionResponse{}, err
	}

	return toTransactionResponse(txn), nil
}

func (s *transactionService) GetTransaction(ctx context.Context, userID, id string) (TransactionResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return TransactionResponse{}, fmt.Errorf("invalid user id: %w", err)
	}
	txnUUID, err := uuid.Parse(id)
	if err != nil {
		return TransactionResponse{}, fmt.Errorf("invalid transaction id: %w", err)
	}

	txn, err := s.txnRepo.FindByID(ctx, userUUID, txnUUID)
	if err != nil {
		return TransactionResponse{}, fmt.Errorf("transaction not found")
	}
	return toTransactionResponse(*txn), nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, filter TransactionListFilter, page, limit int) ([]TransactionResponse, int64, error) {
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

	repoFilter := repository.TransactionFilter{
		Type:             filter.Type,
		CategoryID:       filter.CategoryID,
		Source:           filter.Source,
		FlaggedForReview: filter.FlaggedForReview,
	}
	if filter.StartDate != "" {
		start, parseErr := time.Parse("2006-01-02", filter.StartDate)
		if parseErr != nil {
			return nil, 0, fmt.Errorf("invalid start_date: %w", parseErr)
		}
		repoFilter.StartDate = &start
	}
	if filter.EndDate != "" {
		end, parseErr := time.Parse("2006-01-02", filter.EndDate)
		if parseErr != nil {
			return nil, 0, fmt.Errorf("invalid end_date: %w", parseErr)
		}
		repoFilter.EndDate = &end
	}

	txns, total, err := s.txnRepo.List(ctx, userUUID, repoFilter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	result := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		result = append(result, toTransactionResponse(t))
	}
	return result, total, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID, id string, req UpdateTransactionRequest) (TransactionResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return TransactionResponse{}, fmt.Errorf("invalid user id: %w", err)
	}
	txnUUID, err := uuid.Parse(id)
	if err != nil {
		return TransactionResponse{}, fmt.Errorf("invalid transaction id: %w", err)
	}

	txn, err := s.txnRepo.FindByID(ctx, userUUID, txnUUID)
	if err != nil {
		return TransactionResponse{}, fmt.Errorf("transaction not found")
	}

	if req.Description != "" {
		txn.Description = req.Description
	}
	if req.Narration != "" {
		txn.Narration = req.Narration
	}
	if req.Payee != "" {
		txn.Payee = req.Payee
	}
	if req.DocumentURL != "" {
		txn.DocumentURL = req.DocumentURL
	}
	if req.HasReceipt != nil {
		txn.HasReceipt = *req.HasReceipt
	}
	if req.FlaggedForReview != nil {
		txn.FlaggedForReview = *req.FlaggedForReview
	}

	if req.CategoryID != "" && txn.Type == model.TransactionTypeExpense {
		cat, ok := bank.CategoryByID(req.CategoryID)
		if !ok {
			return TransactionResponse{}, fmt.Errorf("unknown category: %s", req.CategoryID)
		}
		txn.CategoryID = cat.CategoryID
		txn.CategoryName = cat.CategoryName
		txn.IsDeductible = cat.IsDeductible
	}

	// Re-run the evidence gate after edits that can change it
	if txn.Type == model.TransactionTypeExpense && txn.IsDeductible {
		check := tax.ValidateExpenseCompliance(txn.HasReceipt, txn.Description)
		if !check.IsCompliant {
			txn.IsDeductible = false
		}
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.txnRepo.Update(txCtx, txn); updateErr != nil {
			return fmt.Errorf("failed to update transaction: %w", updateErr)
		}

		audit := &model.AuditLog{
			UserID:     &userUUID,
			Action:     model.ActionUpdateTransaction,
			EntityID:   txn.ID.String(),
			EntityName: txn.Description,
		}
		if auditErr := s.auditRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return TransactionResponse{}, err
	}

	return toTransactionResponse(*txn), nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID, id string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	txnUUID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid transaction id: %w", err)
	}

	txn, err := s.txnRepo.FindByID(ctx, userUUID, txnUUID)
	if err != nil {
		return fmt.Errorf("transaction not found")
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if delErr := s.txnRepo.Delete(txCtx, userUUID, txnUUID); delErr != nil {
			return fmt.Errorf("failed to delete transaction: %w", delErr)
		}
		audit := &model.AuditLog{
			UserID:     &userUUID,
			Action:     model.ActionDeleteTransaction,
			EntityID:   txn.ID.String(),
			EntityName: txn.Description,
		}
		if auditErr := s.auditRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}
		return nil
	})
}

// --- Helpers ---

func toTransactionResponse(t model.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:                 t.ID.String(),
		Date:               t.Date.Format("2006-01-02"),
		Amount:             t.Amount.StringFixed(2),
		Type:               t.Type,
		Description:        t.Description,
		Narration:          t.Narration,
		Payee:              t.Payee,
		CategoryID:         t.CategoryID,
		CategoryName:       t.CategoryName,
		IsDeductible:       t.IsDeductible,
		VATAmount:          t.VATAmount.StringFixed(2),
		VATExempt:          t.VATExempt,
		IsDigitalAsset:     t.IsDigitalAsset,
		AcquisitionCost:    t.AcquisitionCost.StringFixed(2),
		IsInternalTransfer: t.IsInternalTransfer,
		IsTaxCredit:        t.IsTaxCredit,
		IsBankCharge:       t.IsBankCharge,
		FlaggedForReview:   t.FlaggedForReview,
		ComplianceNotes:    t.ComplianceNotes,
		HasReceipt:         t.HasReceipt,
		DocumentURL:        t.DocumentURL,
		Source:             t.Source,
		BankName:           t.BankName,
		CreatedAt:          t.CreatedAt.Format(time.RFC3339),
	}
	if t.StatementID != nil {
		resp.StatementID = t.StatementID.String()
	}
	return resp
}
