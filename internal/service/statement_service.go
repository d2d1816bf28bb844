package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"vouchbooks/internal/bank"
	"vouchbooks/internal/logger"
	"vouchbooks/internal/model"
	"vouchbooks/internal/repository"
	"vouchbooks/internal/websocket"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
)

// --- DTOs ---

type StatementResponse struct {
	ID               string `json:"id"`
	FileName         string `json:"file_name"`
	BankName         string `json:"bank_name"`
	Status           string `json:"status"`
	TransactionCount int    `json:"transaction_count"`
	SkippedLineCount int    `json:"skipped_line_count"`
	FailureReason    string `json:"failure_reason,omitempty"`
	CreatedAt        string `json:"created_at"`
}

type StatementUploadResponse struct {
	Statement    StatementResponse     `json:"statement"`
	Transactions []TransactionResponse `json:"transactions"`
}

// --- Interface ---

type StatementService interface {
	UploadStatement(ctx context.Context, userID, fileName string, file io.Reader, size int64) (StatementUploadResponse, error)
	GetStatement(ctx context.Context, userID, id string) (StatementResponse, error)
	ListStatements(ctx context.Context, userID string, page, limit int) ([]StatementResponse, int64, error)
}

type statementService struct {
	statementRepo repository.StatementRepository
	txnRepo       repository.TransactionRepository
	userRepo      repository.UserRepository
	auditRepo     repository.AuditRepository
	txManager     repository.TransactionManager
	hub           *websocket.Hub
}

func NewStatementService(
	statementRepo repository.StatementRepository,
	txnRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *websocket.Hub,
) StatementService {
	return &statementService{
		statementRepo: statementRepo,
		txnRepo:       txnRepo,
		userRepo:      userRepo,
		auditRepo:     auditRepo,
		txManager:     txManager,
		hub:           hub,
	}
}

var stmtLog = logger.With("statement")

// --- Implementation ---

// UploadStatement extracts text from an uploaded PDF, runs the bank parser
// over it, and persists the statement record plus the extracted transactions
// atomically. The caller gets the full extraction result back; connected
// clients of the same user are notified over WebSocket.
func (s *statementService) UploadStatement(ctx context.Context, userID, fileName string, file io.Reader, size int64) (StatementUploadResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return StatementUploadResponse{}, fmt.Errorf("invalid user id: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return StatementUploadResponse{}, fmt.Errorf("user not found")
	}

	statement := model.BankStatement{
		UserID:   userUUID,
		FileName: fileName,
		Status:   model.StatementStatusProcessing,
	}
	if err := s.statementRepo.Create(ctx, &statement); err != nil {
		return StatementUploadResponse{}, fmt.Errorf("failed to create statement record: %w", err)
	}
	s.hub.NotifyUser(userID, websocket.Event{Type: websocket.EventStatementProcessing, Payload: statement.ID.String()})

	text, err := extractPDFText(file, size)
	if err != nil {
		s.failStatement(ctx, &statement, userID, "could not read PDF: "+err.Error())
		return StatementUploadResponse{}, fmt.Errorf("could not read PDF: %w", err)
	}

	result, err := bank.ParseStatement(text, user.BusinessName)
	if err != nil {
		var unsupported *bank.UnsupportedBankError
		reason := err.Error()
		if errors.As(err, &unsupported) {
			reason = "unsupported bank statement format"
		}
		s.failStatement(ctx, &statement, userID, reason)
		return StatementUploadResponse{}, fmt.Errorf("failed to parse statement: %w", err)
	}

	stmtLog.Info().
		Str("user_id", userID).
		Str("bank", result.BankName).
		Int("transactions", len(result.Transactions)).
		Int("skipped_lines", result.SkippedLines).
		Msg("statement parsed")

	txns := make([]model.Transaction, 0, len(result.Transactions))
	for _, et := range result.Transactions {
		txn := model.Transaction{
			UserID:             userUUID,
			Date:               et.Date,
			Amount:             et.Amount,
			Type:               et.Type,
			Description:        et.Description,
			Narration:          et.Narration,
			Payee:              et.Payee,
			IsInternalTransfer: et.Compliance.IsInternalTransfer,
			IsTaxCredit:        et.Compliance.IsTaxCredit,
			IsBankCharge:       et.Compliance.IsBankCharge,
			IsDigitalAsset:     et.Compliance.IsDigitalAsset,
			FlaggedForReview:   et.Compliance.FlaggedForReview,
			Source:             model.SourceBankStatement,
			StatementID:        &statement.ID,
			BankName:           result.BankName,
			RawText:            et.Meta.RawText,
		}
		if len(et.Compliance.Notes) > 0 {
			notes, _ := json.Marshal(et.Compliance.Notes)
			txn.ComplianceNotes = string(notes)
		}
		if et.Category != nil {
			txn.CategoryID = et.Category.CategoryID
			txn.CategoryName = et.Category.CategoryName
			txn.IsDeductible = et.Category.IsDeductible
		}
		txns = append(txns, txn)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.txnRepo.CreateBatch(txCtx, txns); createErr != nil {
			return fmt.Errorf("failed to persist transactions: %w", createErr)
		}

		statement.Status = model.StatementStatusCompleted
		statement.BankName = result.BankName
		statement.TransactionCount = len(txns)
		statement.SkippedLineCount = result.SkippedLines
		if updateErr := s.statementRepo.Update(txCtx, &statement); updateErr != nil {
			return fmt.Errorf("failed to update statement record: %w", updateErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"file_name":         fileName,
			"bank_name":         result.BankName,
			"transaction_count": len(txns),
			"skipped_lines":     result.SkippedLines,
		})
		audit := &model.AuditLog{
			UserID:     &userUUID,
			Action:     model.ActionUploadStatement,
			EntityID:   statement.ID.String(),
			EntityName: fileName,
			Details:    string(details),
		}
		if auditErr := s.auditRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		s.failStatement(ctx, &statement, userID, err.Error())
		return StatementUploadResponse{}, err
	}

	s.hub.NotifyUser(userID, websocket.Event{
		Type:    websocket.EventStatementCompleted,
		Payload: toStatementResponse(statement),
	})

	resp := StatementUploadResponse{Statement: toStatementResponse(statement)}
	for _, t := range txns {
		resp.Transactions = append(resp.Transactions, toTransactionResponse(t))
	}
	return resp, nil
}

func (s *statementService) failStatement(ctx context.Context, statement *model.BankStatement, userID, reason string) {
	statement.Status = model.StatementStatusFailed
	statement.FailureReason = reason
	if err := s.statementRepo.Update(ctx, statement); err != nil {
		stmtLog.Error().Err(err).Str("statement_id", statement.ID.String()).Msg("failed to record statement failure")
	}
	s.hub.NotifyUser(userID, websocket.Event{Type: websocket.EventStatementFailed, Payload: reason})
}

func (s *statementService) GetStatement(ctx context.Context, userID, id string) (StatementResponse, error) {
	userUUID, statementUUID, err := parseUserAndID(userID, id)
	if err != nil {
		return StatementResponse{}, err
	}

	statement, err := s.statementRepo.FindByID(ctx, userUUID, statementUUID)
	if err != nil {
		return StatementResponse{}, fmt.Errorf("statement not found")
	}
	return toStatementResponse(*statement), nil
}

func (s *statementService) ListStatements(ctx context.Context, userID string, page, limit int) ([]StatementResponse, int64, error) {
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

	statements, total, err := s.statementRepo.List(ctx, userUUID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch statements: %w", err)
	}

	result := make([]StatementResponse, 0, len(statements))
	for _, st := range statements {
		result = append(result, toStatementResponse(st))
	}
	return result, total, nil
}

// --- Helpers ---

// extractPDFText flattens a PDF into plain text, page by page.
func extractPDFText(file io.Reader, size int64) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	if size <= 0 {
		size = int64(len(data))
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), size)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	for pageNo := 1; pageNo <= reader.NumPage(); pageNo++ {
		page := reader.Page(pageNo)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				buf.WriteString(word.S)
				buf.WriteByte(' ')
			}
			buf.WriteByte('\n')
		}
	}
	return buf.String(), nil
}

func toStatementResponse(st model.BankStatement) StatementResponse {
	return StatementResponse{
		ID:               st.ID.String(),
		FileName:         st.FileName,
		BankName:         st.BankName,
		Status:           st.Status,
		TransactionCount: st.TransactionCount,
		SkippedLineCount: st.SkippedLineCount,
		FailureReason:    st.FailureReason,
		CreatedAt:        st.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
