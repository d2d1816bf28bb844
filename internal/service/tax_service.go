package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vouchbooks/internal/model"
	"vouchbooks/internal/repository"
	"vouchbooks/internal/tax"
	"vouchbooks/internal/websocket"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateFilingRequest struct {
	FilingType string `json:"filing_type" binding:"required,oneof=FORM_A CIT_RETURN VAT_RETURN"`
	TaxYear    int    `json:"tax_year" binding:"required"`
	Month      int    `json:"month" binding:"omitempty,min=1,max=12"` // VAT returns only
}

type ReviewFilingRequest struct {
	Approve         bool   `json:"approve"`
	RejectionReason string `json:"rejection_reason"`
}

type FilingResponse struct {
	ID              string          `json:"id"`
	FilingType      string          `json:"filing_type"`
	TaxYear         int             `json:"tax_year"`
	Period          string          `json:"period,omitempty"`
	FormData        json.RawMessage `json:"form_data"`
	Status          string          `json:"status"`
	SubmittedAt     *string         `json:"submitted_at"`
	ReviewedAt      *string         `json:"reviewed_at"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

// --- Interface ---

type TaxService interface {
	GetCorporateTaxSummary(ctx context.Context, userID string, year int) (tax.CITReturnData, error)
	GetFormA(ctx context.Context, userID string, year int) (tax.FormAData, error)
	GetVATReturn(ctx context.Context, userID string, year, month int) (tax.VATReturnData, error)
	GetDigitalAssetTax(ctx context.Context, userID string, year int) (tax.DigitalAssetTaxResult, error)

	CreateFiling(ctx context.Context, userID string, req CreateFilingRequest) (FilingResponse, error)
	SubmitFiling(ctx context.Context, userID, id string) (FilingResponse, error)
	GetFiling(ctx context.Context, userID, id string) (FilingResponse, error)
	ListFilings(ctx context.Context, userID, filingType, status string, page, limit int) ([]FilingResponse, int64, error)

	ListPendingReview(ctx context.Context, page, limit int) ([]FilingResponse, int64, error)
	ReviewFiling(ctx context.Context, reviewerID, userID, id string, req ReviewFilingRequest) (FilingResponse, error)
}

type taxService struct {
	userRepo   repository.UserRepository
	txnRepo    repository.TransactionRepository
	filingRepo repository.FilingRepository
	auditRepo  repository.AuditRepository
	txManager  repository.TransactionManager
	hub        *websocket.Hub
}

func NewTaxService(
	userRepo repository.UserRepository,
	txnRepo repository.TransactionRepository,
	filingRepo repository.FilingRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *websocket.Hub,
) TaxService {
	return &taxService{
		userRepo:   userRepo,
		txnRepo:    txnRepo,
		filingRepo: filingRepo,
		auditRepo:  auditRepo,
		txManager:  txManager,
		hub:        hub,
	}
}

// --- Form assembly ---

func buildProfile(user *model.User) tax.Profile {
	return tax.Profile{
		AccountType:           user.AccountType,
		Name:                  user.FullName,
		BusinessName:          user.BusinessName,
		Sector:                user.Sector,
		AnnualTurnover:        user.AnnualTurnover,
		TotalAssets:           user.TotalAssets,
		AnnualIncome:          user.AnnualIncome,
		IsProfessionalService: user.IsProfessionalService,
		IsTaxExempt:           user.IsTaxExempt,
		PaysRent:              user.PaysRent,
		RentAmount:            user.RentAmount,
		TaxIdentityNumber:     user.TaxIdentityNumber,
		NIN:                   user.NIN,
		BVN:                   user.BVN,
		ResidenceState:        user.ResidenceState,
	}
}

// buildRecords reduces stored transactions to form-mapper records. Internal
// transfers are the user's own money moving between accounts, so they never
// reach the tax base.
func buildRecords(txns []model.Transaction) []tax.Record {
	records := make([]tax.Record, 0, len(txns))
	for _, t := range txns {
		if t.IsInternalTransfer {
			continue
		}
		records = append(records, tax.Record{
			Amount:          t.Amount,
			Type:            t.Type,
			Date:            t.Date,
			CategoryName:    t.CategoryName,
			IsDeductible:    t.IsDeductible,
			IsDigitalAsset:  t.IsDigitalAsset,
			AcquisitionCost: t.AcquisitionCost,
			VATAmount:       t.VATAmount,
			VATExempt:       t.VATExempt,
		})
	}
	return records
}

func (s *taxService) loadYear(ctx context.Context, userID string, year int) (*model.User, []tax.Record, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("user not found")
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid user id: %w", err)
	}
	txns, err := s.txnRepo.ListForYear(ctx, userUUID, year)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return user, buildRecords(txns), nil
}

func (s *taxService) GetCorporateTaxSummary(ctx context.Context, userID string, year int) (tax.CITReturnData, error) {
	user, records, err := s.loadYear(ctx, userID, year)
	if err != nil {
		return tax.CITReturnData{}, err
	}
	return tax.MapToCITReturn(buildProfile(user), records, year), nil
}

func (s *taxService) GetFormA(ctx context.Context, userID string, year int) (tax.FormAData, error) {
	user, records, err := s.loadYear(ctx, userID, year)
	if err != nil {
		return tax.FormAData{}, err
	}
	return tax.MapToFormA(buildProfile(user), records, year), nil
}

func (s *taxService) GetVATReturn(ctx context.Context, userID string, year, month int) (tax.VATReturnData, error) {
	if month < 1 || month > 12 {
		return tax.VATReturnData{}, fmt.Errorf("month must be between 1 and 12")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return tax.VATReturnData{}, fmt.Errorf("user not found")
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return tax.VATReturnData{}, fmt.Errorf("invalid user id: %w", err)
	}
	txns, err := s.txnRepo.ListForMonth(ctx, userUUID, year, time.Month(month))
	if err != nil {
		return tax.VATReturnData{}, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	return tax.MapToVATReturn(buildProfile(user), buildRecords(txns), time.Month(month), year), nil
}

func (s *taxService) GetDigitalAssetTax(ctx context.Context, userID string, year int) (tax.DigitalAssetTaxResult, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return tax.DigitalAssetTaxResult{}, fmt.Errorf("invalid user id: %w", err)
	}
	txns, err := s.txnRepo.ListForYear(ctx, userUUID, year)
	if err != nil {
		return tax.DigitalAssetTaxResult{}, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	var disposals []tax.DigitalAssetDisposal
	for _, t := range txns {
		if t.IsInternalTransfer || !t.IsDigitalAsset || t.Type != model.TransactionTypeIncome {
			continue
		}
		disposals = append(disposals, tax.DigitalAssetDisposal{
			AcquisitionCost: t.AcquisitionCost,
			DisposalValue:   t.Amount,
			Date:            t.Date,
		})
	}
	return tax.CalculateDigitalAssetTax(disposals), nil
}

// --- Filings ---

// CreateFiling freezes the requested form into a DRAFT filing snapshot.
func (s *taxService) CreateFiling(ctx context.Context, userID string, req CreateFilingRequest) (FilingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return FilingResponse{}, fmt.Errorf("invalid user id: %w", err)
	}

	var formData interface{}
	period := ""
	switch req.FilingType {
	case model.FilingTypeFormA:
		formData, err = s.GetFormA(ctx, userID, req.TaxYear)
	case model.FilingTypeCITReturn:
		formData, err = s.GetCorporateTaxSummary(ctx, userID, req.TaxYear)
	case model.FilingTypeVATReturn:
		if req.Month == 0 {
			return FilingResponse{}, fmt.Errorf("month is required for VAT returns")
		}
		var vat tax.VATReturnData
		vat, err = s.GetVATReturn(ctx, userID, req.TaxYear, req.Month)
		formData = vat
		period = vat.Period
	}
	if err != nil {
		return FilingResponse{}, err
	}

	payload, err := json.Marshal(formData)
	if err != nil {
		return FilingResponse{}, fmt.Errorf("failed to snapshot form data: %w", err)
	}

	filing := model.TaxFiling{
		UserID:     userUUID,
		FilingType: req.FilingType,
		TaxYear:    req.TaxYear,
		Period:     period,
		FormData:   string(payload),
		Status:     model.FilingStatusDraft,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.filingRepo.Create(txCtx, &filing); createErr != nil {
			return fmt.Errorf("failed to create filing: %w", createErr)
		}
		audit := &model.AuditLog{
			UserID:     &userUUID,
			Action:     model.ActionCreateFiling,
			EntityID:   filing.ID.String(),
			EntityName: req.FilingType,
		}
		if auditErr := s.auditRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return FilingResponse{}, err
	}

	return toFilingResponse(filing), nil
}

func (s *taxService) SubmitFiling(ctx context.Context, userID, id string) (FilingResponse, error) {
	userUUID, filingUUID, err := parseUserAndID(userID, id)
	if err != nil {
		return FilingResponse{}, err
	}

	filing, err := s.filingRepo.FindByID(ctx, userUUID, filingUUID)
	if err != nil {
		return FilingResponse{}, fmt.Errorf("filing not found")
	}
	if filing.Status != model.FilingStatusDraft && filing.Status != model.FilingStatusRejected {
		return FilingResponse{}, fmt.Errorf("only DRAFT or REJECTED filings can be submitted, current status is %s", filing.Status)
	}

	now := time.Now()
	filing.Status = model.FilingStatusSubmitted
	filing.SubmittedAt = &now
	filing.RejectionReason = ""

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.filingRepo.Update(txCtx, filing); updateErr != nil {
			return fmt.Errorf("failed to update filing: %w", updateErr)
		}
		audit := &model.AuditLog{
			UserID:     &userUUID,
			Action:     model.ActionSubmitFiling,
			EntityID:   filing.ID.String(),
			EntityName: filing.FilingType,
		}
		if auditErr := s.auditRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return FilingResponse{}, err
	}

	return toFilingResponse(*filing), nil
}

func (s *taxService) GetFiling(ctx context.Context, userID, id string) (FilingResponse, error) {
	userUUID, filingUUID, err := parseUserAndID(userID, id)
	if err != nil {
		return FilingResponse{}, err
	}

	filing, err := s.filingRepo.FindByID(ctx, userUUID, filingUUID)
	if err != nil {
		return FilingResponse{}, fmt.Errorf("filing not found")
	}
	return toFilingResponse(*filing), nil
}

func (s *taxService) ListFilings(ctx context.Context, userID, filingType, status string, page, limit int) ([]FilingResponse, int64, error) {
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

	filings, total, err := s.filingRepo.List(ctx, userUUID, filingType, status, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch filings: %w", err)
	}

	result := make([]FilingResponse, 0, len(filings))
	for _, f := range filings {
		result = append(result, toFilingResponse(f))
	}
	return result, total, nil
}

func (s *taxService) ListPendingReview(ctx context.Context, page, limit int) ([]FilingResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	filings, total, err := s.filingRepo.ListPendingReview(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch pending filings: %w", err)
	}

	result := make([]FilingResponse, 0, len(filings))
	for _, f := range filings {
		result = append(result, toFilingResponse(f))
	}
	return result, total, nil
}

func (s *taxService) ReviewFiling(ctx context.Context, reviewerID, userID, id string, req ReviewFilingRequest) (FilingResponse, error) {
	reviewerUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return FilingResponse{}, fmt.Errorf("invalid reviewer id: %w", err)
	}
	userUUID, filingUUID, err := parseUserAndID(userID, id)
	if err != nil {
		return FilingResponse{}, err
	}

	if !req.Approve && req.RejectionReason == "" {
		return FilingResponse{}, fmt.Errorf("rejection_reason is required when rejecting")
	}

	var filing *model.TaxFiling
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		filing, findErr = s.filingRepo.FindByID(txCtx, userUUID, filingUUID)
		if findErr != nil {
			return fmt.Errorf("filing not found: %w", findErr)
		}
		if filing.Status != model.FilingStatusSubmitted {
			return fmt.Errorf("only SUBMITTED filings can be reviewed, current status is %s", filing.Status)
		}

		now := time.Now()
		if req.Approve {
			filing.Status = model.FilingStatusAccepted
		} else {
			filing.Status = model.FilingStatusRejected
			filing.RejectionReason = req.RejectionReason
		}
		filing.ReviewedBy = &reviewerUUID
		filing.ReviewedAt = &now

		if updateErr := s.filingRepo.Update(txCtx, filing); updateErr != nil {
			return fmt.Errorf("failed to update filing: %w", updateErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"approved":         req.Approve,
			"rejection_reason": req.RejectionReason,
		})
		audit := &model.AuditLog{
			UserID:     &reviewerUUID,
			Action:     model.ActionReviewFiling,
			EntityID:   filing.ID.String(),
			EntityName: filing.FilingType,
			Details:    string(details),
		}
		if auditErr := s.auditRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return FilingResponse{}, err
	}

	s.hub.NotifyUser(userUUID.String(), websocket.Event{
		Type:    websocket.EventFilingReviewed,
		Payload: toFilingResponse(*filing),
	})

	return toFilingResponse(*filing), nil
}

// --- Mapping ---

func toFilingResponse(f model.TaxFiling) FilingResponse {
	resp := FilingResponse{
		ID:              f.ID.String(),
		FilingType:      f.FilingType,
		TaxYear:         f.TaxYear,
		Period:          f.Period,
		FormData:        json.RawMessage(f.FormData),
		Status:          f.Status,
		RejectionReason: f.RejectionReason,
		CreatedAt:       f.CreatedAt.Format(time.RFC3339),
	}
	if f.SubmittedAt != nil {
		s := f.SubmittedAt.Format(time.RFC3339)
		resp.SubmittedAt = &s
	}
	if f.ReviewedAt != nil {
		s := f.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &s
	}
	return resp
}
