package service

import (
	"context"
	"fmt"
	"time"

	"vouchbooks/internal/model"
	"vouchbooks/internal/repository"
	"vouchbooks/internal/tax"
	"vouchbooks/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Insight rule codes
const (
	InsightVATThresholdNear    = "vat_threshold_near"
	InsightVATThresholdCrossed = "vat_threshold_crossed"
	InsightFlaggedBacklog      = "flagged_backlog"
	InsightSmallCompanyRelief  = "small_company_relief"
)

// --- DTOs ---

type InsightResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Severity  string `json:"severity"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// --- Interface ---

type InsightService interface {
	// EvaluateForUser runs the rule set and stores any newly triggered
	// insights. Idempotent: rules with an unread insight already present do
	// not fire again.
	EvaluateForUser(ctx context.Context, userID string) ([]InsightResponse, error)
	ListInsights(ctx context.Context, userID string, unreadOnly bool, page, limit int) ([]InsightResponse, int64, error)
	MarkRead(ctx context.Context, userID, id string) error
}

type insightService struct {
	insightRepo repository.InsightRepository
	userRepo    repository.UserRepository
	txnRepo     repository.TransactionRepository
	hub         *websocket.Hub
}

func NewInsightService(
	insightRepo repository.InsightRepository,
	userRepo repository.UserRepository,
	txnRepo repository.TransactionRepository,
	hub *websocket.Hub,
) InsightService {
	return &insightService{
		insightRepo: insightRepo,
		userRepo:    userRepo,
		txnRepo:     txnRepo,
		hub:         hub,
	}
}

// --- Implementation ---

func (s *insightService) EvaluateForUser(ctx context.Context, userID string) ([]InsightResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	var created []InsightResponse

	// VAT registration threshold rules
	if user.AccountType == model.AccountTypeBusiness {
		if tax.IsVATRegistrationRequired(user.AnnualTurnover) {
			ins, fireErr := s.fire(ctx, userUUID, model.Insight{
				Code:     InsightVATThresholdCrossed,
				Severity: model.SeverityUrgent,
				Title:    "VAT registration is required",
				Body:     "Annual turnover has reached the ₦25m VAT registration threshold. Register for VAT and begin filing monthly returns.",
			})
			if fireErr != nil {
				return nil, fireErr
			}
			if ins != nil {
				created = append(created, *ins)
			}
		} else if user.AnnualTurnover.GreaterThanOrEqual(tax.VATRegistrationThreshold.Mul(decimal.NewFromFloat(0.8))) {
			ins, fireErr := s.fire(ctx, userUUID, model.Insight{
				Code:     InsightVATThresholdNear,
				Severity: model.SeverityWarning,
				Title:    "Approaching the VAT registration threshold",
				Body:     "Annual turnover is above 80% of the ₦25m VAT registration threshold. Plan for VAT registration.",
			})
			if fireErr != nil {
				return nil, fireErr
			}
			if ins != nil {
				created = append(created, *ins)
			}
		}

		// Small-company relief: worth surfacing once so nil returns are filed
		// deliberately rather than by accident.
		calc := tax.CalculateCorporateTax(tax.CorporateTaxInput{
			Turnover:              user.AnnualTurnover,
			AssessableProfit:      decimal.Zero,
			TotalAssets:           user.TotalAssets,
			Sector:                user.Sector,
			IsExempt:              user.IsTaxExempt,
			IsProfessionalService: user.IsProfessionalService,
		})
		if calc.CompanyStatus == tax.CompanyStatusSmall && user.AnnualTurnover.IsPositive() {
			ins, fireErr := s.fire(ctx, userUUID, model.Insight{
				Code:     InsightSmallCompanyRelief,
				Severity: model.SeverityInfo,
				Title:    "Small company CIT exemption applies",
				Body:     "Your turnover and assets qualify for the 0% small company CIT rate. A nil return must still be filed.",
			})
			if fireErr != nil {
				return nil, fireErr
			}
			if ins != nil {
				created = append(created, *ins)
			}
		}
	}

	// Flagged transaction backlog
	flagged, err := s.txnRepo.CountFlagged(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to count flagged transactions: %w", err)
	}
	if flagged >= 5 {
		ins, fireErr := s.fire(ctx, userUUID, model.Insight{
			Code:     InsightFlaggedBacklog,
			Severity: model.SeverityWarning,
			Title:    fmt.Sprintf("%d transactions are waiting for review", flagged),
			Body:     "Flagged transactions are excluded from confident tax figures until reviewed. Clear the backlog before filing.",
		})
		if fireErr != nil {
			return nil, fireErr
		}
		if ins != nil {
			created = append(created, *ins)
		}
	}

	return created, nil
}

// fire stores the insight unless an unread one with the same code exists.
func (s *insightService) fire(ctx context.Context, userID uuid.UUID, insight model.Insight) (*InsightResponse, error) {
	exists, err := s.insightRepo.ExistsUnread(ctx, userID, insight.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing insights: %w", err)
	}
	if exists {
		return nil, nil
	}

	insight.UserID = userID
	if err := s.insightRepo.Create(ctx, &insight); err != nil {
		return nil, fmt.Errorf("failed to create insight: %w", err)
	}

	resp := toInsightResponse(insight)
	s.hub.NotifyUser(userID.String(), websocket.Event{Type: websocket.EventInsightCreated, Payload: resp})
	return &resp, nil
}

func (s *insightService) ListInsights(ctx context.Context, userID string, unreadOnly bool, page, limit int) ([]InsightResponse, int64, error) {
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

	insights, total, err := s.insightRepo.List(ctx, userUUID, unreadOnly, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch insights: %w", err)
	}

	result := make([]InsightResponse, 0, len(insights))
	for _, ins := range insights {
		result = append(result, toInsightResponse(ins))
	}
	return result, total, nil
}

func (s *insightService) MarkRead(ctx context.Context, userID, id string) error {
	userUUID, insightUUID, err := parseUserAndID(userID, id)
	if err != nil {
		return err
	}
	return s.insightRepo.MarkRead(ctx, userUUID, insightUUID)
}

// --- Mapping ---

func toInsightResponse(ins model.Insight) InsightResponse {
	return InsightResponse{
		ID:        ins.ID.String(),
		Code:      ins.Code,
		Severity:  ins.Severity,
		Title:     ins.Title,
		Body:      ins.Body,
		IsRead:    ins.IsRead,
		CreatedAt: ins.CreatedAt.Format(time.RFC3339),
	}
}
