package service

import (
	"context"
	"fmt"
	"time"

	"vouchbooks/internal/model"
	"vouchbooks/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type UpsertSettingRequest struct {
	Key         string `json:"key" binding:"required"`
	Value       string `json:"value" binding:"required"`
	Description string `json:"description"`
}

type SettingResponse struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
	UpdatedAt   string `json:"updated_at"`
}

// --- Interface ---

type SettingService interface {
	GetSetting(ctx context.Context, key string) (SettingResponse, error)
	ListSettings(ctx context.Context) ([]SettingResponse, error)
	UpsertSetting(ctx context.Context, adminID string, req UpsertSettingRequest) (SettingResponse, error)
}

type settingService struct {
	repo      repository.SettingRepository
	auditRepo repository.AuditRepository
}

func NewSettingService(repo repository.SettingRepository, auditRepo repository.AuditRepository) SettingService {
	return &settingService{repo: repo, auditRepo: auditRepo}
}

// --- Implementation ---

func (s *settingService) GetSetting(ctx context.Context, key string) (SettingResponse, error) {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		return SettingResponse{}, fmt.Errorf("setting not found")
	}
	return toSettingResponse(*setting), nil
}

func (s *settingService) ListSettings(ctx context.Context) ([]SettingResponse, error) {
	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}

	result := make([]SettingResponse, 0, len(settings))
	for _, st := range settings {
		result = append(result, toSettingResponse(st))
	}
	return result, nil
}

func (s *settingService) UpsertSetting(ctx context.Context, adminID string, req UpsertSettingRequest) (SettingResponse, error) {
	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return SettingResponse{}, fmt.Errorf("invalid admin id: %w", err)
	}

	setting := model.PlatformSetting{
		Key:         req.Key,
		Value:       req.Value,
		Description: req.Description,
		UpdatedBy:   &adminUUID,
	}
	if err := s.repo.Upsert(ctx, &setting); err != nil {
		return SettingResponse{}, fmt.Errorf("failed to save setting: %w", err)
	}

	// Best-effort audit; the setting is already saved
	_ = s.auditRepo.Log(ctx, &model.AuditLog{
		UserID:     &adminUUID,
		Action:     model.ActionUpdateSetting,
		EntityID:   req.Key,
		EntityName: req.Key,
		Details:    fmt.Sprintf(`{"value":%q}`, req.Value),
	})

	return toSettingResponse(setting), nil
}

// --- Mapping ---

func toSettingResponse(st model.PlatformSetting) SettingResponse {
	return SettingResponse{
		Key:         st.Key,
		Value:       st.Value,
		Description: st.Description,
		UpdatedAt:   st.UpdatedAt.Format(time.RFC3339),
	}
}
