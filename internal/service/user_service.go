package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"regexp"
	"time"

	"vouchbooks/internal/model"
	"vouchbooks/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// DTOs for Request validation
type RegisterUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"full_name" binding:"required"`
	Phone       string `json:"phone"`
	AccountType string `json:"account_type" binding:"required,oneof=personal business"`
}

type UpdateProfileRequest struct {
	FullName              string  `json:"full_name"`
	Phone                 string  `json:"phone"`
	AccountType           string  `json:"account_type" binding:"omitempty,oneof=personal business"`
	BusinessName          string  `json:"business_name"`
	Sector                string  `json:"sector"`
	AnnualTurnover        string  `json:"annual_turnover"` // Decimal string
	TotalAssets           string  `json:"total_assets"`
	IsProfessionalService *bool   `json:"is_professional_service"`
	IsTaxExempt           *bool   `json:"is_tax_exempt"`
	AnnualIncome          string  `json:"annual_income"`
	PaysRent              *bool   `json:"pays_rent"`
	RentAmount            string  `json:"rent_amount"`
	TaxIdentityNumber     *string `json:"tax_identity_number"`
	NIN                   *string `json:"nin"`
	BVN                   *string `json:"bvn"`
	ResidenceState        string  `json:"residence_state"`
}

type LoginUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// DTO for returning User without exposing sensitive data (e.g. password, BVN)
type UserResponse struct {
	ID                    uuid.UUID `json:"id"`
	Email                 string    `json:"email"`
	FullName              string    `json:"full_name"`
	Phone                 string    `json:"phone"`
	Role                  string    `json:"role"`
	AccountType           string    `json:"account_type"`
	BusinessName          string    `json:"business_name"`
	Sector                string    `json:"sector"`
	AnnualTurnover        string    `json:"annual_turnover"`
	TotalAssets           string    `json:"total_assets"`
	IsProfessionalService bool      `json:"is_professional_service"`
	IsTaxExempt           bool      `json:"is_tax_exempt"`
	AnnualIncome          string    `json:"annual_income"`
	PaysRent              bool      `json:"pays_rent"`
	RentAmount            string    `json:"rent_amount"`
	TaxIdentityNumber     string    `json:"tax_identity_number"`
	NIN                   string    `json:"nin"`
	ResidenceState        string    `json:"residence_state"`
	CreatedAt             string    `json:"created_at"`
	UpdatedAt             string    `json:"updated_at"`
}

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

// UserService defines the interface for business logic related to User
type UserService interface {
	Register(ctx context.Context, req RegisterUserRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUserByID(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

type userService struct {
	repo      repository.UserRepository
	tokenRepo repository.TokenRepository
	auditRepo repository.AuditRepository
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, tokenRepo repository.TokenRepository, auditRepo repository.AuditRepository) UserService {
	return &userService{repo: repo, tokenRepo: tokenRepo, auditRepo: auditRepo}
}

// Helper: parse model to standard json API response
func mapToResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:                    user.ID,
		Email:                 user.Email,
		FullName:              user.FullName,
		Phone:                 user.Phone,
		Role:                  user.Role,
		AccountType:           user.AccountType,
		BusinessName:          user.BusinessName,
		Sector:                user.Sector,
		AnnualTurnover:        user.AnnualTurnover.StringFixed(2),
		TotalAssets:           user.TotalAssets.StringFixed(2),
		IsProfessionalService: user.IsProfessionalService,
		IsTaxExempt:           user.IsTaxExempt,
		AnnualIncome:          user.AnnualIncome.StringFixed(2),
		PaysRent:              user.PaysRent,
		RentAmount:            user.RentAmount.StringFixed(2),
		TaxIdentityNumber:     user.TaxIdentityNumber,
		NIN:                   user.NIN,
		ResidenceState:        user.ResidenceState,
		CreatedAt:             user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             user.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *userService) Register(ctx context.Context, req RegisterUserRequest) (*UserResponse, error) {
	// Basic Email format validation fallback
	emailRegex := regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`)
	if !emailRegex.MatchString(req.Email) {
		return nil, errors.New("invalid email format")
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("email already exists")
	}

	// Hash password automatically
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &model.User{
		Email:       req.Email,
		Password:    string(hashedPassword),
		FullName:    req.FullName,
		Phone:       req.Phone,
		Role:        model.RoleUser, // self-registration never grants admin
		AccountType: req.AccountType,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Best-effort audit; registration already succeeded
	_ = s.auditRepo.Log(ctx, &model.AuditLog{
		UserID:     &user.ID,
		Action:     model.ActionRegisterUser,
		EntityID:   user.ID.String(),
		EntityName: user.Email,
	})

	return mapToResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	return s.issueTokens(ctx, user)
}

func (s *userService) Refresh(ctx context.Context, req RefreshRequest) (*TokenResponse, error) {
	stored, err := s.tokenRepo.FindByToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.tokenRepo.Delete(ctx, req.RefreshToken)
		return nil, errors.New("refresh token expired")
	}

	user, err := s.repo.GetByID(ctx, stored.UserID.String())
	if err != nil {
		return nil, errors.New("user not found")
	}

	// Rotate: old token is single use
	if err := s.tokenRepo.Delete(ctx, req.RefreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *userService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.Delete(ctx, refreshToken)
}

func (s *userService) issueTokens(ctx context.Context, user *model.User) (*TokenResponse, error) {
	expiresAt := time.Now().Add(accessTokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  expiresAt.Unix(),
	})

	// Use same fallback strategy as middleware for simplicity here or get from env centrally
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_super_secret_key"
	}

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, errors.New("failed to generate refresh token")
	}
	refresh := hex.EncodeToString(raw)

	if err := s.tokenRepo.Create(ctx, &model.RefreshToken{
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}); err != nil {
		return nil, err
	}

	return &TokenResponse{
		Token:        tokenString,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt.Format(time.RFC3339),
	}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return mapToResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	users, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var responses []UserResponse
	for _, u := range users {
		responses = append(responses, *mapToResponse(&u))
	}

	return responses, total, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.AccountType != "" {
		user.AccountType = req.AccountType
	}
	if req.BusinessName != "" {
		user.BusinessName = req.BusinessName
	}
	if req.Sector != "" {
		user.Sector = req.Sector
	}
	if req.ResidenceState != "" {
		user.ResidenceState = req.ResidenceState
	}

	if err := applyDecimalField(req.AnnualTurnover, &user.AnnualTurnover, "annual_turnover"); err != nil {
		return nil, err
	}
	if err := applyDecimalField(req.TotalAssets, &user.TotalAssets, "total_assets"); err != nil {
		return nil, err
	}
	if err := applyDecimalField(req.AnnualIncome, &user.AnnualIncome, "annual_income"); err != nil {
		return nil, err
	}
	if err := applyDecimalField(req.RentAmount, &user.RentAmount, "rent_amount"); err != nil {
		return nil, err
	}

	if req.IsProfessionalService != nil {
		user.IsProfessionalService = *req.IsProfessionalService
	}
	if req.IsTaxExempt != nil {
		user.IsTaxExempt = *req.IsTaxExempt
	}
	if req.PaysRent != nil {
		user.PaysRent = *req.PaysRent
	}
	if req.TaxIdentityNumber != nil {
		user.TaxIdentityNumber = *req.TaxIdentityNumber
	}
	if req.NIN != nil {
		user.NIN = *req.NIN
	}
	if req.BVN != nil {
		user.BVN = *req.BVN
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, &model.AuditLog{
		UserID:     &user.ID,
		Action:     model.ActionUpdateProfile,
		EntityID:   user.ID.String(),
		EntityName: user.Email,
	})

	return mapToResponse(user), nil
}

// applyDecimalField parses a decimal string into dst when the field was sent.
func applyDecimalField(raw string, dst *decimal.Decimal, name string) error {
	if raw == "" {
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return errors.New("invalid " + name)
	}
	if v.IsNegative() {
		return errors.New(name + " must not be negative")
	}
	*dst = v
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	// Let repo handle existence check implicitly or we can check first
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.New("user not found")
	}
	return s.repo.Delete(ctx, id)
}
