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

type CreateCustomerRequest struct {
	Name          string `json:"name" binding:"required"`
	CompanyName   string `json:"company_name"`
	TaxIdentityNo string `json:"tax_identity_no"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	Address       string `json:"address"`
}

type UpdateCustomerRequest struct {
	Name          string `json:"name"`
	CompanyName   string `json:"company_name"`
	TaxIdentityNo string `json:"tax_identity_no"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	Address       string `json:"address"`
	IsActive      *bool  `json:"is_active"`
}

type CustomerResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CompanyName   string `json:"company_name"`
	TaxIdentityNo string `json:"tax_identity_no"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     string `json:"created_at"`
}

// --- Interface ---

type CustomerService interface {
	CreateCustomer(ctx context.Context, userID string, req CreateCustomerRequest) (CustomerResponse, error)
	GetCustomer(ctx context.Context, userID, id string) (CustomerResponse, error)
	ListCustomers(ctx context.Context, userID, search string, page, limit int) ([]CustomerResponse, int64, error)
	UpdateCustomer(ctx context.Context, userID, id string, req UpdateCustomerRequest) (CustomerResponse, error)
	DeleteCustomer(ctx context.Context, userID, id string) error
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

// --- Implementation ---

func (s *customerService) CreateCustomer(ctx context.Context, userID string, req CreateCustomerRequest) (CustomerResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return CustomerResponse{}, fmt.Errorf("invalid user id: %w", err)
	}

	customer := model.Customer{
		UserID:        userUUID,
		Name:          req.Name,
		CompanyName:   req.CompanyName,
		TaxIdentityNo: req.TaxIdentityNo,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		IsActive:      true,
	}

	if err := s.repo.Create(ctx, &customer); err != nil {
		return CustomerResponse{}, fmt.Errorf("failed to create customer: %w", err)
	}

	return toCustomerResponse(customer), nil
}

func (s *customerService) GetCustomer(ctx context.Context, userID, id string) (CustomerResponse, error) {
	userUUID, customerUUID, err := parseUserAndID(userID, id)
	if err != nil {
		return CustomerResponse{}, err
	}

	customer, err := s.repo.FindByID(ctx, userUUID, customerUUID)
	if err != nil {
		return CustomerResponse{}, fmt.Errorf("customer not found")
	}
	return toCustomerResponse(*customer), nil
}

func (s *customerService) ListCustomers(ctx context.Context, userID, search string, page, limit int) ([]CustomerResponse, int64, error) {
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

	customers, total, err := s.repo.List(ctx, userUUID, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch customers: %w", err)
	}

	result := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		result = append(result, toCustomerResponse(c))
	}
	return result, total, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, userID, id string, req UpdateCustomerRequest) (CustomerResponse, error) {
	userUUID, customerUUID, err := parseUserAndID(userID, id)
	if err != nil {
		return CustomerResponse{}, err
	}

	customer, err := s.repo.FindByID(ctx, userUUID, customerUUID)
	if err != nil {
		return CustomerResponse{}, fmt.Errorf("customer not found")
	}

	if req.Name != "" {
		customer.Name = req.Name
	}
	if req.CompanyName != "" {
		customer.CompanyName = req.CompanyName
	}
	if req.TaxIdentityNo != "" {
		customer.TaxIdentityNo = req.TaxIdentityNo
	}
	if req.ContactPerson != "" {
		customer.ContactPerson = req.ContactPerson
	}
	if req.Phone != "" {
		customer.Phone = req.Phone
	}
	if req.Email != "" {
		customer.Email = req.Email
	}
	if req.Address != "" {
		customer.Address = req.Address
	}
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		return CustomerResponse{}, fmt.Errorf("failed to update customer: %w", err)
	}

	return toCustomerResponse(*customer), nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, userID, id string) error {
	userUUID, customerUUID, err := parseUserAndID(userID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, userUUID, customerUUID)
}

// --- Helpers ---

func parseUserAndID(userID, id string) (uuid.UUID, uuid.UUID, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid user id: %w", err)
	}
	entityUUID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid id: %w", err)
	}
	return userUUID, entityUUID, nil
}

func toCustomerResponse(c model.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID.String(),
		Name:          c.Name,
		CompanyName:   c.CompanyName,
		TaxIdentityNo: c.TaxIdentityNo,
		ContactPerson: c.ContactPerson,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
}
