package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountType enum constants
const (
	AccountTypePersonal = "personal"
	AccountTypeBusiness = "business"
)

// Role enum constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents the central user entity. The tax-profile fields feed the
// statutory form mappers directly, so they live on the user rather than a
// side table.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"type:varchar(255);not null" json:"-"` // Omit password from JSON requests/responses
	FullName    string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone       string    `gorm:"type:varchar(20)" json:"phone"`
	Role        string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"` // user, admin
	AccountType string    `gorm:"type:varchar(20);not null;default:'personal'" json:"account_type"`

	// Business profile
	BusinessName          string          `gorm:"type:varchar(255)" json:"business_name"`
	Sector                string          `gorm:"type:varchar(100)" json:"sector"`
	AnnualTurnover        decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"annual_turnover"`
	TotalAssets           decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"total_assets"`
	IsProfessionalService bool            `gorm:"default:false" json:"is_professional_service"`
	IsTaxExempt           bool            `gorm:"default:false" json:"is_tax_exempt"`

	// Personal profile
	AnnualIncome decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"annual_income"`
	PaysRent     bool            `gorm:"default:false" json:"pays_rent"`
	RentAmount   decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"rent_amount"`

	// Identity
	TaxIdentityNumber string `gorm:"type:varchar(50)" json:"tax_identity_number"`
	NIN               string `gorm:"type:varchar(20)" json:"nin"`
	BVN               string `gorm:"type:varchar(20)" json:"-"` // never expose BVN in responses
	ResidenceState    string `gorm:"type:varchar(50)" json:"residence_state"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // GORM soft delete
}

// RefreshToken stores long-lived tokens allowing users to request new access tokens
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
