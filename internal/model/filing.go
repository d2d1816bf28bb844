package model

import (
	"time"

	"github.com/google/uuid"
)

// FilingType enum constants
const (
	FilingTypeFormA     = "FORM_A"
	FilingTypeCITReturn = "CIT_RETURN"
	FilingTypeVATReturn = "VAT_RETURN"
)

// FilingStatus enum constants
const (
	FilingStatusDraft     = "DRAFT"
	FilingStatusSubmitted = "SUBMITTED"
	FilingStatusAccepted  = "ACCEPTED"
	FilingStatusRejected  = "REJECTED"
)

// TaxFiling is a snapshot of a generated statutory form. The form payload is
// frozen at creation so later transaction edits cannot silently change a
// submitted return.
type TaxFiling struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID" json:"-"`
	FilingType string    `gorm:"type:varchar(20);not null;index" json:"filing_type"` // FORM_A, CIT_RETURN, VAT_RETURN
	TaxYear    int       `gorm:"not null;index" json:"tax_year"`
	Period     string    `gorm:"type:varchar(20)" json:"period"` // e.g. "Jan 2026" for VAT, empty for annual forms

	FormData string `gorm:"type:jsonb;not null" json:"form_data"` // Full snapshot of the mapped form

	Status          string     `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	SubmittedAt     *time.Time `json:"submitted_at"`
	ReviewedBy      *uuid.UUID `gorm:"type:uuid" json:"reviewed_by"`
	Reviewer        *User      `gorm:"foreignKey:ReviewedBy" json:"reviewer,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
