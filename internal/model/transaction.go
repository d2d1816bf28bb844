package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType enum constants
const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

// TransactionSource enum constants
const (
	SourceManual        = "manual"
	SourceBankStatement = "bank_statement"
)

// Transaction is one financial movement, entered manually or extracted from
// a parsed bank statement. Amount is always a positive magnitude; direction
// is carried by Type.
type Transaction struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID" json:"-"`

	Date        time.Time       `gorm:"type:date;not null;index" json:"date"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Type        string          `gorm:"type:varchar(10);not null;index" json:"type"` // income, expense
	Description string          `gorm:"type:text" json:"description"`
	Narration   string          `gorm:"type:text" json:"narration"`
	Payee       string          `gorm:"type:varchar(255)" json:"payee"`

	// Categorisation (expenses only)
	CategoryID   string `gorm:"type:varchar(50);index" json:"category_id"`
	CategoryName string `gorm:"type:varchar(100)" json:"category_name"`
	IsDeductible bool   `gorm:"default:false" json:"is_deductible"`

	// VAT recorded at entry time; preferred over the theoretical 7.5%
	// figure when assembling the VAT return.
	VATAmount decimal.Decimal `gorm:"column:vat_amount;type:decimal(18,2);default:0" json:"vat_amount"`
	VATExempt bool            `gorm:"column:vat_exempt;default:false" json:"vat_exempt"`

	// Digital asset disposals carry their acquisition cost for CGT.
	IsDigitalAsset  bool            `gorm:"default:false" json:"is_digital_asset"`
	AcquisitionCost decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"acquisition_cost"`

	// Compliance flags (see internal/bank)
	IsInternalTransfer bool   `gorm:"default:false" json:"is_internal_transfer"`
	IsTaxCredit        bool   `gorm:"default:false" json:"is_tax_credit"`
	IsBankCharge       bool   `gorm:"default:false" json:"is_bank_charge"`
	FlaggedForReview   bool   `gorm:"default:false;index" json:"flagged_for_review"`
	ComplianceNotes    string `gorm:"type:text" json:"compliance_notes"` // newline-separated rule notes

	// W&E evidence gate
	HasReceipt  bool   `gorm:"default:false" json:"has_receipt"`
	DocumentURL string `gorm:"type:text" json:"document_url"`

	// Provenance
	Source      string     `gorm:"type:varchar(20);not null;default:'manual'" json:"source"` // manual, bank_statement
	StatementID *uuid.UUID `gorm:"type:uuid;index" json:"statement_id"`
	BankName    string     `gorm:"type:varchar(100)" json:"bank_name"`
	RawText     string     `gorm:"type:text" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
