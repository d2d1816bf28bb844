package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus enum constants
const (
	InvoiceStatusDraft   = "DRAFT"
	InvoiceStatusSent    = "SENT"
	InvoiceStatusPaid    = "PAID"
	InvoiceStatusOverdue = "OVERDUE"
)

// Invoice is a sales document issued to a customer. Marking an invoice PAID
// records a matching income transaction, so paid invoices flow into the tax
// computations without re-entry.
type Invoice struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"-"`
	InvoiceNo  string     `gorm:"type:varchar(30);not null;index" json:"invoice_no"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id"`
	Customer   *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`

	Subtotal    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"subtotal"`
	VATAmount   decimal.Decimal `gorm:"column:vat_amount;type:decimal(18,2);not null;default:0" json:"vat_amount"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_amount"` // subtotal + vat_amount
	VATExempt   bool            `gorm:"column:vat_exempt;default:false" json:"vat_exempt"`

	Status   string     `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	IssuedAt time.Time  `gorm:"type:date;not null" json:"issued_at"`
	DueAt    *time.Time `gorm:"type:date" json:"due_at"`
	PaidAt   *time.Time `json:"paid_at"`

	// Set when the PAID transition records the income transaction.
	TransactionID *uuid.UUID `gorm:"type:uuid" json:"transaction_id"`

	Note      string    `gorm:"type:text" json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InvoiceItem is one line on an invoice.
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Description string          `gorm:"type:varchar(255);not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:1" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unit_price"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"line_total"` // quantity * unit_price
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
