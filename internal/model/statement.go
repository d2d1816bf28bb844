package model

import (
	"time"

	"github.com/google/uuid"
)

// StatementStatus enum constants
const (
	StatementStatusProcessing = "PROCESSING"
	StatementStatusCompleted  = "COMPLETED"
	StatementStatusFailed     = "FAILED"
)

// BankStatement records one uploaded statement document and the outcome of
// its extraction run.
type BankStatement struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User     *User     `gorm:"foreignKey:UserID" json:"-"`
	FileName string    `gorm:"type:varchar(255);not null" json:"file_name"`
	BankName string    `gorm:"type:varchar(100)" json:"bank_name"`
	Status   string    `gorm:"type:varchar(20);not null;default:'PROCESSING';index" json:"status"`

	TransactionCount int    `gorm:"default:0" json:"transaction_count"`
	SkippedLineCount int    `gorm:"default:0" json:"skipped_line_count"`
	FailureReason    string `gorm:"type:text" json:"failure_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
