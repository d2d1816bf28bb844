package model

import (
	"time"

	"github.com/google/uuid"
)

// InsightSeverity enum constants
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityUrgent  = "urgent"
)

// Insight is a compliance nudge surfaced to the user, such as an approaching
// VAT registration threshold or transactions awaiting review.
type Insight struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User     *User     `gorm:"foreignKey:UserID" json:"-"`
	Code     string    `gorm:"type:varchar(50);not null;index" json:"code"` // stable rule identifier
	Severity string    `gorm:"type:varchar(10);not null" json:"severity"`   // info, warning, urgent
	Title    string    `gorm:"type:varchar(255);not null" json:"title"`
	Body     string    `gorm:"type:text" json:"body"`
	IsRead   bool      `gorm:"default:false;index" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
