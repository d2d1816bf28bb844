package model

import (
	"time"

	"github.com/google/uuid"
)

// Well-known platform setting keys.
const (
	SettingVATFilingDeadlineDay = "vat_filing_deadline_day"
	SettingCITFilingMonth       = "cit_filing_month"
	SettingMaintenanceBanner    = "maintenance_banner"
)

// PlatformSetting is an admin-managed key/value pair. Values are stored as
// strings; callers parse them into the type they need.
type PlatformSetting struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Key         string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"key"`
	Value       string     `gorm:"type:text;not null" json:"value"`
	Description string     `gorm:"type:varchar(255)" json:"description"`
	UpdatedBy   *uuid.UUID `gorm:"type:uuid" json:"updated_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
