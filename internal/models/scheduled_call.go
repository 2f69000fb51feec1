package models

import (
	"time"
)

// ScheduledCall represents one planned call attempt for a contact
type ScheduledCall struct {
	ID         string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CampaignID string `json:"campaign_id" gorm:"type:uuid;not null;index"`

	ContactName string `json:"contact_name" gorm:"type:varchar(255)"`
	Phone       string `json:"phone" gorm:"type:varchar(32);not null;index"`
	Subject     string `json:"subject" gorm:"type:text"`

	// Message with placeholders already substituted at upload time
	SystemPrompt string `json:"system_prompt" gorm:"type:text"`
	OpeningLine  string `json:"opening_line" gorm:"type:text"`

	ScheduledAt   time.Time `json:"scheduled_at" gorm:"not null;index"`
	Status        string    `json:"status" gorm:"type:varchar(20);not null;index;default:'pending'"`
	RetryCount    int       `json:"retry_count" gorm:"default:0"`
	SkippedReason *string   `json:"skipped_reason,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Campaign CallCampaign `json:"campaign,omitempty" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
	CallLogs []CallLog    `json:"call_logs,omitempty" gorm:"foreignKey:ScheduledCallID;references:ID"`
}

// TableName specifies the table name for the ScheduledCall model
func (ScheduledCall) TableName() string {
	return "scheduled_calls"
}
