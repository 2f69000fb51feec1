package models

import (
	"time"
)

// ScheduledSms represents one planned SMS send for a contact within a wave
type ScheduledSms struct {
	ID         string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CampaignID string `json:"campaign_id" gorm:"type:uuid;not null;index"`

	ContactName string `json:"contact_name" gorm:"type:varchar(255)"`
	Phone       string `json:"phone" gorm:"type:varchar(32);not null;index"`

	Message string `json:"message" gorm:"type:text;not null"`
	Wave    int    `json:"wave" gorm:"default:1"`

	ScheduledAt   time.Time `json:"scheduled_at" gorm:"not null;index"`
	Status        string    `json:"status" gorm:"type:varchar(20);not null;index;default:'pending'"`
	RetryCount    int       `json:"retry_count" gorm:"default:0"`
	SkippedReason *string   `json:"skipped_reason,omitempty" gorm:"type:text"`

	// Provider message SID once sent
	ProviderSID *string `json:"provider_sid,omitempty" gorm:"type:varchar(64)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Campaign SmsCampaign `json:"campaign,omitempty" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the ScheduledSms model
func (ScheduledSms) TableName() string {
	return "scheduled_sms"
}
