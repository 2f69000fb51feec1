package models

import (
	"time"
)

// ScheduledEmail represents one planned email send for a contact within a wave
type ScheduledEmail struct {
	ID         string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CampaignID string `json:"campaign_id" gorm:"type:uuid;not null;index"`

	ContactName string `json:"contact_name" gorm:"type:varchar(255)"`
	Email       string `json:"email" gorm:"type:varchar(255);not null;index"`

	Subject string `json:"subject" gorm:"type:text;not null"`
	Body    string `json:"body" gorm:"type:text;not null"`
	Wave    int    `json:"wave" gorm:"default:1"`

	ScheduledAt   time.Time `json:"scheduled_at" gorm:"not null;index"`
	Status        string    `json:"status" gorm:"type:varchar(20);not null;index;default:'pending'"`
	RetryCount    int       `json:"retry_count" gorm:"default:0"`
	SkippedReason *string   `json:"skipped_reason,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Campaign EmailCampaign `json:"campaign,omitempty" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the ScheduledEmail model
func (ScheduledEmail) TableName() string {
	return "scheduled_emails"
}
