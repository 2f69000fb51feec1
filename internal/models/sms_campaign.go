package models

import (
	"time"
)

// SmsCampaign represents a recurring SMS outreach campaign
type SmsCampaign struct {
	ID         string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name       string `json:"name" gorm:"type:varchar(255);not null"`
	OwnerEmail string `json:"owner_email" gorm:"type:varchar(255);not null"`

	// Scheduling window
	AllowedDays   string `json:"allowed_days" gorm:"type:varchar(255)"`
	SendStartHour int    `json:"send_start_hour" gorm:"not null;default:9"`
	SendEndHour   int    `json:"send_end_hour" gorm:"not null;default:17"`
	Timezone      string `json:"timezone" gorm:"type:varchar(64);default:'UTC'"`
	Priority      int    `json:"priority" gorm:"default:0;index"`

	// Wave cadence: weekly x N, monthly x N, or a flat duration in days
	FrequencyType  string `json:"frequency_type" gorm:"type:varchar(20);default:'weekly'"` // weekly, monthly, days
	FrequencyValue int    `json:"frequency_value" gorm:"default:1"`

	MessageTemplate string `json:"message_template" gorm:"type:text;not null"`

	Status string `json:"status" gorm:"type:varchar(20);index;default:'active'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	ScheduledSms []ScheduledSms `json:"scheduled_sms,omitempty" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the SmsCampaign model
func (SmsCampaign) TableName() string {
	return "sms_campaigns"
}

// CreateSmsCampaignRequest represents the request to create an SMS campaign
type CreateSmsCampaignRequest struct {
	Name            string   `json:"name" binding:"required" example:"Spring promo"`
	OwnerEmail      string   `json:"owner_email" binding:"required,email" example:"ops@example.com"`
	AllowedDays     []string `json:"allowed_days" example:"monday,tuesday"`
	SendStartHour   int      `json:"send_start_hour" binding:"min=0,max=23" example:"9"`
	SendEndHour     int      `json:"send_end_hour" binding:"min=0,max=23" example:"17"`
	Timezone        string   `json:"timezone" example:"Europe/Berlin"`
	Priority        int      `json:"priority" example:"0"`
	FrequencyType   string   `json:"frequency_type" example:"weekly"`
	FrequencyValue  int      `json:"frequency_value" binding:"min=0" example:"3"`
	MessageTemplate string   `json:"message_template" binding:"required" example:"Hi {name}, our spring offer ends soon."`
}

// UpdateSmsCampaignRequest represents the request to update an SMS campaign
type UpdateSmsCampaignRequest struct {
	Name            *string  `json:"name"`
	AllowedDays     []string `json:"allowed_days"`
	SendStartHour   *int     `json:"send_start_hour"`
	SendEndHour     *int     `json:"send_end_hour"`
	Timezone        *string  `json:"timezone"`
	Priority        *int     `json:"priority"`
	FrequencyType   *string  `json:"frequency_type"`
	FrequencyValue  *int     `json:"frequency_value"`
	MessageTemplate *string  `json:"message_template"`
	Status          *string  `json:"status" example:"paused"`
}

// SmsCampaignResponse represents the response for SMS campaign operations
type SmsCampaignResponse struct {
	ID              string   `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name            string   `json:"name" example:"Spring promo"`
	OwnerEmail      string   `json:"owner_email" example:"ops@example.com"`
	AllowedDays     []string `json:"allowed_days" example:"monday,tuesday"`
	SendStartHour   int      `json:"send_start_hour" example:"9"`
	SendEndHour     int      `json:"send_end_hour" example:"17"`
	Timezone        string   `json:"timezone" example:"Europe/Berlin"`
	Priority        int      `json:"priority" example:"0"`
	FrequencyType   string   `json:"frequency_type" example:"weekly"`
	FrequencyValue  int      `json:"frequency_value" example:"3"`
	MessageTemplate string   `json:"message_template"`
	Status          string   `json:"status" example:"active"`
	CreatedAt       string   `json:"created_at" example:"2025-01-09T10:30:00Z"`
	UpdatedAt       string   `json:"updated_at" example:"2025-01-09T10:30:00Z"`
}
