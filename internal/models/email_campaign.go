package models

import (
	"time"
)

// EmailCampaign represents a recurring email outreach campaign
type EmailCampaign struct {
	ID         string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name       string `json:"name" gorm:"type:varchar(255);not null"`
	OwnerEmail string `json:"owner_email" gorm:"type:varchar(255);not null"`

	// Scheduling window
	AllowedDays   string `json:"allowed_days" gorm:"type:varchar(255)"`
	SendStartHour int    `json:"send_start_hour" gorm:"not null;default:9"`
	SendEndHour   int    `json:"send_end_hour" gorm:"not null;default:17"`
	Timezone      string `json:"timezone" gorm:"type:varchar(64);default:'UTC'"`
	Priority      int    `json:"priority" gorm:"default:0;index"`

	// Wave cadence: weekly x N, monthly x N, or one wave per day for N days
	FrequencyType  string `json:"frequency_type" gorm:"type:varchar(20);default:'weekly'"`
	FrequencyValue int    `json:"frequency_value" gorm:"default:1"`

	SubjectTemplate string `json:"subject_template" gorm:"type:text;not null"`
	BodyTemplate    string `json:"body_template" gorm:"type:text;not null"`

	Status string `json:"status" gorm:"type:varchar(20);index;default:'active'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	ScheduledEmails []ScheduledEmail `json:"scheduled_emails,omitempty" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the EmailCampaign model
func (EmailCampaign) TableName() string {
	return "email_campaigns"
}

// CreateEmailCampaignRequest represents the request to create an email campaign
type CreateEmailCampaignRequest struct {
	Name            string   `json:"name" binding:"required" example:"Newsletter onboarding"`
	OwnerEmail      string   `json:"owner_email" binding:"required,email" example:"ops@example.com"`
	AllowedDays     []string `json:"allowed_days" example:"tuesday,thursday"`
	SendStartHour   int      `json:"send_start_hour" binding:"min=0,max=23" example:"8"`
	SendEndHour     int      `json:"send_end_hour" binding:"min=0,max=23" example:"18"`
	Timezone        string   `json:"timezone" example:"UTC"`
	Priority        int      `json:"priority" example:"0"`
	FrequencyType   string   `json:"frequency_type" example:"monthly"`
	FrequencyValue  int      `json:"frequency_value" binding:"min=0" example:"2"`
	SubjectTemplate string   `json:"subject_template" binding:"required" example:"{name}, a quick question"`
	BodyTemplate    string   `json:"body_template" binding:"required" example:"Hi {name}, about {subject}..."`
}

// UpdateEmailCampaignRequest represents the request to update an email campaign
type UpdateEmailCampaignRequest struct {
	Name            *string  `json:"name"`
	AllowedDays     []string `json:"allowed_days"`
	SendStartHour   *int     `json:"send_start_hour"`
	SendEndHour     *int     `json:"send_end_hour"`
	Timezone        *string  `json:"timezone"`
	Priority        *int     `json:"priority"`
	FrequencyType   *string  `json:"frequency_type"`
	FrequencyValue  *int     `json:"frequency_value"`
	SubjectTemplate *string  `json:"subject_template"`
	BodyTemplate    *string  `json:"body_template"`
	Status          *string  `json:"status"`
}

// EmailCampaignResponse represents the response for email campaign operations
type EmailCampaignResponse struct {
	ID              string   `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name            string   `json:"name" example:"Newsletter onboarding"`
	OwnerEmail      string   `json:"owner_email" example:"ops@example.com"`
	AllowedDays     []string `json:"allowed_days" example:"tuesday,thursday"`
	SendStartHour   int      `json:"send_start_hour" example:"8"`
	SendEndHour     int      `json:"send_end_hour" example:"18"`
	Timezone        string   `json:"timezone" example:"UTC"`
	Priority        int      `json:"priority" example:"0"`
	FrequencyType   string   `json:"frequency_type" example:"monthly"`
	FrequencyValue  int      `json:"frequency_value" example:"2"`
	SubjectTemplate string   `json:"subject_template"`
	BodyTemplate    string   `json:"body_template"`
	Status          string   `json:"status" example:"active"`
	CreatedAt       string   `json:"created_at" example:"2025-01-09T10:30:00Z"`
	UpdatedAt       string   `json:"updated_at" example:"2025-01-09T10:30:00Z"`
}
