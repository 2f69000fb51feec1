package models

import (
	"time"
)

// CallCampaign represents an outbound voice campaign
type CallCampaign struct {
	ID         string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name       string `json:"name" gorm:"type:varchar(255);not null"`
	OwnerEmail string `json:"owner_email" gorm:"type:varchar(255);not null"`

	// Scheduling window
	AllowedDays   string `json:"allowed_days" gorm:"type:varchar(255)"` // comma-joined day names, e.g. "monday,tuesday"
	CallStartHour int    `json:"call_start_hour" gorm:"not null;default:9"`
	CallEndHour   int    `json:"call_end_hour" gorm:"not null;default:17"`
	Timezone      string `json:"timezone" gorm:"type:varchar(64);default:'UTC'"`

	// Dispatch ordering and cadence
	Priority int    `json:"priority" gorm:"default:0;index"`
	Mode     string `json:"mode" gorm:"type:varchar(20);default:'production'"` // production, test

	// Voice agent configuration
	SystemPrompt string `json:"system_prompt" gorm:"type:text"`
	OpeningLine  string `json:"opening_line" gorm:"type:text"`

	Status string `json:"status" gorm:"type:varchar(20);index;default:'active'"` // active, paused, completed

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	ScheduledCalls []ScheduledCall `json:"scheduled_calls,omitempty" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the CallCampaign model
func (CallCampaign) TableName() string {
	return "call_campaigns"
}

// CreateCallCampaignRequest represents the request to create a call campaign
type CreateCallCampaignRequest struct {
	Name          string   `json:"name" binding:"required" example:"Q3 renewals"`
	OwnerEmail    string   `json:"owner_email" binding:"required,email" example:"ops@example.com"`
	AllowedDays   []string `json:"allowed_days" example:"monday,wednesday,friday"`
	CallStartHour int      `json:"call_start_hour" binding:"min=0,max=23" example:"9"`
	CallEndHour   int      `json:"call_end_hour" binding:"min=0,max=23" example:"17"`
	Timezone      string   `json:"timezone" example:"America/New_York"`
	Priority      int      `json:"priority" example:"10"`
	Mode          string   `json:"mode" example:"production"`
	SystemPrompt  string   `json:"system_prompt" example:"You are a friendly renewal agent for {company}."`
	OpeningLine   string   `json:"opening_line" example:"Hi {name}, calling about your renewal."`
}

// UpdateCallCampaignRequest represents the request to update a call campaign
type UpdateCallCampaignRequest struct {
	Name          *string  `json:"name" example:"Q3 renewals"`
	AllowedDays   []string `json:"allowed_days" example:"monday,wednesday"`
	CallStartHour *int     `json:"call_start_hour" example:"10"`
	CallEndHour   *int     `json:"call_end_hour" example:"16"`
	Timezone      *string  `json:"timezone" example:"America/New_York"`
	Priority      *int     `json:"priority" example:"5"`
	Mode          *string  `json:"mode" example:"test"`
	SystemPrompt  *string  `json:"system_prompt"`
	OpeningLine   *string  `json:"opening_line"`
	Status        *string  `json:"status" example:"paused"`
}

// CallCampaignResponse represents the response for call campaign operations
type CallCampaignResponse struct {
	ID            string   `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name          string   `json:"name" example:"Q3 renewals"`
	OwnerEmail    string   `json:"owner_email" example:"ops@example.com"`
	AllowedDays   []string `json:"allowed_days" example:"monday,wednesday,friday"`
	CallStartHour int      `json:"call_start_hour" example:"9"`
	CallEndHour   int      `json:"call_end_hour" example:"17"`
	Timezone      string   `json:"timezone" example:"America/New_York"`
	Priority      int      `json:"priority" example:"10"`
	Mode          string   `json:"mode" example:"production"`
	SystemPrompt  string   `json:"system_prompt"`
	OpeningLine   string   `json:"opening_line"`
	Status        string   `json:"status" example:"active"`
	CreatedAt     string   `json:"created_at" example:"2025-01-09T10:30:00Z"`
	UpdatedAt     string   `json:"updated_at" example:"2025-01-09T10:30:00Z"`
}
