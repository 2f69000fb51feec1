package models

import (
	"time"
)

// DNCEntry is a do-not-call suppression entry, scoped to one campaign or global
type DNCEntry struct {
	ID    string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Phone string `json:"phone" gorm:"type:varchar(32);not null;index"`

	// NULL means the entry suppresses the number for every campaign
	CampaignID *string `json:"campaign_id,omitempty" gorm:"type:uuid;index"`

	Reason string `json:"reason" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the DNCEntry model
func (DNCEntry) TableName() string {
	return "dnc_entries"
}

// CreateDNCEntryRequest represents the request to add a DNC entry
type CreateDNCEntryRequest struct {
	Phone      string  `json:"phone" binding:"required" example:"+15550100200"`
	CampaignID *string `json:"campaign_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Reason     string  `json:"reason" example:"opt-out request"`
}
