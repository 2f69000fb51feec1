package models

// Contact is one uploaded contact record; it exists only to be paired with a
// generated slot and is never persisted on its own.
type Contact struct {
	Name    string `json:"name" binding:"required" example:"Alice Smith"`
	Phone   string `json:"phone,omitempty" example:"+15550100200"`
	Email   string `json:"email,omitempty" example:"alice@example.com"`
	Subject string `json:"subject,omitempty" example:"contract renewal"`
}

// UploadContactsRequest represents an uploaded contact batch for a campaign
type UploadContactsRequest struct {
	Contacts []Contact `json:"contacts" binding:"required"`
	// Optional explicit start instant (RFC3339); defaults to now
	StartAt *string `json:"start_at,omitempty" example:"2025-03-01T09:00:00Z"`
}

// UploadContactsResponse reports how many items were scheduled from a batch
type UploadContactsResponse struct {
	CampaignID     string `json:"campaign_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ScheduledCount int    `json:"scheduled_count" example:"42"`
	SkippedCount   int    `json:"skipped_count" example:"2"`
	FirstSlot      string `json:"first_slot,omitempty" example:"2025-03-01T09:00:00Z"`
	LastSlot       string `json:"last_slot,omitempty" example:"2025-03-01T16:30:00Z"`
}
