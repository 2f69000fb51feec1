package repository

import (
	"time"

	"github.com/outreachdesk/outreach-campaign-backend/internal/models"

	"gorm.io/gorm"
)

type ScheduledEmailRepository struct {
	db *gorm.DB
}

func NewScheduledEmailRepository(db *gorm.DB) *ScheduledEmailRepository {
	return &ScheduledEmailRepository{db: db}
}

// CreateBatch inserts a batch of scheduled emails in one statement
func (r *ScheduledEmailRepository) CreateBatch(emails []*models.ScheduledEmail) error {
	if len(emails) == 0 {
		return nil
	}
	return r.db.Create(&emails).Error
}

// GetByCampaignID retrieves all scheduled emails for a campaign
func (r *ScheduledEmailRepository) GetByCampaignID(campaignID string) ([]*models.ScheduledEmail, error) {
	var emails []*models.ScheduledEmail
	err := r.db.Where("campaign_id = ?", campaignID).
		Order("scheduled_at ASC").
		Find(&emails).Error
	return emails, err
}

// FindDue returns due pending emails of active campaigns, earliest first
func (r *ScheduledEmailRepository) FindDue(now time.Time, limit int) ([]*models.ScheduledEmail, error) {
	var emails []*models.ScheduledEmail
	err := r.db.
		Joins("JOIN email_campaigns ON email_campaigns.id = scheduled_emails.campaign_id").
		Where("scheduled_emails.status = ? AND scheduled_emails.scheduled_at <= ? AND email_campaigns.status = ?",
			models.MessageStatusPending, now, models.CampaignStatusActive).
		Order("email_campaigns.priority DESC, scheduled_emails.scheduled_at ASC").
		Limit(limit).
		Find(&emails).Error
	return emails, err
}

// Update saves a scheduled email
func (r *ScheduledEmailRepository) Update(email *models.ScheduledEmail) error {
	return r.db.Save(email).Error
}
