package repository

import (
	"time"

	"github.com/outreachdesk/outreach-campaign-backend/internal/models"

	"gorm.io/gorm"
)

type ScheduledSmsRepository struct {
	db *gorm.DB
}

func NewScheduledSmsRepository(db *gorm.DB) *ScheduledSmsRepository {
	return &ScheduledSmsRepository{db: db}
}

// CreateBatch inserts a batch of scheduled SMS in one statement
func (r *ScheduledSmsRepository) CreateBatch(messages []*models.ScheduledSms) error {
	if len(messages) == 0 {
		return nil
	}
	return r.db.Create(&messages).Error
}

// GetByCampaignID retrieves all scheduled SMS for a campaign
func (r *ScheduledSmsRepository) GetByCampaignID(campaignID string) ([]*models.ScheduledSms, error) {
	var messages []*models.ScheduledSms
	err := r.db.Where("campaign_id = ?", campaignID).
		Order("scheduled_at ASC").
		Find(&messages).Error
	return messages, err
}

// FindDue returns due pending SMS of active campaigns, earliest first
func (r *ScheduledSmsRepository) FindDue(now time.Time, limit int) ([]*models.ScheduledSms, error) {
	var messages []*models.ScheduledSms
	err := r.db.
		Joins("JOIN sms_campaigns ON sms_campaigns.id = scheduled_sms.campaign_id").
		Where("scheduled_sms.status = ? AND scheduled_sms.scheduled_at <= ? AND sms_campaigns.status = ?",
			models.MessageStatusPending, now, models.CampaignStatusActive).
		Order("sms_campaigns.priority DESC, scheduled_sms.scheduled_at ASC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// Update saves a scheduled SMS
func (r *ScheduledSmsRepository) Update(message *models.ScheduledSms) error {
	return r.db.Save(message).Error
}
