package repository

import (
	"time"

	"github.com/outreachdesk/outreach-campaign-backend/internal/models"

	"gorm.io/gorm"
)

type ScheduledCallRepository struct {
	db *gorm.DB
}

func NewScheduledCallRepository(db *gorm.DB) *ScheduledCallRepository {
	return &ScheduledCallRepository{db: db}
}

// CreateBatch inserts a batch of scheduled calls in one statement
func (r *ScheduledCallRepository) CreateBatch(calls []*models.ScheduledCall) error {
	if len(calls) == 0 {
		return nil
	}
	return r.db.Create(&calls).Error
}

// GetByID retrieves a scheduled call by ID
func (r *ScheduledCallRepository) GetByID(id string) (*models.ScheduledCall, error) {
	var call models.ScheduledCall
	err := r.db.Preload("Campaign").First(&call, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &call, nil
}

// GetByCampaignID retrieves all scheduled calls for a campaign
func (r *ScheduledCallRepository) GetByCampaignID(campaignID string) ([]*models.ScheduledCall, error) {
	var calls []*models.ScheduledCall
	err := r.db.Where("campaign_id = ?", campaignID).
		Order("scheduled_at ASC").
		Find(&calls).Error
	return calls, err
}

// GetPageByCampaignID retrieves one page of a campaign's scheduled calls plus
// the total count for pagination metadata.
func (r *ScheduledCallRepository) GetPageByCampaignID(campaignID string, offset, limit int) ([]*models.ScheduledCall, int64, error) {
	var total int64
	err := r.db.Model(&models.ScheduledCall{}).
		Where("campaign_id = ?", campaignID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var calls []*models.ScheduledCall
	err = r.db.Where("campaign_id = ?", campaignID).
		Order("scheduled_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&calls).Error
	return calls, total, err
}

// Update saves a scheduled call
func (r *ScheduledCallRepository) Update(call *models.ScheduledCall) error {
	return r.db.Save(call).Error
}

// UpdateFields applies a partial field set to a scheduled call
func (r *ScheduledCallRepository) UpdateFields(id string, fields map[string]interface{}) error {
	return r.db.Model(&models.ScheduledCall{}).Where("id = ?", id).Updates(fields).Error
}

// FindInFlight returns all calls currently in a non-terminal calling state
func (r *ScheduledCallRepository) FindInFlight() ([]*models.ScheduledCall, error) {
	var calls []*models.ScheduledCall
	err := r.db.Where("status IN ?", models.ActiveCallStatuses).Find(&calls).Error
	return calls, err
}

// FindStale returns in-flight calls that entered the calling state before the cutoff
func (r *ScheduledCallRepository) FindStale(cutoff time.Time) ([]*models.ScheduledCall, error) {
	var calls []*models.ScheduledCall
	err := r.db.Where("status IN ? AND updated_at < ?", models.ActiveCallStatuses, cutoff).
		Find(&calls).Error
	return calls, err
}

// FindNextDue returns due pending calls of active campaigns, ordered by
// campaign priority then earliest scheduled time.
func (r *ScheduledCallRepository) FindNextDue(now time.Time, limit int) ([]*models.ScheduledCall, error) {
	var calls []*models.ScheduledCall
	err := r.db.
		Joins("JOIN call_campaigns ON call_campaigns.id = scheduled_calls.campaign_id").
		Where("scheduled_calls.status = ? AND scheduled_calls.scheduled_at <= ? AND call_campaigns.status = ?",
			models.CallStatusPending, now, models.CampaignStatusActive).
		Order("call_campaigns.priority DESC, scheduled_calls.scheduled_at ASC").
		Limit(limit).
		Preload("Campaign").
		Find(&calls).Error
	return calls, err
}

// FindPendingByPhone returns pending calls for the given phone within a campaign
func (r *ScheduledCallRepository) FindPendingByPhone(campaignID, phone string) ([]*models.ScheduledCall, error) {
	var calls []*models.ScheduledCall
	err := r.db.Where("campaign_id = ? AND phone = ? AND status = ?",
		campaignID, phone, models.CallStatusPending).
		Find(&calls).Error
	return calls, err
}

// FindPausedByPhone returns paused calls for the given phone within a campaign
func (r *ScheduledCallRepository) FindPausedByPhone(campaignID, phone string) ([]*models.ScheduledCall, error) {
	var calls []*models.ScheduledCall
	err := r.db.Where("campaign_id = ? AND phone = ? AND status = ?",
		campaignID, phone, models.CallStatusPaused).
		Find(&calls).Error
	return calls, err
}
