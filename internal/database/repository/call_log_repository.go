package repository

import (
	"time"

	"github.com/outreachdesk/outreach-campaign-backend/internal/models"

	"gorm.io/gorm"
)

type CallLogRepository struct {
	db *gorm.DB
}

func NewCallLogRepository(db *gorm.DB) *CallLogRepository {
	return &CallLogRepository{db: db}
}

// Create creates a new call log entry
func (r *CallLogRepository) Create(log *models.CallLog) error {
	return r.db.Create(log).Error
}

// GetByConversationID retrieves a call log by the provider's conversation id
func (r *CallLogRepository) GetByConversationID(conversationID string) (*models.CallLog, error) {
	var log models.CallLog
	err := r.db.Preload("ScheduledCall").Preload("ScheduledCall.Campaign").
		First(&log, "conversation_id = ?", conversationID).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// GetByScheduledCallID retrieves all call logs for a scheduled call
func (r *CallLogRepository) GetByScheduledCallID(scheduledCallID string) ([]*models.CallLog, error) {
	var logs []*models.CallLog
	err := r.db.Where("scheduled_call_id = ?", scheduledCallID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}

// Update saves a call log
func (r *CallLogRepository) Update(log *models.CallLog) error {
	return r.db.Save(log).Error
}

// FindUnresolved returns call logs that may have missed their webhook: a known
// conversation id, created inside the given age window, and either no
// transcript yet, a still-pending outcome, or an answered outcome whose
// notification has not gone out.
func (r *CallLogRepository) FindUnresolved(minAge, maxAge time.Duration, limit int) ([]*models.CallLog, error) {
	now := time.Now()
	var logs []*models.CallLog
	err := r.db.
		Where("conversation_id <> ''").
		Where("created_at BETWEEN ? AND ?", now.Add(-maxAge), now.Add(-minAge)).
		Where("transcript IS NULL OR outcome = ? OR (outcome = ? AND email_sent = ?)",
			models.OutcomePending, models.OutcomeAnswered, false).
		Order("created_at ASC").
		Limit(limit).
		Preload("ScheduledCall").
		Find(&logs).Error
	return logs, err
}
