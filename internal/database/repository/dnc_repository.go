package repository

import (
	"github.com/outreachdesk/outreach-campaign-backend/internal/models"

	"gorm.io/gorm"
)

type DNCRepository struct {
	db *gorm.DB
}

func NewDNCRepository(db *gorm.DB) *DNCRepository {
	return &DNCRepository{db: db}
}

// Create adds a DNC entry
func (r *DNCRepository) Create(entry *models.DNCEntry) error {
	return r.db.Create(entry).Error
}

// Delete removes a DNC entry
func (r *DNCRepository) Delete(id string) error {
	return r.db.Delete(&models.DNCEntry{}, "id = ?", id).Error
}

// GetAll retrieves all DNC entries, optionally scoped to a campaign
func (r *DNCRepository) GetAll(campaignID string) ([]*models.DNCEntry, error) {
	var entries []*models.DNCEntry
	query := r.db.Order("created_at DESC")
	if campaignID != "" {
		query = query.Where("campaign_id = ? OR campaign_id IS NULL", campaignID)
	}
	err := query.Find(&entries).Error
	return entries, err
}

// IsSuppressed reports whether any of the given phone forms is suppressed
// globally or for the given campaign.
func (r *DNCRepository) IsSuppressed(phones []string, campaignID string) (bool, error) {
	if len(phones) == 0 {
		return false, nil
	}
	var count int64
	err := r.db.Model(&models.DNCEntry{}).
		Where("phone IN ?", phones).
		Where("campaign_id IS NULL OR campaign_id = ?", campaignID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
