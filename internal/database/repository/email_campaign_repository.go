package repository

import (
	"github.com/outreachdesk/outreach-campaign-backend/internal/models"

	"gorm.io/gorm"
)

type EmailCampaignRepository struct {
	db *gorm.DB
}

func NewEmailCampaignRepository(db *gorm.DB) *EmailCampaignRepository {
	return &EmailCampaignRepository{db: db}
}

// Create creates a new email campaign
func (r *EmailCampaignRepository) Create(campaign *models.EmailCampaign) error {
	return r.db.Create(campaign).Error
}

// GetByID retrieves an email campaign by ID
func (r *EmailCampaignRepository) GetByID(id string) (*models.EmailCampaign, error) {
	var campaign models.EmailCampaign
	err := r.db.First(&campaign, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// GetAll retrieves all email campaigns, optionally filtered by status
func (r *EmailCampaignRepository) GetAll(status string) ([]*models.EmailCampaign, error) {
	var campaigns []*models.EmailCampaign
	query := r.db.Order("priority DESC, created_at ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&campaigns).Error
	return campaigns, err
}

// Update updates an email campaign
func (r *EmailCampaignRepository) Update(campaign *models.EmailCampaign) error {
	return r.db.Save(campaign).Error
}

// Delete deletes an email campaign
func (r *EmailCampaignRepository) Delete(id string) error {
	return r.db.Delete(&models.EmailCampaign{}, "id = ?", id).Error
}
