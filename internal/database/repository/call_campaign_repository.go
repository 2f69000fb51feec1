package repository

import (
	"github.com/outreachdesk/outreach-campaign-backend/internal/models"

	"gorm.io/gorm"
)

type CallCampaignRepository struct {
	db *gorm.DB
}

func NewCallCampaignRepository(db *gorm.DB) *CallCampaignRepository {
	return &CallCampaignRepository{db: db}
}

// Create creates a new call campaign
func (r *CallCampaignRepository) Create(campaign *models.CallCampaign) error {
	return r.db.Create(campaign).Error
}

// GetByID retrieves a call campaign by ID
func (r *CallCampaignRepository) GetByID(id string) (*models.CallCampaign, error) {
	var campaign models.CallCampaign
	err := r.db.First(&campaign, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// GetAll retrieves all call campaigns, optionally filtered by status
func (r *CallCampaignRepository) GetAll(status string) ([]*models.CallCampaign, error) {
	var campaigns []*models.CallCampaign
	query := r.db.Order("priority DESC, created_at ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&campaigns).Error
	return campaigns, err
}

// Update updates a call campaign
func (r *CallCampaignRepository) Update(campaign *models.CallCampaign) error {
	return r.db.Save(campaign).Error
}

// Delete deletes a call campaign
func (r *CallCampaignRepository) Delete(id string) error {
	return r.db.Delete(&models.CallCampaign{}, "id = ?", id).Error
}
