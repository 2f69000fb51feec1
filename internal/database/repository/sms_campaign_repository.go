package repository

import (
	"github.com/outreachdesk/outreach-campaign-backend/internal/models"

	"gorm.io/gorm"
)

type SmsCampaignRepository struct {
	db *gorm.DB
}

func NewSmsCampaignRepository(db *gorm.DB) *SmsCampaignRepository {
	return &SmsCampaignRepository{db: db}
}

// Create creates a new SMS campaign
func (r *SmsCampaignRepository) Create(campaign *models.SmsCampaign) error {
	return r.db.Create(campaign).Error
}

// GetByID retrieves an SMS campaign by ID
func (r *SmsCampaignRepository) GetByID(id string) (*models.SmsCampaign, error) {
	var campaign models.SmsCampaign
	err := r.db.First(&campaign, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// GetAll retrieves all SMS campaigns, optionally filtered by status
func (r *SmsCampaignRepository) GetAll(status string) ([]*models.SmsCampaign, error) {
	var campaigns []*models.SmsCampaign
	query := r.db.Order("priority DESC, created_at ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&campaigns).Error
	return campaigns, err
}

// Update updates an SMS campaign
func (r *SmsCampaignRepository) Update(campaign *models.SmsCampaign) error {
	return r.db.Save(campaign).Error
}

// Delete deletes an SMS campaign
func (r *SmsCampaignRepository) Delete(id string) error {
	return r.db.Delete(&models.SmsCampaign{}, "id = ?", id).Error
}
