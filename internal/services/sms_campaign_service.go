package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/outreachdesk/outreach-campaign-backend/internal/database/repository"
	"github.com/outreachdesk/outreach-campaign-backend/internal/models"
	"github.com/outreachdesk/outreach-campaign-backend/internal/scheduling"
	"github.com/outreachdesk/outreach-campaign-backend/internal/utils"
	"github.com/sirupsen/logrus"
)

type SmsCampaignService struct {
	campaignRepo *repository.SmsCampaignRepository
	smsRepo      *repository.ScheduledSmsRepository
}

func NewSmsCampaignService(
	campaignRepo *repository.SmsCampaignRepository,
	smsRepo *repository.ScheduledSmsRepository,
) *SmsCampaignService {
	return &SmsCampaignService{
		campaignRepo: campaignRepo,
		smsRepo:      smsRepo,
	}
}

// CreateCampaign creates a new SMS campaign
func (s *SmsCampaignService) CreateCampaign(req *models.CreateSmsCampaignRequest) (*models.SmsCampaignResponse, error) {
	if err := validateScheduleWindow(req.SendStartHour, req.SendEndHour, req.AllowedDays, req.Timezone); err != nil {
		return nil, err
	}
	if err := validateFrequency(req.FrequencyType); err != nil {
		return nil, err
	}

	campaign := &models.SmsCampaign{
		Name:            req.Name,
		OwnerEmail:      req.OwnerEmail,
		AllowedDays:     joinDays(req.AllowedDays),
		SendStartHour:   req.SendStartHour,
		SendEndHour:     req.SendEndHour,
		Timezone:        req.Timezone,
		Priority:        req.Priority,
		FrequencyType:   req.FrequencyType,
		FrequencyValue:  req.FrequencyValue,
		MessageTemplate: req.MessageTemplate,
		Status:          models.CampaignStatusActive,
	}

	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	return s.toResponse(campaign), nil
}

// GetCampaigns retrieves all SMS campaigns, optionally filtered by status
func (s *SmsCampaignService) GetCampaigns(status string) ([]*models.SmsCampaignResponse, error) {
	campaigns, err := s.campaignRepo.GetAll(status)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaigns: %w", err)
	}

	responses := make([]*models.SmsCampaignResponse, len(campaigns))
	for i, campaign := range campaigns {
		responses[i] = s.toResponse(campaign)
	}
	return responses, nil
}

// GetCampaignByID retrieves an SMS campaign by ID
func (s *SmsCampaignService) GetCampaignByID(id string) (*models.SmsCampaignResponse, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, errors.New("campaign not found")
	}
	return s.toResponse(campaign), nil
}

// UpdateCampaign applies a partial settings update to an SMS campaign
func (s *SmsCampaignService) UpdateCampaign(id string, req *models.UpdateSmsCampaignRequest) (*models.SmsCampaignResponse, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, errors.New("campaign not found")
	}

	if req.Name != nil {
		campaign.Name = *req.Name
	}
	if req.AllowedDays != nil {
		campaign.AllowedDays = joinDays(req.AllowedDays)
	}
	if req.SendStartHour != nil {
		campaign.SendStartHour = *req.SendStartHour
	}
	if req.SendEndHour != nil {
		campaign.SendEndHour = *req.SendEndHour
	}
	if req.Timezone != nil {
		campaign.Timezone = *req.Timezone
	}
	if req.Priority != nil {
		campaign.Priority = *req.Priority
	}
	if req.FrequencyType != nil {
		campaign.FrequencyType = *req.FrequencyType
	}
	if req.FrequencyValue != nil {
		campaign.FrequencyValue = *req.FrequencyValue
	}
	if req.MessageTemplate != nil {
		campaign.MessageTemplate = *req.MessageTemplate
	}
	if req.Status != nil {
		campaign.Status = *req.Status
	}

	err = validateScheduleWindow(campaign.SendStartHour, campaign.SendEndHour,
		splitDays(campaign.AllowedDays), campaign.Timezone)
	if err != nil {
		return nil, err
	}
	if err := validateFrequency(campaign.FrequencyType); err != nil {
		return nil, err
	}

	if err := s.campaignRepo.Update(campaign); err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}
	return s.toResponse(campaign), nil
}

// DeleteCampaign deletes an SMS campaign and its scheduled messages
func (s *SmsCampaignService) DeleteCampaign(id string) error {
	if _, err := s.campaignRepo.GetByID(id); err != nil {
		return errors.New("campaign not found")
	}
	return s.campaignRepo.Delete(id)
}

// UploadContacts schedules a contact batch across the campaign's waves
func (s *SmsCampaignService) UploadContacts(campaignID string, req *models.UploadContactsRequest) (*models.UploadContactsResponse, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, errors.New("campaign not found")
	}

	startAt, err := parseStartAt(req.StartAt)
	if err != nil {
		return nil, err
	}

	contacts := make([]models.Contact, 0, len(req.Contacts))
	skipped := 0
	for _, contact := range req.Contacts {
		if utils.NormalizePhone(contact.Phone) == "" {
			logrus.Warnf("Skipping contact %q: no usable phone number", contact.Name)
			skipped++
			continue
		}
		contacts = append(contacts, contact)
	}

	window := scheduling.NewWindow(campaign.AllowedDays, campaign.SendStartHour,
		campaign.SendEndHour, campaign.Timezone)
	slots := scheduling.WaveSlots(window, campaign.FrequencyType, campaign.FrequencyValue,
		len(contacts), startAt)

	messages := make([]*models.ScheduledSms, 0, len(slots))
	for _, slot := range slots {
		contact := contacts[slot.ContactIndex]
		vars := map[string]string{
			"name":    contact.Name,
			"phone":   contact.Phone,
			"subject": contact.Subject,
		}
		messages = append(messages, &models.ScheduledSms{
			CampaignID:  campaign.ID,
			ContactName: contact.Name,
			Phone:       utils.NormalizePhone(contact.Phone),
			Message:     utils.RenderTemplate(campaign.MessageTemplate, vars),
			Wave:        slot.Wave,
			ScheduledAt: slot.At,
			Status:      models.MessageStatusPending,
		})
	}

	if err := s.smsRepo.CreateBatch(messages); err != nil {
		return nil, fmt.Errorf("failed to persist scheduled SMS: %w", err)
	}

	response := &models.UploadContactsResponse{
		CampaignID:     campaign.ID,
		ScheduledCount: len(messages),
		SkippedCount:   skipped,
	}
	if len(slots) > 0 {
		response.FirstSlot = slots[0].At.Format(time.RFC3339)
		response.LastSlot = slots[len(slots)-1].At.Format(time.RFC3339)
	}
	return response, nil
}

func (s *SmsCampaignService) toResponse(campaign *models.SmsCampaign) *models.SmsCampaignResponse {
	return &models.SmsCampaignResponse{
		ID:              campaign.ID,
		Name:            campaign.Name,
		OwnerEmail:      campaign.OwnerEmail,
		AllowedDays:     splitDays(campaign.AllowedDays),
		SendStartHour:   campaign.SendStartHour,
		SendEndHour:     campaign.SendEndHour,
		Timezone:        campaign.Timezone,
		Priority:        campaign.Priority,
		FrequencyType:   campaign.FrequencyType,
		FrequencyValue:  campaign.FrequencyValue,
		MessageTemplate: campaign.MessageTemplate,
		Status:          campaign.Status,
		CreatedAt:       campaign.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       campaign.UpdatedAt.Format(time.RFC3339),
	}
}

// validateFrequency rejects unknown wave cadence types at the boundary
func validateFrequency(frequencyType string) error {
	switch frequencyType {
	case models.FrequencyWeekly, models.FrequencyMonthly, models.FrequencyDays, "":
		return nil
	}
	return fmt.Errorf("unknown frequency type: %s", frequencyType)
}
