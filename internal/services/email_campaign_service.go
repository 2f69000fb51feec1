package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/outreachdesk/outreach-campaign-backend/internal/database/repository"
	"github.com/outreachdesk/outreach-campaign-backend/internal/models"
	"github.com/outreachdesk/outreach-campaign-backend/internal/scheduling"
	"github.com/outreachdesk/outreach-campaign-backend/internal/utils"
	"github.com/sirupsen/logrus"
)

type EmailCampaignService struct {
	campaignRepo *repository.EmailCampaignRepository
	emailRepo    *repository.ScheduledEmailRepository
}

func NewEmailCampaignService(
	campaignRepo *repository.EmailCampaignRepository,
	emailRepo *repository.ScheduledEmailRepository,
) *EmailCampaignService {
	return &EmailCampaignService{
		campaignRepo: campaignRepo,
		emailRepo:    emailRepo,
	}
}

// CreateCampaign creates a new email campaign
func (s *EmailCampaignService) CreateCampaign(req *models.CreateEmailCampaignRequest) (*models.EmailCampaignResponse, error) {
	if err := validateScheduleWindow(req.SendStartHour, req.SendEndHour, req.AllowedDays, req.Timezone); err != nil {
		return nil, err
	}
	if err := validateFrequency(req.FrequencyType); err != nil {
		return nil, err
	}

	campaign := &models.EmailCampaign{
		Name:            req.Name,
		OwnerEmail:      req.OwnerEmail,
		AllowedDays:     joinDays(req.AllowedDays),
		SendStartHour:   req.SendStartHour,
		SendEndHour:     req.SendEndHour,
		Timezone:        req.Timezone,
		Priority:        req.Priority,
		FrequencyType:   req.FrequencyType,
		FrequencyValue:  req.FrequencyValue,
		SubjectTemplate: req.SubjectTemplate,
		BodyTemplate:    req.BodyTemplate,
		Status:          models.CampaignStatusActive,
	}

	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	return s.toResponse(campaign), nil
}

// GetCampaigns retrieves all email campaigns, optionally filtered by status
func (s *EmailCampaignService) GetCampaigns(status string) ([]*models.EmailCampaignResponse, error) {
	campaigns, err := s.campaignRepo.GetAll(status)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaigns: %w", err)
	}

	responses := make([]*models.EmailCampaignResponse, len(campaigns))
	for i, campaign := range campaigns {
		responses[i] = s.toResponse(campaign)
	}
	return responses, nil
}

// GetCampaignByID retrieves an email campaign by ID
func (s *EmailCampaignService) GetCampaignByID(id string) (*models.EmailCampaignResponse, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, errors.New("campaign not found")
	}
	return s.toResponse(campaign), nil
}

// UpdateCampaign applies a partial settings update to an email campaign
func (s *EmailCampaignService) UpdateCampaign(id string, req *models.UpdateEmailCampaignRequest) (*models.EmailCampaignResponse, error) {
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
	if req.SubjectTemplate != nil {
		campaign.SubjectTemplate = *req.SubjectTemplate
	}
	if req.BodyTemplate != nil {
		campaign.BodyTemplate = *req.BodyTemplate
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

// DeleteCampaign deletes an email campaign and its scheduled emails
func (s *EmailCampaignService) DeleteCampaign(id string) error {
	if _, err := s.campaignRepo.GetByID(id); err != nil {
		return errors.New("campaign not found")
	}
	return s.campaignRepo.Delete(id)
}

// UploadContacts schedules a contact batch across the campaign's waves
func (s *EmailCampaignService) UploadContacts(campaignID string, req *models.UploadContactsRequest) (*models.UploadContactsResponse, error) {
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
		if !strings.Contains(contact.Email, "@") {
			logrus.Warnf("Skipping contact %q: no usable email address", contact.Name)
			skipped++
			continue
		}
		contacts = append(contacts, contact)
	}

	window := scheduling.NewWindow(campaign.AllowedDays, campaign.SendStartHour,
		campaign.SendEndHour, campaign.Timezone)
	slots := scheduling.WaveSlots(window, campaign.FrequencyType, campaign.FrequencyValue,
		len(contacts), startAt)

	emails := make([]*models.ScheduledEmail, 0, len(slots))
	for _, slot := range slots {
		contact := contacts[slot.ContactIndex]
		vars := map[string]string{
			"name":    contact.Name,
			"email":   contact.Email,
			"subject": contact.Subject,
		}
		emails = append(emails, &models.ScheduledEmail{
			CampaignID:  campaign.ID,
			ContactName: contact.Name,
			Email:       contact.Email,
			Subject:     utils.RenderTemplate(campaign.SubjectTemplate, vars),
			Body:        utils.RenderTemplate(campaign.BodyTemplate, vars),
			Wave:        slot.Wave,
			ScheduledAt: slot.At,
			Status:      models.MessageStatusPending,
		})
	}

	if err := s.emailRepo.CreateBatch(emails); err != nil {
		return nil, fmt.Errorf("failed to persist scheduled emails: %w", err)
	}

	response := &models.UploadContactsResponse{
		CampaignID:     campaign.ID,
		ScheduledCount: len(emails),
		SkippedCount:   skipped,
	}
	if len(slots) > 0 {
		response.FirstSlot = slots[0].At.Format(time.RFC3339)
		response.LastSlot = slots[len(slots)-1].At.Format(time.RFC3339)
	}
	return response, nil
}

func (s *EmailCampaignService) toResponse(campaign *models.EmailCampaign) *models.EmailCampaignResponse {
	return &models.EmailCampaignResponse{
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
		SubjectTemplate: campaign.SubjectTemplate,
		BodyTemplate:    campaign.BodyTemplate,
		Status:          campaign.Status,
		CreatedAt:       campaign.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       campaign.UpdatedAt.Format(time.RFC3339),
	}
}
