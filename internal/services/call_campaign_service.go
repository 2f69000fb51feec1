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

type CallCampaignService struct {
	campaignRepo *repository.CallCampaignRepository
	callRepo     *repository.ScheduledCallRepository
}

func NewCallCampaignService(
	campaignRepo *repository.CallCampaignRepository,
	callRepo *repository.ScheduledCallRepository,
) *CallCampaignService {
	return &CallCampaignService{
		campaignRepo: campaignRepo,
		callRepo:     callRepo,
	}
}

// CreateCampaign creates a new call campaign
func (s *CallCampaignService) CreateCampaign(req *models.CreateCallCampaignRequest) (*models.CallCampaignResponse, error) {
	if err := validateScheduleWindow(req.CallStartHour, req.CallEndHour, req.AllowedDays, req.Timezone); err != nil {
		return nil, err
	}

	mode := req.Mode
	if mode == "" {
		mode = models.CallModeProduction
	}
	if mode != models.CallModeProduction && mode != models.CallModeTest {
		return nil, fmt.Errorf("unknown campaign mode: %s", mode)
	}

	campaign := &models.CallCampaign{
		Name:          req.Name,
		OwnerEmail:    req.OwnerEmail,
		AllowedDays:   joinDays(req.AllowedDays),
		CallStartHour: req.CallStartHour,
		CallEndHour:   req.CallEndHour,
		Timezone:      req.Timezone,
		Priority:      req.Priority,
		Mode:          mode,
		SystemPrompt:  req.SystemPrompt,
		OpeningLine:   req.OpeningLine,
		Status:        models.CampaignStatusActive,
	}

	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	return s.toResponse(campaign), nil
}

// GetCampaigns retrieves all call campaigns, optionally filtered by status
func (s *CallCampaignService) GetCampaigns(status string) ([]*models.CallCampaignResponse, error) {
	campaigns, err := s.campaignRepo.GetAll(status)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaigns: %w", err)
	}

	responses := make([]*models.CallCampaignResponse, len(campaigns))
	for i, campaign := range campaigns {
		responses[i] = s.toResponse(campaign)
	}
	return responses, nil
}

// GetCampaignByID retrieves a call campaign by ID
func (s *CallCampaignService) GetCampaignByID(id string) (*models.CallCampaignResponse, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, errors.New("campaign not found")
	}
	return s.toResponse(campaign), nil
}

// UpdateCampaign applies a partial settings update to a call campaign
func (s *CallCampaignService) UpdateCampaign(id string, req *models.UpdateCallCampaignRequest) (*models.CallCampaignResponse, error) {
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
	if req.CallStartHour != nil {
		campaign.CallStartHour = *req.CallStartHour
	}
	if req.CallEndHour != nil {
		campaign.CallEndHour = *req.CallEndHour
	}
	if req.Timezone != nil {
		campaign.Timezone = *req.Timezone
	}
	if req.Priority != nil {
		campaign.Priority = *req.Priority
	}
	if req.Mode != nil {
		campaign.Mode = *req.Mode
	}
	if req.SystemPrompt != nil {
		campaign.SystemPrompt = *req.SystemPrompt
	}
	if req.OpeningLine != nil {
		campaign.OpeningLine = *req.OpeningLine
	}
	if req.Status != nil {
		campaign.Status = *req.Status
	}

	err = validateScheduleWindow(campaign.CallStartHour, campaign.CallEndHour,
		splitDays(campaign.AllowedDays), campaign.Timezone)
	if err != nil {
		return nil, err
	}

	if err := s.campaignRepo.Update(campaign); err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}
	return s.toResponse(campaign), nil
}

// DeleteCampaign deletes a call campaign and its scheduled calls
func (s *CallCampaignService) DeleteCampaign(id string) error {
	if _, err := s.campaignRepo.GetByID(id); err != nil {
		return errors.New("campaign not found")
	}
	return s.campaignRepo.Delete(id)
}

// UploadContacts schedules a contact batch: one slot per contact attempt,
// messages materialized up front so dispatch needs no template work.
func (s *CallCampaignService) UploadContacts(campaignID string, req *models.UploadContactsRequest) (*models.UploadContactsResponse, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, errors.New("campaign not found")
	}

	startAt, err := parseStartAt(req.StartAt)
	if err != nil {
		return nil, err
	}

	// One contact's bad data must not abort the batch
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

	window := scheduling.NewWindow(campaign.AllowedDays, campaign.CallStartHour,
		campaign.CallEndHour, campaign.Timezone)
	slots := scheduling.CallSlots(window, campaign.Mode, len(contacts), startAt)

	// Test mode caps the batch; slots are wave-major over the capped list
	perWave := len(contacts)
	if campaign.Mode == models.CallModeTest && perWave > 3 {
		perWave = 3
	}

	calls := make([]*models.ScheduledCall, 0, len(slots))
	for i, at := range slots {
		contact := contacts[i%perWave]
		vars := map[string]string{
			"name":    contact.Name,
			"phone":   contact.Phone,
			"subject": contact.Subject,
		}
		calls = append(calls, &models.ScheduledCall{
			CampaignID:   campaign.ID,
			ContactName:  contact.Name,
			Phone:        utils.NormalizePhone(contact.Phone),
			Subject:      contact.Subject,
			SystemPrompt: utils.RenderTemplate(campaign.SystemPrompt, vars),
			OpeningLine:  utils.RenderTemplate(campaign.OpeningLine, vars),
			ScheduledAt:  at,
			Status:       models.CallStatusPending,
		})
	}

	if err := s.callRepo.CreateBatch(calls); err != nil {
		return nil, fmt.Errorf("failed to persist scheduled calls: %w", err)
	}

	response := &models.UploadContactsResponse{
		CampaignID:     campaign.ID,
		ScheduledCount: len(calls),
		SkippedCount:   skipped,
	}
	if len(slots) > 0 {
		response.FirstSlot = slots[0].Format(time.RFC3339)
		response.LastSlot = slots[len(slots)-1].Format(time.RFC3339)
	}
	return response, nil
}

func (s *CallCampaignService) toResponse(campaign *models.CallCampaign) *models.CallCampaignResponse {
	return &models.CallCampaignResponse{
		ID:            campaign.ID,
		Name:          campaign.Name,
		OwnerEmail:    campaign.OwnerEmail,
		AllowedDays:   splitDays(campaign.AllowedDays),
		CallStartHour: campaign.CallStartHour,
		CallEndHour:   campaign.CallEndHour,
		Timezone:      campaign.Timezone,
		Priority:      campaign.Priority,
		Mode:          campaign.Mode,
		SystemPrompt:  campaign.SystemPrompt,
		OpeningLine:   campaign.OpeningLine,
		Status:        campaign.Status,
		CreatedAt:     campaign.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     campaign.UpdatedAt.Format(time.RFC3339),
	}
}
