package handlers

import (
	"net/http"
	"strings"

	"github.com/outreachdesk/outreach-campaign-backend/internal/database/repository"
	"github.com/outreachdesk/outreach-campaign-backend/internal/models"
	"github.com/outreachdesk/outreach-campaign-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EmailCampaignHandler struct {
	campaignService *services.EmailCampaignService
}

func NewEmailCampaignHandler(db *gorm.DB) *EmailCampaignHandler {
	campaignRepo := repository.NewEmailCampaignRepository(db)
	emailRepo := repository.NewScheduledEmailRepository(db)

	return &EmailCampaignHandler{
		campaignService: services.NewEmailCampaignService(campaignRepo, emailRepo),
	}
}

// CreateCampaign godoc
// @Summary Create an email campaign
// @Description Create a new email campaign with its scheduling window and wave cadence
// @Tags email-campaigns
// @Accept json
// @Produce json
// @Param request body models.CreateEmailCampaignRequest true "Create email campaign request"
// @Success 201 {object} models.EmailCampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/email-campaigns [post]
func (h *EmailCampaignHandler) CreateCampaign(c *gin.Context) {
	var req models.CreateEmailCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.campaignService.CreateCampaign(&req)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create campaign", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetCampaigns godoc
// @Summary List email campaigns
// @Tags email-campaigns
// @Produce json
// @Param status query string false "Filter by status" Enums(active, paused, completed)
// @Success 200 {array} models.EmailCampaignResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/email-campaigns [get]
func (h *EmailCampaignHandler) GetCampaigns(c *gin.Context) {
	campaigns, err := h.campaignService.GetCampaigns(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get campaigns", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, campaigns)
}

// GetCampaignByID godoc
// @Summary Get email campaign by ID
// @Tags email-campaigns
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.EmailCampaignResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/email-campaigns/{id} [get]
func (h *EmailCampaignHandler) GetCampaignByID(c *gin.Context) {
	campaign, err := h.campaignService.GetCampaignByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// UpdateCampaign godoc
// @Summary Update an email campaign
// @Tags email-campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param request body models.UpdateEmailCampaignRequest true "Update email campaign request"
// @Success 200 {object} models.EmailCampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/email-campaigns/{id} [put]
func (h *EmailCampaignHandler) UpdateCampaign(c *gin.Context) {
	var req models.UpdateEmailCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.campaignService.UpdateCampaign(c.Param("id"), &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update campaign", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteCampaign godoc
// @Summary Delete an email campaign
// @Tags email-campaigns
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/email-campaigns/{id} [delete]
func (h *EmailCampaignHandler) DeleteCampaign(c *gin.Context) {
	if err := h.campaignService.DeleteCampaign(c.Param("id")); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete campaign", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted successfully"})
}

// UploadContacts godoc
// @Summary Upload contacts to an email campaign
// @Description Upload a contact batch; each contact gets one scheduled email per wave
// @Tags email-campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param request body models.UploadContactsRequest true "Contact batch"
// @Success 201 {object} models.UploadContactsResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/email-campaigns/{id}/contacts [post]
func (h *EmailCampaignHandler) UploadContacts(c *gin.Context) {
	var req models.UploadContactsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.campaignService.UploadContacts(c.Param("id"), &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to schedule contacts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response)
}
