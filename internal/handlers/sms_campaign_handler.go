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

type SmsCampaignHandler struct {
	campaignService *services.SmsCampaignService
}

func NewSmsCampaignHandler(db *gorm.DB) *SmsCampaignHandler {
	campaignRepo := repository.NewSmsCampaignRepository(db)
	smsRepo := repository.NewScheduledSmsRepository(db)

	return &SmsCampaignHandler{
		campaignService: services.NewSmsCampaignService(campaignRepo, smsRepo),
	}
}

// CreateCampaign godoc
// @Summary Create an SMS campaign
// @Description Create a new SMS campaign with its scheduling window and wave cadence
// @Tags sms-campaigns
// @Accept json
// @Produce json
// @Param request body models.CreateSmsCampaignRequest true "Create SMS campaign request"
// @Success 201 {object} models.SmsCampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/sms-campaigns [post]
func (h *SmsCampaignHandler) CreateCampaign(c *gin.Context) {
	var req models.CreateSmsCampaignRequest
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
// @Summary List SMS campaigns
// @Tags sms-campaigns
// @Produce json
// @Param status query string false "Filter by status" Enums(active, paused, completed)
// @Success 200 {array} models.SmsCampaignResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/sms-campaigns [get]
func (h *SmsCampaignHandler) GetCampaigns(c *gin.Context) {
	campaigns, err := h.campaignService.GetCampaigns(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get campaigns", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, campaigns)
}

// GetCampaignByID godoc
// @Summary Get SMS campaign by ID
// @Tags sms-campaigns
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.SmsCampaignResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/sms-campaigns/{id} [get]
func (h *SmsCampaignHandler) GetCampaignByID(c *gin.Context) {
	campaign, err := h.campaignService.GetCampaignByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// UpdateCampaign godoc
// @Summary Update an SMS campaign
// @Tags sms-campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param request body models.UpdateSmsCampaignRequest true "Update SMS campaign request"
// @Success 200 {object} models.SmsCampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/sms-campaigns/{id} [put]
func (h *SmsCampaignHandler) UpdateCampaign(c *gin.Context) {
	var req models.UpdateSmsCampaignRequest
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
// @Summary Delete an SMS campaign
// @Tags sms-campaigns
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/sms-campaigns/{id} [delete]
func (h *SmsCampaignHandler) DeleteCampaign(c *gin.Context) {
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
// @Summary Upload contacts to an SMS campaign
// @Description Upload a contact batch; each contact gets one scheduled message per wave
// @Tags sms-campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param request body models.UploadContactsRequest true "Contact batch"
// @Success 201 {object} models.UploadContactsResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/sms-campaigns/{id}/contacts [post]
func (h *SmsCampaignHandler) UploadContacts(c *gin.Context) {
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
