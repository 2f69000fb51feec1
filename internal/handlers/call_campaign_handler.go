package handlers

import (
	"net/http"
	"strings"

	"github.com/outreachdesk/outreach-campaign-backend/internal/database/repository"
	"github.com/outreachdesk/outreach-campaign-backend/internal/models"
	"github.com/outreachdesk/outreach-campaign-backend/internal/services"
	"github.com/outreachdesk/outreach-campaign-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CallCampaignHandler struct {
	campaignService *services.CallCampaignService
	completion      *services.CallCompletionService
	callRepo        *repository.ScheduledCallRepository
}

func NewCallCampaignHandler(db *gorm.DB, notifier services.Notifier) *CallCampaignHandler {
	campaignRepo := repository.NewCallCampaignRepository(db)
	callRepo := repository.NewScheduledCallRepository(db)
	logRepo := repository.NewCallLogRepository(db)

	return &CallCampaignHandler{
		campaignService: services.NewCallCampaignService(campaignRepo, callRepo),
		completion:      services.NewCallCompletionService(callRepo, logRepo, notifier),
		callRepo:        callRepo,
	}
}

// ReactivatePhoneRequest identifies the paused phone number to restore
type ReactivatePhoneRequest struct {
	Phone string `json:"phone" binding:"required" example:"+15550100200"`
}

// CreateCampaign godoc
// @Summary Create a call campaign
// @Description Create a new outbound call campaign with its scheduling window
// @Tags call-campaigns
// @Accept json
// @Produce json
// @Param request body models.CreateCallCampaignRequest true "Create call campaign request"
// @Success 201 {object} models.CallCampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/call-campaigns [post]
func (h *CallCampaignHandler) CreateCampaign(c *gin.Context) {
	var req models.CreateCallCampaignRequest
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
// @Summary List call campaigns
// @Description Get all call campaigns, optionally filtered by status
// @Tags call-campaigns
// @Accept json
// @Produce json
// @Param status query string false "Filter by status" Enums(active, paused, completed)
// @Success 200 {array} models.CallCampaignResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/call-campaigns [get]
func (h *CallCampaignHandler) GetCampaigns(c *gin.Context) {
	campaigns, err := h.campaignService.GetCampaigns(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get campaigns", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, campaigns)
}

// GetCampaignByID godoc
// @Summary Get call campaign by ID
// @Description Get a specific call campaign by ID
// @Tags call-campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.CallCampaignResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/call-campaigns/{id} [get]
func (h *CallCampaignHandler) GetCampaignByID(c *gin.Context) {
	campaign, err := h.campaignService.GetCampaignByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// UpdateCampaign godoc
// @Summary Update a call campaign
// @Description Apply a partial settings update to a call campaign
// @Tags call-campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param request body models.UpdateCallCampaignRequest true "Update call campaign request"
// @Success 200 {object} models.CallCampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/call-campaigns/{id} [put]
func (h *CallCampaignHandler) UpdateCampaign(c *gin.Context) {
	var req models.UpdateCallCampaignRequest
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
// @Summary Delete a call campaign
// @Description Delete a call campaign and its scheduled calls
// @Tags call-campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/call-campaigns/{id} [delete]
func (h *CallCampaignHandler) DeleteCampaign(c *gin.Context) {
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
// @Summary Upload contacts to a call campaign
// @Description Upload a contact batch; each contact gets scheduled call slots inside the campaign's window
// @Tags call-campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param request body models.UploadContactsRequest true "Contact batch"
// @Success 201 {object} models.UploadContactsResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/call-campaigns/{id}/contacts [post]
func (h *CallCampaignHandler) UploadContacts(c *gin.Context) {
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

// GetScheduledCalls godoc
// @Summary List a campaign's scheduled calls
// @Description Page through a campaign's scheduled calls and their statuses
// @Tags call-campaigns
// @Produce json
// @Param id path string true "Campaign ID"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/call-campaigns/{id}/calls [get]
func (h *CallCampaignHandler) GetScheduledCalls(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))
	page, pageSize = utils.ValidateAndNormalizePagination(page, pageSize)

	calls, total, err := h.callRepo.GetPageByCampaignID(c.Param("id"),
		utils.CalculateOffset(page, pageSize), pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get scheduled calls", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"calls":      calls,
		"pagination": utils.CalculatePaginationInfo(int(total), page, pageSize),
	})
}

// ReactivatePhone godoc
// @Summary Reactivate a paused phone number
// @Description Restore all paused scheduled calls for a phone within the campaign to pending
// @Tags call-campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param request body handlers.ReactivatePhoneRequest true "Phone to reactivate"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/call-campaigns/{id}/reactivate [post]
func (h *CallCampaignHandler) ReactivatePhone(c *gin.Context) {
	var req ReactivatePhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	restored, err := h.completion.ReactivatePhone(c.Param("id"), req.Phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reactivate phone", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reactivated": restored})
}

// isValidationError distinguishes user-fixable input problems from server faults
func isValidationError(err error) bool {
	msg := err.Error()
	for _, marker := range []string{"invalid", "unknown", "must be", "required"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
