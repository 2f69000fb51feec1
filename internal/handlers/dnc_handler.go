package handlers

import (
	"net/http"

	"github.com/outreachdesk/outreach-campaign-backend/internal/database/repository"
	"github.com/outreachdesk/outreach-campaign-backend/internal/models"
	"github.com/outreachdesk/outreach-campaign-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DNCHandler struct {
	dncRepo *repository.DNCRepository
}

func NewDNCHandler(db *gorm.DB) *DNCHandler {
	return &DNCHandler{
		dncRepo: repository.NewDNCRepository(db),
	}
}

// CreateEntry godoc
// @Summary Add a do-not-call entry
// @Description Suppress a phone number for one campaign, or globally when no campaign id is given
// @Tags dnc
// @Accept json
// @Produce json
// @Param request body models.CreateDNCEntryRequest true "DNC entry"
// @Success 201 {object} models.DNCEntry
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/dnc [post]
func (h *DNCHandler) CreateEntry(c *gin.Context) {
	var req models.CreateDNCEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	phone := utils.NormalizePhone(req.Phone)
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is not usable"})
		return
	}

	entry := &models.DNCEntry{
		Phone:      phone,
		CampaignID: req.CampaignID,
		Reason:     req.Reason,
	}
	if err := h.dncRepo.Create(entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create DNC entry", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetEntries godoc
// @Summary List do-not-call entries
// @Description List DNC entries, optionally restricted to one campaign's scope
// @Tags dnc
// @Produce json
// @Param campaign_id query string false "Campaign ID"
// @Success 200 {array} models.DNCEntry
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/dnc [get]
func (h *DNCHandler) GetEntries(c *gin.Context) {
	entries, err := h.dncRepo.GetAll(c.Query("campaign_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get DNC entries", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// DeleteEntry godoc
// @Summary Remove a do-not-call entry
// @Tags dnc
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/dnc/{id} [delete]
func (h *DNCHandler) DeleteEntry(c *gin.Context) {
	if err := h.dncRepo.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete DNC entry", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "DNC entry removed"})
}
