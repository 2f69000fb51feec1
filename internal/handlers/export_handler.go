package handlers

import (
	"net/http"
	"strings"

	"github.com/outreachdesk/outreach-campaign-backend/internal/database/repository"
	"github.com/outreachdesk/outreach-campaign-backend/internal/services/export"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ExportHandler struct {
	exportService *export.Service
}

func NewExportHandler(db *gorm.DB, exportsDir string) *ExportHandler {
	campaignRepo := repository.NewCallCampaignRepository(db)
	callRepo := repository.NewScheduledCallRepository(db)
	logRepo := repository.NewCallLogRepository(db)

	return &ExportHandler{
		exportService: export.NewExportService(campaignRepo, callRepo, logRepo, exportsDir),
	}
}

// ExportCampaign godoc
// @Summary Export a call campaign report
// @Description Export a campaign's scheduled calls and attempt history as an Excel workbook
// @Tags call-campaigns
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Campaign ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/call-campaigns/{id}/export [get]
func (h *ExportHandler) ExportCampaign(c *gin.Context) {
	result, err := h.exportService.ExportCampaignReport(c.Param("id"))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.File(result.FilePath)
}
