package handlers

import (
	"io"
	"net/http"

	"github.com/outreachdesk/outreach-campaign-backend/internal/database/repository"
	"github.com/outreachdesk/outreach-campaign-backend/internal/services"
	"github.com/outreachdesk/outreach-campaign-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type WebhookHandler struct {
	completion *services.CallCompletionService
}

func NewWebhookHandler(db *gorm.DB, notifier services.Notifier) *WebhookHandler {
	callRepo := repository.NewScheduledCallRepository(db)
	logRepo := repository.NewCallLogRepository(db)

	return &WebhookHandler{
		completion: services.NewCallCompletionService(callRepo, logRepo, notifier),
	}
}

// HandleCallEvent godoc
// @Summary Receive a voice provider call event
// @Description Normalize the provider's completion callback and apply it to the call's lifecycle
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/webhooks/call-events [post]
func (h *WebhookHandler) HandleCallEvent(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	event, err := services.ParseCallEvent(raw)
	if err != nil {
		// A payload we cannot attribute must not be absorbed silently
		logrus.Warnf("Rejected call event: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.completion.Complete(event); err != nil {
		utils.CaptureError(err)
		logrus.Errorf("Failed to complete call %s: %v", event.ConversationID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process call event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event processed", "conversation_id": event.ConversationID})
}
