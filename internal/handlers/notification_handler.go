package handlers

import (
	"net/http"

	"github.com/outreachdesk/outreach-campaign-backend/internal/database/repository"
	"github.com/outreachdesk/outreach-campaign-backend/internal/services"
	"github.com/outreachdesk/outreach-campaign-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler wires the resend surface straight to the email
// provider; the broker is bypassed so an operator retry is synchronous.
func NewNotificationHandler(db *gorm.DB, emails services.EmailSender) *NotificationHandler {
	logRepo := repository.NewCallLogRepository(db)

	return &NotificationHandler{
		notifications: services.NewNotificationService(nil, logRepo, emails),
	}
}

// ResendNotification godoc
// @Summary Resend an outcome notification
// @Description Send the owner notification for a conversation whose email never went out. Already-notified conversations are a no-op.
// @Tags notifications
// @Produce json
// @Param conversation_id path string true "Conversation ID"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/notifications/{conversation_id}/resend [post]
func (h *NotificationHandler) ResendNotification(c *gin.Context) {
	conversationID := c.Param("conversation_id")

	if err := h.notifications.SendOutcomeEmail(conversationID); err != nil {
		utils.CaptureError(err)
		logrus.Errorf("Failed to resend notification for %s: %v", conversationID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resend notification", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification sent", "conversation_id": conversationID})
}
