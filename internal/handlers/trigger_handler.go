package handlers

import (
	"net/http"
	"time"

	"github.com/outreachdesk/outreach-campaign-backend/internal/database/repository"
	"github.com/outreachdesk/outreach-campaign-backend/internal/services"
	"github.com/outreachdesk/outreach-campaign-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TriggerHandler exposes the time-triggered entry points. An external
// scheduler (cron, cloud scheduler) hits these; the handler itself never
// loops.
type TriggerHandler struct {
	callDispatch  *services.CallDispatchService
	callReclaim   *services.CallDispatchService
	smsDispatch   *services.SmsDispatchService
	emailDispatch *services.EmailDispatchService
	reconciler    *services.ReconcilerService
}

func NewTriggerHandler(
	db *gorm.DB,
	dialer services.VoiceDialer,
	smsSender services.SmsSender,
	emailSender services.EmailSender,
	notifier services.Notifier,
) *TriggerHandler {
	callRepo := repository.NewScheduledCallRepository(db)
	logRepo := repository.NewCallLogRepository(db)
	dncRepo := repository.NewDNCRepository(db)
	smsRepo := repository.NewScheduledSmsRepository(db)
	emailRepo := repository.NewScheduledEmailRepository(db)

	completion := services.NewCallCompletionService(callRepo, logRepo, notifier)

	return &TriggerHandler{
		callDispatch:  services.NewCallDispatchService(callRepo, logRepo, dncRepo, dialer, completion, services.PrimaryStaleWindow),
		callReclaim:   services.NewCallDispatchService(callRepo, logRepo, dncRepo, dialer, completion, services.SecondaryStaleWindow),
		smsDispatch:   services.NewSmsDispatchService(smsRepo, smsSender),
		emailDispatch: services.NewEmailDispatchService(emailRepo, emailSender),
		reconciler:    services.NewReconcilerService(logRepo, dialer, completion),
	}
}

// DispatchCalls godoc
// @Summary Run one call dispatch cycle
// @Description Reclaim stuck calls, then place at most one new outbound call
// @Tags triggers
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} services.DispatchResult
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/triggers/dispatch-calls [post]
func (h *TriggerHandler) DispatchCalls(c *gin.Context) {
	result, err := h.callDispatch.DispatchDue(time.Now())
	if err != nil {
		utils.CaptureError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Dispatch cycle failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// DispatchSms godoc
// @Summary Send due scheduled SMS
// @Tags triggers
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} services.MessageDispatchResult
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/triggers/dispatch-sms [post]
func (h *TriggerHandler) DispatchSms(c *gin.Context) {
	result, err := h.smsDispatch.DispatchDue(time.Now())
	if err != nil {
		utils.CaptureError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "SMS dispatch failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// DispatchEmails godoc
// @Summary Send due scheduled emails
// @Tags triggers
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} services.MessageDispatchResult
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/triggers/dispatch-emails [post]
func (h *TriggerHandler) DispatchEmails(c *gin.Context) {
	result, err := h.emailDispatch.DispatchDue(time.Now())
	if err != nil {
		utils.CaptureError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Email dispatch failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ReclaimCalls godoc
// @Summary Reclaim stuck in-flight calls
// @Description Resolve calls stuck in a dialing state for over five minutes, without placing new calls
// @Tags triggers
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/triggers/reclaim-calls [post]
func (h *TriggerHandler) ReclaimCalls(c *gin.Context) {
	reclaimed, err := h.callReclaim.ReclaimStale(time.Now())
	if err != nil {
		utils.CaptureError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reclaim pass failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reclaimed": reclaimed})
}

// ReconcileCalls godoc
// @Summary Run one call reconciliation pass
// @Description Resolve calls whose provider webhook never arrived or arrived incompletely
// @Tags triggers
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} services.ReconcileResult
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/triggers/reconcile-calls [post]
func (h *TriggerHandler) ReconcileCalls(c *gin.Context) {
	result, err := h.reconciler.Run()
	if err != nil {
		utils.CaptureError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reconciliation failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
