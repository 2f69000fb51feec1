package models

// Campaign statuses shared by all three channels
const (
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
)

// Call campaign modes
const (
	CallModeProduction = "production"
	CallModeTest       = "test"
)

// Frequency types for SMS and email campaigns
const (
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyDays    = "days"
)

// Scheduled call statuses
const (
	CallStatusPending    = "pending"
	CallStatusCalling    = "calling"
	CallStatusInProgress = "in_progress"
	CallStatusAnswered   = "answered"
	CallStatusVoicemail  = "voicemail"
	CallStatusNoAnswer   = "no_answer"
	CallStatusBusy       = "busy"
	CallStatusInvalid    = "invalid"
	CallStatusFailed     = "failed"
	CallStatusDNC        = "dnc"
	CallStatusPaused     = "paused"
)

// Scheduled SMS/email statuses
const (
	MessageStatusPending = "pending"
	MessageStatusSent    = "sent"
	MessageStatusFailed  = "failed"
	MessageStatusPaused  = "paused"
)

// Call outcomes recorded on a CallLog
const (
	OutcomePending  = "pending"
	OutcomeAnswered = "answered"
	OutcomeNoAnswer = "no_answer"
	OutcomeBusy     = "busy"
	OutcomeFailed   = "failed"
)

// ActiveCallStatuses are the non-terminal in-flight statuses that block new dispatches
var ActiveCallStatuses = []string{CallStatusCalling, CallStatusInProgress}

// IsHardTerminal reports whether a call status can never leave its state again
func IsHardTerminal(status string) bool {
	switch status {
	case CallStatusAnswered, CallStatusInvalid, CallStatusDNC:
		return true
	}
	return false
}

// IsRetryEligible reports whether a terminal call status may be re-scheduled later
func IsRetryEligible(status string) bool {
	switch status {
	case CallStatusFailed, CallStatusNoAnswer, CallStatusBusy, CallStatusVoicemail:
		return true
	}
	return false
}
