package services

import (
	"fmt"

	"github.com/outreachdesk/outreach-campaign-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// ScheduledCallStore is the slice of the scheduled-call repository the state
// machine needs; the gorm repository satisfies it, tests substitute a fake.
type ScheduledCallStore interface {
	GetByID(id string) (*models.ScheduledCall, error)
	UpdateFields(id string, fields map[string]interface{}) error
	FindPendingByPhone(campaignID, phone string) ([]*models.ScheduledCall, error)
	FindPausedByPhone(campaignID, phone string) ([]*models.ScheduledCall, error)
}

// CallLogStore is the slice of the call-log repository the state machine needs
type CallLogStore interface {
	Create(log *models.CallLog) error
	GetByConversationID(conversationID string) (*models.CallLog, error)
	GetByScheduledCallID(scheduledCallID string) ([]*models.CallLog, error)
	Update(log *models.CallLog) error
}

// Notifier delivers the outcome notification for a completed call
type Notifier interface {
	NotifyCallOutcome(log *models.CallLog, call *models.ScheduledCall) error
}

// Reasons recorded on scheduled calls by the state machine
const (
	ReasonStuckCalling        = "Call stuck in calling state"
	ReasonPausedAfterExchange = "paused after successful exchange"
	ReasonDNCMatch            = "phone number on do-not-call list"
)

// MapProviderStatus maps the provider's call-status vocabulary onto ours.
// Unrecognized statuses deliberately map to answered so an ambiguous provider
// status is never mis-classified as a failure.
func MapProviderStatus(status string) string {
	switch status {
	case "completed", "ended", "done":
		return models.OutcomeAnswered
	case "no-answer", "no_answer":
		return models.OutcomeNoAnswer
	case "busy":
		return models.OutcomeBusy
	case "failed":
		return models.OutcomeFailed
	default:
		return models.OutcomeAnswered
	}
}

// providerStatusForOutcome is the inverse mapping, used when replaying a
// locally-known outcome through the completion path.
func providerStatusForOutcome(outcome string) string {
	switch outcome {
	case models.OutcomeNoAnswer:
		return "no-answer"
	case models.OutcomeBusy:
		return "busy"
	case models.OutcomeFailed:
		return "failed"
	default:
		return "completed"
	}
}

// CallCompletionService drives a call's terminal transition. It is the single
// completion path shared by the live webhook handler, the staleness
// reclamation and the reconciler, so the three cannot diverge in behavior.
type CallCompletionService struct {
	calls    ScheduledCallStore
	logs     CallLogStore
	notifier Notifier
}

func NewCallCompletionService(calls ScheduledCallStore, logs CallLogStore, notifier Notifier) *CallCompletionService {
	return &CallCompletionService{
		calls:    calls,
		logs:     logs,
		notifier: notifier,
	}
}

// Complete applies a provider-reported call completion. The call log is
// created on the spot when completion is observed before the initiation
// record (the fallback path), updated otherwise.
func (s *CallCompletionService) Complete(event *CallEvent) error {
	log, err := s.logs.GetByConversationID(event.ConversationID)
	if err != nil {
		log = &models.CallLog{
			ConversationID: event.ConversationID,
			CallSID:        event.CallSID,
			Direction:      "outbound",
			Outcome:        models.OutcomePending,
		}
		if err := s.logs.Create(log); err != nil {
			return fmt.Errorf("failed to create call log: %w", err)
		}
	}

	outcome := MapProviderStatus(event.ProviderStatus)

	if len(event.Transcript) > 0 {
		log.Transcript = event.Transcript
	}
	if event.DurationSeconds > 0 {
		log.DurationSeconds = event.DurationSeconds
	}
	if log.CallSID == "" {
		log.CallSID = event.CallSID
	}
	log.Outcome = outcome

	if err := s.logs.Update(log); err != nil {
		return fmt.Errorf("failed to update call log: %w", err)
	}

	var scheduled *models.ScheduledCall
	if log.ScheduledCallID != nil {
		scheduled, err = s.calls.GetByID(*log.ScheduledCallID)
		if err != nil {
			logrus.Warnf("Call log %s references unknown scheduled call: %v", log.ID, err)
			scheduled = nil
		}
	}

	if scheduled != nil {
		fields := map[string]interface{}{"status": outcome}
		if models.IsRetryEligible(outcome) {
			fields["retry_count"] = scheduled.RetryCount + 1
		}
		if err := s.calls.UpdateFields(scheduled.ID, fields); err != nil {
			return fmt.Errorf("failed to update scheduled call: %w", err)
		}
	}

	if outcome != models.OutcomeAnswered || !log.Transcript.HasValidExchange() {
		// Calls with no real two-way exchange are intentionally silent
		return nil
	}

	if scheduled != nil {
		if _, err := s.PauseSiblings(scheduled.CampaignID, scheduled.Phone); err != nil {
			logrus.Errorf("Failed to pause siblings for %s: %v", scheduled.Phone, err)
		}
	}

	if !log.EmailSent {
		if err := s.notifier.NotifyCallOutcome(log, scheduled); err != nil {
			// Notification failure never affects the call's own status; the
			// unsent flag keeps it manually retryable.
			logrus.Errorf("Failed to queue outcome notification for %s: %v", log.ConversationID, err)
		}
	}

	return nil
}

// PauseSiblings transitions every other still-pending scheduled call for the
// same phone within the same campaign to paused. Once a prospect has engaged,
// further scheduled attempts to that number are suppressed until manually
// reactivated.
func (s *CallCompletionService) PauseSiblings(campaignID, phone string) (int, error) {
	siblings, err := s.calls.FindPendingByPhone(campaignID, phone)
	if err != nil {
		return 0, err
	}

	paused := 0
	for _, sibling := range siblings {
		err := s.calls.UpdateFields(sibling.ID, map[string]interface{}{
			"status":         models.CallStatusPaused,
			"skipped_reason": ReasonPausedAfterExchange,
		})
		if err != nil {
			logrus.Errorf("Failed to pause scheduled call %s: %v", sibling.ID, err)
			continue
		}
		paused++
	}
	return paused, nil
}

// ReactivatePhone restores all paused scheduled calls for a phone within a
// campaign to pending and clears their skipped reason. This is the only
// operator-reversible transition in the machine.
func (s *CallCompletionService) ReactivatePhone(campaignID, phone string) (int, error) {
	paused, err := s.calls.FindPausedByPhone(campaignID, phone)
	if err != nil {
		return 0, err
	}

	restored := 0
	for _, call := range paused {
		err := s.calls.UpdateFields(call.ID, map[string]interface{}{
			"status":         models.CallStatusPending,
			"skipped_reason": nil,
		})
		if err != nil {
			logrus.Errorf("Failed to reactivate scheduled call %s: %v", call.ID, err)
			continue
		}
		restored++
	}
	return restored, nil
}
