package services

import (
	"time"

	"github.com/outreachdesk/outreach-campaign-backend/internal/models"
	"github.com/outreachdesk/outreach-campaign-backend/internal/utils"
	"github.com/sirupsen/logrus"
)

// DispatchCallStore extends the scheduled-call store with the queries the
// dispatch trigger needs.
type DispatchCallStore interface {
	ScheduledCallStore
	FindInFlight() ([]*models.ScheduledCall, error)
	FindStale(cutoff time.Time) ([]*models.ScheduledCall, error)
	FindNextDue(now time.Time, limit int) ([]*models.ScheduledCall, error)
}

// DNCChecker answers whether any form of a phone number is suppressed
type DNCChecker interface {
	IsSuppressed(phones []string, campaignID string) (bool, error)
}

// VoiceDialer is the slice of the voice provider client the dispatcher needs
type VoiceDialer interface {
	PlaceCall(req *PlaceCallRequest) (*PlaceCallResult, error)
	GetConversation(conversationID string) (*ConversationDetail, error)
}

// Staleness windows after which an in-flight call is reclaimed. The primary
// dispatch trigger uses the wider window; the secondary scheduled-function
// variant runs with the tighter one.
const (
	PrimaryStaleWindow   = 10 * time.Minute
	SecondaryStaleWindow = 5 * time.Minute
)

// candidateLimit bounds how many due records one dispatch cycle will walk
// past DNC suppressions before giving up.
const candidateLimit = 10

// DispatchResult reports what one dispatch cycle did
type DispatchResult struct {
	Reclaimed       int    `json:"reclaimed"`
	Suppressed      int    `json:"suppressed"`
	Dispatched      bool   `json:"dispatched"`
	ScheduledCallID string `json:"scheduled_call_id,omitempty"`
	ConversationID  string `json:"conversation_id,omitempty"`
	Skipped         string `json:"skipped,omitempty"`
}

// CallDispatchService is the time-triggered dispatcher: it reclaims stuck
// calls, enforces the global single-flight constraint, suppresses DNC
// matches, and places at most one new call per invocation.
type CallDispatchService struct {
	calls      DispatchCallStore
	logs       CallLogStore
	dnc        DNCChecker
	dialer     VoiceDialer
	completion *CallCompletionService
	staleAfter time.Duration
}

func NewCallDispatchService(
	calls DispatchCallStore,
	logs CallLogStore,
	dnc DNCChecker,
	dialer VoiceDialer,
	completion *CallCompletionService,
	staleAfter time.Duration,
) *CallDispatchService {
	return &CallDispatchService{
		calls:      calls,
		logs:       logs,
		dnc:        dnc,
		dialer:     dialer,
		completion: completion,
		staleAfter: staleAfter,
	}
}

// DispatchDue runs one dispatch cycle at the given instant. Datastore errors
// propagate to the caller (the trigger retries next cycle); per-contact
// provider failures are recorded on the affected record and never abort the
// cycle.
func (s *CallDispatchService) DispatchDue(now time.Time) (*DispatchResult, error) {
	result := &DispatchResult{}

	reclaimed, err := s.reclaimStale(now)
	if err != nil {
		return nil, err
	}
	result.Reclaimed = reclaimed

	// Single-flight: one outbound call in flight globally, not per campaign
	inFlight, err := s.calls.FindInFlight()
	if err != nil {
		return nil, err
	}
	if len(inFlight) > 0 {
		result.Skipped = "a call is already in flight"
		return result, nil
	}

	candidates, err := s.calls.FindNextDue(now, candidateLimit)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		suppressed, err := s.dnc.IsSuppressed(utils.PhoneVariants(candidate.Phone), candidate.CampaignID)
		if err != nil {
			return nil, err
		}
		if suppressed {
			err := s.calls.UpdateFields(candidate.ID, map[string]interface{}{
				"status":         models.CallStatusDNC,
				"skipped_reason": ReasonDNCMatch,
			})
			if err != nil {
				return nil, err
			}
			result.Suppressed++
			logrus.Infof("Suppressed scheduled call %s: DNC match for %s", candidate.ID, candidate.Phone)
			continue
		}

		placed, err := s.dialer.PlaceCall(&PlaceCallRequest{
			Phone:         candidate.Phone,
			SystemPrompt:  candidate.SystemPrompt,
			OpeningLine:   candidate.OpeningLine,
			CorrelationID: candidate.ID,
		})
		if err != nil {
			logrus.Errorf("Call placement failed for %s: %v", candidate.ID, err)
			updateErr := s.calls.UpdateFields(candidate.ID, map[string]interface{}{
				"status":         models.CallStatusFailed,
				"skipped_reason": err.Error(),
				"retry_count":    candidate.RetryCount + 1,
			})
			if updateErr != nil {
				return nil, updateErr
			}
			continue
		}

		if err := s.calls.UpdateFields(candidate.ID, map[string]interface{}{
			"status": models.CallStatusCalling,
		}); err != nil {
			return nil, err
		}

		callLog := &models.CallLog{
			ScheduledCallID: &candidate.ID,
			ConversationID:  placed.ConversationID,
			CallSID:         placed.CallSID,
			Direction:       "outbound",
			Outcome:         models.OutcomePending,
		}
		if err := s.logs.Create(callLog); err != nil {
			return nil, err
		}

		result.Dispatched = true
		result.ScheduledCallID = candidate.ID
		result.ConversationID = placed.ConversationID
		logrus.Infof("Dispatched call %s (conversation %s)", candidate.ID, placed.ConversationID)
		return result, nil
	}

	result.Skipped = "no dispatchable call"
	return result, nil
}

// reclaimStale resolves calls stuck in a calling state past the staleness
// window. Ground truth is first requested from the provider; only when that
// fails too is the record marked failed. Webhook delivery is not guaranteed,
// so this path is expected to fire occasionally in normal operation.
// ReclaimStale runs the reclamation step on its own, without dispatching.
// The secondary trigger uses this with the tighter staleness window.
func (s *CallDispatchService) ReclaimStale(now time.Time) (int, error) {
	return s.reclaimStale(now)
}

func (s *CallDispatchService) reclaimStale(now time.Time) (int, error) {
	stale, err := s.calls.FindStale(now.Add(-s.staleAfter))
	if err != nil {
		return 0, err
	}

	reclaimed := 0
	for _, call := range stale {
		if s.resolveFromProvider(call) {
			reclaimed++
			continue
		}

		err := s.calls.UpdateFields(call.ID, map[string]interface{}{
			"status":         models.CallStatusFailed,
			"skipped_reason": ReasonStuckCalling,
			"retry_count":    call.RetryCount + 1,
		})
		if err != nil {
			return reclaimed, err
		}
		reclaimed++
		logrus.Warnf("Reclaimed stuck call %s after %s", call.ID, s.staleAfter)
	}
	return reclaimed, nil
}

// resolveFromProvider tries to finish a stuck call from the provider's
// conversation status; it reports whether the call reached a terminal state.
func (s *CallDispatchService) resolveFromProvider(call *models.ScheduledCall) bool {
	logs, err := s.logs.GetByScheduledCallID(call.ID)
	if err != nil || len(logs) == 0 {
		return false
	}

	latest := logs[len(logs)-1]
	if latest.ConversationID == "" {
		return false
	}

	detail, err := s.dialer.GetConversation(latest.ConversationID)
	if err != nil || !detail.Done() {
		return false
	}

	event := &CallEvent{
		ConversationID:  latest.ConversationID,
		ProviderStatus:  detail.Status,
		DurationSeconds: detail.DurationSeconds,
		Transcript:      detail.Transcript,
	}
	if err := s.completion.Complete(event); err != nil {
		logrus.Errorf("Failed to complete reclaimed call %s: %v", call.ID, err)
		return false
	}
	return true
}
