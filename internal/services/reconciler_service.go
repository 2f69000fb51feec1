package services

import (
	"time"

	"github.com/outreachdesk/outreach-campaign-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// ReconcilerLogStore is the slice of the call-log repository the reconciler needs
type ReconcilerLogStore interface {
	FindUnresolved(minAge, maxAge time.Duration, limit int) ([]*models.CallLog, error)
}

// ConversationFetcher fetches a conversation from the provider's source of truth
type ConversationFetcher interface {
	GetConversation(conversationID string) (*ConversationDetail, error)
}

// Reconciler scan bounds: candidates between 5 minutes and 48 hours old, at
// most 10 per run so each invocation stays fast.
const (
	reconcileMinAge    = 5 * time.Minute
	reconcileMaxAge    = 48 * time.Hour
	reconcileBatchSize = 10
)

// ReconcileResult reports what one reconciler pass did
type ReconcileResult struct {
	Scanned  int `json:"scanned"`
	Resolved int `json:"resolved"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// ReconcilerService catches calls whose webhook never arrived or arrived
// incompletely, re-deriving their outcome from the provider and replaying the
// same completion path live webhooks use.
type ReconcilerService struct {
	logs       ReconcilerLogStore
	fetcher    ConversationFetcher
	completion *CallCompletionService
}

func NewReconcilerService(logs ReconcilerLogStore, fetcher ConversationFetcher, completion *CallCompletionService) *ReconcilerService {
	return &ReconcilerService{
		logs:       logs,
		fetcher:    fetcher,
		completion: completion,
	}
}

// Run performs one reconciliation pass
func (s *ReconcilerService) Run() (*ReconcileResult, error) {
	candidates, err := s.logs.FindUnresolved(reconcileMinAge, reconcileMaxAge, reconcileBatchSize)
	if err != nil {
		return nil, err
	}

	result := &ReconcileResult{Scanned: len(candidates)}
	for _, log := range candidates {
		event, ok := s.buildEvent(log)
		if !ok {
			result.Skipped++
			continue
		}

		if err := s.completion.Complete(event); err != nil {
			logrus.Errorf("Reconcile failed for conversation %s: %v", log.ConversationID, err)
			result.Failed++
			continue
		}
		result.Resolved++
	}

	if result.Resolved > 0 || result.Failed > 0 {
		logrus.Infof("Reconciler pass: %d scanned, %d resolved, %d skipped, %d failed",
			result.Scanned, result.Resolved, result.Skipped, result.Failed)
	}
	return result, nil
}

// buildEvent assembles the completion event for a candidate. Candidates with
// no transcript anywhere are not yet resolvable and get skipped until a later
// pass.
func (s *ReconcilerService) buildEvent(log *models.CallLog) (*CallEvent, bool) {
	if len(log.Transcript) > 0 && log.Outcome != models.OutcomePending {
		// Transcript and outcome already known locally; replay to finish the
		// missing side effects (scheduled-call status, notification).
		return &CallEvent{
			ConversationID:  log.ConversationID,
			CallSID:         log.CallSID,
			ProviderStatus:  providerStatusForOutcome(log.Outcome),
			DurationSeconds: log.DurationSeconds,
			Transcript:      log.Transcript,
		}, true
	}

	detail, err := s.fetcher.GetConversation(log.ConversationID)
	if err != nil {
		logrus.Debugf("Conversation %s not fetchable yet: %v", log.ConversationID, err)
		return nil, false
	}
	if len(detail.Transcript) == 0 {
		return nil, false
	}

	return &CallEvent{
		ConversationID:  log.ConversationID,
		CallSID:         log.CallSID,
		ProviderStatus:  detail.Status,
		DurationSeconds: detail.DurationSeconds,
		Transcript:      detail.Transcript,
	}, true
}
