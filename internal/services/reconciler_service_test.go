package services

import (
	"testing"

	"github.com/outreachdesk/outreach-campaign-backend/internal/models"
)

func TestReconcilerReplaysLocallyKnownOutcome(t *testing.T) {
	t.Parallel()

	scID := "sc-1"
	calls := newFakeCallStore(
		&models.ScheduledCall{ID: "sc-1", CampaignID: "camp-1", Phone: "+15550100", Status: models.CallStatusInProgress},
	)
	logs := &fakeLogStore{}
	// Transcript arrived but the scheduled call was never finalized
	logs.Create(&models.CallLog{
		ConversationID:  "conv-1",
		ScheduledCallID: &scID,
		Outcome:         models.OutcomeAnswered,
		Transcript:      twoWayTranscript(),
	})
	logs.unresolved = []*models.CallLog{logs.logs[0]}
	notifier := &fakeNotifier{}
	completion := NewCallCompletionService(calls, logs, notifier)
	// No fetcher conversations configured: a provider round trip would fail
	svc := NewReconcilerService(logs, &fakeDialer{}, completion)

	result, err := svc.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Resolved != 1 {
		t.Errorf("resolved = %d, want 1", result.Resolved)
	}
	if got := calls.calls["sc-1"].Status; got != models.CallStatusAnswered {
		t.Errorf("sc-1 status = %q, want %q", got, models.CallStatusAnswered)
	}
	if len(notifier.notified) != 1 {
		t.Errorf("notified = %v, want the missed notification", notifier.notified)
	}
}

func TestReconcilerFetchesMissingTranscript(t *testing.T) {
	t.Parallel()

	scID := "sc-1"
	calls := newFakeCallStore(
		&models.ScheduledCall{ID: "sc-1", CampaignID: "camp-1", Phone: "+15550100", Status: models.CallStatusCalling},
	)
	logs := &fakeLogStore{}
	logs.Create(&models.CallLog{
		ConversationID:  "conv-1",
		ScheduledCallID: &scID,
		Outcome:         models.OutcomePending,
	})
	logs.unresolved = []*models.CallLog{logs.logs[0]}
	dialer := &fakeDialer{conversations: map[string]*ConversationDetail{
		"conv-1": {
			ConversationID:  "conv-1",
			Status:          "no-answer",
			DurationSeconds: 20,
		},
	}}
	completion := NewCallCompletionService(calls, logs, &fakeNotifier{})
	svc := NewReconcilerService(logs, dialer, completion)

	// Provider has the conversation but still no transcript: not resolvable yet
	result, err := svc.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Skipped != 1 || result.Resolved != 0 {
		t.Fatalf("result = %+v, want 1 skipped", result)
	}
	if got := calls.calls["sc-1"].Status; got != models.CallStatusCalling {
		t.Errorf("unresolvable candidate must stay untouched, got %q", got)
	}

	// Transcript shows up on a later pass
	dialer.conversations["conv-1"].Transcript = models.Transcript{
		{Role: "agent", Message: "Hello?"},
	}
	result, err = svc.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Resolved != 1 {
		t.Errorf("resolved = %d, want 1", result.Resolved)
	}
	if got := calls.calls["sc-1"].Status; got != models.CallStatusNoAnswer {
		t.Errorf("sc-1 status = %q, want %q", got, models.CallStatusNoAnswer)
	}
	if got := calls.calls["sc-1"].RetryCount; got != 1 {
		t.Errorf("retry_count = %d, want 1", got)
	}
}

func TestReconcilerSkipsUnreachableProvider(t *testing.T) {
	t.Parallel()

	logs := &fakeLogStore{}
	logs.Create(&models.CallLog{ConversationID: "conv-gone", Outcome: models.OutcomePending})
	logs.unresolved = []*models.CallLog{logs.logs[0]}
	completion := NewCallCompletionService(newFakeCallStore(), logs, &fakeNotifier{})
	svc := NewReconcilerService(logs, &fakeDialer{}, completion)

	result, err := svc.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Skipped != 1 || result.Resolved != 0 || result.Failed != 0 {
		t.Errorf("result = %+v, want 1 skipped", result)
	}
}
