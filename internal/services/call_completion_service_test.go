package services

import (
	"errors"
	"testing"

	"github.com/outreachdesk/outreach-campaign-backend/internal/models"
)

func TestMapProviderStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status string
		want   string
	}{
		{"completed", models.OutcomeAnswered},
		{"ended", models.OutcomeAnswered},
		{"done", models.OutcomeAnswered},
		{"no-answer", models.OutcomeNoAnswer},
		{"no_answer", models.OutcomeNoAnswer},
		{"busy", models.OutcomeBusy},
		{"failed", models.OutcomeFailed},
		// Unknown provider vocabulary must never read as a failure
		{"in-review", models.OutcomeAnswered},
		{"", models.OutcomeAnswered},
	}

	for _, tt := range tests {
		if got := MapProviderStatus(tt.status); got != tt.want {
			t.Errorf("MapProviderStatus(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestCompleteAnsweredWithExchange(t *testing.T) {
	t.Parallel()

	scID := "sc-1"
	calls := newFakeCallStore(
		&models.ScheduledCall{ID: "sc-1", CampaignID: "camp-1", Phone: "+15550100", Status: models.CallStatusCalling},
		&models.ScheduledCall{ID: "sc-2", CampaignID: "camp-1", Phone: "+15550100", Status: models.CallStatusPending},
		&models.ScheduledCall{ID: "sc-3", CampaignID: "camp-1", Phone: "+15550999", Status: models.CallStatusPending},
		&models.ScheduledCall{ID: "sc-4", CampaignID: "camp-2", Phone: "+15550100", Status: models.CallStatusPending},
	)
	logs := &fakeLogStore{}
	logs.Create(&models.CallLog{ConversationID: "conv-1", ScheduledCallID: &scID, Outcome: models.OutcomePending})
	notifier := &fakeNotifier{}
	svc := NewCallCompletionService(calls, logs, notifier)

	err := svc.Complete(&CallEvent{
		ConversationID:  "conv-1",
		ProviderStatus:  "completed",
		DurationSeconds: 95,
		Transcript:      twoWayTranscript(),
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if got := calls.calls["sc-1"].Status; got != models.CallStatusAnswered {
		t.Errorf("scheduled call status = %q, want %q", got, models.CallStatusAnswered)
	}
	if got := calls.calls["sc-1"].RetryCount; got != 0 {
		t.Errorf("answered must not bump retry_count, got %d", got)
	}

	// Only the same phone within the same campaign gets paused
	if got := calls.calls["sc-2"].Status; got != models.CallStatusPaused {
		t.Errorf("sibling status = %q, want %q", got, models.CallStatusPaused)
	}
	if r := calls.calls["sc-2"].SkippedReason; r == nil || *r != ReasonPausedAfterExchange {
		t.Errorf("sibling skipped reason = %v, want %q", r, ReasonPausedAfterExchange)
	}
	if got := calls.calls["sc-3"].Status; got != models.CallStatusPending {
		t.Errorf("other phone must stay pending, got %q", got)
	}
	if got := calls.calls["sc-4"].Status; got != models.CallStatusPending {
		t.Errorf("other campaign must stay pending, got %q", got)
	}

	if len(notifier.notified) != 1 || notifier.notified[0] != "conv-1" {
		t.Errorf("notified = %v, want [conv-1]", notifier.notified)
	}

	log, _ := logs.GetByConversationID("conv-1")
	if log.Outcome != models.OutcomeAnswered {
		t.Errorf("log outcome = %q, want %q", log.Outcome, models.OutcomeAnswered)
	}
	if log.DurationSeconds != 95 {
		t.Errorf("log duration = %d, want 95", log.DurationSeconds)
	}
}

func TestCompleteAgentOnlyTranscriptIsSilent(t *testing.T) {
	t.Parallel()

	scID := "sc-1"
	calls := newFakeCallStore(
		&models.ScheduledCall{ID: "sc-1", CampaignID: "camp-1", Phone: "+15550100", Status: models.CallStatusCalling},
		&models.ScheduledCall{ID: "sc-2", CampaignID: "camp-1", Phone: "+15550100", Status: models.CallStatusPending},
	)
	logs := &fakeLogStore{}
	logs.Create(&models.CallLog{ConversationID: "conv-1", ScheduledCallID: &scID})
	notifier := &fakeNotifier{}
	svc := NewCallCompletionService(calls, logs, notifier)

	err := svc.Complete(&CallEvent{
		ConversationID: "conv-1",
		ProviderStatus: "completed",
		Transcript: models.Transcript{
			{Role: "agent", Message: "Hello?"},
			{Role: "agent", Message: "Leaving a message."},
		},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if len(notifier.notified) != 0 {
		t.Errorf("voicemail-style call must not notify, got %v", notifier.notified)
	}
	if got := calls.calls["sc-2"].Status; got != models.CallStatusPending {
		t.Errorf("sibling must not be paused without a real exchange, got %q", got)
	}
	if got := calls.calls["sc-1"].Status; got != models.CallStatusAnswered {
		t.Errorf("scheduled call status = %q, want %q", got, models.CallStatusAnswered)
	}
}

func TestCompleteRetryEligibleBumpsRetryCount(t *testing.T) {
	t.Parallel()

	scID := "sc-1"
	calls := newFakeCallStore(
		&models.ScheduledCall{ID: "sc-1", CampaignID: "camp-1", Phone: "+15550100", Status: models.CallStatusCalling, RetryCount: 1},
	)
	logs := &fakeLogStore{}
	logs.Create(&models.CallLog{ConversationID: "conv-1", ScheduledCallID: &scID})
	notifier := &fakeNotifier{}
	svc := NewCallCompletionService(calls, logs, notifier)

	if err := svc.Complete(&CallEvent{ConversationID: "conv-1", ProviderStatus: "no-answer"}); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if got := calls.calls["sc-1"].Status; got != models.CallStatusNoAnswer {
		t.Errorf("status = %q, want %q", got, models.CallStatusNoAnswer)
	}
	if got := calls.calls["sc-1"].RetryCount; got != 2 {
		t.Errorf("retry_count = %d, want 2", got)
	}
	if len(notifier.notified) != 0 {
		t.Errorf("no-answer must not notify, got %v", notifier.notified)
	}
}

func TestCompleteCreatesLogWhenInitiationRecordMissing(t *testing.T) {
	t.Parallel()

	calls := newFakeCallStore()
	logs := &fakeLogStore{}
	notifier := &fakeNotifier{}
	svc := NewCallCompletionService(calls, logs, notifier)

	err := svc.Complete(&CallEvent{
		ConversationID: "conv-orphan",
		CallSID:        "CA9",
		ProviderStatus: "completed",
		Transcript:     twoWayTranscript(),
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	log, err := logs.GetByConversationID("conv-orphan")
	if err != nil {
		t.Fatalf("orphan completion must create a call log: %v", err)
	}
	if log.Outcome != models.OutcomeAnswered {
		t.Errorf("log outcome = %q, want %q", log.Outcome, models.OutcomeAnswered)
	}
	if log.CallSID != "CA9" {
		t.Errorf("log call sid = %q, want CA9", log.CallSID)
	}
	// No scheduled call to pause against, but the notification still goes out
	if len(notifier.notified) != 1 {
		t.Errorf("notified = %v, want one entry", notifier.notified)
	}
}

func TestCompleteNotifierFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	scID := "sc-1"
	calls := newFakeCallStore(
		&models.ScheduledCall{ID: "sc-1", CampaignID: "camp-1", Phone: "+15550100", Status: models.CallStatusCalling},
	)
	logs := &fakeLogStore{}
	logs.Create(&models.CallLog{ConversationID: "conv-1", ScheduledCallID: &scID})
	notifier := &fakeNotifier{err: errors.New("broker down")}
	svc := NewCallCompletionService(calls, logs, notifier)

	err := svc.Complete(&CallEvent{
		ConversationID: "conv-1",
		ProviderStatus: "completed",
		Transcript:     twoWayTranscript(),
	})
	if err != nil {
		t.Fatalf("notifier failure must not fail the completion: %v", err)
	}
	if got := calls.calls["sc-1"].Status; got != models.CallStatusAnswered {
		t.Errorf("status = %q, want %q", got, models.CallStatusAnswered)
	}
	log, _ := logs.GetByConversationID("conv-1")
	if log.EmailSent {
		t.Error("EmailSent must stay false when the notification was not queued")
	}
}

func TestCompleteSkipsNotifyWhenEmailAlreadySent(t *testing.T) {
	t.Parallel()

	scID := "sc-1"
	calls := newFakeCallStore(
		&models.ScheduledCall{ID: "sc-1", CampaignID: "camp-1", Phone: "+15550100", Status: models.CallStatusAnswered},
	)
	logs := &fakeLogStore{}
	logs.Create(&models.CallLog{
		ConversationID:  "conv-1",
		ScheduledCallID: &scID,
		Outcome:         models.OutcomeAnswered,
		EmailSent:       true,
	})
	notifier := &fakeNotifier{}
	svc := NewCallCompletionService(calls, logs, notifier)

	err := svc.Complete(&CallEvent{
		ConversationID: "conv-1",
		ProviderStatus: "completed",
		Transcript:     twoWayTranscript(),
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(notifier.notified) != 0 {
		t.Errorf("replay of a notified call must stay silent, got %v", notifier.notified)
	}
}

func TestReactivatePhone(t *testing.T) {
	t.Parallel()

	reason := ReasonPausedAfterExchange
	calls := newFakeCallStore(
		&models.ScheduledCall{ID: "sc-1", CampaignID: "camp-1", Phone: "+15550100", Status: models.CallStatusPaused, SkippedReason: &reason},
		&models.ScheduledCall{ID: "sc-2", CampaignID: "camp-1", Phone: "+15550100", Status: models.CallStatusPaused, SkippedReason: &reason},
		&models.ScheduledCall{ID: "sc-3", CampaignID: "camp-1", Phone: "+15550100", Status: models.CallStatusAnswered},
	)
	svc := NewCallCompletionService(calls, &fakeLogStore{}, &fakeNotifier{})

	restored, err := svc.ReactivatePhone("camp-1", "+15550100")
	if err != nil {
		t.Fatalf("ReactivatePhone: %v", err)
	}
	if restored != 2 {
		t.Errorf("restored = %d, want 2", restored)
	}
	for _, id := range []string{"sc-1", "sc-2"} {
		if got := calls.calls[id].Status; got != models.CallStatusPending {
			t.Errorf("%s status = %q, want %q", id, got, models.CallStatusPending)
		}
		if calls.calls[id].SkippedReason != nil {
			t.Errorf("%s skipped reason must be cleared", id)
		}
	}
	// answered is hard terminal; reactivation never touches it
	if got := calls.calls["sc-3"].Status; got != models.CallStatusAnswered {
		t.Errorf("sc-3 status = %q, want %q", got, models.CallStatusAnswered)
	}
}
