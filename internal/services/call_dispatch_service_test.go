package services

import (
	"errors"
	"testing"
	"time"

	"github.com/outreachdesk/outreach-campaign-backend/internal/models"
)

func newDispatchService(calls *fakeCallStore, logs *fakeLogStore, dnc *fakeDNC, dialer *fakeDialer) *CallDispatchService {
	notifier := &fakeNotifier{}
	completion := NewCallCompletionService(calls, logs, notifier)
	return NewCallDispatchService(calls, logs, dnc, dialer, completion, PrimaryStaleWindow)
}

func TestDispatchDuePlacesOneCall(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	calls := newFakeCallStore(
		&models.ScheduledCall{ID: "sc-1", CampaignID: "camp-1", Phone: "+15550100",
			SystemPrompt: "You call Alice.", OpeningLine: "Hi Alice",
			Status: models.CallStatusPending, ScheduledAt: now.Add(-time.Minute)},
		&models.ScheduledCall{ID: "sc-2", CampaignID: "camp-1", Phone: "+15550200",
			Status: models.CallStatusPending, ScheduledAt: now.Add(-30 * time.Second)},
	)
	logs := &fakeLogStore{}
	dialer := &fakeDialer{}
	svc := newDispatchService(calls, logs, &fakeDNC{}, dialer)

	result, err := svc.DispatchDue(now)
	if err != nil {
		t.Fatalf("DispatchDue: %v", err)
	}

	if !result.Dispatched {
		t.Fatal("expected a dispatch")
	}
	if result.ScheduledCallID != "sc-1" {
		t.Errorf("dispatched %q, want sc-1 (earliest due)", result.ScheduledCallID)
	}
	if got := calls.calls["sc-1"].Status; got != models.CallStatusCalling {
		t.Errorf("status = %q, want %q", got, models.CallStatusCalling)
	}
	// One call per cycle: the second due record stays pending
	if got := calls.calls["sc-2"].Status; got != models.CallStatusPending {
		t.Errorf("sc-2 status = %q, want %q", got, models.CallStatusPending)
	}
	if len(dialer.placed) != 1 {
		t.Fatalf("placed %d calls, want 1", len(dialer.placed))
	}
	if dialer.placed[0].SystemPrompt != "You call Alice." {
		t.Errorf("system prompt = %q", dialer.placed[0].SystemPrompt)
	}

	placedLogs, _ := logs.GetByScheduledCallID("sc-1")
	if len(placedLogs) != 1 {
		t.Fatalf("call logs = %d, want 1", len(placedLogs))
	}
	if placedLogs[0].ConversationID != result.ConversationID {
		t.Errorf("log conversation = %q, want %q", placedLogs[0].ConversationID, result.ConversationID)
	}
	if placedLogs[0].Outcome != models.OutcomePending {
		t.Errorf("log outcome = %q, want %q", placedLogs[0].Outcome, models.OutcomePending)
	}
}

func TestDispatchDueHonorsSingleFlight(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	calls := newFakeCallStore(
		// In flight in a different campaign; the constraint is global
		&models.ScheduledCall{ID: "sc-0", CampaignID: "camp-0", Phone: "+15550999",
			Status: models.CallStatusInProgress, UpdatedAt: now.Add(-time.Minute)},
		&models.ScheduledCall{ID: "sc-1", CampaignID: "camp-1", Phone: "+15550100",
			Status: models.CallStatusPending, ScheduledAt: now.Add(-time.Minute)},
	)
	dialer := &fakeDialer{}
	svc := newDispatchService(calls, &fakeLogStore{}, &fakeDNC{}, dialer)

	result, err := svc.DispatchDue(now)
	if err != nil {
		t.Fatalf("DispatchDue: %v", err)
	}
	if result.Dispatched {
		t.Fatal("must not dispatch while a call is in flight")
	}
	if len(dialer.placed) != 0 {
		t.Errorf("dialer called %d times, want 0", len(dialer.placed))
	}
	if got := calls.calls["sc-1"].Status; got != models.CallStatusPending {
		t.Errorf("sc-1 status = %q, want %q", got, models.CallStatusPending)
	}
}

func TestDispatchDueRespectsPriority(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	calls := newFakeCallStore(
		&models.ScheduledCall{ID: "sc-1", CampaignID: "camp-low", Phone: "+15550100",
			Status: models.CallStatusPending, ScheduledAt: now.Add(-2 * time.Hour),
			Campaign: models.CallCampaign{Priority: 1, Status: models.CampaignStatusActive}},
		&models.ScheduledCall{ID: "sc-2", CampaignID: "camp-high", Phone: "+15550200",
			Status: models.CallStatusPending, ScheduledAt: now.Add(-time.Minute),
			Campaign: models.CallCampaign{Priority: 5, Status: models.CampaignStatusActive}},
	)
	svc := newDispatchService(calls, &fakeLogStore{}, &fakeDNC{}, &fakeDialer{})

	result, err := svc.DispatchDue(now)
	if err != nil {
		t.Fatalf("DispatchDue: %v", err)
	}
	if result.ScheduledCallID != "sc-2" {
		t.Errorf("dispatched %q, want sc-2 (higher campaign priority beats older slot)", result.ScheduledCallID)
	}
}

func TestDispatchDueSuppressesDNCAndMovesOn(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	calls := newFakeCallStore(
		&models.ScheduledCall{ID: "sc-1", CampaignID: "camp-1", Phone: "5550100200",
			Status: models.CallStatusPending, ScheduledAt: now.Add(-2 * time.Minute)},
		&models.ScheduledCall{ID: "sc-2", CampaignID: "camp-1", Phone: "+15550300400",
			Status: models.CallStatusPending, ScheduledAt: now.Add(-time.Minute)},
	)
	// Listed in a different normalization than the scheduled record carries
	dnc := &fakeDNC{blocked: map[string]bool{"+15550100200": true}}
	dialer := &fakeDialer{}
	svc := newDispatchService(calls, &fakeLogStore{}, dnc, dialer)

	result, err := svc.DispatchDue(now)
	if err != nil {
		t.Fatalf("DispatchDue: %v", err)
	}

	if got := calls.calls["sc-1"].Status; got != models.CallStatusDNC {
		t.Errorf("sc-1 status = %q, want %q", got, models.CallStatusDNC)
	}
	if r := calls.calls["sc-1"].SkippedReason; r == nil || *r != ReasonDNCMatch {
		t.Errorf("sc-1 skipped reason = %v, want %q", r, ReasonDNCMatch)
	}
	if result.Suppressed != 1 {
		t.Errorf("suppressed = %d, want 1", result.Suppressed)
	}
	// The cycle still dispatches the next clean candidate
	if !result.Dispatched || result.ScheduledCallID != "sc-2" {
		t.Errorf("dispatched = %v (%q), want sc-2", result.Dispatched, result.ScheduledCallID)
	}
}

func TestDispatchDueRecordsPlacementFailure(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	calls := newFakeCallStore(
		&models.ScheduledCall{ID: "sc-1", CampaignID: "camp-1", Phone: "+15550100",
			Status: models.CallStatusPending, ScheduledAt: now.Add(-time.Minute)},
	)
	dialer := &fakeDialer{placeErr: errors.New("provider 502")}
	svc := newDispatchService(calls, &fakeLogStore{}, &fakeDNC{}, dialer)

	result, err := svc.DispatchDue(now)
	if err != nil {
		t.Fatalf("a provider failure must not abort the cycle: %v", err)
	}
	if result.Dispatched {
		t.Fatal("nothing should have been dispatched")
	}
	if got := calls.calls["sc-1"].Status; got != models.CallStatusFailed {
		t.Errorf("status = %q, want %q", got, models.CallStatusFailed)
	}
	if got := calls.calls["sc-1"].RetryCount; got != 1 {
		t.Errorf("retry_count = %d, want 1", got)
	}
	if r := calls.calls["sc-1"].SkippedReason; r == nil || *r != "provider 502" {
		t.Errorf("skipped reason = %v, want provider error text", r)
	}
}

func TestReclaimStaleMarksFailedWhenProviderSilent(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	calls := newFakeCallStore(
		&models.ScheduledCall{ID: "sc-1", CampaignID: "camp-1", Phone: "+15550100",
			Status: models.CallStatusCalling, UpdatedAt: now.Add(-30 * time.Minute)},
		// Fresh in-flight call stays untouched
		&models.ScheduledCall{ID: "sc-2", CampaignID: "camp-1", Phone: "+15550200",
			Status: models.CallStatusCalling, UpdatedAt: now.Add(-time.Minute)},
	)
	logs := &fakeLogStore{}
	svc := newDispatchService(calls, logs, &fakeDNC{}, &fakeDialer{})

	result, err := svc.DispatchDue(now)
	if err != nil {
		t.Fatalf("DispatchDue: %v", err)
	}
	if result.Reclaimed != 1 {
		t.Errorf("reclaimed = %d, want 1", result.Reclaimed)
	}
	if got := calls.calls["sc-1"].Status; got != models.CallStatusFailed {
		t.Errorf("sc-1 status = %q, want %q", got, models.CallStatusFailed)
	}
	if r := calls.calls["sc-1"].SkippedReason; r == nil || *r != ReasonStuckCalling {
		t.Errorf("sc-1 skipped reason = %v, want %q", r, ReasonStuckCalling)
	}
	if got := calls.calls["sc-1"].RetryCount; got != 1 {
		t.Errorf("sc-1 retry_count = %d, want 1", got)
	}
	if got := calls.calls["sc-2"].Status; got != models.CallStatusCalling {
		t.Errorf("sc-2 status = %q, want %q", got, models.CallStatusCalling)
	}
}

func TestReclaimStalePrefersProviderGroundTruth(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	scID := "sc-1"
	calls := newFakeCallStore(
		&models.ScheduledCall{ID: "sc-1", CampaignID: "camp-1", Phone: "+15550100",
			Status: models.CallStatusCalling, UpdatedAt: now.Add(-30 * time.Minute)},
	)
	logs := &fakeLogStore{}
	logs.Create(&models.CallLog{ConversationID: "conv-1", ScheduledCallID: &scID, Outcome: models.OutcomePending})
	dialer := &fakeDialer{conversations: map[string]*ConversationDetail{
		"conv-1": {
			ConversationID:  "conv-1",
			Status:          "completed",
			DurationSeconds: 60,
			Transcript:      twoWayTranscript(),
		},
	}}
	svc := newDispatchService(calls, logs, &fakeDNC{}, dialer)

	result, err := svc.DispatchDue(now)
	if err != nil {
		t.Fatalf("DispatchDue: %v", err)
	}
	if result.Reclaimed != 1 {
		t.Errorf("reclaimed = %d, want 1", result.Reclaimed)
	}
	// The webhook was lost but the call actually finished; it resolves as
	// answered, not as a stuck failure.
	if got := calls.calls["sc-1"].Status; got != models.CallStatusAnswered {
		t.Errorf("sc-1 status = %q, want %q", got, models.CallStatusAnswered)
	}
	log, _ := logs.GetByConversationID("conv-1")
	if log.Outcome != models.OutcomeAnswered {
		t.Errorf("log outcome = %q, want %q", log.Outcome, models.OutcomeAnswered)
	}
}
