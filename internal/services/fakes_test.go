package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/outreachdesk/outreach-campaign-backend/internal/models"

	"gorm.io/gorm"
)

// fakeCallStore is an in-memory DispatchCallStore
type fakeCallStore struct {
	calls map[string]*models.ScheduledCall
	// updates records every UpdateFields call in order, keyed by call id
	updates map[string][]map[string]interface{}
}

func newFakeCallStore(calls ...*models.ScheduledCall) *fakeCallStore {
	s := &fakeCallStore{
		calls:   make(map[string]*models.ScheduledCall),
		updates: make(map[string][]map[string]interface{}),
	}
	for _, c := range calls {
		s.calls[c.ID] = c
	}
	return s
}

func (s *fakeCallStore) GetByID(id string) (*models.ScheduledCall, error) {
	c, ok := s.calls[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (s *fakeCallStore) UpdateFields(id string, fields map[string]interface{}) error {
	c, ok := s.calls[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.updates[id] = append(s.updates[id], fields)
	if v, ok := fields["status"].(string); ok {
		c.Status = v
	}
	if v, ok := fields["retry_count"].(int); ok {
		c.RetryCount = v
	}
	if v, ok := fields["skipped_reason"]; ok {
		if reason, ok := v.(string); ok {
			c.SkippedReason = &reason
		} else {
			c.SkippedReason = nil
		}
	}
	return nil
}

func (s *fakeCallStore) FindPendingByPhone(campaignID, phone string) ([]*models.ScheduledCall, error) {
	return s.byPhoneAndStatus(campaignID, phone, models.CallStatusPending), nil
}

func (s *fakeCallStore) FindPausedByPhone(campaignID, phone string) ([]*models.ScheduledCall, error) {
	return s.byPhoneAndStatus(campaignID, phone, models.CallStatusPaused), nil
}

func (s *fakeCallStore) byPhoneAndStatus(campaignID, phone, status string) []*models.ScheduledCall {
	var out []*models.ScheduledCall
	for _, c := range s.sorted() {
		if c.CampaignID == campaignID && c.Phone == phone && c.Status == status {
			out = append(out, c)
		}
	}
	return out
}

func (s *fakeCallStore) FindInFlight() ([]*models.ScheduledCall, error) {
	var out []*models.ScheduledCall
	for _, c := range s.sorted() {
		if c.Status == models.CallStatusCalling || c.Status == models.CallStatusInProgress {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCallStore) FindStale(cutoff time.Time) ([]*models.ScheduledCall, error) {
	var out []*models.ScheduledCall
	for _, c := range s.sorted() {
		inFlight := c.Status == models.CallStatusCalling || c.Status == models.CallStatusInProgress
		if inFlight && c.UpdatedAt.Before(cutoff) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCallStore) FindNextDue(now time.Time, limit int) ([]*models.ScheduledCall, error) {
	var out []*models.ScheduledCall
	for _, c := range s.sorted() {
		if c.Status != models.CallStatusPending || c.ScheduledAt.After(now) {
			continue
		}
		if c.Campaign.Status != "" && c.Campaign.Status != models.CampaignStatusActive {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Campaign.Priority != out[j].Campaign.Priority {
			return out[i].Campaign.Priority > out[j].Campaign.Priority
		}
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// sorted keeps fake query results deterministic across runs
func (s *fakeCallStore) sorted() []*models.ScheduledCall {
	out := make([]*models.ScheduledCall, 0, len(s.calls))
	for _, c := range s.calls {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// fakeLogStore is an in-memory CallLogStore and ReconcilerLogStore
type fakeLogStore struct {
	logs       []*models.CallLog
	unresolved []*models.CallLog
}

func (s *fakeLogStore) Create(log *models.CallLog) error {
	if log.ID == "" {
		log.ID = fmt.Sprintf("log-%d", len(s.logs)+1)
	}
	s.logs = append(s.logs, log)
	return nil
}

func (s *fakeLogStore) GetByConversationID(conversationID string) (*models.CallLog, error) {
	for _, log := range s.logs {
		if log.ConversationID == conversationID {
			return log, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeLogStore) GetByScheduledCallID(scheduledCallID string) ([]*models.CallLog, error) {
	var out []*models.CallLog
	for _, log := range s.logs {
		if log.ScheduledCallID != nil && *log.ScheduledCallID == scheduledCallID {
			out = append(out, log)
		}
	}
	return out, nil
}

func (s *fakeLogStore) Update(log *models.CallLog) error {
	for i, existing := range s.logs {
		if existing.ID == log.ID {
			s.logs[i] = log
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *fakeLogStore) FindUnresolved(minAge, maxAge time.Duration, limit int) ([]*models.CallLog, error) {
	if len(s.unresolved) > limit {
		return s.unresolved[:limit], nil
	}
	return s.unresolved, nil
}

// fakeDialer is a scripted VoiceDialer and ConversationFetcher
type fakeDialer struct {
	placeErr      error
	placed        []*PlaceCallRequest
	nextSID       int
	conversations map[string]*ConversationDetail
}

func (d *fakeDialer) PlaceCall(req *PlaceCallRequest) (*PlaceCallResult, error) {
	if d.placeErr != nil {
		return nil, d.placeErr
	}
	d.placed = append(d.placed, req)
	d.nextSID++
	return &PlaceCallResult{
		ConversationID: fmt.Sprintf("conv-%d", d.nextSID),
		CallSID:        fmt.Sprintf("CA%04d", d.nextSID),
	}, nil
}

func (d *fakeDialer) GetConversation(conversationID string) (*ConversationDetail, error) {
	detail, ok := d.conversations[conversationID]
	if !ok {
		return nil, fmt.Errorf("conversation %s not found", conversationID)
	}
	return detail, nil
}

// fakeDNC suppresses exact phone strings
type fakeDNC struct {
	blocked map[string]bool
}

func (d *fakeDNC) IsSuppressed(phones []string, campaignID string) (bool, error) {
	for _, phone := range phones {
		if d.blocked[phone] {
			return true, nil
		}
	}
	return false, nil
}

// fakeNotifier records outcome notifications
type fakeNotifier struct {
	err      error
	notified []string
}

func (n *fakeNotifier) NotifyCallOutcome(log *models.CallLog, call *models.ScheduledCall) error {
	if n.err != nil {
		return n.err
	}
	n.notified = append(n.notified, log.ConversationID)
	return nil
}

// twoWayTranscript is a minimal real exchange
func twoWayTranscript() models.Transcript {
	return models.Transcript{
		{Role: "agent", Message: "Hi, this is Dana from Outreach Desk."},
		{Role: "user", Message: "Sure, I have a minute."},
	}
}
