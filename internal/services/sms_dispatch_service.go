package services

import (
	"time"

	"github.com/outreachdesk/outreach-campaign-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// SmsStore is the slice of the scheduled-SMS repository the dispatcher needs
type SmsStore interface {
	FindDue(now time.Time, limit int) ([]*models.ScheduledSms, error)
	Update(message *models.ScheduledSms) error
}

// smsBatchLimit bounds how many due SMS one trigger invocation sends
const smsBatchLimit = 50

// MessageDispatchResult reports what one SMS/email dispatch cycle did
type MessageDispatchResult struct {
	Due    int `json:"due"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// SmsDispatchService sends due scheduled SMS through the SMS provider. One
// message's failure is recorded on that record and never aborts the cycle.
type SmsDispatchService struct {
	messages SmsStore
	sender   SmsSender
}

func NewSmsDispatchService(messages SmsStore, sender SmsSender) *SmsDispatchService {
	return &SmsDispatchService{
		messages: messages,
		sender:   sender,
	}
}

// DispatchDue sends every due pending SMS at the given instant
func (s *SmsDispatchService) DispatchDue(now time.Time) (*MessageDispatchResult, error) {
	due, err := s.messages.FindDue(now, smsBatchLimit)
	if err != nil {
		return nil, err
	}

	result := &MessageDispatchResult{Due: len(due)}
	for _, message := range due {
		sid, err := s.sender.SendSms(message.Phone, message.Message)
		if err != nil {
			logrus.Errorf("SMS send failed for %s: %v", message.ID, err)
			reason := err.Error()
			message.Status = models.MessageStatusFailed
			message.SkippedReason = &reason
			message.RetryCount++
			if updateErr := s.messages.Update(message); updateErr != nil {
				return result, updateErr
			}
			result.Failed++
			continue
		}

		message.Status = models.MessageStatusSent
		message.ProviderSID = &sid
		if err := s.messages.Update(message); err != nil {
			return result, err
		}
		result.Sent++
	}

	if result.Due > 0 {
		logrus.Infof("SMS dispatch: %d due, %d sent, %d failed", result.Due, result.Sent, result.Failed)
	}
	return result, nil
}
