package services

import (
	"time"

	"github.com/outreachdesk/outreach-campaign-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// EmailStore is the slice of the scheduled-email repository the dispatcher needs
type EmailStore interface {
	FindDue(now time.Time, limit int) ([]*models.ScheduledEmail, error)
	Update(email *models.ScheduledEmail) error
}

// emailBatchLimit bounds how many due emails one trigger invocation sends
const emailBatchLimit = 50

// EmailDispatchService sends due scheduled emails through the email provider.
// One message's failure is recorded on that record and never aborts the cycle.
type EmailDispatchService struct {
	emails EmailStore
	sender EmailSender
}

func NewEmailDispatchService(emails EmailStore, sender EmailSender) *EmailDispatchService {
	return &EmailDispatchService{
		emails: emails,
		sender: sender,
	}
}

// DispatchDue sends every due pending email at the given instant
func (s *EmailDispatchService) DispatchDue(now time.Time) (*MessageDispatchResult, error) {
	due, err := s.emails.FindDue(now, emailBatchLimit)
	if err != nil {
		return nil, err
	}

	result := &MessageDispatchResult{Due: len(due)}
	for _, email := range due {
		err := s.sender.SendEmail(email.ContactName, email.Email, email.Subject, email.Body)
		if err != nil {
			logrus.Errorf("Email send failed for %s: %v", email.ID, err)
			reason := err.Error()
			email.Status = models.MessageStatusFailed
			email.SkippedReason = &reason
			email.RetryCount++
			if updateErr := s.emails.Update(email); updateErr != nil {
				return result, updateErr
			}
			result.Failed++
			continue
		}

		email.Status = models.MessageStatusSent
		if err := s.emails.Update(email); err != nil {
			return result, err
		}
		result.Sent++
	}

	if result.Due > 0 {
		logrus.Infof("Email dispatch: %d due, %d sent, %d failed", result.Due, result.Sent, result.Failed)
	}
	return result, nil
}
