package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/outreachdesk/outreach-campaign-backend/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// notificationJob is what travels over the notification queue
type notificationJob struct {
	ConversationID string `json:"conversation_id"`
}

// NotificationService fans call-outcome notifications out through RabbitMQ
// and sends them via the email provider. Publishing and sending are split so
// a slow email provider never blocks the completion path.
type NotificationService struct {
	rabbit   *RabbitMQService
	logs     CallLogStore
	emails   EmailSender
	stopChan chan bool
}

func NewNotificationService(rabbit *RabbitMQService, logs CallLogStore, emails EmailSender) *NotificationService {
	return &NotificationService{
		rabbit:   rabbit,
		logs:     logs,
		emails:   emails,
		stopChan: make(chan bool),
	}
}

// NotifyCallOutcome queues an outcome notification for a completed call.
// Implements the Notifier interface used by the completion path. Without a
// broker the notification is sent inline instead of queued.
func (s *NotificationService) NotifyCallOutcome(log *models.CallLog, call *models.ScheduledCall) error {
	if s.rabbit == nil {
		return s.SendOutcomeEmail(log.ConversationID)
	}
	return s.rabbit.PublishMessage(NotificationQueue, map[string]interface{}{
		"conversation_id": log.ConversationID,
	})
}

// StartConsumer starts draining the notification queue
func (s *NotificationService) StartConsumer() error {
	deliveries, err := s.rabbit.Consume(NotificationQueue)
	if err != nil {
		return fmt.Errorf("failed to start notification consumer: %w", err)
	}

	go func() {
		for {
			select {
			case delivery, ok := <-deliveries:
				if !ok {
					return
				}
				s.handleDelivery(delivery)
			case <-s.stopChan:
				return
			}
		}
	}()

	logrus.Info("Notification consumer started")
	return nil
}

// StopConsumer stops the consumer loop
func (s *NotificationService) StopConsumer() {
	s.stopChan <- true
	logrus.Info("Notification consumer stopped")
}

func (s *NotificationService) handleDelivery(delivery amqp.Delivery) {
	var job notificationJob
	if err := json.Unmarshal(delivery.Body, &job); err != nil {
		logrus.Errorf("Malformed notification job: %v", err)
		delivery.Nack(false, false)
		return
	}

	if err := s.SendOutcomeEmail(job.ConversationID); err != nil {
		logrus.Errorf("Failed to send outcome notification for %s: %v", job.ConversationID, err)
		// Leave email_sent false; the record stays visible to manual resend
		// and the reconciler.
		delivery.Nack(false, false)
		return
	}

	delivery.Ack(false)
}

// SendOutcomeEmail sends the outcome notification for a conversation and
// flips the email_sent guard. Already-notified calls are a no-op, which makes
// the operation safe to replay from the queue, the reconciler, or a manual
// resend.
func (s *NotificationService) SendOutcomeEmail(conversationID string) error {
	log, err := s.logs.GetByConversationID(conversationID)
	if err != nil {
		return fmt.Errorf("call log not found for conversation %s: %w", conversationID, err)
	}

	if log.EmailSent {
		return nil
	}

	call := log.ScheduledCall
	if call == nil {
		return fmt.Errorf("conversation %s has no scheduled call to notify for", conversationID)
	}

	recipient := call.Campaign.OwnerEmail
	if recipient == "" {
		return fmt.Errorf("campaign %s has no owner email", call.CampaignID)
	}

	subject := fmt.Sprintf("Call completed: %s (%s)", call.ContactName, call.Phone)
	body := buildOutcomeBody(log, call)

	if err := s.emails.SendEmail("", recipient, subject, body); err != nil {
		return err
	}

	log.EmailSent = true
	if err := s.logs.Update(log); err != nil {
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}
	return nil
}

// buildOutcomeBody renders the plain-text notification with the transcript
func buildOutcomeBody(log *models.CallLog, call *models.ScheduledCall) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Call with %s (%s) completed.\n", call.ContactName, call.Phone)
	fmt.Fprintf(&b, "Outcome: %s\n", log.Outcome)
	fmt.Fprintf(&b, "Duration: %d seconds\n\n", log.DurationSeconds)
	b.WriteString("Transcript:\n")
	for _, turn := range log.Transcript {
		fmt.Fprintf(&b, "[%s] %s\n", turn.Role, turn.Message)
	}
	return b.String()
}
