package services

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailSender sends one email message
type EmailSender interface {
	SendEmail(toName, toEmail, subject, body string) error
}

// SendGridEmailService sends campaign and notification emails through SendGrid
type SendGridEmailService struct {
	fromName  string
	fromEmail string
	client    *sendgrid.Client
}

func NewSendGridEmailService() *SendGridEmailService {
	return &SendGridEmailService{
		fromName:  getEnv("SENDGRID_FROM_NAME", "Outreach Desk"),
		fromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
		client:    sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY")),
	}
}

// SendEmail sends a single email
func (s *SendGridEmailService) SendEmail(toName, toEmail, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	resp, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected message (status %d): %s", resp.StatusCode, resp.Body)
	}
	return nil
}
