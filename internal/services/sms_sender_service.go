package services

import (
	"fmt"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SmsSender sends one SMS and returns the provider's message SID
type SmsSender interface {
	SendSms(to, body string) (string, error)
}

// TwilioSmsService sends campaign SMS through Twilio
type TwilioSmsService struct {
	fromNumber string
	client     *twilio.RestClient
}

func NewTwilioSmsService() *TwilioSmsService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: os.Getenv("TWILIO_ACCOUNT_SID"),
		Password: os.Getenv("TWILIO_AUTH_TOKEN"),
	})

	return &TwilioSmsService{
		fromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		client:     client,
	}
}

// SendSms sends a single SMS and returns the Twilio message SID
func (s *TwilioSmsService) SendSms(to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(s.fromNumber)
	params.SetTo(to)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio send failed: %w", err)
	}
	if resp.Sid == nil {
		return "", fmt.Errorf("twilio returned no message sid")
	}
	return *resp.Sid, nil
}
