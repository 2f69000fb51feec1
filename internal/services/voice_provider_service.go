package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/outreachdesk/outreach-campaign-backend/internal/config"
	"github.com/outreachdesk/outreach-campaign-backend/internal/models"

	"github.com/google/uuid"
)

// PlaceCallRequest carries everything the voice provider needs for one
// outbound call.
type PlaceCallRequest struct {
	Phone         string `json:"phone"`
	SystemPrompt  string `json:"system_prompt"`
	OpeningLine   string `json:"opening_line"`
	CorrelationID string `json:"correlation_id"`
}

// PlaceCallResult is the provider's acceptance of an outbound call
type PlaceCallResult struct {
	ConversationID string `json:"conversation_id"`
	CallSID        string `json:"call_sid"`
}

// ConversationDetail is the provider's source-of-truth view of a conversation
type ConversationDetail struct {
	ConversationID  string            `json:"conversation_id"`
	Status          string            `json:"status"`
	DurationSeconds int               `json:"duration_seconds"`
	Transcript      models.Transcript `json:"transcript"`
}

// Done reports whether the provider considers the conversation finished
func (d *ConversationDetail) Done() bool {
	switch d.Status {
	case "completed", "ended", "done":
		return true
	}
	return false
}

// VoiceProviderService is the HTTP client for the conversational voice AI
// provider.
type VoiceProviderService struct {
	apiKey string
	client *http.Client
}

func NewVoiceProviderService() *VoiceProviderService {
	return &VoiceProviderService{
		apiKey: os.Getenv("VOICE_PROVIDER_API_KEY"),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// PlaceCall asks the provider to start an outbound call and returns the
// conversation identifier it was accepted under.
func (s *VoiceProviderService) PlaceCall(req *PlaceCallRequest) (*PlaceCallResult, error) {
	url, err := config.GetVoiceEndpointURL("place_call", "")
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal call request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	// Unique per attempt so a retried placement is traceable provider-side
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("voice provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("voice provider rejected call (status %d): %s", resp.StatusCode, string(data))
	}

	var result PlaceCallResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode call response: %w", err)
	}
	if result.ConversationID == "" {
		return nil, fmt.Errorf("voice provider returned no conversation id")
	}

	return &result, nil
}

// GetConversation fetches status, duration and transcript for a conversation
func (s *VoiceProviderService) GetConversation(conversationID string) (*ConversationDetail, error) {
	url, err := config.GetVoiceEndpointURL("get_conversation", conversationID)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("voice provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("conversation fetch failed (status %d): %s", resp.StatusCode, string(data))
	}

	var detail ConversationDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("failed to decode conversation: %w", err)
	}
	return &detail, nil
}

// GetAudio fetches the recorded audio of a conversation
func (s *VoiceProviderService) GetAudio(conversationID string) ([]byte, error) {
	url, err := config.GetVoiceEndpointURL("get_audio", conversationID)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("voice provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("audio fetch failed (status %d)", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
