package services

import (
	"encoding/json"
	"fmt"

	"github.com/outreachdesk/outreach-campaign-backend/internal/models"
)

// CallEvent is the one strict internal record a provider callback is reduced
// to before any state machine logic runs.
type CallEvent struct {
	ConversationID  string
	CallSID         string
	ProviderStatus  string
	DurationSeconds int
	Transcript      models.Transcript
}

// ParseCallEvent normalizes the provider's webhook payload. The wire shape
// varies between deliveries: fields arrive under "data" or "body", and each
// value has several possible key names. Missing required fields are an error
// rather than a silent default.
func ParseCallEvent(raw []byte) (*CallEvent, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("malformed webhook payload: %w", err)
	}

	// Field containers seen in the wild: top level, "data", or "body"
	containers := []map[string]interface{}{payload}
	for _, key := range []string{"data", "body"} {
		if nested, ok := payload[key].(map[string]interface{}); ok {
			containers = append(containers, nested)
		}
	}

	event := &CallEvent{
		ConversationID: firstString(containers, "conversation_id", "conversationId", "id"),
		CallSID:        firstString(containers, "call_sid", "callSid", "sid"),
		ProviderStatus: firstString(containers, "status", "call_status", "callStatus"),
	}

	if event.ConversationID == "" {
		return nil, fmt.Errorf("webhook payload carries no conversation id")
	}
	if event.ProviderStatus == "" {
		return nil, fmt.Errorf("webhook payload carries no call status")
	}

	if d, ok := firstNumber(containers, "duration", "duration_seconds", "call_duration"); ok {
		event.DurationSeconds = int(d)
	}

	if turns, ok := firstValue(containers, "transcript", "messages"); ok {
		parsed, err := parseTranscript(turns)
		if err != nil {
			return nil, fmt.Errorf("webhook payload transcript: %w", err)
		}
		event.Transcript = parsed
	}

	return event, nil
}

func parseTranscript(v interface{}) (models.Transcript, error) {
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected an array of turns, got %T", v)
	}
	transcript := make(models.Transcript, 0, len(list))
	for _, item := range list {
		turn, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("expected a turn object, got %T", item)
		}
		role, _ := turn["role"].(string)
		message, _ := turn["message"].(string)
		if message == "" {
			message, _ = turn["text"].(string)
		}
		transcript = append(transcript, models.TranscriptTurn{Role: role, Message: message})
	}
	return transcript, nil
}

func firstString(containers []map[string]interface{}, keys ...string) string {
	for _, c := range containers {
		for _, key := range keys {
			if v, ok := c[key].(string); ok && v != "" {
				return v
			}
		}
	}
	return ""
}

func firstNumber(containers []map[string]interface{}, keys ...string) (float64, bool) {
	for _, c := range containers {
		for _, key := range keys {
			switch v := c[key].(type) {
			case float64:
				return v, true
			case json.Number:
				if f, err := v.Float64(); err == nil {
					return f, true
				}
			}
		}
	}
	return 0, false
}

func firstValue(containers []map[string]interface{}, keys ...string) (interface{}, bool) {
	for _, c := range containers {
		for _, key := range keys {
			if v, ok := c[key]; ok && v != nil {
				return v, true
			}
		}
	}
	return nil, false
}
