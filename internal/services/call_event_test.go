package services

import (
	"testing"
)

func TestParseCallEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		payload      string
		wantConvID   string
		wantStatus   string
		wantSID      string
		wantDuration int
		wantTurns    int
	}{
		{
			name:       "flat payload",
			payload:    `{"conversation_id":"c-1","status":"completed","call_sid":"CA1"}`,
			wantConvID: "c-1",
			wantStatus: "completed",
			wantSID:    "CA1",
		},
		{
			name:       "fields nested under data",
			payload:    `{"data":{"conversation_id":"c-2","call_status":"no-answer"}}`,
			wantConvID: "c-2",
			wantStatus: "no-answer",
		},
		{
			name:       "fields nested under body",
			payload:    `{"body":{"conversationId":"c-3","callStatus":"busy","callSid":"CA3"}}`,
			wantConvID: "c-3",
			wantStatus: "busy",
			wantSID:    "CA3",
		},
		{
			name:       "bare id alias",
			payload:    `{"id":"c-4","status":"failed"}`,
			wantConvID: "c-4",
			wantStatus: "failed",
		},
		{
			name:         "duration under alias key",
			payload:      `{"conversation_id":"c-5","status":"completed","call_duration":42}`,
			wantConvID:   "c-5",
			wantStatus:   "completed",
			wantDuration: 42,
		},
		{
			name: "transcript with text key",
			payload: `{"conversation_id":"c-6","status":"completed","transcript":[` +
				`{"role":"agent","text":"hello"},{"role":"user","message":"hi"}]}`,
			wantConvID: "c-6",
			wantStatus: "completed",
			wantTurns:  2,
		},
		{
			name: "transcript under messages key in data",
			payload: `{"data":{"conversation_id":"c-7","status":"ended",` +
				`"messages":[{"role":"agent","message":"hello"}]}}`,
			wantConvID: "c-7",
			wantStatus: "ended",
			wantTurns:  1,
		},
		{
			name:       "top level wins over nested",
			payload:    `{"conversation_id":"outer","status":"completed","data":{"conversation_id":"inner"}}`,
			wantConvID: "outer",
			wantStatus: "completed",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			event, err := ParseCallEvent([]byte(tt.payload))
			if err != nil {
				t.Fatalf("ParseCallEvent: %v", err)
			}
			if event.ConversationID != tt.wantConvID {
				t.Errorf("ConversationID = %q, want %q", event.ConversationID, tt.wantConvID)
			}
			if event.ProviderStatus != tt.wantStatus {
				t.Errorf("ProviderStatus = %q, want %q", event.ProviderStatus, tt.wantStatus)
			}
			if event.CallSID != tt.wantSID {
				t.Errorf("CallSID = %q, want %q", event.CallSID, tt.wantSID)
			}
			if event.DurationSeconds != tt.wantDuration {
				t.Errorf("DurationSeconds = %d, want %d", event.DurationSeconds, tt.wantDuration)
			}
			if len(event.Transcript) != tt.wantTurns {
				t.Errorf("len(Transcript) = %d, want %d", len(event.Transcript), tt.wantTurns)
			}
		})
	}
}

func TestParseCallEventRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
	}{
		{"malformed json", `{"conversation_id":`},
		{"missing conversation id", `{"status":"completed"}`},
		{"missing status", `{"conversation_id":"c-1"}`},
		{"empty conversation id", `{"conversation_id":"","status":"completed"}`},
		{"transcript not an array", `{"conversation_id":"c-1","status":"completed","transcript":"hello"}`},
		{"transcript turn not an object", `{"conversation_id":"c-1","status":"completed","transcript":["hello"]}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseCallEvent([]byte(tt.payload)); err == nil {
				t.Fatal("expected an error, got none")
			}
		})
	}
}
