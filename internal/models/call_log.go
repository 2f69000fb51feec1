package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TranscriptTurn is a single exchange turn in a call transcript
type TranscriptTurn struct {
	Role    string `json:"role"` // "agent" or "user"
	Message string `json:"message"`
}

// Transcript is the ordered list of turns, stored as jsonb
type Transcript []TranscriptTurn

// Value implements driver.Valuer for jsonb storage
func (t Transcript) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner for jsonb retrieval
func (t *Transcript) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan transcript value: %v", value)
	}
	return json.Unmarshal(bytes, t)
}

// HasValidExchange reports whether the transcript contains a real two-way
// conversation: at least two turns with both agent and user represented.
func (t Transcript) HasValidExchange() bool {
	if len(t) < 2 {
		return false
	}
	var hasAgent, hasUser bool
	for _, turn := range t {
		switch turn.Role {
		case "agent":
			hasAgent = true
		case "user":
			hasUser = true
		}
	}
	return hasAgent && hasUser
}

// CallLog represents one actual call attempt reported by the voice provider
type CallLog struct {
	ID              string  `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ScheduledCallID *string `json:"scheduled_call_id,omitempty" gorm:"type:uuid;index"`

	ConversationID string `json:"conversation_id" gorm:"type:varchar(128);index"`
	CallSID        string `json:"call_sid" gorm:"type:varchar(128)"`
	Direction      string `json:"direction" gorm:"type:varchar(16);default:'outbound'"`

	DurationSeconds int        `json:"duration_seconds" gorm:"default:0"`
	Transcript      Transcript `json:"transcript,omitempty" gorm:"type:jsonb"`
	Outcome         string     `json:"outcome" gorm:"type:varchar(20);index;default:'pending'"`

	// Guards at-most-once notification delivery per attempt
	EmailSent bool `json:"email_sent" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	ScheduledCall *ScheduledCall `json:"scheduled_call,omitempty" gorm:"foreignKey:ScheduledCallID;references:ID"`
}

// TableName specifies the table name for the CallLog model
func (CallLog) TableName() string {
	return "call_logs"
}
