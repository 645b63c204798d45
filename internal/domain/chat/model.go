package chat

import (
	"time"

	"github.com/google/uuid"
)

// Session types.
const (
	SessionHealthConsultation = "health_consultation"
	SessionEmergency          = "emergency"
	SessionGeneral            = "general"
)

// Message senders.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Message is one turn in a conversation. Assistant turns carry suggestions
// and actions for the client to render.
type Message struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Content     string    `json:"content"`
	MessageType string    `json:"message_type,omitempty"` // text, voice, image
	Suggestions []string  `json:"suggestions,omitempty"`
	Actions     []Action  `json:"actions,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Action is a follow-up the client can offer after an assistant turn.
type Action struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Context tracks where the conversation stands.
type Context struct {
	UserSymptoms    []string `json:"user_symptoms"`
	CurrentTopic    string   `json:"current_topic,omitempty"`
	AssessmentStage string   `json:"assessment_stage"`
}

// Session is a conversation with the assistant. Messages and context live in
// one JSONB column.
type Session struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Language    string    `db:"language" json:"language"`
	SessionType string    `db:"session_type" json:"session_type"`
	Messages    []Message `db:"messages" json:"messages"`
	Context     Context   `db:"context" json:"context"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Preview is the session-list view with the last message for display.
type Preview struct {
	ID           uuid.UUID `json:"id"`
	Language     string    `json:"language"`
	SessionType  string    `json:"session_type"`
	MessageCount int       `json:"message_count"`
	LastMessage  *Message  `json:"last_message,omitempty"`
	Context      Context   `json:"context"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (s *Session) preview() *Preview {
	p := &Preview{
		ID:           s.ID,
		Language:     s.Language,
		SessionType:  s.SessionType,
		MessageCount: len(s.Messages),
		Context:      s.Context,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	if len(s.Messages) > 0 {
		last := s.Messages[len(s.Messages)-1]
		p.LastMessage = &last
	}
	return p
}
