package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gramcare/gramcare/internal/domain/triage"
)

var (
	ErrNotFound = errors.New("chat session not found")
	ErrInvalid  = errors.New("invalid chat request")
)

const maxSessionList = 50

type Clock func() time.Time

type Service struct {
	repo  Repository
	clock Clock
	log   zerolog.Logger
}

func NewService(repo Repository, clock Clock, log zerolog.Logger) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{repo: repo, clock: clock, log: log}
}

// StartSession opens a conversation and returns the localized welcome line.
func (s *Service) StartSession(ctx context.Context, userID uuid.UUID, language, sessionType string) (*Session, string, error) {
	if language == "" {
		language = "en"
	}
	if sessionType == "" {
		sessionType = SessionHealthConsultation
	}
	session := &Session{
		UserID:      userID,
		Language:    language,
		SessionType: sessionType,
		Messages:    []Message{},
		Context: Context{
			UserSymptoms:    []string{},
			AssessmentStage: "initial",
		},
		CreatedAt: s.clock(),
		UpdatedAt: s.clock(),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, "", fmt.Errorf("start session: %w", err)
	}
	return session, WelcomeMessage(language, sessionType), nil
}

// Exchange is the pair of turns produced by one user message.
type Exchange struct {
	UserMessage Message `json:"user_message"`
	AIResponse  Message `json:"ai_response"`
	Context     Context `json:"session_context"`
}

// SendMessage appends the user's turn, scripts the assistant's reply, and
// persists both on the session.
func (s *Service) SendMessage(ctx context.Context, userID, sessionID uuid.UUID, message, messageType string) (*Exchange, error) {
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalid)
	}
	if messageType == "" {
		messageType = "text"
	}
	session, err := s.getOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	userMsg := Message{
		ID:          uuid.New(),
		Type:        SenderUser,
		Content:     message,
		MessageType: messageType,
		Timestamp:   now,
	}
	session.Messages = append(session.Messages, userMsg)

	reply := ScriptReply(message, session.Context, session.Language)
	aiMsg := Message{
		ID:          uuid.New(),
		Type:        SenderAssistant,
		Content:     reply.Content,
		Suggestions: reply.Suggestions,
		Actions:     reply.Actions,
		Timestamp:   now,
	}
	session.Messages = append(session.Messages, aiMsg)
	session.Context = reply.Context
	session.UpdatedAt = now

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &Exchange{UserMessage: userMsg, AIResponse: aiMsg, Context: session.Context}, nil
}

// SendVoiceMessage transcribes the audio and runs it through the regular
// message path, reporting the transcription back.
func (s *Service) SendVoiceMessage(ctx context.Context, userID, sessionID uuid.UUID, language string) (*Exchange, string, error) {
	if language == "" {
		language = "hi"
	}
	text := triage.Transcribe(language)
	exchange, err := s.SendMessage(ctx, userID, sessionID, text, "voice")
	if err != nil {
		return nil, "", err
	}
	return exchange, text, nil
}

// GetSession returns one of the caller's sessions in full.
func (s *Service) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*Session, error) {
	return s.getOwned(ctx, userID, sessionID)
}

// ListSessions returns previews of the caller's sessions, most recent first.
func (s *Service) ListSessions(ctx context.Context, userID uuid.UUID) ([]*Preview, error) {
	sessions, err := s.repo.ListByUser(ctx, userID, maxSessionList)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	previews := make([]*Preview, 0, len(sessions))
	for _, session := range sessions {
		previews = append(previews, session.preview())
	}
	return previews, nil
}

// getOwned hides other users' sessions as not found.
func (s *Service) getOwned(ctx context.Context, userID, sessionID uuid.UUID) (*Session, error) {
	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil || session.UserID != userID {
		return nil, ErrNotFound
	}
	return session, nil
}
