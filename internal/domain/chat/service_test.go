package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type mockRepo struct {
	sessions map[uuid.UUID]*Session
}

func newMockRepo() *mockRepo {
	return &mockRepo{sessions: make(map[uuid.UUID]*Session)}
}

func (m *mockRepo) Create(_ context.Context, s *Session) error {
	s.ID = uuid.New()
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	cp := *s
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, s *Session) error {
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *mockRepo) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]*Session, error) {
	var out []*Session
	for _, s := range m.sessions {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo, func() time.Time { return testNow }, zerolog.Nop()), repo
}

func TestStartSession_WelcomePerLanguage(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()

	cases := []struct {
		language, sessionType, wantPrefix string
	}{
		{"en", SessionHealthConsultation, "Hello! I'm your AI health assistant"},
		{"hi", SessionEmergency, "यह आपातकालीन सहायता है"},
		{"or", SessionGeneral, "ନମସ୍କାର"},
		{"", "", "Hello! I'm your AI health assistant"},   // defaults en + consultation
		{"fr", SessionGeneral, "Hello! I'm here to help"}, // unknown language falls back
		{"en", "astrology", "Hello! I'm here to help"},    // unknown type falls back to general
	}
	for _, tc := range cases {
		session, welcome, err := svc.StartSession(context.Background(), userID, tc.language, tc.sessionType)
		if err != nil {
			t.Fatalf("StartSession(%q, %q): %v", tc.language, tc.sessionType, err)
		}
		if !strings.HasPrefix(welcome, tc.wantPrefix) {
			t.Errorf("welcome(%q, %q) = %q", tc.language, tc.sessionType, welcome)
		}
		if session.Context.AssessmentStage != "initial" {
			t.Errorf("stage = %q", session.Context.AssessmentStage)
		}
	}
}

func TestSendMessage_SymptomFlow(t *testing.T) {
	svc, repo := newTestService()
	userID := uuid.New()
	session, _, err := svc.StartSession(context.Background(), userID, "en", SessionHealthConsultation)
	if err != nil {
		t.Fatal(err)
	}

	exchange, err := svc.SendMessage(context.Background(), userID, session.ID, "I have a fever and headache", "")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if exchange.UserMessage.Content != "I have a fever and headache" || exchange.UserMessage.MessageType != "text" {
		t.Errorf("user message = %+v", exchange.UserMessage)
	}
	if exchange.Context.CurrentTopic != "symptom_assessment" {
		t.Errorf("topic = %q", exchange.Context.CurrentTopic)
	}
	if len(exchange.Context.UserSymptoms) != 2 {
		t.Errorf("symptoms = %v", exchange.Context.UserSymptoms)
	}
	if exchange.AIResponse.Type != SenderAssistant || exchange.AIResponse.Content == "" {
		t.Errorf("ai response = %+v", exchange.AIResponse)
	}
	if len(exchange.AIResponse.Suggestions) != 5 {
		t.Errorf("suggestions = %v", exchange.AIResponse.Suggestions)
	}
	// Symptoms present, so symptom analysis leads the actions.
	if len(exchange.AIResponse.Actions) != 3 || exchange.AIResponse.Actions[0].Type != "symptom_analysis" {
		t.Errorf("actions = %v", exchange.AIResponse.Actions)
	}

	// Both turns persisted.
	stored := repo.sessions[session.ID]
	if len(stored.Messages) != 2 {
		t.Errorf("stored messages = %d", len(stored.Messages))
	}
}

func TestSendMessage_EmergencyKeyword(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	session, _, _ := svc.StartSession(context.Background(), userID, "en", SessionGeneral)

	exchange, err := svc.SendMessage(context.Background(), userID, session.ID, "This is urgent, please help", "")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if !strings.Contains(exchange.AIResponse.Content, "call 108") {
		t.Errorf("emergency response = %q", exchange.AIResponse.Content)
	}
	// No symptoms named, so only the two standing actions.
	if len(exchange.AIResponse.Actions) != 2 || exchange.AIResponse.Actions[0].Type != "find_facilities" {
		t.Errorf("actions = %v", exchange.AIResponse.Actions)
	}
}

func TestSendMessage_GeneralFallback(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	session, _, _ := svc.StartSession(context.Background(), userID, "hi", SessionGeneral)

	exchange, err := svc.SendMessage(context.Background(), userID, session.ID, "नमस्ते", "")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if !strings.HasPrefix(exchange.AIResponse.Content, "मैं आपकी स्वास्थ्य चिंताओं") {
		t.Errorf("general response = %q", exchange.AIResponse.Content)
	}
}

func TestSendMessage_TopicSticksAcrossTurns(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	session, _, _ := svc.StartSession(context.Background(), userID, "en", SessionHealthConsultation)

	if _, err := svc.SendMessage(context.Background(), userID, session.ID, "I have a cough", ""); err != nil {
		t.Fatal(err)
	}
	// Second message has no symptom keyword but the topic stays on
	// assessment, so the scripted follow-up continues.
	exchange, err := svc.SendMessage(context.Background(), userID, session.ID, "it started yesterday", "")
	if err != nil {
		t.Fatal(err)
	}
	if exchange.Context.CurrentTopic != "symptom_assessment" {
		t.Errorf("topic = %q", exchange.Context.CurrentTopic)
	}
	if !strings.HasPrefix(exchange.AIResponse.Content, "Thank you for sharing") {
		t.Errorf("follow-up = %q", exchange.AIResponse.Content)
	}
}

func TestSendMessage_Validation(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	session, _, _ := svc.StartSession(context.Background(), userID, "en", SessionGeneral)

	if _, err := svc.SendMessage(context.Background(), userID, session.ID, "", ""); err == nil {
		t.Error("expected error for empty message")
	}
	if _, err := svc.SendMessage(context.Background(), userID, uuid.New(), "hi", ""); err != ErrNotFound {
		t.Errorf("unknown session err = %v", err)
	}
	// A session belonging to someone else is indistinguishable from missing.
	if _, err := svc.SendMessage(context.Background(), uuid.New(), session.ID, "hi", ""); err != ErrNotFound {
		t.Errorf("foreign session err = %v", err)
	}
}

func TestSendVoiceMessage(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	session, _, _ := svc.StartSession(context.Background(), userID, "hi", SessionHealthConsultation)

	exchange, transcribed, err := svc.SendVoiceMessage(context.Background(), userID, session.ID, "hi")
	if err != nil {
		t.Fatalf("SendVoiceMessage: %v", err)
	}
	if transcribed == "" || exchange.UserMessage.MessageType != "voice" {
		t.Errorf("transcribed = %q, message = %+v", transcribed, exchange.UserMessage)
	}
	// The canned Hindi transcription names fever and headache.
	if exchange.Context.CurrentTopic != "symptom_assessment" {
		t.Errorf("topic = %q", exchange.Context.CurrentTopic)
	}
}

func TestListSessions(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	session, _, _ := svc.StartSession(context.Background(), userID, "en", SessionGeneral)
	if _, _, err := svc.StartSession(context.Background(), uuid.New(), "en", SessionGeneral); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SendMessage(context.Background(), userID, session.ID, "hello there", ""); err != nil {
		t.Fatal(err)
	}

	previews, err := svc.ListSessions(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(previews) != 1 {
		t.Fatalf("previews = %d, want 1", len(previews))
	}
	p := previews[0]
	if p.MessageCount != 2 || p.LastMessage == nil || p.LastMessage.Type != SenderAssistant {
		t.Errorf("preview = %+v", p)
	}
}

func TestExtractHealthKeywords(t *testing.T) {
	cases := []struct {
		message, language string
		want              []string
	}{
		{"I feel tired and dizzy", "en", []string{"fatigue", "dizziness"}},
		{"मुझे बुखार और खांसी है", "hi", []string{"fever", "cough"}},
		{"ମୋର କାଶ ହେଉଛି", "or", []string{"cough"}},
		{"nothing wrong", "en", nil},
		{"I have fever", "fr", []string{"fever"}}, // unknown language uses English table
	}
	for _, tc := range cases {
		got := ExtractHealthKeywords(tc.message, tc.language)
		sort.Strings(got)
		want := append([]string(nil), tc.want...)
		sort.Strings(want)
		if len(got) != len(want) {
			t.Errorf("ExtractHealthKeywords(%q, %q) = %v, want %v", tc.message, tc.language, got, tc.want)
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("ExtractHealthKeywords(%q, %q) = %v, want %v", tc.message, tc.language, got, tc.want)
				break
			}
		}
	}
}
