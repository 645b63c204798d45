// Package websocket pushes alert lifecycle events to connected clients.
// ASHA workers subscribe to topics (the shared alert feed, or their own
// villages) and receive events broadcast to those topics.
package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event is one real-time notification sent to WebSocket clients.
type Event struct {
	Type      string          `json:"type"`
	Topic     string          `json:"topic"`
	AlertID   string          `json:"alert_id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// controlMessage is what clients send to manage their subscriptions.
type controlMessage struct {
	Action string   `json:"action"`
	Topics []string `json:"topics"`
}

// session is one connected client. Its topic set lives behind the hub's
// lock; the send channel decouples broadcasts from the socket write.
type session struct {
	id     string
	send   chan []byte
	topics map[string]struct{}
}

// Hub fans events out to sessions by topic.
type Hub struct {
	mu       sync.RWMutex
	sessions map[*session]struct{}
	topics   map[string]map[*session]struct{}
	log      zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		sessions: make(map[*session]struct{}),
		topics:   make(map[string]map[*session]struct{}),
		log:      log,
	}
}

func (h *Hub) attach(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sessions[s] = struct{}{}
	for topic := range s.topics {
		h.addSubscriberLocked(topic, s)
	}
	h.log.Debug().Str("session", s.id).Msg("websocket session attached")
}

// detach removes the session and closes its send channel. Safe to call
// more than once; only the first call closes the channel.
func (h *Hub) detach(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[s]; !ok {
		return
	}
	for topic := range s.topics {
		h.dropSubscriberLocked(topic, s)
	}
	delete(h.sessions, s)
	close(s.send)
	h.log.Debug().Str("session", s.id).Msg("websocket session detached")
}

func (h *Hub) addSubscriberLocked(topic string, s *session) {
	set, ok := h.topics[topic]
	if !ok {
		set = make(map[*session]struct{})
		h.topics[topic] = set
	}
	set[s] = struct{}{}
	s.topics[topic] = struct{}{}
}

func (h *Hub) dropSubscriberLocked(topic string, s *session) {
	if set, ok := h.topics[topic]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(h.topics, topic)
		}
	}
	delete(s.topics, topic)
}

func (h *Hub) subscribe(s *session, topics []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, topic := range topics {
		h.addSubscriberLocked(topic, s)
	}
}

func (h *Hub) unsubscribe(s *session, topics []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, topic := range topics {
		h.dropSubscriberLocked(topic, s)
	}
}

func (h *Hub) handleControl(s *session, msg controlMessage) {
	switch msg.Action {
	case "subscribe":
		h.subscribe(s, msg.Topics)
	case "unsubscribe":
		h.unsubscribe(s, msg.Topics)
	default:
		h.log.Debug().Str("action", msg.Action).Msg("ignoring unknown websocket action")
	}
}

// Broadcast delivers an event to every session subscribed to the topic.
// Sessions whose send buffer is full miss the event rather than stall the
// caller; a reconnecting client re-reads alert state over HTTP anyway.
func (h *Hub) Broadcast(topic string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Str("topic", topic).Msg("event marshal failed")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.topics[topic] {
		select {
		case s.send <- data:
		default:
			h.log.Warn().Str("session", s.id).Str("topic", topic).Msg("slow websocket client, event dropped")
		}
	}
}

// ClientCount returns the number of attached sessions.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// TopicCount returns the number of sessions subscribed to a topic.
func (h *Hub) TopicCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}
