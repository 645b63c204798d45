package websocket

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestHub() *Hub {
	return NewHub(zerolog.Nop())
}

func newTestSession(hub *Hub, buffer int, topics ...string) *session {
	s := &session{
		id:     "session-test",
		send:   make(chan []byte, buffer),
		topics: make(map[string]struct{}),
	}
	hub.attach(s)
	if len(topics) > 0 {
		hub.subscribe(s, topics)
	}
	return s
}

func alertEvent(topic, alertID string) Event {
	return Event{
		Type:      "alert.created",
		Topic:     topic,
		AlertID:   alertID,
		Timestamp: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestHub_Broadcast(t *testing.T) {
	hub := newTestHub()
	s := newTestSession(hub, 8, "alerts")

	hub.Broadcast("alerts", alertEvent("alerts", "a1"))

	select {
	case data := <-s.send:
		var got Event
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.Type != "alert.created" || got.AlertID != "a1" {
			t.Errorf("event = %+v", got)
		}
	default:
		t.Fatal("subscribed session received nothing")
	}
}

func TestHub_BroadcastOnlyToSubscribers(t *testing.T) {
	hub := newTestHub()
	subscribed := newTestSession(hub, 8, "alerts")
	other := newTestSession(hub, 8, "alerts:koraput")

	hub.Broadcast("alerts", alertEvent("alerts", "a1"))

	if len(subscribed.send) != 1 {
		t.Errorf("subscriber got %d events, want 1", len(subscribed.send))
	}
	if len(other.send) != 0 {
		t.Errorf("non-subscriber got %d events, want 0", len(other.send))
	}
}

func TestHub_Detach(t *testing.T) {
	hub := newTestHub()
	s := newTestSession(hub, 8, "alerts")

	hub.detach(s)

	if hub.ClientCount() != 0 {
		t.Errorf("client count = %d, want 0", hub.ClientCount())
	}
	if hub.TopicCount("alerts") != 0 {
		t.Errorf("topic count = %d, want 0", hub.TopicCount("alerts"))
	}
	if _, ok := <-s.send; ok {
		t.Error("send channel should be closed after detach")
	}
	// Double detach is a no-op and must not close the channel twice.
	hub.detach(s)
}

func TestHub_SubscribeUnsubscribe(t *testing.T) {
	hub := newTestHub()
	s := newTestSession(hub, 8, "alerts")

	hub.subscribe(s, []string{"alerts:koraput", "alerts:jeypore"})
	if hub.TopicCount("alerts:koraput") != 1 {
		t.Error("subscribe did not take effect")
	}

	hub.Broadcast("alerts:koraput", alertEvent("alerts:koraput", "a2"))
	if len(s.send) != 1 {
		t.Errorf("got %d events after subscribe, want 1", len(s.send))
	}
	<-s.send

	hub.unsubscribe(s, []string{"alerts:koraput"})
	hub.Broadcast("alerts:koraput", alertEvent("alerts:koraput", "a3"))
	if len(s.send) != 0 {
		t.Error("still receiving after unsubscribe")
	}
	if _, ok := s.topics["alerts:jeypore"]; !ok {
		t.Error("unrelated subscription must survive unsubscribe")
	}
}

func TestHub_SubscribeTwiceIsIdempotent(t *testing.T) {
	hub := newTestHub()
	s := newTestSession(hub, 8, "alerts")

	hub.subscribe(s, []string{"alerts"})
	if hub.TopicCount("alerts") != 1 {
		t.Errorf("topic count = %d, want 1", hub.TopicCount("alerts"))
	}

	hub.Broadcast("alerts", alertEvent("alerts", "a1"))
	if len(s.send) != 1 {
		t.Errorf("duplicate subscription delivered %d events, want 1", len(s.send))
	}
}

func TestHub_HandleControl(t *testing.T) {
	hub := newTestHub()
	s := newTestSession(hub, 8)

	hub.handleControl(s, controlMessage{Action: "subscribe", Topics: []string{"alerts:koraput"}})
	if hub.TopicCount("alerts:koraput") != 1 {
		t.Error("subscribe message not processed")
	}

	hub.handleControl(s, controlMessage{Action: "unsubscribe", Topics: []string{"alerts:koraput"}})
	if hub.TopicCount("alerts:koraput") != 0 {
		t.Error("unsubscribe message not processed")
	}

	// Unknown actions are ignored.
	hub.handleControl(s, controlMessage{Action: "dance", Topics: []string{"alerts"}})
	if hub.TopicCount("alerts") != 0 {
		t.Error("unknown action must not subscribe")
	}
}

func TestHub_FullBufferDoesNotBlock(t *testing.T) {
	hub := newTestHub()
	s := newTestSession(hub, 1, "alerts")

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			hub.Broadcast("alerts", alertEvent("alerts", "a1"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full session buffer")
	}
	if len(s.send) != 1 {
		t.Errorf("buffered = %d, want 1", len(s.send))
	}
}

func TestHub_ConcurrentAccess(t *testing.T) {
	hub := newTestHub()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := newTestSession(hub, 64, "alerts")
			hub.Broadcast("alerts", alertEvent("alerts", "a1"))
			hub.detach(s)
		}()
	}
	wg.Wait()

	if hub.ClientCount() != 0 {
		t.Errorf("client count = %d, want 0", hub.ClientCount())
	}
}
