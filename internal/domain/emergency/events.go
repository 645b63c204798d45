package emergency

import (
	"encoding/json"
	"time"

	"github.com/gramcare/gramcare/internal/platform/websocket"
)

// AlertFeedTopic is the shared live feed every connected ASHA client can
// subscribe to.
const AlertFeedTopic = "alerts"

// HubSink pushes alert lifecycle events onto the websocket hub.
type HubSink struct {
	hub *websocket.Hub
}

func NewHubSink(hub *websocket.Hub) *HubSink {
	return &HubSink{hub: hub}
}

func (s *HubSink) AlertEvent(event string, a *Alert) {
	data, err := json.Marshal(a)
	if err != nil {
		return
	}
	s.hub.Broadcast(AlertFeedTopic, websocket.Event{
		Type:      event,
		Topic:     AlertFeedTopic,
		AlertID:   a.ID.String(),
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
}
