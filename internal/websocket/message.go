package websocket

import (
	"encoding/json"

	"github.com/bookcook/api/internal/models"
)

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewEventMessage wraps an activity event for the feed.
func NewEventMessage(event models.Event) []byte {
	b, _ := json.Marshal(Message{Action: "event", Payload: event})
	return b
}
