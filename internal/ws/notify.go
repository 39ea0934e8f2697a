package ws

import (
	"context"
	"encoding/json"
	"time"

	"studentshub/internal/domain/event"
	"studentshub/internal/notify"
)

type Push struct {
	Type          string         `json:"type"`
	Title         string         `json:"title"`
	Message       string         `json:"message"`
	Link          string         `json:"link,omitempty"`
	ApplicationID string         `json:"application_id,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	Timestamp     string         `json:"timestamp"`
}

// Pusher forwards committed events to the recipient's open connections.
type Pusher struct {
	hub *Hub
}

func NewPusher(hub *Hub) *Pusher {
	return &Pusher{hub: hub}
}

func (p *Pusher) Notify(_ context.Context, e event.Event) {
	if p == nil || p.hub == nil {
		return
	}
	n, ok := notify.Build(e)
	if !ok {
		return
	}

	at := e.OccurredAt
	if at.IsZero() {
		at = time.Now()
	}
	b, err := json.Marshal(Push{
		Type:          string(e.Kind),
		Title:         n.Title,
		Message:       n.Message,
		Link:          n.Link,
		ApplicationID: e.ApplicationID.String(),
		Metadata:      n.Metadata,
		Timestamp:     at.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	p.hub.SendToUser(e.RecipientUserID, b)
}

var _ notify.Listener = (*Pusher)(nil)
