package event

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	ApplicationSubmitted     Kind = "application.submitted"
	ApplicationStatusChanged Kind = "application.status_changed"
	ApplicationWithdrawn     Kind = "application.withdrawn"
	MessageReceived          Kind = "message.received"
)

// Event describes a state change that some user should hear about.
type Event struct {
	Kind            Kind
	RecipientUserID uuid.UUID
	ApplicationID   uuid.UUID
	JobID           uuid.UUID
	JobTitle        string
	ActorName       string
	FromStatus      string
	ToStatus        string
	MessageID       uuid.UUID
	Preview         string
	OccurredAt      time.Time
}
