package notification

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeApplicationSubmitted Type = "application_submitted"
	TypeApplicationStatus    Type = "application_status"
	TypeApplicationWithdrawn Type = "application_withdrawn"
	TypeNewMessage           Type = "new_message"
)

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      Type
	Title     string
	Message   string
	Link      string
	Metadata  map[string]any
	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time
}
