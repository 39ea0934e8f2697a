package message

import (
	"time"

	"studentshub/internal/domain/user"

	"github.com/google/uuid"
)

const MaxBodyLength = 5000

type Message struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	SenderID      uuid.UUID
	SenderRole    user.Role
	Body          string
	IsRead        bool
	SentAt        time.Time
}
