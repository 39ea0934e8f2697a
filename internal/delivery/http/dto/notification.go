package dto

import (
	"time"

	"studentshub/internal/domain/message"
	"studentshub/internal/domain/notification"
	"studentshub/internal/usecase"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID        uuid.UUID      `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Link      string         `json:"link"`
	Metadata  map[string]any `json:"metadata"`
	IsRead    bool           `json:"is_read"`
	ReadAt    *time.Time     `json:"read_at"`
	CreatedAt time.Time      `json:"created_at"`
}

type NotificationListResponse struct {
	ListResponse[NotificationResponse]
	UnreadCount int `json:"unread_count"`
}

type MessageResponse struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application_id"`
	SenderID      uuid.UUID `json:"sender_id"`
	SenderRole    string    `json:"sender_role"`
	Body          string    `json:"body"`
	IsRead        bool      `json:"is_read"`
	SentAt        time.Time `json:"sent_at"`
}

type PlatformStatsResponse struct {
	UsersByRole          map[string]int `json:"users_by_role"`
	ActiveJobs           int            `json:"active_jobs"`
	ApplicationsByStatus map[string]int `json:"applications_by_status"`
}

func NewNotificationResponse(n notification.Notification) NotificationResponse {
	meta := n.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	return NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		Metadata:  meta,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

func NewMessageResponse(m message.Message) MessageResponse {
	return MessageResponse{
		ID:            m.ID,
		ApplicationID: m.ApplicationID,
		SenderID:      m.SenderID,
		SenderRole:    string(m.SenderRole),
		Body:          m.Body,
		IsRead:        m.IsRead,
		SentAt:        m.SentAt,
	}
}

func NewPlatformStatsResponse(s usecase.PlatformStats) PlatformStatsResponse {
	users := make(map[string]int, len(s.UsersByRole))
	for r, n := range s.UsersByRole {
		users[string(r)] = n
	}
	apps := make(map[string]int, len(s.ApplicationsByStatus))
	for st, n := range s.ApplicationsByStatus {
		apps[string(st)] = n
	}
	return PlatformStatsResponse{UsersByRole: users, ActiveJobs: s.ActiveJobs, ApplicationsByStatus: apps}
}
