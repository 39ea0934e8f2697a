package notify

import (
	"context"
	"fmt"
	"strings"

	"studentshub/internal/domain/event"
	"studentshub/internal/domain/notification"
	"studentshub/internal/repository"

	"github.com/google/uuid"
)

// NotificationSubscriber persists one notification per event for its
// recipient.
type NotificationSubscriber struct{}

func NewNotificationSubscriber() *NotificationSubscriber {
	return &NotificationSubscriber{}
}

func (s *NotificationSubscriber) Handle(ctx context.Context, tx repository.Store, e event.Event) error {
	if e.RecipientUserID == uuid.Nil {
		return nil
	}
	n, ok := Build(e)
	if !ok {
		return nil
	}
	if _, err := tx.Notifications().Create(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// Build maps an event to the notification its recipient should see.
func Build(e event.Event) (notification.Notification, bool) {
	n := notification.Notification{
		UserID: e.RecipientUserID,
		Link:   "/applications/" + e.ApplicationID.String(),
		Metadata: map[string]any{
			"application_id": e.ApplicationID.String(),
			"job_id":         e.JobID.String(),
		},
	}

	switch e.Kind {
	case event.ApplicationSubmitted:
		n.Type = notification.TypeApplicationSubmitted
		n.Title = "New application"
		n.Message = fmt.Sprintf("%s applied for %s", actor(e.ActorName, "A student"), e.JobTitle)
	case event.ApplicationStatusChanged:
		n.Type = notification.TypeApplicationStatus
		n.Title = "Application update"
		n.Message = fmt.Sprintf("Your application for %s is now %s", e.JobTitle, humanize(e.ToStatus))
		n.Metadata["from_status"] = e.FromStatus
		n.Metadata["to_status"] = e.ToStatus
	case event.ApplicationWithdrawn:
		n.Type = notification.TypeApplicationWithdrawn
		n.Title = "Application withdrawn"
		n.Message = fmt.Sprintf("%s withdrew their application for %s", actor(e.ActorName, "A student"), e.JobTitle)
	case event.MessageReceived:
		n.Type = notification.TypeNewMessage
		n.Title = "New message"
		n.Message = fmt.Sprintf("%s: %s", actor(e.ActorName, "Someone"), e.Preview)
		n.Link += "/messages"
		n.Metadata["message_id"] = e.MessageID.String()
	default:
		return notification.Notification{}, false
	}
	return n, true
}

func actor(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	return name
}

func humanize(status string) string {
	return strings.ReplaceAll(status, "_", " ")
}
