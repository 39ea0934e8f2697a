package usecase

import (
	"context"
	"time"

	"studentshub/internal/domain"
	"studentshub/internal/domain/notification"
	"studentshub/internal/repository"

	"github.com/google/uuid"
)

type NotificationPage struct {
	Items       []notification.Notification
	Total       int
	UnreadCount int
	Page        domain.Page
}

type NotificationUsecase interface {
	List(ctx context.Context, caller Caller, unreadOnly bool, p domain.Page) (NotificationPage, error)
	UnreadCount(ctx context.Context, caller Caller) (int, error)
	MarkRead(ctx context.Context, caller Caller, id uuid.UUID) (notification.Notification, error)
	MarkAllRead(ctx context.Context, caller Caller) (int64, error)
}

type Notifications struct {
	store repository.Store
	now   func() time.Time
}

func NewNotificationUsecase(store repository.Store) *Notifications {
	return &Notifications{store: store, now: time.Now}
}

func (u *Notifications) List(ctx context.Context, caller Caller, unreadOnly bool, p domain.Page) (NotificationPage, error) {
	if caller.UserID == uuid.Nil {
		return NotificationPage{}, ErrUnauthorized
	}
	p = p.Normalize()
	items, total, err := u.store.Notifications().ListByUser(ctx, caller.UserID, unreadOnly, p)
	if err != nil {
		return NotificationPage{}, internal("list notifications", err)
	}
	unread, err := u.store.Notifications().CountUnread(ctx, caller.UserID)
	if err != nil {
		return NotificationPage{}, internal("count unread notifications", err)
	}
	return NotificationPage{Items: items, Total: total, UnreadCount: unread, Page: p}, nil
}

func (u *Notifications) UnreadCount(ctx context.Context, caller Caller) (int, error) {
	if caller.UserID == uuid.Nil {
		return 0, ErrUnauthorized
	}
	n, err := u.store.Notifications().CountUnread(ctx, caller.UserID)
	if err != nil {
		return 0, internal("count unread notifications", err)
	}
	return n, nil
}

// MarkRead only touches the caller's own notifications; anything else
// reads as missing.
func (u *Notifications) MarkRead(ctx context.Context, caller Caller, id uuid.UUID) (notification.Notification, error) {
	if caller.UserID == uuid.Nil {
		return notification.Notification{}, ErrUnauthorized
	}
	n, err := u.store.Notifications().MarkRead(ctx, id, caller.UserID, u.now())
	if err != nil {
		return notification.Notification{}, storeErr("mark notification read", "notification", err)
	}
	return n, nil
}

func (u *Notifications) MarkAllRead(ctx context.Context, caller Caller) (int64, error) {
	if caller.UserID == uuid.Nil {
		return 0, ErrUnauthorized
	}
	n, err := u.store.Notifications().MarkAllRead(ctx, caller.UserID, u.now())
	if err != nil {
		return 0, internal("mark all notifications read", err)
	}
	return n, nil
}
