package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"studentshub/internal/domain"
	"studentshub/internal/domain/application"
	"studentshub/internal/domain/event"
	"studentshub/internal/domain/message"
	"studentshub/internal/domain/user"
	"studentshub/internal/repository"

	"github.com/google/uuid"
)

const previewLength = 120

type MessagePage struct {
	Items []message.Message
	Total int
	Page  domain.Page
}

type MessageUsecase interface {
	Send(ctx context.Context, caller Caller, applicationID uuid.UUID, body string) (message.Message, error)
	List(ctx context.Context, caller Caller, applicationID uuid.UUID, p domain.Page) (MessagePage, error)
}

type Messages struct {
	store   repository.Store
	events  EventPublisher
	limiter RateLimiter
	limit   RateLimit
	now     func() time.Time
}

func NewMessageUsecase(store repository.Store, events EventPublisher, limiter RateLimiter, limit RateLimit) *Messages {
	if events == nil {
		events = nopPublisher{}
	}
	return &Messages{store: store, events: events, limiter: limiter, limit: limit, now: time.Now}
}

func (u *Messages) Send(ctx context.Context, caller Caller, applicationID uuid.UUID, body string) (message.Message, error) {
	if err := caller.require(user.RoleStudent, user.RoleCompany); err != nil {
		return message.Message{}, err
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return message.Message{}, invalid("message body is required")
	}
	if utf8.RuneCountInString(body) > message.MaxBodyLength {
		return message.Message{}, invalid("message body exceeds %d characters", message.MaxBodyLength)
	}

	a, err := u.party(ctx, caller, applicationID)
	if err != nil {
		return message.Message{}, err
	}
	if !allow(ctx, u.limiter, fmt.Sprintf("message:%s:%s", a.ID, caller.UserID), u.limit) {
		return message.Message{}, ErrRateLimited
	}

	recipient, actor := a.CompanyUserID, a.StudentName
	if caller.Role == user.RoleCompany {
		recipient, actor = a.StudentUserID, a.CompanyName
	}

	var (
		sent   message.Message
		events []event.Event
	)
	err = u.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		sent, err = tx.Messages().Create(ctx, message.Message{
			ApplicationID: a.ID,
			SenderID:      caller.UserID,
			SenderRole:    caller.Role,
			Body:          body,
		})
		if err != nil {
			return internal("create message", err)
		}

		events = []event.Event{{
			Kind:            event.MessageReceived,
			RecipientUserID: recipient,
			ApplicationID:   a.ID,
			JobID:           a.JobID,
			JobTitle:        a.JobTitle,
			ActorName:       actor,
			MessageID:       sent.ID,
			Preview:         preview(body),
			OccurredAt:      u.now(),
		}}
		return u.events.Publish(ctx, tx, events...)
	})
	if err != nil {
		return message.Message{}, passThrough("send message", err)
	}

	u.events.Committed(ctx, events...)
	return sent, nil
}

func (u *Messages) List(ctx context.Context, caller Caller, applicationID uuid.UUID, p domain.Page) (MessagePage, error) {
	if err := caller.require(user.RoleStudent, user.RoleCompany); err != nil {
		return MessagePage{}, err
	}
	a, err := u.party(ctx, caller, applicationID)
	if err != nil {
		return MessagePage{}, err
	}

	p = p.Normalize()
	items, total, err := u.store.Messages().ListByApplication(ctx, a.ID, p)
	if err != nil {
		return MessagePage{}, internal("list messages", err)
	}
	if _, err := u.store.Messages().MarkReadFor(ctx, a.ID, caller.UserID); err != nil {
		return MessagePage{}, internal("mark messages read", err)
	}
	return MessagePage{Items: items, Total: total, Page: p}, nil
}

// party loads an application the caller takes part in as its student or
// as the company owning the job.
func (u *Messages) party(ctx context.Context, caller Caller, applicationID uuid.UUID) (application.Application, error) {
	a, err := u.store.Applications().GetByID(ctx, applicationID)
	if err != nil {
		return application.Application{}, storeErr("load application", "application", err)
	}
	if !canViewApplication(caller, a) {
		return application.Application{}, forbidden("not a party to this application")
	}
	return a, nil
}

func preview(body string) string {
	if utf8.RuneCountInString(body) <= previewLength {
		return body
	}
	r := []rune(body)
	return string(r[:previewLength]) + "..."
}
