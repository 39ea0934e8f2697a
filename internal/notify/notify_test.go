package notify

import (
	"context"
	"errors"
	"testing"

	"studentshub/internal/domain"
	"studentshub/internal/domain/event"
	"studentshub/internal/domain/notification"
	"studentshub/internal/domain/user"
	"studentshub/internal/repository"
	"studentshub/internal/repository/memory"

	"github.com/google/uuid"
)

func TestBuild(t *testing.T) {
	appID := uuid.New()
	cases := []struct {
		kind    event.Kind
		typ     notification.Type
		message string
		link    string
	}{
		{event.ApplicationSubmitted, notification.TypeApplicationSubmitted, "Sari Test applied for Backend Intern", "/applications/" + appID.String()},
		{event.ApplicationStatusChanged, notification.TypeApplicationStatus, "Your application for Backend Intern is now shortlisted", "/applications/" + appID.String()},
		{event.ApplicationWithdrawn, notification.TypeApplicationWithdrawn, "Sari Test withdrew their application for Backend Intern", "/applications/" + appID.String()},
		{event.MessageReceived, notification.TypeNewMessage, "Sari Test: see you monday", "/applications/" + appID.String() + "/messages"},
	}
	for _, tc := range cases {
		n, ok := Build(event.Event{
			Kind:          tc.kind,
			ApplicationID: appID,
			JobTitle:      "Backend Intern",
			ActorName:     "Sari Test",
			ToStatus:      "shortlisted",
			Preview:       "see you monday",
		})
		if !ok {
			t.Fatalf("%s: expected a notification", tc.kind)
		}
		if n.Type != tc.typ || n.Message != tc.message || n.Link != tc.link {
			t.Fatalf("%s: unexpected %+v", tc.kind, n)
		}
	}

	if _, ok := Build(event.Event{Kind: "unknown"}); ok {
		t.Fatalf("unknown kinds must be ignored")
	}
}

func TestBuild_FallbackActor(t *testing.T) {
	n, _ := Build(event.Event{Kind: event.ApplicationSubmitted, JobTitle: "QA Intern"})
	if n.Message != "A student applied for QA Intern" {
		t.Fatalf("unexpected message %q", n.Message)
	}
}

type failingSubscriber struct{}

func (failingSubscriber) Handle(context.Context, repository.Store, event.Event) error {
	return errors.New("boom")
}

type recordingListener struct{ got []event.Event }

func (l *recordingListener) Notify(_ context.Context, e event.Event) { l.got = append(l.got, e) }

type panickingListener struct{}

func (panickingListener) Notify(context.Context, event.Event) { panic("listener bug") }

func newRecipient(t *testing.T, s *memory.Store) uuid.UUID {
	t.Helper()
	u, err := s.Users().Create(context.Background(), user.User{Email: "hr@acme.test", Role: user.RoleCompany, IsActive: true})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u.ID
}

func TestDispatcher_PublishRollsBack(t *testing.T) {
	s := memory.New()
	recipient := newRecipient(t, s)
	d := NewDispatcher(nil)
	d.Subscribe(NewNotificationSubscriber())
	d.Subscribe(failingSubscriber{})

	ctx := context.Background()
	err := s.WithinTx(ctx, func(tx repository.Store) error {
		return d.Publish(ctx, tx, event.Event{Kind: event.ApplicationSubmitted, RecipientUserID: recipient})
	})
	if err == nil {
		t.Fatalf("expected publish error")
	}

	items, _, err := s.Notifications().ListByUser(ctx, recipient, false, domain.Page{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected notification rolled back, got %d", len(items))
	}
}

func TestDispatcher_SkipsMissingRecipient(t *testing.T) {
	s := memory.New()
	d := NewDispatcher(nil)
	d.Subscribe(NewNotificationSubscriber())
	if err := d.Publish(context.Background(), s, event.Event{Kind: event.ApplicationSubmitted}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestDispatcher_CommittedSurvivesPanics(t *testing.T) {
	d := NewDispatcher(nil)
	rec := &recordingListener{}
	d.Listen(panickingListener{})
	d.Listen(rec)

	d.Committed(context.Background(), event.Event{Kind: event.MessageReceived}, event.Event{Kind: event.ApplicationWithdrawn})
	if len(rec.got) != 2 {
		t.Fatalf("expected both events delivered, got %d", len(rec.got))
	}
}
