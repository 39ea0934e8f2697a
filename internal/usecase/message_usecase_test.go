package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"studentshub/internal/domain"
	"studentshub/internal/domain/message"
	"studentshub/internal/domain/notification"
	"studentshub/internal/infrastructure/ratelimit"
)

func TestMessages_Conversation(t *testing.T) {
	f := newFixture(t)
	a := f.apply(t, f.student, f.job.ID)
	uc := NewMessageUsecase(f.store, f.events, nil, RateLimit{})
	ctx := context.Background()

	if _, err := uc.Send(ctx, f.company, a.ID, "Are you free on Monday?"); err != nil {
		t.Fatalf("company send: %v", err)
	}
	if _, err := uc.Send(ctx, f.student, a.ID, "Yes, any time after 10."); err != nil {
		t.Fatalf("student send: %v", err)
	}

	items, _, err := f.store.Notifications().ListByUser(ctx, f.student.UserID, true, domain.Page{})
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(items) != 1 || items[0].Type != notification.TypeNewMessage {
		t.Fatalf("expected one message notification for the student, got %+v", items)
	}

	page, err := uc.List(ctx, f.student, a.ID, domain.Page{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 messages, got %d", page.Total)
	}

	// The company's message is now read; the student's own is untouched.
	after, _, err := f.store.Messages().ListByApplication(ctx, a.ID, domain.Page{})
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	for _, m := range after {
		if m.SenderID == f.company.UserID && !m.IsRead {
			t.Fatalf("expected company message marked read")
		}
		if m.SenderID == f.student.UserID && m.IsRead {
			t.Fatalf("own message must stay unread")
		}
	}
}

func TestMessages_Validation(t *testing.T) {
	f := newFixture(t)
	a := f.apply(t, f.student, f.job.ID)
	uc := NewMessageUsecase(f.store, f.events, nil, RateLimit{})
	ctx := context.Background()

	if _, err := uc.Send(ctx, f.student, a.ID, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank: expected ErrInvalidInput, got %v", err)
	}
	long := strings.Repeat("é", message.MaxBodyLength+1)
	if _, err := uc.Send(ctx, f.student, a.ID, long); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("long: expected ErrInvalidInput, got %v", err)
	}
	exact := strings.Repeat("é", message.MaxBodyLength)
	if _, err := uc.Send(ctx, f.student, a.ID, exact); err != nil {
		t.Fatalf("limit counts characters, not bytes: %v", err)
	}

	stranger, _ := f.newStudent(t)
	if _, err := uc.Send(ctx, stranger, a.ID, "hi"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger: expected ErrForbidden, got %v", err)
	}
}

func TestMessages_RateLimited(t *testing.T) {
	f := newFixture(t)
	a := f.apply(t, f.student, f.job.ID)
	uc := NewMessageUsecase(f.store, f.events, ratelimit.NewMemoryLimiter(), RateLimit{Limit: 1, Window: time.Minute})
	ctx := context.Background()

	if _, err := uc.Send(ctx, f.student, a.ID, "one"); err != nil {
		t.Fatalf("first send: %v", err)
	}
	if _, err := uc.Send(ctx, f.student, a.ID, "two"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if _, err := uc.Send(ctx, f.company, a.ID, "reply"); err != nil {
		t.Fatalf("other party has its own budget: %v", err)
	}
}

func TestPreview(t *testing.T) {
	if got := preview("short"); got != "short" {
		t.Fatalf("unexpected preview %q", got)
	}
	got := preview(strings.Repeat("a", previewLength+5))
	if len(got) != previewLength+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("unexpected preview %q", got)
	}
}
