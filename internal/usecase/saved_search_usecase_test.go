package usecase

import (
	"context"
	"errors"
	"testing"

	"studentshub/internal/domain/savedsearch"
	"studentshub/internal/domain/user"

	"github.com/google/uuid"
)

func TestSavedSearch_RepeatBumpsCount(t *testing.T) {
	f := newFixture(t)
	uc := NewSavedSearchUsecase(f.store)
	ctx := context.Background()

	first, created, err := uc.Save(ctx, f.student, SavedSearchInput{
		Query:   "  backend   intern ",
		Filters: savedsearch.Filters{JobType: "Internship"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !created || first.Query != "backend intern" || first.SearchCount != 1 || first.Filters.JobType != "internship" {
		t.Fatalf("unexpected first save created=%v %+v", created, first)
	}

	again, created, err := uc.Save(ctx, f.student, SavedSearchInput{
		Query:   "backend intern",
		Filters: savedsearch.Filters{Location: "Bandung", Remote: true},
	})
	if err != nil {
		t.Fatalf("save again: %v", err)
	}
	if created || again.ID != first.ID || again.SearchCount != 2 {
		t.Fatalf("expected the existing search bumped, got created=%v %+v", created, again)
	}
	if again.Filters != (savedsearch.Filters{Location: "Bandung", Remote: true}) {
		t.Fatalf("expected latest filters to replace old ones, got %+v", again.Filters)
	}
	if !again.LastSearched.After(first.LastSearched) {
		t.Fatalf("expected last_searched to move forward")
	}
}

func TestSavedSearch_ListMostRecentFirst(t *testing.T) {
	f := newFixture(t)
	uc := NewSavedSearchUsecase(f.store)
	ctx := context.Background()

	for _, q := range []string{"golang", "data analyst", "golang"} {
		if _, _, err := uc.Save(ctx, f.company, SavedSearchInput{Query: q}); err != nil {
			t.Fatalf("save %q: %v", q, err)
		}
	}
	if _, _, err := uc.Save(ctx, f.student, SavedSearchInput{Query: "designer"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	items, err := uc.List(ctx, f.company)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].Query != "golang" || items[1].Query != "data analyst" {
		t.Fatalf("unexpected order %+v", items)
	}
}

func TestSavedSearch_Validation(t *testing.T) {
	f := newFixture(t)
	uc := NewSavedSearchUsecase(f.store)
	ctx := context.Background()

	if _, _, err := uc.Save(ctx, f.student, SavedSearchInput{Query: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.List(ctx, Caller{Role: user.RoleStudent}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized without a user, got %v", err)
	}
}

func TestSavedSearch_DeleteOwnerOnly(t *testing.T) {
	f := newFixture(t)
	uc := NewSavedSearchUsecase(f.store)
	ctx := context.Background()

	s, _, err := uc.Save(ctx, f.student, SavedSearchInput{Query: "remote go"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := uc.Delete(ctx, f.company, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another user, got %v", err)
	}
	if err := uc.Delete(ctx, f.student, s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := uc.Delete(ctx, f.student, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := uc.Delete(ctx, f.student, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}
