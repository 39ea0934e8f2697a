package usecase

import (
	"context"
	"errors"

	"studentshub/internal/domain/savedsearch"
	"studentshub/internal/domain/user"
	"studentshub/internal/repository"

	"github.com/google/uuid"
)

type SavedSearchInput struct {
	Query   string
	Filters savedsearch.Filters
}

type SavedSearchUsecase interface {
	List(ctx context.Context, caller Caller) ([]savedsearch.SavedSearch, error)
	// Save stores the query, or bumps the count of an identical one.
	Save(ctx context.Context, caller Caller, in SavedSearchInput) (savedsearch.SavedSearch, bool, error)
	Delete(ctx context.Context, caller Caller, id uuid.UUID) error
}

type SavedSearches struct {
	store repository.Store
}

func NewSavedSearchUsecase(store repository.Store) *SavedSearches {
	return &SavedSearches{store: store}
}

func (u *SavedSearches) List(ctx context.Context, caller Caller) ([]savedsearch.SavedSearch, error) {
	if err := caller.require(user.RoleStudent, user.RoleCompany, user.RoleAdmin); err != nil {
		return nil, err
	}
	items, err := u.store.SavedSearches().ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, internal("list saved searches", err)
	}
	return items, nil
}

func (u *SavedSearches) Save(ctx context.Context, caller Caller, in SavedSearchInput) (savedsearch.SavedSearch, bool, error) {
	if err := caller.require(user.RoleStudent, user.RoleCompany, user.RoleAdmin); err != nil {
		return savedsearch.SavedSearch{}, false, err
	}
	q, err := savedsearch.NormalizeQuery(in.Query)
	if err != nil {
		return savedsearch.SavedSearch{}, false, invalid("%v", err)
	}

	out, created, err := u.store.SavedSearches().Upsert(ctx, savedsearch.SavedSearch{
		UserID:  caller.UserID,
		Query:   q,
		Filters: in.Filters.Normalize(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrReference) {
			return savedsearch.SavedSearch{}, false, ErrUnauthorized
		}
		return savedsearch.SavedSearch{}, false, internal("save search", err)
	}
	return out, created, nil
}

func (u *SavedSearches) Delete(ctx context.Context, caller Caller, id uuid.UUID) error {
	if err := caller.require(user.RoleStudent, user.RoleCompany, user.RoleAdmin); err != nil {
		return err
	}
	ok, err := u.store.SavedSearches().Delete(ctx, id, caller.UserID)
	if err != nil {
		return internal("delete saved search", err)
	}
	if !ok {
		return notFound("saved search")
	}
	return nil
}
