package repository

import (
	"context"
	"fmt"

	"studentshub/internal/database"
	"studentshub/internal/domain/savedsearch"

	"github.com/google/uuid"
)

type PostgresSavedSearchRepository struct {
	db database.Querier
}

func NewPostgresSavedSearchRepository(db database.Querier) *PostgresSavedSearchRepository {
	return &PostgresSavedSearchRepository{db: db}
}

const savedSearchColumns = `id, user_id, query, filters, search_count, last_searched, created_at`

func scanSavedSearch(row database.Row, extra ...any) (savedsearch.SavedSearch, error) {
	var s savedsearch.SavedSearch
	var filters []byte
	dest := append([]any{&s.ID, &s.UserID, &s.Query, &filters, &s.SearchCount, &s.LastSearched, &s.CreatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return savedsearch.SavedSearch{}, err
	}
	if err := decodeJSON(filters, &s.Filters); err != nil {
		return savedsearch.SavedSearch{}, fmt.Errorf("decode saved search filters: %w", err)
	}
	return s, nil
}

func (r *PostgresSavedSearchRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]savedsearch.SavedSearch, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+savedSearchColumns+` FROM saved_searches WHERE user_id = $1 ORDER BY last_searched DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]savedsearch.SavedSearch, 0)
	for rows.Next() {
		s, err := scanSavedSearch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert relies on xmax = 0 to tell a fresh insert from a conflict update.
func (r *PostgresSavedSearchRepository) Upsert(ctx context.Context, s savedsearch.SavedSearch) (savedsearch.SavedSearch, bool, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	filters, err := encodeJSON(s.Filters, "{}")
	if err != nil {
		return savedsearch.SavedSearch{}, false, err
	}

	var inserted bool
	out, err := scanSavedSearch(r.db.QueryRow(ctx,
		`INSERT INTO saved_searches (id, user_id, query, filters) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, query) DO UPDATE
		 SET search_count = saved_searches.search_count + 1,
		     last_searched = now(),
		     filters = EXCLUDED.filters
		 RETURNING `+savedSearchColumns+`, (xmax = 0)`,
		s.ID, s.UserID, s.Query, filters,
	), &inserted)
	if err != nil {
		return savedsearch.SavedSearch{}, false, translate(err, "save search")
	}
	return out, inserted, nil
}

func (r *PostgresSavedSearchRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx, `DELETE FROM saved_searches WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
