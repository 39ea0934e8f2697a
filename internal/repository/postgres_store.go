package repository

import (
	"context"
	"encoding/json"
	"errors"

	"studentshub/internal/database"
)

type PostgresStore struct {
	db database.DB
	q  database.Querier
	tx bool
}

func NewPostgresStore(db database.DB) *PostgresStore {
	return &PostgresStore{db: db, q: db}
}

func (s *PostgresStore) Users() UserRepository {
	return NewPostgresUserRepository(s.q)
}

func (s *PostgresStore) Students() StudentRepository {
	return NewPostgresStudentRepository(s.q)
}

func (s *PostgresStore) Companies() CompanyRepository {
	return NewPostgresCompanyRepository(s.q)
}

func (s *PostgresStore) Jobs() JobRepository {
	return NewPostgresJobRepository(s.q)
}

func (s *PostgresStore) SavedJobs() SavedJobRepository {
	return NewPostgresSavedJobRepository(s.q)
}

func (s *PostgresStore) SavedSearches() SavedSearchRepository {
	return NewPostgresSavedSearchRepository(s.q)
}

func (s *PostgresStore) Applications() ApplicationRepository {
	return NewPostgresApplicationRepository(s.q)
}

func (s *PostgresStore) Notifications() NotificationRepository {
	return NewPostgresNotificationRepository(s.q)
}

func (s *PostgresStore) Messages() MessageRepository {
	return NewPostgresMessageRepository(s.q)
}

func (s *PostgresStore) WithinTx(ctx context.Context, fn func(tx Store) error) error {
	if s.tx {
		return fn(s)
	}
	if s.db == nil {
		return errors.New("nil db")
	}
	return database.WithTx(ctx, s.db, func(tx database.Tx) error {
		return fn(&PostgresStore{db: s.db, q: tx, tx: true})
	})
}

// encodeJSON marshals v for a jsonb column, writing empty when v is nil.
func encodeJSON(v any, empty string) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return []byte(empty), nil
	}
	return b, nil
}

func decodeJSON(b []byte, v any) error {
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, v)
}
