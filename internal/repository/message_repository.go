package repository

import (
	"context"

	"studentshub/internal/database"
	"studentshub/internal/domain"
	"studentshub/internal/domain/message"
	"studentshub/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresMessageRepository struct {
	db database.Querier
}

func NewPostgresMessageRepository(db database.Querier) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

const messageColumns = `id, application_id, sender_id, sender_role, body, is_read, sent_at`

func scanMessage(row database.Row) (message.Message, error) {
	var m message.Message
	var role string
	if err := row.Scan(&m.ID, &m.ApplicationID, &m.SenderID, &role, &m.Body, &m.IsRead, &m.SentAt); err != nil {
		return message.Message{}, err
	}
	m.SenderRole = user.Role(role)
	return m, nil
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m message.Message) (message.Message, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO messages (id, application_id, sender_id, sender_role, body)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+messageColumns,
		m.ID, m.ApplicationID, m.SenderID, string(m.SenderRole), m.Body,
	)
	out, err := scanMessage(row)
	if err != nil {
		return message.Message{}, translate(err, "create message")
	}
	return out, nil
}

func (r *PostgresMessageRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID, p domain.Page) ([]message.Message, int, error) {
	p = p.Normalize()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM messages WHERE application_id = $1`, applicationID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE application_id = $1 ORDER BY sent_at ASC, id ASC LIMIT $2 OFFSET $3`,
		applicationID, p.Limit, p.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]message.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresMessageRepository) MarkReadFor(ctx context.Context, applicationID, readerID uuid.UUID) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE messages SET is_read = true WHERE application_id = $1 AND sender_id <> $2 AND is_read = false`,
		applicationID, readerID,
	)
}
