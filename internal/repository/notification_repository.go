package repository

import (
	"context"
	"fmt"
	"time"

	"studentshub/internal/database"
	"studentshub/internal/domain"
	"studentshub/internal/domain/notification"

	"github.com/google/uuid"
)

type PostgresNotificationRepository struct {
	db database.Querier
}

func NewPostgresNotificationRepository(db database.Querier) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

const notificationColumns = `id, user_id, type, title, message, link, metadata, is_read, read_at, created_at`

func scanNotification(row database.Row) (notification.Notification, error) {
	var n notification.Notification
	var typ string
	var meta []byte
	if err := row.Scan(&n.ID, &n.UserID, &typ, &n.Title, &n.Message, &n.Link, &meta, &n.IsRead, &n.ReadAt, &n.CreatedAt); err != nil {
		return notification.Notification{}, err
	}
	n.Type = notification.Type(typ)
	if err := decodeJSON(meta, &n.Metadata); err != nil {
		return notification.Notification{}, fmt.Errorf("decode notification metadata: %w", err)
	}
	return n, nil
}

func (r *PostgresNotificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	meta, err := encodeJSON(n.Metadata, "{}")
	if err != nil {
		return notification.Notification{}, err
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO notifications (id, user_id, type, title, message, link, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+notificationColumns,
		n.ID, n.UserID, string(n.Type), n.Title, n.Message, n.Link, meta,
	)
	out, err := scanNotification(row)
	if err != nil {
		return notification.Notification{}, translate(err, "create notification")
	}
	return out, nil
}

func (r *PostgresNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, p domain.Page) ([]notification.Notification, int, error) {
	p = p.Normalize()
	where := ` WHERE user_id = $1`
	if unreadOnly {
		where += ` AND is_read = false`
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM notifications`+where, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+notificationColumns+` FROM notifications`+where+` ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		userID, p.Limit, p.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]notification.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM notifications WHERE user_id = $1 AND is_read = false`, userID).Scan(&n)
	return n, err
}

func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID, at time.Time) (notification.Notification, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE notifications SET is_read = true, read_at = COALESCE(read_at, $3)
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+notificationColumns,
		id, userID, at,
	)
	out, err := scanNotification(row)
	if err != nil {
		return notification.Notification{}, translate(err, "mark notification read")
	}
	return out, nil
}

func (r *PostgresNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE notifications SET is_read = true, read_at = $2 WHERE user_id = $1 AND is_read = false`,
		userID, at,
	)
}
