package repository

import (
	"context"
	"time"

	"studentshub/internal/database"
	"studentshub/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresUserRepository struct {
	db database.Querier
}

func NewPostgresUserRepository(db database.Querier) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, email, password_hash, role, first_name, last_name, is_active, last_login_at, created_at, updated_at`

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.FirstName, &u.LastName, &u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (id, email, password_hash, role, first_name, last_name, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+userColumns,
		u.ID, user.NormalizeEmail(u.Email), u.PasswordHash, string(u.Role), u.FirstName, u.LastName, u.IsActive,
	)
	created, err := scanUser(row)
	if err != nil {
		return user.User{}, translate(err, "create user")
	}
	return created, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return user.User{}, translate(err, "get user")
	}
	return u, nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = $1`, user.NormalizeEmail(email))
	u, err := scanUser(row)
	if err != nil {
		return user.User{}, translate(err, "get user by email")
	}
	return u, nil
}

func (r *PostgresUserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	n, err := r.db.Exec(ctx, `UPDATE users SET last_login_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) CountByRole(ctx context.Context) (map[user.Role]int, error) {
	rows, err := r.db.Query(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[user.Role]int{}
	for rows.Next() {
		var role string
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		out[user.Role(role)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
