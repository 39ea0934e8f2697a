package repository

import (
	"context"
	"fmt"

	"studentshub/internal/database"
	"studentshub/internal/domain"
	"studentshub/internal/domain/application"

	"github.com/google/uuid"
)

type PostgresApplicationRepository struct {
	db database.Querier
}

func NewPostgresApplicationRepository(db database.Querier) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `a.id, a.student_id, a.job_id, a.cover_letter, a.resume_url, a.status, a.match_percentage,
	a.employer_notes, a.rejection_reason, a.applied_at, a.updated_at, a.reviewed_at,
	j.title, j.company_id, c.company_name, c.user_id, st.user_id, TRIM(u.first_name || ' ' || u.last_name), u.email`

const applicationFrom = ` FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN companies c ON c.id = j.company_id
	JOIN students st ON st.id = a.student_id
	JOIN users u ON u.id = st.user_id`

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var status string
	if err := row.Scan(
		&a.ID, &a.StudentID, &a.JobID, &a.CoverLetter, &a.ResumeURL, &status, &a.MatchPercentage,
		&a.EmployerNotes, &a.RejectionReason, &a.AppliedAt, &a.UpdatedAt, &a.ReviewedAt,
		&a.JobTitle, &a.CompanyID, &a.CompanyName, &a.CompanyUserID, &a.StudentUserID, &a.StudentName, &a.StudentEmail,
	); err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}

func collectApplications(rows database.Rows) ([]application.Application, error) {
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = application.StatusPending
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, student_id, job_id, cover_letter, resume_url, status, match_percentage)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.StudentID, a.JobID, a.CoverLetter, a.ResumeURL, string(a.Status), a.MatchPercentage,
	)
	if err != nil {
		return application.Application{}, translate(err, "create application")
	}
	return r.GetByID(ctx, a.ID)
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx, `SELECT `+applicationColumns+applicationFrom+` WHERE a.id = $1`, id))
	if err != nil {
		return application.Application{}, translate(err, "get application")
	}
	return a, nil
}

func (r *PostgresApplicationRepository) LockByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+applicationFrom+` WHERE a.id = $1 FOR UPDATE OF a`, id))
	if err != nil {
		return application.Application{}, translate(err, "lock application")
	}
	return a, nil
}

func (r *PostgresApplicationRepository) FindActive(ctx context.Context, studentID, jobID uuid.UUID) (application.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+applicationFrom+`
		 WHERE a.student_id = $1 AND a.job_id = $2 AND a.status <> 'withdrawn'`,
		studentID, jobID,
	))
	if err != nil {
		return application.Application{}, translate(err, "find active application")
	}
	return a, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, a application.Application) (application.Application, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $2, employer_notes = $3, rejection_reason = $4, reviewed_at = $5, updated_at = $6
		 WHERE id = $1`,
		a.ID, string(a.Status), a.EmployerNotes, a.RejectionReason, a.ReviewedAt, a.UpdatedAt,
	)
	if err != nil {
		return application.Application{}, translate(err, "update application status")
	}
	if n == 0 {
		return application.Application{}, fmt.Errorf("update application status: %w", ErrNotFound)
	}
	return r.GetByID(ctx, a.ID)
}

func (r *PostgresApplicationRepository) list(ctx context.Context, where string, args []any, p domain.Page) ([]application.Application, int, error) {
	p = p.Normalize()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1)`+applicationFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`SELECT %s%s%s ORDER BY a.applied_at DESC, a.id DESC LIMIT $%d OFFSET $%d`,
		applicationColumns, applicationFrom, where, len(args)+1, len(args)+2)
	rows, err := r.db.Query(ctx, q, append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	items, err := collectApplications(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID, p domain.Page) ([]application.Application, int, error) {
	return r.list(ctx, ` WHERE a.job_id = $1`, []any{jobID}, p)
}

func (r *PostgresApplicationRepository) ListByStudent(ctx context.Context, studentID uuid.UUID, status *application.Status, p domain.Page) ([]application.Application, int, error) {
	if status != nil {
		return r.list(ctx, ` WHERE a.student_id = $1 AND a.status = $2`, []any{studentID, string(*status)}, p)
	}
	return r.list(ctx, ` WHERE a.student_id = $1`, []any{studentID}, p)
}

func (r *PostgresApplicationRepository) ListByCompany(ctx context.Context, companyID uuid.UUID, p domain.Page) ([]application.Application, int, error) {
	return r.list(ctx, ` WHERE j.company_id = $1`, []any{companyID}, p)
}

func (r *PostgresApplicationRepository) ActiveJobIDs(ctx context.Context, studentID uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := r.db.Query(ctx,
		`SELECT job_id FROM applications WHERE student_id = $1 AND status <> 'withdrawn'`,
		studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[uuid.UUID]bool{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) CountByStatus(ctx context.Context) (application.StatusCounts, error) {
	return r.countBy(ctx, `SELECT status, COUNT(1) FROM applications GROUP BY status`)
}

func (r *PostgresApplicationRepository) CountByStudent(ctx context.Context, studentID uuid.UUID) (application.StatusCounts, error) {
	return r.countBy(ctx, `SELECT status, COUNT(1) FROM applications WHERE student_id = $1 GROUP BY status`, studentID)
}

func (r *PostgresApplicationRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (application.StatusCounts, error) {
	return r.countBy(ctx,
		`SELECT a.status, COUNT(1) FROM applications a JOIN jobs j ON j.id = a.job_id
		 WHERE j.company_id = $1 GROUP BY a.status`,
		companyID,
	)
}

func (r *PostgresApplicationRepository) countBy(ctx context.Context, q string, args ...any) (application.StatusCounts, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := application.StatusCounts{}
	for rows.Next() {
		var st string
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, err
		}
		out[application.Status(st)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
