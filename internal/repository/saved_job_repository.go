package repository

import (
	"context"
	"fmt"

	"studentshub/internal/database"
	"studentshub/internal/domain/savedjob"

	"github.com/google/uuid"
)

type PostgresSavedJobRepository struct {
	db database.Querier
}

func NewPostgresSavedJobRepository(db database.Querier) *PostgresSavedJobRepository {
	return &PostgresSavedJobRepository{db: db}
}

const savedJobColumns = `s.id, s.student_id, s.job_id, s.notes, s.saved_at, ` + jobColumns

const savedJobFrom = ` FROM saved_jobs s JOIN jobs j ON j.id = s.job_id JOIN companies c ON c.id = j.company_id`

func scanSavedJob(row database.Row) (savedjob.SavedJob, error) {
	var s savedjob.SavedJob
	js := &jobScan{j: &s.Job}
	dest := append([]any{&s.ID, &s.StudentID, &s.JobID, &s.Notes, &s.SavedAt}, js.targets()...)
	if err := row.Scan(dest...); err != nil {
		return savedjob.SavedJob{}, err
	}
	if err := js.finish(); err != nil {
		return savedjob.SavedJob{}, err
	}
	return s, nil
}

func (r *PostgresSavedJobRepository) Insert(ctx context.Context, s savedjob.SavedJob) (savedjob.SavedJob, bool, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	n, err := r.db.Exec(ctx,
		`INSERT INTO saved_jobs (id, student_id, job_id, notes) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (student_id, job_id) DO NOTHING`,
		s.ID, s.StudentID, s.JobID, s.Notes,
	)
	if err != nil {
		return savedjob.SavedJob{}, false, translate(err, "save job")
	}

	out, err := r.Get(ctx, s.StudentID, s.JobID)
	if err != nil {
		return savedjob.SavedJob{}, false, err
	}
	return out, n > 0, nil
}

func (r *PostgresSavedJobRepository) Get(ctx context.Context, studentID, jobID uuid.UUID) (savedjob.SavedJob, error) {
	s, err := scanSavedJob(r.db.QueryRow(ctx,
		`SELECT `+savedJobColumns+savedJobFrom+` WHERE s.student_id = $1 AND s.job_id = $2`,
		studentID, jobID,
	))
	if err != nil {
		return savedjob.SavedJob{}, translate(err, "get saved job")
	}
	return s, nil
}

func (r *PostgresSavedJobRepository) Delete(ctx context.Context, studentID, jobID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx, `DELETE FROM saved_jobs WHERE student_id = $1 AND job_id = $2`, studentID, jobID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresSavedJobRepository) ListByStudent(ctx context.Context, studentID uuid.UUID, sort savedjob.SortOrder, activeOnly bool) ([]savedjob.SavedJob, error) {
	q := `SELECT ` + savedJobColumns + savedJobFrom + ` WHERE s.student_id = $1`
	if activeOnly {
		q += ` AND j.is_active = true`
	}
	switch sort {
	case savedjob.SortByDeadline:
		q += ` ORDER BY j.application_deadline ASC NULLS LAST, s.saved_at DESC`
	default:
		q += ` ORDER BY s.saved_at DESC`
	}

	rows, err := r.db.Query(ctx, q, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]savedjob.SavedJob, 0)
	for rows.Next() {
		s, err := scanSavedJob(rows)
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

func (r *PostgresSavedJobRepository) UpdateNotes(ctx context.Context, studentID, jobID uuid.UUID, notes string) (savedjob.SavedJob, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE saved_jobs SET notes = $3 WHERE student_id = $1 AND job_id = $2`,
		studentID, jobID, notes,
	)
	if err != nil {
		return savedjob.SavedJob{}, err
	}
	if n == 0 {
		return savedjob.SavedJob{}, fmt.Errorf("update saved job notes: %w", ErrNotFound)
	}
	return r.Get(ctx, studentID, jobID)
}

func (r *PostgresSavedJobRepository) DeleteMany(ctx context.Context, studentID uuid.UUID, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	n, err := r.db.Exec(ctx, `DELETE FROM saved_jobs WHERE student_id = $1 AND id = ANY($2)`, studentID, ids)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
