package repository

import (
	"context"
	"fmt"
	"strings"

	"studentshub/internal/database"
	"studentshub/internal/domain"
	"studentshub/internal/domain/job"

	"github.com/google/uuid"
)

type PostgresJobRepository struct {
	db database.Querier
}

func NewPostgresJobRepository(db database.Querier) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `j.id, j.company_id, j.title, j.description, j.requirements, j.responsibilities, j.job_type,
	j.work_mode, j.experience_level, j.location, j.salary_min, j.salary_max, j.salary_currency, j.required_skills,
	j.positions_available, j.is_active, j.application_deadline, j.applicant_count, j.created_at, j.updated_at,
	c.company_name`

const jobFrom = ` FROM jobs j JOIN companies c ON c.id = j.company_id`

// jobScan holds the jsonb and enum columns that need decoding after Scan.
type jobScan struct {
	j      *job.Job
	mode   string
	skills []byte
}

func (js *jobScan) targets() []any {
	j := js.j
	return []any{
		&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Requirements, &j.Responsibilities, &j.JobType,
		&js.mode, &j.ExperienceLevel, &j.Location, &j.SalaryMin, &j.SalaryMax, &j.SalaryCurrency, &js.skills,
		&j.PositionsAvailable, &j.IsActive, &j.ApplicationDeadline, &j.ApplicantCount, &j.CreatedAt, &j.UpdatedAt,
		&j.CompanyName,
	}
}

func (js *jobScan) finish() error {
	js.j.WorkMode = job.WorkMode(js.mode)
	if err := decodeJSON(js.skills, &js.j.RequiredSkills); err != nil {
		return fmt.Errorf("decode job skills: %w", err)
	}
	return nil
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	js := &jobScan{j: &j}
	if err := row.Scan(js.targets()...); err != nil {
		return job.Job{}, err
	}
	if err := js.finish(); err != nil {
		return job.Job{}, err
	}
	return j, nil
}

func collectJobs(rows database.Rows) ([]job.Job, error) {
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	skills, err := encodeJSON(j.RequiredSkills, "[]")
	if err != nil {
		return job.Job{}, err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO jobs (id, company_id, title, description, requirements, responsibilities, job_type, work_mode,
			experience_level, location, salary_min, salary_max, salary_currency, required_skills, positions_available,
			is_active, application_deadline)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		j.ID, j.CompanyID, j.Title, j.Description, j.Requirements, j.Responsibilities, j.JobType, string(j.WorkMode),
		j.ExperienceLevel, j.Location, j.SalaryMin, j.SalaryMax, j.SalaryCurrency, skills, j.PositionsAvailable,
		j.IsActive, j.ApplicationDeadline,
	)
	if err != nil {
		return job.Job{}, translate(err, "create job")
	}
	return r.GetByID(ctx, j.ID)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+jobFrom+` WHERE j.id = $1`, id))
	if err != nil {
		return job.Job{}, translate(err, "get job")
	}
	return j, nil
}

func (r *PostgresJobRepository) LockByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+jobFrom+` WHERE j.id = $1 FOR UPDATE OF j`, id))
	if err != nil {
		return job.Job{}, translate(err, "lock job")
	}
	return j, nil
}

func (r *PostgresJobRepository) Update(ctx context.Context, j job.Job) (job.Job, error) {
	skills, err := encodeJSON(j.RequiredSkills, "[]")
	if err != nil {
		return job.Job{}, err
	}

	n, err := r.db.Exec(ctx,
		`UPDATE jobs SET title = $2, description = $3, requirements = $4, responsibilities = $5, job_type = $6,
			work_mode = $7, experience_level = $8, location = $9, salary_min = $10, salary_max = $11,
			salary_currency = $12, required_skills = $13, positions_available = $14, application_deadline = $15,
			updated_at = now()
		 WHERE id = $1`,
		j.ID, j.Title, j.Description, j.Requirements, j.Responsibilities, j.JobType,
		string(j.WorkMode), j.ExperienceLevel, j.Location, j.SalaryMin, j.SalaryMax,
		j.SalaryCurrency, skills, j.PositionsAvailable, j.ApplicationDeadline,
	)
	if err != nil {
		return job.Job{}, translate(err, "update job")
	}
	if n == 0 {
		return job.Job{}, fmt.Errorf("update job: %w", ErrNotFound)
	}
	return r.GetByID(ctx, j.ID)
}

func (r *PostgresJobRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) (job.Job, error) {
	n, err := r.db.Exec(ctx, `UPDATE jobs SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return job.Job{}, translate(err, "set job active")
	}
	if n == 0 {
		return job.Job{}, fmt.Errorf("set job active: %w", ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

func activeJobWhere(f job.Filter) (string, []any) {
	conds := []string{"j.is_active = true"}
	args := make([]any, 0, 6)
	add := func(expr string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if terms := f.Terms(); len(terms) > 0 {
		ors := make([]string, 0, len(terms))
		for _, t := range terms {
			args = append(args, "%"+likeEscape(t)+"%")
			ors = append(ors, fmt.Sprintf(`j.title ILIKE $%[1]d OR j.description ILIKE $%[1]d OR j.requirements ILIKE $%[1]d`, len(args)))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}
	if s := strings.TrimSpace(f.JobType); s != "" {
		add(`j.job_type = $%d`, s)
	}
	if s := strings.TrimSpace(f.Location); s != "" {
		add(`j.location ILIKE $%d`, "%"+likeEscape(s)+"%")
	}
	if s := strings.TrimSpace(f.ExperienceLevel); s != "" {
		add(`j.experience_level = $%d`, s)
	}
	if f.CompanyID != nil {
		add(`j.company_id = $%d`, *f.CompanyID)
	}
	if f.RemoteOnly {
		conds = append(conds, `(j.work_mode IN ('remote', 'hybrid') OR j.location ILIKE '%remote%')`)
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PostgresJobRepository) ListActive(ctx context.Context, f job.Filter, p domain.Page) ([]job.Job, int, error) {
	p = p.Normalize()
	where, args := activeJobWhere(f)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1)`+jobFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`SELECT %s%s%s ORDER BY j.created_at DESC, j.id DESC LIMIT $%d OFFSET $%d`,
		jobColumns, jobFrom, where, len(args)+1, len(args)+2)
	rows, err := r.db.Query(ctx, q, append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *PostgresJobRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+jobFrom+` WHERE j.company_id = $1 ORDER BY j.created_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobRepository) IncrementApplicants(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `UPDATE jobs SET applicant_count = applicant_count + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("increment applicants: %w", ErrNotFound)
	}
	return nil
}

func (r *PostgresJobRepository) DecrementApplicants(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `UPDATE jobs SET applicant_count = GREATEST(applicant_count - 1, 0) WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("decrement applicants: %w", ErrNotFound)
	}
	return nil
}

func (r *PostgresJobRepository) Facets(ctx context.Context) (job.Facets, error) {
	out := job.Facets{JobTypes: []string{}, Locations: []string{}, TypeCounts: []job.TypeCount{}}

	rows, err := r.db.Query(ctx,
		`SELECT job_type, COUNT(1) FROM jobs WHERE is_active = true GROUP BY job_type ORDER BY job_type ASC`)
	if err != nil {
		return job.Facets{}, err
	}
	for rows.Next() {
		var tc job.TypeCount
		if err := rows.Scan(&tc.JobType, &tc.Count); err != nil {
			rows.Close()
			return job.Facets{}, err
		}
		out.JobTypes = append(out.JobTypes, tc.JobType)
		out.TypeCounts = append(out.TypeCounts, tc)
		out.TotalJobs += tc.Count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return job.Facets{}, err
	}

	rows, err = r.db.Query(ctx,
		`SELECT DISTINCT location FROM jobs WHERE is_active = true AND location <> '' ORDER BY location ASC`)
	if err != nil {
		return job.Facets{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return job.Facets{}, err
		}
		out.Locations = append(out.Locations, loc)
	}
	if err := rows.Err(); err != nil {
		return job.Facets{}, err
	}
	return out, nil
}

func likeEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
