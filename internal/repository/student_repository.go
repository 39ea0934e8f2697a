package repository

import (
	"context"
	"fmt"

	"studentshub/internal/database"
	"studentshub/internal/domain/profile"

	"github.com/google/uuid"
)

type PostgresStudentRepository struct {
	db database.Querier
}

func NewPostgresStudentRepository(db database.Querier) *PostgresStudentRepository {
	return &PostgresStudentRepository{db: db}
}

const studentColumns = `id, user_id, resume_url, skills, education, work_experience, bio, location, phone,
	experience_years, preferred_job_types, portfolio_url, linkedin_url, github_url, created_at, updated_at`

func scanStudent(row database.Row) (profile.Student, error) {
	var s profile.Student
	var skills, education, experience, jobTypes []byte
	if err := row.Scan(
		&s.ID, &s.UserID, &s.ResumeURL, &skills, &education, &experience, &s.Bio, &s.Location, &s.Phone,
		&s.ExperienceYears, &jobTypes, &s.PortfolioURL, &s.LinkedInURL, &s.GithubURL, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return profile.Student{}, err
	}
	if err := decodeJSON(skills, &s.Skills); err != nil {
		return profile.Student{}, fmt.Errorf("decode student skills: %w", err)
	}
	if err := decodeJSON(education, &s.Education); err != nil {
		return profile.Student{}, fmt.Errorf("decode student education: %w", err)
	}
	if err := decodeJSON(experience, &s.WorkExperience); err != nil {
		return profile.Student{}, fmt.Errorf("decode student work experience: %w", err)
	}
	if err := decodeJSON(jobTypes, &s.PreferredJobTypes); err != nil {
		return profile.Student{}, fmt.Errorf("decode student job types: %w", err)
	}
	return s, nil
}

func (r *PostgresStudentRepository) GetByID(ctx context.Context, id uuid.UUID) (profile.Student, error) {
	s, err := scanStudent(r.db.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
	if err != nil {
		return profile.Student{}, translate(err, "get student")
	}
	return s, nil
}

func (r *PostgresStudentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Student, error) {
	s, err := scanStudent(r.db.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE user_id = $1`, userID))
	if err != nil {
		return profile.Student{}, translate(err, "get student by user")
	}
	return s, nil
}

func (r *PostgresStudentRepository) EnsureForUser(ctx context.Context, userID uuid.UUID) (profile.Student, error) {
	if _, err := r.db.Exec(ctx,
		`INSERT INTO students (id, user_id) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
		uuid.New(), userID,
	); err != nil {
		return profile.Student{}, translate(err, "ensure student")
	}
	return r.GetByUserID(ctx, userID)
}

func (r *PostgresStudentRepository) Upsert(ctx context.Context, s profile.Student) (profile.Student, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	skills, err := encodeJSON(s.Skills, "[]")
	if err != nil {
		return profile.Student{}, err
	}
	education, err := encodeJSON(s.Education, "[]")
	if err != nil {
		return profile.Student{}, err
	}
	experience, err := encodeJSON(s.WorkExperience, "[]")
	if err != nil {
		return profile.Student{}, err
	}
	jobTypes, err := encodeJSON(s.PreferredJobTypes, "[]")
	if err != nil {
		return profile.Student{}, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO students (id, user_id, resume_url, skills, education, work_experience, bio, location, phone,
			experience_years, preferred_job_types, portfolio_url, linkedin_url, github_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (user_id) DO UPDATE SET
			resume_url = EXCLUDED.resume_url,
			skills = EXCLUDED.skills,
			education = EXCLUDED.education,
			work_experience = EXCLUDED.work_experience,
			bio = EXCLUDED.bio,
			location = EXCLUDED.location,
			phone = EXCLUDED.phone,
			experience_years = EXCLUDED.experience_years,
			preferred_job_types = EXCLUDED.preferred_job_types,
			portfolio_url = EXCLUDED.portfolio_url,
			linkedin_url = EXCLUDED.linkedin_url,
			github_url = EXCLUDED.github_url,
			updated_at = now()
		 RETURNING `+studentColumns,
		s.ID, s.UserID, s.ResumeURL, skills, education, experience, s.Bio, s.Location, s.Phone,
		s.ExperienceYears, jobTypes, s.PortfolioURL, s.LinkedInURL, s.GithubURL,
	)
	out, err := scanStudent(row)
	if err != nil {
		return profile.Student{}, translate(err, "upsert student")
	}
	return out, nil
}
