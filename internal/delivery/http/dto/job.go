package dto

import (
	"time"

	"studentshub/internal/domain/job"
	"studentshub/internal/domain/profile"
	"studentshub/internal/usecase"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID                  uuid.UUID       `json:"id"`
	CompanyID           uuid.UUID       `json:"company_id"`
	CompanyName         string          `json:"company_name"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Requirements        string          `json:"requirements"`
	Responsibilities    string          `json:"responsibilities"`
	JobType             string          `json:"job_type"`
	WorkMode            string          `json:"work_mode"`
	ExperienceLevel     string          `json:"experience_level"`
	Location            string          `json:"location"`
	SalaryMin           *int            `json:"salary_min"`
	SalaryMax           *int            `json:"salary_max"`
	SalaryCurrency      string          `json:"salary_currency"`
	RequiredSkills      []profile.Skill `json:"required_skills"`
	PositionsAvailable  int             `json:"positions_available"`
	IsActive            bool            `json:"is_active"`
	ApplicationDeadline *time.Time      `json:"application_deadline"`
	ApplicantCount      int             `json:"applicant_count"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

type RecommendedJobResponse struct {
	Job             JobResponse `json:"job"`
	MatchPercentage int         `json:"match_percentage"`
	MatchedSkills   []string    `json:"matched_skills"`
	MissingSkills   []string    `json:"missing_skills"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:                  j.ID,
		CompanyID:           j.CompanyID,
		CompanyName:         j.CompanyName,
		Title:               j.Title,
		Description:         j.Description,
		Requirements:        j.Requirements,
		Responsibilities:    j.Responsibilities,
		JobType:             j.JobType,
		WorkMode:            string(j.WorkMode),
		ExperienceLevel:     j.ExperienceLevel,
		Location:            j.Location,
		SalaryMin:           j.SalaryMin,
		SalaryMax:           j.SalaryMax,
		SalaryCurrency:      j.SalaryCurrency,
		RequiredSkills:      nonNil(j.RequiredSkills),
		PositionsAvailable:  j.PositionsAvailable,
		IsActive:            j.IsActive,
		ApplicationDeadline: j.ApplicationDeadline,
		ApplicantCount:      j.ApplicantCount,
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
	}
}

func NewRecommendedJobResponse(r usecase.Recommendation) RecommendedJobResponse {
	return RecommendedJobResponse{
		Job:             NewJobResponse(r.Job),
		MatchPercentage: r.MatchPercentage,
		MatchedSkills:   nonNil(r.MatchedSkills),
		MissingSkills:   nonNil(r.MissingSkills),
	}
}
