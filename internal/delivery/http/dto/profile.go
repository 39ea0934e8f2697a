package dto

import (
	"time"

	"studentshub/internal/domain/profile"

	"github.com/google/uuid"
)

type StudentProfileResponse struct {
	ID                uuid.UUID                `json:"id"`
	UserID            uuid.UUID                `json:"user_id"`
	ResumeURL         string                   `json:"resume_url"`
	Skills            []profile.Skill          `json:"skills"`
	Education         []profile.EducationEntry `json:"education"`
	WorkExperience    []profile.WorkExperience `json:"work_experience"`
	Bio               string                   `json:"bio"`
	Location          string                   `json:"location"`
	Phone             string                   `json:"phone"`
	ExperienceYears   int                      `json:"experience_years"`
	PreferredJobTypes []string                 `json:"preferred_job_types"`
	PortfolioURL      string                   `json:"portfolio_url"`
	LinkedInURL       string                   `json:"linkedin_url"`
	GithubURL         string                   `json:"github_url"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

type CompanyProfileResponse struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	CompanyName        string    `json:"company_name"`
	Description        string    `json:"description"`
	Industry           string    `json:"industry"`
	Website            string    `json:"website"`
	Location           string    `json:"location"`
	LogoURL            string    `json:"logo_url"`
	VerificationStatus string    `json:"verification_status"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func NewStudentProfileResponse(s profile.Student) StudentProfileResponse {
	return StudentProfileResponse{
		ID:                s.ID,
		UserID:            s.UserID,
		ResumeURL:         s.ResumeURL,
		Skills:            nonNil(s.Skills),
		Education:         nonNil(s.Education),
		WorkExperience:    nonNil(s.WorkExperience),
		Bio:               s.Bio,
		Location:          s.Location,
		Phone:             s.Phone,
		ExperienceYears:   s.ExperienceYears,
		PreferredJobTypes: nonNil(s.PreferredJobTypes),
		PortfolioURL:      s.PortfolioURL,
		LinkedInURL:       s.LinkedInURL,
		GithubURL:         s.GithubURL,
		UpdatedAt:         s.UpdatedAt,
	}
}

func NewCompanyProfileResponse(c profile.Company) CompanyProfileResponse {
	return CompanyProfileResponse{
		ID:                 c.ID,
		UserID:             c.UserID,
		CompanyName:        c.CompanyName,
		Description:        c.Description,
		Industry:           c.Industry,
		Website:            c.Website,
		Location:           c.Location,
		LogoURL:            c.LogoURL,
		VerificationStatus: string(c.VerificationStatus),
		UpdatedAt:          c.UpdatedAt,
	}
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
