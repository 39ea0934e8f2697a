package dto

import (
	"time"

	"studentshub/internal/domain/application"

	"github.com/google/uuid"
)

type ApplyResponse struct {
	ApplicationID uuid.UUID `json:"application_id"`
	Status        string    `json:"status"`
}

type ApplicationResponse struct {
	ID              uuid.UUID  `json:"id"`
	JobID           uuid.UUID  `json:"job_id"`
	JobTitle        string     `json:"job_title"`
	CompanyID       uuid.UUID  `json:"company_id"`
	CompanyName     string     `json:"company_name"`
	StudentID       uuid.UUID  `json:"student_id"`
	StudentName     string     `json:"student_name"`
	StudentEmail    string     `json:"student_email"`
	CoverLetter     string     `json:"cover_letter"`
	ResumeURL       string     `json:"resume_url"`
	Status          string     `json:"status"`
	NextStatuses    []string   `json:"next_statuses"`
	MatchPercentage int        `json:"match_percentage"`
	EmployerNotes   string     `json:"employer_notes,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	AppliedAt       time.Time  `json:"applied_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	next := make([]string, 0, 2)
	for _, s := range application.NextStatuses(a.Status) {
		next = append(next, string(s))
	}
	return ApplicationResponse{
		ID:              a.ID,
		JobID:           a.JobID,
		JobTitle:        a.JobTitle,
		CompanyID:       a.CompanyID,
		CompanyName:     a.CompanyName,
		StudentID:       a.StudentID,
		StudentName:     a.StudentName,
		StudentEmail:    a.StudentEmail,
		CoverLetter:     a.CoverLetter,
		ResumeURL:       a.ResumeURL,
		Status:          string(a.Status),
		NextStatuses:    next,
		MatchPercentage: a.MatchPercentage,
		EmployerNotes:   a.EmployerNotes,
		RejectionReason: a.RejectionReason,
		AppliedAt:       a.AppliedAt,
		UpdatedAt:       a.UpdatedAt,
		ReviewedAt:      a.ReviewedAt,
	}
}

// NewStudentApplicationResponse hides the employer's private notes.
func NewStudentApplicationResponse(a application.Application) ApplicationResponse {
	r := NewApplicationResponse(a)
	r.EmployerNotes = ""
	r.NextStatuses = []string{}
	return r
}
