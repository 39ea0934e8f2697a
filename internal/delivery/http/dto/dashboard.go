package dto

import (
	"time"

	"studentshub/internal/domain/user"
	"studentshub/internal/usecase"

	"github.com/google/uuid"
)

type DashboardStatsResponse struct {
	Role              string         `json:"role"`
	Applications      int            `json:"applications"`
	ApplicationStatus map[string]int `json:"application_status"`
	Interviews        int            `json:"interviews"`
	SavedJobs         *int           `json:"saved_jobs,omitempty"`
	ActiveJobs        *int           `json:"active_jobs,omitempty"`
	TotalJobs         *int           `json:"total_jobs,omitempty"`
}

type DeadlineResponse struct {
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Deadline       time.Time `json:"deadline"`
	JobID          uuid.UUID `json:"job_id"`
	CompanyName    string    `json:"company_name,omitempty"`
	Status         string    `json:"status,omitempty"`
	ApplicantCount *int      `json:"applicant_count,omitempty"`
}

type ActivityResponse struct {
	Type      string     `json:"type"`
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
	IsRead    *bool      `json:"is_read,omitempty"`
	Link      string     `json:"link,omitempty"`
	JobID     *uuid.UUID `json:"job_id,omitempty"`
	Status    string     `json:"status,omitempty"`
}

func NewDashboardStatsResponse(s usecase.DashboardStats) DashboardStatsResponse {
	status := make(map[string]int, len(s.ApplicationStatus))
	for st, n := range s.ApplicationStatus {
		status[string(st)] = n
	}
	out := DashboardStatsResponse{
		Role:              string(s.Role),
		Applications:      s.Applications,
		ApplicationStatus: status,
		Interviews:        s.Interviews,
	}
	switch s.Role {
	case user.RoleStudent:
		out.SavedJobs = &s.SavedJobs
	case user.RoleCompany:
		out.ActiveJobs = &s.ActiveJobs
		out.TotalJobs = &s.TotalJobs
	}
	return out
}

func NewDeadlineResponse(d usecase.Deadline) DeadlineResponse {
	out := DeadlineResponse{
		Type:        string(d.Kind),
		Title:       d.Title,
		Deadline:    d.Deadline,
		JobID:       d.JobID,
		CompanyName: d.CompanyName,
		Status:      string(d.Status),
	}
	if d.Kind == usecase.DeadlineJob {
		out.ApplicantCount = &d.ApplicantCount
	}
	return out
}

func NewActivityResponse(a usecase.Activity) ActivityResponse {
	out := ActivityResponse{
		Type:      string(a.Kind),
		ID:        a.ID,
		Title:     a.Title,
		Message:   a.Message,
		CreatedAt: a.At,
		Link:      a.Link,
		JobID:     a.JobID,
		Status:    string(a.Status),
	}
	if a.Kind == usecase.ActivityNotification {
		out.IsRead = &a.IsRead
	}
	return out
}
