package job

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"studentshub/internal/domain/profile"

	"github.com/google/uuid"
)

var ErrInvalidJob = errors.New("invalid job")

type WorkMode string

const (
	WorkModeOnsite WorkMode = "onsite"
	WorkModeRemote WorkMode = "remote"
	WorkModeHybrid WorkMode = "hybrid"
)

func ParseWorkMode(s string) (WorkMode, error) {
	switch m := WorkMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return WorkModeOnsite, nil
	case WorkModeOnsite, WorkModeRemote, WorkModeHybrid:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown work mode %q", ErrInvalidJob, s)
	}
}

type Job struct {
	ID                  uuid.UUID
	CompanyID           uuid.UUID
	Title               string
	Description         string
	Requirements        string
	Responsibilities    string
	JobType             string
	WorkMode            WorkMode
	ExperienceLevel     string
	Location            string
	SalaryMin           *int
	SalaryMax           *int
	SalaryCurrency      string
	RequiredSkills      []profile.Skill
	PositionsAvailable  int
	IsActive            bool
	ApplicationDeadline *time.Time
	ApplicantCount      int
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Populated by read queries that join companies.
	CompanyName string
}

// AcceptsApplications reports whether the job is active and its deadline,
// if any, has not passed.
func (j Job) AcceptsApplications(now time.Time) bool {
	if !j.IsActive {
		return false
	}
	if j.ApplicationDeadline != nil && now.After(*j.ApplicationDeadline) {
		return false
	}
	return true
}

func (j Job) IsRemoteFriendly() bool {
	if j.WorkMode == WorkModeRemote || j.WorkMode == WorkModeHybrid {
		return true
	}
	return strings.Contains(strings.ToLower(j.Location), "remote")
}

// Validate checks the attributes required on create.
func (j Job) Validate() error {
	var missing []string
	if strings.TrimSpace(j.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(j.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(j.Location) == "" {
		missing = append(missing, "location")
	}
	if strings.TrimSpace(j.JobType) == "" {
		missing = append(missing, "job_type")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidJob, strings.Join(missing, ", "))
	}
	if j.SalaryMin != nil && *j.SalaryMin < 0 {
		return fmt.Errorf("%w: salary_min must be >= 0", ErrInvalidJob)
	}
	if j.SalaryMin != nil && j.SalaryMax != nil && *j.SalaryMin > *j.SalaryMax {
		return fmt.Errorf("%w: salary_min must be <= salary_max", ErrInvalidJob)
	}
	if j.PositionsAvailable < 1 {
		return fmt.Errorf("%w: positions_available must be >= 1", ErrInvalidJob)
	}
	return nil
}

type Filter struct {
	Search          string
	SearchVariants  []string
	JobType         string
	Location        string
	ExperienceLevel string
	CompanyID       *uuid.UUID
	RemoteOnly      bool
}

// Terms returns the keyword alternatives to match. Any one match is enough.
func (f Filter) Terms() []string {
	if len(f.SearchVariants) > 0 {
		return f.SearchVariants
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		return []string{s}
	}
	return nil
}

type TypeCount struct {
	JobType string `json:"job_type"`
	Count   int    `json:"count"`
}

type Facets struct {
	JobTypes   []string    `json:"job_types"`
	Locations  []string    `json:"locations"`
	TypeCounts []TypeCount `json:"type_counts"`
	TotalJobs  int         `json:"total_jobs"`
}
