package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidProfile = errors.New("invalid profile")

type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type EducationEntry struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date,omitempty"`
}

type WorkExperience struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

type Student struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	ResumeURL         string
	Skills            []Skill
	Education         []EducationEntry
	WorkExperience    []WorkExperience
	Bio               string
	Location          string
	Phone             string
	ExperienceYears   int
	PreferredJobTypes []string
	PortfolioURL      string
	LinkedInURL       string
	GithubURL         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type VerificationStatus string

const (
	VerificationVerified   VerificationStatus = "verified"
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
)

func ParseVerificationStatus(s string) (VerificationStatus, error) {
	switch v := VerificationStatus(strings.ToLower(strings.TrimSpace(s))); v {
	case VerificationVerified, VerificationUnverified, VerificationPending:
		return v, nil
	default:
		return "", fmt.Errorf("%w: unknown verification status %q", ErrInvalidProfile, s)
	}
}

type Company struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	CompanyName        string
	Description        string
	Industry           string
	Website            string
	Location           string
	LogoURL            string
	VerificationStatus VerificationStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NormalizeSkills trims names, clamps levels to 1..5 and collapses
// case-insensitive duplicates, keeping the highest level. Order of first
// appearance is preserved.
func NormalizeSkills(in []Skill) ([]Skill, error) {
	out := make([]Skill, 0, len(in))
	index := make(map[string]int, len(in))
	for _, s := range in {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: skill name is required", ErrInvalidProfile)
		}
		lvl := s.Level
		if lvl == 0 {
			lvl = 1
		}
		if lvl < 1 || lvl > 5 {
			return nil, fmt.Errorf("%w: skill %q level must be between 1 and 5", ErrInvalidProfile, name)
		}

		key := strings.ToLower(name)
		if i, ok := index[key]; ok {
			if lvl > out[i].Level {
				out[i].Level = lvl
			}
			continue
		}
		index[key] = len(out)
		out = append(out, Skill{Name: name, Level: lvl})
	}
	return out, nil
}

func ValidateEducation(in []EducationEntry) error {
	for i, e := range in {
		if strings.TrimSpace(e.Institution) == "" {
			return fmt.Errorf("%w: education[%d] institution is required", ErrInvalidProfile, i)
		}
	}
	return nil
}

func ValidateWorkExperience(in []WorkExperience) error {
	for i, w := range in {
		if strings.TrimSpace(w.Company) == "" || strings.TrimSpace(w.Title) == "" {
			return fmt.Errorf("%w: work_experience[%d] company and title are required", ErrInvalidProfile, i)
		}
	}
	return nil
}
