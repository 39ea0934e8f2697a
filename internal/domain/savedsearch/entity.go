package savedsearch

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"studentshub/internal/domain/job"

	"github.com/google/uuid"
)

const MaxQueryLength = 255

var (
	ErrEmptyQuery   = errors.New("search_query is required")
	ErrQueryTooLong = errors.New("search_query must be at most 255 characters")
)

// Filters are the job list filters stored alongside a query.
type Filters struct {
	JobType         string `json:"job_type,omitempty"`
	Location        string `json:"location,omitempty"`
	ExperienceLevel string `json:"experience_level,omitempty"`
	Remote          bool   `json:"remote,omitempty"`
}

type SavedSearch struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Query        string
	Filters      Filters
	SearchCount  int
	LastSearched time.Time
	CreatedAt    time.Time
}

// NormalizeQuery trims and collapses whitespace. Case is kept, so "Go" and
// "go" are separate searches.
func NormalizeQuery(q string) (string, error) {
	q = strings.Join(strings.Fields(q), " ")
	if q == "" {
		return "", ErrEmptyQuery
	}
	if utf8.RuneCountInString(q) > MaxQueryLength {
		return "", ErrQueryTooLong
	}
	return q, nil
}

func (f Filters) Normalize() Filters {
	return Filters{
		JobType:         strings.ToLower(strings.TrimSpace(f.JobType)),
		Location:        strings.TrimSpace(f.Location),
		ExperienceLevel: strings.ToLower(strings.TrimSpace(f.ExperienceLevel)),
		Remote:          f.Remote,
	}
}

// JobFilter replays the search against the job catalog.
func (s SavedSearch) JobFilter() job.Filter {
	return job.Filter{
		Search:          s.Query,
		JobType:         s.Filters.JobType,
		Location:        s.Filters.Location,
		ExperienceLevel: s.Filters.ExperienceLevel,
		RemoteOnly:      s.Filters.Remote,
	}
}
