package savedjob

import (
	"strings"
	"time"

	"studentshub/internal/domain/job"

	"github.com/google/uuid"
)

type SortOrder string

const (
	SortBySavedAt  SortOrder = "date"
	SortByDeadline SortOrder = "deadline"
)

func ParseSort(s string) SortOrder {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortByDeadline:
		return SortByDeadline
	default:
		return SortBySavedAt
	}
}

const (
	UrgentWithinDays   = 3
	UpcomingWithinDays = 7
)

type SavedJob struct {
	ID        uuid.UUID
	StudentID uuid.UUID
	JobID     uuid.UUID
	Notes     string
	SavedAt   time.Time

	Job job.Job
}

// DaysLeft counts calendar days (UTC) from now until the deadline. A
// deadline later today is 0, yesterday is -1.
func DaysLeft(deadline *time.Time, now time.Time) *int {
	if deadline == nil {
		return nil
	}
	d := truncateDay(deadline.UTC())
	n := truncateDay(now.UTC())
	days := int(d.Sub(n).Hours() / 24)
	return &days
}

func IsUrgent(daysLeft *int) bool {
	return daysLeft != nil && *daysLeft <= UrgentWithinDays
}

func IsUpcoming(daysLeft *int) bool {
	return daysLeft != nil && *daysLeft >= 0 && *daysLeft <= UpcomingWithinDays
}

func IsExpired(daysLeft *int) bool {
	return daysLeft != nil && *daysLeft < 0
}

type Stats struct {
	TotalSaved        int     `json:"total_saved"`
	UpcomingDeadlines int     `json:"upcoming_deadlines"`
	AppliedCount      int     `json:"applied_count"`
	ExpiredCount      int     `json:"expired_count"`
	ApplicationRate   float64 `json:"application_rate"`
}

// ComputeStats derives counters from all of a student's saved jobs.
// applied holds job ids the student has a live application for.
func ComputeStats(saved []SavedJob, applied map[uuid.UUID]bool, now time.Time) Stats {
	st := Stats{TotalSaved: len(saved)}
	for _, s := range saved {
		if applied[s.JobID] {
			st.AppliedCount++
		}
		if !s.Job.IsActive {
			continue
		}
		left := DaysLeft(s.Job.ApplicationDeadline, now)
		if IsUpcoming(left) {
			st.UpcomingDeadlines++
		}
		if IsExpired(left) {
			st.ExpiredCount++
		}
	}
	if st.TotalSaved > 0 {
		rate := float64(st.AppliedCount) / float64(st.TotalSaved) * 100
		st.ApplicationRate = float64(int(rate*10+0.5)) / 10
	}
	return st
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
