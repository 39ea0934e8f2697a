package application

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending            Status = "pending"
	StatusReviewing          Status = "reviewing"
	StatusShortlisted        Status = "shortlisted"
	StatusInterviewScheduled Status = "interview_scheduled"
	StatusHired              Status = "hired"
	StatusRejected           Status = "rejected"
	StatusWithdrawn          Status = "withdrawn"
)

var (
	ErrUnknownStatus     = errors.New("unknown application status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

var AllStatuses = []Status{
	StatusPending,
	StatusReviewing,
	StatusShortlisted,
	StatusInterviewScheduled,
	StatusHired,
	StatusRejected,
	StatusWithdrawn,
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllStatuses {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// Label is the status as shown to people, e.g. "interview scheduled".
func (s Status) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusHired, StatusRejected, StatusWithdrawn:
		return true
	default:
		return false
	}
}

// employerTransitions lists the moves a company may make. Withdrawal is
// not here: only the applicant can withdraw.
var employerTransitions = map[Status][]Status{
	StatusPending:            {StatusReviewing},
	StatusReviewing:          {StatusShortlisted},
	StatusShortlisted:        {StatusInterviewScheduled},
	StatusInterviewScheduled: {StatusHired, StatusRejected},
}

func CanTransition(from, to Status) bool {
	for _, next := range employerTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanWithdraw reports whether the applicant may still pull out. Every
// state with an employer successor is open.
func CanWithdraw(from Status) bool {
	_, open := employerTransitions[from]
	return open
}

func NextStatuses(from Status) []Status {
	next := employerTransitions[from]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

func ValidateTransition(from, to Status) error {
	if CanTransition(from, to) {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

type Application struct {
	ID              uuid.UUID
	StudentID       uuid.UUID
	JobID           uuid.UUID
	CoverLetter     string
	ResumeURL       string
	Status          Status
	MatchPercentage int
	EmployerNotes   string
	RejectionReason string
	AppliedAt       time.Time
	UpdatedAt       time.Time
	ReviewedAt      *time.Time

	// Populated by read queries that join jobs, companies and students.
	JobTitle      string
	CompanyID     uuid.UUID
	CompanyName   string
	CompanyUserID uuid.UUID
	StudentUserID uuid.UUID
	StudentName   string
	StudentEmail  string
}

// StatusCounts maps each status to its number of applications.
type StatusCounts map[Status]int
