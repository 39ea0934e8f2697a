package repository

import (
	"context"
	"errors"
	"time"

	"studentshub/internal/domain"
	"studentshub/internal/domain/application"
	"studentshub/internal/domain/job"
	"studentshub/internal/domain/message"
	"studentshub/internal/domain/notification"
	"studentshub/internal/domain/profile"
	"studentshub/internal/domain/savedjob"
	"studentshub/internal/domain/savedsearch"
	"studentshub/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	ErrReference = errors.New("referenced record missing")
)

type UserRepository interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	CountByRole(ctx context.Context) (map[user.Role]int, error)
}

type StudentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (profile.Student, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Student, error)
	// EnsureForUser returns the user's student profile, creating an empty
	// one when none exists yet.
	EnsureForUser(ctx context.Context, userID uuid.UUID) (profile.Student, error)
	Upsert(ctx context.Context, s profile.Student) (profile.Student, error)
}

type CompanyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (profile.Company, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Company, error)
	Upsert(ctx context.Context, c profile.Company) (profile.Company, error)
	SetVerification(ctx context.Context, id uuid.UUID, status profile.VerificationStatus) (profile.Company, error)
}

type JobRepository interface {
	Create(ctx context.Context, j job.Job) (job.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	// LockByID reads the job row with FOR UPDATE. Only meaningful inside
	// a transaction.
	LockByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	Update(ctx context.Context, j job.Job) (job.Job, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (job.Job, error)
	ListActive(ctx context.Context, f job.Filter, p domain.Page) ([]job.Job, int, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]job.Job, error)
	IncrementApplicants(ctx context.Context, id uuid.UUID) error
	// DecrementApplicants never takes the counter below zero.
	DecrementApplicants(ctx context.Context, id uuid.UUID) error
	Facets(ctx context.Context) (job.Facets, error)
}

type SavedJobRepository interface {
	// Insert stores the bookmark unless one exists for the pair, in which
	// case the existing row is returned with created=false.
	Insert(ctx context.Context, s savedjob.SavedJob) (saved savedjob.SavedJob, created bool, err error)
	Get(ctx context.Context, studentID, jobID uuid.UUID) (savedjob.SavedJob, error)
	Delete(ctx context.Context, studentID, jobID uuid.UUID) (bool, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID, sort savedjob.SortOrder, activeOnly bool) ([]savedjob.SavedJob, error)
	UpdateNotes(ctx context.Context, studentID, jobID uuid.UUID, notes string) (savedjob.SavedJob, error)
	// DeleteMany removes the student's bookmarks with the given ids and
	// reports how many were removed. Ids owned by others are ignored.
	DeleteMany(ctx context.Context, studentID uuid.UUID, ids []uuid.UUID) (int, error)
}

type SavedSearchRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]savedsearch.SavedSearch, error)
	// Upsert inserts the search or, when the user already saved the same
	// query, bumps its count and last-searched time and replaces filters.
	Upsert(ctx context.Context, s savedsearch.SavedSearch) (saved savedsearch.SavedSearch, created bool, err error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type ApplicationRepository interface {
	// Create returns ErrDuplicate when a non-withdrawn application for the
	// same student and job already exists.
	Create(ctx context.Context, a application.Application) (application.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	// LockByID reads the application with FOR UPDATE. Only meaningful
	// inside a transaction.
	LockByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	FindActive(ctx context.Context, studentID, jobID uuid.UUID) (application.Application, error)
	UpdateStatus(ctx context.Context, a application.Application) (application.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID, p domain.Page) ([]application.Application, int, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID, status *application.Status, p domain.Page) ([]application.Application, int, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, p domain.Page) ([]application.Application, int, error)
	ActiveJobIDs(ctx context.Context, studentID uuid.UUID) (map[uuid.UUID]bool, error)
	CountByStatus(ctx context.Context) (application.StatusCounts, error)
	CountByStudent(ctx context.Context, studentID uuid.UUID) (application.StatusCounts, error)
	CountByCompany(ctx context.Context, companyID uuid.UUID) (application.StatusCounts, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n notification.Notification) (notification.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, p domain.Page) ([]notification.Notification, int, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID, at time.Time) (notification.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m message.Message) (message.Message, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID, p domain.Page) ([]message.Message, int, error)
	MarkReadFor(ctx context.Context, applicationID, readerID uuid.UUID) (int64, error)
}

// Store groups the repositories over one connection or transaction.
type Store interface {
	Users() UserRepository
	Students() StudentRepository
	Companies() CompanyRepository
	Jobs() JobRepository
	SavedJobs() SavedJobRepository
	SavedSearches() SavedSearchRepository
	Applications() ApplicationRepository
	Notifications() NotificationRepository
	Messages() MessageRepository

	// WithinTx runs fn against a Store bound to a single transaction.
	// Returning an error rolls everything back. Nested calls reuse the
	// outer transaction.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}
