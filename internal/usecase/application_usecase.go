package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"studentshub/internal/domain"
	"studentshub/internal/domain/application"
	"studentshub/internal/domain/event"
	"studentshub/internal/domain/user"
	"studentshub/internal/repository"

	"github.com/google/uuid"
)

type ApplyInput struct {
	JobID       uuid.UUID
	CoverLetter string
	ResumeURL   string
}

type StatusUpdateInput struct {
	Status          string
	Notes           *string
	RejectionReason string
}

type ApplicationPage struct {
	Items []application.Application
	Total int
	Page  domain.Page
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, caller Caller, in ApplyInput) (application.Application, error)
	UpdateStatus(ctx context.Context, caller Caller, applicationID uuid.UUID, in StatusUpdateInput) (application.Application, error)
	Withdraw(ctx context.Context, caller Caller, applicationID uuid.UUID) (application.Application, error)
	GetApplication(ctx context.Context, caller Caller, applicationID uuid.UUID) (application.Application, error)
	ListForJob(ctx context.Context, caller Caller, jobID uuid.UUID, p domain.Page) (ApplicationPage, error)
	ListMine(ctx context.Context, caller Caller, status string, p domain.Page) (ApplicationPage, error)
	ListForStudent(ctx context.Context, caller Caller, studentID uuid.UUID, status string, p domain.Page) (ApplicationPage, error)
	ListForCompany(ctx context.Context, caller Caller, p domain.Page) (ApplicationPage, error)
}

type Applications struct {
	store   repository.Store
	events  EventPublisher
	limiter RateLimiter
	limit   RateLimit
	now     func() time.Time
}

func NewApplicationUsecase(store repository.Store, events EventPublisher, limiter RateLimiter, limit RateLimit) *Applications {
	if events == nil {
		events = nopPublisher{}
	}
	return &Applications{store: store, events: events, limiter: limiter, limit: limit, now: time.Now}
}

func (u *Applications) Apply(ctx context.Context, caller Caller, in ApplyInput) (application.Application, error) {
	st, err := studentFor(ctx, u.store, caller)
	if err != nil {
		return application.Application{}, err
	}
	if !allow(ctx, u.limiter, fmt.Sprintf("apply:%s:%s", st.ID, in.JobID), u.limit) {
		return application.Application{}, ErrRateLimited
	}

	var (
		created application.Application
		events  []event.Event
	)
	err = u.store.WithinTx(ctx, func(tx repository.Store) error {
		j, err := tx.Jobs().LockByID(ctx, in.JobID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: %w", ErrJobUnavailable, notFound("job"))
			}
			return internal("lock job", err)
		}
		now := u.now()
		if !j.AcceptsApplications(now) {
			if !j.IsActive {
				return fmt.Errorf("%w: job is closed", ErrJobUnavailable)
			}
			return fmt.Errorf("%w: application deadline has passed", ErrJobUnavailable)
		}

		existing, err := tx.Applications().FindActive(ctx, st.ID, j.ID)
		switch {
		case err == nil:
			return &DuplicateApplicationError{ApplicationID: existing.ID.String()}
		case !errors.Is(err, repository.ErrNotFound):
			return internal("find active application", err)
		}

		cover := strings.TrimSpace(in.CoverLetter)
		if cover == "" {
			return invalid("cover_letter is required")
		}
		resume := strings.TrimSpace(in.ResumeURL)
		if resume == "" {
			resume = st.ResumeURL
		}

		created, err = tx.Applications().Create(ctx, application.Application{
			StudentID:       st.ID,
			JobID:           j.ID,
			CoverLetter:     cover,
			ResumeURL:       resume,
			Status:          application.StatusPending,
			MatchPercentage: matchScore(st, j).Score,
		})
		if err != nil {
			return err
		}
		if err := tx.Jobs().IncrementApplicants(ctx, j.ID); err != nil {
			return internal("increment applicants", err)
		}

		events = []event.Event{{
			Kind:            event.ApplicationSubmitted,
			RecipientUserID: created.CompanyUserID,
			ApplicationID:   created.ID,
			JobID:           j.ID,
			JobTitle:        j.Title,
			ActorName:       created.StudentName,
			ToStatus:        string(application.StatusPending),
			OccurredAt:      now,
		}}
		return u.events.Publish(ctx, tx, events...)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return application.Application{}, u.duplicateOf(ctx, st.ID, in.JobID)
		}
		return application.Application{}, passThrough("apply", err)
	}

	u.events.Committed(ctx, events...)
	return created, nil
}

// duplicateOf resolves the application that won a concurrent insert race.
func (u *Applications) duplicateOf(ctx context.Context, studentID, jobID uuid.UUID) error {
	dup := &DuplicateApplicationError{}
	if existing, err := u.store.Applications().FindActive(ctx, studentID, jobID); err == nil {
		dup.ApplicationID = existing.ID.String()
	}
	return dup
}

func (u *Applications) UpdateStatus(ctx context.Context, caller Caller, applicationID uuid.UUID, in StatusUpdateInput) (application.Application, error) {
	if err := caller.require(user.RoleCompany, user.RoleAdmin); err != nil {
		return application.Application{}, err
	}
	to, err := application.ParseStatus(in.Status)
	if err != nil {
		return application.Application{}, invalid("%v", err)
	}

	var (
		updated application.Application
		events  []event.Event
	)
	err = u.store.WithinTx(ctx, func(tx repository.Store) error {
		a, err := tx.Applications().LockByID(ctx, applicationID)
		if err != nil {
			return storeErr("lock application", "application", err)
		}
		if !caller.IsAdmin() && a.CompanyUserID != caller.UserID {
			return forbidden("application belongs to another company")
		}
		from := a.Status
		if err := application.ValidateTransition(from, to); err != nil {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
		}

		now := u.now()
		if from == application.StatusPending && a.ReviewedAt == nil {
			a.ReviewedAt = &now
		}
		if in.Notes != nil {
			a.EmployerNotes = strings.TrimSpace(*in.Notes)
		}
		if to == application.StatusRejected {
			a.RejectionReason = strings.TrimSpace(in.RejectionReason)
		}
		a.Status = to
		a.UpdatedAt = now

		updated, err = tx.Applications().UpdateStatus(ctx, a)
		if err != nil {
			return storeErr("update application status", "application", err)
		}

		events = []event.Event{{
			Kind:            event.ApplicationStatusChanged,
			RecipientUserID: updated.StudentUserID,
			ApplicationID:   updated.ID,
			JobID:           updated.JobID,
			JobTitle:        updated.JobTitle,
			ActorName:       updated.CompanyName,
			FromStatus:      string(from),
			ToStatus:        string(to),
			OccurredAt:      now,
		}}
		return u.events.Publish(ctx, tx, events...)
	})
	if err != nil {
		return application.Application{}, passThrough("update application status", err)
	}

	u.events.Committed(ctx, events...)
	return updated, nil
}

func (u *Applications) Withdraw(ctx context.Context, caller Caller, applicationID uuid.UUID) (application.Application, error) {
	if err := caller.require(user.RoleStudent); err != nil {
		return application.Application{}, err
	}

	var (
		updated application.Application
		events  []event.Event
	)
	err := u.store.WithinTx(ctx, func(tx repository.Store) error {
		a, err := tx.Applications().LockByID(ctx, applicationID)
		if err != nil {
			return storeErr("lock application", "application", err)
		}
		if a.StudentUserID != caller.UserID {
			return forbidden("application belongs to another student")
		}
		from := a.Status
		if !application.CanWithdraw(from) {
			return fmt.Errorf("%w: cannot withdraw a %s application", ErrInvalidTransition, from)
		}

		now := u.now()
		a.Status = application.StatusWithdrawn
		a.UpdatedAt = now
		updated, err = tx.Applications().UpdateStatus(ctx, a)
		if err != nil {
			return storeErr("withdraw application", "application", err)
		}
		if err := tx.Jobs().DecrementApplicants(ctx, a.JobID); err != nil {
			return internal("decrement applicants", err)
		}

		events = []event.Event{{
			Kind:            event.ApplicationWithdrawn,
			RecipientUserID: updated.CompanyUserID,
			ApplicationID:   updated.ID,
			JobID:           updated.JobID,
			JobTitle:        updated.JobTitle,
			ActorName:       updated.StudentName,
			FromStatus:      string(from),
			ToStatus:        string(application.StatusWithdrawn),
			OccurredAt:      now,
		}}
		return u.events.Publish(ctx, tx, events...)
	})
	if err != nil {
		return application.Application{}, passThrough("withdraw application", err)
	}

	u.events.Committed(ctx, events...)
	return updated, nil
}

func (u *Applications) GetApplication(ctx context.Context, caller Caller, applicationID uuid.UUID) (application.Application, error) {
	if caller.UserID == uuid.Nil {
		return application.Application{}, ErrUnauthorized
	}
	a, err := u.store.Applications().GetByID(ctx, applicationID)
	if err != nil {
		return application.Application{}, storeErr("get application", "application", err)
	}
	if !canViewApplication(caller, a) {
		return application.Application{}, forbidden("not a party to this application")
	}
	return a, nil
}

func (u *Applications) ListForJob(ctx context.Context, caller Caller, jobID uuid.UUID, p domain.Page) (ApplicationPage, error) {
	if err := caller.require(user.RoleCompany, user.RoleAdmin); err != nil {
		return ApplicationPage{}, err
	}
	j, err := u.store.Jobs().GetByID(ctx, jobID)
	if err != nil {
		return ApplicationPage{}, storeErr("load job", "job", err)
	}
	owns, err := ownsJob(ctx, u.store, caller, j)
	if err != nil {
		return ApplicationPage{}, err
	}
	if !owns {
		return ApplicationPage{}, forbidden("job belongs to another company")
	}

	p = p.Normalize()
	items, total, err := u.store.Applications().ListByJob(ctx, jobID, p)
	if err != nil {
		return ApplicationPage{}, internal("list job applications", err)
	}
	return ApplicationPage{Items: items, Total: total, Page: p}, nil
}

func (u *Applications) ListMine(ctx context.Context, caller Caller, status string, p domain.Page) (ApplicationPage, error) {
	st, err := studentFor(ctx, u.store, caller)
	if err != nil {
		return ApplicationPage{}, err
	}
	return u.listStudent(ctx, st.ID, status, p)
}

func (u *Applications) ListForStudent(ctx context.Context, caller Caller, studentID uuid.UUID, status string, p domain.Page) (ApplicationPage, error) {
	if caller.UserID == uuid.Nil {
		return ApplicationPage{}, ErrUnauthorized
	}
	st, err := u.store.Students().GetByID(ctx, studentID)
	if err != nil {
		return ApplicationPage{}, storeErr("load student", "student", err)
	}
	if !caller.IsAdmin() && st.UserID != caller.UserID {
		return ApplicationPage{}, forbidden("applications belong to another student")
	}
	return u.listStudent(ctx, st.ID, status, p)
}

func (u *Applications) ListForCompany(ctx context.Context, caller Caller, p domain.Page) (ApplicationPage, error) {
	company, err := companyFor(ctx, u.store, caller)
	if err != nil {
		return ApplicationPage{}, err
	}
	p = p.Normalize()
	items, total, err := u.store.Applications().ListByCompany(ctx, company.ID, p)
	if err != nil {
		return ApplicationPage{}, internal("list company applications", err)
	}
	return ApplicationPage{Items: items, Total: total, Page: p}, nil
}

func (u *Applications) listStudent(ctx context.Context, studentID uuid.UUID, status string, p domain.Page) (ApplicationPage, error) {
	var filter *application.Status
	if strings.TrimSpace(status) != "" {
		s, err := application.ParseStatus(status)
		if err != nil {
			return ApplicationPage{}, invalid("%v", err)
		}
		filter = &s
	}

	p = p.Normalize()
	items, total, err := u.store.Applications().ListByStudent(ctx, studentID, filter, p)
	if err != nil {
		return ApplicationPage{}, internal("list student applications", err)
	}
	return ApplicationPage{Items: items, Total: total, Page: p}, nil
}

func canViewApplication(caller Caller, a application.Application) bool {
	switch caller.Role {
	case user.RoleAdmin:
		return true
	case user.RoleStudent:
		return a.StudentUserID == caller.UserID
	case user.RoleCompany:
		return a.CompanyUserID == caller.UserID
	default:
		return false
	}
}
