package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"studentshub/internal/domain"
	"studentshub/internal/domain/application"
	"studentshub/internal/domain/job"
	"studentshub/internal/domain/savedjob"
	"studentshub/internal/domain/user"
	"studentshub/internal/repository"

	"github.com/google/uuid"
)

const (
	DeadlineWindow = 30 * 24 * time.Hour

	recentActivityLimit    = 10
	recentApplicationLimit = 5
)

// DashboardStats is the landing summary for a student or company. Fields
// that do not apply to the caller's role stay zero.
type DashboardStats struct {
	Role              user.Role
	Applications      int
	ApplicationStatus application.StatusCounts
	Interviews        int

	SavedJobs int

	ActiveJobs int
	TotalJobs  int
}

type DeadlineKind string

const (
	DeadlineApplication DeadlineKind = "application"
	DeadlineJob         DeadlineKind = "job_deadline"
)

type Deadline struct {
	Kind           DeadlineKind
	Title          string
	Deadline       time.Time
	JobID          uuid.UUID
	CompanyName    string
	Status         application.Status
	ApplicantCount int
}

type ActivityKind string

const (
	ActivityNotification        ActivityKind = "notification"
	ActivityApplication         ActivityKind = "application"
	ActivityApplicationReceived ActivityKind = "application_received"
)

type Activity struct {
	Kind    ActivityKind
	ID      uuid.UUID
	Title   string
	Message string
	At      time.Time
	IsRead  bool
	Link    string
	JobID   *uuid.UUID
	Status  application.Status
}

type DashboardUsecase interface {
	Stats(ctx context.Context, caller Caller) (DashboardStats, error)
	UpcomingDeadlines(ctx context.Context, caller Caller) ([]Deadline, error)
	RecentActivity(ctx context.Context, caller Caller) ([]Activity, error)
}

type Dashboard struct {
	store repository.Store
	now   func() time.Time
}

func NewDashboardUsecase(store repository.Store) *Dashboard {
	return &Dashboard{store: store, now: time.Now}
}

func (u *Dashboard) Stats(ctx context.Context, caller Caller) (DashboardStats, error) {
	switch caller.Role {
	case user.RoleStudent:
		return u.studentStats(ctx, caller)
	case user.RoleCompany:
		return u.companyStats(ctx, caller)
	default:
		return DashboardStats{}, caller.require(user.RoleStudent, user.RoleCompany)
	}
}

func (u *Dashboard) studentStats(ctx context.Context, caller Caller) (DashboardStats, error) {
	st, err := studentFor(ctx, u.store, caller)
	if err != nil {
		return DashboardStats{}, err
	}
	counts, err := u.store.Applications().CountByStudent(ctx, st.ID)
	if err != nil {
		return DashboardStats{}, internal("count applications", err)
	}
	saved, err := u.store.SavedJobs().ListByStudent(ctx, st.ID, savedjob.SortBySavedAt, false)
	if err != nil {
		return DashboardStats{}, internal("list saved jobs", err)
	}

	out := newDashboardStats(user.RoleStudent, counts)
	out.SavedJobs = len(saved)
	return out, nil
}

func (u *Dashboard) companyStats(ctx context.Context, caller Caller) (DashboardStats, error) {
	c, err := companyFor(ctx, u.store, caller)
	if err != nil {
		return DashboardStats{}, err
	}
	counts, err := u.store.Applications().CountByCompany(ctx, c.ID)
	if err != nil {
		return DashboardStats{}, internal("count applications", err)
	}
	jobs, err := u.store.Jobs().ListByCompany(ctx, c.ID)
	if err != nil {
		return DashboardStats{}, internal("list company jobs", err)
	}

	out := newDashboardStats(user.RoleCompany, counts)
	out.TotalJobs = len(jobs)
	for _, j := range jobs {
		if j.IsActive {
			out.ActiveJobs++
		}
	}
	return out, nil
}

func newDashboardStats(role user.Role, counts application.StatusCounts) DashboardStats {
	out := DashboardStats{Role: role, ApplicationStatus: application.StatusCounts{}}
	for _, s := range application.AllStatuses {
		out.ApplicationStatus[s] = counts[s]
		out.Applications += counts[s]
	}
	out.Interviews = counts[application.StatusInterviewScheduled]
	return out
}

// UpcomingDeadlines lists deadlines falling within DeadlineWindow, soonest
// first. Students see the jobs they have live applications for; companies
// see their own active postings.
func (u *Dashboard) UpcomingDeadlines(ctx context.Context, caller Caller) ([]Deadline, error) {
	var (
		out []Deadline
		err error
	)
	switch caller.Role {
	case user.RoleStudent:
		out, err = u.studentDeadlines(ctx, caller)
	case user.RoleCompany:
		out, err = u.companyDeadlines(ctx, caller)
	default:
		return nil, caller.require(user.RoleStudent, user.RoleCompany)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Deadline.Before(out[j].Deadline) })
	return out, nil
}

func withinDeadlineWindow(deadline *time.Time, now time.Time) bool {
	return deadline != nil && !deadline.Before(now) && !deadline.After(now.Add(DeadlineWindow))
}

func (u *Dashboard) studentDeadlines(ctx context.Context, caller Caller) ([]Deadline, error) {
	st, err := studentFor(ctx, u.store, caller)
	if err != nil {
		return nil, err
	}

	now := u.now()
	jobs := map[uuid.UUID]job.Job{}
	out := make([]Deadline, 0)
	err = eachPage(func(p domain.Page) ([]application.Application, int, error) {
		return u.store.Applications().ListByStudent(ctx, st.ID, nil, p)
	}, func(a application.Application) error {
		if a.Status == application.StatusWithdrawn {
			return nil
		}
		j, ok := jobs[a.JobID]
		if !ok {
			var err error
			if j, err = u.store.Jobs().GetByID(ctx, a.JobID); err != nil {
				return internal("load job", err)
			}
			jobs[a.JobID] = j
		}
		if !withinDeadlineWindow(j.ApplicationDeadline, now) {
			return nil
		}
		out = append(out, Deadline{
			Kind:        DeadlineApplication,
			Title:       fmt.Sprintf("Application for %s", j.Title),
			Deadline:    *j.ApplicationDeadline,
			JobID:       j.ID,
			CompanyName: j.CompanyName,
			Status:      a.Status,
		})
		return nil
	})
	if err != nil {
		return nil, passThrough("list application deadlines", err)
	}
	return out, nil
}

func (u *Dashboard) companyDeadlines(ctx context.Context, caller Caller) ([]Deadline, error) {
	c, err := companyFor(ctx, u.store, caller)
	if err != nil {
		return nil, err
	}
	jobs, err := u.store.Jobs().ListByCompany(ctx, c.ID)
	if err != nil {
		return nil, internal("list company jobs", err)
	}

	now := u.now()
	out := make([]Deadline, 0)
	for _, j := range jobs {
		if !j.IsActive || !withinDeadlineWindow(j.ApplicationDeadline, now) {
			continue
		}
		out = append(out, Deadline{
			Kind:           DeadlineJob,
			Title:          fmt.Sprintf("Application deadline: %s", j.Title),
			Deadline:       *j.ApplicationDeadline,
			JobID:          j.ID,
			CompanyName:    c.CompanyName,
			ApplicantCount: j.ApplicantCount,
		})
	}
	return out, nil
}

// RecentActivity merges the caller's latest notifications with their
// latest applications (sent for students, received for companies), newest
// first.
func (u *Dashboard) RecentActivity(ctx context.Context, caller Caller) ([]Activity, error) {
	if err := caller.require(user.RoleStudent, user.RoleCompany, user.RoleAdmin); err != nil {
		return nil, err
	}

	notes, _, err := u.store.Notifications().ListByUser(ctx, caller.UserID, false, domain.Page{Page: 1, Limit: recentActivityLimit})
	if err != nil {
		return nil, internal("list notifications", err)
	}
	out := make([]Activity, 0, len(notes)+recentApplicationLimit)
	for _, n := range notes {
		out = append(out, Activity{
			Kind:    ActivityNotification,
			ID:      n.ID,
			Title:   n.Title,
			Message: n.Message,
			At:      n.CreatedAt,
			IsRead:  n.IsRead,
			Link:    n.Link,
		})
	}

	apps, err := u.recentApplications(ctx, caller)
	if err != nil {
		return nil, err
	}
	out = append(out, apps...)

	sort.SliceStable(out, func(i, j int) bool { return out[i].At.After(out[j].At) })
	if len(out) > recentActivityLimit {
		out = out[:recentActivityLimit]
	}
	return out, nil
}

func (u *Dashboard) recentApplications(ctx context.Context, caller Caller) ([]Activity, error) {
	page := domain.Page{Page: 1, Limit: recentApplicationLimit}

	switch caller.Role {
	case user.RoleStudent:
		st, err := studentFor(ctx, u.store, caller)
		if err != nil {
			return nil, err
		}
		apps, _, err := u.store.Applications().ListByStudent(ctx, st.ID, nil, page)
		if err != nil {
			return nil, internal("list applications", err)
		}
		out := make([]Activity, 0, len(apps))
		for _, a := range apps {
			out = append(out, applicationActivity(a, ActivityApplication,
				"Application submitted for "+a.JobTitle, "Status: "+a.Status.Label()))
		}
		return out, nil

	case user.RoleCompany:
		c, err := companyFor(ctx, u.store, caller)
		if err != nil {
			return nil, err
		}
		apps, _, err := u.store.Applications().ListByCompany(ctx, c.ID, page)
		if err != nil {
			return nil, internal("list applications", err)
		}
		out := make([]Activity, 0, len(apps))
		for _, a := range apps {
			out = append(out, applicationActivity(a, ActivityApplicationReceived,
				"New application for "+a.JobTitle, "From: "+a.StudentName))
		}
		return out, nil

	default:
		return nil, nil
	}
}

func applicationActivity(a application.Application, kind ActivityKind, title, msg string) Activity {
	jobID := a.JobID
	return Activity{
		Kind:    kind,
		ID:      a.ID,
		Title:   title,
		Message: msg,
		At:      a.AppliedAt,
		Link:    "/applications/" + a.ID.String(),
		JobID:   &jobID,
		Status:  a.Status,
	}
}

// eachPage walks every page of a paginated listing.
func eachPage[T any](list func(p domain.Page) ([]T, int, error), fn func(T) error) error {
	for p := (domain.Page{Page: 1, Limit: domain.MaxPageLimit}); ; p.Page++ {
		items, total, err := list(p)
		if err != nil {
			return internal("list page", err)
		}
		for _, it := range items {
			if err := fn(it); err != nil {
				return err
			}
		}
		if len(items) == 0 || p.Page*p.Limit >= total {
			return nil
		}
	}
}
