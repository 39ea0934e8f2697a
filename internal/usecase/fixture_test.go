package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"studentshub/internal/domain/application"
	"studentshub/internal/domain/job"
	"studentshub/internal/domain/profile"
	"studentshub/internal/domain/user"
	"studentshub/internal/notify"
	"studentshub/internal/repository/memory"

	"github.com/google/uuid"
)

type fixture struct {
	store   *memory.Store
	events  *notify.Dispatcher
	company Caller
	firm    profile.Company
	student Caller
	profile profile.Student
	job     job.Job

	seq int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: memory.New(), events: notify.NewDispatcher(nil)}
	f.events.Subscribe(notify.NewNotificationSubscriber())
	f.company, f.firm = f.newCompany(t, "Acme Labs")
	f.student, f.profile = f.newStudent(t)
	f.job = f.newJob(t, f.firm, nil)
	return f
}

func (f *fixture) newUser(t *testing.T, role user.Role, first string) user.User {
	t.Helper()
	f.seq++
	u, err := f.store.Users().Create(context.Background(), user.User{
		Email:     fmt.Sprintf("%s%d@test.local", role, f.seq),
		Role:      role,
		FirstName: first,
		LastName:  "Test",
		IsActive:  true,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (f *fixture) newCompany(t *testing.T, name string) (Caller, profile.Company) {
	t.Helper()
	u := f.newUser(t, user.RoleCompany, "Hiring")
	c, err := f.store.Companies().Upsert(context.Background(), profile.Company{UserID: u.ID, CompanyName: name, Location: "Jakarta"})
	if err != nil {
		t.Fatalf("create company: %v", err)
	}
	return Caller{UserID: u.ID, Role: user.RoleCompany}, c
}

func (f *fixture) newStudent(t *testing.T) (Caller, profile.Student) {
	t.Helper()
	ctx := context.Background()
	u := f.newUser(t, user.RoleStudent, "Sari")
	st, err := f.store.Students().EnsureForUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("ensure student: %v", err)
	}
	st.Skills = []profile.Skill{{Name: "Go", Level: 4}, {Name: "SQL", Level: 3}}
	st.Location = "Jakarta"
	st.ResumeURL = "https://cv.test/sari.pdf"
	st, err = f.store.Students().Upsert(ctx, st)
	if err != nil {
		t.Fatalf("upsert student: %v", err)
	}
	return Caller{UserID: u.ID, Role: user.RoleStudent}, st
}

func (f *fixture) newJob(t *testing.T, c profile.Company, mutate func(*job.Job)) job.Job {
	t.Helper()
	j := job.Job{
		CompanyID:          c.ID,
		Title:              "Backend Intern",
		Description:        "Build APIs in Go.",
		JobType:            "internship",
		WorkMode:           job.WorkModeOnsite,
		Location:           "Jakarta",
		RequiredSkills:     []profile.Skill{{Name: "Go", Level: 3}, {Name: "Docker", Level: 2}},
		PositionsAvailable: 1,
		IsActive:           true,
	}
	if mutate != nil {
		mutate(&j)
	}
	created, err := f.store.Jobs().Create(context.Background(), j)
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	return created
}

func (f *fixture) applications() *Applications {
	return NewApplicationUsecase(f.store, f.events, nil, RateLimit{})
}

func (f *fixture) apply(t *testing.T, caller Caller, jobID uuid.UUID) application.Application {
	t.Helper()
	a, err := f.applications().Apply(context.Background(), caller, ApplyInput{JobID: jobID, CoverLetter: "I would love to join."})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	return a
}

func (f *fixture) applicantCount(t *testing.T, j job.Job) int {
	t.Helper()
	got, err := f.store.Jobs().GetByID(context.Background(), j.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	return got.ApplicantCount
}

func (f *fixture) unread(t *testing.T, c Caller) int {
	t.Helper()
	n, err := f.store.Notifications().CountUnread(context.Background(), c.UserID)
	if err != nil {
		t.Fatalf("count unread: %v", err)
	}
	return n
}

func daysFromNow(d int) *time.Time {
	t := time.Now().UTC().Add(time.Duration(d) * 24 * time.Hour)
	return &t
}
