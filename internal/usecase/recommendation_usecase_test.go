package usecase

import (
	"context"
	"errors"
	"testing"

	"studentshub/internal/domain/application"
	"studentshub/internal/domain/job"
	"studentshub/internal/domain/profile"
	"studentshub/internal/domain/user"

	"github.com/google/uuid"
)

func TestRecommendedJobs_RanksAndExcludesApplied(t *testing.T) {
	f := newFixture(t)
	best := f.newJob(t, f.firm, func(j *job.Job) {
		j.Title = "Go Intern"
		j.RequiredSkills = []profile.Skill{{Name: "Go", Level: 3}, {Name: "SQL", Level: 2}}
	})
	weak := f.newJob(t, f.firm, func(j *job.Job) {
		j.Title = "Flutter Intern"
		j.Location = "Surabaya"
		j.RequiredSkills = []profile.Skill{{Name: "Dart", Level: 3}}
	})
	applied := f.newJob(t, f.firm, func(j *job.Job) { j.Title = "Applied" })
	f.apply(t, f.student, applied.ID)

	recs, err := NewRecommendationUsecase(f.store).RecommendedJobs(context.Background(), f.student, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}
	if recs[0].Job.ID != best.ID {
		t.Fatalf("expected best match first, got %s", recs[0].Job.Title)
	}
	if recs[len(recs)-1].Job.ID != weak.ID {
		t.Fatalf("expected weakest match last, got %s", recs[len(recs)-1].Job.Title)
	}
	for _, r := range recs {
		if r.Job.ID == applied.ID {
			t.Fatalf("applied job must be excluded")
		}
	}
	if len(recs[len(recs)-1].MissingSkills) != 1 {
		t.Fatalf("expected Dart reported missing, got %v", recs[len(recs)-1].MissingSkills)
	}
}

func TestRecommendedJobs_Limit(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 4; i++ {
		f.newJob(t, f.firm, nil)
	}
	recs, err := NewRecommendationUsecase(f.store).RecommendedJobs(context.Background(), f.student, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2, got %d", len(recs))
	}
}

func TestAdminStats(t *testing.T) {
	f := newFixture(t)
	f.apply(t, f.student, f.job.ID)
	uc := NewAdminUsecase(f.store)
	ctx := context.Background()

	if _, err := uc.Stats(ctx, f.company); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	admin := Caller{UserID: uuid.New(), Role: user.RoleAdmin}
	st, err := uc.Stats(ctx, admin)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if st.UsersByRole[user.RoleStudent] != 1 || st.UsersByRole[user.RoleCompany] != 1 {
		t.Fatalf("unexpected role counts %v", st.UsersByRole)
	}
	if v, ok := st.UsersByRole[user.RoleAdmin]; !ok || v != 0 {
		t.Fatalf("expected admin role reported as 0, got %v", st.UsersByRole)
	}
	if st.ActiveJobs != 1 {
		t.Fatalf("expected 1 active job, got %d", st.ActiveJobs)
	}
	if st.ApplicationsByStatus[application.StatusPending] != 1 || len(st.ApplicationsByStatus) != len(application.AllStatuses) {
		t.Fatalf("unexpected status counts %v", st.ApplicationsByStatus)
	}
}

func TestSetCompanyVerification(t *testing.T) {
	f := newFixture(t)
	uc := NewAdminUsecase(f.store)
	admin := Caller{UserID: uuid.New(), Role: user.RoleAdmin}
	ctx := context.Background()

	c, err := uc.SetCompanyVerification(ctx, admin, f.firm.ID, "verified")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.VerificationStatus != profile.VerificationVerified {
		t.Fatalf("expected verified, got %s", c.VerificationStatus)
	}
	if _, err := uc.SetCompanyVerification(ctx, admin, f.firm.ID, "maybe"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.SetCompanyVerification(ctx, admin, uuid.New(), "verified"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
